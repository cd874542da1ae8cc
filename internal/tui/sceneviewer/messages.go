// ============================================================================
// radscene - Radiance Scene Toolkit
// ============================================================================
//
// Package:     sceneviewer
// Description: Message and filter types for the SceneViewer
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package sceneviewer

import (
	radast "github.com/msto63/radscene/foundation/rad/ast"
)

// KindFilter selects which records are listed
type KindFilter int

const (
	FilterAll KindFilter = iota
	FilterPolygon
	FilterGeneric
)

// String returns the label shown in the filter bar
func (f KindFilter) String() string {
	switch f {
	case FilterPolygon:
		return "POLYGON"
	case FilterGeneric:
		return "GENERIC"
	default:
		return "ALLE"
	}
}

// Next cycles through the filters
func (f KindFilter) Next() KindFilter {
	return (f + 1) % 3
}

// Matches reports whether p passes the filter
func (f KindFilter) Matches(p *radast.Primitive) bool {
	switch f {
	case FilterPolygon:
		return p.Kind() == radast.KindPolygon
	case FilterGeneric:
		return p.Kind() == radast.KindGeneric
	default:
		return true
	}
}

// Scene is what a LoadFunc returns
type Scene struct {
	// Source describes where the records came from (files or a run ID)
	Source     string
	Primitives []*radast.Primitive
}

// Message types for tea.Cmd async operations

// sceneLoadedMsg is sent when the loader returns
type sceneLoadedMsg struct {
	scene *Scene
	err   error
}
