// ============================================================================
// radscene - Radiance Scene Toolkit
// ============================================================================
//
// Package:     render
// Description: Output sinks that serialize parsed primitive records
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package render

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/radscene/foundation/core/error"
	radast "github.com/msto63/radscene/foundation/rad/ast"
)

// Format names
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatYAML  = "yaml"
	FormatText  = "text"
)

// Renderer writes a record list to w
type Renderer interface {
	Render(w io.Writer, prims []*radast.Primitive) error
}

// Options tune the renderers that support them
type Options struct {
	// Pretty indents JSON output
	Pretty bool
	// Indent is the JSON indent width in spaces
	Indent int
}

// Formats lists the supported format names
func Formats() []string {
	return []string{FormatJSON, FormatJSONL, FormatYAML, FormatText}
}

// ForFormat returns the renderer for a format name
func ForFormat(name string, opts Options) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatJSON:
		return &JSONRenderer{Pretty: opts.Pretty, Indent: opts.Indent}, nil
	case FormatJSONL:
		return &JSONLRenderer{}, nil
	case FormatYAML:
		return &YAMLRenderer{}, nil
	case FormatText:
		return &TextRenderer{}, nil
	default:
		return nil, mdwerror.Newf("unknown output format %q, expected one of %s", name, strings.Join(Formats(), ", ")).
			WithCode(mdwerror.CodeInvalidFormat).
			WithDetail("format", name).
			WithOperation("render.ForFormat")
	}
}

// JSONRenderer writes one JSON array
type JSONRenderer struct {
	Pretty bool
	Indent int
}

// Render implements Renderer
func (r *JSONRenderer) Render(w io.Writer, prims []*radast.Primitive) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.Pretty && r.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", r.Indent))
	}
	if err := enc.Encode(nonNil(prims)); err != nil {
		return renderError(err, FormatJSON)
	}
	return nil
}

// JSONLRenderer writes one compact JSON record per line
type JSONLRenderer struct{}

// Render implements Renderer
func (r *JSONLRenderer) Render(w io.Writer, prims []*radast.Primitive) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, p := range prims {
		if err := enc.Encode(p); err != nil {
			return renderError(err, FormatJSONL)
		}
	}
	if err := bw.Flush(); err != nil {
		return renderError(err, FormatJSONL)
	}
	return nil
}

// YAMLRenderer writes a YAML sequence of records
type YAMLRenderer struct{}

// Render implements Renderer
func (r *YAMLRenderer) Render(w io.Writer, prims []*radast.Primitive) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(nonNil(prims)); err != nil {
		return renderError(err, FormatYAML)
	}
	if err := enc.Close(); err != nil {
		return renderError(err, FormatYAML)
	}
	return nil
}

// TypeSummary returns "type count" pairs, most frequent first
func TypeSummary(prims []*radast.Primitive) []radast.TypeCount {
	counter := radast.NewTypeCounter()
	radast.Walk(counter, prims)
	return counter.Counts()
}

func nonNil(prims []*radast.Primitive) []*radast.Primitive {
	if prims == nil {
		return []*radast.Primitive{}
	}
	return prims
}

func renderError(err error, format string) error {
	return mdwerror.Wrap(err, "failed to render records").
		WithCode(mdwerror.CodeRenderError).
		WithDetail("format", format).
		WithOperation("render.Render")
}
