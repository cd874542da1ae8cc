// ============================================================================
// radscene - Radiance Scene Toolkit
// ============================================================================
//
// Package:     version
// Description: Central version management for the CLI and its components
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Toolkit version
	Platform = "0.1.0"

	// Component versions
	Parser = "0.1.0"
	Store  = "0.1.0"
	Viewer = "0.1.0"

	// StoreSchema is bumped whenever the SQLite schema changes
	StoreSchema = 1
)

// Set at build time via -ldflags "-X .../version.Commit=..."
var (
	Commit    = "dev"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "parser":
		return Parser
	case "store":
		return Store
	case "viewer":
		return Viewer
	default:
		return Platform
	}
}

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string            `json:"version" yaml:"version"`
	Commit    string            `json:"commit" yaml:"commit"`
	BuildDate string            `json:"build_date" yaml:"build_date"`
	GoVersion string            `json:"go_version" yaml:"go_version"`
	Platform  string            `json:"platform" yaml:"platform"`
	Schema    int               `json:"store_schema" yaml:"store_schema"`
	Component map[string]string `json:"components" yaml:"components"`
}

// Info returns the build information of the running binary
func Info() BuildInfo {
	return BuildInfo{
		Version:   Platform,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Schema:    StoreSchema,
		Component: map[string]string{
			"parser": Parser,
			"store":  Store,
			"viewer": Viewer,
		},
	}
}

// String returns a one-line version summary
func (b BuildInfo) String() string {
	return fmt.Sprintf("radscene %s (commit %s, built %s, %s, %s)", b.Version, b.Commit, b.BuildDate, b.GoVersion, b.Platform)
}
