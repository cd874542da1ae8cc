// File: splitter.go
// Title: Radiance Object Splitter
// Description: Cuts scene text into one text segment per primitive
//              definition, dropping comments and blank segments.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial splitter

package parser

import (
	"strings"
)

// SplitPrimitives returns the primitive segments of text in source order.
// It never returns nil.
func SplitPrimitives(text string) []string {
	segments := make([]string, 0)

	var current []string
	flush := func() {
		if current == nil {
			return
		}
		segment := strings.Join(current, "\n")
		current = nil

		trimmed := strings.TrimSpace(segment)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			return
		}
		segments = append(segments, segment)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		stripped := strings.TrimLeft(line, " \t\v\f")

		switch {
		case stripped == "":
			// blank lines never start or end a segment
		case isContinuation(stripped[0]):
			if current != nil {
				current = append(current, line)
			}
		default:
			flush()
			current = []string{line}
		}
	}
	flush()

	return segments
}

// isContinuation reports whether a line starting with c continues the
// argument list of the preceding header
func isContinuation(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+'
}
