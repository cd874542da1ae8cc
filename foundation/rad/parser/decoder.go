// File: decoder.go
// Title: Radiance Primitive Decoder
// Description: Tokenizes a primitive segment and decodes its positional
//              arguments into polygon vertices or generic value groups.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial decoder

package parser

import (
	"strconv"
	"strings"

	radast "github.com/msto63/radscene/foundation/rad/ast"
)

// Field positions shared by every primitive
const (
	fieldModifier = 0
	fieldType     = 1
	fieldName     = 2
	fieldArgs     = 3

	// polygon arguments follow the "0 0 N" count header
	polygonVertexStart = 6
	vertexSize         = 3
)

// Tokenize splits a segment on whitespace runs, newlines included.
// A single tab or newline separates tokens as well as a space does.
func Tokenize(segment string) []string {
	return strings.Fields(segment)
}

// ParsePrimitive decodes one segment. It returns false when the segment has
// no type field.
func ParsePrimitive(segment string) (*radast.Primitive, bool) {
	fields := Tokenize(segment)
	if len(fields) <= fieldType || fields[fieldType] == "" {
		return nil, false
	}

	if fields[fieldType] == radast.TypePolygon {
		return DecodePolygon(fields), true
	}
	return DecodeGeneric(fields), true
}

// DecodePolygon groups the fields after the count header into vertex
// triples. A trailing group with fewer than three tokens is kept.
func DecodePolygon(fields []string) *radast.Primitive {
	vertices := make([]radast.Vertex, 0)
	for i := polygonVertexStart; i < len(fields); i += vertexSize {
		end := i + vertexSize
		if end > len(fields) {
			end = len(fields)
		}
		vertex := make(radast.Vertex, end-i)
		copy(vertex, fields[i:end])
		vertices = append(vertices, vertex)
	}

	return radast.NewPolygon(field(fields, fieldModifier), field(fields, fieldName), vertices)
}

// DecodeGeneric reads the three count-prefixed value groups that follow the
// name. Groups are cut short at the end of the fields.
func DecodeGeneric(fields []string) *radast.Primitive {
	var base []string
	if len(fields) > fieldArgs {
		base = fields[fieldArgs:]
	}

	var values radast.Values
	pos := 0
	for g := 0; g < radast.GroupCount; g++ {
		n := 0
		if pos < len(base) {
			n = parseCount(base[pos])
		}
		pos++

		start := pos
		if start > len(base) {
			start = len(base)
		}
		end := start + n
		if end > len(base) || end < start {
			end = len(base)
		}

		group := make([]string, end-start)
		copy(group, base[start:end])
		values[g] = group
		pos = end
	}

	return radast.NewGeneric(field(fields, fieldModifier), field(fields, fieldType), field(fields, fieldName), values)
}

// parseCount reads an argument count. Anything that is not a non-negative
// integer counts as zero.
func parseCount(token string) int {
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseAll splits text and decodes every segment that has a type
func ParseAll(text string) []*radast.Primitive {
	segments := SplitPrimitives(text)
	prims := make([]*radast.Primitive, 0, len(segments))
	for _, segment := range segments {
		if prim, ok := ParsePrimitive(segment); ok {
			prims = append(prims, prim)
		}
	}
	return prims
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
