// File: parser.go
// Title: Radiance Scene Parser
// Description: Parser wraps splitting and decoding with logging and parse
//              statistics. It keeps no state between calls.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial parser

package parser

import (
	"strings"

	mdwlog "github.com/msto63/radscene/foundation/core/log"
	radast "github.com/msto63/radscene/foundation/rad/ast"
)

// Parser decodes scene text and reports what it did
type Parser struct {
	logger  *mdwlog.Logger
	options Options
}

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger

	// Source names the parsed input in log entries
	Source string
}

// Stats summarizes one Parse call
type Stats struct {
	Segments int            `json:"segments" yaml:"segments"`
	Records  int            `json:"records" yaml:"records"`
	Dropped  int            `json:"dropped" yaml:"dropped"`
	Types    map[string]int `json:"types" yaml:"types"`
	Vertices int            `json:"vertices" yaml:"vertices"`
}

// Result holds the records of one Parse call in source order
type Result struct {
	Primitives []*radast.Primitive
	Stats      Stats
}

// New creates a parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	logger := opts.Logger.WithField("component", "rad-parser")
	if opts.Source != "" {
		logger = logger.WithField("source", opts.Source)
	}

	return &Parser{
		logger:  logger,
		options: opts,
	}, nil
}

// Parse decodes every primitive in text. Segments without a type are
// counted as dropped and logged at debug level.
func (p *Parser) Parse(text string) *Result {
	timer := p.logger.StartTimer("parse").WithLevel(mdwlog.LevelDebug)

	segments := SplitPrimitives(text)
	result := &Result{
		Primitives: make([]*radast.Primitive, 0, len(segments)),
		Stats:      Stats{Segments: len(segments)},
	}

	for i, segment := range segments {
		prim, ok := ParsePrimitive(segment)
		if !ok {
			result.Stats.Dropped++
			p.logger.Debug("Segment without primitive type skipped", mdwlog.Fields{
				"segment": i,
				"text":    preview(segment),
			})
			continue
		}
		result.Primitives = append(result.Primitives, prim)
	}

	types := radast.NewTypeCounter()
	vertices := &radast.VertexCounter{}
	radast.Walk(types, result.Primitives)
	radast.Walk(vertices, result.Primitives)

	result.Stats.Records = len(result.Primitives)
	result.Stats.Types = types.Map()
	result.Stats.Vertices = vertices.Vertices

	if vertices.Short > 0 {
		p.logger.Debug("Polygons with incomplete trailing vertex", mdwlog.Fields{
			"count": vertices.Short,
		})
	}

	timer.WithField("records", result.Stats.Records).Stop()
	p.logger.Info("Scene parsed", mdwlog.Fields{
		"segments": result.Stats.Segments,
		"records":  result.Stats.Records,
		"dropped":  result.Stats.Dropped,
		"types":    len(result.Stats.Types),
	})

	return result
}

// preview shortens a segment to its first line for log output
func preview(segment string) string {
	const maxLen = 60

	line := strings.TrimSpace(segment)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	if len(line) > maxLen {
		line = line[:maxLen] + "..."
	}
	return line
}
