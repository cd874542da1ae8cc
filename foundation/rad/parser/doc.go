// File: doc.go
// Title: Radiance Scene Parser Documentation
// Description: Package documentation for the Radiance scene-text parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial parser

/*
Package parser turns Radiance scene-description text into primitive records.

Parsing happens in two phases:

 1. SplitPrimitives cuts the text into segments. A segment starts at a header
    line (modifier, type, name) and takes every following line whose first
    non-blank character is a digit, '.', '-' or '+'. Comment segments are
    dropped.
 2. ParsePrimitive tokenizes one segment and decodes its arguments. Polygons
    become vertex triples, every other type becomes three count-prefixed
    value groups.

The parser is permissive. Segments without a type are skipped, unknown types
take the generic shape, and unreadable counts are treated as zero. None of
these functions return errors.

Example:

	p, _ := parser.New(parser.Options{Logger: logger})
	result := p.Parse(text)
	for _, prim := range result.Primitives {
		fmt.Println(prim.Name, prim.ArgumentSummary())
	}

For callers that need no logging or statistics, ParseAll does the same work
without a Parser value.
*/
package parser
