// File: doc.go
// Title: Radiance Primitive Record Documentation
// Description: Output records produced by the Radiance scene parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial record definitions

/*
Package ast defines the records produced by the Radiance scene parser.

A Primitive carries the three header fields every Radiance primitive has
(modifier, type, name) and one of two argument shapes:

  • Vertices for polygons: coordinate triples, tokens kept as strings
  • Values for every other type: the three count-prefixed argument groups
    (string, real and integer arguments in Radiance terms)

JSON and YAML encodings use a fixed record layout,
so `values` is written as an object keyed "0", "1" and "2".

Records are never mutated after the parser returns them. The Visitor type
and Walk function let callers fold over a record list without switching on
Kind themselves.
*/
package ast
