// File: visitor.go
// Title: Primitive Visitor
// Description: Visitor pattern for folding over parsed primitive records,
//              with counters used by the CLI summary, the store and the
//              terminal viewer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial visitor with type and vertex counters

package ast

import (
	"sort"
)

// Visitor receives each record according to its kind
type Visitor interface {
	VisitPolygon(p *Primitive)
	VisitGeneric(p *Primitive)
}

// Walk visits every non-nil record in order
func Walk(v Visitor, prims []*Primitive) {
	for _, p := range prims {
		if p != nil {
			p.Accept(v)
		}
	}
}

// BaseVisitor ignores every record. Embed it to override only the methods
// you need.
type BaseVisitor struct{}

func (BaseVisitor) VisitPolygon(*Primitive) {}
func (BaseVisitor) VisitGeneric(*Primitive) {}

// TypeCount is the number of records seen for one type tag
type TypeCount struct {
	Type  string
	Count int
}

// TypeCounter counts records per type tag
type TypeCounter struct {
	counts map[string]int
	total  int
}

// NewTypeCounter creates an empty counter
func NewTypeCounter() *TypeCounter {
	return &TypeCounter{counts: make(map[string]int)}
}

func (c *TypeCounter) VisitPolygon(p *Primitive) { c.add(p.Type) }
func (c *TypeCounter) VisitGeneric(p *Primitive) { c.add(p.Type) }

func (c *TypeCounter) add(typ string) {
	c.counts[typ]++
	c.total++
}

// Total returns the number of records visited
func (c *TypeCounter) Total() int {
	return c.total
}

// Count returns the number of records of the given type
func (c *TypeCounter) Count(typ string) int {
	return c.counts[typ]
}

// Counts returns the per-type counts, most frequent first, ties by name
func (c *TypeCounter) Counts() []TypeCount {
	result := make([]TypeCount, 0, len(c.counts))
	for typ, n := range c.counts {
		result = append(result, TypeCount{Type: typ, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Type < result[j].Type
	})
	return result
}

// Map returns a copy of the per-type counts
func (c *TypeCounter) Map() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// VertexCounter counts polygons and their vertices
type VertexCounter struct {
	BaseVisitor
	Polygons int
	Vertices int
	// Short counts trailing vertex groups with fewer than three tokens
	Short int
}

func (c *VertexCounter) VisitPolygon(p *Primitive) {
	c.Polygons++
	c.Vertices += len(p.Vertices)
	for _, v := range p.Vertices {
		if !v.IsComplete() {
			c.Short++
		}
	}
}
