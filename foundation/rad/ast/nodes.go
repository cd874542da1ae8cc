// File: nodes.go
// Title: Radiance Primitive Records
// Description: Defines the Primitive record with its polygon and generic
//              argument shapes, plus the JSON/YAML encodings of the exported
//              record layout.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial record definitions

package ast

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TypePolygon is the type tag decoded into vertices instead of value groups
const TypePolygon = "polygon"

// Kind tells which argument shape a Primitive carries
type Kind int

const (
	// KindGeneric records carry three count-prefixed value groups
	KindGeneric Kind = iota

	// KindPolygon records carry vertex triples
	KindPolygon
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "polygon"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Vertex is one coordinate group of a polygon. The last group of a polygon
// with a token count not divisible by three may hold fewer than 3 tokens.
type Vertex []string

// IsComplete reports whether the vertex has exactly three coordinates
func (v Vertex) IsComplete() bool {
	return len(v) == 3
}

// GroupCount is the number of argument groups of a generic primitive
const GroupCount = 3

// Values holds the three argument groups of a generic primitive, indexed
// 0..2 (string, real and integer arguments in Radiance terms).
type Values [GroupCount][]string

// Group returns group i, or nil when i is out of range
func (v *Values) Group(i int) []string {
	if v == nil || i < 0 || i >= GroupCount {
		return nil
	}
	return (*v)[i]
}

// Len returns the total number of tokens across all groups
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len((*v)[0]) + len((*v)[1]) + len((*v)[2])
}

// MarshalJSON writes the groups as an object keyed "0", "1", "2"
func (v Values) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.asMap())
}

// UnmarshalJSON reads the object form written by MarshalJSON
func (v *Values) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, group := range raw {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= GroupCount {
			return fmt.Errorf("invalid values group key %q", key)
		}
		(*v)[i] = group
	}
	v.normalize()
	return nil
}

// MarshalYAML writes the groups as a mapping keyed 0, 1, 2
func (v Values) MarshalYAML() (interface{}, error) {
	out := make(map[int][]string, len(v))
	for i, group := range v {
		out[i] = nonNil(group)
	}
	return out, nil
}

func (v Values) asMap() map[string][]string {
	out := make(map[string][]string, len(v))
	for i, group := range v {
		out[strconv.Itoa(i)] = nonNil(group)
	}
	return out
}

func (v *Values) normalize() {
	for i := 0; i < GroupCount; i++ {
		(*v)[i] = nonNil((*v)[i])
	}
}

// Primitive is one decoded Radiance primitive definition
type Primitive struct {
	Modifier string
	Type     string
	Name     string

	// Vertices is set for polygons, Values for every other type
	Vertices []Vertex
	Values   *Values
}

// NewPolygon creates a polygon record
func NewPolygon(modifier, name string, vertices []Vertex) *Primitive {
	if vertices == nil {
		vertices = []Vertex{}
	}
	return &Primitive{
		Modifier: modifier,
		Type:     TypePolygon,
		Name:     name,
		Vertices: vertices,
	}
}

// NewGeneric creates a record for any non-polygon type
func NewGeneric(modifier, typ, name string, values Values) *Primitive {
	values.normalize()
	return &Primitive{
		Modifier: modifier,
		Type:     typ,
		Name:     name,
		Values:   &values,
	}
}

// Kind returns the argument shape of the record
func (p *Primitive) Kind() Kind {
	if p.Type == TypePolygon {
		return KindPolygon
	}
	return KindGeneric
}

// Accept dispatches to the visitor method matching the record kind
func (p *Primitive) Accept(v Visitor) {
	if p.Kind() == KindPolygon {
		v.VisitPolygon(p)
		return
	}
	v.VisitGeneric(p)
}

// ArgumentSummary returns a short description of the arguments, e.g.
// "4 vertices" or "0/0/5 args"
func (p *Primitive) ArgumentSummary() string {
	if p.Kind() == KindPolygon {
		if len(p.Vertices) == 1 {
			return "1 vertex"
		}
		return fmt.Sprintf("%d vertices", len(p.Vertices))
	}
	return fmt.Sprintf("%d/%d/%d args", len(p.Values.Group(0)), len(p.Values.Group(1)), len(p.Values.Group(2)))
}

// String returns the record in Radiance-like notation on one line
func (p *Primitive) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", p.Modifier, p.Type, p.Name)

	if p.Kind() == KindPolygon {
		tokens := 0
		for _, vertex := range p.Vertices {
			tokens += len(vertex)
		}
		fmt.Fprintf(&b, " 0 0 %d", tokens)
		for _, vertex := range p.Vertices {
			b.WriteString(" ")
			b.WriteString(strings.Join(vertex, " "))
		}
		return b.String()
	}

	for i := 0; i < GroupCount; i++ {
		group := p.Values.Group(i)
		fmt.Fprintf(&b, " %d", len(group))
		if len(group) > 0 {
			b.WriteString(" ")
			b.WriteString(strings.Join(group, " "))
		}
	}
	return b.String()
}

type polygonRecord struct {
	Modifier string   `json:"modifier" yaml:"modifier"`
	Type     string   `json:"type" yaml:"type"`
	Name     string   `json:"name" yaml:"name"`
	Vertices []Vertex `json:"vertices" yaml:"vertices,flow"`
}

type genericRecord struct {
	Modifier string `json:"modifier" yaml:"modifier"`
	Type     string `json:"type" yaml:"type"`
	Name     string `json:"name" yaml:"name"`
	Values   Values `json:"values" yaml:"values"`
}

func (p *Primitive) record() interface{} {
	if p.Kind() == KindPolygon {
		vertices := p.Vertices
		if vertices == nil {
			vertices = []Vertex{}
		}
		return polygonRecord{Modifier: p.Modifier, Type: p.Type, Name: p.Name, Vertices: vertices}
	}

	var values Values
	if p.Values != nil {
		values = *p.Values
	}
	values.normalize()
	return genericRecord{Modifier: p.Modifier, Type: p.Type, Name: p.Name, Values: values}
}

// MarshalJSON writes {modifier,type,name,vertices} or {modifier,type,name,values}
func (p *Primitive) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.record())
}

// MarshalYAML writes the same layout as MarshalJSON
func (p *Primitive) MarshalYAML() (interface{}, error) {
	return p.record(), nil
}

// UnmarshalJSON reads either record layout
func (p *Primitive) UnmarshalJSON(data []byte) error {
	var raw struct {
		Modifier string    `json:"modifier"`
		Type     string    `json:"type"`
		Name     string    `json:"name"`
		Vertices *[]Vertex `json:"vertices"`
		Values   *Values   `json:"values"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Modifier, p.Type, p.Name = raw.Modifier, raw.Type, raw.Name
	p.Vertices, p.Values = nil, nil

	if p.Kind() == KindPolygon {
		p.Vertices = []Vertex{}
		if raw.Vertices != nil && *raw.Vertices != nil {
			p.Vertices = *raw.Vertices
		}
		return nil
	}

	values := Values{}
	if raw.Values != nil {
		values = *raw.Values
	}
	values.normalize()
	p.Values = &values
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
