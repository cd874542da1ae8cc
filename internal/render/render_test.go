package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/radscene/foundation/core/error"
	radast "github.com/msto63/radscene/foundation/rad/ast"
	"github.com/msto63/radscene/foundation/rad/parser"
)

const scene = `void plastic red 0 0 5 0.7 0.05 0.05 0 0
red polygon floor 0 0 9 0 0 0 1 0 0 1 1 0
void plastic blue 0 0 5 0.1 0.1 0.7 0 0
`

var prettyOptions = Options{Pretty: true, Indent: 2}

func records() []*radast.Primitive {
	return parser.ParseAll(scene)
}

func TestForFormat(t *testing.T) {
	for _, name := range Formats() {
		r, err := ForFormat(name, prettyOptions)
		if err != nil || r == nil {
			t.Errorf("ForFormat(%q) = %v, %v", name, r, err)
		}
	}

	_, err := ForFormat("xml", prettyOptions)
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidFormat) {
		t.Errorf("ForFormat(xml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestJSONRenderer_Pretty(t *testing.T) {
	var buf bytes.Buffer
	r, _ := ForFormat(FormatJSON, Options{Pretty: true, Indent: 2})
	if err := r.Render(&buf, records()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "[\n  {\n    \"modifier\": \"void\",") {
		t.Errorf("unexpected indentation:\n%s", out)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("got %d records, want 3", len(decoded))
	}
	if _, ok := decoded[1]["vertices"]; !ok {
		t.Error("polygon record has no vertices")
	}
	values := decoded[0]["values"].(map[string]interface{})
	if len(values["0"].([]interface{})) != 0 || len(values["2"].([]interface{})) != 5 {
		t.Errorf("unexpected values: %v", values)
	}
}

func TestJSONRenderer_Compact(t *testing.T) {
	var buf bytes.Buffer
	r := &JSONRenderer{Pretty: false, Indent: 2}
	if err := r.Render(&buf, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("empty render = %q, want []", buf.String())
	}
}

func TestJSONLRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONLRenderer{}).Render(&buf, records()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	var p radast.Primitive
	if err := json.Unmarshal([]byte(lines[1]), &p); err != nil {
		t.Fatalf("line 2 invalid: %v", err)
	}
	if p.Name != "floor" || len(p.Vertices) != 3 {
		t.Errorf("decoded %+v", p)
	}
}

func TestYAMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLRenderer{}).Render(&buf, records()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var decoded []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if len(decoded) != 3 {
		t.Fatalf("got %d records, want 3", len(decoded))
	}
	if decoded[2]["name"] != "blue" {
		t.Errorf("third record = %v", decoded[2])
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextRenderer{}).Render(&buf, records()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"MODIFIER", "ARGUMENTS", "floor", "3 vertices", "0/0/5 args", "3 records: plastic 2, polygon 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestTextRenderer_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextRenderer{}).Render(&buf, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "0 records") {
		t.Errorf("empty output = %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_WriteFailure(t *testing.T) {
	for _, name := range Formats() {
		t.Run(name, func(t *testing.T) {
			r, _ := ForFormat(name, prettyOptions)
			err := r.Render(failingWriter{}, records())
			if !mdwerror.HasCode(err, mdwerror.CodeRenderError) {
				t.Errorf("Render() error = %v, want RENDER_ERROR", err)
			}
		})
	}
}
