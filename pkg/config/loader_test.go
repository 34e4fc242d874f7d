package config

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstrap/pkg/field"
	"github.com/goliatone/go-formstrap/pkg/vocab"
)

func TestDefaultTables(t *testing.T) {
	tables := Default()
	if err := tables.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	wantInputs := map[field.Type]string{
		field.TypeText:       "text",
		field.TypeEmail:      "email",
		field.TypePhone:      "tel",
		field.TypeNumber:     "number",
		field.TypeWebsite:    "url",
		field.TypeFileUpload: "file",
	}
	if diff := cmp.Diff(wantInputs, tables.InputTypes); diff != "" {
		t.Fatalf("input types mismatch (-want +got):\n%s", diff)
	}
	if !tables.ComplexType(field.TypeName) || !tables.ComplexType(field.TypeAddress) {
		t.Fatalf("expected name and address to be complex types")
	}
	if tables.Markers.ComplexGroup != "ginput_complex" {
		t.Fatalf("unexpected complex marker %q", tables.Markers.ComplexGroup)
	}
	if len(tables.ListGrid) != 6 || tables.ListGrid[0].Marker != "gfield_list_group" {
		t.Fatalf("unexpected list grid %+v", tables.ListGrid)
	}
	if !tables.HTMLInputType("TEL") || tables.HTMLInputType("checkbox") {
		t.Fatalf("html input type lookup is wrong")
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	first := Default()
	first.InputTypes[field.TypeText] = "mutated"
	first.ListGrid[0].Marker = "mutated"

	second := Default()
	if second.InputTypes[field.TypeText] != "text" {
		t.Fatalf("defaults map shared between copies")
	}
	if second.ListGrid[0].Marker != "gfield_list_group" {
		t.Fatalf("defaults slice shared between copies")
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	tables, err := Load([]byte(`
input_types:
  hidden: hidden
complex_types: [name]
classes:
  form-control: input input-bordered
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tables.InputTypes[field.TypeEmail] != "email" {
		t.Fatalf("expected default input types retained")
	}
	if tables.InputTypes[field.Type("hidden")] != "hidden" {
		t.Fatalf("expected extra input type merged")
	}
	if diff := cmp.Diff([]field.Type{field.TypeName}, tables.ComplexTypes); diff != "" {
		t.Fatalf("complex types mismatch (-want +got):\n%s", diff)
	}
	if got := tables.Vocabulary().Class(vocab.FormControl); got != "input input-bordered" {
		t.Fatalf("class override not applied, got %q", got)
	}
}

func TestLoadEmptyDocumentYieldsDefaults(t *testing.T) {
	tables, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), tables); diff != "" {
		t.Fatalf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load([]byte("input_typez: {}\n"))
	if err == nil || !strings.Contains(err.Error(), "config: parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadRejectsInvalidMappings(t *testing.T) {
	_, err := Load([]byte(`
list_grid:
  - marker: "two tokens"
    class: row
`))
	if err == nil || !strings.Contains(err.Error(), "list_grid[0]") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"tables.yaml": &fstest.MapFile{Data: []byte("markers:\n  complex_group: ginput_group\n")},
	}
	tables, err := LoadFS(fsys, "tables.yaml")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if tables.Markers.ComplexGroup != "ginput_group" {
		t.Fatalf("marker override not applied, got %q", tables.Markers.ComplexGroup)
	}
	if tables.Markers.Description != "gfield_description" {
		t.Fatalf("unset markers must keep defaults, got %q", tables.Markers.Description)
	}

	if _, err := LoadFS(fsys, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	defaults, err := LoadFS(nil, "")
	if err != nil || defaults.Markers.ComplexGroup != "ginput_complex" {
		t.Fatalf("nil fs must yield defaults, got %+v (%v)", defaults.Markers, err)
	}
}

func TestLoadFile(t *testing.T) {
	if _, err := LoadFile("testdata/does-not-exist.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	tables, err := LoadFile("testdata/tailwind.yaml")
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if got := tables.Vocabulary().Class(vocab.Row); got != "grid grid-cols-12" {
		t.Fatalf("unexpected row class %q", got)
	}
}

func TestLoadFSErrorsNameSourceOnce(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.yaml":  &fstest.MapFile{Data: []byte("input_typez: {}\n")},
		"invalid.yaml": &fstest.MapFile{Data: []byte("input_types: {text: \" \"}\n")},
	}
	cases := []struct {
		name   string
		prefix string
	}{
		{name: "broken.yaml", prefix: "config: parse broken.yaml: "},
		{name: "invalid.yaml", prefix: "config: validate invalid.yaml: "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFS(fsys, tc.name)
			if err == nil {
				t.Fatalf("expected error")
			}
			msg := err.Error()
			if !strings.HasPrefix(msg, tc.prefix) {
				t.Fatalf("expected prefix %q, got %q", tc.prefix, msg)
			}
			if n := strings.Count(msg, "config:"); n != 1 {
				t.Fatalf("expected a single config prefix, got %d in %q", n, msg)
			}
		})
	}
}
