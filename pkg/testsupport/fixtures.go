// Package testsupport exposes golden fragment cases shared by the rule,
// pipeline and CLI tests.
package testsupport

import (
	"embed"
	"fmt"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstrap/pkg/field"
)

//go:embed testdata/cases.yaml
var fixtures embed.FS

// Case is a single golden transformation.
type Case struct {
	Name     string         `yaml:"name"`
	Meta     field.Metadata `yaml:"meta"`
	Fragment string         `yaml:"fragment"`
	Want     string         `yaml:"want"`
}

// LoadCases returns the embedded golden cases without requiring testing.T.
func LoadCases() ([]Case, error) {
	data, err := fixtures.ReadFile("testdata/cases.yaml")
	if err != nil {
		return nil, fmt.Errorf("testsupport: read cases: %w", err)
	}
	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("testsupport: parse cases: %w", err)
	}
	return cases, nil
}

// MustLoadCases loads the golden cases or fails the test.
func MustLoadCases(t testing.TB) []Case {
	t.Helper()

	cases, err := LoadCases()
	if err != nil {
		t.Fatalf("load cases: %v", err)
	}
	if len(cases) == 0 {
		t.Fatalf("no golden cases found")
	}
	return cases
}

// MustCase returns the named golden case.
func MustCase(t testing.TB, name string) Case {
	t.Helper()

	for _, c := range MustLoadCases(t) {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("golden case %q not found", name)
	return Case{}
}
