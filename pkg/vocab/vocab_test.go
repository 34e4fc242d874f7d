package vocab

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
)

func TestBootstrapDefaults(t *testing.T) {
	v := Bootstrap()
	if got := v.Class(FormControl); got != "form-control" {
		t.Fatalf("unexpected default %q", got)
	}
	if diff := cmp.Diff([]string{"btn", "btn-primary"}, v.Tokens(Button, ButtonPrimary)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestWithOverridesAndCompoundValues(t *testing.T) {
	v := New(map[string]string{
		"form-control": "  input   input-bordered ",
		"":             "ignored",
		"row":          "  ",
	})
	if diff := cmp.Diff([]string{"input", "input-bordered"}, v.Tokens(FormControl)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if got := v.Class(Row); got != "row" {
		t.Fatalf("blank override must be ignored, got %q", got)
	}
	if diff := cmp.Diff([]string{"form-control=input input-bordered"}, v.Overrides()); diff != "" {
		t.Fatalf("overrides mismatch (-want +got):\n%s", diff)
	}
}

func TestFromSelectionMergesVariantTokens(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "daisy",
		Version: "1.0.0",
		Tokens: map[string]string{
			"class.form-control": "input",
			"class.btn-primary":  "btn-accent",
			"brand":              "#123456",
		},
		Variants: map[string]theme.Variant{
			"compact": {
				Tokens: map[string]string{
					"class.form-control": "input input-sm",
				},
			},
		},
	}
	v := FromSelection(&theme.Selection{Theme: "daisy", Variant: "compact", Manifest: manifest})

	if got := v.Class(FormControl); got != "input input-sm" {
		t.Fatalf("variant override not applied, got %q", got)
	}
	if got := v.Class(ButtonPrimary); got != "btn-accent" {
		t.Fatalf("manifest override not applied, got %q", got)
	}
	if got := v.Class(FormSelect); got != "form-select" {
		t.Fatalf("unmapped class must keep default, got %q", got)
	}
}

func TestFromSelectionNil(t *testing.T) {
	if got := FromSelection(nil).Class(Row); got != "row" {
		t.Fatalf("expected default vocabulary, got %q", got)
	}
}

func TestFromTheme(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme: "acme",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"class.row": "grid"},
		},
	}}
	v, err := FromTheme(selector, "acme", "")
	if err != nil {
		t.Fatalf("from theme: %v", err)
	}
	if got := v.Class(Row); got != "grid" {
		t.Fatalf("expected themed row class, got %q", got)
	}
	if len(selector.calls) != 1 || selector.calls[0] != "acme" {
		t.Fatalf("unexpected selector calls: %v", selector.calls)
	}
}

func TestFromThemeError(t *testing.T) {
	boom := errors.New("missing theme")
	_, err := FromTheme(&stubThemeSelector{err: boom}, "nope", "")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped selector error, got %v", err)
	}
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, name)
	return s.selection, s.err
}

func TestKnownClasses(t *testing.T) {
	if !FormCheckInput.Known() || Class("form-range").Known() {
		t.Fatalf("unexpected class membership")
	}
	classes := Classes()
	classes[0] = "mutated"
	if Classes()[0] != FormControl {
		t.Fatalf("Classes must return a copy")
	}
}
