// Package vocab names the presentation classes rules inject. The defaults are
// Bootstrap 5 class names; a go-theme manifest can remap any of them through
// "class.<name>" tokens so the same rules can target another CSS framework.
package vocab

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Class is a typed identifier for a semantic presentation class. Its value is
// the Bootstrap class name, which doubles as the lookup key for overrides.
type Class string

const (
	FormControl    Class = "form-control"
	FormSelect     Class = "form-select"
	FormLabel      Class = "form-label"
	FormCheckLabel Class = "form-check-label"
	FormCheckInput Class = "form-check-input"
	FormText       Class = "form-text"
	Row            Class = "row"
	Col            Class = "col"
	ColAuto        Class = "col-auto"
	ColMD          Class = "col-md"
	ColMDHalf      Class = "col-md-6"
	Col12          Class = "col-12"
	Col6           Class = "col-6"
	Col4           Class = "col-4"
	Button         Class = "btn"
	ButtonPrimary  Class = "btn-primary"
)

var known = []Class{
	FormControl, FormSelect, FormLabel, FormCheckLabel, FormCheckInput, FormText,
	Row, Col, ColAuto, ColMD, ColMDHalf, Col12, Col6, Col4, Button, ButtonPrimary,
}

// Classes lists every class the built-in rules emit.
func Classes() []Class {
	return append([]Class(nil), known...)
}

// Known reports whether c is emitted by a built-in rule.
func (c Class) Known() bool {
	for _, candidate := range known {
		if candidate == c {
			return true
		}
	}
	return false
}

// TokenPrefix marks theme tokens that override a class name.
const TokenPrefix = "class."

// Vocabulary resolves classes to the tokens written into markup. The zero
// value resolves every class to its Bootstrap name.
type Vocabulary struct {
	overrides map[Class]string
}

// Bootstrap returns the default vocabulary.
func Bootstrap() Vocabulary {
	return Vocabulary{}
}

// New builds a vocabulary from class-name overrides. Blank keys or values are
// ignored.
func New(overrides map[string]string) Vocabulary {
	return Bootstrap().With(overrides)
}

// With returns a copy of v with overrides layered on top.
func (v Vocabulary) With(overrides map[string]string) Vocabulary {
	merged := make(map[Class]string, len(v.overrides)+len(overrides))
	for key, value := range v.overrides {
		merged[key] = value
	}
	for key, value := range overrides {
		key = strings.TrimSpace(key)
		value = strings.Join(strings.Fields(value), " ")
		if key == "" || value == "" {
			continue
		}
		merged[Class(key)] = value
	}
	if len(merged) == 0 {
		return Vocabulary{}
	}
	return Vocabulary{overrides: merged}
}

// Class resolves c. The result may hold several space separated tokens.
func (v Vocabulary) Class(c Class) string {
	if value, ok := v.overrides[c]; ok {
		return value
	}
	return string(c)
}

// Tokens resolves each class and flattens the result into single tokens.
func (v Vocabulary) Tokens(classes ...Class) []string {
	var out []string
	for _, c := range classes {
		out = append(out, strings.Fields(v.Class(c))...)
	}
	return out
}

// Overrides returns the configured overrides sorted by class name.
func (v Vocabulary) Overrides() []string {
	out := make([]string, 0, len(v.overrides))
	for key, value := range v.overrides {
		out = append(out, fmt.Sprintf("%s=%s", key, value))
	}
	sort.Strings(out)
	return out
}

// FromSelection derives a vocabulary from a resolved go-theme selection.
// Manifest tokens apply first, then the selected variant's tokens.
func FromSelection(selection *theme.Selection) Vocabulary {
	if selection == nil || selection.Manifest == nil {
		return Bootstrap()
	}
	overrides := classTokens(selection.Manifest.Tokens)
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range classTokens(variant.Tokens) {
			overrides[key] = value
		}
	}
	return New(overrides)
}

// FromTheme resolves name/variant through selector and derives a vocabulary
// from the selection.
func FromTheme(selector theme.ThemeSelector, name, variant string) (Vocabulary, error) {
	if selector == nil {
		return Bootstrap(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("vocab: select theme %q/%q: %w", name, variant, err)
	}
	return FromSelection(selection), nil
}

func classTokens(tokens map[string]string) map[string]string {
	out := make(map[string]string)
	for key, value := range tokens {
		if !strings.HasPrefix(key, TokenPrefix) {
			continue
		}
		out[strings.TrimPrefix(key, TokenPrefix)] = value
	}
	return out
}
