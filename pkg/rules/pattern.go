package rules

import (
	"strings"

	"github.com/goliatone/go-formstrap/pkg/field"
	"github.com/goliatone/go-formstrap/pkg/htmlescape"
)

// Insertion appends Add right after every whole-word occurrence of Token.
// Add may hold several space separated tokens.
type Insertion struct {
	Token string
	Add   string
}

// InsertAfterToken inserts add immediately after each occurrence of token
// that is bounded on both sides by a quote or whitespace character. Tokens
// that merely contain token ("gform_fields_1", "ginput_fullwidth") are never
// matched. Tokens of add already present in the surrounding class value are
// not inserted again, and a run of class tokens that repeats token receives
// the insertion once, which makes the operation idempotent.
func InsertAfterToken(s, token, add string) string {
	addTokens := strings.Fields(add)
	if token == "" || len(addTokens) == 0 || strings.IndexFunc(token, isSpace) >= 0 {
		return s
	}

	var b strings.Builder
	last, from := 0, 0
	var extended map[int]struct{}
	for from+len(token) <= len(s) {
		idx := strings.Index(s[from:], token)
		if idx < 0 {
			break
		}
		start := from + idx
		end := start + len(token)
		if !boundaryAt(s, start-1) || !boundaryAt(s, end) {
			from = start + 1
			continue
		}
		left := runStart(s, start)
		if _, done := extended[left]; done {
			from = end
			continue
		}
		if missing := missingFromRun(s, left, end, addTokens); len(missing) > 0 {
			if extended == nil {
				extended = make(map[int]struct{})
			}
			extended[left] = struct{}{}
			b.WriteString(s[last:end])
			b.WriteByte(' ')
			b.WriteString(strings.Join(missing, " "))
			last = end
		}
		from = end
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// ApplyInsertions runs insertions over s in the order given. Because tokens
// match whole words only, a key that is a prefix of another key never
// inserts into the longer token.
func ApplyInsertions(s string, insertions ...Insertion) string {
	for _, ins := range insertions {
		s = InsertAfterToken(s, ins.Token, ins.Add)
	}
	return s
}

func boundaryAt(s string, idx int) bool {
	if idx < 0 || idx >= len(s) {
		return false
	}
	switch s[idx] {
	case '"', '\'', ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// runStart returns the offset where the run of class tokens containing
// s[idx] begins. A run stops at quotes, '=' and tag delimiters.
func runStart(s string, idx int) int {
	for idx > 0 && !runStop(s[idx-1]) {
		idx--
	}
	return idx
}

// missingFromRun returns the tokens of add that do not occur in the run
// starting at left and extending past end.
func missingFromRun(s string, left, end int, add []string) []string {
	right := end
	for right < len(s) && !runStop(s[right]) {
		right++
	}
	present := make(map[string]struct{})
	for _, token := range strings.Fields(s[left:right]) {
		present[token] = struct{}{}
	}
	var missing []string
	for _, token := range add {
		if _, ok := present[token]; ok {
			continue
		}
		present[token] = struct{}{}
		missing = append(missing, token)
	}
	return missing
}

func runStop(c byte) bool {
	switch c {
	case '"', '\'', '<', '>', '=':
		return true
	}
	return false
}

// PatternRule rewrites raw markup through token insertions without parsing.
type PatternRule struct {
	base
	insertions func(meta field.Metadata) []Insertion
}

var _ Rule = (*PatternRule)(nil)

// NewPatternRule builds a rule applying a fixed list of insertions in order.
func NewPatternRule(name string, stage field.Stage, applies Predicate, insertions ...Insertion) *PatternRule {
	fixed := append([]Insertion(nil), insertions...)
	return &PatternRule{
		base: base{name: name, stage: stage, applies: applies},
		insertions: func(field.Metadata) []Insertion {
			return fixed
		},
	}
}

// NewConditionalPatternRule builds a rule whose insertions depend on the
// metadata, e.g. on the container's own class list.
func NewConditionalPatternRule(name string, stage field.Stage, applies Predicate, insertions func(meta field.Metadata) []Insertion) *PatternRule {
	return &PatternRule{
		base:       base{name: name, stage: stage, applies: applies},
		insertions: insertions,
	}
}

func (r *PatternRule) Kind() Kind { return KindStringPattern }

// Transform applies the rule's insertions when it applies to meta.
func (r *PatternRule) Transform(fragment string, meta field.Metadata) string {
	if fragment == "" || r.insertions == nil || !r.AppliesTo(meta) {
		return fragment
	}
	return ApplyInsertions(fragment, r.insertions(meta)...)
}

// ChoiceLabelRule HTML-encodes choice labels that the renderer emitted raw
// between two tags (">label<").
type ChoiceLabelRule struct {
	base
}

var _ Rule = (*ChoiceLabelRule)(nil)

// NewChoiceLabelRule builds the label-encoding rule for the choices stage.
func NewChoiceLabelRule(name string) *ChoiceLabelRule {
	return &ChoiceLabelRule{base: base{
		name:  name,
		stage: field.StageChoices,
		applies: func(meta field.Metadata) bool {
			return meta.FieldScoped() && len(meta.Choices) > 0
		},
	}}
}

func (r *ChoiceLabelRule) Kind() Kind { return KindStringPattern }

// Transform replaces each raw choice label with its escaped form.
func (r *ChoiceLabelRule) Transform(fragment string, meta field.Metadata) string {
	if fragment == "" || !r.AppliesTo(meta) {
		return fragment
	}
	for _, choice := range meta.Choices {
		if choice.Text == "" {
			continue
		}
		escaped := htmlescape.String(choice.Text)
		if escaped == choice.Text {
			continue
		}
		fragment = strings.ReplaceAll(fragment, ">"+choice.Text+"<", ">"+escaped+"<")
	}
	return fragment
}
