package rules

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formstrap/pkg/classlist"
	"github.com/goliatone/go-formstrap/pkg/field"
	"github.com/goliatone/go-formstrap/pkg/fragment"
)

// Mutator edits a parsed fragment and reports whether any class list changed.
type Mutator func(doc *fragment.Document, meta field.Metadata) bool

// StructuralRule parses the fragment, lets its mutator edit class lists, and
// serialises the result. When nothing changed the original string is returned
// untouched rather than a re-serialised copy.
type StructuralRule struct {
	base
	mutate Mutator
}

var _ Rule = (*StructuralRule)(nil)

// NewStructuralRule builds a structural rule.
func NewStructuralRule(name string, stage field.Stage, applies Predicate, mutate Mutator) *StructuralRule {
	return &StructuralRule{
		base:   base{name: name, stage: stage, applies: applies},
		mutate: mutate,
	}
}

func (r *StructuralRule) Kind() Kind { return KindStructural }

// Transform parses fragment and applies the mutator when the rule applies.
func (r *StructuralRule) Transform(input string, meta field.Metadata) string {
	if input == "" || r.mutate == nil || !r.AppliesTo(meta) {
		return input
	}
	doc := fragment.Parse(input)
	if !r.mutate(doc, meta) {
		return input
	}
	return doc.Serialize()
}

// Precompiled tag matchers shared by the built-in rules.
var (
	matchInput    = cascadia.MustCompile("input")
	matchTextarea = cascadia.MustCompile("textarea")
	matchSelect   = cascadia.MustCompile("select")
	matchLabel    = cascadia.MustCompile("label")
	matchDiv      = cascadia.MustCompile("div")
	matchSpan     = cascadia.MustCompile("span")
)

// eachNode calls fn for every element in sel and reports whether any call
// changed something.
func eachNode(sel *goquery.Selection, fn func(n *html.Node) bool) bool {
	changed := false
	for _, n := range sel.Nodes {
		if fn(n) {
			changed = true
		}
	}
	return changed
}

// withClass narrows sel to elements carrying token.
func withClass(sel *goquery.Selection, token string) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return classlist.Has(s.Get(0), token)
	})
}

// attrValue returns the value of key on n.
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
