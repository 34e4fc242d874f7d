// Package classlist edits the class attribute of parsed HTML elements as an
// ordered set of tokens. Operations are idempotent and never touch any other
// attribute.
package classlist

import (
	"strings"

	"golang.org/x/net/html"
)

const attrClass = "class"

// Parse splits a class attribute value into tokens, dropping duplicates while
// keeping first-seen order.
func Parse(value string) []string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, token := range fields {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// Normalize re-joins value with single spaces and without duplicates.
func Normalize(value string) string {
	return strings.Join(Parse(value), " ")
}

// Tokens returns the element's class tokens.
func Tokens(n *html.Node) []string {
	value, _ := attr(n)
	return Parse(value)
}

// Has reports whether the element carries token as a whole class token.
func Has(n *html.Node, token string) bool {
	value, _ := attr(n)
	return contains(strings.Fields(value), token)
}

// Add appends every token the element does not carry yet. It reports whether
// the class attribute changed.
func Add(n *html.Node, tokens ...string) bool {
	current := Tokens(n)
	missing := missingTokens(current, tokens)
	if len(missing) == 0 {
		return false
	}
	return set(n, append(current, missing...))
}

// Prepend puts every missing token in front of the existing ones, in the
// order given.
func Prepend(n *html.Node, tokens ...string) bool {
	current := Tokens(n)
	missing := missingTokens(current, tokens)
	if len(missing) == 0 {
		return false
	}
	return set(n, append(missing, current...))
}

// Replace swaps the exact token old for the tokens in with, in place.
// Tokens that merely share a prefix with old are never affected. The result is
// de-duplicated, so replacing old with (old, extra) twice is a no-op the
// second time.
func Replace(n *html.Node, old string, with ...string) bool {
	current := Tokens(n)
	idx := indexOf(current, old)
	if idx < 0 {
		return false
	}
	next := make([]string, 0, len(current)+len(with))
	next = append(next, current[:idx]...)
	next = append(next, with...)
	next = append(next, current[idx+1:]...)
	return set(n, Parse(strings.Join(next, " ")))
}

// Split expands class values that may hold several tokens ("btn btn-primary")
// into individual tokens.
func Split(values ...string) []string {
	var out []string
	for _, value := range values {
		out = append(out, strings.Fields(value)...)
	}
	return out
}

func set(n *html.Node, tokens []string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	joined := strings.Join(tokens, " ")
	previous, ok := attr(n)
	if ok && previous == joined {
		return false
	}
	for idx := range n.Attr {
		if n.Attr[idx].Namespace == "" && n.Attr[idx].Key == attrClass {
			n.Attr[idx].Val = joined
			return true
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: attrClass, Val: joined})
	return true
}

func attr(n *html.Node) (string, bool) {
	if n == nil || n.Type != html.ElementNode {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == attrClass {
			return a.Val, true
		}
	}
	return "", false
}

func missingTokens(current, tokens []string) []string {
	var missing []string
	for _, token := range Split(tokens...) {
		if contains(current, token) || contains(missing, token) {
			continue
		}
		missing = append(missing, token)
	}
	return missing
}

func contains(tokens []string, token string) bool {
	return indexOf(tokens, token) >= 0
}

func indexOf(tokens []string, token string) int {
	for idx, candidate := range tokens {
		if candidate == token {
			return idx
		}
	}
	return -1
}
