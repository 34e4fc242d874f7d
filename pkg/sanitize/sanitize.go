// Package sanitize strips active content from renderer markup before it is
// annotated. Form controls, labels and their attributes survive; scripts,
// event handlers and inline styles do not.
package sanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// Sanitizer cleans a fragment. *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(s string) string
}

// Fragment runs s through the shared form policy.
func Fragment(s string) string {
	if s == "" {
		return ""
	}
	return Policy().Sanitize(s)
}

// Policy returns the shared form markup policy. It is built once and safe for
// concurrent use.
func Policy() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()

		policy.AllowElements(
			"form", "fieldset", "legend", "label", "input", "select", "option",
			"optgroup", "textarea", "button", "div", "span", "ul", "li",
		)
		policy.AllowAttrs("class", "id", "title", "aria-describedby",
			"aria-invalid", "aria-label", "aria-labelledby", "aria-required",
			"aria-hidden", "role", "tabindex",
		).Globally()
		policy.AllowDataAttributes()

		policy.AllowAttrs(
			"type", "name", "value", "placeholder", "checked", "disabled",
			"readonly", "required", "min", "max", "step", "maxlength", "size",
			"autocomplete", "accept", "multiple",
		).OnElements("input")
		policy.AllowAttrs("name", "multiple", "disabled", "required", "size").OnElements("select")
		policy.AllowAttrs("value", "selected", "disabled", "label").OnElements("option")
		policy.AllowAttrs("label", "disabled").OnElements("optgroup")
		policy.AllowAttrs("name", "rows", "cols", "placeholder", "disabled",
			"readonly", "required", "maxlength",
		).OnElements("textarea")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("type", "name", "value", "disabled").OnElements("button")
		policy.AllowAttrs("method", "enctype", "novalidate").OnElements("form")

		formPolicy = policy
	})
	return formPolicy
}

var _ Sanitizer = (*bluemonday.Policy)(nil)
