package rules

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formstrap/pkg/classlist"
	"github.com/goliatone/go-formstrap/pkg/config"
	"github.com/goliatone/go-formstrap/pkg/field"
	"github.com/goliatone/go-formstrap/pkg/fragment"
	"github.com/goliatone/go-formstrap/pkg/vocab"
)

// Built-in rule names.
const (
	RuleChoiceLabels  = "choice-labels"
	RuleOuterRow      = "outer-row"
	RuleListGrid      = "list-grid"
	RuleDescription   = "description"
	RuleChoiceInputs  = "choice-inputs"
	RuleFormControl   = "form-control"
	RuleFormSelect    = "form-select"
	RuleLabels        = "labels"
	RuleContainerCols = "container-cols"
	RuleNameGrid      = "name-grid"
	RuleDateTimeGrid  = "date-time-grid"
	RuleAddressGrid   = "address-grid"
	RuleSubmitButton  = "submit-button"
)

// ChoiceLabelPriority runs label encoding ahead of every other rule.
const ChoiceLabelPriority = 5

// Bootstrap registers the built-in rules in their fixed order.
func Bootstrap(tables config.Tables, v vocab.Vocabulary) *Registry {
	reg := NewRegistry()
	reg.MustRegister(NewChoiceLabelRule(RuleChoiceLabels), ChoiceLabelPriority)
	for _, rule := range []Rule{
		OuterRow(tables, v),
		ListGrid(tables, v),
		Description(tables, v),
		ChoiceInputs(tables, v),
		FormControl(tables, v),
		FormSelect(v),
		Labels(tables, v),
		ContainerCols(tables, v),
		NameGrid(tables, v),
		DateTimeGrid(tables, v),
		AddressGrid(tables, v),
		SubmitButton(v),
	} {
		reg.MustRegister(rule, DefaultPriority)
	}
	return reg
}

func fieldScoped(meta field.Metadata) bool { return meta.FieldScoped() }
func formScoped(meta field.Metadata) bool  { return meta.FormScoped() }

func ofType(types ...field.Type) Predicate {
	return func(meta field.Metadata) bool {
		return meta.FieldScoped() && meta.Is(types...)
	}
}

// OuterRow marks the form's field list as a grid row.
func OuterRow(tables config.Tables, v vocab.Vocabulary) *PatternRule {
	return NewPatternRule(RuleOuterRow, field.StageForm, formScoped,
		Insertion{Token: tables.Markers.Fields, Add: v.Class(vocab.Row)},
	)
}

// ListGrid lays out list fields with rows and columns.
func ListGrid(tables config.Tables, v vocab.Vocabulary) *PatternRule {
	insertions := make([]Insertion, 0, len(tables.ListGrid))
	for _, mapping := range tables.ListGrid {
		insertions = append(insertions, Insertion{Token: mapping.Marker, Add: v.Class(mapping.Class)})
	}
	return NewPatternRule(RuleListGrid, field.StageContent, ofType(field.TypeList), insertions...)
}

// Description styles field descriptions as help text.
func Description(tables config.Tables, v vocab.Vocabulary) *PatternRule {
	return NewPatternRule(RuleDescription, field.StageContent, fieldScoped,
		Insertion{Token: tables.Markers.Description, Add: v.Class(vocab.FormText)},
	)
}

// ContainerCols sizes a field container from the width marker in its own
// class list. Only the first matching marker is used.
func ContainerCols(tables config.Tables, v vocab.Vocabulary) *PatternRule {
	widths := append([]config.Mapping(nil), tables.ContainerWidths...)
	return NewConditionalPatternRule(RuleContainerCols, field.StageContainer, fieldScoped,
		func(meta field.Metadata) []Insertion {
			classes := classlist.Parse(meta.ContainerClass)
			for _, mapping := range widths {
				if containsToken(classes, mapping.Marker) {
					return []Insertion{{Token: mapping.Marker, Add: v.Class(mapping.Class)}}
				}
			}
			return nil
		},
	)
}

// ChoiceInputs marks checkbox and radio inputs.
func ChoiceInputs(tables config.Tables, v vocab.Vocabulary) *StructuralRule {
	marker := tables.Markers.ChoiceInput
	tokens := v.Tokens(vocab.FormCheckInput)
	return NewStructuralRule(RuleChoiceInputs, field.StageContent,
		func(meta field.Metadata) bool {
			return meta.FieldScoped() && tables.ChoiceType(meta.Type)
		},
		func(doc *fragment.Document, _ field.Metadata) bool {
			return eachNode(withClass(doc.FindMatcher(matchInput), marker), func(n *html.Node) bool {
				return classlist.Add(n, tokens...)
			})
		},
	)
}

// FormControl prepends the form-control class to text-like inputs and every
// textarea.
func FormControl(tables config.Tables, v vocab.Vocabulary) *StructuralRule {
	tokens := v.Tokens(vocab.FormControl)
	return NewStructuralRule(RuleFormControl, field.StageContent, fieldScoped,
		func(doc *fragment.Document, _ field.Metadata) bool {
			inputs := doc.FindMatcher(matchInput).FilterFunction(func(_ int, s *goquery.Selection) bool {
				return tables.HTMLInputType(attrValue(s.Get(0), "type"))
			})
			changed := eachNode(inputs, func(n *html.Node) bool {
				return classlist.Prepend(n, tokens...)
			})
			if eachNode(doc.FindMatcher(matchTextarea), func(n *html.Node) bool {
				return classlist.Prepend(n, tokens...)
			}) {
				changed = true
			}
			return changed
		},
	)
}

// FormSelect prepends the form-select class to every select.
func FormSelect(v vocab.Vocabulary) *StructuralRule {
	tokens := v.Tokens(vocab.FormSelect)
	return NewStructuralRule(RuleFormSelect, field.StageContent, fieldScoped,
		func(doc *fragment.Document, _ field.Metadata) bool {
			return eachNode(doc.FindMatcher(matchSelect), func(n *html.Node) bool {
				return classlist.Prepend(n, tokens...)
			})
		},
	)
}

// Labels styles labels of select, form-control and complex fields as form
// labels, and labels of checkbox/radio fields as check labels. Other field
// types keep their labels as rendered.
func Labels(tables config.Tables, v vocab.Vocabulary) *StructuralRule {
	formLabel := v.Tokens(vocab.FormLabel)
	checkLabel := v.Tokens(vocab.FormCheckLabel)
	labelTokens := func(meta field.Metadata) []string {
		switch {
		case tables.SelectType(meta.Type), tables.FormControlType(meta.Type), tables.ComplexType(meta.Type):
			return formLabel
		case tables.ChoiceType(meta.Type):
			return checkLabel
		}
		return nil
	}
	return NewStructuralRule(RuleLabels, field.StageContent,
		func(meta field.Metadata) bool {
			return meta.FieldScoped() && labelTokens(meta) != nil
		},
		func(doc *fragment.Document, meta field.Metadata) bool {
			tokens := labelTokens(meta)
			return eachNode(doc.FindMatcher(matchLabel), func(n *html.Node) bool {
				return classlist.Prepend(n, tokens...)
			})
		},
	)
}

// NameGrid turns the name field's complex group into a row of auto-sizing
// columns.
func NameGrid(tables config.Tables, v vocab.Vocabulary) *StructuralRule {
	return complexGrid(RuleNameGrid, tables, v, []field.Type{field.TypeName},
		func(group *goquery.Selection) bool {
			tokens := v.Tokens(vocab.ColMD)
			return eachNode(group.FindMatcher(matchSpan), func(n *html.Node) bool {
				return classlist.Add(n, tokens...)
			})
		},
	)
}

// DateTimeGrid lays out date and time sub-inputs as auto-width columns.
func DateTimeGrid(tables config.Tables, v vocab.Vocabulary) *StructuralRule {
	return complexGrid(RuleDateTimeGrid, tables, v, []field.Type{field.TypeDate, field.TypeTime},
		func(group *goquery.Selection) bool {
			tokens := v.Tokens(vocab.ColAuto)
			return eachNode(group.FindMatcher(matchDiv), func(n *html.Node) bool {
				return classlist.Add(n, tokens...)
			})
		},
	)
}

// AddressGrid maps the address field's full/left/right spans onto column
// widths by token replacement.
func AddressGrid(tables config.Tables, v vocab.Vocabulary) *StructuralRule {
	columns := append([]config.Mapping(nil), tables.AddressColumns...)
	return complexGrid(RuleAddressGrid, tables, v, []field.Type{field.TypeAddress},
		func(group *goquery.Selection) bool {
			return eachNode(group.FindMatcher(matchSpan), func(n *html.Node) bool {
				changed := false
				for _, column := range columns {
					with := append([]string{column.Marker}, v.Tokens(column.Class)...)
					if classlist.Replace(n, column.Marker, with...) {
						changed = true
					}
				}
				return changed
			})
		},
	)
}

// complexGrid marks every complex group as a row and hands it to items for
// the per-type column classes.
func complexGrid(name string, tables config.Tables, v vocab.Vocabulary, types []field.Type, items func(group *goquery.Selection) bool) *StructuralRule {
	marker := tables.Markers.ComplexGroup
	row := v.Tokens(vocab.Row)
	return NewStructuralRule(name, field.StageContent, ofType(types...),
		func(doc *fragment.Document, _ field.Metadata) bool {
			changed := false
			withClass(doc.FindMatcher(matchDiv), marker).Each(func(_ int, group *goquery.Selection) {
				if classlist.Add(group.Get(0), row...) {
					changed = true
				}
				if items(group) {
					changed = true
				}
			})
			return changed
		},
	)
}

// SubmitButton styles the first input of the submit markup as the primary
// action. Markup without an input is left alone.
func SubmitButton(v vocab.Vocabulary) *StructuralRule {
	tokens := v.Tokens(vocab.Button, vocab.ButtonPrimary)
	return NewStructuralRule(RuleSubmitButton, field.StageSubmit, formScoped,
		func(doc *fragment.Document, _ field.Metadata) bool {
			button := doc.FindMatcher(matchInput).First()
			if button.Length() == 0 {
				return false
			}
			return classlist.Add(button.Get(0), tokens...)
		},
	)
}

func containsToken(tokens []string, token string) bool {
	token = strings.TrimSpace(token)
	for _, candidate := range tokens {
		if candidate == token {
			return true
		}
	}
	return false
}
