package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formstrap/pkg/field"
	"github.com/goliatone/go-formstrap/pkg/vocab"
)

// Issue is a lint finding. Issues do not stop tables from loading; they point
// at entries that can never take effect.
type Issue struct {
	Location string
	Message  string
}

func (i Issue) String() string {
	return i.Location + " -> " + i.Message
}

// Lint reports entries in t that no built-in rule will ever read, sorted by
// location.
func Lint(t Tables) []Issue {
	var issues []Issue

	for typ := range t.InputTypes {
		if !typ.Known() {
			issues = append(issues, unknownType("input_types > "+string(typ), typ))
		}
	}
	for section, types := range map[string][]field.Type{
		"complex_types": t.ComplexTypes,
		"select_types":  t.SelectTypes,
		"choice_types":  t.ChoiceTypes,
	} {
		for idx, typ := range types {
			if !typ.Known() {
				issues = append(issues, unknownType(fmt.Sprintf("%s[%d]", section, idx), typ))
			}
		}
	}

	for name := range t.Classes {
		if !vocab.Class(name).Known() {
			issues = append(issues, Issue{
				Location: "classes > " + name,
				Message:  fmt.Sprintf("override has no effect, no rule emits %q", name),
			})
		}
	}

	seen := make(map[string]int, len(t.ContainerWidths))
	for idx, mapping := range t.ContainerWidths {
		marker := strings.TrimSpace(mapping.Marker)
		if first, ok := seen[marker]; ok {
			issues = append(issues, Issue{
				Location: fmt.Sprintf("container_widths[%d]", idx),
				Message:  fmt.Sprintf("marker %q already mapped by container_widths[%d]; only the first match is used", marker, first),
			})
			continue
		}
		seen[marker] = idx
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Location == issues[j].Location {
			return issues[i].Message < issues[j].Message
		}
		return issues[i].Location < issues[j].Location
	})
	return issues
}

func unknownType(location string, typ field.Type) Issue {
	names := make([]string, 0, len(field.KnownTypes()))
	for _, known := range field.KnownTypes() {
		names = append(names, string(known))
	}
	return Issue{
		Location: location,
		Message:  fmt.Sprintf("unknown field type %q (supported: %s)", typ, strings.Join(names, ", ")),
	}
}
