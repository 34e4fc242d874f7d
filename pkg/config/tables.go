package config

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formstrap/pkg/field"
	"github.com/goliatone/go-formstrap/pkg/vocab"
)

// Markers are the renderer-defined classes rules use to find elements.
type Markers struct {
	ComplexGroup string `yaml:"complex_group"`
	ChoiceInput  string `yaml:"choice_input"`
	Description  string `yaml:"description"`
	Fields       string `yaml:"fields"`
}

// Mapping pairs a marker token with the class it gains.
type Mapping struct {
	Marker string      `yaml:"marker"`
	Class  vocab.Class `yaml:"class"`
}

// Tables holds every lookup table the built-in rules need. Treat a Tables
// value as read-only once handed to a rule constructor.
type Tables struct {
	InputTypes      map[field.Type]string `yaml:"input_types"`
	ComplexTypes    []field.Type          `yaml:"complex_types"`
	SelectTypes     []field.Type          `yaml:"select_types"`
	ChoiceTypes     []field.Type          `yaml:"choice_types"`
	Markers         Markers               `yaml:"markers"`
	ListGrid        []Mapping             `yaml:"list_grid"`
	ContainerWidths []Mapping             `yaml:"container_widths"`
	AddressColumns  []Mapping             `yaml:"address_columns"`
	Classes         map[string]string     `yaml:"classes"`
}

// FormControlType reports whether t renders as a plain form-control input.
func (t Tables) FormControlType(typ field.Type) bool {
	_, ok := t.InputTypes[typ]
	return ok
}

// HTMLInputType reports whether the HTML input type attribute value belongs to
// a form-control field.
func (t Tables) HTMLInputType(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return false
	}
	for _, htmlType := range t.InputTypes {
		if htmlType == value {
			return true
		}
	}
	return false
}

// ComplexType reports whether typ wraps several sub-inputs.
func (t Tables) ComplexType(typ field.Type) bool {
	return containsType(t.ComplexTypes, typ)
}

// SelectType reports whether typ renders a select control.
func (t Tables) SelectType(typ field.Type) bool {
	return containsType(t.SelectTypes, typ)
}

// ChoiceType reports whether typ renders checkbox/radio choices.
func (t Tables) ChoiceType(typ field.Type) bool {
	return containsType(t.ChoiceTypes, typ)
}

// Vocabulary returns the class vocabulary described by Classes.
func (t Tables) Vocabulary() vocab.Vocabulary {
	return vocab.New(t.Classes)
}

// Validate reports the first structural problem in the tables.
func (t Tables) Validate() error {
	if err := t.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (t Tables) validate() error {
	if len(t.InputTypes) == 0 {
		return fmt.Errorf("input_types must not be empty")
	}
	for typ, htmlType := range t.InputTypes {
		if strings.TrimSpace(string(typ)) == "" || strings.TrimSpace(htmlType) == "" {
			return fmt.Errorf("input_types entry %q=%q is incomplete", typ, htmlType)
		}
	}
	markers := map[string]string{
		"complex_group": t.Markers.ComplexGroup,
		"choice_input":  t.Markers.ChoiceInput,
		"description":   t.Markers.Description,
		"fields":        t.Markers.Fields,
	}
	for name, value := range markers {
		if len(strings.Fields(value)) != 1 {
			return fmt.Errorf("marker %s must be a single class token, got %q", name, value)
		}
	}
	for section, mappings := range map[string][]Mapping{
		"list_grid":        t.ListGrid,
		"container_widths": t.ContainerWidths,
		"address_columns":  t.AddressColumns,
	} {
		for idx, mapping := range mappings {
			if len(strings.Fields(mapping.Marker)) != 1 {
				return fmt.Errorf("%s[%d] marker must be a single class token, got %q", section, idx, mapping.Marker)
			}
			if strings.TrimSpace(string(mapping.Class)) == "" {
				return fmt.Errorf("%s[%d] class is required", section, idx)
			}
		}
	}
	return nil
}

func (t Tables) clone() Tables {
	out := t
	out.InputTypes = make(map[field.Type]string, len(t.InputTypes))
	for key, value := range t.InputTypes {
		out.InputTypes[key] = value
	}
	out.ComplexTypes = append([]field.Type(nil), t.ComplexTypes...)
	out.SelectTypes = append([]field.Type(nil), t.SelectTypes...)
	out.ChoiceTypes = append([]field.Type(nil), t.ChoiceTypes...)
	out.ListGrid = append([]Mapping(nil), t.ListGrid...)
	out.ContainerWidths = append([]Mapping(nil), t.ContainerWidths...)
	out.AddressColumns = append([]Mapping(nil), t.AddressColumns...)
	out.Classes = make(map[string]string, len(t.Classes))
	for key, value := range t.Classes {
		out.Classes[key] = value
	}
	return out
}

func containsType(types []field.Type, typ field.Type) bool {
	for _, candidate := range types {
		if candidate == typ {
			return true
		}
	}
	return false
}
