package field

import "strings"

// Type is the form renderer's field kind ("email", "name", "list", ...).
type Type string

const (
	TypeText        Type = "text"
	TypeTextarea    Type = "textarea"
	TypeEmail       Type = "email"
	TypePhone       Type = "phone"
	TypeNumber      Type = "number"
	TypeWebsite     Type = "website"
	TypeFileUpload  Type = "fileupload"
	TypeCheckbox    Type = "checkbox"
	TypeRadio       Type = "radio"
	TypeSelect      Type = "select"
	TypeMultiselect Type = "multiselect"
	TypeName        Type = "name"
	TypeAddress     Type = "address"
	TypeDate        Type = "date"
	TypeTime        Type = "time"
	TypeList        Type = "list"
	TypeOther       Type = "other"
)

var knownTypes = map[Type]struct{}{
	TypeText:        {},
	TypeTextarea:    {},
	TypeEmail:       {},
	TypePhone:       {},
	TypeNumber:      {},
	TypeWebsite:     {},
	TypeFileUpload:  {},
	TypeCheckbox:    {},
	TypeRadio:       {},
	TypeSelect:      {},
	TypeMultiselect: {},
	TypeName:        {},
	TypeAddress:     {},
	TypeDate:        {},
	TypeTime:        {},
	TypeList:        {},
	TypeOther:       {},
}

// Known reports whether t is one of the recognised field kinds.
func (t Type) Known() bool {
	_, ok := knownTypes[t]
	return ok
}

// KnownTypes lists the recognised field kinds in declaration order.
func KnownTypes() []Type {
	return []Type{
		TypeText, TypeTextarea, TypeEmail, TypePhone, TypeNumber, TypeWebsite,
		TypeFileUpload, TypeCheckbox, TypeRadio, TypeSelect, TypeMultiselect,
		TypeName, TypeAddress, TypeDate, TypeTime, TypeList, TypeOther,
	}
}

// ParseType normalises raw input into a Type. Unknown values are returned
// as-is so callers can still pass them through (they match no rule).
func ParseType(raw string) Type {
	return Type(strings.ToLower(strings.TrimSpace(raw)))
}

// Stage identifies the extension point a fragment belongs to.
type Stage string

const (
	// StageContent is a field's inner markup (inputs, labels, descriptions).
	StageContent Stage = "content"
	// StageContainer is the wrapper element around a field.
	StageContainer Stage = "container"
	// StageChoices is the choice list markup of checkbox/radio/select fields.
	StageChoices Stage = "choices"
	// StageForm is the complete form markup.
	StageForm Stage = "form"
	// StageSubmit is the submit control markup.
	StageSubmit Stage = "submit"
)

// Stages lists every stage in pipeline order.
func Stages() []Stage {
	return []Stage{StageChoices, StageForm, StageContent, StageContainer, StageSubmit}
}

// ParseStage normalises raw input into a Stage; empty input maps to
// StageContent.
func ParseStage(raw string) Stage {
	trimmed := Stage(strings.ToLower(strings.TrimSpace(raw)))
	if trimmed == "" {
		return StageContent
	}
	return trimmed
}

// Choice is a single option of a choice field.
type Choice struct {
	Text  string `json:"text" yaml:"text"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Metadata accompanies every fragment. It is supplied per call and treated as
// read-only.
type Metadata struct {
	Type           Type     `json:"type" yaml:"type"`
	FormID         string   `json:"formId,omitempty" yaml:"form_id,omitempty"`
	Stage          Stage    `json:"stage,omitempty" yaml:"stage,omitempty"`
	ContainerClass string   `json:"containerClass,omitempty" yaml:"container_class,omitempty"`
	Choices        []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// EffectiveStage returns the metadata stage, defaulting to StageContent.
func (m Metadata) EffectiveStage() Stage {
	if m.Stage == "" {
		return StageContent
	}
	return m.Stage
}

// FieldScoped reports whether the metadata describes a recognised field.
// Field-level stages require this before any rule may fire.
func (m Metadata) FieldScoped() bool {
	return m.Type.Known()
}

// FormScoped reports whether form-level rules (form, submit) may fire: the
// type is either absent or recognised. A populated but unknown type matches
// nothing anywhere.
func (m Metadata) FormScoped() bool {
	return m.Type == "" || m.Type.Known()
}

// Is reports whether the metadata type is one of types.
func (m Metadata) Is(types ...Type) bool {
	for _, t := range types {
		if m.Type == t {
			return true
		}
	}
	return false
}
