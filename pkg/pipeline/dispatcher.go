package pipeline

import (
	"github.com/goliatone/go-formstrap/pkg/field"
	"github.com/goliatone/go-formstrap/pkg/rules"
)

// Dispatcher picks the rules registered for a metadata value.
type Dispatcher struct {
	registry *rules.Registry
}

// NewDispatcher wraps registry.
func NewDispatcher(registry *rules.Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Select returns the rules whose stage and predicate accept meta, in
// execution order. Unknown field types select nothing.
func (d *Dispatcher) Select(meta field.Metadata) []rules.Rule {
	if d == nil || d.registry == nil {
		return nil
	}
	var selected []rules.Rule
	for _, rule := range d.registry.Rules() {
		if rule.AppliesTo(meta) {
			selected = append(selected, rule)
		}
	}
	return selected
}

// Names is Select reduced to rule names.
func (d *Dispatcher) Names(meta field.Metadata) []string {
	selected := d.Select(meta)
	names := make([]string, len(selected))
	for idx, rule := range selected {
		names[idx] = rule.Name()
	}
	return names
}
