package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formstrap/pkg/field"
)

// Kind tells how a rule works on markup.
type Kind string

const (
	KindStructural    Kind = "structural"
	KindStringPattern Kind = "string-pattern"
)

// Rule transforms a fragment. Implementations are stateless: Transform is a
// pure function of its arguments and must return fragment unchanged whenever
// AppliesTo(meta) is false.
type Rule interface {
	Name() string
	Kind() Kind
	Stage() field.Stage
	AppliesTo(meta field.Metadata) bool
	Transform(fragment string, meta field.Metadata) string
}

// Predicate decides whether a rule applies to the supplied metadata.
type Predicate func(meta field.Metadata) bool

// DefaultPriority mirrors the priority most built-in rules register with.
const DefaultPriority = 10

type entry struct {
	rule     Rule
	priority int
	order    int
}

// Registry keeps rules in execution order: lower priority values run first,
// ties fall back to registration order. Registration happens once at start-up;
// afterwards the registry is only read and is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	names   map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register adds rule at priority. Names must be unique.
func (r *Registry) Register(rule Rule, priority int) error {
	if r == nil {
		return fmt.Errorf("rules: registry is nil")
	}
	if rule == nil {
		return fmt.Errorf("rules: rule is required")
	}
	name := strings.TrimSpace(rule.Name())
	if name == "" {
		return fmt.Errorf("rules: rule name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.names == nil {
		r.names = make(map[string]struct{})
	}
	if _, exists := r.names[name]; exists {
		return fmt.Errorf("rules: rule %q already registered", name)
	}
	r.names[name] = struct{}{}
	r.entries = append(r.entries, entry{
		rule:     rule,
		priority: priority,
		order:    len(r.entries),
	})
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(rule Rule, priority int) {
	if err := r.Register(rule, priority); err != nil {
		panic(err)
	}
}

// Rules returns every registered rule in execution order.
func (r *Registry) Rules() []Rule {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	entries := append([]entry(nil), r.entries...)
	r.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].priority == entries[j].priority {
			return entries[i].order < entries[j].order
		}
		return entries[i].priority < entries[j].priority
	})
	out := make([]Rule, len(entries))
	for idx, e := range entries {
		out[idx] = e.rule
	}
	return out
}

// Names lists rule names in execution order.
func (r *Registry) Names() []string {
	ordered := r.Rules()
	names := make([]string, len(ordered))
	for idx, rule := range ordered {
		names[idx] = rule.Name()
	}
	return names
}

// Get retrieves a rule by name.
func (r *Registry) Get(name string) (Rule, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.rule.Name() == name {
			return e.rule, true
		}
	}
	return nil, false
}

// Len reports how many rules are registered.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// base carries the identity shared by every rule implementation.
type base struct {
	name    string
	stage   field.Stage
	applies Predicate
}

func (b base) Name() string       { return b.name }
func (b base) Stage() field.Stage { return b.stage }

// AppliesTo reports whether meta targets the rule's stage and satisfies its
// predicate.
func (b base) AppliesTo(meta field.Metadata) bool {
	if meta.EffectiveStage() != b.stage {
		return false
	}
	if b.applies == nil {
		return true
	}
	return b.applies(meta)
}
