package pipeline

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstrap/pkg/config"
	"github.com/goliatone/go-formstrap/pkg/field"
	"github.com/goliatone/go-formstrap/pkg/metrics"
	"github.com/goliatone/go-formstrap/pkg/rules"
	"github.com/goliatone/go-formstrap/pkg/sanitize"
	"github.com/goliatone/go-formstrap/pkg/vocab"
)

// Pipeline annotates fragments with the rules its registry holds.
type Pipeline struct {
	registry   *rules.Registry
	tables     *config.Tables
	vocab      *vocab.Vocabulary
	dispatcher *Dispatcher
	logger     *zap.Logger
	recorder   metrics.Recorder
	sanitizer  sanitize.Sanitizer
	workers    int
}

// New builds a pipeline. Without options it runs the built-in Bootstrap rules
// over the embedded default tables.
func New(options ...Option) *Pipeline {
	p := &Pipeline{
		logger:   zap.NewNop(),
		recorder: metrics.NoopRecorder{},
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.applyDefaults()
	return p
}

func (p *Pipeline) applyDefaults() {
	if p.registry != nil {
		p.dispatcher = NewDispatcher(p.registry)
		return
	}
	tables := config.Default()
	if p.tables != nil {
		tables = *p.tables
	}
	v := tables.Vocabulary()
	if p.vocab != nil {
		v = *p.vocab
	}
	p.registry = rules.Bootstrap(tables, v)
	p.dispatcher = NewDispatcher(p.registry)
}

// Registry exposes the rule registry the pipeline runs.
func (p *Pipeline) Registry() *rules.Registry {
	return p.registry
}

// Dispatcher exposes the rule selector.
func (p *Pipeline) Dispatcher() *Dispatcher {
	return p.dispatcher
}

// Apply runs every rule selected for meta over fragment, in order. Rules that
// find nothing to change hand their input on untouched, so a fragment that
// needs no annotation comes back byte for byte.
func (p *Pipeline) Apply(fragment string, meta field.Metadata) string {
	stage := string(meta.EffectiveStage())
	start := time.Now()
	defer func() {
		p.recorder.ObserveApplyDuration(stage, time.Since(start))
	}()
	p.recorder.IncFragments(stage)

	selected := p.dispatcher.Select(meta)
	if len(selected) == 0 {
		p.logger.Debug("no rules selected",
			zap.String("stage", stage),
			zap.String("field_type", string(meta.Type)),
			zap.String("form_id", meta.FormID),
		)
		return fragment
	}

	if p.sanitizer != nil {
		fragment = p.sanitizer.Sanitize(fragment)
	}

	for _, rule := range selected {
		next := rule.Transform(fragment, meta)
		changed := next != fragment
		p.recorder.IncRuleApplied(rule.Name(), metrics.OutcomeOf(changed))
		p.logger.Debug("rule applied",
			zap.String("rule", rule.Name()),
			zap.String("kind", string(rule.Kind())),
			zap.String("stage", stage),
			zap.String("field_type", string(meta.Type)),
			zap.String("form_id", meta.FormID),
			zap.Bool("changed", changed),
		)
		fragment = next
	}
	return fragment
}
