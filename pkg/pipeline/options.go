package pipeline

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formstrap/pkg/config"
	"github.com/goliatone/go-formstrap/pkg/metrics"
	"github.com/goliatone/go-formstrap/pkg/rules"
	"github.com/goliatone/go-formstrap/pkg/sanitize"
	"github.com/goliatone/go-formstrap/pkg/vocab"
)

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithRegistry replaces the built-in rule set. Tables and vocabulary options
// are ignored when a registry is supplied.
func WithRegistry(registry *rules.Registry) Option {
	return func(p *Pipeline) {
		p.registry = registry
	}
}

// WithTables swaps the lookup tables the built-in rules are built from.
func WithTables(tables config.Tables) Option {
	return func(p *Pipeline) {
		p.tables = &tables
	}
}

// WithVocabulary overrides the class names the built-in rules emit. Without
// it the vocabulary comes from the tables' classes section.
func WithVocabulary(v vocab.Vocabulary) Option {
	return func(p *Pipeline) {
		p.vocab = &v
	}
}

// WithLogger injects a zap logger. Rule applications are logged at debug
// level.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRecorder injects a metrics recorder.
func WithRecorder(recorder metrics.Recorder) Option {
	return func(p *Pipeline) {
		if recorder != nil {
			p.recorder = recorder
		}
	}
}

// WithSanitizer cleans fragments before any rule runs. Fragments that select
// no rules are returned untouched and never sanitised.
func WithSanitizer(s sanitize.Sanitizer) Option {
	return func(p *Pipeline) {
		p.sanitizer = s
	}
}

// WithWorkers bounds ApplyBatch concurrency. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}
