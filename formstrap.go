// Package formstrap adds Bootstrap presentation classes to form renderer
// markup. Annotate covers the common case; New builds a configurable
// pipeline.
package formstrap

import (
	"context"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstrap/pkg/field"
	"github.com/goliatone/go-formstrap/pkg/pipeline"
	"github.com/goliatone/go-formstrap/pkg/vocab"
)

// Metadata describes the field or form a fragment belongs to.
type Metadata = field.Metadata

// FieldType aliases field.Type.
type FieldType = field.Type

// Stage aliases field.Stage.
type Stage = field.Stage

// Choice aliases field.Choice.
type Choice = field.Choice

// Job aliases pipeline.Job for batch callers.
type Job = pipeline.Job

// Pipeline aliases pipeline.Pipeline.
type Pipeline = pipeline.Pipeline

var (
	defaultOnce     sync.Once
	defaultPipeline *pipeline.Pipeline
)

// New builds a pipeline with the built-in Bootstrap rules unless options say
// otherwise.
func New(options ...pipeline.Option) *pipeline.Pipeline {
	return pipeline.New(options...)
}

// Default returns a shared pipeline built without options.
func Default() *pipeline.Pipeline {
	defaultOnce.Do(func() {
		defaultPipeline = pipeline.New()
	})
	return defaultPipeline
}

// Annotate adds Bootstrap classes to fragment using the shared default
// pipeline. It is the simplest entry point for callers that just want
// annotated markup.
func Annotate(fragment string, meta Metadata) string {
	return Default().Apply(fragment, meta)
}

// AnnotateBatch annotates jobs concurrently with the shared default pipeline.
func AnnotateBatch(ctx context.Context, jobs []Job) ([]string, error) {
	return Default().ApplyBatch(ctx, jobs)
}

// WithThemeSelection maps class names through the "class.*" tokens of a
// resolved go-theme selection.
func WithThemeSelection(selection *theme.Selection) pipeline.Option {
	return pipeline.WithVocabulary(vocab.FromSelection(selection))
}

// NewThemed resolves name/variant through selector and builds a pipeline
// emitting that theme's class names.
func NewThemed(selector theme.ThemeSelector, name, variant string, options ...pipeline.Option) (*pipeline.Pipeline, error) {
	v, err := vocab.FromTheme(selector, name, variant)
	if err != nil {
		return nil, err
	}
	return pipeline.New(append(options, pipeline.WithVocabulary(v))...), nil
}
