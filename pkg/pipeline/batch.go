package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formstrap/pkg/field"
	"github.com/goliatone/go-formstrap/pkg/metrics"
)

// Job is one fragment to annotate in a batch.
type Job struct {
	ID       string         `json:"id,omitempty" yaml:"id,omitempty"`
	Fragment string         `json:"fragment" yaml:"fragment"`
	Meta     field.Metadata `json:"meta" yaml:"meta"`
}

// ApplyBatch annotates every job on at most WithWorkers goroutines. Results
// line up with jobs by index. A cancelled context stops scheduling further
// jobs and the context error is returned.
func (p *Pipeline) ApplyBatch(ctx context.Context, jobs []Job) ([]string, error) {
	if ctx == nil {
		return nil, errors.New("pipeline: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: apply batch: %w", err)
	}

	results := make([]string, len(jobs))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(p.workers)

	for idx, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				p.recorder.IncBatchJobs(metrics.BatchCanceled)
				return err
			}
			results[idx] = p.Apply(job.Fragment, job.Meta)
			p.recorder.IncBatchJobs(metrics.BatchSuccess)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		p.logger.Warn("batch interrupted", zap.Int("jobs", len(jobs)), zap.Error(err))
		return nil, fmt.Errorf("pipeline: apply batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: apply batch: %w", err)
	}
	return results, nil
}
