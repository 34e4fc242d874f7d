package main

import (
	"fmt"
	"os"
	"sort"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstrap/pkg/metrics"
	"github.com/goliatone/go-formstrap/pkg/pipeline"
)

// batchResult is one entry of the batch output document.
type batchResult struct {
	ID       string `yaml:"id,omitempty"`
	Fragment string `yaml:"fragment"`
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		workers     int
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "batch <jobs.yaml>",
		Short: "Annotate a YAML list of fragments concurrently",
		Long: `Reads a YAML list of jobs, each with an id, a fragment and its meta
(type, form_id, stage, container_class, choices), and prints the annotated
fragments as YAML in the same order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("formstrap: read %s: %w", args[0], err)
			}
			var jobs []pipeline.Job
			if err := yaml.Unmarshal(data, &jobs); err != nil {
				return fmt.Errorf("formstrap: parse %s: %w", args[0], err)
			}

			reg := prom.NewRegistry()
			p, err := a.pipeline(
				pipeline.WithWorkers(workers),
				pipeline.WithRecorder(metrics.NewPrometheusRecorder(reg)),
			)
			if err != nil {
				return err
			}

			results, err := p.ApplyBatch(cmd.Context(), jobs)
			if err != nil {
				return err
			}
			a.logger.Info("batch complete", zap.Int("jobs", len(jobs)), zap.Int("workers", workers))

			out := make([]batchResult, len(jobs))
			for idx, job := range jobs {
				out[idx] = batchResult{ID: job.ID, Fragment: results[idx]}
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("formstrap: encode results: %w", err)
			}
			if err := enc.Close(); err != nil {
				return fmt.Errorf("formstrap: encode results: %w", err)
			}

			if showMetrics {
				return writeCounters(cmd, reg)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Maximum fragments annotated at once")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print rule counters to stderr when done")
	return cmd
}

// writeCounters prints every counter sample gathered from reg.
func writeCounters(cmd *cobra.Command, reg *prom.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("formstrap: gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s%s %v", mf.GetName(), labels, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(cmd.ErrOrStderr(), line); err != nil {
			return err
		}
	}
	return nil
}
