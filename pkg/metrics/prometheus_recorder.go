package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "formstrap"

// Batch job results.
const (
	BatchSuccess  = "success"
	BatchCanceled = "canceled"
)

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	ruleApplied   *prom.CounterVec
	applyDuration *prom.HistogramVec
	fragments     *prom.CounterVec
	batchJobs     *prom.CounterVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder creates the collectors and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		ruleApplied: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "rule_applied_total",
			Help:      "Rule applications by rule and outcome",
		}, []string{"rule", "outcome"}),
		applyDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "apply_duration_seconds",
			Help:      "Time spent annotating a single fragment",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		fragments: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "fragments_total",
			Help:      "Fragments processed by stage",
		}, []string{"stage"}),
		batchJobs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "batch_jobs_total",
			Help:      "Batch jobs by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.ruleApplied, pr.applyDuration, pr.fragments, pr.batchJobs)
	return pr
}

func (p *PrometheusRecorder) IncRuleApplied(rule string, outcome Outcome) {
	if p == nil || p.ruleApplied == nil {
		return
	}
	p.ruleApplied.WithLabelValues(rule, string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveApplyDuration(stage string, d time.Duration) {
	if p == nil || p.applyDuration == nil {
		return
	}
	p.applyDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFragments(stage string) {
	if p == nil || p.fragments == nil {
		return
	}
	p.fragments.WithLabelValues(stage).Inc()
}

func (p *PrometheusRecorder) IncBatchJobs(result string) {
	if p == nil || p.batchJobs == nil {
		return
	}
	p.batchJobs.WithLabelValues(result).Inc()
}
