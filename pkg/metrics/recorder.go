package metrics

import "time"

// Outcome labels a single rule application.
type Outcome string

const (
	OutcomeChanged   Outcome = "changed"
	OutcomeUnchanged Outcome = "unchanged"
)

// OutcomeOf maps a changed flag to its label.
func OutcomeOf(changed bool) Outcome {
	if changed {
		return OutcomeChanged
	}
	return OutcomeUnchanged
}

// Recorder receives pipeline observations. Implementations must be safe for
// concurrent use.
type Recorder interface {
	IncRuleApplied(rule string, outcome Outcome)
	ObserveApplyDuration(stage string, d time.Duration)
	IncFragments(stage string)
	IncBatchJobs(result string)
}

// NoopRecorder drops every observation.
type NoopRecorder struct{}

func (NoopRecorder) IncRuleApplied(string, Outcome)              {}
func (NoopRecorder) ObserveApplyDuration(string, time.Duration) {}
func (NoopRecorder) IncFragments(string)                        {}
func (NoopRecorder) IncBatchJobs(string)                        {}

var _ Recorder = NoopRecorder{}
