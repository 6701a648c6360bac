package model

import (
	"time"
)

// PipelineResult is the outcome of one pipeline run: one module's action list
// executed for one fired event.
type PipelineResult struct {
	Module   string
	Event    string
	Actions  []ActionResult
	Duration time.Duration
}

// Failed reports whether any action in the run reached StatusFailed.
func (r *PipelineResult) Failed() bool {
	for i := range r.Actions {
		if r.Actions[i].Status == StatusFailed {
			return true
		}
	}
	return false
}

// Gated reports whether the run was cut short by an if_running gate: some
// actions skipped but none failed.
func (r *PipelineResult) Gated() bool {
	if r.Failed() {
		return false
	}
	for i := range r.Actions {
		if r.Actions[i].Status == StatusSkipped {
			return true
		}
	}
	return false
}

// FirstFailure returns the failing action result, or nil when the run
// completed or was merely gated.
func (r *PipelineResult) FirstFailure() *ActionResult {
	for i := range r.Actions {
		if r.Actions[i].Status == StatusFailed {
			return &r.Actions[i]
		}
	}
	return nil
}

// Counts tallies terminal statuses across the run.
func (r *PipelineResult) Counts() (completed, failed, skipped int) {
	for i := range r.Actions {
		switch r.Actions[i].Status {
		case StatusCompleted:
			completed++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return completed, failed, skipped
}

// EventReport aggregates the independent pipeline outcomes produced by
// dispatching one event. Module isolation means a failed entry never
// invalidates its siblings.
type EventReport struct {
	Event     string
	Pipelines []PipelineResult
	Duration  time.Duration
	Timestamp time.Time
}

// FailedModules lists the modules whose pipeline failed.
func (r *EventReport) FailedModules() []string {
	var names []string
	for i := range r.Pipelines {
		if r.Pipelines[i].Failed() {
			names = append(names, r.Pipelines[i].Module)
		}
	}
	return names
}
