package model

import (
	"time"
)

// Status tracks an action result through its lifecycle. Transitions are
// pending -> running -> {completed | failed | skipped}; terminal states are
// never re-entered.
type Status string

const (
	// StatusPending indicates an action has not started yet.
	StatusPending Status = "pending"
	// StatusRunning indicates an action is actively executing.
	StatusRunning Status = "running"
	// StatusCompleted marks a successful action execution.
	StatusCompleted Status = "completed"
	// StatusFailed marks a failure during action execution.
	StatusFailed Status = "failed"
	// StatusSkipped indicates the action never ran, either because an
	// if_running gate closed the pipeline or because an earlier action failed.
	StatusSkipped Status = "skipped"
)

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

// ActionResult captures the outcome of executing a single action within a
// pipeline run. Results do not outlive the run that produced them.
type ActionResult struct {
	Index       int
	Description string
	Status      Status
	Message     string
	Error       error
	Duration    time.Duration
	Timestamp   time.Time
}
