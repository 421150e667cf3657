package models

import "time"

// StepStatus represents the terminal state of a single step execution.
type StepStatus string

const (
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// StepOutcome records the result of one step execution. Outcomes are
// append-only: exactly one per step per run, in execution order.
type StepOutcome struct {
	Step      string         `json:"step"`
	Status    StepStatus     `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Details   map[string]any `json:"details"`
}

// Completed reports whether the step finished without error.
func (o StepOutcome) Completed() bool {
	return o.Status == StepStatusCompleted
}
