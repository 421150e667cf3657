// Package models defines the domain types shared across the runner,
// steps, and persistence layers.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the aggregate record of a single run: step outcomes, collected
// errors and notes, and the extracted contact payload. It is created fresh
// per run, mutated only during that run, and discarded after persistence.
// Mutation is single-threaded; no locking.
type Session struct {
	ID          string            `json:"id"`
	StartedAt   time.Time         `json:"started_at"`
	Target      map[string]string `json:"target"`
	Steps       []StepOutcome     `json:"steps_completed"`
	ContactInfo *ContactInfo      `json:"contact_info,omitempty"`
	Errors      []string          `json:"errors"`
	Notes       []string          `json:"notes"`
}

// NewSession creates a session stamped with the run start time and the
// target identifiers (base URL, contact URL, ...).
func NewSession(target map[string]string) *Session {
	if target == nil {
		target = map[string]string{}
	}

	return &Session{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		Target:    target,
		Steps:     make([]StepOutcome, 0),
		Errors:    make([]string, 0),
		Notes:     make([]string, 0),
	}
}

// Record appends a step outcome, preserving insertion order.
func (s *Session) Record(outcome StepOutcome) {
	s.Steps = append(s.Steps, outcome)
}

// AddError appends an error message. Duplicates are allowed.
func (s *Session) AddError(message string) {
	s.Errors = append(s.Errors, message)
}

// AddNote appends a free-form note. Duplicates are allowed.
func (s *Session) AddNote(message string) {
	s.Notes = append(s.Notes, message)
}

// SetContactInfo sets the extracted contact payload. Last writer wins.
func (s *Session) SetContactInfo(info *ContactInfo) {
	s.ContactInfo = info
}

// CompletedCount returns the number of recorded outcomes with completed status.
func (s *Session) CompletedCount() int {
	count := 0

	for _, outcome := range s.Steps {
		if outcome.Completed() {
			count++
		}
	}

	return count
}
