// Package runner executes a fixed pipeline of steps against a session and
// derives the run verdict.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pagewalk/pagewalk/pkg/models"
	"github.com/pagewalk/pagewalk/pkg/protocol"
)

// Runner executes steps strictly in declaration order. A failing step is
// recorded and never stops the steps after it; that isolation is the
// central contract here. The runner mutates the session in place and emits
// one human-readable trace line per step on its output stream.
type Runner struct {
	logger      *slog.Logger
	out         io.Writer
	stepTimeout time.Duration
	settleDelay time.Duration
}

// NewRunner creates a runner. stepTimeout bounds each step's execution;
// settleDelay is slept between consecutive steps.
func NewRunner(logger *slog.Logger, stepTimeout, settleDelay time.Duration) *Runner {
	return &Runner{
		logger:      logger.With("module", "runner"),
		out:         os.Stdout,
		stepTimeout: stepTimeout,
		settleDelay: settleDelay,
	}
}

// Run executes every step in order and records exactly one outcome per step
// on the session. Steps never reorder and never run in parallel: later steps
// may depend on browser state left by earlier ones.
func (r *Runner) Run(ctx context.Context, pipeline []protocol.Step, session *models.Session) Verdict {
	for i, step := range pipeline {
		if i > 0 {
			r.settle(ctx)
		}

		outcome := r.runStep(ctx, step, session)
		session.Record(outcome)

		mark := "✓"
		if !outcome.Completed() {
			mark = "✗"
		}

		fmt.Fprintf(r.out, "%s %s: %s\n", mark, outcome.Step, outcome.Status)
	}

	return Verdict{
		Succeeded: session.CompletedCount(),
		Total:     len(pipeline),
	}
}

// runStep invokes a single step and converts any failure, including a panic
// or a timeout, into a failed outcome. Nothing a step does may abort the
// pipeline.
func (r *Runner) runStep(ctx context.Context, step protocol.Step, session *models.Session) (outcome models.StepOutcome) {
	stepCtx := ctx
	if r.stepTimeout > 0 {
		var cancel context.CancelFunc

		stepCtx, cancel = context.WithTimeout(ctx, r.stepTimeout)
		defer cancel()
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			message := fmt.Sprintf("%s: panic: %v", step.Name(), recovered)
			r.logger.Error("Step panicked", "step", step.Name(), "panic", recovered)
			session.AddError(message)
			outcome = failedOutcome(step.Name(), message)
		}
	}()

	r.logger.Info("Executing step", "step", step.Name())

	details, err := step.Execute(stepCtx, session, r.logger)
	if err != nil {
		message := err.Error()
		r.logger.Error("Step failed", "step", step.Name(), "error", err)
		session.AddError(message)

		return failedOutcome(step.Name(), message)
	}

	if details == nil {
		details = map[string]any{}
	}

	return models.StepOutcome{
		Step:      step.Name(),
		Status:    models.StepStatusCompleted,
		Timestamp: time.Now(),
		Details:   details,
	}
}

// settle pauses between steps to let the target page settle. A cancelled
// context skips the pause; the remaining steps then fail fast on their own
// context checks, which keeps one outcome per declared step.
func (r *Runner) settle(ctx context.Context) {
	if r.settleDelay <= 0 {
		return
	}

	timer := time.NewTimer(r.settleDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func failedOutcome(stepName, message string) models.StepOutcome {
	return models.StepOutcome{
		Step:      stepName,
		Status:    models.StepStatusFailed,
		Timestamp: time.Now(),
		Details:   map[string]any{"error": message},
	}
}
