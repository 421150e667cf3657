// Package protocol defines the contracts between the pipeline runner, the
// step implementations, and the automation backend.
package protocol

import (
	"context"
	"log/slog"

	"github.com/pagewalk/pagewalk/pkg/models"
)

// Step is one named unit of the pipeline. Execute returns a detail payload
// describing what happened, or an error. Steps may append notes to the
// session and set the extracted payload, but outcome recording belongs to
// the runner. A step that depends on a prior step's result must treat
// missing data as absent, not abort the run.
type Step interface {
	Name() string
	Execute(ctx context.Context, session *models.Session, logger *slog.Logger) (map[string]any, error)
}

// StepFactory builds a Step from a configuration map. Factories are
// registered by ID and looked up when a pipeline definition is assembled.
type StepFactory interface {
	ID() string
	Create(config map[string]any) (Step, error)
}
