package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pagewalk/pagewalk/pkg/config"
	"github.com/pagewalk/pagewalk/pkg/models"
	"github.com/pagewalk/pagewalk/pkg/persistence"
	"github.com/pagewalk/pagewalk/pkg/protocol"
)

// Controller wires a pipeline, the runner, and persistence into one run. It
// owns the session for the run's duration and computes the final verdict.
type Controller struct {
	cfg    config.Config
	runner *Runner
	store  persistence.Persistence
	logger *slog.Logger
	out    io.Writer
}

// NewController creates a run controller.
func NewController(cfg config.Config, r *Runner, store persistence.Persistence, logger *slog.Logger) *Controller {
	return &Controller{
		cfg:    cfg,
		runner: r,
		store:  store,
		logger: logger.With("module", "controller"),
		out:    os.Stdout,
	}
}

// Execute runs the pipeline against a fresh session, persists the artifacts,
// and prints the run summary. It returns true iff every step completed.
// Persistence failures are logged and do not affect the verdict. A panic
// escaping the run is reported as an error instead of crashing the process.
func (c *Controller) Execute(ctx context.Context, pipeline []protocol.Step) (success bool, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			success = false
			err = fmt.Errorf("unexpected error during run: %v", recovered)
		}
	}()

	session := models.NewSession(c.cfg.Target())

	c.logger.Info("Starting run", "session_id", session.ID, "steps", len(pipeline))
	fmt.Fprintln(c.out, "Starting contact information extraction")
	fmt.Fprintln(c.out, strings.Repeat("=", 60))

	verdict := c.runner.Run(ctx, pipeline, session)

	c.persistArtifacts(ctx, session)
	c.printSummary(session, verdict)

	c.logger.Info("Run finished",
		"session_id", session.ID,
		"succeeded", verdict.Succeeded,
		"total", verdict.Total,
	)

	return verdict.FullSuccess(), nil
}

// persistArtifacts saves the contact payload and the session report.
// Best-effort: a write failure is reported but never aborts the run.
func (c *Controller) persistArtifacts(ctx context.Context, session *models.Session) {
	if session.ContactInfo != nil {
		if err := c.store.SaveContactInfo(ctx, session.ContactInfo); err != nil {
			c.logger.Error("Failed to save contact information", "error", err)
			fmt.Fprintf(c.out, "Failed to save contact information: %v\n", err)
		}
	}

	location, err := c.store.SaveReport(ctx, session)
	if err != nil {
		c.logger.Error("Failed to save session report", "error", err)
		fmt.Fprintf(c.out, "Failed to save session report: %v\n", err)

		return
	}

	fmt.Fprintf(c.out, "Session report saved to: %s\n", location)
}

func (c *Controller) printSummary(session *models.Session, verdict Verdict) {
	fmt.Fprintln(c.out, strings.Repeat("=", 60))
	fmt.Fprintf(c.out, "Run completed: %d/%d steps successful\n", verdict.Succeeded, verdict.Total)

	if len(session.Errors) > 0 {
		fmt.Fprintf(c.out, "Errors encountered: %d\n", len(session.Errors))

		for _, message := range session.Errors {
			fmt.Fprintf(c.out, "   - %s\n", message)
		}
	}

	if len(session.Notes) > 0 {
		fmt.Fprintf(c.out, "Notes: %d\n", len(session.Notes))

		for _, note := range session.Notes {
			fmt.Fprintf(c.out, "   - %s\n", note)
		}
	}
}
