package steps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pagewalk/pagewalk/pkg/models"
	"github.com/pagewalk/pagewalk/pkg/protocol"
)

// CloseBrowserID identifies the session teardown step.
const CloseBrowserID = "close_browser"

// CloseBrowserFactory builds CloseBrowserStep instances.
type CloseBrowserFactory struct {
	browser protocol.Browser
}

func NewCloseBrowserFactory(browser protocol.Browser) *CloseBrowserFactory {
	return &CloseBrowserFactory{browser: browser}
}

func (*CloseBrowserFactory) ID() string {
	return CloseBrowserID
}

func (f *CloseBrowserFactory) Create(config map[string]any) (protocol.Step, error) {
	return &CloseBrowserStep{
		browser: f.browser,
		name:    stepName(config, "Close browser gracefully"),
	}, nil
}

// CloseBrowserStep shuts the automation backend down. It runs as a regular
// pipeline step so a failed teardown is recorded like any other failure.
type CloseBrowserStep struct {
	browser protocol.Browser
	name    string
}

func (s *CloseBrowserStep) Name() string {
	return s.name
}

func (s *CloseBrowserStep) Execute(ctx context.Context, _ *models.Session, logger *slog.Logger) (map[string]any, error) {
	logger.Info("Closing browser session")

	if err := s.browser.Close(ctx); err != nil {
		return nil, fmt.Errorf("failed to close browser: %w", err)
	}

	return map[string]any{}, nil
}
