package steps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pagewalk/pagewalk/pkg/models"
	"github.com/pagewalk/pagewalk/pkg/protocol"
)

// NavigateID identifies the homepage navigation step.
const NavigateID = "navigate"

// NavigateFactory builds NavigateStep instances.
type NavigateFactory struct {
	browser protocol.Browser
}

func NewNavigateFactory(browser protocol.Browser) *NavigateFactory {
	return &NavigateFactory{browser: browser}
}

func (*NavigateFactory) ID() string {
	return NavigateID
}

func (f *NavigateFactory) Create(config map[string]any) (protocol.Step, error) {
	url := configString(config, "url")
	if url == "" {
		return nil, ErrMissingURL
	}

	return &NavigateStep{
		browser: f.browser,
		name:    stepName(config, "Navigate to homepage"),
		url:     url,
	}, nil
}

// NavigateStep loads the configured URL in the automation backend.
type NavigateStep struct {
	browser protocol.Browser
	name    string
	url     string
}

func (s *NavigateStep) Name() string {
	return s.name
}

func (s *NavigateStep) Execute(ctx context.Context, _ *models.Session, logger *slog.Logger) (map[string]any, error) {
	logger.Info("Navigating", "url", s.url)

	if err := s.browser.Navigate(ctx, s.url); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", s.url, err)
	}

	return map[string]any{"url": s.url}, nil
}
