package steps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pagewalk/pagewalk/pkg/models"
	"github.com/pagewalk/pagewalk/pkg/protocol"
)

// ContactLinkID identifies the contact-link activation step.
const ContactLinkID = "contact_link"

// ContactLinkFactory builds ContactLinkStep instances.
type ContactLinkFactory struct {
	browser protocol.Browser
}

func NewContactLinkFactory(browser protocol.Browser) *ContactLinkFactory {
	return &ContactLinkFactory{browser: browser}
}

func (*ContactLinkFactory) ID() string {
	return ContactLinkID
}

func (f *ContactLinkFactory) Create(config map[string]any) (protocol.Step, error) {
	selectors := configStrings(config, "selectors")
	if len(selectors) == 0 {
		return nil, ErrMissingSelectors
	}

	return &ContactLinkStep{
		browser:     f.browser,
		name:        stepName(config, "Locate and click contact link"),
		selectors:   selectors,
		fallbackURL: configString(config, "fallback_url"),
	}, nil
}

// ContactLinkStep tries an ordered list of candidate selectors for the
// contact link. When none match and a fallback URL is configured, it
// navigates there directly instead of failing the step.
type ContactLinkStep struct {
	browser     protocol.Browser
	name        string
	selectors   []string
	fallbackURL string
}

func (s *ContactLinkStep) Name() string {
	return s.name
}

func (s *ContactLinkStep) Execute(ctx context.Context, _ *models.Session, logger *slog.Logger) (map[string]any, error) {
	logger.Info("Locating contact link", "candidates", len(s.selectors))

	err := s.browser.Activate(ctx, s.selectors)
	if err == nil {
		return map[string]any{"method": "selector"}, nil
	}

	if s.fallbackURL == "" {
		return nil, fmt.Errorf("failed to find/click contact link: %w", err)
	}

	logger.Info("No selector matched, navigating directly", "url", s.fallbackURL, "reason", err)

	if navErr := s.browser.Navigate(ctx, s.fallbackURL); navErr != nil {
		return nil, fmt.Errorf("failed to find/click contact link: %w", errors.Join(err, navErr))
	}

	return map[string]any{
		"method": "direct_navigation",
		"url":    s.fallbackURL,
	}, nil
}
