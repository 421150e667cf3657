package steps

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pagewalk/pagewalk/pkg/models"
	"github.com/pagewalk/pagewalk/pkg/protocol"
)

// ContactPageID identifies the contact-page load step.
const ContactPageID = "contact_page"

// ContactPageFactory builds ContactPageStep instances.
type ContactPageFactory struct {
	browser protocol.Browser
}

func NewContactPageFactory(browser protocol.Browser) *ContactPageFactory {
	return &ContactPageFactory{browser: browser}
}

func (*ContactPageFactory) ID() string {
	return ContactPageID
}

func (f *ContactPageFactory) Create(config map[string]any) (protocol.Step, error) {
	url := configString(config, "url")
	if url == "" {
		return nil, ErrMissingURL
	}

	return &ContactPageStep{
		browser:          f.browser,
		name:             stepName(config, "Wait for contact page load"),
		url:              url,
		challengeMarkers: configStrings(config, "challenge_markers"),
	}, nil
}

// ContactPageStep loads the contact page and verifies it settled. Security
// challenge interstitials (Cloudflare and similar) are recorded as a session
// note rather than a failure: the page did respond, it just is not the real
// content yet.
type ContactPageStep struct {
	browser          protocol.Browser
	name             string
	url              string
	challengeMarkers []string
}

func (s *ContactPageStep) Name() string {
	return s.name
}

func (s *ContactPageStep) Execute(ctx context.Context, session *models.Session, logger *slog.Logger) (map[string]any, error) {
	logger.Info("Loading contact page", "url", s.url)

	if err := s.browser.Navigate(ctx, s.url); err != nil {
		return nil, fmt.Errorf("failed to load contact page %s: %w", s.url, err)
	}

	text, err := s.browser.VisibleText(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to verify contact page load: %w", err)
	}

	for _, marker := range s.challengeMarkers {
		if strings.Contains(text, marker) {
			note := "Contact page loaded but encountered a security challenge"
			session.AddNote(note)
			logger.Warn("Security challenge detected on contact page", "marker", marker)

			return map[string]any{"note": note}, nil
		}
	}

	return map[string]any{"url": s.url}, nil
}
