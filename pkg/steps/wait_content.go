package steps

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pagewalk/pagewalk/pkg/models"
	"github.com/pagewalk/pagewalk/pkg/protocol"
)

// WaitContentID identifies the page-load verification step.
const WaitContentID = "wait_content"

const defaultPreviewLength = 50

// WaitContentFactory builds WaitContentStep instances.
type WaitContentFactory struct {
	browser protocol.Browser
}

func NewWaitContentFactory(browser protocol.Browser) *WaitContentFactory {
	return &WaitContentFactory{browser: browser}
}

func (*WaitContentFactory) ID() string {
	return WaitContentID
}

func (f *WaitContentFactory) Create(config map[string]any) (protocol.Step, error) {
	return &WaitContentStep{
		browser:       f.browser,
		name:          stepName(config, "Wait for homepage load"),
		expect:        configString(config, "expect"),
		previewLength: configInt(config, "preview_length", defaultPreviewLength),
	}, nil
}

// WaitContentStep waits for the current page to settle and verifies its
// visible text, optionally requiring an expected marker substring.
type WaitContentStep struct {
	browser       protocol.Browser
	name          string
	expect        string
	previewLength int
}

func (s *WaitContentStep) Name() string {
	return s.name
}

func (s *WaitContentStep) Execute(ctx context.Context, _ *models.Session, logger *slog.Logger) (map[string]any, error) {
	logger.Info("Waiting for page content")

	text, err := s.browser.VisibleText(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}

	if s.expect != "" && !strings.Contains(text, s.expect) {
		return nil, fmt.Errorf("page content missing expected marker %q", s.expect)
	}

	preview := text
	if len(preview) > s.previewLength {
		preview = preview[:s.previewLength]
	}

	return map[string]any{"content_preview": preview}, nil
}
