// Package sim provides a simulated automation backend. It serves a fixed set
// of pages with canned visible text and extractable content, which is enough
// to drive the full pipeline without a real browser attached. It doubles as
// the test backend for the step implementations.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var (
	// ErrClosed is returned for any interaction after Close.
	ErrClosed = errors.New("browser session is closed")
	// ErrNoPage is returned when no page has been navigated to yet.
	ErrNoPage = errors.New("no page loaded")
	// ErrUnknownURL is returned when navigating to a URL the backend does not serve.
	ErrUnknownURL = errors.New("unknown url")
	// ErrNoSelectorMatch is returned when none of the candidate selectors match.
	ErrNoSelectorMatch = errors.New("no selector matched")
	// ErrNoContent is returned when the current page has no extractable content.
	ErrNoContent = errors.New("page has no extractable content")
)

// Page is one servable page: its visible text and optional structured content.
type Page struct {
	URL     string
	Text    string
	Content map[string]any
}

// Config describes the simulated site.
type Config struct {
	// Pages served by the backend, keyed by their URL field.
	Pages []Page
	// Links maps a CSS selector to the URL it activates.
	Links map[string]string
	// Latency is the artificial settle time applied to every interaction.
	Latency time.Duration
}

// Browser is a scripted protocol.Browser implementation.
type Browser struct {
	logger  *slog.Logger
	latency time.Duration
	pages   map[string]Page
	links   map[string]string

	mu      sync.Mutex
	current string
	closed  bool
}

// New creates a simulated browser serving the configured site.
func New(cfg Config, logger *slog.Logger) *Browser {
	pages := make(map[string]Page, len(cfg.Pages))
	for _, page := range cfg.Pages {
		pages[page.URL] = page
	}

	links := cfg.Links
	if links == nil {
		links = map[string]string{}
	}

	return &Browser{
		logger:  logger.With("module", "sim_browser"),
		latency: cfg.Latency,
		pages:   pages,
		links:   links,
	}
}

// Navigate loads the given URL if the backend serves it.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	if err := b.settle(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	if _, ok := b.pages[url]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownURL, url)
	}

	b.current = url
	b.logger.Debug("Navigated", "url", url)

	return nil
}

// VisibleText returns the visible text of the current page.
func (b *Browser) VisibleText(ctx context.Context) (string, error) {
	if err := b.settle(ctx); err != nil {
		return "", err
	}

	page, err := b.currentPage()
	if err != nil {
		return "", err
	}

	return page.Text, nil
}

// Activate follows the first candidate selector that maps to a served link.
func (b *Browser) Activate(ctx context.Context, selectors []string) error {
	if err := b.settle(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	for _, selector := range selectors {
		target, ok := b.links[selector]
		if !ok {
			continue
		}

		if _, served := b.pages[target]; !served {
			return fmt.Errorf("%w: %s", ErrUnknownURL, target)
		}

		b.current = target
		b.logger.Debug("Activated selector", "selector", selector, "url", target)

		return nil
	}

	return ErrNoSelectorMatch
}

// ExtractContent returns the structured content of the current page.
func (b *Browser) ExtractContent(ctx context.Context) (map[string]any, error) {
	if err := b.settle(ctx); err != nil {
		return nil, err
	}

	page, err := b.currentPage()
	if err != nil {
		return nil, err
	}

	if len(page.Content) == 0 {
		return nil, ErrNoContent
	}

	content := make(map[string]any, len(page.Content))
	for key, value := range page.Content {
		content[key] = value
	}

	return content, nil
}

// Close ends the session. Further interactions fail with ErrClosed.
func (b *Browser) Close(ctx context.Context) error {
	if err := b.settle(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	b.closed = true
	b.current = ""
	b.logger.Debug("Browser session closed")

	return nil
}

func (b *Browser) currentPage() (Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return Page{}, ErrClosed
	}

	if b.current == "" {
		return Page{}, ErrNoPage
	}

	return b.pages[b.current], nil
}

// settle applies the configured latency, honoring context cancellation so a
// deadline expiry surfaces as an error to the caller.
func (b *Browser) settle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if b.latency <= 0 {
		return nil
	}

	timer := time.NewTimer(b.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
