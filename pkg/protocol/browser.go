package protocol

import "context"

// Browser is the automation backend driven by the pipeline steps. The runner
// only sequences and error-wraps calls to it; it never implements page
// interaction itself. Implementations must honor context deadlines so that a
// hung page interaction surfaces as a step failure instead of blocking the
// run forever.
type Browser interface {
	// Navigate loads the given URL.
	Navigate(ctx context.Context, url string) error

	// VisibleText returns the visible text of the current page once it has
	// settled.
	VisibleText(ctx context.Context) (string, error)

	// Activate tries each selector in order and activates the first element
	// that matches.
	Activate(ctx context.Context, selectors []string) error

	// ExtractContent returns the structured content of the current page.
	ExtractContent(ctx context.Context) (map[string]any, error)

	// Close shuts the backend down. Safe to call once per session.
	Close(ctx context.Context) error
}
