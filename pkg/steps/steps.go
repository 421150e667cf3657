// Package steps contains the pipeline step implementations and their
// factories. Every step drives the automation backend through the
// protocol.Browser interface and reports what it did as a detail payload.
package steps

import (
	"errors"

	"github.com/pagewalk/pagewalk/pkg/protocol"
)

// Static configuration errors.
var (
	ErrMissingURL       = errors.New("missing or invalid 'url' in configuration")
	ErrMissingSelectors = errors.New("missing 'selectors' in configuration")
)

// NewFactories returns the factories for every built-in step, all bound to
// the same browser session.
func NewFactories(browser protocol.Browser) []protocol.StepFactory {
	return []protocol.StepFactory{
		NewNavigateFactory(browser),
		NewWaitContentFactory(browser),
		NewContactLinkFactory(browser),
		NewContactPageFactory(browser),
		NewExtractContactFactory(browser),
		NewCloseBrowserFactory(browser),
	}
}

func configString(config map[string]any, key string) string {
	value, _ := config[key].(string)

	return value
}

func configStrings(config map[string]any, key string) []string {
	switch values := config[key].(type) {
	case []string:
		return values
	case []any:
		out := make([]string, 0, len(values))

		for _, value := range values {
			if s, ok := value.(string); ok {
				out = append(out, s)
			}
		}

		return out
	default:
		return nil
	}
}

func configInt(config map[string]any, key string, fallback int) int {
	switch value := config[key].(type) {
	case int:
		return value
	case float64:
		return int(value)
	default:
		return fallback
	}
}

func stepName(config map[string]any, fallback string) string {
	if name := configString(config, "name"); name != "" {
		return name
	}

	return fallback
}
