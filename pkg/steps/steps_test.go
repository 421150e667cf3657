package steps

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewalk/pagewalk/pkg/browser/sim"
	"github.com/pagewalk/pagewalk/pkg/models"
)

const (
	homeURL    = "https://example.com"
	contactURL = "https://example.com/contact"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBrowser(links map[string]string) *sim.Browser {
	return sim.New(sim.Config{
		Pages: []sim.Page{
			{
				URL:  homeURL,
				Text: "Example Corp - product engineering company driving transformation.",
			},
			{
				URL:  contactURL,
				Text: "Checking your browser. Cloudflare Ray ID below.",
				Content: map[string]any{
					"company_name":   "Example Corp",
					"phone":          "+1 844 415 0777",
					"business_focus": "product engineering",
					"key_services":   []string{"Cloud Computing", "DevOps"},
				},
			},
		},
		Links: links,
	}, testLogger())
}

func TestNavigateStep(t *testing.T) {
	browser := newTestBrowser(nil)

	step, err := NewNavigateFactory(browser).Create(map[string]any{"url": homeURL})
	require.NoError(t, err)
	assert.Equal(t, "Navigate to homepage", step.Name())

	details, err := step.Execute(context.Background(), models.NewSession(nil), testLogger())
	require.NoError(t, err)
	assert.Equal(t, homeURL, details["url"])
}

func TestNavigateStepUnknownURL(t *testing.T) {
	browser := newTestBrowser(nil)

	step, err := NewNavigateFactory(browser).Create(map[string]any{"url": "https://other.example"})
	require.NoError(t, err)

	_, err = step.Execute(context.Background(), models.NewSession(nil), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to navigate to https://other.example")
}

func TestNavigateFactoryRequiresURL(t *testing.T) {
	_, err := NewNavigateFactory(newTestBrowser(nil)).Create(map[string]any{})
	assert.ErrorIs(t, err, ErrMissingURL)
}

func TestWaitContentStepPreview(t *testing.T) {
	browser := newTestBrowser(nil)
	require.NoError(t, browser.Navigate(context.Background(), homeURL))

	step, err := NewWaitContentFactory(browser).Create(map[string]any{})
	require.NoError(t, err)

	details, err := step.Execute(context.Background(), models.NewSession(nil), testLogger())
	require.NoError(t, err)

	preview, ok := details["content_preview"].(string)
	require.True(t, ok)
	assert.LessOrEqual(t, len(preview), 50)
	assert.Contains(t, "Example Corp - product engineering company driving transformation.", preview)
}

func TestWaitContentStepExpectMarker(t *testing.T) {
	browser := newTestBrowser(nil)
	require.NoError(t, browser.Navigate(context.Background(), homeURL))

	step, err := NewWaitContentFactory(browser).Create(map[string]any{"expect": "no such marker"})
	require.NoError(t, err)

	_, err = step.Execute(context.Background(), models.NewSession(nil), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing expected marker")
}

func TestContactLinkStepSelectorMatch(t *testing.T) {
	browser := newTestBrowser(map[string]string{"a[href*='contact']": contactURL})
	require.NoError(t, browser.Navigate(context.Background(), homeURL))

	step, err := NewContactLinkFactory(browser).Create(map[string]any{
		"selectors": []string{".missing", "a[href*='contact']"},
	})
	require.NoError(t, err)

	details, err := step.Execute(context.Background(), models.NewSession(nil), testLogger())
	require.NoError(t, err)
	assert.Equal(t, "selector", details["method"])
}

func TestContactLinkStepFallback(t *testing.T) {
	browser := newTestBrowser(nil)
	require.NoError(t, browser.Navigate(context.Background(), homeURL))

	step, err := NewContactLinkFactory(browser).Create(map[string]any{
		"selectors":    []any{"a[href*='contact']"},
		"fallback_url": contactURL,
	})
	require.NoError(t, err)

	details, err := step.Execute(context.Background(), models.NewSession(nil), testLogger())
	require.NoError(t, err)
	assert.Equal(t, "direct_navigation", details["method"])
	assert.Equal(t, contactURL, details["url"])

	text, err := browser.VisibleText(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "Checking your browser")
}

func TestContactLinkStepNoFallbackFails(t *testing.T) {
	browser := newTestBrowser(nil)

	step, err := NewContactLinkFactory(browser).Create(map[string]any{
		"selectors": []string{"a[href*='contact']"},
	})
	require.NoError(t, err)

	_, err = step.Execute(context.Background(), models.NewSession(nil), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find/click contact link")
}

func TestContactLinkFactoryRequiresSelectors(t *testing.T) {
	_, err := NewContactLinkFactory(newTestBrowser(nil)).Create(map[string]any{})
	assert.ErrorIs(t, err, ErrMissingSelectors)
}

func TestContactPageStepRecordsChallengeNote(t *testing.T) {
	browser := newTestBrowser(nil)
	session := models.NewSession(nil)

	step, err := NewContactPageFactory(browser).Create(map[string]any{
		"url":               contactURL,
		"challenge_markers": []string{"Cloudflare"},
	})
	require.NoError(t, err)

	details, err := step.Execute(context.Background(), session, testLogger())
	require.NoError(t, err)

	require.Len(t, session.Notes, 1)
	assert.Contains(t, session.Notes[0], "security challenge")
	assert.Contains(t, details["note"], "security challenge")
}

func TestContactPageStepCleanLoad(t *testing.T) {
	browser := newTestBrowser(nil)
	session := models.NewSession(nil)

	step, err := NewContactPageFactory(browser).Create(map[string]any{"url": contactURL})
	require.NoError(t, err)

	details, err := step.Execute(context.Background(), session, testLogger())
	require.NoError(t, err)
	assert.Empty(t, session.Notes)
	assert.Equal(t, contactURL, details["url"])
}

func TestExtractContactStep(t *testing.T) {
	browser := newTestBrowser(nil)
	require.NoError(t, browser.Navigate(context.Background(), contactURL))

	session := models.NewSession(nil)

	var buf bytes.Buffer

	step := &ExtractContactStep{
		browser: browser,
		name:    "Extract contact information",
		website: homeURL,
		out:     &buf,
	}

	details, err := step.Execute(context.Background(), session, testLogger())
	require.NoError(t, err)

	require.NotNil(t, session.ContactInfo)
	assert.Equal(t, "Example Corp", session.ContactInfo.CompanyName)
	assert.Equal(t, "+1 844 415 0777", session.ContactInfo.Phone)
	assert.Equal(t, homeURL, session.ContactInfo.Website)
	assert.Equal(t, []string{"Cloud Computing", "DevOps"}, session.ContactInfo.KeyServices)
	assert.False(t, session.ContactInfo.ExtractionTimestamp.IsZero())

	fields, ok := details["info_extracted"].([]string)
	require.True(t, ok)
	assert.Contains(t, fields, "company_name")
	assert.Contains(t, fields, "phone")

	output := buf.String()
	assert.Contains(t, output, "Company: Example Corp")
	assert.Contains(t, output, "Services: 2 found")
}

func TestExtractContactStepNoContent(t *testing.T) {
	browser := newTestBrowser(nil)
	require.NoError(t, browser.Navigate(context.Background(), homeURL))

	step, err := NewExtractContactFactory(browser).Create(map[string]any{})
	require.NoError(t, err)

	session := models.NewSession(nil)

	_, err = step.Execute(context.Background(), session, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract contact information")
	assert.Nil(t, session.ContactInfo)
}

func TestCloseBrowserStep(t *testing.T) {
	browser := newTestBrowser(nil)

	step, err := NewCloseBrowserFactory(browser).Create(map[string]any{})
	require.NoError(t, err)

	details, err := step.Execute(context.Background(), models.NewSession(nil), testLogger())
	require.NoError(t, err)
	assert.Empty(t, details)

	// A second close fails and would be recorded as a step failure.
	_, err = step.Execute(context.Background(), models.NewSession(nil), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to close browser")
}

func TestConfigStringsAcceptsYAMLLists(t *testing.T) {
	values := configStrings(map[string]any{"selectors": []any{"a", "b", 3}}, "selectors")
	assert.Equal(t, []string{"a", "b"}, values)
}

func TestStepNameOverride(t *testing.T) {
	browser := newTestBrowser(nil)

	step, err := NewNavigateFactory(browser).Create(map[string]any{
		"url":  homeURL,
		"name": "Open landing page",
	})
	require.NoError(t, err)
	assert.Equal(t, "Open landing page", step.Name())
}
