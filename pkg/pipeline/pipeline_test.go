package pipeline

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewalk/pagewalk/pkg/browser/sim"
	"github.com/pagewalk/pagewalk/pkg/config"
	"github.com/pagewalk/pagewalk/pkg/registry"
	"github.com/pagewalk/pagewalk/pkg/steps"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry() *registry.Registry {
	browser := sim.New(sim.Config{}, testLogger())
	reg := registry.NewRegistry(testLogger())

	for _, factory := range steps.NewFactories(browser) {
		reg.RegisterStep(factory)
	}

	return reg
}

func writeDefinition(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefaultDefinition(t *testing.T) {
	def := Default(config.Default())

	require.Len(t, def.Steps, 6)

	ids := make([]string, 0, len(def.Steps))
	for _, stepDef := range def.Steps {
		ids = append(ids, stepDef.ID)
	}

	assert.Equal(t, []string{
		steps.NavigateID,
		steps.WaitContentID,
		steps.ContactLinkID,
		steps.ContactPageID,
		steps.ExtractContactID,
		steps.CloseBrowserID,
	}, ids)

	assert.Equal(t, config.DefaultBaseURL, def.Steps[0].Config["url"])
}

func TestLoadValidDefinition(t *testing.T) {
	path := writeDefinition(t, `
name: smoke
steps:
  - id: navigate
    name: Open landing page
    config:
      url: https://example.com
  - id: close_browser
`)

	def, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "smoke", def.Name)
	require.Len(t, def.Steps, 2)
	assert.Equal(t, "navigate", def.Steps[0].ID)
	assert.Equal(t, "Open landing page", def.Steps[0].Name)
	assert.Equal(t, "https://example.com", def.Steps[0].Config["url"])
}

func TestLoadRejectsMissingStepID(t *testing.T) {
	path := writeDefinition(t, `
steps:
  - name: anonymous step
`)

	def, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDefinition)
	assert.Nil(t, def)
}

func TestLoadRejectsEmptyPipeline(t *testing.T) {
	path := writeDefinition(t, `steps: []`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeDefinition(t, `
steps:
  - id: navigate
    retries: 3
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestBuildDefaultPipeline(t *testing.T) {
	def := Default(config.Default())

	built, err := Build(def, testRegistry())
	require.NoError(t, err)
	require.Len(t, built, 6)

	assert.Equal(t, "Navigate to homepage", built[0].Name())
	assert.Equal(t, "Close browser gracefully", built[5].Name())
}

func TestBuildUnknownStepType(t *testing.T) {
	def := &Definition{
		Steps: []StepDefinition{{ID: "teleport"}},
	}

	built, err := Build(def, testRegistry())
	require.Error(t, err)
	assert.Nil(t, built)
	assert.Contains(t, err.Error(), "teleport")
}

func TestBuildAppliesDeclaredName(t *testing.T) {
	def := &Definition{
		Steps: []StepDefinition{
			{
				ID:     steps.NavigateID,
				Name:   "Open landing page",
				Config: map[string]any{"url": "https://example.com"},
			},
		},
	}

	built, err := Build(def, testRegistry())
	require.NoError(t, err)
	require.Len(t, built, 1)
	assert.Equal(t, "Open landing page", built[0].Name())
}
