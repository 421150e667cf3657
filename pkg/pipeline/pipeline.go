// Package pipeline loads and assembles pipeline definitions. A definition is
// a statically ordered list of step declarations; it supports no branching,
// retries, or parallel steps.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/pagewalk/pagewalk/pkg/config"
	"github.com/pagewalk/pagewalk/pkg/protocol"
	"github.com/pagewalk/pagewalk/pkg/registry"
	"github.com/pagewalk/pagewalk/pkg/steps"
)

// ErrInvalidDefinition is returned when a definition fails schema validation.
var ErrInvalidDefinition = errors.New("invalid pipeline definition")

// StepDefinition declares one step: the registered step type, an optional
// display name, and the type-specific configuration.
type StepDefinition struct {
	ID     string         `yaml:"id"               json:"id"`
	Name   string         `yaml:"name,omitempty"   json:"name,omitempty"`
	Config map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
}

// Definition is an ordered pipeline of step declarations.
type Definition struct {
	Name  string           `yaml:"name,omitempty" json:"name,omitempty"`
	Steps []StepDefinition `yaml:"steps"          json:"steps"`
}

// Load reads a YAML definition file and validates it against the definition
// schema before accepting it.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline definition: %w", err)
	}

	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline definition: %w", err)
	}

	if err := validateDocument(document); err != nil {
		return nil, err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to decode pipeline definition: %w", err)
	}

	return &def, nil
}

func validateDocument(document any) error {
	schemaLoader := gojsonschema.NewStringLoader(definitionSchema)
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate pipeline definition: %w", err)
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}

		return fmt.Errorf("%w: %s", ErrInvalidDefinition, strings.Join(messages, "; "))
	}

	return nil
}

// Build resolves each step declaration through the registry, in declaration
// order. Unknown step types are a load-time error, not a run-time failure.
func Build(def *Definition, reg *registry.Registry) ([]protocol.Step, error) {
	built := make([]protocol.Step, 0, len(def.Steps))

	for _, stepDef := range def.Steps {
		cfg := stepDef.Config
		if cfg == nil {
			cfg = map[string]any{}
		}

		if stepDef.Name != "" {
			merged := make(map[string]any, len(cfg)+1)
			for key, value := range cfg {
				merged[key] = value
			}

			merged["name"] = stepDef.Name
			cfg = merged
		}

		step, err := reg.CreateStep(stepDef.ID, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to build step '%s': %w", stepDef.ID, err)
		}

		built = append(built, step)
	}

	return built, nil
}

// Default returns the built-in contact extraction pipeline for the
// configured target.
func Default(cfg config.Config) *Definition {
	return &Definition{
		Name: "contact-extraction",
		Steps: []StepDefinition{
			{
				ID:     steps.NavigateID,
				Name:   "Navigate to homepage",
				Config: map[string]any{"url": cfg.BaseURL},
			},
			{
				ID:   steps.WaitContentID,
				Name: "Wait for homepage load",
			},
			{
				ID:   steps.ContactLinkID,
				Name: "Locate and click contact link",
				Config: map[string]any{
					"selectors": []string{
						"a[href*='contact']",
						"a[href*='contact-us']",
						"a[href='/contact-us/']",
						".contact-link",
						"nav a[href='/contact']",
					},
					"fallback_url": cfg.ContactURL,
				},
			},
			{
				ID:   steps.ContactPageID,
				Name: "Wait for contact page load",
				Config: map[string]any{
					"url":               cfg.ContactURL,
					"challenge_markers": []string{"Cloudflare", "Verify you are human"},
				},
			},
			{
				ID:     steps.ExtractContactID,
				Name:   "Extract contact information",
				Config: map[string]any{"website": cfg.BaseURL},
			},
			{
				ID:   steps.CloseBrowserID,
				Name: "Close browser gracefully",
			},
		},
	}
}
