// Package registry maps step IDs to their factories.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/pagewalk/pagewalk/pkg/protocol"
)

// Registry holds the step factories available for pipeline assembly.
type Registry struct {
	logger        *slog.Logger
	stepFactories map[string]protocol.StepFactory
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:        logger,
		stepFactories: make(map[string]protocol.StepFactory),
	}
}

// RegisterStep registers a step factory under its ID. A factory registered
// twice replaces the earlier one.
func (r *Registry) RegisterStep(factory protocol.StepFactory) {
	if _, exists := r.stepFactories[factory.ID()]; exists {
		r.logger.Warn("Replacing already registered step factory", "step_id", factory.ID())
	}

	r.stepFactories[factory.ID()] = factory
}

// CreateStep builds a step of the given type from its configuration.
func (r *Registry) CreateStep(stepID string, config map[string]any) (protocol.Step, error) {
	factory, ok := r.stepFactories[stepID]
	if !ok {
		return nil, fmt.Errorf("step type '%s' not registered", stepID)
	}

	return factory.Create(config)
}

// StepIDs returns the registered step IDs in sorted order.
func (r *Registry) StepIDs() []string {
	ids := make([]string, 0, len(r.stepFactories))
	for id := range r.stepFactories {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
