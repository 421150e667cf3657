// Package cmd holds construction helpers shared by the command-line
// binaries.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pagewalk/pagewalk/pkg/persistence"
	"github.com/pagewalk/pagewalk/pkg/persistence/file"
	"github.com/pagewalk/pagewalk/pkg/persistence/postgres"
)

// NewPersistence builds the persistence backend selected by the database
// URL. postgres:// URLs get the PostgreSQL backend; everything else is
// treated as a file root.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (persistence.Persistence, error) {
	switch provider(databaseURL) {
	case "postgres", "postgresql":
		store, err := postgres.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres persistence: %w", err)
		}

		return store, nil
	default:
		store, err := file.NewPersistence(databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file persistence: %w", err)
		}

		return store, nil
	}
}

func provider(databaseURL string) string {
	scheme, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	return scheme
}
