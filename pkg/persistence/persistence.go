// Package persistence defines the storage contract for session reports and
// the extracted contact payload.
package persistence

import (
	"context"

	"github.com/pagewalk/pagewalk/pkg/models"
)

// Persistence stores run artifacts. Session reports are append-only, one per
// run; the contact payload is a single latest-wins record. Persistence is
// best-effort from the run's point of view: callers log failures and keep
// going.
type Persistence interface {
	// SaveReport writes the full session document and returns its location
	// (a file path or a row reference, backend dependent).
	SaveReport(ctx context.Context, session *models.Session) (string, error)

	// SaveContactInfo overwrites the current contact payload.
	SaveContactInfo(ctx context.Context, info *models.ContactInfo) error

	// LatestContactInfo returns the current contact payload, or nil when
	// none has been saved yet.
	LatestContactInfo(ctx context.Context) (*models.ContactInfo, error)

	// HealthCheck verifies the backend is usable.
	HealthCheck(ctx context.Context) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
