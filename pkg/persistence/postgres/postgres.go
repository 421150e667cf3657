// Package postgres provides PostgreSQL persistence for session reports and
// the contact payload.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/pagewalk/pagewalk/pkg/models"
	"github.com/pagewalk/pagewalk/pkg/persistence/sqlbase"
)

// Persistence implements report storage on PostgreSQL. Reports are rows in
// session_reports; the contact payload is a single row upserted in place,
// which gives the same latest-wins semantics as the overwritten file.
type Persistence struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPersistence connects to the database and runs migrations.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := database.PingContext(ctx); err != nil {
		_ = database.Close()

		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	manager := sqlbase.NewMigrationManager(logger, database, migrations())
	if err := manager.RunMigrations(ctx); err != nil {
		_ = database.Close()

		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:     database,
		logger: logger.With("component", "postgres_persistence"),
	}, nil
}

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS session_reports (
				id TEXT PRIMARY KEY,
				started_at TIMESTAMP WITH TIME ZONE NOT NULL,
				document JSONB NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_session_reports_started_at ON session_reports (started_at);

			CREATE TABLE IF NOT EXISTS contact_info (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				payload JSONB NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);
		`,
	}
}

// SaveReport inserts the session document as a new row keyed by session ID.
func (p *Persistence) SaveReport(ctx context.Context, session *models.Session) (string, error) {
	document, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session report: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO session_reports (id, started_at, document)
		VALUES ($1, $2, $3)
	`, session.ID, session.StartedAt, document)
	if err != nil {
		return "", fmt.Errorf("failed to insert session report: %w", err)
	}

	return "session_reports/" + session.ID, nil
}

// SaveContactInfo upserts the single contact payload row.
func (p *Persistence) SaveContactInfo(ctx context.Context, info *models.ContactInfo) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal contact information: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO contact_info (id, payload, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id)
		DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert contact information: %w", err)
	}

	return nil
}

// LatestContactInfo reads the current contact payload, or nil when none has
// been saved yet.
func (p *Persistence) LatestContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	var payload []byte

	err := p.db.QueryRowContext(ctx, "SELECT payload FROM contact_info WHERE id = 1").Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query contact information: %w", err)
	}

	var info models.ContactInfo
	if err := json.Unmarshal(payload, &info); err != nil {
		return nil, fmt.Errorf("failed to decode contact information: %w", err)
	}

	return &info, nil
}

// HealthCheck pings the database.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}

	return nil
}

// Close closes the database connection pool.
func (p *Persistence) Close(_ context.Context) error {
	return p.db.Close()
}
