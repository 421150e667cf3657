// Package file provides file-based persistence for session reports and the
// contact payload.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pagewalk/pagewalk/pkg/models"
)

const (
	contactFileName  = "contact_information.json"
	reportTimeLayout = "20060102_150405"
)

// Persistence stores run artifacts as JSON files under a root directory.
// Each report gets a new timestamped file; the contact payload lives in a
// single file that is overwritten on every save.
type Persistence struct {
	root string
}

// NewPersistence creates the root directory if needed. The root may carry a
// file:// prefix.
func NewPersistence(root string) (*Persistence, error) {
	cleanRoot := strings.TrimPrefix(root, "file://")

	if err := os.MkdirAll(cleanRoot, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Persistence{root: cleanRoot}, nil
}

// SaveReport writes the session document to session_report_<timestamp>.json.
// The second-granularity timestamp keeps reports from earlier runs intact;
// two runs within the same second colliding is accepted.
func (p *Persistence) SaveReport(_ context.Context, session *models.Session) (string, error) {
	name := fmt.Sprintf("session_report_%s.json", time.Now().Format(reportTimeLayout))
	path := filepath.Join(p.root, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create session report: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(session); err != nil {
		_ = file.Close()

		return "", fmt.Errorf("failed to write session report: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close session report: %w", err)
	}

	return path, nil
}

// SaveContactInfo overwrites contact_information.json with the payload.
func (p *Persistence) SaveContactInfo(_ context.Context, info *models.ContactInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal contact information: %w", err)
	}

	path := filepath.Join(p.root, contactFileName)

	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("failed to write contact information: %w", err)
	}

	return nil
}

// LatestContactInfo reads the current contact payload. A missing file means
// no payload has been saved yet and is not an error.
func (p *Persistence) LatestContactInfo(_ context.Context) (*models.ContactInfo, error) {
	data, err := os.ReadFile(filepath.Join(p.root, contactFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read contact information: %w", err)
	}

	var info models.ContactInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to decode contact information: %w", err)
	}

	return &info, nil
}

// HealthCheck verifies the root directory still exists.
func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); err != nil {
		return fmt.Errorf("output directory unavailable: %w", err)
	}

	return nil
}

// Close is a no-op for file persistence.
func (p *Persistence) Close(_ context.Context) error {
	return nil
}
