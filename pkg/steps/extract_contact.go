package steps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/pagewalk/pagewalk/pkg/models"
	"github.com/pagewalk/pagewalk/pkg/protocol"
)

// ExtractContactID identifies the contact-extraction step.
const ExtractContactID = "extract_contact"

// ExtractContactFactory builds ExtractContactStep instances.
type ExtractContactFactory struct {
	browser protocol.Browser
}

func NewExtractContactFactory(browser protocol.Browser) *ExtractContactFactory {
	return &ExtractContactFactory{browser: browser}
}

func (*ExtractContactFactory) ID() string {
	return ExtractContactID
}

func (f *ExtractContactFactory) Create(config map[string]any) (protocol.Step, error) {
	return &ExtractContactStep{
		browser: f.browser,
		name:    stepName(config, "Extract contact information"),
		website: configString(config, "website"),
		note:    configString(config, "note"),
		out:     os.Stdout,
	}, nil
}

// ExtractContactStep pulls the structured contact content off the current
// page, sets it as the session's extracted payload, and echoes a short
// summary to standard output.
type ExtractContactStep struct {
	browser protocol.Browser
	name    string
	website string
	note    string
	out     io.Writer
}

func (s *ExtractContactStep) Name() string {
	return s.name
}

func (s *ExtractContactStep) Execute(ctx context.Context, session *models.Session, logger *slog.Logger) (map[string]any, error) {
	logger.Info("Extracting contact information")

	content, err := s.browser.ExtractContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract contact information: %w", err)
	}

	info := s.contactFromContent(content)
	session.SetContactInfo(info)

	fmt.Fprintln(s.out, "Extracted contact information:")
	fmt.Fprintf(s.out, "   Company: %s\n", info.CompanyName)
	fmt.Fprintf(s.out, "   Phone: %s\n", info.Phone)
	fmt.Fprintf(s.out, "   Website: %s\n", info.Website)
	fmt.Fprintf(s.out, "   Focus: %s\n", info.BusinessFocus)
	fmt.Fprintf(s.out, "   Services: %d found\n", len(info.KeyServices))

	return map[string]any{"info_extracted": extractedFields(info)}, nil
}

func (s *ExtractContactStep) contactFromContent(content map[string]any) *models.ContactInfo {
	str := func(key string) string {
		value, _ := content[key].(string)

		return value
	}

	website := s.website
	if website == "" {
		website = str("website")
	}

	note := s.note
	if note == "" {
		note = str("note")
	}

	return &models.ContactInfo{
		CompanyName:         str("company_name"),
		Phone:               str("phone"),
		Website:             website,
		BusinessFocus:       str("business_focus"),
		KeyServices:         configStrings(content, "key_services"),
		ExtractionTimestamp: time.Now(),
		Note:                note,
	}
}

func extractedFields(info *models.ContactInfo) []string {
	fields := make([]string, 0, 7)

	for field, present := range map[string]bool{
		"company_name":         info.CompanyName != "",
		"phone":                info.Phone != "",
		"website":              info.Website != "",
		"business_focus":       info.BusinessFocus != "",
		"key_services":         len(info.KeyServices) > 0,
		"extraction_timestamp": true,
		"note":                 info.Note != "",
	} {
		if present {
			fields = append(fields, field)
		}
	}

	sort.Strings(fields)

	return fields
}
