package models

import "time"

// ContactInfo is the contact payload extracted from the target site. It is
// persisted separately from the session report with latest-wins semantics:
// it represents current known data, not a historical log.
type ContactInfo struct {
	CompanyName         string    `json:"company_name"`
	Phone               string    `json:"phone"`
	Website             string    `json:"website"`
	BusinessFocus       string    `json:"business_focus"`
	KeyServices         []string  `json:"key_services"`
	ExtractionTimestamp time.Time `json:"extraction_timestamp"`
	Note                string    `json:"note,omitempty"`
}
