package main

import (
	"time"

	"github.com/pagewalk/pagewalk/pkg/browser/sim"
	"github.com/pagewalk/pagewalk/pkg/config"
)

// demoSite describes the simulated target served to the automation backend.
// The contact page sits behind a security challenge, so the extractable
// contact payload is carried on that page as it was captured from the
// homepage.
func demoSite(cfg config.Config) sim.Config {
	return sim.Config{
		Latency: 100 * time.Millisecond,
		Pages: []sim.Page{
			{
				URL: cfg.BaseURL,
				Text: "Aziro (formerly MSys Technologies) - AI-native product " +
					"engineering company driving innovation-led tech transformation.",
			},
			{
				URL: cfg.ContactURL,
				Text: "Checking your browser before accessing. " +
					"Cloudflare Ray ID shown at the bottom of this page.",
				Content: map[string]any{
					"company_name":   "Aziro (formerly MSys Technologies)",
					"phone":          "+1 844 415 0777",
					"website":        cfg.BaseURL,
					"business_focus": "AI-native product engineering company",
					"key_services": []string{
						"Digital Transformation Services",
						"Artificial Intelligence & Machine Learning Consulting",
						"Cloud Computing",
						"DevOps",
						"Storage Engineering",
						"Networking",
						"Quality Assurance Services",
					},
					"note": "Information extracted from homepage due to " +
						"Cloudflare protection on contact page",
				},
			},
		},
		// No contact selector resolves on the simulated site; the pipeline
		// falls back to direct navigation, as the live site required.
		Links: map[string]string{},
	}
}
