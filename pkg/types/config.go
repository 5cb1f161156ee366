package types

import "time"

// HTTPConfig holds shared HTTP settings for the API client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with API requests
	// (e.g. "review-fetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// APIConfig holds settings for the review-service API client.
type APIConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API root (default "https://api2.openreview.net").
	BaseURL string `json:"baseurl" yaml:"baseurl"`
}

// ResolveConfig holds settings for identifier resolution.
type ResolveConfig struct {
	// VenuePattern is the regular expression a referrer-embedded venue
	// path must match (organization/year/track segments). The accepted
	// shape varies across service versions, so it is configuration
	// rather than a constant.
	VenuePattern string `json:"venue_pattern" yaml:"venue_pattern"`
}

// FetchConfig holds settings for the review fetch stage.
type FetchConfig struct {
	// ReviewInvitation is the invitation name the venue uses for
	// official reviews (default "Official_Review").
	ReviewInvitation string `json:"review_invitation" yaml:"review_invitation"`

	// BroadFallback enables the fallback search across all forum replies
	// when the invitation-filtered query returns nothing.
	BroadFallback bool `json:"broad_fallback" yaml:"broad_fallback"`
}

// OutputConfig holds settings for the rendered output files.
type OutputConfig struct {
	// Dir is the directory review files are written to (default "reviews").
	Dir string `json:"dir" yaml:"dir"`

	// Manifest additionally writes a YAML manifest next to the text outputs.
	Manifest bool `json:"manifest" yaml:"manifest"`
}
