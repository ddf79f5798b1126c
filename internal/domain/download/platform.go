package download

import (
	"net/url"
	"strings"
)

// PlatformOther labels URLs whose host matches no known platform.
const PlatformOther = "Other"

type platformEntry struct {
	label    string
	patterns []string
}

// Ordered; first match wins.
var platformTable = []platformEntry{
	{label: "youtube", patterns: []string{"youtube.com", "youtu.be"}},
	{label: "instagram", patterns: []string{"instagram.com"}},
	{label: "tiktok", patterns: []string{"tiktok.com"}},
	{label: "facebook", patterns: []string{"facebook.com", "fb.watch"}},
	{label: "twitter", patterns: []string{"twitter.com", "x.com"}},
}

// Classification is the outcome of platform detection for one URL.
type Classification struct {
	URL      string // normalized, scheme always present
	Platform string
	Matched  bool
}

// ClassifyURL validates rawURL and maps its host to a platform label. A URL
// without a scheme defaults to https. Hosts matching no table entry classify
// as Other rather than failing.
func ClassifyURL(rawURL string) (*Classification, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, NewError(CodeInvalidInput, "URL required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, NewError(CodeInvalidInput, "Invalid URL").WithCause(err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, NewError(CodeInvalidInput, "Invalid URL")
	}

	host := strings.ToLower(parsed.Host)
	for _, entry := range platformTable {
		for _, pattern := range entry.patterns {
			if strings.Contains(host, pattern) {
				return &Classification{URL: trimmed, Platform: entry.label, Matched: true}, nil
			}
		}
	}
	return &Classification{URL: trimmed, Platform: PlatformOther, Matched: false}, nil
}

// SupportedPlatforms lists platform labels in table order.
func SupportedPlatforms() []string {
	labels := make([]string, 0, len(platformTable))
	for _, entry := range platformTable {
		labels = append(labels, entry.label)
	}
	return labels
}
