// ABOUTME: Source describes one upstream VOD index API
// ABOUTME: Built-in sources are process-wide constants, custom sources are user-added

package domain

// Source is one configured upstream video-index API.
type Source struct {
	// ID uniquely identifies the source within the registry.
	ID string `json:"id"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// APIBaseURL is the base URL for the JSON search/detail API.
	APIBaseURL string `json:"api"`

	// DetailBaseURL, when set, is the base URL of an HTML detail page
	// that must be scraped instead of the JSON detail endpoint.
	DetailBaseURL string `json:"detail,omitempty"`

	// Adult marks adult-content sources so they can be filtered out.
	Adult bool `json:"adult,omitempty"`

	// Custom marks user-registered sources (id has the custom_ prefix).
	Custom bool `json:"custom,omitempty"`
}

// HasHTMLDetail reports whether detail lookups for this source scrape
// an HTML page rather than calling the JSON detail endpoint.
func (s Source) HasHTMLDetail() bool {
	return s.DetailBaseURL != ""
}
