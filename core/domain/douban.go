// ABOUTME: Douban recommendation payload shapes
// ABOUTME: All Douban endpoints normalize to a subjects list regardless of wire shape

package domain

// DoubanSubject is one recommended title from Douban.
type DoubanSubject struct {
	ID           FlexString `json:"id"`
	Title        string     `json:"title"`
	Rate         FlexString `json:"rate,omitempty"`
	Cover        string     `json:"cover,omitempty"`
	URL          string     `json:"url,omitempty"`
	Playable     bool       `json:"playable,omitempty"`
	IsNew        bool       `json:"is_new,omitempty"`
	EpisodesInfo string     `json:"episodes_info,omitempty"`
}

// DoubanResult is the normalized recommendation response. Err carries the
// upstream failure note when retries were exhausted; the subjects list is
// then empty rather than the whole call failing.
type DoubanResult struct {
	Subjects []DoubanSubject `json:"subjects"`
	Err      string          `json:"error,omitempty"`
}
