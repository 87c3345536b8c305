// ABOUTME: VideoItem is the normalized search result shape shared by all sources
// ABOUTME: Upstream vod_* fields pass through, source attribution is attached by the normalizer

package domain

import (
	"encoding/json"
	"strings"
)

// FlexString decodes JSON values that upstreams serve inconsistently as
// either a string or a number (vod_id and vod_year vary per source).
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*f = FlexString(num.String())
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// String returns the underlying string value.
func (f FlexString) String() string { return string(f) }

// VideoItem is one normalized search result. Field names mirror the
// upstream "maccms" JSON shape so decode and render use the same struct.
type VideoItem struct {
	ID       FlexString `json:"vod_id"`
	Title    string     `json:"vod_name"`
	Poster   string     `json:"vod_pic,omitempty"`
	Remarks  string     `json:"vod_remarks,omitempty"`
	Year     FlexString `json:"vod_year,omitempty"`
	TypeName string     `json:"type_name,omitempty"`
	Area     string     `json:"vod_area,omitempty"`
	Director string     `json:"vod_director,omitempty"`
	Actor    string     `json:"vod_actor,omitempty"`
	Content  string     `json:"vod_content,omitempty"`
	PlayURL  string     `json:"vod_play_url,omitempty"`

	// Attribution added by the normalizer, never present upstream.
	SourceName string `json:"source_name"`
	SourceCode string `json:"source_code"`

	// APIURL is set for custom sources only; it records the literal base
	// URL used, needed for dedup keys and later detail lookups.
	APIURL string `json:"api_url,omitempty"`
}

// DedupKey is the compound key used to collapse exact duplicates: custom
// sources key on the API URL (they have no stable source id), built-in
// sources key on the source code.
func (v VideoItem) DedupKey() string {
	if v.APIURL != "" {
		return v.APIURL + "_" + v.ID.String()
	}
	return v.SourceCode + "_" + v.ID.String()
}
