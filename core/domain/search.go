// ABOUTME: Aggregated search result and per-source failure shapes
// ABOUTME: Partial failures travel alongside successful items, never as thrown errors

package domain

// SourceError records one source's failure during an aggregation run.
// It is data, not an error value: the orchestrator returns these next to
// whatever items the other sources produced.
type SourceError struct {
	SourceName string `json:"source_name"`
	SourceCode string `json:"source_code,omitempty"`
	APIURL     string `json:"api_url,omitempty"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
}

// SearchResult is the normalized search response handed to the rendering
// layer: a success code, the deduplicated item list and any per-source
// errors collected along the way.
type SearchResult struct {
	Code         int           `json:"code"`
	Msg          string        `json:"msg,omitempty"`
	List         []VideoItem   `json:"list"`
	SourceErrors []SourceError `json:"source_errors,omitempty"`
}
