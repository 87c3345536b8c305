// ABOUTME: Normalizes heterogeneous upstream search payloads into VideoItem lists
// ABOUTME: Codes 0, 1 and 200 are success; code 1 tolerates a missing or null list

package search

import (
	"encoding/json"

	"vodsearch-api/core/domain"
	coreerrors "vodsearch-api/core/errors"
)

// envelope is the maccms-style search response: {code, msg, list}.
type envelope struct {
	Code *int               `json:"code"`
	Msg  string             `json:"msg"`
	List []domain.VideoItem `json:"list"`
}

// successCodes are the application-level codes accepted as success. Code 1
// frequently arrives with an empty or missing list and still means "valid
// empty result", so all three are treated uniformly.
var successCodes = map[int]bool{0: true, 1: true, 200: true}

// normalizeList decodes one upstream payload and tags every item with the
// originating source. A missing or null list is a valid empty result; an
// unaccepted application code is a terminal failure carrying the upstream
// message.
func normalizeList(src domain.Source, raw json.RawMessage) ([]domain.VideoItem, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &coreerrors.ExternalAPIError{
			API:     src.Name,
			Message: "unexpected response shape: " + err.Error(),
		}
	}

	if env.Code != nil && !successCodes[*env.Code] {
		msg := env.Msg
		if msg == "" {
			msg = "upstream error code"
		}
		return nil, &coreerrors.ExternalAPIError{
			API:        src.Name,
			StatusCode: *env.Code,
			Message:    msg,
		}
	}

	items := env.List
	if items == nil {
		items = []domain.VideoItem{}
	}
	for i := range items {
		items[i].SourceName = src.Name
		items[i].SourceCode = src.ID
		if src.Custom {
			items[i].APIURL = src.APIBaseURL
		}
	}
	return items, nil
}
