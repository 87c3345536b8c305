// ABOUTME: Detail handler resolving episode lists for one video id
// ABOUTME: Thin mapping from query parameters onto the detail service request

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"vodsearch-api/core/detail"
	"vodsearch-api/core/domain"
)

// DetailHandler handles video detail requests
type DetailHandler struct {
	service *detail.Service
}

// NewDetailHandler creates a new detail handler
func NewDetailHandler(service *detail.Service) *DetailHandler {
	return &DetailHandler{service: service}
}

// RegisterRoutes registers detail routes
func (h *DetailHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getVideoDetail",
		Method:      http.MethodGet,
		Path:        "/api/detail",
		Summary:     "Get video detail",
		Description: "Resolves the episode list and metadata for one video id from its source",
		Tags:        []string{"Detail"},
	}, h.GetDetail)
}

// DetailInput defines the query parameters for a detail lookup
type DetailInput struct {
	ID            string `query:"id" doc:"Video id from a search result"`
	Source        string `query:"source" doc:"Source id the video came from, or 'custom'"`
	CustomAPI     string `query:"customApi" doc:"API base URL for source=custom"`
	CustomDetail  string `query:"customDetail" doc:"HTML detail page base URL for source=custom"`
	UseDetailPage bool   `query:"useDetail" doc:"Scrape customApi as an HTML detail page base"`
}

// DetailOutput wraps the resolved video detail
type DetailOutput struct {
	Body domain.VideoDetail
}

// GetDetail handles the GET /api/detail endpoint
func (h *DetailHandler) GetDetail(ctx context.Context, input *DetailInput) (*DetailOutput, error) {
	result, err := h.service.GetDetail(ctx, detail.Request{
		ID:            input.ID,
		SourceID:      input.Source,
		CustomAPI:     input.CustomAPI,
		CustomDetail:  input.CustomDetail,
		UseDetailPage: input.UseDetailPage,
	})
	if err != nil {
		return nil, toHumaError(err)
	}

	return &DetailOutput{Body: *result}, nil
}
