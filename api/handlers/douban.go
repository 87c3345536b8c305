// ABOUTME: Douban handler serving the recommendation feed endpoints
// ABOUTME: Charts, tag browsing and tag lists; failures degrade to empty lists

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"vodsearch-api/core/domain"
	"vodsearch-api/core/douban"
)

// DoubanHandler handles recommendation feed requests
type DoubanHandler struct {
	service *douban.Service
}

// NewDoubanHandler creates a new douban handler
func NewDoubanHandler(service *douban.Service) *DoubanHandler {
	return &DoubanHandler{service: service}
}

// RegisterRoutes registers douban routes
func (h *DoubanHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "doubanChart",
		Method:      http.MethodGet,
		Path:        "/api/douban/chart",
		Summary:     "Ranked chart for a genre",
		Tags:        []string{"Douban"},
	}, h.Chart)

	huma.Register(api, huma.Operation{
		OperationID: "doubanSubjects",
		Method:      http.MethodGet,
		Path:        "/api/douban/subjects",
		Summary:     "Browse titles by tag",
		Tags:        []string{"Douban"},
	}, h.Subjects)

	huma.Register(api, huma.Operation{
		OperationID: "doubanTags",
		Method:      http.MethodGet,
		Path:        "/api/douban/tags",
		Summary:     "List browsable tags",
		Tags:        []string{"Douban"},
	}, h.Tags)
}

// ChartInput defines the query parameters for a chart request
type ChartInput struct {
	Genre string `query:"genre" doc:"Chart genre display name, e.g. 剧情"`
	Start int    `query:"start" doc:"Pagination offset"`
	Limit int    `query:"limit" doc:"Page size, defaults to 20"`
}

// DoubanOutput wraps a normalized recommendation result
type DoubanOutput struct {
	Body domain.DoubanResult
}

// Chart handles the GET /api/douban/chart endpoint
func (h *DoubanHandler) Chart(ctx context.Context, input *ChartInput) (*DoubanOutput, error) {
	result, err := h.service.ChartTopList(ctx, input.Genre, input.Start, input.Limit)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &DoubanOutput{Body: *result}, nil
}

// SubjectsInput defines the query parameters for tag browsing
type SubjectsInput struct {
	Kind      string `query:"type" doc:"movie or tv" enum:"movie,tv"`
	Tag       string `query:"tag" doc:"Tag to browse, e.g. 热门"`
	Tags      string `query:"tags" doc:"Free-form tags for the newer endpoint; takes precedence over tag"`
	Sort      string `query:"sort" doc:"Sort order for the newer endpoint"`
	PageLimit int    `query:"limit" doc:"Page size, defaults to 16"`
	PageStart int    `query:"start" doc:"Pagination offset"`
}

// Subjects handles the GET /api/douban/subjects endpoint
func (h *DoubanHandler) Subjects(ctx context.Context, input *SubjectsInput) (*DoubanOutput, error) {
	var (
		result *domain.DoubanResult
		err    error
	)
	if input.Tags != "" {
		result, err = h.service.NewSearchSubjects(ctx, input.Tags, input.Sort, input.PageStart)
	} else {
		result, err = h.service.SearchSubjects(ctx, input.Kind, input.Tag, input.PageLimit, input.PageStart)
	}
	if err != nil {
		return nil, toHumaError(err)
	}
	return &DoubanOutput{Body: *result}, nil
}

// TagsInput defines the query parameters for a tag listing
type TagsInput struct {
	Kind string `query:"type" doc:"movie or tv" enum:"movie,tv"`
}

// TagsOutput wraps the tag listing
type TagsOutput struct {
	Body struct {
		Tags []string `json:"tags"`
	}
}

// Tags handles the GET /api/douban/tags endpoint
func (h *DoubanHandler) Tags(ctx context.Context, input *TagsInput) (*TagsOutput, error) {
	tags, err := h.service.Tags(ctx, input.Kind)
	if err != nil {
		return nil, toHumaError(err)
	}

	out := &TagsOutput{}
	out.Body.Tags = tags
	return out, nil
}
