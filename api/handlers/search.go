// ABOUTME: Search handler exposing single-source, aggregated and custom-source search
// ABOUTME: Routes on the source parameter; aggregated is the default over all built-ins

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"vodsearch-api/core/domain"
	"vodsearch-api/core/search"
	"vodsearch-api/core/sources"
)

// SearchHandler handles video search requests
type SearchHandler struct {
	service      *search.Service
	registry     *sources.Registry
	includeAdult bool
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service *search.Service, registry *sources.Registry, includeAdult bool) *SearchHandler {
	return &SearchHandler{
		service:      service,
		registry:     registry,
		includeAdult: includeAdult,
	}
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "searchVideos",
		Method:      http.MethodGet,
		Path:        "/api/search",
		Summary:     "Search videos",
		Description: "Searches one source, several custom API URLs, or every configured source when no source is given",
		Tags:        []string{"Search"},
	}, h.Search)

	huma.Register(api, huma.Operation{
		OperationID: "listSources",
		Method:      http.MethodGet,
		Path:        "/api/sources",
		Summary:     "List available sources",
		Tags:        []string{"Search"},
	}, h.ListSources)

	huma.Register(api, huma.Operation{
		OperationID:   "addSource",
		Method:        http.MethodPost,
		Path:          "/api/sources",
		Summary:       "Register a custom source",
		Description:   "Registers a user-supplied API base URL as a searchable source for this process's lifetime",
		Tags:          []string{"Search"},
		DefaultStatus: http.StatusCreated,
	}, h.AddSource)
}

// SearchInput defines the query parameters for a search
type SearchInput struct {
	Query         string `query:"wd" doc:"Search keyword"`
	Source        string `query:"source" doc:"Source id, or 'custom' with customApi; empty or 'aggregated' searches all sources"`
	CustomAPI     string `query:"customApi" doc:"API base URL for source=custom"`
	CustomAPIURLs string `query:"customApiUrls" doc:"Comma-delimited API base URLs for a multi-custom search"`
}

// SearchOutput wraps the normalized search result
type SearchOutput struct {
	Body domain.SearchResult
}

// Search handles the GET /api/search endpoint
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	var (
		result *domain.SearchResult
		err    error
	)

	switch {
	case input.CustomAPIURLs != "":
		result, err = h.service.SearchCustom(ctx, input.Query, input.CustomAPIURLs)
	case input.Source == "" || input.Source == "aggregated":
		result, err = h.service.SearchAggregated(ctx, input.Query, h.registry.IDs(h.includeAdult))
	default:
		result, err = h.service.SearchSingle(ctx, input.Query, input.Source, input.CustomAPI)
	}
	if err != nil {
		return nil, toHumaError(err)
	}

	return &SearchOutput{Body: *result}, nil
}

// SourceInfo is one selectable source in the sources listing
type SourceInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Detail bool   `json:"detail" doc:"True when episode detail is scraped from an HTML page"`
}

// ListSourcesOutput wraps the sources listing
type ListSourcesOutput struct {
	Body struct {
		Sources []SourceInfo `json:"sources"`
	}
}

// AddSourceInput defines the body for registering a custom source
type AddSourceInput struct {
	Body struct {
		Name      string `json:"name" doc:"Display name for the source"`
		APIURL    string `json:"api_url" doc:"API base URL"`
		DetailURL string `json:"detail_url,omitempty" doc:"Optional HTML detail page base URL"`
		Adult     bool   `json:"adult,omitempty" doc:"Marks the source as adult content"`
	}
}

// AddSourceOutput wraps the registered source
type AddSourceOutput struct {
	Body SourceInfo
}

// AddSource handles the POST /api/sources endpoint
func (h *SearchHandler) AddSource(ctx context.Context, input *AddSourceInput) (*AddSourceOutput, error) {
	src, err := h.registry.AddCustom(input.Body.Name, input.Body.APIURL, input.Body.DetailURL, input.Body.Adult)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &AddSourceOutput{Body: SourceInfo{
		ID:     src.ID,
		Name:   src.Name,
		Detail: src.HasHTMLDetail(),
	}}, nil
}

// ListSources handles the GET /api/sources endpoint
func (h *SearchHandler) ListSources(ctx context.Context, input *struct{}) (*ListSourcesOutput, error) {
	all := h.registry.All(h.includeAdult)
	infos := make([]SourceInfo, 0, len(all))
	for _, src := range all {
		infos = append(infos, SourceInfo{
			ID:     src.ID,
			Name:   src.Name,
			Detail: src.HasHTMLDetail(),
		})
	}

	out := &ListSourcesOutput{}
	out.Body.Sources = infos
	return out, nil
}
