// ABOUTME: Detail service resolves episode play URLs for one title
// ABOUTME: JSON detail endpoint by default, goquery-scraped HTML page for special sources

package detail

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"vodsearch-api/core/domain"
	coreerrors "vodsearch-api/core/errors"
	"vodsearch-api/core/fetch"
	"vodsearch-api/core/interfaces"
	"vodsearch-api/core/sources"
)

const (
	htmlTimeout = 15 * time.Second

	scrapeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
)

var (
	idPattern = regexp.MustCompile(`^[\w-]+$`)

	// m3u8Pattern harvests $-prefixed playlist links embedded in detail
	// pages and description text.
	m3u8Pattern = regexp.MustCompile(`\$(https?://[^"'\s]+?\.m3u8)`)

	// ffzyM3u8Pattern matches that source's dated episode path layout and
	// is tried first for it; the generic pattern is the fallback.
	ffzyM3u8Pattern = regexp.MustCompile(`\$(https?://[^"'\s]+?/\d{8}/\d+_[a-f0-9]+/index\.m3u8)`)
)

// Request identifies the title whose detail is wanted and how to reach it.
type Request struct {
	ID       string
	SourceID string

	// CustomAPI is the JSON API base for ad hoc custom sources.
	CustomAPI string

	// CustomDetail, when set, is an HTML detail page base to scrape
	// instead of calling the JSON endpoint.
	CustomDetail string

	// UseDetailPage forces scraping CustomAPI as a detail page base.
	UseDetailPage bool
}

// Service resolves video details.
type Service struct {
	deps     interfaces.Dependencies
	registry *sources.Registry
	fetcher  *fetch.Client
}

// NewService creates a detail service instance.
func NewService(deps interfaces.Dependencies, registry *sources.Registry) *Service {
	return &Service{
		deps:     deps,
		registry: registry,
		fetcher:  fetch.NewClient(deps.HTTPClient, fetch.DefaultRetryConfig, deps.Logger),
	}
}

// GetDetail routes the request to the JSON or HTML path. Built-in sources
// with a detail base URL and custom sources with a detail page are
// scraped; everything else goes through the JSON detail endpoint.
func (s *Service) GetDetail(ctx context.Context, req Request) (*domain.VideoDetail, error) {
	if req.ID == "" {
		return nil, &coreerrors.ValidationError{Field: "id", Message: "video id is required"}
	}
	if !idPattern.MatchString(req.ID) {
		return nil, &coreerrors.ValidationError{Field: "id", Message: "invalid video id format"}
	}

	if req.SourceID == "custom" {
		if req.CustomDetail != "" {
			return s.scrapeDetail(ctx, req.ID, strings.TrimRight(req.CustomDetail, "/"), customSource(), "")
		}
		if req.UseDetailPage && req.CustomAPI != "" {
			return s.scrapeDetail(ctx, req.ID, strings.TrimRight(req.CustomAPI, "/"), customSource(), "")
		}
		if req.CustomAPI == "" {
			return nil, &coreerrors.ValidationError{Field: "customApi", Message: "custom source requires an API or detail URL"}
		}
		return s.standardDetail(ctx, req.ID, customSource(), strings.TrimRight(req.CustomAPI, "/"))
	}

	src, ok := s.registry.Get(req.SourceID)
	if !ok {
		return nil, &coreerrors.ValidationError{Field: "source", Message: "unknown source id: " + req.SourceID}
	}
	if src.HasHTMLDetail() {
		return s.scrapeDetail(ctx, req.ID, src.DetailBaseURL, src, src.ID)
	}
	return s.standardDetail(ctx, req.ID, src, src.APIBaseURL)
}

// standardDetail fetches the JSON detail endpoint and extracts episodes
// from vod_play_url, falling back to m3u8 links in the description.
func (s *Service) standardDetail(ctx context.Context, id string, src domain.Source, apiBase string) (*domain.VideoDetail, error) {
	detailURL := apiBase + sources.DetailPath + id

	raw, err := s.fetcher.GetJSON(ctx, detailURL, nil)
	if err != nil {
		return nil, err
	}

	env, err := decodeDetailEnvelope(src.Name, raw)
	if err != nil {
		return nil, err
	}

	// Code 1 legitimately returns an empty list; codes 0 and 200 promise
	// content, so an empty list there means the id does not exist.
	if len(env.List) == 0 {
		if env.Code != nil && *env.Code == 1 {
			return &domain.VideoDetail{
				Code:      200,
				Episodes:  []string{},
				DetailURL: detailURL,
				VideoInfo: domain.VideoInfo{SourceName: src.Name, SourceCode: src.ID},
			}, nil
		}
		return nil, &coreerrors.NotFoundError{Resource: "video", ID: id}
	}

	item := env.List[0]
	episodes := episodesFromPlayURL(item.PlayURL)
	if len(episodes) == 0 && item.Content != "" {
		episodes = m3u8Links(item.Content, "")
	}

	return &domain.VideoDetail{
		Code:      200,
		Episodes:  episodes,
		DetailURL: detailURL,
		VideoInfo: domain.VideoInfo{
			Title:      item.Title,
			Cover:      item.Poster,
			Desc:       item.Content,
			Type:       item.TypeName,
			Year:       item.Year.String(),
			Area:       item.Area,
			Director:   item.Director,
			Actor:      item.Actor,
			Remarks:    item.Remarks,
			SourceName: src.Name,
			SourceCode: src.ID,
		},
	}, nil
}

// scrapeDetail fetches the HTML detail page and harvests episode links
// and descriptive text from it.
func (s *Service) scrapeDetail(ctx context.Context, id, detailBase string, src domain.Source, patternHint string) (*domain.VideoDetail, error) {
	detailURL := detailBase + strings.Replace(sources.HTMLDetailPathFormat, "%s", id, 1)

	cctx, cancel := context.WithTimeout(ctx, htmlTimeout)
	defer cancel()

	html, err := s.fetcher.GetText(cctx, detailURL, map[string]string{
		"User-Agent": scrapeUserAgent,
	})
	if err != nil {
		return nil, coreerrors.WrapError(err, "detail page fetch failed")
	}

	episodes := m3u8Links(html, patternHint)

	info := domain.VideoInfo{SourceName: src.Name, SourceCode: src.ID}
	if doc, derr := goquery.NewDocumentFromReader(strings.NewReader(html)); derr == nil {
		info.Title = strings.TrimSpace(doc.Find("h1").First().Text())
		info.Desc = strings.TrimSpace(doc.Find("div.sketch").First().Text())
	} else if s.deps.Logger != nil {
		s.deps.Logger.Warn("detail page parse failed", map[string]interface{}{
			"url":   detailURL,
			"error": derr.Error(),
		})
	}

	return &domain.VideoDetail{
		Code:      200,
		Episodes:  episodes,
		DetailURL: detailURL,
		VideoInfo: info,
	}, nil
}

// detailEnvelope mirrors the search envelope; decoding is shared so the
// code checks stay in one place.
type detailEnvelope struct {
	Code *int               `json:"code"`
	Msg  string             `json:"msg"`
	List []domain.VideoItem `json:"list"`
}

func decodeDetailEnvelope(api string, raw []byte) (*detailEnvelope, error) {
	var env detailEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &coreerrors.ExternalAPIError{API: api, Message: "unexpected detail response shape"}
	}
	if env.Code != nil {
		switch *env.Code {
		case 0, 1, 200:
		default:
			msg := env.Msg
			if msg == "" {
				msg = "upstream error code"
			}
			return nil, &coreerrors.ExternalAPIError{API: api, StatusCode: *env.Code, Message: msg}
		}
	}
	return &env, nil
}

// episodesFromPlayURL extracts episode URLs from the $$$-separated play
// source list: only the first play source is used, episodes are
// #-separated name$url pairs.
func episodesFromPlayURL(playURL string) []string {
	if playURL == "" {
		return nil
	}
	first := strings.Split(playURL, "$$$")[0]
	parts := strings.Split(first, "#")
	episodes := make([]string, 0, len(parts))
	for _, ep := range parts {
		fields := strings.SplitN(ep, "$", 2)
		if len(fields) < 2 {
			continue
		}
		u := fields[1]
		if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
			episodes = append(episodes, u)
		}
	}
	return episodes
}

// m3u8Links pulls unique playlist URLs out of text. The ffzy-specific
// pattern runs first for that source because its pages embed both real
// episode links and unrelated playlist URLs.
func m3u8Links(text, patternHint string) []string {
	var matches []string
	if patternHint == "ffzy" {
		matches = ffzyM3u8Pattern.FindAllString(text, -1)
	}
	if len(matches) == 0 {
		matches = m3u8Pattern.FindAllString(text, -1)
	}

	seen := make(map[string]struct{}, len(matches))
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		link := strings.TrimPrefix(m, "$")
		if p := strings.Index(link, "("); p > 0 {
			link = link[:p]
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links
}

func customSource() domain.Source {
	return domain.Source{ID: "custom", Name: "Custom", Custom: true}
}
