// ABOUTME: Aggregation orchestrator: fans search out across sources and merges results
// ABOUTME: Per-source failures become data; only the all-sources-failed case escalates

package search

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"vodsearch-api/core/domain"
	coreerrors "vodsearch-api/core/errors"
	"vodsearch-api/core/fetch"
	"vodsearch-api/core/interfaces"
	"vodsearch-api/core/sources"
)

// maxConcurrentFetches bounds the fan-out so a large registry does not
// open one socket per source all at once.
const maxConcurrentFetches = 10

// Config tunes the orchestrator's timeouts and limits.
type Config struct {
	// AggregatedTimeout bounds each source during a fan-out search. It is
	// deliberately shorter than the interactive timeout so aggregate
	// latency tracks the slowest source, not the sum of all of them.
	AggregatedTimeout time.Duration

	// SingleTimeout bounds a single-source interactive search.
	SingleTimeout time.Duration

	// MaxCustomSources caps ad hoc URLs in a multi-custom search.
	MaxCustomSources int

	// Retry is the per-attempt schedule handed to the fetch client.
	Retry fetch.RetryConfig
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		AggregatedTimeout: 8 * time.Second,
		SingleTimeout:     20 * time.Second,
		MaxCustomSources:  sources.MaxCustomSearchSources,
		Retry:             fetch.DefaultRetryConfig,
	}
}

// Service coordinates search across the configured sources.
type Service struct {
	deps     interfaces.Dependencies
	registry *sources.Registry
	fetcher  *fetch.Client
	cfg      Config
}

// NewService creates a search service instance.
func NewService(deps interfaces.Dependencies, registry *sources.Registry, cfg Config) *Service {
	return &Service{
		deps:     deps,
		registry: registry,
		fetcher:  fetch.NewClient(deps.HTTPClient, cfg.Retry, deps.Logger),
		cfg:      cfg,
	}
}

// SearchSingle searches one source interactively. Unlike the aggregated
// path, failures surface directly to the caller.
func (s *Service) SearchSingle(ctx context.Context, query, sourceID, customAPI string) (*domain.SearchResult, error) {
	if query == "" {
		return nil, &coreerrors.ValidationError{Field: "wd", Message: "search query cannot be empty"}
	}

	var src domain.Source
	if sourceID == "custom" {
		if customAPI == "" {
			return nil, &coreerrors.ValidationError{Field: "customApi", Message: "custom source requires an API URL"}
		}
		src = adHocSource(customAPI, customDisplayName(customAPI))
	} else {
		var ok bool
		src, ok = s.registry.Get(sourceID)
		if !ok {
			return nil, &coreerrors.ValidationError{Field: "source", Message: "unknown source id: " + sourceID}
		}
	}

	cctx, cancel := context.WithTimeout(ctx, s.cfg.SingleTimeout)
	defer cancel()

	items, err := s.fetchSource(cctx, src, query)
	if err != nil {
		return nil, err
	}
	return &domain.SearchResult{Code: 200, List: items}, nil
}

// SearchAggregated fans the query out across the given source ids
// concurrently, waits for every source to settle, and merges the partial
// successes. It returns an error only when every source failed.
func (s *Service) SearchAggregated(ctx context.Context, query string, sourceIDs []string) (*domain.SearchResult, error) {
	if query == "" {
		return nil, &coreerrors.ValidationError{Field: "wd", Message: "search query cannot be empty"}
	}
	if len(sourceIDs) == 0 {
		return nil, &coreerrors.ValidationError{Field: "sources", Message: "no sources selected"}
	}

	outcomes := s.fanOut(ctx, len(sourceIDs), func(i int, cctx context.Context) ([]domain.VideoItem, *domain.SourceError) {
		src, ok := s.registry.Get(sourceIDs[i])
		if !ok {
			return nil, &domain.SourceError{
				SourceName: sourceIDs[i],
				SourceCode: sourceIDs[i],
				Message:    "unknown source id",
			}
		}
		items, err := s.fetchSource(cctx, src, query)
		if err != nil {
			s.logSourceFailure(src.Name, err)
			return nil, &domain.SourceError{
				SourceName: src.Name,
				SourceCode: src.ID,
				Message:    err.Error(),
				StatusCode: fetch.InferStatusCode(err),
			}
		}
		return items, nil
	})

	merged, fails := partition(outcomes)
	if len(fails) == len(sourceIDs) {
		return nil, aggregateError(fails)
	}
	if len(merged) == 0 {
		return &domain.SearchResult{
			Code:         200,
			Msg:          "all succeeding sources returned no results; some sources may have failed",
			List:         []domain.VideoItem{},
			SourceErrors: fails,
		}, nil
	}

	unique := dedupe(merged)
	sortItems(unique)
	return &domain.SearchResult{Code: 200, List: unique, SourceErrors: fails}, nil
}

// SearchCustom runs the aggregated algorithm over ad hoc API URLs parsed
// from a comma-delimited string, capped at MaxCustomSources. Items are
// deduplicated by (api_url, vod_id) and keep their first-seen order.
func (s *Service) SearchCustom(ctx context.Context, query, rawURLs string) (*domain.SearchResult, error) {
	if query == "" {
		return nil, &coreerrors.ValidationError{Field: "wd", Message: "search query cannot be empty"}
	}
	urls := sources.ParseCustomURLs(rawURLs, s.cfg.MaxCustomSources)
	if len(urls) == 0 {
		return nil, &coreerrors.ValidationError{Field: "customApiUrls", Message: "no valid custom API URLs provided"}
	}

	outcomes := s.fanOut(ctx, len(urls), func(i int, cctx context.Context) ([]domain.VideoItem, *domain.SourceError) {
		name := fmt.Sprintf("Custom %d", i+1)
		src := adHocSource(urls[i], name)
		items, err := s.fetchSource(cctx, src, query)
		if err != nil {
			s.logSourceFailure(name, err)
			return nil, &domain.SourceError{
				SourceName: name,
				APIURL:     urls[i],
				Message:    err.Error(),
				StatusCode: fetch.InferStatusCode(err),
			}
		}
		return items, nil
	})

	merged, fails := partition(outcomes)
	if len(fails) == len(urls) {
		return nil, aggregateError(fails)
	}
	return &domain.SearchResult{Code: 200, List: dedupe(merged), SourceErrors: fails}, nil
}

// outcome is one source's settled result: items on success, fail set
// otherwise. Exactly one of the two is populated.
type outcome struct {
	items []domain.VideoItem
	fail  *domain.SourceError
}

// fanOut starts one goroutine per source before consuming any result, so
// slow sources overlap instead of queueing. Results land in input order,
// which keeps first-seen dedup deterministic regardless of completion
// order. Every source gets its own timeout; a timed-out source fails
// alone without cancelling its siblings.
func (s *Service) fanOut(ctx context.Context, n int, run func(i int, ctx context.Context) ([]domain.VideoItem, *domain.SourceError)) []outcome {
	outcomes := make([]outcome, n)
	sem := make(chan struct{}, maxConcurrentFetches)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			cctx, cancel := context.WithTimeout(ctx, s.cfg.AggregatedTimeout)
			defer cancel()

			items, fail := run(i, cctx)
			outcomes[i] = outcome{items: items, fail: fail}
		}(i)
	}
	wg.Wait()
	return outcomes
}

// fetchSource performs the retried search call for one source and
// normalizes its payload.
func (s *Service) fetchSource(ctx context.Context, src domain.Source, query string) ([]domain.VideoItem, error) {
	searchURL := src.APIBaseURL + sources.SearchPath + url.QueryEscape(query)
	raw, err := s.fetcher.GetJSON(ctx, searchURL, nil)
	if err != nil {
		return nil, err
	}
	return normalizeList(src, raw)
}

func (s *Service) logSourceFailure(name string, err error) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn("source search failed", map[string]interface{}{
			"source": name,
			"error":  err.Error(),
		})
	}
}

func partition(outcomes []outcome) ([]domain.VideoItem, []domain.SourceError) {
	var items []domain.VideoItem
	var fails []domain.SourceError
	for _, o := range outcomes {
		if o.fail != nil {
			fails = append(fails, *o.fail)
			continue
		}
		items = append(items, o.items...)
	}
	return items, fails
}

func aggregateError(fails []domain.SourceError) error {
	msgs := make([]string, len(fails))
	for i, f := range fails {
		msgs[i] = f.SourceName + ": " + f.Message
	}
	return &coreerrors.AggregateError{Failures: msgs}
}

// dedupe removes exact compound-key duplicates, keeping the first
// occurrence. Cross-source duplicates of the same title are intentionally
// preserved: only (source identity, vod id) collisions collapse.
func dedupe(items []domain.VideoItem) []domain.VideoItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]domain.VideoItem, 0, len(items))
	for _, it := range items {
		k := it.DedupKey()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// sortItems applies the deterministic total order: collated title first,
// source display name as the tiebreaker. Collators are not safe for
// concurrent use, so each call builds its own.
func sortItems(items []domain.VideoItem) {
	c := collate.New(language.Chinese)
	sort.SliceStable(items, func(i, j int) bool {
		if r := c.CompareString(items[i].Title, items[j].Title); r != 0 {
			return r < 0
		}
		return c.CompareString(items[i].SourceName, items[j].SourceName) < 0
	})
}

func adHocSource(apiURL, name string) domain.Source {
	return domain.Source{
		ID:         "custom",
		Name:       name,
		APIBaseURL: strings.TrimRight(apiURL, "/"),
		Custom:     true,
	}
}

func customDisplayName(apiURL string) string {
	if u, err := url.Parse(apiURL); err == nil && u.Hostname() != "" {
		return "Custom (" + u.Hostname() + ")"
	}
	return "Custom"
}
