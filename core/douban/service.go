// ABOUTME: Douban recommendation feed: charts, tag browsing and tag lists
// ABOUTME: Rate-limited, cached, fail-soft: exhausted retries yield an empty result with a note

package douban

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"vodsearch-api/core/domain"
	"vodsearch-api/core/fetch"
	"vodsearch-api/core/interfaces"
)

const (
	baseURL = "https://movie.douban.com"

	// cacheTTL matches the upstream fetch cache: Douban lists churn slowly.
	cacheTTL = fetch.DefaultCacheTTL

	requestTimeout = 10 * time.Second
)

// userAgents is rotated per request so the scraping traffic does not
// present a single static fingerprint.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:123.0) Gecko/20100101 Firefox/123.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.3 Safari/605.1.15",
}

// chartGenreIDs maps the chart genre names Douban's UI exposes to the
// numeric type ids its top_list endpoint expects.
var chartGenreIDs = map[string]int{
	"剧情":  11,
	"喜剧":  24,
	"动作":  5,
	"爱情":  13,
	"科幻":  17,
	"动画":  25,
	"悬疑":  10,
	"惊悚":  19,
	"恐怖":  20,
	"纪录片": 1,
	"音乐":  14,
	"家庭":  28,
	"传记":  2,
	"历史":  4,
	"战争":  22,
	"犯罪":  3,
	"奇幻":  16,
	"冒险":  15,
	"灾难":  12,
	"武侠":  29,
	"古装":  30,
}

// Config tunes the Douban client.
type Config struct {
	// RequestsPerSecond throttles outbound Douban traffic. Zero disables
	// throttling.
	RequestsPerSecond float64
}

// Service fetches Douban recommendation data.
type Service struct {
	deps    interfaces.Dependencies
	fetcher *fetch.Client
	limiter *rate.Limiter
	uaIndex atomic.Uint64
}

// NewService creates a Douban service instance.
func NewService(deps interfaces.Dependencies, cfg Config) *Service {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Service{
		deps:    deps,
		fetcher: fetch.NewClient(deps.HTTPClient, fetch.DefaultRetryConfig, deps.Logger),
		limiter: limiter,
	}
}

// ChartTopList returns the ranked chart for a genre. The genre is a
// display name from chartGenreIDs; unknown genres fall back to 剧情.
func (s *Service) ChartTopList(ctx context.Context, genre string, start, limit int) (*domain.DoubanResult, error) {
	typeID, ok := chartGenreIDs[genre]
	if !ok {
		typeID = chartGenreIDs["剧情"]
	}
	if limit <= 0 {
		limit = 20
	}
	u := fmt.Sprintf("%s/j/chart/top_list?type=%d&interval_id=100:90&action=&start=%d&limit=%d",
		baseURL, typeID, start, limit)
	return s.fetchSubjects(ctx, u)
}

// NewSearchSubjects browses titles by free-form tags via the newer
// endpoint, which wraps its list in a data field.
func (s *Service) NewSearchSubjects(ctx context.Context, tags, sort string, start int) (*domain.DoubanResult, error) {
	if sort == "" {
		sort = "T"
	}
	u := fmt.Sprintf("%s/j/new_search_subjects?sort=%s&range=0,10&tags=%s&start=%d",
		baseURL, url.QueryEscape(sort), url.QueryEscape(tags), start)
	return s.fetchSubjects(ctx, u)
}

// SearchSubjects browses movie or tv titles under one tag.
func (s *Service) SearchSubjects(ctx context.Context, kind, tag string, pageLimit, pageStart int) (*domain.DoubanResult, error) {
	if kind != "tv" {
		kind = "movie"
	}
	if pageLimit <= 0 {
		pageLimit = 16
	}
	u := fmt.Sprintf("%s/j/search_subjects?type=%s&tag=%s&sort=recommend&page_limit=%d&page_start=%d",
		baseURL, kind, url.QueryEscape(tag), pageLimit, pageStart)
	return s.fetchSubjects(ctx, u)
}

// Tags returns the browsable tag names for movies or tv.
func (s *Service) Tags(ctx context.Context, kind string) ([]string, error) {
	if kind != "tv" {
		kind = "movie"
	}
	raw, err := s.fetchData(ctx, baseURL+"/j/search_tags?type="+kind)
	if err != nil {
		return []string{}, nil
	}
	tags, err := decodeTags(raw)
	if err != nil {
		s.logDecodeFailure("tags", err)
		return []string{}, nil
	}
	return tags, nil
}

// ChartGenres lists the genre names ChartTopList accepts.
func ChartGenres() []string {
	genres := make([]string, 0, len(chartGenreIDs))
	for g := range chartGenreIDs {
		genres = append(genres, g)
	}
	return genres
}

// fetchSubjects runs one Douban list call and normalizes the outcome.
// Upstream failure after retries degrades to an empty result carrying the
// failure note, so the recommendation strip renders empty instead of the
// page erroring.
func (s *Service) fetchSubjects(ctx context.Context, u string) (*domain.DoubanResult, error) {
	raw, err := s.fetchData(ctx, u)
	if err != nil {
		return &domain.DoubanResult{Subjects: []domain.DoubanSubject{}, Err: err.Error()}, nil
	}
	subjects, err := decodeSubjects(raw)
	if err != nil {
		s.logDecodeFailure(u, err)
		return &domain.DoubanResult{Subjects: []domain.DoubanSubject{}}, nil
	}
	return &domain.DoubanResult{Subjects: subjects}, nil
}

// fetchData reads through the cache, throttling and retrying the upstream
// call on a miss. Keys are the full request URL so distinct pages cache
// independently.
func (s *Service) fetchData(ctx context.Context, u string) ([]byte, error) {
	return fetch.GetOrFetch(ctx, s.deps.Cache, s.deps.Logger, "douban:"+u, cacheTTL, func(ctx context.Context) ([]byte, bool, error) {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, false, err
			}
		}
		cctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		raw, err := s.fetcher.GetJSON(cctx, u, map[string]string{
			"User-Agent": s.nextUserAgent(),
			"Referer":    baseURL + "/",
			"Accept":     "application/json, text/plain, */*",
		})
		if err != nil {
			return nil, false, err
		}
		return raw, true, nil
	})
}

func (s *Service) nextUserAgent() string {
	n := s.uaIndex.Add(1)
	return userAgents[int(n)%len(userAgents)]
}

func (s *Service) logDecodeFailure(what string, err error) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn("douban payload decode failed", map[string]interface{}{
			"endpoint": what,
			"error":    err.Error(),
		})
	}
}
