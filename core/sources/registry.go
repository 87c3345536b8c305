// ABOUTME: Registry of upstream VOD sources, built-in plus user-registered custom ones
// ABOUTME: Built-ins are immutable; custom sources get synthetic custom_<n> ids

package sources

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"vodsearch-api/core/domain"
	coreerrors "vodsearch-api/core/errors"
)

const (
	// SearchPath is the default JSON search path shared by maccms-style APIs.
	SearchPath = "/api.php/provide/vod/?ac=videolist&wd="

	// DetailPath is the default JSON detail path, keyed by video id.
	DetailPath = "/api.php/provide/vod/?ac=videolist&ids="

	// HTMLDetailPathFormat is the detail page path for sources that only
	// expose episode lists through scraped HTML.
	HTMLDetailPathFormat = "/index.php/vod/detail/id/%s.html"

	// MaxCustomSearchSources caps the number of ad hoc API URLs accepted
	// by a single multi-custom aggregation run.
	MaxCustomSearchSources = 5
)

// customURLPattern accepts absolute http(s) URLs only.
var customURLPattern = regexp.MustCompile(`^https?://`)

// builtin is the static source table. Order matters: it is the order
// sources are dispatched and listed in.
var builtin = []domain.Source{
	{ID: "dyttzy", Name: "电影天堂资源", APIBaseURL: "http://caiji.dyttzyapi.com"},
	{ID: "ruyi", Name: "如意资源", APIBaseURL: "https://cj.rycjapi.com"},
	{ID: "bfzy", Name: "暴风资源", APIBaseURL: "https://bfzyapi.com"},
	{ID: "tyyszy", Name: "天涯资源", APIBaseURL: "https://tyyszy.com"},
	{ID: "xiaomaomi", Name: "小猫咪资源", APIBaseURL: "https://zy.xiaomaomi.cc"},
	{ID: "ffzy", Name: "非凡影视", APIBaseURL: "http://ffzy5.tv", DetailBaseURL: "http://ffzy5.tv"},
	{ID: "heimuer", Name: "黑木耳", APIBaseURL: "https://json.heimuer.xyz", DetailBaseURL: "https://heimuer.tv"},
	{ID: "zy360", Name: "360资源", APIBaseURL: "https://360zy.com"},
	{ID: "wolong", Name: "卧龙资源", APIBaseURL: "https://wolongzyw.com"},
	{ID: "hwba", Name: "华为吧资源", APIBaseURL: "https://cjhwba.com"},
	{ID: "jisu", Name: "极速资源", APIBaseURL: "https://jszyapi.com", DetailBaseURL: "https://jszyapi.com"},
	{ID: "dbzy", Name: "豆瓣资源", APIBaseURL: "https://dbzy.com"},
	{ID: "mozhua", Name: "魔爪资源", APIBaseURL: "https://mozhuazy.com"},
	{ID: "mdzy", Name: "魔都资源", APIBaseURL: "https://www.mdzyapi.com"},
	{ID: "zuid", Name: "最大资源", APIBaseURL: "https://api.zuidapi.com"},
	{ID: "yinghua", Name: "樱花资源", APIBaseURL: "https://m3u8.apiyhzy.com"},
	{ID: "baidu", Name: "百度云资源", APIBaseURL: "https://api.apibdzy.com"},
	{ID: "wujin", Name: "无尽资源", APIBaseURL: "https://api.wujinapi.me"},
	{ID: "wwzy", Name: "旺旺短剧", APIBaseURL: "https://wwzy.tv"},
	{ID: "ikun", Name: "iKun资源", APIBaseURL: "https://ikunzyapi.com"},
}

// Registry resolves source ids to their configuration. Built-in sources
// are shared constants; custom sources are added at runtime and live for
// the registry's lifetime.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]domain.Source
	order  []string
	custom int
}

// NewRegistry creates a registry populated with the built-in sources.
func NewRegistry() *Registry {
	r := &Registry{
		byID:  make(map[string]domain.Source, len(builtin)),
		order: make([]string, 0, len(builtin)),
	}
	for _, s := range builtin {
		r.byID[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return r
}

// Get returns the source registered under id.
func (r *Registry) Get(id string) (domain.Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	return s, ok
}

// AddCustom registers a user-supplied source and returns it. The id is
// synthesized as custom_<n> and is unique within this registry.
func (r *Registry) AddCustom(name, apiURL, detailURL string, adult bool) (domain.Source, error) {
	if name == "" {
		return domain.Source{}, &coreerrors.ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if err := validateCustomURL(apiURL); err != nil {
		return domain.Source{}, err
	}
	if detailURL != "" {
		if err := validateCustomURL(detailURL); err != nil {
			return domain.Source{}, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	src := domain.Source{
		ID:            fmt.Sprintf("custom_%d", r.custom),
		Name:          name,
		APIBaseURL:    strings.TrimRight(apiURL, "/"),
		DetailBaseURL: strings.TrimRight(detailURL, "/"),
		Adult:         adult,
		Custom:        true,
	}
	r.custom++
	r.byID[src.ID] = src
	r.order = append(r.order, src.ID)
	return src, nil
}

// All returns every registered source in registration order, optionally
// filtering out adult-content sources.
func (r *Registry) All(includeAdult bool) []domain.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Source, 0, len(r.order))
	for _, id := range r.order {
		s := r.byID[id]
		if s.Adult && !includeAdult {
			continue
		}
		out = append(out, s)
	}
	return out
}

// IDs returns the ids of every registered source in registration order.
func (r *Registry) IDs(includeAdult bool) []string {
	all := r.All(includeAdult)
	ids := make([]string, len(all))
	for i, s := range all {
		ids[i] = s.ID
	}
	return ids
}

// ParseCustomURLs splits a delimited list of ad hoc API base URLs,
// dropping blanks and anything that is not absolute http(s), and caps the
// result at max entries.
func ParseCustomURLs(raw string, max int) []string {
	parts := strings.Split(raw, ",")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || !customURLPattern.MatchString(p) {
			continue
		}
		urls = append(urls, strings.TrimRight(p, "/"))
		if len(urls) == max {
			break
		}
	}
	return urls
}

func validateCustomURL(raw string) error {
	if !customURLPattern.MatchString(raw) {
		return &coreerrors.ValidationError{Field: "url", Message: "must be an absolute http(s) URL"}
	}
	if _, err := url.Parse(raw); err != nil {
		return &coreerrors.ValidationError{Field: "url", Message: "malformed URL"}
	}
	return nil
}
