package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/solacehq/solace/internal/domain"
)

// trustedSites narrows resource search to vetted mental-health domains.
var trustedSites = []string{
	"nimh.nih.gov",
	"nami.org",
	"mhanational.org",
	"samhsa.gov",
	"who.int",
	"mind.org.uk",
}

// WebSearchService finds external self-help resources via the DuckDuckGo
// HTML endpoint, restricted to the trusted domain list. Disabled
// deployments get an empty result instead of an error.
type WebSearchService struct {
	httpClient *http.Client
	baseURL    string
	enabled    bool
}

func NewWebSearchService(enabled bool) *WebSearchService {
	return &WebSearchService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://html.duckduckgo.com/html/",
		enabled:    enabled,
	}
}

// Search returns up to limit resource links for the query.
func (s *WebSearchService) Search(ctx context.Context, query string, limit int) ([]domain.Source, error) {
	if !s.enabled || strings.TrimSpace(query) == "" {
		return nil, nil
	}

	siteFilter := make([]string, 0, len(trustedSites))
	for _, site := range trustedSites {
		siteFilter = append(siteFilter, "site:"+site)
	}
	q := query + " (" + strings.Join(siteFilter, " OR ") + ")"

	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"?q="+url.QueryEscape(q), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; SolaceBot/1.0)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	var sources []domain.Source
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a")
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		href = resolveRedirect(href)
		sources = append(sources, domain.Source{
			Title:      strings.TrimSpace(link.Text()),
			URL:        href,
			Snippet:    strings.TrimSpace(sel.Find("a.result__snippet").Text()),
			DisplayURL: displayURL(href),
			Type:       domain.SourceWebSearch,
		})
		return len(sources) < limit
	})
	return sources, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" {
		return "https:" + href
	}
	return href
}

func displayURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimPrefix(u.Host, "www.")
}
