// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package ingest

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/borderwatch/internal/logging"
	"github.com/tomtom215/borderwatch/internal/metrics"
	"github.com/tomtom215/borderwatch/internal/models"
)

// maxReportAge drops stale articles; intel older than a week is noise.
const maxReportAge = 7 * 24 * time.Hour

// maxDescriptionLen truncates article descriptions after HTML stripping.
const maxDescriptionLen = 500

const userAgent = "Borderwatch/1.0"

// NewsOptions configures the OSINT feed client.
type NewsOptions struct {
	FeedURLs        []string
	MaxItemsPerFeed int
	Timeout         time.Duration
}

// NewsClient polls RSS feeds for security reporting and classifies each
// article by severity and category using keyword scoring.
type NewsClient struct {
	httpClient *http.Client
	opts       NewsOptions
	now        func() time.Time
}

// NewNewsClient builds the client.
func NewNewsClient(opts NewsOptions) *NewsClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.MaxItemsPerFeed <= 0 {
		opts.MaxItemsPerFeed = 10
	}
	return &NewsClient{
		httpClient: &http.Client{Timeout: opts.Timeout},
		opts:       opts,
		now:        time.Now,
	}
}

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// FetchFeed fetches and filters one RSS feed. Articles that are stale, not
// security related, or political noise are dropped.
func (c *NewsClient) FetchFeed(ctx context.Context, feedURL string) ([]models.IntelReport, error) {
	start := time.Now()
	reports, err := c.fetchFeed(ctx, feedURL)
	metrics.ObserveIngest("news", len(reports), time.Since(start), err)
	return reports, err
}

func (c *NewsClient) fetchFeed(ctx context.Context, feedURL string) ([]models.IntelReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news fetch %s: unexpected status %d", feedURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("news read %s: %w", feedURL, err)
	}

	var doc rssDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("news parse %s: %w", feedURL, err)
	}

	source := feedHost(feedURL)
	reports := make([]models.IntelReport, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		title := strings.TrimSpace(item.Title)
		desc := htmlTagPattern.ReplaceAllString(strings.TrimSpace(item.Description), "")
		if len(desc) > maxDescriptionLen {
			desc = desc[:maxDescriptionLen]
		}

		publishedAt, parsed := parseFeedDate(item.PubDate)
		if parsed && c.now().Sub(publishedAt) > maxReportAge {
			metrics.IngestRecordsSkipped.WithLabelValues("news", "stale").Inc()
			continue
		}
		if !parsed {
			// Unparseable date: keep the article, stamp it now.
			publishedAt = c.now()
		}

		combined := title + " " + desc
		if !IsSecurityRelated(combined) {
			metrics.IngestRecordsSkipped.WithLabelValues("news", "irrelevant").Inc()
			continue
		}

		reports = append(reports, models.IntelReport{
			Title:       title,
			Description: desc,
			Source:      source,
			URL:         strings.TrimSpace(item.Link),
			Severity:    ClassifySeverity(combined),
			Category:    ClassifyCategory(combined),
			PublishedAt: publishedAt,
		})
		if len(reports) >= c.opts.MaxItemsPerFeed {
			break
		}
	}

	return reports, nil
}

func feedHost(feedURL string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(feedURL, "https://"), "http://")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return strings.TrimPrefix(trimmed, "www.")
}

var feedDateFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
}

func parseFeedDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, format := range feedDateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FetchAll polls every configured feed concurrently, merges the results,
// deduplicates by title prefix, and returns reports sorted most severe
// first. Individual feed failures degrade the batch instead of failing it.
func (c *NewsClient) FetchAll(ctx context.Context) []models.IntelReport {
	type feedResult struct {
		reports []models.IntelReport
		err     error
		url     string
	}

	results := make([]feedResult, len(c.opts.FeedURLs))
	var wg sync.WaitGroup
	for i, url := range c.opts.FeedURLs {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			reports, err := c.FetchFeed(ctx, url)
			results[i] = feedResult{reports: reports, err: err, url: url}
		}(i, url)
	}
	wg.Wait()

	var all []models.IntelReport
	for _, r := range results {
		if r.err != nil {
			logging.Err(r.err).Str("feed", r.url).Msg("feed fetch failed")
			continue
		}
		all = append(all, r.reports...)
	}

	return DedupeAndRank(all)
}

// DedupeAndRank removes near-duplicate reports (same lowercased 80-char
// title prefix, first wins) and sorts the remainder by severity, most
// severe first. The sort is stable so same-severity reports keep arrival
// order.
func DedupeAndRank(reports []models.IntelReport) []models.IntelReport {
	seen := make(map[string]struct{}, len(reports))
	deduped := make([]models.IntelReport, 0, len(reports))
	for _, r := range reports {
		key := strings.ToLower(strings.TrimSpace(r.Title))
		if len(key) > 80 {
			key = key[:80]
		}
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			metrics.IngestRecordsSkipped.WithLabelValues("news", "duplicate").Inc()
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, r)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return severityRank(deduped[i].Severity) < severityRank(deduped[j].Severity)
	})
	return deduped
}

func severityRank(s models.Severity) int {
	switch s {
	case models.SeverityCritical:
		return 0
	case models.SeverityHigh:
		return 1
	case models.SeverityMedium:
		return 2
	case models.SeverityLow:
		return 3
	default:
		return 4
	}
}
