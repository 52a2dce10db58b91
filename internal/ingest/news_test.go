// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/borderwatch/internal/models"
)

func rssBody(items ...string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Test Feed</title>`
	for _, item := range items {
		body += item
	}
	return body + `</channel></rss>`
}

func rssItemXML(title, desc, pubDate string) string {
	return fmt.Sprintf(
		`<item><title>%s</title><description>%s</description><link>https://example.com/a</link><pubDate>%s</pubDate></item>`,
		title, desc, pubDate)
}

func TestNewsFetchFeed(t *testing.T) {
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-2 * time.Hour).Format(time.RFC1123Z)
	stale := now.Add(-10 * 24 * time.Hour).Format(time.RFC1123Z)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssBody(
			rssItemXML("Bandits attack village in Zuru", "<p>Armed men raided the settlement.</p>", fresh),
			rssItemXML("Old bandit attack in Argungu", "archive item", stale),
			rssItemXML("Kebbi hosts trade fair", "not security related", fresh),
			rssItemXML("Troops raid camp near Sokoto border", "military operation", fresh),
		)))
	}))
	defer srv.Close()

	c := NewNewsClient(NewsOptions{MaxItemsPerFeed: 10, Timeout: 5 * time.Second})
	c.now = func() time.Time { return now }

	reports, err := c.FetchFeed(context.Background(), srv.URL+"/feed")
	if err != nil {
		t.Fatalf("FetchFeed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2 (stale and irrelevant dropped): %+v", len(reports), reports)
	}

	first := reports[0]
	if first.Title != "Bandits attack village in Zuru" {
		t.Errorf("title = %q", first.Title)
	}
	// HTML is stripped from descriptions.
	if first.Description != "Armed men raided the settlement." {
		t.Errorf("description = %q", first.Description)
	}
	if first.Severity != models.SeverityCritical {
		t.Errorf("severity = %v, want critical", first.Severity)
	}
	if first.Category != "criminal" {
		t.Errorf("category = %q, want criminal", first.Category)
	}
}

func TestNewsFetchFeedRespectsItemCap(t *testing.T) {
	now := time.Now()
	fresh := now.Format(time.RFC1123Z)
	items := make([]string, 5)
	for i := range items {
		items[i] = rssItemXML(fmt.Sprintf("Bandit attack %d reported in Zuru", i), "", fresh)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssBody(items...)))
	}))
	defer srv.Close()

	c := NewNewsClient(NewsOptions{MaxItemsPerFeed: 2, Timeout: 5 * time.Second})
	reports, err := c.FetchFeed(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchFeed: %v", err)
	}
	if len(reports) != 2 {
		t.Errorf("got %d reports, want cap of 2", len(reports))
	}
}

func TestNewsFetchFeedBadXML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not a feed</html"))
	}))
	defer srv.Close()

	c := NewNewsClient(NewsOptions{Timeout: 5 * time.Second})
	if _, err := c.FetchFeed(context.Background(), srv.URL); err == nil {
		t.Fatal("no error for unparseable feed")
	}
}

func TestNewsFetchAllDegradesOnFeedFailure(t *testing.T) {
	fresh := time.Now().Format(time.RFC1123Z)
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssBody(rssItemXML("Gunmen ambush convoy near Yauri", "", fresh))))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()

	c := NewNewsClient(NewsOptions{
		FeedURLs:        []string{good.URL, bad.URL},
		MaxItemsPerFeed: 10,
		Timeout:         5 * time.Second,
	})

	reports := c.FetchAll(context.Background())
	if len(reports) != 1 {
		t.Errorf("got %d reports, want 1 from the healthy feed", len(reports))
	}
}

func TestDedupeAndRank(t *testing.T) {
	reports := []models.IntelReport{
		{Title: "Clash at border town", Severity: models.SeverityMedium},
		{Title: "Gunmen kill five", Severity: models.SeverityCritical},
		{Title: "gunmen KILL five", Severity: models.SeverityHigh}, // dup of previous, first wins
		{Title: "Troops raid camp", Severity: models.SeverityHigh},
		{Title: "", Severity: models.SeverityCritical}, // empty titles dropped
	}

	out := DedupeAndRank(reports)
	if len(out) != 3 {
		t.Fatalf("got %d reports, want 3", len(out))
	}
	wantOrder := []models.Severity{models.SeverityCritical, models.SeverityHigh, models.SeverityMedium}
	for i, want := range wantOrder {
		if out[i].Severity != want {
			t.Errorf("report %d severity = %v, want %v", i, out[i].Severity, want)
		}
	}
	if out[0].Title != "Gunmen kill five" {
		t.Errorf("duplicate resolution kept %q, want first occurrence", out[0].Title)
	}
}

func TestParseFeedDate(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"Mon, 17 Aug 2026 10:00:00 +0100", true},
		{"Mon, 17 Aug 2026 10:00:00 UTC", true},
		{"2026-08-17T10:00:00Z", true},
		{"yesterday", false},
		{"", false},
	}

	for _, tt := range tests {
		if _, ok := parseFeedDate(tt.raw); ok != tt.want {
			t.Errorf("parseFeedDate(%q) parsed = %v, want %v", tt.raw, ok, tt.want)
		}
	}
}

func TestFeedHost(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.premiumtimesng.com/category/feed", "premiumtimesng.com"},
		{"http://dailytrust.com/feed/", "dailytrust.com"},
		{"https://example.com", "example.com"},
	}
	for _, tt := range tests {
		if got := feedHost(tt.url); got != tt.want {
			t.Errorf("feedHost(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
