// Package feed adapts RSS/Atom syndication endpoints into candidate items.
package feed

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"habernexus/internal/domain"
	"habernexus/internal/ports"
)

// Fetcher implements ports.ItemSource on top of gofeed.
type Fetcher struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

var _ ports.ItemSource = (*Fetcher)(nil)

// NewFetcher wires an HTTP client; a nil client gets a 20s timeout default.
func NewFetcher(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "HaberNexus/1.0"
	return &Fetcher{parser: parser, logger: logger}
}

// Fetch retrieves and parses one feed, returning items in feed-declared
// order. Callers cap how many of them are processed per cycle.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]domain.CandidateItem, error) {
	parsed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, &domain.FetchError{Source: feedURL, Err: err}
	}

	items := make([]domain.CandidateItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		var published time.Time
		if it.PublishedParsed != nil {
			published = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			published = *it.UpdatedParsed
		}
		items = append(items, domain.CandidateItem{
			Title:       strings.TrimSpace(it.Title),
			Description: it.Description,
			Link:        it.Link,
			ImageURL:    imageURL(it),
			PublishedAt: published,
		})
	}

	if f.logger != nil {
		f.logger.Debug("feed fetched", "feed", feedURL, "items", len(items))
	}
	return items, nil
}

// imageURL resolves the item image: typed enclosure first, then the feed
// image, then a media thumbnail extension, then the first <img> embedded in
// the description HTML.
func imageURL(it *gofeed.Item) string {
	for _, enc := range it.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if enc.Type == "" || strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}
	if media, ok := it.Extensions["media"]; ok {
		for _, thumb := range media["thumbnail"] {
			if u := thumb.Attrs["url"]; u != "" {
				return u
			}
		}
	}
	return descriptionImage(it.Description)
}

func descriptionImage(html string) string {
	if !strings.Contains(html, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}
