package news

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pders01/newsview/internal/config"
	"github.com/pders01/newsview/internal/search"
)

// RSSSource reads a Guardian section feed. It needs no API key; queries are
// matched locally against the items of the feed.
type RSSSource struct {
	fetcher *Fetcher
	parser  *gofeed.Parser
	feedURL string
}

func NewRSSSource(cfg *config.Config) *RSSSource {
	return &RSSSource{
		fetcher: NewFetcher(cfg),
		parser:  gofeed.NewParser(),
		feedURL: cfg.Source.RSSURL,
	}
}

// Name returns the source identifier.
func (s *RSSSource) Name() string { return config.SourceRSS }

// Search fetches the feed once and keeps the items matching query in feed order.
func (s *RSSSource) Search(ctx context.Context, query string) ([]Article, error) {
	resp, err := s.fetcher.Get(ctx, s.feedURL, "application/rss+xml, application/xml;q=0.9, */*;q=0.8")
	if err != nil {
		return nil, fmt.Errorf("rss fetch: %w", err)
	}
	defer resp.Body.Close()

	feed, err := s.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	articles := make([]Article, 0, len(feed.Items))
	docs := make([]search.Document, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := articleFromItem(item)
		if a.ID == "" {
			continue
		}
		// Feeds may repeat a GUID, so documents are keyed by position
		docs = append(docs, search.Document{
			ID:          strconv.Itoa(len(articles)),
			Title:       a.WebTitle,
			Section:     a.SectionName,
			Description: item.Description,
		})
		articles = append(articles, a)
	}

	if strings.TrimSpace(query) == "" {
		return articles, nil
	}

	kept, err := search.Filter(docs, query)
	if err != nil {
		return nil, fmt.Errorf("matching feed items: %w", err)
	}

	out := make([]Article, 0, len(kept))
	for _, d := range kept {
		i, err := strconv.Atoi(d.ID)
		if err != nil {
			return nil, fmt.Errorf("matching feed items: bad document id %q", d.ID)
		}
		out = append(out, articles[i])
	}
	return out, nil
}

func articleFromItem(item *gofeed.Item) Article {
	id := item.GUID
	if id == "" {
		id = item.Link
	}

	a := Article{
		ID:       id,
		Type:     "article",
		WebTitle: strings.TrimSpace(item.Title),
		WebURL:   item.Link,
	}

	if len(item.Categories) > 0 {
		a.SectionName = item.Categories[0]
		a.SectionID = sectionID(item.Categories[0])
	}

	switch {
	case item.PublishedParsed != nil:
		a.WebPublicationDate = item.PublishedParsed.UTC().Format(time.RFC3339)
	case item.UpdatedParsed != nil:
		a.WebPublicationDate = item.UpdatedParsed.UTC().Format(time.RFC3339)
	}

	return a
}

// sectionID turns "World news" into "world-news".
func sectionID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
