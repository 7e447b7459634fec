// Package reader turns an article page into Markdown for the preview frame.
package reader

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"

	"github.com/pders01/newsview/internal/config"
	"github.com/pders01/newsview/internal/news"
	"github.com/pders01/newsview/internal/validation"
)

// maxPageBytes caps how much of a page is read.
const maxPageBytes = 4 << 20

// Page is a fetched article converted to Markdown.
type Page struct {
	URL      string
	Title    string
	Markdown string
}

type Reader struct {
	fetcher   *news.Fetcher
	validator *validation.LinkValidator
}

func New(cfg *config.Config, validator *validation.LinkValidator) *Reader {
	if validator == nil {
		validator = validation.NewLinkValidator()
	}
	return &Reader{
		fetcher:   news.NewFetcher(cfg),
		validator: validator,
	}
}

// Fetch downloads link and converts its main content to Markdown.
func (r *Reader) Fetch(ctx context.Context, link string) (*Page, error) {
	clean, err := r.validator.Validate(link)
	if err != nil {
		return nil, fmt.Errorf("invalid link: %w", err)
	}

	resp, err := r.fetcher.Get(ctx, clean, "text/html,application/xhtml+xml")
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		title = h1
	}

	body, err := mainContent(doc)
	if err != nil {
		return nil, fmt.Errorf("extracting content: %w", err)
	}

	md, err := htmltomarkdown.ConvertString(body, converter.WithDomain(origin(clean)))
	if err != nil {
		return nil, fmt.Errorf("converting page: %w", err)
	}

	return &Page{URL: clean, Title: title, Markdown: strings.TrimSpace(md)}, nil
}

// mainContent returns the inner HTML of the article body, dropping page chrome.
func mainContent(doc *goquery.Document) (string, error) {
	doc.Find("script, style, noscript, nav, header, footer, aside, form, iframe, svg").Remove()

	for _, sel := range []string{"article", "main", "[role=main]", "body"} {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if strings.TrimSpace(node.Text()) == "" {
			continue
		}
		return node.Html()
	}
	return "", fmt.Errorf("page has no readable content")
}

func origin(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
