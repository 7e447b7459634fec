package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/pders01/newsview/internal/config"
)

// GuardianClient queries the Guardian content search endpoint.
type GuardianClient struct {
	fetcher  *Fetcher
	endpoint string
	apiKey   string
}

type guardianResponse struct {
	Response struct {
		Status      string    `json:"status"`
		Message     string    `json:"message"`
		Total       int       `json:"total"`
		CurrentPage int       `json:"currentPage"`
		Pages       int       `json:"pages"`
		Results     []Article `json:"results"`
	} `json:"response"`
	// Set on gateway-level rejections such as a missing or invalid key
	Message string `json:"message"`
}

func NewGuardianClient(cfg *config.Config) *GuardianClient {
	return &GuardianClient{
		fetcher:  NewFetcher(cfg),
		endpoint: cfg.Guardian.Endpoint,
		apiKey:   cfg.Guardian.APIKey,
	}
}

// Name returns the source identifier.
func (c *GuardianClient) Name() string { return config.SourceGuardian }

// RequestURL builds the search URL. The q parameter is omitted for a blank query.
func (c *GuardianClient) RequestURL(query string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint: %w", err)
	}

	params := u.Query()
	params.Set("api-key", c.apiKey)
	if q := strings.TrimSpace(query); q != "" {
		params.Set("q", q)
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// Search issues one GET and returns response.results in API order.
func (c *GuardianClient) Search(ctx context.Context, query string) ([]Article, error) {
	reqURL, err := c.RequestURL(query)
	if err != nil {
		return nil, err
	}

	resp, err := c.fetcher.Get(ctx, reqURL, "application/json")
	if err != nil {
		return nil, fmt.Errorf("guardian search: %w", err)
	}
	defer resp.Body.Close()

	var gr guardianResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("parsing guardian response: %w", err)
	}

	if gr.Response.Status != "ok" {
		msg := gr.Response.Message
		if msg == "" {
			msg = gr.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %q", gr.Response.Status)
		}
		return nil, fmt.Errorf("guardian search: %s", msg)
	}

	if gr.Response.Results == nil {
		return []Article{}, nil
	}
	return gr.Response.Results, nil
}
