package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/newsview/internal/config"
)

const twoResults = `{
  "response": {
    "status": "ok",
    "total": 2,
    "currentPage": 1,
    "pages": 1,
    "results": [
      {
        "id": "environment/2023/may/01/climate",
        "type": "article",
        "sectionId": "environment",
        "sectionName": "Environment",
        "webPublicationDate": "2023-05-01T12:00:00Z",
        "webTitle": "Climate talks stall",
        "webUrl": "https://www.theguardian.com/environment/2023/may/01/climate",
        "apiUrl": "https://content.guardianapis.com/environment/2023/may/01/climate",
        "isHosted": false,
        "pillarId": "pillar/news",
        "pillarName": "News"
      },
      {
        "id": "sport/2023/may/02/football",
        "type": "liveblog",
        "sectionId": "football",
        "sectionName": "Football",
        "webPublicationDate": "2023-05-02T08:30:00Z",
        "webTitle": "Matchday live",
        "webUrl": "https://www.theguardian.com/sport/2023/may/02/football",
        "apiUrl": "https://content.guardianapis.com/sport/2023/may/02/football",
        "isHosted": false,
        "pillarId": "pillar/sport",
        "pillarName": "Sport"
      }
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *GuardianClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.TestConfig()
	cfg.Guardian.Endpoint = server.URL + "/search"
	return NewGuardianClient(cfg)
}

func TestGuardianClient_RequestURL(t *testing.T) {
	cfg := config.TestConfig()
	cfg.Guardian.Endpoint = "https://content.guardianapis.com/search"
	c := NewGuardianClient(cfg)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"empty query omits q", "", "https://content.guardianapis.com/search?api-key=test-key"},
		{"blank query omits q", "   ", "https://content.guardianapis.com/search?api-key=test-key"},
		{"query is encoded", "climate crisis", "https://content.guardianapis.com/search?api-key=test-key&q=climate+crisis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.RequestURL(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuardianClient_Search(t *testing.T) {
	var requests int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api-key"))
		assert.Equal(t, "climate", r.URL.Query().Get("q"))
		assert.Equal(t, "newsview-test/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(twoResults))
	})

	articles, err := c.Search(context.Background(), "climate")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests), "exactly one request per search")

	require.Len(t, articles, 2)
	assert.Equal(t, "Climate talks stall", articles[0].WebTitle)
	assert.Equal(t, "Environment", articles[0].SectionName)
	assert.Equal(t, "News", articles[0].PillarName)
	assert.Equal(t, "article", articles[0].Type)
	assert.Equal(t, "https://www.theguardian.com/environment/2023/may/01/climate", articles[0].WebURL)
	assert.Equal(t, "liveblog", articles[1].Type)
}

func TestGuardianClient_SearchEmptyQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasQ := r.URL.Query()["q"]
		assert.False(t, hasQ, "q must be absent for an empty query")
		w.Write([]byte(`{"response":{"status":"ok","results":[]}}`))
	})

	articles, err := c.Search(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestGuardianClient_SearchMissingResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"status":"ok"}}`))
	})

	articles, err := c.Search(context.Background(), "x")
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestGuardianClient_SearchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"Unauthorized"}`, "HTTP error: 401"},
		{"rate limited", http.StatusTooManyRequests, ``, "HTTP error: 429"},
		{"api error status", http.StatusOK, `{"response":{"status":"error","message":"The api-key provided is invalid"}}`, "api-key provided is invalid"},
		{"unknown status", http.StatusOK, `{"response":{"status":"weird"}}`, `unexpected status "weird"`},
		{"malformed body", http.StatusOK, `{"response":`, "parsing guardian response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			articles, err := c.Search(context.Background(), "climate")
			require.Error(t, err)
			assert.Nil(t, articles)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGuardianClient_SearchCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, "climate")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSource(t *testing.T) {
	cfg := config.TestConfig()

	src, err := NewSource(cfg)
	require.NoError(t, err)
	assert.Equal(t, "guardian", src.Name())

	cfg.Source.Kind = config.SourceRSS
	src, err = NewSource(cfg)
	require.NoError(t, err)
	assert.Equal(t, "rss", src.Name())

	cfg.Source.Kind = "newsapi"
	_, err = NewSource(cfg)
	assert.Error(t, err)
}
