package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocs() []Document {
	return []Document{
		{ID: "a", Title: "Climate talks stall in Bonn", Section: "Environment", Description: "Negotiators fail to agree"},
		{ID: "b", Title: "Premier League roundup", Section: "Football", Description: "Weekend results"},
		{ID: "c", Title: "Heatwave grips Europe", Section: "World news", Description: "Scientists link the climate crisis to records"},
		{ID: "d", Title: "Markets rally", Section: "Business", Description: "Shares rise on rate hopes"},
	}
}

func ids(docs []Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Climate Crisis", []string{"climate", "crisis"}},
		{"  a b  ", []string{"a", "b"}},
		{"  - ", nil},
		{"covid-19 vaccine", []string{"covid", "19", "vaccine"}},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tokenize(tt.in), tt.in)
	}
}

func TestFilter_EmptyQueryKeepsAll(t *testing.T) {
	docs := sampleDocs()
	for _, q := range []string{"", "   ", "-"} {
		got, err := Filter(docs, q)
		require.NoError(t, err)
		assert.Equal(t, ids(docs), ids(got), "query %q", q)
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	got, err := Filter(sampleDocs(), "climate")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids(got))
}

func TestFilter_Prefix(t *testing.T) {
	got, err := Filter(sampleDocs(), "heat")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids(got))
}

func TestFilter_SingleCharacterIsPrefix(t *testing.T) {
	got, err := Filter(sampleDocs(), "h")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, ids(got))

	got, err = Filter(sampleDocs(), "q")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilter_AllTermsMustMatch(t *testing.T) {
	got, err := Filter(sampleDocs(), "climate records")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids(got))
}

func TestFilter_Section(t *testing.T) {
	got, err := Filter(sampleDocs(), "football")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestFilter_NoMatch(t *testing.T) {
	got, err := Filter(sampleDocs(), "zeppelin")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIndex_Match(t *testing.T) {
	idx, err := NewIndex(sampleDocs())
	require.NoError(t, err)
	defer idx.Close()

	hits, err := idx.Match("markets")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"d": true}, hits)

	hits, err = idx.Match("x")
	require.NoError(t, err)
	assert.Empty(t, hits)
}
