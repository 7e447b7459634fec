// Package search filters documents in memory with a throwaway bleve index.
package search

import (
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"
)

// Document is the searchable projection of a news item.
type Document struct {
	ID          string
	Title       string
	Section     string
	Description string
}

// Index is an in-memory full text index over a fixed set of documents.
type Index struct {
	idx  bleve.Index
	size int
}

// NewIndex builds a mem-only index holding docs.
func NewIndex(docs []Document) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}

	batch := idx.NewBatch()
	for _, d := range docs {
		if d.ID == "" {
			continue
		}
		if err := batch.Index(d.ID, map[string]any{
			"title":       d.Title,
			"section":     d.Section,
			"description": d.Description,
		}); err != nil {
			idx.Close()
			return nil, err
		}
	}
	if err := idx.Batch(batch); err != nil {
		idx.Close()
		return nil, err
	}
	return &Index{idx: idx, size: len(docs)}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.IncludeTermVectors = true

	section := bleve.NewTextFieldMapping()
	section.Analyzer = standard.Name

	desc := bleve.NewTextFieldMapping()
	desc.Analyzer = standard.Name

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("section", section)
	dm.AddFieldMappingsAt("description", desc)

	im.DefaultMapping = dm
	return im
}

// Match returns the IDs of documents matching every term of query. A query
// with no usable terms matches nothing; callers decide what that means.
func (i *Index) Match(query string) (map[string]bool, error) {
	tokens := tokenize(query)
	if len(tokens) == 0 || i.size == 0 {
		return map[string]bool{}, nil
	}

	// Each term must hit title, section or description, either whole or as a prefix
	var must []bleveQuery.Query
	for _, tok := range tokens {
		var qs []bleveQuery.Query

		qt := bleve.NewMatchQuery(tok)
		qt.SetField("title")
		qt.SetBoost(4.0)
		qs = append(qs, qt)
		qtp := bleve.NewPrefixQuery(tok)
		qtp.SetField("title")
		qtp.SetBoost(3.5)
		qs = append(qs, qtp)

		qs2 := bleve.NewMatchQuery(tok)
		qs2.SetField("section")
		qs2.SetBoost(1.5)
		qs = append(qs, qs2)

		qd := bleve.NewMatchQuery(tok)
		qd.SetField("description")
		qd.SetBoost(2.0)
		qs = append(qs, qd)
		qdp := bleve.NewPrefixQuery(tok)
		qdp.SetField("description")
		qdp.SetBoost(1.8)
		qs = append(qs, qdp)

		must = append(must, bleve.NewDisjunctionQuery(qs...))
	}

	req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(must...), i.size, 0, false)
	res, err := i.idx.Search(req)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(res.Hits))
	for _, hit := range res.Hits {
		ids[hit.ID] = true
	}
	return ids, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.idx.Close()
}

// Filter keeps the documents matching query, in their original order.
// An empty or termless query keeps everything. Document IDs must be unique.
func Filter(docs []Document, query string) ([]Document, error) {
	if len(tokenize(query)) == 0 {
		return docs, nil
	}

	idx, err := NewIndex(docs)
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	ids, err := idx.Match(query)
	if err != nil {
		return nil, err
	}

	out := make([]Document, 0, len(ids))
	for _, d := range docs {
		if ids[d.ID] {
			out = append(out, d)
		}
	}
	return out, nil
}

// tokenize breaks text into lowercase terms. A one-character term still
// filters: it matches as a prefix.
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			terms = append(terms, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		terms = append(terms, current.String())
	}

	return terms
}
