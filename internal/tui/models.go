package tui

import (
	"github.com/pders01/newsview/internal/news"
)

// Focus says which widget receives typed keys.
type Focus int

const (
	FocusSearch Focus = iota
	FocusTable
)

// articlesFetchedMsg carries the outcome of one issued fetch. seq identifies
// the request so superseded responses can be dropped.
type articlesFetchedMsg struct {
	seq      uint64
	query    string
	articles []news.Article
	err      error
}

type searchDebounceFireMsg struct {
	seq int
}

type previewLoadedMsg struct {
	url     string
	title   string
	content string
	err     error
}

type popupOpenedMsg struct {
	url string
}

type errorMsg struct {
	err error
}
