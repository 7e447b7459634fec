package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/pders01/newsview/internal/debuglog"
	"github.com/pders01/newsview/internal/launcher"
)

// issueFetch starts one search for query. It cancels whatever request was in
// flight and bumps fetchSeq, so only this request's response can be applied.
func (a *App) issueFetch(query string) tea.Cmd {
	if a.closed {
		return nil
	}

	if a.inflight != nil {
		a.inflight()
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.inflight = cancel

	a.fetchSeq++
	seq := a.fetchSeq
	a.loading = true
	a.query = query
	a.refreshTable()

	src := a.source
	return func() tea.Msg {
		articles, err := src.Search(ctx, query)
		return articlesFetchedMsg{seq: seq, query: query, articles: articles, err: err}
	}
}

// startFetch is issueFetch plus the header spinner.
func (a *App) startFetch(query string) tea.Cmd {
	fetch := a.issueFetch(query)
	if fetch == nil {
		return nil
	}
	a.setStatus(MsgLoading, StatusInfo)
	return tea.Batch(fetch, a.startSpinner())
}

func (a *App) applyFetch(msg articlesFetchedMsg) {
	if a.closed {
		return
	}
	if msg.seq != a.fetchSeq {
		debuglog.Debugf("dropping superseded response seq=%d latest=%d", msg.seq, a.fetchSeq)
		return
	}

	if a.inflight != nil {
		a.inflight()
		a.inflight = nil
	}
	a.loading = false

	if msg.err != nil {
		debuglog.WithFields(map[string]interface{}{
			"query":  msg.query,
			"seq":    msg.seq,
			"source": a.source.Name(),
		}).Errorf("fetch failed: %v", msg.err)
		// Failures are only logged; the list stays as it was
		a.setStatus("", StatusInfo)
		a.refreshTable()
		return
	}

	a.articles = msg.articles
	a.setStatus(MsgResultsCount(len(msg.articles)), StatusInfo)
	a.refreshTable()
	a.table.SetCursor(0)
}

// scheduleSearch records a changed query and arms the quiescence timer.
// Only the timer carrying the latest searchSeq issues a request.
func (a *App) scheduleSearch(query string) tea.Cmd {
	a.pendingQuery = query
	a.searchSeq++
	seq := a.searchSeq

	wait := a.config.Search.Debounce
	if wait <= 0 {
		return a.startFetch(query)
	}
	return tea.Tick(wait, func(time.Time) tea.Msg { return searchDebounceFireMsg{seq: seq} })
}

func (a *App) openPopup(url string) tea.Cmd {
	opener := a.opener
	geometry := launcher.CenteredPopup(a.config.Popup.ScreenWidth, a.config.Popup.ScreenHeight)
	return func() tea.Msg {
		if err := opener.OpenPopup(url, geometry); err != nil {
			return errorMsg{err: wrapErr("open popup", err)}
		}
		return popupOpenedMsg{url: url}
	}
}

// openPreview mounts the dialog for url and loads the page behind it.
func (a *App) openPreview(url string) tea.Cmd {
	a.previewURL = url
	a.preview = newPreviewDialog(url, a.setPreviewURL, a.previewWidth(), a.config.UI.PreviewHeight)
	a.setStatus(MsgLoadingPreview, StatusInfo)
	return a.loadPreview(url)
}

func (a *App) setPreviewURL(url string) {
	a.previewURL = url
}

func (a *App) loadPreview(url string) tea.Cmd {
	if a.reader == nil {
		return nil
	}
	ctx := a.ctx
	rdr := a.reader
	renderer, rendererErr := a.getRenderer()
	return func() tea.Msg {
		page, err := rdr.Fetch(ctx, url)
		if err != nil {
			return previewLoadedMsg{url: url, err: err}
		}
		if rendererErr != nil {
			return previewLoadedMsg{url: url, title: page.Title, content: page.Markdown}
		}
		rendered, err := renderer.Render(page.Markdown)
		if err != nil {
			return previewLoadedMsg{url: url, err: wrapErr("render preview", err)}
		}
		return previewLoadedMsg{url: url, title: page.Title, content: strings.TrimRight(rendered, "\n")}
	}
}

func (a *App) applyPreview(msg previewLoadedMsg) {
	if a.preview == nil || !a.preview.Open() || a.preview.URL() != msg.url {
		return
	}
	if msg.err != nil {
		debuglog.Warnf("preview %s: %v", msg.url, msg.err)
		a.preview.SetError(msg.err)
		a.setStatus("", StatusInfo)
		return
	}
	a.preview.SetContent(msg.title, msg.content)
	a.setStatus("", StatusInfo)
}

// getRenderer caches a glamour renderer sized to the preview frame.
func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wrap := a.previewWidth() - 2
	if wrap < 20 {
		wrap = 20
	}

	if a.glamourRenderer == nil || a.rendererWidth != wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wrap
	}
	return a.glamourRenderer, nil
}

func (a *App) startSpinner() tea.Cmd {
	if a.spinning {
		return nil
	}
	a.spinning = true
	return a.spinner.Tick
}
