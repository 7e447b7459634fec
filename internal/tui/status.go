package tui

import (
	"fmt"
	"strings"
)

// Canonical short status messages used across the app.
const (
	MsgLoading        = "Loading…"
	MsgLoadingPreview = "Loading preview…"
	MsgNoRecords      = "No record to show"
)

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

func MsgOpened(url string) string {
	return "Opened " + truncateMiddle(strings.TrimSpace(url), 60)
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	switch a.statusKind {
	case StatusSuccess:
		return StatusSuccessStyle.Render(a.status)
	case StatusWarn:
		return StatusWarnStyle.Render(a.status)
	case StatusError:
		return StatusErrorStyle.Render(a.status)
	default:
		return StatusInfoStyle.Render(a.status)
	}
}
