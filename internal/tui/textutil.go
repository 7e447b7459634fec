package tui

import (
	"github.com/mattn/go-runewidth"
)

// truncateEnd shortens s to at most limit terminal cells, ending in an
// ellipsis when anything was cut.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= limit {
		return s
	}
	return runewidth.Truncate(s, limit, "…")
}

// truncateMiddle keeps both ends of s around a single ellipsis. URLs carry
// meaning at the host and at the slug.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}

	keep := limit - 1
	left := keep / 2
	right := keep - left

	r := []rune(s)
	head := runewidth.Truncate(s, left, "")
	// Walk back from the end until the tail fills its share of cells
	tailStart := len(r)
	width := 0
	for tailStart > 0 {
		w := runewidth.RuneWidth(r[tailStart-1])
		if width+w > right {
			break
		}
		width += w
		tailStart--
	}
	return head + "…" + string(r[tailStart:])
}
