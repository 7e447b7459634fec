package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/newsview/internal/news"
)

// Skeleton dimensions while a fetch is outstanding.
const (
	skeletonRows = 10
	columnCount  = 5
)

const placeholderCell = "░░░░░░░░"

// Fixed widths for every column but the title, which takes the rest.
const (
	sectionWidth = 18
	pillarWidth  = 10
	typeWidth    = 12
	dateWidth    = 19
	minTitle     = 20
)

func newResultsTable(width, height int) table.Model {
	t := table.New(
		table.WithColumns(resultColumns(width)),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(MutedColor).
		BorderBottom(true).
		Foreground(SecondaryColor).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(BackgroundColor).
		Background(PrimaryColor).
		Bold(false)
	t.SetStyles(s)
	return t
}

func resultColumns(width int) []table.Column {
	// Each cell carries one column of padding on both sides
	title := width - sectionWidth - pillarWidth - typeWidth - dateWidth - 2*columnCount
	if title < minTitle {
		title = minTitle
	}
	return []table.Column{
		{Title: "Title", Width: title},
		{Title: "Section", Width: sectionWidth},
		{Title: "Pillar", Width: pillarWidth},
		{Title: "Type", Width: typeWidth},
		{Title: "Published", Width: dateWidth},
	}
}

func placeholderRows() []table.Row {
	rows := make([]table.Row, skeletonRows)
	for i := range rows {
		row := make(table.Row, columnCount)
		for j := range row {
			row[j] = placeholderCell
		}
		rows[i] = row
	}
	return rows
}

func emptyRows() []table.Row {
	return []table.Row{{MsgNoRecords, "", "", "", ""}}
}

func articleRows(articles []news.Article, loc *time.Location) []table.Row {
	rows := make([]table.Row, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, table.Row{
			a.WebTitle,
			a.SectionName,
			a.PillarName,
			a.Type,
			a.FormatDate(loc),
		})
	}
	return rows
}

// tableRows picks the skeleton, the empty-state row or one row per article.
func tableRows(loading bool, articles []news.Article, loc *time.Location) []table.Row {
	switch {
	case loading:
		return placeholderRows()
	case len(articles) == 0:
		return emptyRows()
	default:
		return articleRows(articles, loc)
	}
}
