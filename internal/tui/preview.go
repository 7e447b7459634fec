package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PreviewDialog shows one article in a fixed-height frame with a single
// Close action. setURL is the owner's URL setter; closing clears it.
type PreviewDialog struct {
	url      string
	setURL   func(string)
	open     bool
	loading  bool
	failed   bool
	title    string
	viewport viewport.Model
	width    int
	keys     previewKeyMap
}

type previewKeyMap struct {
	Close  key.Binding
	Cancel key.Binding
	Scroll key.Binding
}

func newPreviewKeyMap() previewKeyMap {
	return previewKeyMap{
		Close:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "close")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		// Handled by the viewport; listed for help only
		Scroll: key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑↓", "scroll")),
	}
}

func newPreviewDialog(url string, setURL func(string), width, height int) *PreviewDialog {
	if width < 40 {
		width = 40
	}
	vp := viewport.New(width, height)
	return &PreviewDialog{
		url:      url,
		setURL:   setURL,
		open:     true,
		loading:  true,
		viewport: vp,
		width:    width,
		keys:     newPreviewKeyMap(),
	}
}

func (p *PreviewDialog) URL() string { return p.url }

func (p *PreviewDialog) Open() bool { return p.open }

// Close hides the dialog and clears the owner's URL.
func (p *PreviewDialog) Close() {
	p.open = false
	if p.setURL != nil {
		p.setURL("")
	}
}

// SetContent replaces the frame body with already rendered text.
func (p *PreviewDialog) SetContent(title, body string) {
	p.loading = false
	p.failed = false
	p.title = title
	p.viewport.SetContent(body)
	p.viewport.GotoTop()
}

// SetError shows the failure text in place of the page.
func (p *PreviewDialog) SetError(err error) {
	p.loading = false
	p.failed = true
	p.viewport.SetContent(err.Error())
	p.viewport.GotoTop()
}

// Update closes on Enter or Esc and scrolls the frame otherwise.
func (p *PreviewDialog) Update(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, p.keys.Close) || key.Matches(msg, p.keys.Cancel) {
		p.Close()
		return nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// HelpKeys lists the bindings shown in the status bar while the dialog is open.
func (p *PreviewDialog) HelpKeys() []key.Binding {
	return []key.Binding{p.keys.Close, p.keys.Cancel, p.keys.Scroll}
}

func (p *PreviewDialog) View() string {
	if !p.open {
		return ""
	}

	title := p.title
	if title == "" {
		title = truncateMiddle(p.url, p.width-2)
	}

	var body string
	switch {
	case p.loading:
		body = lipgloss.NewStyle().
			Width(p.viewport.Width).
			Height(p.viewport.Height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(MutedColor).
			Render(MsgLoadingPreview)
	case p.failed:
		body = lipgloss.NewStyle().
			Width(p.viewport.Width).
			Height(p.viewport.Height).
			Foreground(ErrorColor).
			Render(p.viewport.View())
	default:
		body = p.viewport.View()
	}

	closeButton := lipgloss.NewStyle().
		Width(p.width).
		Align(lipgloss.Right).
		Render(ButtonStyle.Render("Close"))

	return DialogStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		HeaderStyle.Render(truncateEnd(title, p.width)),
		renderMuted(truncateMiddle(p.url, p.width)),
		"",
		body,
		"",
		closeButton,
	))
}
