package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/newsview/internal/config"
)

type keyMap struct {
	Open        key.Binding
	OpenPopup   key.Binding
	OpenPreview key.Binding
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	FocusTable  key.Binding
	FocusSearch key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func newKeyMap(modifier string) keyMap {
	return keyMap{
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		OpenPopup:   key.NewBinding(key.WithKeys(modifier+"o"), key.WithHelp(modifier+"o", "popup")),
		OpenPreview: key.NewBinding(key.WithKeys(modifier+"p"), key.WithHelp(modifier+"p", "preview")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		FocusTable:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "results")),
		FocusSearch: key.NewBinding(key.WithKeys("tab", "shift+tab", "/", "esc"), key.WithHelp("/", "search")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

type KeyHandler struct {
	app         *App
	config      *config.Config
	modifierKey string
	keys        keyMap
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	modifierKey := cfg.Keys.Modifier + "+"
	return &KeyHandler{app: app, config: cfg, modifierKey: modifierKey, keys: newKeyMap(modifierKey)}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, kh.keys.ForceQuit) {
		return kh.quit()
	}

	// The dialog is modal while it is shown
	if kh.app.previewOpen() {
		cmd := kh.app.preview.Update(msg)
		if !kh.app.preview.Open() {
			kh.app.preview = nil
		}
		return kh.app, cmd
	}

	switch {
	case key.Matches(msg, kh.keys.OpenPopup):
		return kh.app, kh.activate(config.OpenModePopup)
	case key.Matches(msg, kh.keys.OpenPreview):
		return kh.app, kh.activate(config.OpenModePreview)
	}

	if kh.app.focus == FocusSearch {
		return kh.handleTextInputMode(msg)
	}
	return kh.handleTableMode(msg)
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		return kh.navigateBack()
	case key.Matches(msg, kh.keys.Open):
		return kh.app, kh.activate(kh.config.UI.OpenMode)
	case key.Matches(msg, kh.keys.FocusTable):
		if kh.app.hasArticles() {
			kh.app.setFocus(FocusTable)
		}
		return kh.app, nil
	default:
		return kh.delegateToTextInput(msg)
	}
}

// delegateToTextInput passes the key to the search box and schedules a search
// when the sanitized query changed.
func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	kh.app.searchInput, cmd = kh.app.searchInput.Update(msg)

	newVal := sanitizeSearchInput(kh.app.searchInput.Value())
	if newVal != kh.app.pendingQuery {
		return kh.app, tea.Batch(cmd, kh.app.scheduleSearch(newVal))
	}
	return kh.app, cmd
}

func (kh *KeyHandler) handleTableMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := &kh.app.table
	switch {
	case key.Matches(msg, kh.keys.Open):
		return kh.app, kh.activate(kh.config.UI.OpenMode)
	case key.Matches(msg, kh.keys.Quit):
		return kh.quit()
	case key.Matches(msg, kh.keys.FocusSearch):
		kh.app.setFocus(FocusSearch)
	case key.Matches(msg, kh.keys.Up):
		if t.Cursor() == 0 {
			kh.app.setFocus(FocusSearch)
			return kh.app, nil
		}
		t.MoveUp(1)
	case key.Matches(msg, kh.keys.Down):
		t.MoveDown(1)
	case key.Matches(msg, kh.keys.Top):
		t.GotoTop()
	case key.Matches(msg, kh.keys.Bottom):
		t.GotoBottom()
	case msg.String() == "pgup":
		t.MoveUp(t.Height())
	case msg.String() == "pgdown":
		t.MoveDown(t.Height())
	}
	return kh.app, nil
}

// activate opens the selected article with the given presentation mode.
// Placeholder and empty-state rows are not activatable.
func (kh *KeyHandler) activate(mode string) tea.Cmd {
	article, ok := kh.app.selectedArticle()
	if !ok || article.WebURL == "" {
		return nil
	}

	if mode == config.OpenModePreview {
		return kh.app.openPreview(article.WebURL)
	}
	return kh.app.openPopup(article.WebURL)
}

// navigateBack clears a non-empty search, or quits from an empty one.
func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	if kh.app.searchInput.Value() != "" {
		kh.app.searchInput.Reset()
		if kh.app.pendingQuery != "" {
			return kh.app, kh.app.scheduleSearch("")
		}
		return kh.app, nil
	}
	return kh.quit()
}

func (kh *KeyHandler) quit() (tea.Model, tea.Cmd) {
	kh.app.Shutdown()
	return kh.app, tea.Quit
}

// sanitizeSearchInput trims, collapses whitespace and limits query length.
// A whitespace-only query comes back empty.
func sanitizeSearchInput(input string) string {
	input = strings.Join(strings.Fields(input), " ")

	if r := []rune(input); len(r) > 256 {
		input = strings.TrimSpace(string(r[:256]))
	}
	return input
}

// GetHelpForCurrentView returns the bindings that apply to the focused widget.
func (kh *KeyHandler) GetHelpForCurrentView() []key.Binding {
	if kh.app.previewOpen() {
		return kh.app.preview.HelpKeys()
	}

	if kh.app.focus == FocusSearch {
		return []key.Binding{kh.keys.Open, kh.keys.OpenPopup, kh.keys.OpenPreview, kh.keys.FocusTable, kh.keys.ForceQuit}
	}
	return []key.Binding{kh.keys.Up, kh.keys.Down, kh.keys.Open, kh.keys.OpenPopup, kh.keys.OpenPreview, kh.keys.FocusSearch, kh.keys.Quit}
}
