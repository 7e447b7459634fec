package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/newsview/internal/config"
	"github.com/pders01/newsview/internal/launcher"
	"github.com/pders01/newsview/internal/news"
	"github.com/pders01/newsview/internal/reader"
)

// PageReader loads an article page for the preview dialog.
type PageReader interface {
	Fetch(ctx context.Context, link string) (*reader.Page, error)
}

// Rows taken by everything but the table: header, input frame, separator
// and status bar.
const chromeHeight = 9

type App struct {
	config     *config.Config
	source     news.Source
	opener     launcher.Opener
	reader     PageReader
	keyHandler *KeyHandler
	loc        *time.Location

	searchInput textinput.Model
	table       table.Model
	spinner     spinner.Model
	help        help.Model
	focus       Focus

	// query is the text of the latest issued fetch; pendingQuery is the
	// latest scheduled one, which may still be waiting on the debounce timer.
	query        string
	pendingQuery string
	loading      bool
	articles     []news.Article
	fetchSeq     uint64
	searchSeq    int
	spinning     bool

	ctx      context.Context
	cancel   context.CancelFunc
	inflight context.CancelFunc
	closed   bool

	previewURL string
	preview    *PreviewDialog

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int

	width      int
	height     int
	status     string
	statusKind StatusKind
	err        error
}

func NewApp(cfg *config.Config, src news.Source, opener launcher.Opener, rdr PageReader) *App {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}

	ti := textinput.New()
	ti.Placeholder = "Search the news…"
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		config:      cfg,
		source:      src,
		opener:      opener,
		reader:      rdr,
		loc:         loc,
		searchInput: ti,
		table:       newResultsTable(100, skeletonRows),
		spinner:     sp,
		help:        help.New(),
		focus:       FocusSearch,
		articles:    []news.Article{},
		ctx:         ctx,
		cancel:      cancel,
		width:       100,
		height:      skeletonRows + chromeHeight,
	}

	app.keyHandler = NewKeyHandler(app, cfg)
	app.refreshTable()

	return app
}

// Init issues the mount fetch for the empty query without debouncing.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.startFetch(""),
		textinput.Blink,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		a.err = nil
		return a.keyHandler.HandleKey(msg)

	case searchDebounceFireMsg:
		if msg.seq == a.searchSeq {
			return a, a.startFetch(a.pendingQuery)
		}

	case articlesFetchedMsg:
		a.applyFetch(msg)

	case previewLoadedMsg:
		a.applyPreview(msg)

	case popupOpenedMsg:
		a.setStatus(MsgOpened(msg.url), StatusSuccess)

	case spinner.TickMsg:
		if !a.loading || a.closed {
			a.spinning = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case errorMsg:
		a.err = msg.err

	default:
		// Cursor blink and other textinput bookkeeping
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	a.searchInput.Width = max(10, width-8)
	a.table.SetColumns(resultColumns(width))
	a.table.SetWidth(width)
	a.table.SetHeight(max(skeletonRows, height-chromeHeight))
	a.help.Width = width
}

// refreshTable rebuilds the rows from the current loading flag and list.
func (a *App) refreshTable() {
	a.table.SetRows(tableRows(a.loading, a.articles, a.loc))
}

func (a *App) setFocus(f Focus) {
	a.focus = f
	if f == FocusTable {
		a.searchInput.Blur()
		a.table.Focus()
		return
	}
	a.table.Blur()
	a.searchInput.Focus()
}

func (a *App) hasArticles() bool {
	return !a.loading && len(a.articles) > 0
}

func (a *App) selectedArticle() (news.Article, bool) {
	if !a.hasArticles() {
		return news.Article{}, false
	}
	i := a.table.Cursor()
	if i < 0 || i >= len(a.articles) {
		return news.Article{}, false
	}
	return a.articles[i], true
}

func (a *App) previewOpen() bool {
	return a.previewURL != "" && a.preview != nil && a.preview.Open()
}

func (a *App) previewWidth() int {
	return max(40, min(a.width-6, 110))
}

// Shutdown marks the view closed and cancels every outstanding request.
// Results arriving afterwards are ignored.
func (a *App) Shutdown() {
	if a.closed {
		return
	}
	a.closed = true
	a.cancel()
	a.inflight = nil
}

// Loading reports whether the latest issued fetch is still outstanding.
func (a *App) Loading() bool { return a.loading }

// Articles returns the list currently shown.
func (a *App) Articles() []news.Article { return a.articles }

func (a *App) View() string {
	subtitle := renderMuted(a.source.Name())
	if a.loading {
		subtitle = a.spinner.View() + " " + renderMuted(MsgLoading)
	} else if a.query != "" {
		subtitle = renderMuted(a.source.Name() + " • “" + truncateEnd(a.query, 40) + "”")
	}
	header := renderHeader(CompactLogo+" "+Tagline, subtitle, a.width)

	var body string
	if a.previewOpen() {
		body = renderCentered(a.width, a.height-chromeHeight+4, a.preview.View())
	} else {
		input := renderInputFrame(a.searchInput.View(), a.focus == FocusSearch, a.searchInput.Width)
		body = lipgloss.JoinVertical(lipgloss.Left, input, a.table.View())
	}

	separator := SeparatorStyle.Render(strings.Repeat("─", max(0, a.width)))

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, separator, a.statusBar())
}

func (a *App) statusBar() string {
	helpLine := a.help.ShortHelpView(a.keyHandler.GetHelpForCurrentView())

	left := a.renderStatus()
	if a.err != nil {
		left = StatusErrorStyle.Render("✗ " + a.err.Error())
	}
	if left == "" {
		return lipgloss.NewStyle().Padding(0, 1).Render(helpLine)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(left + renderMuted(" • ") + helpLine)
}
