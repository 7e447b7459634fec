package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const AppName = "newsview"

const Tagline = "News and Views"

// LogoLines is the block-letter wordmark shown by ShowBanner.
var LogoLines = []string{
	"█▄ █ █▀▀ █   █ █▀▀ █ █ █ █▀▀ █   █",
	"█ ▀█ █▀▀ █ █ █ ▀▀█ ▀▄▀ █ █▀▀ █ █ █",
	"▀  ▀ ▀▀▀  ▀ ▀  ▀▀▀  ▀  ▀ ▀▀▀  ▀ ▀ ",
}

const CompactLogo = `newsview ›`

// Banner gradient colors
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FFE500"),
	lipgloss.Color("#FFBB50"),
	lipgloss.Color("#90DCFF"),
}

// Newsprint palette: masthead yellow on a deep navy night
var (
	PrimaryColor   = lipgloss.Color("#FFE500")
	SecondaryColor = lipgloss.Color("#90DCFF")
	AccentColor    = lipgloss.Color("#FFBB50")

	BackgroundColor = lipgloss.Color("#052962")
	SurfaceColor    = lipgloss.Color("#0B1A3A")
	TextColor       = lipgloss.Color("#EAEAEA")
	MutedColor      = lipgloss.Color("#94A3B8")
	PlaceholderTone = lipgloss.Color("#3B4A66")

	WarnColor    = lipgloss.Color("#FFBB50")
	ErrorColor   = lipgloss.Color("#EF4444")
	SuccessColor = lipgloss.Color("#10B981")
)

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor).
			Bold(true).
			Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(BackgroundColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 2)

	// Status styles by severity
	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(SuccessColor)

	StatusWarnStyle = lipgloss.NewStyle().
			Foreground(WarnColor)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)
)

// ShowBanner writes the boxed wordmark and version to w.
func ShowBanner(w io.Writer, version string) {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("%s %s", Tagline, versionTag))
	} else {
		lines = append(lines, Tagline)
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(i < len(LogoLines))
		coloredLines = append(coloredLines, style.Render(line))
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(SecondaryColor).
		Padding(1, 3).
		MarginTop(1)

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)
	fmt.Fprintln(w, lipgloss.NewStyle().
		Width(60).
		Align(lipgloss.Center).
		Render(borderStyle.Render(banner)))
}
