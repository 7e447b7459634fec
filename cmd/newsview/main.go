package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pders01/newsview/internal/config"
	"github.com/pders01/newsview/internal/debuglog"
	"github.com/pders01/newsview/internal/launcher"
	"github.com/pders01/newsview/internal/news"
	"github.com/pders01/newsview/internal/reader"
	"github.com/pders01/newsview/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	openMode   string
	sourceKind string
	logLevel   string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:          "newsview",
	Short:        "Search Guardian news from the terminal",
	SilenceUsage: true,
	RunE:         runTUI,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Print one page of results and exit",
	RunE:  runSearch,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		tui.ShowBanner(cmd.OutOrStdout(), Version)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tui.AppName, Version)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			home, _ := os.UserHomeDir()
			path = filepath.Join(home, ".config", tui.AppName, "config.toml")
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			return fmt.Errorf("generating config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated default configuration at: %s\n", path)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to configuration file")
	flags.StringVar(&openMode, "open-mode", "", "how enter opens an article (popup or preview)")
	flags.StringVar(&sourceKind, "source", "", "news source (guardian or rss)")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, off)")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "skip startup banner")

	configCmd.AddCommand(configGenCmd)
	rootCmd.AddCommand(searchCmd, versionCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if openMode != "" {
		cfg.UI.OpenMode = openMode
	}
	if sourceKind != "" {
		cfg.Source.Kind = sourceKind
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.Path); err != nil {
		return nil, fmt.Errorf("setting up log: %w", err)
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer debuglog.Close()

	src, err := news.NewSource(cfg)
	if err != nil {
		return err
	}

	if !quiet {
		tui.ShowBanner(cmd.OutOrStdout(), Version)
	}

	app := tui.NewApp(cfg, src, launcher.New(cfg), reader.New(cfg, nil))
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err = p.Run()
	app.Shutdown()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer debuglog.Close()

	src, err := news.NewSource(cfg)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	articles, err := src.Search(ctx, strings.Join(args, " "))
	if err != nil {
		debuglog.Errorf("search failed: %v", err)
		return err
	}

	printArticles(cmd.OutOrStdout(), articles, loc)
	return nil
}

func printArticles(w io.Writer, articles []news.Article, loc *time.Location) {
	if len(articles) == 0 {
		fmt.Fprintln(w, tui.MsgNoRecords)
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tui.SeparatorStyle).
		Headers("TITLE", "SECTION", "PILLAR", "TYPE", "PUBLISHED")
	for _, a := range articles {
		t.Row(a.WebTitle, a.SectionName, a.PillarName, a.Type, a.FormatDate(loc))
	}
	fmt.Fprintln(w, t.Render())
}
