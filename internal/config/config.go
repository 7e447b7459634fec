package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Presentation modes for opening an article.
const (
	OpenModePopup   = "popup"
	OpenModePreview = "preview"
)

// Source kinds.
const (
	SourceGuardian = "guardian"
	SourceRSS      = "rss"
)

type Config struct {
	Guardian GuardianConfig `mapstructure:"guardian"`
	Source   SourceConfig   `mapstructure:"source"`
	Search   SearchConfig   `mapstructure:"search"`
	UI       UIConfig       `mapstructure:"ui"`
	Popup    PopupConfig    `mapstructure:"popup"`
	Keys     KeyConfig      `mapstructure:"keys"`
	Log      LogConfig      `mapstructure:"log"`
}

type GuardianConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Endpoint    string        `mapstructure:"endpoint"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type SourceConfig struct {
	Kind   string `mapstructure:"kind"`
	RSSURL string `mapstructure:"rss_url"`
}

type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

type UIConfig struct {
	OpenMode      string `mapstructure:"open_mode"`
	Timezone      string `mapstructure:"timezone"`
	PreviewHeight int    `mapstructure:"preview_height"`
}

type PopupConfig struct {
	ScreenWidth   int      `mapstructure:"screen_width"`
	ScreenHeight  int      `mapstructure:"screen_height"`
	Darwin        []string `mapstructure:"darwin"`
	Linux         []string `mapstructure:"linux"`
	Windows       []string `mapstructure:"windows"`
	DefaultOpener string   `mapstructure:"default_opener"`
}

type KeyConfig struct {
	Modifier string `mapstructure:"modifier"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	logPath := filepath.Join(homeDir, ".newsview", "newsview.log")

	return &Config{
		Guardian: GuardianConfig{
			Endpoint:    "https://content.guardianapis.com/search",
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "newsview/1.0 (https://github.com/pders01/newsview)",
		},
		Source: SourceConfig{
			Kind:   SourceGuardian,
			RSSURL: "https://www.theguardian.com/international/rss",
		},
		Search: SearchConfig{
			Debounce: 300 * time.Millisecond,
		},
		UI: UIConfig{
			OpenMode:      OpenModePopup,
			Timezone:      "Local",
			PreviewHeight: 15,
		},
		Popup: PopupConfig{
			ScreenWidth:   1920,
			ScreenHeight:  1080,
			Darwin:        []string{"chromium", "google-chrome", "brave-browser"},
			Linux:         []string{"chromium", "chromium-browser", "google-chrome", "brave-browser", "microsoft-edge", "firefox"},
			Windows:       []string{"chrome", "msedge", "firefox"},
			DefaultOpener: getDefaultOpener(),
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
		},
		Log: LogConfig{
			Level: "error",
			Path:  logPath,
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "rundll32"
	default:
		return "xdg-open"
	}
}

// setDefaults registers every leaf key so that partial config files and
// environment variables merge with the defaults instead of replacing a section.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("guardian.api_key", cfg.Guardian.APIKey)
	v.SetDefault("guardian.endpoint", cfg.Guardian.Endpoint)
	v.SetDefault("guardian.http_timeout", cfg.Guardian.HTTPTimeout)
	v.SetDefault("guardian.user_agent", cfg.Guardian.UserAgent)
	v.SetDefault("source.kind", cfg.Source.Kind)
	v.SetDefault("source.rss_url", cfg.Source.RSSURL)
	v.SetDefault("search.debounce", cfg.Search.Debounce)
	v.SetDefault("ui.open_mode", cfg.UI.OpenMode)
	v.SetDefault("ui.timezone", cfg.UI.Timezone)
	v.SetDefault("ui.preview_height", cfg.UI.PreviewHeight)
	v.SetDefault("popup.screen_width", cfg.Popup.ScreenWidth)
	v.SetDefault("popup.screen_height", cfg.Popup.ScreenHeight)
	v.SetDefault("popup.darwin", cfg.Popup.Darwin)
	v.SetDefault("popup.linux", cfg.Popup.Linux)
	v.SetDefault("popup.windows", cfg.Popup.Windows)
	v.SetDefault("popup.default_opener", cfg.Popup.DefaultOpener)
	v.SetDefault("keys.modifier", cfg.Keys.Modifier)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.path", cfg.Log.Path)
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "newsview")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NEWSVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The bare variable name is what the Guardian docs and most shells use.
	if err := v.BindEnv("guardian.api_key", "NEWSVIEW_GUARDIAN_API_KEY", "GUARDIAN_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.UI.OpenMode {
	case OpenModePopup, OpenModePreview:
	default:
		return fmt.Errorf("invalid ui.open_mode %q (want %q or %q)", c.UI.OpenMode, OpenModePopup, OpenModePreview)
	}
	switch c.Source.Kind {
	case SourceGuardian, SourceRSS:
	default:
		return fmt.Errorf("invalid source.kind %q (want %q or %q)", c.Source.Kind, SourceGuardian, SourceRSS)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative")
	}
	if c.UI.PreviewHeight <= 0 {
		return fmt.Errorf("ui.preview_height must be positive, got %d", c.UI.PreviewHeight)
	}
	if strings.TrimSpace(c.Keys.Modifier) == "" {
		return fmt.Errorf("keys.modifier must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid ui.timezone: %w", err)
	}
	return nil
}

// Location resolves the display time zone for publication dates.
func (c *Config) Location() (*time.Location, error) {
	switch c.UI.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.UI.Timezone)
	}
}

// Browsers returns the popup browser candidates for the running platform.
func (p PopupConfig) Browsers() []string {
	switch runtime.GOOS {
	case "darwin":
		return p.Darwin
	case "windows":
		return p.Windows
	default:
		return p.Linux
	}
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Log.Path = expandPath(cfg.Log.Path)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Plain maps keep the snake_case keys and render durations as strings
	v.Set("guardian", map[string]interface{}{
		"api_key":      config.Guardian.APIKey,
		"endpoint":     config.Guardian.Endpoint,
		"http_timeout": config.Guardian.HTTPTimeout.String(),
		"user_agent":   config.Guardian.UserAgent,
	})
	v.Set("source", map[string]interface{}{
		"kind":    config.Source.Kind,
		"rss_url": config.Source.RSSURL,
	})
	v.Set("search", map[string]interface{}{
		"debounce": config.Search.Debounce.String(),
	})
	v.Set("ui", map[string]interface{}{
		"open_mode":      config.UI.OpenMode,
		"timezone":       config.UI.Timezone,
		"preview_height": config.UI.PreviewHeight,
	})
	v.Set("popup", map[string]interface{}{
		"screen_width":   config.Popup.ScreenWidth,
		"screen_height":  config.Popup.ScreenHeight,
		"darwin":         config.Popup.Darwin,
		"linux":          config.Popup.Linux,
		"windows":        config.Popup.Windows,
		"default_opener": config.Popup.DefaultOpener,
	})
	v.Set("keys", map[string]interface{}{
		"modifier": config.Keys.Modifier,
	})
	v.Set("log", map[string]interface{}{
		"level": config.Log.Level,
		"path":  config.Log.Path,
	})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
