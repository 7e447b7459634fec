package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		Guardian: GuardianConfig{
			APIKey:      "test-key",
			Endpoint:    "http://127.0.0.1:0/search", // replaced by httptest servers
			HTTPTimeout: 5 * time.Second,
			UserAgent:   "newsview-test/1.0",
		},
		Source: SourceConfig{
			Kind: SourceGuardian,
		},
		Search: SearchConfig{
			Debounce: 0, // fire immediately
		},
		UI: UIConfig{
			OpenMode:      OpenModePopup,
			Timezone:      "UTC",
			PreviewHeight: 10,
		},
		Popup: defaultConfig().Popup,
		Keys:  defaultConfig().Keys,
		Log: LogConfig{
			Level: "off",
		},
	}
}
