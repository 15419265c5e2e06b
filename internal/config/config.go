package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/petems/click-tray/internal/inject"
)

const appName = "click-tray"

// Interval limits accepted from users.
const (
	MinDurationMS = 10
	MaxDurationMS = 60 * 60 * 1000
)

type Config struct {
	LogLevel      string           `json:"log_level"`
	Hotkey        string           `json:"hotkey"`    // e.g. "F6" or "ctrl+shift+c"
	HotkeyID      int              `json:"hotkey_id"` // id the start/stop hotkey is registered under
	ClickType     inject.ClickType `json:"click_type"`
	Click         ClickConfig      `json:"click"`
	Notifications bool             `json:"notifications"`

	path string
}

type ClickConfig struct {
	Times      int `json:"times"` // 0 clicks until stopped
	DurationMS int `json:"duration_ms"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		Hotkey:    "F6",
		HotkeyID:  1,
		ClickType: inject.Left,
		Click: ClickConfig{
			Times:      0,
			DurationMS: 50,
		},
		Notifications: true,
	}
}

// Load reads the config from the platform config dir or returns defaults
func Load() (*Config, error) {
	return LoadFile(configPath())
}

// LoadFile reads the config at path over the defaults. A missing file is not
// an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.Validate()
	return cfg, nil
}

// Validate clamps values into their accepted ranges.
func (c *Config) Validate() {
	if c.Click.Times < 0 {
		c.Click.Times = 0
	}
	c.Click.DurationMS = ClampDuration(c.Click.DurationMS)
	if c.HotkeyID <= 0 {
		c.HotkeyID = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// ClampDuration keeps an interval between MinDurationMS and MaxDurationMS.
func ClampDuration(ms int) int {
	if ms < MinDurationMS {
		return MinDurationMS
	}
	if ms > MaxDurationMS {
		return MaxDurationMS
	}
	return ms
}

// Save writes the config back to where it was loaded from
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = configPath()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Path returns the file this config is read from and saved to.
func (c *Config) Path() string {
	if c.path == "" {
		return configPath()
	}
	return c.path
}

// configPath returns the platform-specific config file path
func configPath() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("APPDATA")
	default: // linux
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, appName, "config.json")
}
