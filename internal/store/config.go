package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config is the optional user config at ~/.cae/config.json.
// Comments and trailing commas are accepted.
type Config struct {
	// ExportDir is where ticket files and the pending snapshot are written.
	ExportDir string `json:"exportDir,omitempty" yaml:"exportDir,omitempty"`
	// ArchivePath enables the sqlite ticket archive when set.
	ArchivePath string `json:"archivePath,omitempty" yaml:"archivePath,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	LogLevel    string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	LogFile     string `json:"logFile,omitempty" yaml:"logFile,omitempty"`

	TUI *TUIConfig `json:"tui,omitempty" yaml:"tui,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty" yaml:"glyphs,omitempty"`
	// Theme forces "light" or "dark"; empty follows the terminal.
	Theme string `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// ConfigKeys lists the keys accepted by Config.Set.
var ConfigKeys = []string{"exportDir", "archivePath", "format", "logLevel", "logFile", "tui.glyphs", "tui.theme"}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.cae).
	if v := strings.TrimSpace(os.Getenv("CAE_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cae"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig returns an empty config when the file does not exist.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(b), &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// Set assigns a config value by key. An empty value clears it.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "exportDir":
		c.ExportDir = value
	case "archivePath":
		c.ArchivePath = value
	case "format":
		c.Format = value
	case "logLevel":
		c.LogLevel = value
	case "logFile":
		c.LogFile = value
	case "tui.glyphs", "tui.theme":
		if c.TUI == nil {
			c.TUI = &TUIConfig{}
		}
		if key == "tui.glyphs" {
			c.TUI.Glyphs = value
		} else {
			c.TUI.Theme = value
		}
		if *c.TUI == (TUIConfig{}) {
			c.TUI = nil
		}
	default:
		return fmt.Errorf("unknown config key: %s (known: %s)", key, strings.Join(ConfigKeys, ", "))
	}
	return nil
}
