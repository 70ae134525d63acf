package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("CAE_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ExportDir != "" || cfg.TUI != nil {
		t.Fatalf("expected empty config; got %+v", cfg)
	}
}

func TestLoadConfig_AcceptsComments(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CAE_CONFIG_DIR", dir)

	body := `{
  // where tickets go
  "exportDir": "/tmp/tickets",
  "archivePath": "/tmp/archive.sqlite", /* optional */
  "tui": {"glyphs": "ascii",},
}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ExportDir != "/tmp/tickets" || cfg.ArchivePath != "/tmp/archive.sqlite" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.TUI == nil || cfg.TUI.Glyphs != "ascii" {
		t.Fatalf("expected tui.glyphs=ascii; got %+v", cfg.TUI)
	}
}

func TestSaveConfig_RoundTripsThroughSet(t *testing.T) {
	t.Setenv("CAE_CONFIG_DIR", filepath.Join(t.TempDir(), "nested"))

	cfg := &Config{}
	for k, v := range map[string]string{
		"exportDir": "out",
		"format":    "edn",
		"tui.theme": "light",
	} {
		if err := cfg.Set(k, v); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if err := cfg.Set("nope", "x"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.ExportDir != "out" || got.Format != "edn" || got.TUI == nil || got.TUI.Theme != "light" {
		t.Fatalf("unexpected round trip: %+v", got)
	}

	if err := got.Set("tui.theme", ""); err != nil {
		t.Fatalf("Set clear: %v", err)
	}
	if got.TUI != nil {
		t.Fatalf("expected empty tui section to be dropped; got %+v", got.TUI)
	}
}
