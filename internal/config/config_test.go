package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
relay:
  url: ws://example.test:9000/ws
match:
  seed: 42
  max_turns: 50
log:
  level: debug
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Relay.URL != "ws://example.test:9000/ws" || cfg.Relay.Addr != ":8080" {
		t.Errorf("Unexpected relay config %+v", cfg.Relay)
	}
	if cfg.Match.Seed != 42 || cfg.Match.MaxTurns != 50 || cfg.Match.MaxRejections != 3 {
		t.Errorf("Unexpected match config %+v", cfg.Match)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected debug level, got %q", cfg.Log.Level)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	for _, doc := range []string{
		"match: {max_turns: -1}",
		"match: {max_rejections: -2}",
		"log: {level: loud}",
	} {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", doc, err)
		}
	}
	if _, err := Parse([]byte("match: [")); err == nil {
		t.Error("Expected a YAML error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blade.yaml")
	if err := os.WriteFile(path, []byte("relay: {addr: \":9999\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Relay.Addr != ":9999" {
		t.Errorf("Expected :9999, got %q", cfg.Relay.Addr)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn"} {
		logger, err := LogConfig{Level: level}.NewLogger()
		if err != nil {
			t.Fatalf("%s: %v", level, err)
		}
		_ = logger.Sync()
	}
	if _, err := (LogConfig{Level: "nope"}).NewLogger(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}
