package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// File represents the top-level YAML structure.
type File struct {
	Relay RelayConfig `yaml:"relay"`
	Match MatchConfig `yaml:"match"`
	Log   LogConfig   `yaml:"log"`
}

// RelayConfig locates the matchmaking relay.
type RelayConfig struct {
	Addr string `yaml:"addr"` // listen address for blade-relay
	URL  string `yaml:"url"`  // websocket URL clients dial
}

// MatchConfig tunes the match runner.
type MatchConfig struct {
	MaxTurns      int   `yaml:"max_turns"`
	MaxRejections int   `yaml:"max_rejections"`
	Seed          int64 `yaml:"seed"` // 0 seeds from the clock
}

// LogConfig controls the service logger and the optional event log file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

var ErrInvalid = errors.New("invalid config")

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Relay: RelayConfig{Addr: ":8080", URL: "ws://localhost:8080/ws"},
		Match: MatchConfig{MaxTurns: 200, MaxRejections: 3},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (File, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return File{}, fmt.Errorf("parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

// Validate rejects values the runner or relay cannot use.
func (f File) Validate() error {
	if f.Match.MaxTurns < 0 {
		return fmt.Errorf("%w: match.max_turns %d", ErrInvalid, f.Match.MaxTurns)
	}
	if f.Match.MaxRejections < 0 {
		return fmt.Errorf("%w: match.max_rejections %d", ErrInvalid, f.Match.MaxRejections)
	}
	if _, err := zapcore.ParseLevel(f.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, f.Log.Level)
	}
	return nil
}

// NewLogger builds the service logger. Debug level gets the development
// encoder.
func (l LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
	}
	zc := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
