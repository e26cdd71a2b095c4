// Package config loads run settings from a YAML file, the environment and
// command-line flags, in that order of increasing precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Failure policies for rows whose duplex cannot be built.
const (
	PolicyEmpty = "empty" // keep the row, leave the new column empty
	PolicyOmit  = "omit"  // drop the row from the output
)

// Config holds all settings for a run.
type Config struct {
	// Worker goroutines; 0 = all CPUs.
	Threads int `yaml:"threads"`

	// What to do with rows that fail to decode or align.
	FailurePolicy string `yaml:"failure_policy"`

	// Abort the run on the first alignment inconsistency.
	StrictAlignment bool `yaml:"strict_alignment"`

	// Bond glyph replacement for binding lookups.
	HighlightMarker string `yaml:"highlight_marker"`

	// First coordinate of a transcript (miRAW counts from 0).
	TranscriptStart int `yaml:"transcript_start"`

	// miRAW writes SiteEnd one past the window.
	SiteEndExclusive bool `yaml:"site_end_exclusive"`

	Log LoggingConfig `yaml:"log"`
}

// LoggingConfig configures the slog handlers.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional JSON log file
	Quiet bool   `yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Threads:          0,
		FailurePolicy:    PolicyEmpty,
		StrictAlignment:  false,
		HighlightMarker:  "{",
		TranscriptStart:  0,
		SiteEndExclusive: true,
		Log: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("MIRPAIR_THREADS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MIRPAIR_THREADS: %w", err)
		}
		c.Threads = n
	}
	if v := os.Getenv("MIRPAIR_FAILURE_POLICY"); v != "" {
		c.FailurePolicy = strings.ToLower(v)
	}
	if v := os.Getenv("MIRPAIR_STRICT_ALIGNMENT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MIRPAIR_STRICT_ALIGNMENT: %w", err)
		}
		c.StrictAlignment = b
	}
	if v := os.Getenv("MIRPAIR_TRANSCRIPT_START"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MIRPAIR_TRANSCRIPT_START: %w", err)
		}
		c.TranscriptStart = n
	}
	if v := os.Getenv("MIRPAIR_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MIRPAIR_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0, got %d", c.Threads)
	}
	switch c.FailurePolicy {
	case PolicyEmpty, PolicyOmit:
	default:
		return fmt.Errorf("unknown failure_policy %q (want %s or %s)", c.FailurePolicy, PolicyEmpty, PolicyOmit)
	}
	if len(c.HighlightMarker) != 1 {
		return fmt.Errorf("highlight_marker must be a single character, got %q", c.HighlightMarker)
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// Marker returns the highlight marker byte.
func (c *Config) Marker() byte {
	if c.HighlightMarker == "" {
		return '{'
	}
	return c.HighlightMarker[0]
}

// Level returns the configured slog level (info when unknown).
func (c *Config) Level() slog.Level {
	lvl, _ := parseLevel(c.Log.Level)
	return lvl
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO", "":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
