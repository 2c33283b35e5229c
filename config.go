package draftex

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ebisse/draftex/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// Config holds all configuration for the editor core and its surfaces.
type Config struct {
	Editor    EditorConfig    `yaml:"editor"`
	Page      PageConfig      `yaml:"page"`
	Server    ServerConfig    `yaml:"server"`
	Assistant AssistantConfig `yaml:"assistant"`
}

// EditorConfig tunes the edit pipeline.
type EditorConfig struct {
	DebounceMS int    `yaml:"debounceMs"` // debounce window, 0 = default (600)
	Template   string `yaml:"template"`   // initial scaffold name (empty = article)
}

// PageConfig defines the fixed-page layout of the PDF artifact.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "a4", "letter"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// ServerConfig defines the HTTP surface.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AssistantConfig points at the assistant collaborator.
type AssistantConfig struct {
	URL       string `yaml:"url"`       // empty = assistant disabled
	TimeoutMS int    `yaml:"timeoutMs"` // request timeout, 0 = default (30s)
}

// DefaultConfig returns a workable local configuration.
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{DebounceMS: 600, Template: "article"},
		Page:   PageConfig{Size: PageSizeA4, Orientation: OrientationPortrait, Margin: DefaultMargin},
		Server: ServerConfig{Host: "127.0.0.1", Port: 8787},
	}
}

// LoadConfig reads configuration from a YAML file, applying defaults for
// absent fields. Returns ErrConfigNotFound when the file does not exist
// (no silent fallback).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Editor.DebounceMS < 0 {
		return fmt.Errorf("editor.debounceMs must not be negative: %d", c.Editor.DebounceMS)
	}
	page := c.PageSettings()
	if err := page.Validate(); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// Debounce returns the configured debounce window.
func (c *Config) Debounce() time.Duration {
	if c.Editor.DebounceMS <= 0 {
		return defaultDebounce
	}
	return time.Duration(c.Editor.DebounceMS) * time.Millisecond
}

// AssistantTimeout returns the configured assistant request timeout.
func (c *Config) AssistantTimeout() time.Duration {
	if c.Assistant.TimeoutMS <= 0 {
		return defaultTimeout
	}
	return time.Duration(c.Assistant.TimeoutMS) * time.Millisecond
}

// PageSettings converts the page section into renderer settings.
func (c *Config) PageSettings() *PageSettings {
	p := &PageSettings{
		Size:        c.Page.Size,
		Orientation: c.Page.Orientation,
		Margin:      c.Page.Margin,
	}
	if p.Size == "" {
		p.Size = PageSizeA4
	}
	if p.Orientation == "" {
		p.Orientation = OrientationPortrait
	}
	if p.Margin == 0 {
		p.Margin = DefaultMargin
	}
	return p
}
