package config

import (
	"fmt"
	"time"

	"github.com/yildizm/DocSum/internal/analysis"
	"github.com/yildizm/DocSum/internal/client"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Service  ServiceConfig  `yaml:"service" json:"service"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Output   OutputConfig   `yaml:"output" json:"output"`
}

// ServiceConfig configures the remote analysis service
type ServiceConfig struct {
	Endpoint  string        `yaml:"endpoint" json:"endpoint"`     // analysis URL
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`       // whole-request timeout
	UserAgent string        `yaml:"user_agent" json:"user_agent"` // sent with every request
}

// AnalysisConfig configures what is requested
type AnalysisConfig struct {
	DefaultMode string `yaml:"default_mode" json:"default_mode"` // basic|financial
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv|table
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Theme         string `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
	Emoji         *bool  `yaml:"emoji,omitempty" json:"emoji,omitempty"`
	Verbose       *bool  `yaml:"verbose,omitempty" json:"verbose,omitempty"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	svc := client.DefaultConfig()
	return &Config{
		Version: "1.0",
		Service: ServiceConfig{
			Endpoint:  svc.Endpoint,
			Timeout:   svc.Timeout,
			UserAgent: svc.UserAgent,
		},
		Analysis: AnalysisConfig{
			DefaultMode: string(analysis.DefaultMode),
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Theme:         "default",
			Emoji:         boolPtr(true),
			Verbose:       boolPtr(false),
		},
	}
}

// ClientConfig converts the service section into a transport configuration
func (c *Config) ClientConfig() *client.Config {
	return &client.Config{
		Endpoint:  c.Service.Endpoint,
		Timeout:   c.Service.Timeout,
		UserAgent: c.Service.UserAgent,
	}
}

// Mode returns the parsed default analysis mode
func (c *Config) Mode() analysis.Mode {
	mode, err := analysis.ParseMode(c.Analysis.DefaultMode)
	if err != nil {
		return analysis.DefaultMode
	}
	return mode
}

// IsVerbose reports the configured verbosity
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose != nil && *c.Output.Verbose
}

// EmojiEnabled reports whether emoji output is enabled
func (c *Config) EmojiEnabled() bool {
	return c.Output.Emoji == nil || *c.Output.Emoji
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServiceConfig(); err != nil {
		return err
	}
	if err := c.validateAnalysisConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateServiceConfig validates the service section
func (c *Config) validateServiceConfig() error {
	if err := c.ClientConfig().Validate(); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

// validateAnalysisConfig validates analysis-related configuration
func (c *Config) validateAnalysisConfig() error {
	if _, err := analysis.ParseMode(c.Analysis.DefaultMode); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
			"table":    true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown, csv, table)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Output.Theme)
		}
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
