package config

import (
	"strings"
	"testing"
	"time"

	"github.com/yildizm/DocSum/internal/analysis"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.Service.Endpoint != "http://localhost:8000/analyze/" {
		t.Errorf("Expected default endpoint, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 120*time.Second {
		t.Errorf("Expected timeout 120s, got %v", cfg.Service.Timeout)
	}
	if cfg.Mode() != analysis.ModeBasic {
		t.Errorf("Expected basic mode, got %s", cfg.Mode())
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected output format text, got %s", cfg.Output.DefaultFormat)
	}
	if cfg.IsVerbose() {
		t.Error("Expected verbose to default to false")
	}
	if !cfg.EmojiEnabled() {
		t.Error("Expected emoji to default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "empty endpoint",
			mutate:  func(c *Config) { c.Service.Endpoint = "" },
			wantErr: true,
			errMsg:  "service endpoint is required",
		},
		{
			name:    "endpoint without scheme",
			mutate:  func(c *Config) { c.Service.Endpoint = "localhost:8000/analyze/" },
			wantErr: true,
			errMsg:  "scheme must be http or https",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Service.Timeout = 0 },
			wantErr: true,
			errMsg:  "service timeout must be positive",
		},
		{
			name:    "invalid mode",
			mutate:  func(c *Config) { c.Analysis.DefaultMode = "legal" },
			wantErr: true,
			errMsg:  "invalid analysis mode: legal",
		},
		{
			name:    "financial mode",
			mutate:  func(c *Config) { c.Analysis.DefaultMode = "Financial" },
			wantErr: false,
		},
		{
			name:    "invalid output format",
			mutate:  func(c *Config) { c.Output.DefaultFormat = "xml" },
			wantErr: true,
			errMsg:  "invalid output format: xml (must be one of: text, json, markdown, csv, table)",
		},
		{
			name:    "invalid color mode",
			mutate:  func(c *Config) { c.Output.ColorMode = "sometimes" },
			wantErr: true,
			errMsg:  "invalid color mode: sometimes (must be one of: auto, always, never)",
		},
		{
			name:    "invalid theme",
			mutate:  func(c *Config) { c.Output.Theme = "neon" },
			wantErr: true,
			errMsg:  "invalid theme: neon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestClientConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Service.Endpoint = "https://docs.example.com/analyze/"
	cfg.Service.Timeout = 5 * time.Second
	cfg.Service.UserAgent = "docsum-test"

	cc := cfg.ClientConfig()
	if cc.Endpoint != cfg.Service.Endpoint || cc.Timeout != 5*time.Second || cc.UserAgent != "docsum-test" {
		t.Errorf("ClientConfig() = %+v", cc)
	}
}

func TestSampleConfigsAreValid(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"full.yaml":    SampleConfig(),
		"minimal.yaml": MinimalSampleConfig(),
	} {
		path := writeFile(t, dir, name, content)
		if _, err := NewLoader().WithEnvFile("").LoadConfig(path); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
