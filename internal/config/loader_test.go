package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
	if loader.envFile != ".env" {
		t.Errorf("Expected .env env file, got %q", loader.envFile)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := writeFile(t, t.TempDir(), "test-config.yaml", `version: "1.0"
service:
  endpoint: "https://analyzer.internal/analyze/"
  timeout: 45s
analysis:
  default_mode: financial
output:
  default_format: "json"
  verbose: true
`)

	cfg, err := NewLoader().WithEnvFile("").LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Service.Endpoint != "https://analyzer.internal/analyze/" {
		t.Errorf("Expected endpoint from file, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 45*time.Second {
		t.Errorf("Expected timeout 45s, got %v", cfg.Service.Timeout)
	}
	if cfg.Service.UserAgent != "docsum" {
		t.Errorf("Expected default user agent to survive merge, got %s", cfg.Service.UserAgent)
	}
	if cfg.Analysis.DefaultMode != "financial" {
		t.Errorf("Expected financial mode, got %s", cfg.Analysis.DefaultMode)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.IsVerbose() {
		t.Error("Expected verbose to be true")
	}
	if !cfg.EmojiEnabled() {
		t.Error("Omitted emoji key should keep the default")
	}
}

func TestLoadConfigSearchPathPriority(t *testing.T) {
	dir := t.TempDir()
	low := writeFile(t, dir, "system.yaml", `service:
  endpoint: "http://system:8000/analyze/"
  user_agent: "system-agent"
`)
	high := writeFile(t, dir, "project.yaml", `service:
  endpoint: "http://project:8000/analyze/"
`)

	loader := NewLoader().WithEnvFile("")
	loader.configPaths = []string{high, filepath.Join(dir, "missing.yaml"), low}

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Service.Endpoint != "http://project:8000/analyze/" {
		t.Errorf("Expected project endpoint to win, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.UserAgent != "system-agent" {
		t.Errorf("Expected system user agent to be kept, got %s", cfg.Service.UserAgent)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := writeFile(t, t.TempDir(), "invalid-config.yaml", `service:
  endpoint: "http://localhost:8000
  timeout: 10s
`)

	if _, err := NewLoader().WithEnvFile("").LoadConfig(configPath); err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigRejectsBadPath(t *testing.T) {
	tests := []string{"config.json", "../outside.yaml"}
	for _, path := range tests {
		if _, err := NewLoader().WithEnvFile("").LoadConfig(path); err == nil {
			t.Errorf("Expected error for %s", path)
		}
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DOCSUM_SERVICE_ENDPOINT", "http://env:9000/analyze/")
	t.Setenv("DOCSUM_SERVICE_TIMEOUT", "15s")
	t.Setenv("DOCSUM_ANALYSIS_DEFAULT_MODE", "financial")
	t.Setenv("DOCSUM_OUTPUT_VERBOSE", "true")
	t.Setenv("DOCSUM_OUTPUT_EMOJI", "false")
	t.Setenv("DOCSUM_OUTPUT_THEME", "minimal")

	cfg := DefaultConfig()
	if err := NewLoader().applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.Service.Endpoint != "http://env:9000/analyze/" {
		t.Errorf("Expected env endpoint, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 15*time.Second {
		t.Errorf("Expected timeout 15s, got %v", cfg.Service.Timeout)
	}
	if cfg.Analysis.DefaultMode != "financial" {
		t.Errorf("Expected financial mode, got %s", cfg.Analysis.DefaultMode)
	}
	if !cfg.IsVerbose() {
		t.Error("Expected verbose to be true")
	}
	if cfg.EmojiEnabled() {
		t.Error("Expected emoji to be disabled")
	}
	if cfg.Output.Theme != "minimal" {
		t.Errorf("Expected minimal theme, got %s", cfg.Output.Theme)
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid bool", "DOCSUM_OUTPUT_VERBOSE", "not-a-bool"},
		{"invalid duration", "DOCSUM_SERVICE_TIMEOUT", "not-a-duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			if err := NewLoader().applyEnvOverrides(DefaultConfig()); err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "DOCSUM_SERVICE_USER_AGENT=dotenv-agent\n")
	configPath := writeFile(t, dir, "config.yaml", "version: \"1.0\"\n")

	// Registered first so t.Setenv restores the variable godotenv sets.
	t.Setenv("DOCSUM_SERVICE_USER_AGENT", "")
	if err := os.Unsetenv("DOCSUM_SERVICE_USER_AGENT"); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader().WithEnvFile(envFile).LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Service.UserAgent != "dotenv-agent" {
		t.Errorf("Expected user agent from .env, got %s", cfg.Service.UserAgent)
	}
}

func TestLoadConfigDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "DOCSUM_SERVICE_USER_AGENT=dotenv-agent\n")
	configPath := writeFile(t, dir, "config.yaml", "version: \"1.0\"\n")

	t.Setenv("DOCSUM_SERVICE_USER_AGENT", "shell-agent")

	cfg, err := NewLoader().WithEnvFile(envFile).LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Service.UserAgent != "shell-agent" {
		t.Errorf("Expected shell value to win, got %s", cfg.Service.UserAgent)
	}
}

func TestLoadConfigMissingDotEnvIsIgnored(t *testing.T) {
	configPath := writeFile(t, t.TempDir(), "config.yaml", "version: \"1.0\"\n")

	if _, err := NewLoader().WithEnvFile("/nonexistent/.env").LoadConfig(configPath); err != nil {
		t.Errorf("Missing .env should be ignored, got %v", err)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Output.Theme = "high-contrast"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := NewLoader().WithEnvFile("").LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Output.Theme != "high-contrast" {
		t.Errorf("Expected saved theme, got %s", loaded.Output.Theme)
	}
}

func TestParseDuration(t *testing.T) {
	var duration time.Duration

	if err := parseDuration("30s", &duration); err != nil {
		t.Errorf("Failed to parse duration: %v", err)
	}
	if duration != 30*time.Second {
		t.Errorf("Expected 30s, got %v", duration)
	}
	if err := parseDuration("invalid", &duration); err == nil {
		t.Error("Expected error for invalid duration, but got none")
	}
}
