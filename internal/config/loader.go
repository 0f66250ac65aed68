package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yildizm/DocSum/internal/logger"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "DOCSUM_"

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.docsum.yaml",               // Project-specific config (highest priority)
	"~/.config/docsum/config.yaml", // User config
	"/etc/docsum/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	envFile     string
	log         *logger.Logger
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		envFile:     ".env",
		log:         logger.Nop(),
	}
}

// WithLogger sets the logger used for non-fatal load warnings
func (l *Loader) WithLogger(log *logger.Logger) *Loader {
	if log != nil {
		l.log = log.WithComponent("config")
	}
	return l
}

// WithEnvFile sets the dotenv file read before environment overrides. An
// empty path disables dotenv loading.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables, including those from .env
// 3. ./.docsum.yaml
// 4. ~/.config/docsum/config.yaml
// 5. /etc/docsum/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files win.
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				l.log.Warn("skipping config file", logger.F("path", expandedPath), logger.Error(err))
			}
		}
	}

	if err := l.loadEnvFile(); err != nil {
		l.log.Warn("skipping env file", logger.F("path", l.envFile), logger.Error(err))
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	l.log.Debug("loaded config file", logger.F("path", path))
	return nil
}

// loadEnvFile exports variables from the dotenv file without overriding
// variables already set in the process environment
func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	err := godotenv.Load(l.envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Service Config
		EnvPrefix + "SERVICE_ENDPOINT":   func(v string) error { config.Service.Endpoint = v; return nil },
		EnvPrefix + "SERVICE_TIMEOUT":    func(v string) error { return parseDuration(v, &config.Service.Timeout) },
		EnvPrefix + "SERVICE_USER_AGENT": func(v string) error { config.Service.UserAgent = v; return nil },

		// Analysis Config
		EnvPrefix + "ANALYSIS_DEFAULT_MODE": func(v string) error { config.Analysis.DefaultMode = v; return nil },

		// Output Config
		EnvPrefix + "OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		EnvPrefix + "OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		EnvPrefix + "OUTPUT_THEME":          func(v string) error { config.Output.Theme = v; return nil },
		EnvPrefix + "OUTPUT_EMOJI":          func(v string) error { return parseBoolPtr(v, &config.Output.Emoji) },
		EnvPrefix + "OUTPUT_VERBOSE":        func(v string) error { return parseBoolPtr(v, &config.Output.Verbose) },
	}

	for envVar, setter := range envMappings {
		if value := strings.TrimSpace(os.Getenv(envVar)); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range GetConfigPaths() {
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// Save writes cfg as YAML to path, creating parent directories
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a regular file exists
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeServiceConfig(&dst.Service, &src.Service)
	if src.Analysis.DefaultMode != "" {
		dst.Analysis.DefaultMode = src.Analysis.DefaultMode
	}
	mergeOutputConfig(&dst.Output, &src.Output)
}

// mergeServiceConfig merges service configuration
func mergeServiceConfig(dst, src *ServiceConfig) {
	if src.Endpoint != "" {
		dst.Endpoint = src.Endpoint
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.UserAgent != "" {
		dst.UserAgent = src.UserAgent
	}
}

// mergeOutputConfig merges output configuration. Booleans are pointers so an
// omitted key leaves the lower-priority value alone.
func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	if src.Emoji != nil {
		dst.Emoji = boolPtr(*src.Emoji)
	}
	if src.Verbose != nil {
		dst.Verbose = boolPtr(*src.Verbose)
	}
}

// Type conversion helpers

func parseBoolPtr(s string, dst **bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = &val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
