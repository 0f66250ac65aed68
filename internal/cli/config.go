package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yildizm/DocSum/internal/config"
	"gopkg.in/yaml.v3"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage DocSum configuration",
		Long: `Manage DocSum configuration files and settings.

The config command provides subcommands for initializing, viewing,
validating, and locating configuration files.`,
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new DocSum configuration file with default values.

By default, creates a full configuration file with all options and comments.
Use --minimal for a compact configuration with only essential settings.`,
		Example: `  # Create full config in current directory
  docsum config init

  # Create minimal config
  docsum config init --minimal

  # Create config at specific path
  docsum config init --path ~/.config/docsum/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = ".docsum.yaml"
			}

			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			content := config.SampleConfig()
			if minimal {
				content = config.MinimalSampleConfig()
			}

			if err := writeOutputBytesToFile([]byte(content), outputPath); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			set := emojiSet()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration file created at: %s\n", set.Get("success"), outputPath)
			return nil
		},
	}

	initCmd.Flags().StringVar(&outputPath, "path", "", "output path for config file (default: .docsum.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "create minimal configuration")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the effective configuration after loading from all sources.

Shows the merged configuration from defaults, config files, .env and
DOCSUM_ environment variable overrides.`,
		Example: `  # Show config in YAML format
  docsum config show

  # Show config in JSON format
  docsum config show --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			var data []byte
			switch format {
			case "json":
				data, err = json.MarshalIndent(cfg, "", "  ")
				data = append(data, '\n')
			case "yaml":
				data, err = yaml.Marshal(cfg)
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return showCmd
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate the DocSum configuration for syntax and semantic errors.

Checks YAML syntax, the service endpoint and timeout, the analysis mode and
the output settings.`,
		Example: `  # Validate current config
  docsum config validate

  # Validate specific config file
  docsum config validate --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			set := emojiSet()
			out := cmd.OutOrStdout()

			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				fmt.Fprintf(out, "%s Configuration validation failed:\n   %v\n", set.Get("error"), err)
				return err
			}

			fmt.Fprintf(out, "%s Configuration is valid\n", set.Get("success"))
			fmt.Fprintf(out, "%s Configuration summary:\n", set.Get("statistics"))
			fmt.Fprintf(out, "   Endpoint: %s\n", cfg.Service.Endpoint)
			fmt.Fprintf(out, "   Timeout: %s\n", cfg.Service.Timeout)
			fmt.Fprintf(out, "   Default mode: %s\n", cfg.Mode())
			fmt.Fprintf(out, "   Output format: %s\n", cfg.Output.DefaultFormat)

			return nil
		},
	}
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long: `Display the list of paths DocSum searches for configuration files.

Shows the search order and indicates which files exist.`,
		Run: func(cmd *cobra.Command, args []string) {
			set := emojiSet()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Configuration file search paths (in priority order):")
			fmt.Fprintln(out)

			priority := []string{"Highest", "Medium", "Lowest"}
			for i, path := range config.GetConfigPaths() {
				exists := " " + set.Get("error") + " (not found)"
				if fileExists(path) {
					exists = " " + set.Get("success") + " (exists)"
				}

				fmt.Fprintf(out, "  %d. %s%s\n", i+1, path, exists)
				if i < len(priority) {
					fmt.Fprintf(out, "     Priority: %s\n", priority[i])
				}
			}
			fmt.Fprintln(out)

			if currentConfig, found := config.FindConfigFile(); found {
				fmt.Fprintf(out, "Current config file: %s\n", currentConfig)
			} else {
				fmt.Fprintln(out, "No config file found, using defaults")
			}
			fmt.Fprintf(out, "Environment variables with the %s prefix (also read from .env) override file settings\n", config.EnvPrefix)
		},
	}
}

// fileExists reports whether filename exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
