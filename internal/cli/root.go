package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/yildizm/DocSum/internal/config"
	"github.com/yildizm/DocSum/internal/emoji"
	"github.com/yildizm/DocSum/internal/formatter"
	"github.com/yildizm/DocSum/internal/logger"
	"github.com/yildizm/DocSum/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	themeName string
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docsum",
		Short: "Document analysis from the terminal",
		Long: `DocSum uploads a document (PDF, Word or plain text) to an analysis
service and shows the summary, people, sentiment and contact details it
finds. In financial mode it also shows statistical insights, organizations
and the overall financial status.

Run without --no-tui on a terminal for an interactive session where the
mode can be switched and the file resubmitted.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", formatter.FormatText, "output format (text, json, markdown, csv, table)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "TUI theme (default, high-contrast, minimal)")

	// Add subcommands
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "DocSum %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// appContext is what a command needs after configuration is resolved
type appContext struct {
	cfg *config.Config
	log *logger.Logger
}

// loadApp loads configuration and applies global flags on top of it. Flags
// only win when set explicitly.
func loadApp(cmd *cobra.Command) (*appContext, error) {
	log := logger.New("cli", isVerbose)
	log.SetOutput(cmd.ErrOrStderr())

	cfg, err := config.NewLoader().WithLogger(log).LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Output.Verbose = &verbose
	} else {
		verbose = cfg.IsVerbose()
	}
	if !flags.Changed("output") && cfg.Output.DefaultFormat != "" {
		outputFmt = cfg.Output.DefaultFormat
	}
	if !flags.Changed("theme") && themeName == "" {
		themeName = cfg.Output.Theme
	}
	if !flags.Changed("no-emoji") && !cfg.EmojiEnabled() {
		noEmoji = true
	}

	return &appContext{cfg: cfg, log: log}, nil
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	return outputFmt
}

func emojiSet() emoji.Set {
	return emoji.New(!noEmoji)
}

// selectedTheme resolves --theme, falling back to the default theme
func selectedTheme() (ui.Theme, error) {
	theme, ok := ui.ThemeByName(themeName)
	if !ok {
		return ui.Theme{}, fmt.Errorf("unknown theme: %s (available: %v)", themeName, ui.AvailableThemes())
	}
	return theme, nil
}

// colorEnabled decides whether out gets ANSI colors
func colorEnabled(cfg *config.Config, out io.Writer) bool {
	if noColor || ui.ColorDisabledByEnv() {
		return false
	}
	switch cfg.Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(out)
	}
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
