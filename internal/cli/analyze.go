package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/DocSum/internal/analysis"
	"github.com/yildizm/DocSum/internal/client"
	"github.com/yildizm/DocSum/internal/document"
	"github.com/yildizm/DocSum/internal/formatter"
	"github.com/yildizm/DocSum/internal/logger"
	"github.com/yildizm/DocSum/internal/session"
	"github.com/yildizm/DocSum/internal/ui"
)

var (
	analyzeMode       string
	analyzeEndpoint   string
	analyzeTimeout    time.Duration
	analyzeNoTUI      bool
	analyzeOutputFile string
)

// ErrAnalysisFailed is returned when the session ends in the failed phase
var ErrAnalysisFailed = errors.New("analysis failed")

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a document",
		Long: `Upload a document to the analysis service and show the result.

On a terminal with text output an interactive session opens: press enter
to analyze, m to switch between basic and financial mode, r to reload the
file and q to quit. With --no-tui, or any other output format, the file is
submitted once and the result printed.

Examples:
  docsum analyze report.pdf
  docsum analyze --mode financial --no-tui statement.docx
  docsum analyze -o json notes.txt > result.json`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	addServiceFlags(cmd)
	cmd.Flags().BoolVar(&analyzeNoTUI, "no-tui", false, "disable terminal UI, output to stdout")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

// addServiceFlags registers the flags shared by analyze and watch
func addServiceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&analyzeMode, "mode", "m", "", "analysis mode (basic, financial)")
	cmd.Flags().StringVar(&analyzeEndpoint, "endpoint", "", "analysis service URL")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "request timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}

	sess, file, err := newSession(cmd, app, args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var snap session.Snapshot
	if shouldUseTUIMode(isTerminal(cmd.OutOrStdout())) {
		theme, err := selectedTheme()
		if err != nil {
			return err
		}
		snap, err = ui.Run(ctx, sess, ui.Options{
			Path:       args[0],
			Theme:      theme,
			Color:      colorEnabled(app.cfg, cmd.OutOrStdout()),
			Emoji:      emojiSet(),
			AutoSubmit: true,
			Logger:     app.log,
		})
		if err != nil {
			return fmt.Errorf("interactive session failed: %w", err)
		}
		if analyzeOutputFile != "" {
			if err := writeReport(cmd, app, snap); err != nil {
				return err
			}
		}
	} else {
		start := time.Now()
		snap, err = sess.Submit(ctx)
		if err != nil {
			return err
		}
		app.log.Info("analysis finished",
			logger.F("file", file.Name),
			logger.F("phase", snap.Phase),
			logger.Duration(time.Since(start)))

		if err := writeReport(cmd, app, snap); err != nil {
			return err
		}
	}

	if snap.Phase == session.PhaseFailed {
		return fmt.Errorf("%w: %s", ErrAnalysisFailed, snap.Diagnostic())
	}
	return nil
}

// newSession loads the file, builds the client and returns a session with
// the file selected
func newSession(cmd *cobra.Command, app *appContext, path string) (*session.Session, *document.File, error) {
	mode, err := resolveMode(cmd, app)
	if err != nil {
		return nil, nil, err
	}

	clientCfg := app.cfg.ClientConfig()
	if cmd.Flags().Changed("endpoint") {
		clientCfg.Endpoint = analyzeEndpoint
	}
	if cmd.Flags().Changed("timeout") {
		clientCfg.Timeout = analyzeTimeout
	}

	c, err := client.New(clientCfg, app.log)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid service configuration: %w", err)
	}

	file, err := document.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if !document.Accepted(file) {
		app.log.Warn("file type is not PDF, Word or plain text; the service may reject it",
			logger.F("file", file.Name),
			logger.F("type", file.MediaType))
	}

	sess := session.New(c, session.WithLogger(app.log), session.WithMode(mode))
	sess.SelectFile(file)

	app.log.Debug("session ready",
		logger.F("endpoint", c.Endpoint()),
		logger.F("mode", mode),
		logger.F("file", file.Name))

	return sess, file, nil
}

// resolveMode prefers --mode over the configured default
func resolveMode(cmd *cobra.Command, app *appContext) (analysis.Mode, error) {
	if cmd.Flags().Changed("mode") {
		return analysis.ParseMode(analyzeMode)
	}
	return app.cfg.Mode(), nil
}

// shouldUseTUIMode reports whether analyze opens the interactive session
func shouldUseTUIMode(interactive bool) bool {
	return interactive && !analyzeNoTUI && getOutputFormat() == formatter.FormatText && !isVerbose()
}

// writeReport formats snap and writes it to --output-file or stdout
func writeReport(cmd *cobra.Command, app *appContext, snap session.Snapshot) error {
	out := cmd.OutOrStdout()
	color := analyzeOutputFile == "" && colorEnabled(app.cfg, out)

	f, err := formatter.New(getOutputFormat(), formatter.Options{Color: color, Emoji: emojiSet()})
	if err != nil {
		return err
	}

	output, err := f.Format(formatter.FromSnapshot(snap))
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return handleOutputDestination(out, app.log, output)
}

// handleOutputDestination writes output to file or w
func handleOutputDestination(w io.Writer, log *logger.Logger, output []byte) error {
	if analyzeOutputFile == "" {
		_, err := w.Write(output)
		return err
	}

	if err := writeOutputBytesToFile(output, analyzeOutputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	log.Info("output saved", logger.F("path", analyzeOutputFile))
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) (err error) {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
