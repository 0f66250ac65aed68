package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/DocSum/internal/analysis"
	"github.com/yildizm/DocSum/internal/document"
	"github.com/yildizm/DocSum/internal/formatter"
	"github.com/yildizm/DocSum/internal/logger"
	"github.com/yildizm/DocSum/internal/monitor"
	"github.com/yildizm/DocSum/internal/session"
	"golang.org/x/sync/errgroup"
)

// watchDebounce groups the bursts of events a single save produces
var watchDebounce = 250 * time.Millisecond

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-analyze a document whenever it changes",
		Long: `Analyze a document, then watch it and analyze it again after every save.

A save made while an analysis is still running supersedes it; the older
response is dropped. Press Ctrl+C to stop watching.

Examples:
  docsum watch draft.txt
  docsum watch --mode financial -o markdown q3-report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	addServiceFlags(cmd)

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	if err := validateWatchFilePath(filename); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	app, err := loadApp(cmd)
	if err != nil {
		return err
	}

	f, err := formatter.New(getOutputFormat(), formatter.Options{
		Color: colorEnabled(app.cfg, cmd.OutOrStdout()),
		Emoji: emojiSet(),
	})
	if err != nil {
		return err
	}

	sess, _, err := newSession(cmd, app, filename)
	if err != nil {
		return err
	}

	watcher, err := createWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher, app.log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.log.Info("watching file", logger.F("file", filename))

	w := &watchRun{
		session:   sess,
		formatter: f,
		out:       cmd.OutOrStdout(),
		log:       app.log,
		path:      filename,
		changes:   make(chan struct{}, 1),
		stats:     monitor.NewTracker(),
	}
	err = w.run(ctx, watcher)
	app.log.Info("watch stopped", logger.F("stats", w.stats.Stats().String()))
	return err
}

// watchRun couples a watcher with a session. Every settled response is
// printed; responses overtaken by a newer save are dropped by the session.
type watchRun struct {
	session   *session.Session
	formatter formatter.Formatter
	out       io.Writer
	log       *logger.Logger
	path      string
	stats     *monitor.Tracker

	changes chan struct{}

	mu     sync.Mutex // guards out and cancel
	cancel context.CancelFunc
}

func (w *watchRun) run(ctx context.Context, watcher *fsnotify.Watcher) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.forwardEvents(gctx, watcher)
	})

	g.Go(func() error {
		w.submit(gctx, g)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-w.changes:
			}

			select {
			case <-gctx.Done():
				return nil
			case <-time.After(watchDebounce):
			}
			drain(w.changes)

			file, err := document.Load(w.path)
			if err != nil {
				w.log.Warn("could not reload file", logger.Error(err))
				continue
			}
			w.session.SelectFile(file)
			w.submit(gctx, g)
		}
	})

	err := g.Wait()
	if ctx.Err() != nil {
		// Interrupted: a clean stop.
		return nil
	}
	return err
}

// forwardEvents turns write events on the watched file into change signals
func (w *watchRun) forwardEvents(ctx context.Context, watcher *fsnotify.Watcher) error {
	target := absPath(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if absPath(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.log.Debug("file changed", logger.F("op", event.Op.String()))
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error", logger.Error(err))
		}
	}
}

// submit starts a submission for the current selection, cancelling the one
// it supersedes
func (w *watchRun) submit(ctx context.Context, g *errgroup.Group) {
	ticket, ok, err := w.session.Begin()
	if err != nil || !ok {
		w.log.Debug("submit skipped", logger.Error(err))
		return
	}

	reqCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.cancel = cancel
	w.mu.Unlock()

	g.Go(func() error {
		defer cancel()
		start := time.Now()
		result, err := w.session.Run(reqCtx, ticket)
		return w.settle(ticket, result, err, time.Since(start))
	})
}

// settle applies one outcome and prints the state it produced. The printed
// report and the recorded outcome both come from the settled snapshot.
func (w *watchRun) settle(ticket session.Ticket, result *analysis.Result, err error, took time.Duration) error {
	snap, ok := w.session.SettleSnapshot(ticket, result, err)
	if !ok {
		w.stats.Record(monitor.OutcomeSuperseded, len(ticket.File.Content), took)
		w.log.Debug("superseded response dropped", logger.F("seq", ticket.Seq))
		return nil
	}

	outcome := monitor.OutcomeSucceeded
	if snap.Phase == session.PhaseFailed {
		outcome = monitor.OutcomeFailed
	}
	w.stats.Record(outcome, len(ticket.File.Content), took)
	return w.print(snap)
}

func (w *watchRun) print(snap session.Snapshot) error {
	output, err := w.formatter.Format(formatter.FromSnapshot(snap))
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	_, err = w.out.Write(output)
	return err
}

func drain(ch chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// createWatcher watches the directory holding filename so that editors
// replacing the file on save are still seen
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(absPath(filename))); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Debug("failed to close watcher", logger.Error(err))
	}
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
