package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/DocSum/internal/emoji"
	"github.com/yildizm/DocSum/internal/logger"
	"github.com/yildizm/DocSum/internal/session"
)

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Options configure a Model
type Options struct {
	// Path is re-read on reload; empty disables reload
	Path string

	Theme Theme
	Color bool
	Emoji emoji.Set

	// AutoSubmit submits the selected file as soon as the program starts
	AutoSubmit bool

	Logger *logger.Logger
}

// Model is the bubbletea model driving one session
type Model struct {
	ctx     context.Context
	session *session.Session
	opts    Options
	styles  Styles
	log     *logger.Logger

	width        int
	height       int
	spinnerFrame int
	ticking      bool
	notice       string
	quitting     bool
}

// NewModel creates a model over s. The context bounds every request the
// model issues.
func NewModel(ctx context.Context, s *session.Session, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Theme.Name == "" {
		opts.Theme = DefaultTheme
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Model{
		ctx:     ctx,
		session: s,
		opts:    opts,
		styles:  NewStyles(opts.Theme, opts.Color),
		log:     log.WithComponent("ui"),
	}
}

// Init starts the first submission when AutoSubmit is set
func (m *Model) Init() tea.Cmd {
	if m.opts.AutoSubmit {
		return m.submit()
	}
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case settledMsg:
		return m.handleSettled(msg)
	case reloadedMsg:
		return m.handleReloaded(msg)
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter", "s":
		return m, m.submit()
	case "m", "tab":
		mode := m.session.Mode().Toggle()
		m.session.SetMode(mode)
		m.notice = fmt.Sprintf("mode set to %s", mode)
		return m, nil
	case "r":
		if m.opts.Path == "" {
			m.notice = "nothing to reload"
			return m, nil
		}
		m.notice = "reloading " + m.opts.Path
		return m, reloadCommand(m.opts.Path)
	}
	return m, nil
}

// submit begins a submission and returns the command performing it, or nil
// when nothing is to be sent
func (m *Model) submit() tea.Cmd {
	ticket, ok, err := m.session.Begin()
	switch {
	case errors.Is(err, session.ErrInFlight):
		m.notice = "analysis already running"
		return nil
	case err != nil:
		m.notice = err.Error()
		return nil
	case !ok:
		m.notice = "select a file first"
		return nil
	}

	m.notice = ""
	cmds := []tea.Cmd{analyzeCommand(m.ctx, m.session, ticket)}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, tick())
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.session.Snapshot().Phase != session.PhaseSubmitting {
		m.ticking = false
		return m, nil
	}
	m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
	return m, tick()
}

func (m *Model) handleSettled(msg settledMsg) (tea.Model, tea.Cmd) {
	if !m.session.Settle(msg.ticket, msg.result, msg.err) {
		m.log.Debug("dropped superseded response", logger.F("seq", msg.ticket.Seq))
		m.notice = "discarded a response for a previous selection"
	}
	return m, nil
}

func (m *Model) handleReloaded(msg reloadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notice = "reload failed: " + msg.err.Error()
		return m, nil
	}
	m.session.SelectFile(msg.file)
	m.notice = "reloaded " + msg.file.Name
	return m, nil
}

// Snapshot returns the state of the wrapped session
func (m *Model) Snapshot() session.Snapshot {
	return m.session.Snapshot()
}

// Run starts the interactive program and blocks until the user quits. It
// returns the final session state.
func Run(ctx context.Context, s *session.Session, opts Options) (session.Snapshot, error) {
	model := NewModel(ctx, s, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return s.Snapshot(), err
	}
	return s.Snapshot(), nil
}
