// Package session drives one document through upload and analysis. A
// Session holds at most one selected file, the chosen analysis mode and the
// outcome of the latest submission.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yildizm/DocSum/internal/analysis"
	"github.com/yildizm/DocSum/internal/document"
	"github.com/yildizm/DocSum/internal/logger"
)

// Phase is the lifecycle position of a session
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

var (
	// ErrInFlight is returned when a submit is attempted while another one
	// has not settled yet.
	ErrInFlight = errors.New("a submission is already in flight")

	// ErrStale is returned by Submit when its response arrived after the
	// session moved on (a new file was selected) and was discarded.
	ErrStale = errors.New("response discarded: session moved on before it arrived")
)

// Analyzer performs the outbound analysis request
type Analyzer interface {
	Analyze(ctx context.Context, file *document.File, mode analysis.Mode) (*analysis.Result, error)
}

// Ticket identifies one accepted submission. It is handed back to Settle
// together with the outcome.
type Ticket struct {
	Seq  uint64
	File *document.File
	Mode analysis.Mode
}

// Snapshot is a copy of the observable session state
type Snapshot struct {
	File  *document.File
	Mode  analysis.Mode
	Phase Phase

	// Result is set only when Phase is PhaseSucceeded
	Result *analysis.Result
	// ResultMode is the mode the result was requested with
	ResultMode analysis.Mode

	// Err is set only when Phase is PhaseFailed
	Err error

	// Requests counts outbound requests issued so far
	Requests uint64
}

// HasFile reports whether a file is selected
func (s Snapshot) HasFile() bool {
	return s.File != nil
}

// CanSubmit reports whether a submit would issue a request
func (s Snapshot) CanSubmit() bool {
	return s.File != nil && s.Phase != PhaseSubmitting
}

// ViewMode is the mode a settled result is rendered with. Switching to basic
// hides financial sections of an earlier financial result; switching to
// financial never promotes a basic result. Without a result it is the
// selected mode.
func (s Snapshot) ViewMode() analysis.Mode {
	if !s.Mode.IsFinancial() {
		return analysis.ModeBasic
	}
	if s.ResultMode == "" {
		return s.Mode
	}
	return s.ResultMode
}

// Diagnostic returns the human-readable failure description, if any
func (s Snapshot) Diagnostic() string {
	return analysis.Diagnose(s.Err)
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the session logger
func WithLogger(log *logger.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log.WithComponent("session")
		}
	}
}

// WithMode sets the initial analysis mode
func WithMode(mode analysis.Mode) Option {
	return func(s *Session) {
		s.mode = mode
	}
}

// Session is safe for concurrent use. Every state transition happens under
// one mutex; the outbound request runs outside it.
type Session struct {
	analyzer Analyzer
	log      *logger.Logger

	mu         sync.Mutex
	file       *document.File
	mode       analysis.Mode
	phase      Phase
	result     *analysis.Result
	resultMode analysis.Mode
	err        error

	// seq is the last issued ticket; pending is the ticket whose settlement
	// is awaited, 0 when none.
	seq     uint64
	pending uint64
}

// New creates an idle session in basic mode
func New(analyzer Analyzer, opts ...Option) *Session {
	s := &Session{
		analyzer: analyzer,
		log:      logger.Nop(),
		mode:     analysis.DefaultMode,
		phase:    PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectFile replaces the selected file and returns the session to idle.
// A submission still in flight becomes stale and its response is dropped.
func (s *Session) SelectFile(file *document.File) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.phase
	s.file = file
	s.result = nil
	s.resultMode = ""
	s.err = nil
	s.phase = PhaseIdle
	s.pending = 0

	name := ""
	if file != nil {
		name = file.Name
	}
	s.log.Debug("file selected", logger.F("file", name), logger.F("from", from))
}

// SetMode changes the mode used by the next submit
func (s *Session) SetMode(mode analysis.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == "" {
		mode = analysis.DefaultMode
	}
	s.mode = mode
	s.log.Debug("mode set", logger.F("mode", mode))
}

// Mode returns the currently selected mode
func (s *Session) Mode() analysis.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Begin moves the session to submitting and returns the ticket for the
// request to issue. ok is false without any state change when no file is
// selected. ErrInFlight is returned while another submission is pending.
func (s *Session) Begin() (ticket Ticket, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		s.log.Debug("submit ignored: no file selected")
		return Ticket{}, false, nil
	}
	if s.phase == PhaseSubmitting {
		s.log.Debug("submit rejected: already submitting", logger.F("pending", s.pending))
		return Ticket{}, false, ErrInFlight
	}

	s.seq++
	s.pending = s.seq
	s.phase = PhaseSubmitting
	s.result = nil
	s.resultMode = ""
	s.err = nil

	s.log.Debug("submitting",
		logger.F("seq", s.seq),
		logger.F("file", s.file.Name),
		logger.F("mode", s.mode))

	return Ticket{Seq: s.seq, File: s.file, Mode: s.mode}, true, nil
}

// Settle applies the outcome of a ticket. It returns false, leaving the
// session untouched, when the ticket is no longer the pending one.
func (s *Session) Settle(ticket Ticket, result *analysis.Result, err error) bool {
	_, ok := s.SettleSnapshot(ticket, result, err)
	return ok
}

// SettleSnapshot is Settle returning the state right after settlement, taken
// under the same lock. A later SelectFile or Begin cannot leak into it.
func (s *Session) SettleSnapshot(ticket Ticket, result *analysis.Result, err error) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.settle(ticket, result, err)
	return s.snapshot(), ok
}

func (s *Session) settle(ticket Ticket, result *analysis.Result, err error) bool {
	if ticket.Seq == 0 || ticket.Seq != s.pending || s.phase != PhaseSubmitting {
		s.log.Debug("stale response discarded",
			logger.F("seq", ticket.Seq),
			logger.F("pending", s.pending))
		return false
	}

	s.pending = 0
	if err == nil && result == nil {
		err = analysis.NewMalformedError("", "service returned no result")
	}

	if err != nil {
		s.phase = PhaseFailed
		s.err = err
		s.log.Debug("submission failed",
			logger.F("seq", ticket.Seq),
			logger.F("kind", analysis.KindOf(err)),
			logger.Error(err))
		return true
	}

	s.phase = PhaseSucceeded
	s.result = result
	s.resultMode = ticket.Mode
	s.log.Debug("submission succeeded", logger.F("seq", ticket.Seq))
	return true
}

// Submit issues one request for the selected file and settles the session
// with its outcome. Without a selected file it does nothing. Submission
// failures are recorded in the session, not returned; the returned error is
// ErrInFlight or ErrStale only.
func (s *Session) Submit(ctx context.Context) (Snapshot, error) {
	ticket, ok, err := s.Begin()
	if err != nil {
		return s.Snapshot(), err
	}
	if !ok {
		return s.Snapshot(), nil
	}

	result, callErr := s.call(ctx, ticket)
	snap, settled := s.SettleSnapshot(ticket, result, callErr)
	if !settled {
		return snap, ErrStale
	}
	return snap, nil
}

// Run performs the outbound request for a ticket obtained from Begin. It
// never panics; analyzer panics become failures.
func (s *Session) Run(ctx context.Context, ticket Ticket) (*analysis.Result, error) {
	return s.call(ctx, ticket)
}

func (s *Session) call(ctx context.Context, ticket Ticket) (result *analysis.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = analysis.NewError(analysis.KindInternal, fmt.Sprintf("analyzer panicked: %v", r))
		}
	}()

	if s.analyzer == nil {
		return nil, analysis.NewError(analysis.KindInternal, "no analyzer configured")
	}
	return s.analyzer.Analyze(ctx, ticket.File, ticket.Mode)
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		File:       s.file,
		Mode:       s.mode,
		Phase:      s.phase,
		Result:     s.result,
		ResultMode: s.resultMode,
		Err:        s.err,
		Requests:   s.seq,
	}
}
