package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/DocSum/internal/analysis"
	"github.com/yildizm/DocSum/internal/document"
	"github.com/yildizm/DocSum/internal/session"
)

// settledMsg carries the outcome of one submission back to Update
type settledMsg struct {
	ticket session.Ticket
	result *analysis.Result
	err    error
}

// reloadedMsg carries a freshly read file
type reloadedMsg struct {
	file *document.File
	err  error
}

type tickMsg time.Time

// tick advances the spinner while a submission is in flight
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// analyzeCommand performs the request for an accepted ticket
func analyzeCommand(ctx context.Context, s *session.Session, ticket session.Ticket) tea.Cmd {
	return func() tea.Msg {
		result, err := s.Run(ctx, ticket)
		return settledMsg{ticket: ticket, result: result, err: err}
	}
}

// reloadCommand reads the file at path again
func reloadCommand(path string) tea.Cmd {
	return func() tea.Msg {
		file, err := document.Load(path)
		return reloadedMsg{file: file, err: err}
	}
}
