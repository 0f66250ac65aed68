// Package formatter renders a settled session as text, JSON, Markdown, CSV
// or an ASCII table.
package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/DocSum/internal/analysis"
	"github.com/yildizm/DocSum/internal/emoji"
	"github.com/yildizm/DocSum/internal/session"
	"github.com/yildizm/DocSum/internal/view"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// Output format names
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatTable    = "table"
)

// Formats lists every supported output format
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatMarkdown, FormatCSV, FormatTable}
}

// Options tune the human-oriented formats
type Options struct {
	Color bool
	Emoji emoji.Set
}

// New returns the formatter registered under name
func New(name string, opts Options) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatText, "":
		return NewTerminal(opts), nil
	case FormatJSON:
		return NewJSON(), nil
	case FormatMarkdown, "md":
		return NewMarkdown(), nil
	case FormatCSV:
		return NewCSV(), nil
	case FormatTable:
		return NewTable(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (valid: %s)", name, strings.Join(Formats(), ", "))
	}
}

// Report is everything a formatter needs from one session outcome
type Report struct {
	File     string             `json:"file,omitempty"`
	Mode     analysis.Mode      `json:"mode"`
	Phase    session.Phase      `json:"phase"`
	Sections []view.Section     `json:"sections,omitempty"`
	Error    string             `json:"error,omitempty"`
	Kind     analysis.ErrorKind `json:"error_kind,omitempty"`
}

// Failed reports whether the report carries a diagnostic instead of results
func (r *Report) Failed() bool {
	return r.Error != ""
}

// FromSnapshot projects a session snapshot into a report. A result that
// cannot be projected for its mode turns the report into a failure.
func FromSnapshot(snap session.Snapshot) *Report {
	report := &Report{
		Mode:  snap.ViewMode(),
		Phase: snap.Phase,
	}
	if snap.File != nil {
		report.File = snap.File.Name
	}

	switch snap.Phase {
	case session.PhaseFailed:
		report.Error = snap.Diagnostic()
		report.Kind = analysis.KindOf(snap.Err)
	case session.PhaseSucceeded:
		sections, err := view.Project(snap.Result, report.Mode)
		if err != nil {
			report.Phase = session.PhaseFailed
			report.Error = analysis.Diagnose(err)
			report.Kind = analysis.KindOf(err)
			return report
		}
		report.Sections = sections
	}
	return report
}

// row is one flattened line of a report, shared by the CSV and table formats
type row struct {
	Section string
	Label   string
	Value   string
}

// flatten turns sections into rows. A list yields one row per item, or one
// empty row when the list is empty so the section stays visible.
func flatten(report *Report) []row {
	if report.Failed() {
		return []row{{Section: "Error", Label: string(report.Kind), Value: report.Error}}
	}

	var rows []row
	for _, s := range report.Sections {
		switch {
		case s.IsList():
			if len(s.Items) == 0 {
				rows = append(rows, row{Section: s.Title})
			}
			for _, item := range s.Items {
				rows = append(rows, row{Section: s.Title, Value: item})
			}
		case len(s.Fields) > 0:
			for _, f := range s.Fields {
				rows = append(rows, row{Section: s.Title, Label: f.Label, Value: f.Value})
			}
		default:
			rows = append(rows, row{Section: s.Title, Value: s.Text})
		}
	}
	return rows
}

// sectionEmojiKey maps a section kind to its emoji key
func sectionEmojiKey(kind view.Kind) string {
	switch kind {
	case view.KindSummary:
		return "summary"
	case view.KindPersons:
		return "persons"
	case view.KindStatisticalInsights:
		return "statistics"
	case view.KindOrganizations:
		return "organizations"
	case view.KindFinancialStatus:
		return "financial"
	case view.KindSentiment:
		return "sentiment"
	case view.KindContact:
		return "contact"
	default:
		return "info"
	}
}
