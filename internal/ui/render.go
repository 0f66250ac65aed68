package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/DocSum/internal/emoji"
	"github.com/yildizm/DocSum/internal/session"
	"github.com/yildizm/DocSum/internal/view"
)

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return "Thanks for using DocSum! 👋\n"
	}

	snap := m.session.Snapshot()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.opts.Emoji.Get("document")+" DocSum") + "\n\n")
	b.WriteString(m.renderStatus(snap) + "\n\n")
	b.WriteString(m.renderBody(snap) + "\n")

	if m.notice != "" {
		b.WriteString("\n" + m.styles.Info.Render(m.notice) + "\n")
	}
	b.WriteString("\n" + m.renderHelp())

	return b.String()
}

func (m *Model) renderStatus(snap session.Snapshot) string {
	file := "no file selected"
	if snap.File != nil {
		file = fmt.Sprintf("%s (%s)", snap.File.Name, snap.File.MediaType)
	}

	lines := []string{
		m.styles.Muted.Render("File:  ") + m.styles.Body.Render(file),
		m.styles.Muted.Render("Mode:  ") + m.styles.Insight.Render(snap.Mode.String()),
		m.styles.Muted.Render("Phase: ") + m.phaseStyle(snap.Phase).Render(string(snap.Phase)),
	}
	return m.styles.Box.Render(strings.Join(lines, "\n"))
}

func (m *Model) phaseStyle(phase session.Phase) lipgloss.Style {
	switch phase {
	case session.PhaseSubmitting:
		return m.styles.Progress
	case session.PhaseSucceeded:
		return m.styles.Success
	case session.PhaseFailed:
		return m.styles.Error
	default:
		return m.styles.Muted
	}
}

func (m *Model) renderBody(snap session.Snapshot) string {
	switch snap.Phase {
	case session.PhaseSubmitting:
		spinner := m.styles.Progress.Render(spinnerChars[m.spinnerFrame])
		return fmt.Sprintf("%s Analyzing %s in %s mode...", spinner, snap.File.Name, snap.Mode)
	case session.PhaseFailed:
		return m.styles.Error.Render(m.opts.Emoji.Get("error")+" Analysis failed") + "\n" +
			m.styles.Body.Render(snap.Diagnostic()) + "\n" +
			m.styles.Muted.Render("Press enter to try again.")
	case session.PhaseSucceeded:
		sections, err := view.Project(snap.Result, snap.ViewMode())
		if err != nil {
			return m.styles.Error.Render(m.opts.Emoji.Get("error") + " " + err.Error())
		}
		return RenderSections(sections, m.styles, m.opts.Emoji)
	default:
		if !snap.HasFile() {
			return m.styles.Muted.Render("Select a file to analyze.")
		}
		return m.styles.Muted.Render("Press enter to analyze.")
	}
}

// RenderSections lays sections out one after another
func RenderSections(sections []view.Section, styles Styles, set emoji.Set) string {
	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		var b strings.Builder
		b.WriteString(styles.Header.Render(set.Get(sectionEmoji(s.Kind))+" "+s.Title) + "\n")

		switch {
		case s.IsList():
			if len(s.Items) == 0 {
				b.WriteString(styles.ListItem.Render(styles.Muted.Render("none")))
				break
			}
			items := make([]string, 0, len(s.Items))
			for _, item := range s.Items {
				items = append(items, styles.ListItem.Render("• "+item))
			}
			b.WriteString(strings.Join(items, "\n"))
		case len(s.Fields) > 0:
			fields := make([]string, 0, len(s.Fields))
			for _, f := range s.Fields {
				fields = append(fields, styles.ListItem.Render(styles.Muted.Render(f.Label+": ")+styles.Body.Render(f.Value)))
			}
			b.WriteString(strings.Join(fields, "\n"))
		default:
			b.WriteString(styles.Body.Render(s.Text))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func sectionEmoji(kind view.Kind) string {
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
	default:
		return "contact"
	}
}

func (m *Model) renderHelp() string {
	keys := []struct{ key, desc string }{
		{"enter", "analyze"},
		{"m", "toggle mode"},
		{"r", "reload file"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, m.styles.Key.Render(k.key)+" "+m.styles.Muted.Render(k.desc))
	}
	return strings.Join(parts, "  •  ")
}
