package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/DocSum/internal/emoji"
	"github.com/yildizm/DocSum/internal/view"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts  *termfmt.TerminalOptions
	emoji emoji.Set
}

// NewTerminal creates a new terminal formatter
func NewTerminal(o Options) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = o.Color
	opts.Emoji = o.Emoji.Enabled()
	return &terminalFormatter{opts: opts, emoji: o.Emoji}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, report)

	if report.Failed() {
		fmt.Fprintf(&b, "%s %s\n", f.emoji.Get("error"), report.Error)
		return []byte(b.String()), nil
	}

	for _, s := range report.Sections {
		f.writeSection(&b, s)
	}

	return []byte(strings.TrimRight(b.String(), "\n") + "\n"), nil
}

// writeHeader writes the boxed title and the file/mode lines
func (f *terminalFormatter) writeHeader(b *strings.Builder, report *Report) {
	header := "Document Analysis"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")

	items := []termfmt.TreeItem{
		{Label: "File", Value: valueOr(report.File, "none")},
		{Label: "Mode", Value: report.Mode.String()},
		{Label: "Status", Value: string(report.Phase), Last: true},
	}
	b.WriteString(f.emoji.Get("document") + " Document\n")
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeSection(b *strings.Builder, s view.Section) {
	fmt.Fprintf(b, "%s %s\n", f.emoji.Get(sectionEmojiKey(s.Kind)), s.Title)

	switch {
	case s.IsList():
		if len(s.Items) == 0 {
			b.WriteString("  (none)\n\n")
			return
		}
		for _, item := range s.Items {
			b.WriteString("• " + item + "\n")
		}
		b.WriteString("\n")
	case len(s.Fields) > 0:
		items := make([]termfmt.TreeItem, 0, len(s.Fields))
		for i, field := range s.Fields {
			items = append(items, termfmt.TreeItem{
				Label: field.Label,
				Value: field.Value,
				Last:  i == len(s.Fields)-1,
			})
		}
		b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
	default:
		b.WriteString(s.Text + "\n\n")
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
