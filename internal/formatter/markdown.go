package formatter

import (
	"fmt"
	"strings"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Document Analysis Report\n\n")
	b.WriteString("| Property | Value |\n")
	b.WriteString("|----------|-------|\n")
	fmt.Fprintf(&b, "| File | %s |\n", escapeMarkdownCell(valueOr(report.File, "none")))
	fmt.Fprintf(&b, "| Mode | %s |\n", report.Mode)
	fmt.Fprintf(&b, "| Status | %s |\n\n", report.Phase)

	if report.Failed() {
		b.WriteString("## Error\n\n")
		fmt.Fprintf(&b, "%s\n", report.Error)
		return []byte(b.String()), nil
	}

	for _, s := range report.Sections {
		fmt.Fprintf(&b, "## %s\n\n", s.Title)
		switch {
		case s.IsList():
			if len(s.Items) == 0 {
				b.WriteString("_None_\n\n")
				continue
			}
			for _, item := range s.Items {
				fmt.Fprintf(&b, "- %s\n", item)
			}
			b.WriteString("\n")
		case len(s.Fields) > 0:
			for _, field := range s.Fields {
				fmt.Fprintf(&b, "- **%s**: %s\n", field.Label, field.Value)
			}
			b.WriteString("\n")
		default:
			b.WriteString(s.Text + "\n\n")
		}
	}

	return []byte(strings.TrimRight(b.String(), "\n") + "\n"), nil
}

// escapeMarkdownCell keeps pipes from splitting a table cell
func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
