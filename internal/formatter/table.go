package formatter

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
)

// tableFormatter renders report rows as an ASCII table
type tableFormatter struct{}

// NewTable creates a new table formatter
func NewTable() Formatter {
	return &tableFormatter{}
}

func (f *tableFormatter) Format(report *Report) ([]byte, error) {
	var b bytes.Buffer

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"Section", "Label", "Value"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(true)
	table.SetColWidth(60)

	for _, r := range flatten(report) {
		table.Append([]string{r.Section, r.Label, r.Value})
	}
	table.Render()

	return b.Bytes(), nil
}
