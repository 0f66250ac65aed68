package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/yildizm/DocSum/internal/document"
	"github.com/yildizm/DocSum/internal/formatter"
	"github.com/yildizm/go-termfmt"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show what would be uploaded for a file",
		Long: `Show the name, size and media type that analyze would send for a file,
whether the type is one the service accepts, and the page count of PDFs.
Nothing is sent to the service. Only the text and json output formats apply.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	format := getOutputFormat()
	if format != formatter.FormatText && format != formatter.FormatJSON {
		return fmt.Errorf("unsupported output format: %s (valid for inspect: %s, %s)",
			format, formatter.FormatText, formatter.FormatJSON)
	}

	file, err := document.Load(args[0])
	if err != nil {
		return err
	}
	info := document.Describe(file)
	out := cmd.OutOrStdout()

	if format == formatter.FormatJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal file info: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	opts := termfmt.DefaultOptions()
	opts.Color = !noColor && isTerminal(out)
	opts.Emoji = !noEmoji

	accepted := "yes"
	if !info.Accepted {
		accepted = "no (" + acceptedList() + " expected)"
	}

	items := []termfmt.TreeItem{
		{Label: "Size", Value: humanize.IBytes(uint64(info.Size))},
		{Label: "Media type", Value: info.MediaType},
		{Label: "Accepted", Value: accepted},
	}
	if info.Pages > 0 {
		items = append(items, termfmt.TreeItem{Label: "Pages", Value: strconv.Itoa(info.Pages)})
	}
	items[len(items)-1].Last = true

	fmt.Fprintf(out, "%s %s\n", emojiSet().Get("document"), info.Name)
	fmt.Fprintln(out, termfmt.TreeViewWithOptions(items, opts))
	return nil
}

func acceptedList() string {
	return strings.Join(document.AcceptedExtensions, ", ")
}
