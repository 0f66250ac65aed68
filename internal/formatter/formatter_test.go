package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yildizm/DocSum/internal/analysis"
	"github.com/yildizm/DocSum/internal/document"
	"github.com/yildizm/DocSum/internal/emoji"
	"github.com/yildizm/DocSum/internal/session"
	"github.com/yildizm/DocSum/internal/view"
)

func financialSnapshot() session.Snapshot {
	return session.Snapshot{
		File:       document.New("report.pdf", []byte("%PDF-1.4")),
		Mode:       analysis.ModeFinancial,
		ResultMode: analysis.ModeFinancial,
		Phase:      session.PhaseSucceeded,
		Result: &analysis.Result{
			Summary: analysis.StringPtr("Quarterly results were strong."),
			Persons: []string{"Ann Lee", "Bo Chen"},
			Sentiment: &analysis.Sentiment{
				Polarity:     analysis.FloatPtr(0.25),
				Subjectivity: analysis.FloatPtr(0.5),
			},
			StatisticalInsights: []string{"Revenue grew 12%"},
			Organizations:       []string{},
			FinancialStatus:     analysis.StringPtr("profit"),
			ContactInfo:         &analysis.ContactInfo{Emails: []string{"ir@acme.io"}},
		},
	}
}

func failedSnapshot() session.Snapshot {
	return session.Snapshot{
		File:  document.New("memo.txt", []byte("hello")),
		Mode:  analysis.ModeBasic,
		Phase: session.PhaseFailed,
		Err:   analysis.NewStatusError(500, "boom"),
	}
}

func TestFromSnapshot(t *testing.T) {
	report := FromSnapshot(financialSnapshot())

	if report.File != "report.pdf" {
		t.Errorf("File = %q, want report.pdf", report.File)
	}
	if report.Failed() {
		t.Fatalf("unexpected failure: %s", report.Error)
	}
	if _, ok := view.Find(report.Sections, view.KindOrganizations); ok {
		t.Error("empty organizations should be omitted")
	}
	if _, ok := view.Find(report.Sections, view.KindFinancialStatus); !ok {
		t.Error("financial status section missing")
	}
}

func TestFromSnapshot_BasicViewHidesFinancial(t *testing.T) {
	snap := financialSnapshot()
	snap.Mode = analysis.ModeBasic

	report := FromSnapshot(snap)
	if report.Mode != analysis.ModeBasic {
		t.Errorf("Mode = %s, want basic", report.Mode)
	}
	if _, ok := view.Find(report.Sections, view.KindStatisticalInsights); ok {
		t.Error("statistical insights must not render in basic mode")
	}
}

func TestFromSnapshot_Failed(t *testing.T) {
	report := FromSnapshot(failedSnapshot())

	if !report.Failed() {
		t.Fatal("expected a failed report")
	}
	if len(report.Sections) != 0 {
		t.Errorf("failed report should have no sections, got %d", len(report.Sections))
	}
	if report.Kind != analysis.KindStatus {
		t.Errorf("Kind = %s, want status", report.Kind)
	}
	if !strings.Contains(report.Error, "500") {
		t.Errorf("Error = %q, want status code", report.Error)
	}
}

func TestFromSnapshot_ContractViolationAtRender(t *testing.T) {
	snap := financialSnapshot()
	snap.Result.StatisticalInsights = nil

	report := FromSnapshot(snap)
	if report.Phase != session.PhaseFailed || report.Kind != analysis.KindContract {
		t.Errorf("got phase=%s kind=%s, want failed contract", report.Phase, report.Kind)
	}
}

func TestFromSnapshot_Idle(t *testing.T) {
	report := FromSnapshot(session.Snapshot{Mode: analysis.ModeBasic, Phase: session.PhaseIdle})
	if report.Failed() || len(report.Sections) != 0 || report.File != "" {
		t.Errorf("idle report should be empty, got %+v", report)
	}
}

func TestNew(t *testing.T) {
	for _, name := range append(Formats(), "md", "") {
		if _, err := New(name, Options{}); err != nil {
			t.Errorf("New(%q) error = %v", name, err)
		}
	}
	if _, err := New("xml", Options{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTerminalFormatter(t *testing.T) {
	f := NewTerminal(Options{Emoji: emoji.New(false)})

	out, err := f.Format(FromSnapshot(financialSnapshot()))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	text := string(out)

	order := []string{"Summary", "Persons", "Statistical Insights", "Financial Status", "Sentiment", "Contact Information"}
	last := -1
	for _, title := range order {
		pos := strings.Index(text, title)
		if pos < 0 {
			t.Fatalf("output missing %q:\n%s", title, text)
		}
		if pos < last {
			t.Errorf("%q out of order", title)
		}
		last = pos
	}

	for _, want := range []string{"• Ann Lee", "Revenue grew 12%", "profit", "0.25", "ir@acme.io", "[SUM]"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(text, "Organizations") {
		t.Error("empty organizations should not be rendered")
	}
}

func TestTerminalFormatter_Failed(t *testing.T) {
	f := NewTerminal(Options{Emoji: emoji.New(false)})

	out, err := f.Format(FromSnapshot(failedSnapshot()))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "[ERR]") || !strings.Contains(text, "500") {
		t.Errorf("expected diagnostic, got:\n%s", text)
	}
	if strings.Contains(text, "Summary") {
		t.Error("failed report must not render result sections")
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := NewJSON().Format(FromSnapshot(financialSnapshot()))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded struct {
		File     string         `json:"file"`
		Mode     string         `json:"mode"`
		Phase    string         `json:"phase"`
		Sections []view.Section `json:"sections"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Mode != "financial" || decoded.Phase != "succeeded" {
		t.Errorf("got mode=%s phase=%s", decoded.Mode, decoded.Phase)
	}
	if len(decoded.Sections) != 6 {
		t.Errorf("got %d sections, want 6", len(decoded.Sections))
	}
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdown().Format(FromSnapshot(financialSnapshot()))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	text := string(out)

	for _, want := range []string{"# Document Analysis Report", "## Summary", "- Ann Lee", "- **Polarity**: 0.25", "- **Emails**: ir@acme.io"} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestCSVFormatter(t *testing.T) {
	out, err := NewCSV().Format(FromSnapshot(financialSnapshot()))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if got := records[0]; strings.Join(got, ",") != "Section,Label,Value" {
		t.Errorf("header = %v", got)
	}

	want := []string{"Persons", "", "Bo Chen"}
	found := false
	for _, r := range records[1:] {
		if strings.Join(r, "|") == strings.Join(want, "|") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing row %v in %v", want, records)
	}
}

func TestCSVFormatter_Failed(t *testing.T) {
	out, err := NewCSV().Format(FromSnapshot(failedSnapshot()))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 2 || records[1][0] != "Error" || records[1][1] != "status" {
		t.Errorf("unexpected records %v", records)
	}
}

func TestTableFormatter(t *testing.T) {
	out, err := NewTable().Format(FromSnapshot(financialSnapshot()))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	text := string(out)
	for _, want := range []string{"SECTION", "Revenue grew 12%", "profit"} {
		if !strings.Contains(text, want) {
			t.Errorf("table missing %q:\n%s", want, text)
		}
	}
}

func TestFlatten_EmptyListKeepsRow(t *testing.T) {
	report := &Report{Sections: []view.Section{{Kind: view.KindPersons, Title: "Persons", Items: []string{}}}}

	rows := flatten(report)
	if len(rows) != 1 || rows[0].Section != "Persons" || rows[0].Value != "" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestFromSnapshot_ForeignError(t *testing.T) {
	snap := failedSnapshot()
	snap.Err = errors.New("disk on fire")

	report := FromSnapshot(snap)
	if report.Kind != analysis.KindInternal || report.Error != "disk on fire" {
		t.Errorf("got kind=%s error=%q", report.Kind, report.Error)
	}
}

func TestJSONFormatter_EmptyListsKept(t *testing.T) {
	snap := financialSnapshot()
	snap.Result.Persons = []string{}
	snap.Result.StatisticalInsights = []string{}

	out, err := NewJSON().Format(FromSnapshot(snap))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded struct {
		Sections []map[string]json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	for _, kind := range []view.Kind{view.KindPersons, view.KindStatisticalInsights} {
		found := false
		for _, s := range decoded.Sections {
			if string(s["kind"]) != `"`+string(kind)+`"` {
				continue
			}
			found = true
			if items, ok := s["items"]; !ok || string(items) != "[]" {
				t.Errorf("%s: expected \"items\": [], got %q (present=%v)", kind, items, ok)
			}
		}
		if !found {
			t.Errorf("section %s missing from output", kind)
		}
	}
}
