package document

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectMediaType(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		want     string
	}{
		{"pdf by extension", "report.pdf", []byte("not really a pdf"), MediaTypePDF},
		{"docx by extension", "Report.DOCX", nil, MediaTypeDOCX},
		{"text by extension", "notes.txt", []byte("hello"), MediaTypeText},
		{"sniffed pdf", "upload", []byte("%PDF-1.4\n%âãÏÓ\n"), MediaTypePDF},
		{"sniffed text", "README", []byte("plain words only\n"), MediaTypeText},
		{"empty unknown", "blob", nil, MediaTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectMediaType(tt.filename, tt.content)
			if got != tt.want {
				t.Errorf("DetectMediaType(%q) = %s, want %s", tt.filename, got, tt.want)
			}
		})
	}
}

func TestAccepted(t *testing.T) {
	if !Accepted(New("a.txt", []byte("x"))) {
		t.Error("Expected .txt to be accepted")
	}
	if !Accepted(&File{Name: "a", MediaType: "text/plain; charset=utf-8"}) {
		t.Error("Expected media type parameters to be ignored")
	}
	if Accepted(&File{Name: "a.png", MediaType: "image/png"}) {
		t.Error("Expected image/png to fall outside the advisory filter")
	}
	if Accepted(nil) {
		t.Error("Expected nil file not to be accepted")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memo.txt")
	if err := os.WriteFile(path, []byte("Quarterly memo"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if f.Name != "memo.txt" {
		t.Errorf("Expected name memo.txt, got %s", f.Name)
	}
	if string(f.Content) != "Quarterly memo" {
		t.Errorf("Unexpected content %q", f.Content)
	}
	if f.MediaType != MediaTypeText {
		t.Errorf("Expected %s, got %s", MediaTypeText, f.MediaType)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Expected error loading a directory")
	}
	if _, err := Load(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("Expected error loading a missing file")
	}
	if _, err := Load("  "); err == nil {
		t.Error("Expected error for empty path")
	}
}

func TestDescribe(t *testing.T) {
	info := Describe(New("notes.txt", []byte("hello")))
	if info.Size != 5 || !info.Accepted || info.Pages != 0 {
		t.Errorf("Unexpected info %+v", info)
	}

	broken := Describe(&File{Name: "x.pdf", Content: []byte("%PDF-broken"), MediaType: MediaTypePDF})
	if broken.Pages != 0 {
		t.Errorf("Expected 0 pages for unreadable pdf, got %d", broken.Pages)
	}
}
