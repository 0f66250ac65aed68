package document

import (
	"bytes"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/samber/lo"
)

// Media types the analysis service understands
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeText = "text/plain"

	// MediaTypeUnknown is sent when nothing better could be determined
	MediaTypeUnknown = "application/octet-stream"
)

// AcceptedExtensions is the advisory selection filter
var AcceptedExtensions = []string{".pdf", ".docx", ".txt"}

var acceptedMediaTypes = []string{MediaTypePDF, MediaTypeDOCX, MediaTypeText}

var extensionMediaTypes = map[string]string{
	".pdf":  MediaTypePDF,
	".docx": MediaTypeDOCX,
	".txt":  MediaTypeText,
}

// File is a single in-memory document selected for analysis
type File struct {
	Name      string
	Content   []byte
	MediaType string
}

// Info summarizes a selected file for display
type Info struct {
	Name      string `json:"name" yaml:"name"`
	Size      int    `json:"size" yaml:"size"`
	MediaType string `json:"media_type" yaml:"media_type"`
	Accepted  bool   `json:"accepted" yaml:"accepted"`
	Pages     int    `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// New creates a file from memory, detecting its media type
func New(name string, content []byte) *File {
	return &File{
		Name:      filepath.Base(name),
		Content:   content,
		MediaType: DetectMediaType(name, content),
	}
}

// Load reads a regular file from disk
func Load(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	// #nosec G304 - path is user-selected and checked above
	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", cleanPath, err)
	}

	return New(cleanPath, content), nil
}

// DetectMediaType returns the declared media type for a file. The extension
// wins for the accepted types; otherwise the content is sniffed.
func DetectMediaType(name string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mt, ok := extensionMediaTypes[ext]; ok {
		return mt
	}

	if len(content) == 0 {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return baseMediaType(mt)
		}
		return MediaTypeUnknown
	}

	return baseMediaType(mimetype.Detect(content).String())
}

// Accepted reports whether the file passes the advisory filter. The service
// remains the authority; callers only warn on false.
func Accepted(f *File) bool {
	if f == nil {
		return false
	}
	return lo.Contains(acceptedMediaTypes, baseMediaType(f.MediaType))
}

// Describe gathers display information about a file
func Describe(f *File) Info {
	if f == nil {
		return Info{}
	}
	info := Info{
		Name:      f.Name,
		Size:      len(f.Content),
		MediaType: f.MediaType,
		Accepted:  Accepted(f),
	}
	if baseMediaType(f.MediaType) == MediaTypePDF {
		info.Pages = pageCount(f.Content)
	}
	return info
}

// pageCount returns the number of PDF pages, or 0 when unreadable
func pageCount(content []byte) (pages int) {
	if len(content) == 0 {
		return 0
	}
	// The pdf reader panics on some truncated inputs.
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0
	}
	return reader.NumPage()
}

func baseMediaType(mt string) string {
	parsed, _, err := mime.ParseMediaType(mt)
	if err != nil {
		return mt
	}
	return parsed
}
