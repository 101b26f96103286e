// Package loader turns uploaded files into plain text for topic detection.
package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Document is the plain-text form of an uploaded file. Text holds one
// paragraph per block, separated by blank lines; headings are paragraphs of
// their own.
type Document struct {
	Title string
	Text  string
	Pages int // 0 when the format has no pages
}

// Loader converts raw file bytes into a Document.
type Loader interface {
	Load(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Options tune loaders that have external fallbacks.
type Options struct {
	PDFFallbackPdftotext bool
}

// ForFile returns the appropriate loader for a filename.
func ForFile(filename string, opts Options) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextLoader{}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".csv":
		return &CSVLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".pdf":
		return &PDFLoader{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// paragraphs accumulates trimmed, non-empty blocks of text.
type paragraphs []string

func (p *paragraphs) add(s string) {
	if s = strings.TrimSpace(s); s != "" {
		*p = append(*p, s)
	}
}

func (p paragraphs) String() string {
	return strings.Join(p, "\n\n")
}

// collapseSpace folds runs of whitespace into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
