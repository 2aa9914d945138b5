// Package inspect reports on candidate files before upload: sizes,
// PDF page counts, and whether the backend will accept them. It performs
// no text extraction.
package inspect

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/ocrdesk/ocrdesk/internal/selection"
)

// Report describes one inspected file.
type Report struct {
	Name        string `json:"name" yaml:"name"`
	Path        string `json:"path" yaml:"path"`
	Size        int64  `json:"size" yaml:"size"`
	ContentType string `json:"content_type" yaml:"content_type"`
	// Pages is the PDF page count; 1 for images, 0 when unreadable.
	Pages int `json:"pages" yaml:"pages"`
	// OCRable reports whether the file passes the PDF/image filter.
	OCRable bool   `json:"ocrable" yaml:"ocrable"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// File inspects a single path.
func File(path string) Report {
	r := Report{
		Name:        filepath.Base(path),
		Path:        path,
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
	}

	info, err := os.Stat(path)
	if err != nil {
		r.Error = fmt.Sprintf("not found: %v", err)
		return r
	}
	if info.IsDir() {
		r.Error = "is a directory"
		return r
	}
	r.Size = info.Size()
	r.OCRable = selection.Acceptable(r.ContentType)

	switch {
	case r.ContentType == "application/pdf":
		f, err := os.Open(path)
		if err != nil {
			r.Error = fmt.Sprintf("unreadable: %v", err)
			return r
		}
		defer f.Close()

		pages, err := pdfapi.PageCount(f, nil)
		if err != nil {
			r.Error = fmt.Sprintf("invalid PDF: %v", err)
			r.OCRable = false
			return r
		}
		r.Pages = pages
	case strings.HasPrefix(r.ContentType, "image/"):
		r.Pages = 1
	}

	return r
}

// Files inspects every path and returns one report per file, in order.
func Files(paths []string) []Report {
	reports := make([]Report, len(paths))
	for i, p := range paths {
		reports[i] = File(p)
	}
	return reports
}
