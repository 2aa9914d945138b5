// Package selection maintains the ordered list of files queued for
// OCR submission.
package selection

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// File is one entry in the pending list. Content is read lazily at
// submission time so large documents are not held in memory while queued.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// FromPath builds a File backed by a file on disk. The content type is
// derived from the extension, matching how a browser reports dropped files.
func FromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}
	return File{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// FromBytes builds an in-memory File.
func FromBytes(name string, data []byte, contentType string) File {
	return File{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// List is the ordered pending-file list. Insertion order is significant
// and duplicates by name/size are permitted.
type List struct {
	files     []File
	callbacks []func()
}

// NewList creates an empty pending list.
func NewList() *List {
	return &List{}
}

// OnChange registers a callback fired after every mutation. The visible
// file list and the process action's availability stay synchronized with
// the underlying list through these callbacks.
func (l *List) OnChange(fn func()) {
	l.callbacks = append(l.callbacks, fn)
}

// Add appends files to the end of the list. No content-type filtering is
// applied on this path: it mirrors the file-dialog entry point, which
// accepts whatever the user picks.
func (l *List) Add(files ...File) {
	if len(files) == 0 {
		return
	}
	l.files = append(l.files, files...)
	l.notify()
}

// AddDropped appends only PDF and image files, dropping everything else.
// Filtering happens on the drag-and-drop path only; Add applies none.
func (l *List) AddDropped(files ...File) {
	accepted := files[:0:0]
	for _, f := range files {
		if Acceptable(f.ContentType) {
			accepted = append(accepted, f)
		}
	}
	if len(accepted) == 0 {
		return
	}
	l.files = append(l.files, accepted...)
	l.notify()
}

// Acceptable reports whether a content type passes the drag-and-drop filter.
func Acceptable(contentType string) bool {
	return contentType == "application/pdf" || strings.HasPrefix(contentType, "image/")
}

// Remove deletes the file at index i, preserving the relative order of the
// remaining entries. Out-of-bounds indexes are a silent no-op.
func (l *List) Remove(i int) {
	if i < 0 || i >= len(l.files) {
		return
	}
	l.files = append(l.files[:i], l.files[i+1:]...)
	l.notify()
}

// Clear empties the list.
func (l *List) Clear() {
	if len(l.files) == 0 {
		return
	}
	l.files = nil
	l.notify()
}

// Files returns a copy of the current entries.
func (l *List) Files() []File {
	out := make([]File, len(l.files))
	copy(out, l.files)
	return out
}

// Len returns the number of pending files.
func (l *List) Len() int {
	return len(l.files)
}

func (l *List) notify() {
	for _, fn := range l.callbacks {
		fn()
	}
}
