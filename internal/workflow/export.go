package workflow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

// DefaultDownloadName is the file name used when no explicit download
// path is given.
const DefaultDownloadName = "ocr-result.txt"

// ErrNoCurrentResult is returned by export actions when no result has
// been rendered yet.
var ErrNoCurrentResult = errors.New("no result to export")

// Copy places the current result's text on the system clipboard and
// shows a transient confirmation.
func (c *Controller) Copy() error {
	if c.current == nil {
		return ErrNoCurrentResult
	}
	if err := clipboard.WriteAll(c.current.Text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	c.view.Notify("Copied to clipboard")
	return nil
}

// Download writes the current result's text to dir/ocr-result.txt and
// returns the written path. An empty dir writes to the working directory.
func (c *Controller) Download(dir string) (string, error) {
	if c.current == nil {
		return "", ErrNoCurrentResult
	}

	path := filepath.Join(dir, DefaultDownloadName)
	if err := os.WriteFile(path, []byte(c.current.Text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write result file: %w", err)
	}

	c.view.Notify("Saved " + path)
	return path, nil
}
