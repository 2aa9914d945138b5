package workflow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/ocrdesk/ocrdesk/internal/api"
	"github.com/ocrdesk/ocrdesk/internal/ocr"
	"github.com/ocrdesk/ocrdesk/internal/render"
	"github.com/ocrdesk/ocrdesk/internal/selection"
)

// recordingView captures every side effect the controller emits.
type recordingView struct {
	states        []State
	processing    []bool
	fileLists     [][]selection.File
	results       []render.ViewModel
	elapsed       []string
	notifications []string
}

func (v *recordingView) SetState(s State)          { v.states = append(v.states, s) }
func (v *recordingView) SetProcessing(active bool) { v.processing = append(v.processing, active) }
func (v *recordingView) RenderFileList(files []selection.File) {
	v.fileLists = append(v.fileLists, files)
}
func (v *recordingView) ShowResult(vm render.ViewModel, elapsed string) {
	v.results = append(v.results, vm)
	v.elapsed = append(v.elapsed, elapsed)
}
func (v *recordingView) Notify(msg string) { v.notifications = append(v.notifications, msg) }

func addFile(t *testing.T, c *Controller, name string) {
	t.Helper()
	c.Pending().Add(selection.FromBytes(name, []byte("data"), "application/pdf"))
}

func TestSubmitEmptyListIsNoOp(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	view := &recordingView{}
	c := New(api.NewClient(srv.URL), view, nil, api.ProcessOptions{})

	c.Submit(context.Background())

	if n := requests.Load(); n != 0 {
		t.Errorf("expected no network call, got %d requests", n)
	}
	if len(view.states) != 0 || len(view.processing) != 0 {
		t.Errorf("expected visible state unchanged, got states=%v processing=%v", view.states, view.processing)
	}
}

func TestSubmitSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"ocr_result":{"text":"Hello","average_confidence":92.5,
			"page_count":1,"total_words":1,"total_characters":5}}]}`))
	}))
	defer srv.Close()

	view := &recordingView{}
	c := New(api.NewClient(srv.URL), view, nil, api.ProcessOptions{})
	addFile(t, c, "a.pdf")

	c.Submit(context.Background())

	if len(view.states) != 2 || view.states[0] != StateLoading || view.states[1] != StateResults {
		t.Errorf("unexpected state sequence %v", view.states)
	}
	if len(view.processing) != 2 || !view.processing[0] || view.processing[1] {
		t.Errorf("expected processing on then off, got %v", view.processing)
	}
	if len(view.results) != 1 {
		t.Fatalf("expected one rendered result, got %d", len(view.results))
	}
	if view.results[0].Summary.ConfidenceLabel != "92.5%" {
		t.Errorf("unexpected rendered confidence %q", view.results[0].Summary.ConfidenceLabel)
	}
	if c.Current() == nil || c.Current().Text != "Hello" {
		t.Errorf("expected current result stored, got %+v", c.Current())
	}
	// Submission does not clear the selection.
	if c.Pending().Len() != 1 {
		t.Errorf("expected pending list untouched, got %d entries", c.Pending().Len())
	}
}

func TestSubmitServerDetailFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"file too large"}`))
	}))
	defer srv.Close()

	view := &recordingView{}
	c := New(api.NewClient(srv.URL), view, nil, api.ProcessOptions{})
	addFile(t, c, "a.pdf")

	c.Submit(context.Background())

	if len(view.notifications) != 1 || view.notifications[0] != "Error: file too large" {
		t.Errorf("expected notification %q, got %v", "Error: file too large", view.notifications)
	}
	if len(view.states) != 2 || view.states[1] != StateEmpty {
		t.Errorf("expected revert to empty state, got %v", view.states)
	}
	if len(view.processing) != 2 || view.processing[1] {
		t.Error("expected processing cleared after failure")
	}
	if c.Current() != nil {
		t.Error("expected no current result after failure")
	}
}

func TestSubmitEmptyResultsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	view := &recordingView{}
	c := New(api.NewClient(srv.URL), view, nil, api.ProcessOptions{})
	addFile(t, c, "a.pdf")

	c.Submit(context.Background())

	if len(view.notifications) != 1 || view.notifications[0] != "Error: "+ErrNoResults.Error() {
		t.Errorf("unexpected notifications %v", view.notifications)
	}
	if view.states[len(view.states)-1] != StateEmpty {
		t.Errorf("expected empty state, got %v", view.states)
	}
}

func TestSubmitOverwritesPreviousResult(t *testing.T) {
	texts := []string{"first", "second"}
	var call int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"ocr_result":{"text":"` + texts[call] + `"}}]}`))
		call++
	}))
	defer srv.Close()

	view := &recordingView{}
	c := New(api.NewClient(srv.URL), view, nil, api.ProcessOptions{})
	addFile(t, c, "a.pdf")

	c.Submit(context.Background())
	c.Submit(context.Background())

	if c.Current().Text != "second" {
		t.Errorf("expected fresh result to overwrite, got %q", c.Current().Text)
	}
}

func TestRenderFileListOnMutation(t *testing.T) {
	view := &recordingView{}
	c := New(api.NewClient("http://127.0.0.1:0"), view, nil, api.ProcessOptions{})

	addFile(t, c, "a.pdf")
	addFile(t, c, "b.pdf")
	c.Pending().Remove(0)

	if len(view.fileLists) != 3 {
		t.Fatalf("expected 3 re-renders, got %d", len(view.fileLists))
	}
	last := view.fileLists[2]
	if len(last) != 1 || last[0].Name != "b.pdf" {
		t.Errorf("unexpected final file list: %+v", last)
	}
}

func TestExportRequiresResult(t *testing.T) {
	view := &recordingView{}
	c := New(api.NewClient("http://127.0.0.1:0"), view, nil, api.ProcessOptions{})

	if err := c.Copy(); err != ErrNoCurrentResult {
		t.Errorf("expected ErrNoCurrentResult from Copy, got %v", err)
	}
	if _, err := c.Download(t.TempDir()); err != ErrNoCurrentResult {
		t.Errorf("expected ErrNoCurrentResult from Download, got %v", err)
	}
}

func TestDownloadWritesResultText(t *testing.T) {
	view := &recordingView{}
	c := New(api.NewClient("http://127.0.0.1:0"), view, nil, api.ProcessOptions{})
	c.current = &ocr.Result{Text: "extracted text"}

	dir := t.TempDir()
	path, err := c.Download(dir)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if filepath.Base(path) != DefaultDownloadName {
		t.Errorf("expected %s, got %s", DefaultDownloadName, filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read downloaded file: %v", err)
	}
	if string(data) != "extracted text" {
		t.Errorf("unexpected file content %q", data)
	}
	if len(view.notifications) != 1 {
		t.Errorf("expected save confirmation, got %v", view.notifications)
	}
}
