// Package workflow owns the upload-and-render state machine: the pending
// list, the single current-result slot, and the submission workflow
// against the OCR backend.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ocrdesk/ocrdesk/internal/api"
	"github.com/ocrdesk/ocrdesk/internal/ocr"
	"github.com/ocrdesk/ocrdesk/internal/render"
	"github.com/ocrdesk/ocrdesk/internal/selection"
)

// ErrNoResults is returned when the backend answered 2xx but the payload
// carried no usable document results.
var ErrNoResults = errors.New("no results returned")

// Controller drives the submission workflow. It is single-owner: all
// methods are called from one goroutine reacting to user actions, and at
// most one submission is in flight at a time.
type Controller struct {
	client  *api.Client
	view    View
	logger  *slog.Logger
	opts    api.ProcessOptions
	pending *selection.List

	// current is the single current-result slot. A fresh successful
	// submission overwrites it; failures leave it untouched.
	current   *ocr.Result
	startedAt time.Time

	now func() time.Time
}

// New creates a Controller wired to the given backend client and view.
func New(client *api.Client, view View, logger *slog.Logger, opts api.ProcessOptions) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		client:  client,
		view:    view,
		logger:  logger,
		opts:    opts,
		pending: selection.NewList(),
		now:     time.Now,
	}
	c.pending.OnChange(func() {
		view.RenderFileList(c.pending.Files())
	})
	return c
}

// Pending returns the pending-file list. Mutations re-render the visible
// list through the view automatically.
func (c *Controller) Pending() *selection.List {
	return c.pending
}

// Current returns the current result, or nil when none exists.
func (c *Controller) Current() *ocr.Result {
	return c.current
}

// Submit sends the pending files to the backend and renders the first
// document's result. With an empty pending list it is a no-op: no network
// call, no state change. The pending list is not cleared on success; a
// fresh result simply overwrites the previous one.
func (c *Controller) Submit(ctx context.Context) {
	if c.pending.Len() == 0 {
		return
	}

	c.view.SetProcessing(true)
	c.view.SetState(StateLoading)
	c.startedAt = c.now()

	// Processing UI is cleared on every exit path.
	defer c.view.SetProcessing(false)

	resp, err := c.client.Process(ctx, c.pending.Files(), c.opts)
	if err == nil {
		if len(resp.Results) == 0 || resp.Results[0].OCRResult == nil {
			err = ErrNoResults
		}
	}
	if err != nil {
		c.logger.Error("submission failed", "files", c.pending.Len(), "error", err)
		c.view.Notify("Error: " + err.Error())
		c.view.SetState(StateEmpty)
		return
	}

	elapsed := fmt.Sprintf("%.1f", c.now().Sub(c.startedAt).Seconds())
	c.current = resp.Results[0].OCRResult

	if extra := len(resp.Results) - 1; extra > 0 {
		// Only the first document's result is rendered.
		c.logger.Info("additional document results not rendered", "count", extra)
	}
	c.logger.Info("submission complete",
		"files", c.pending.Len(),
		"pages", c.current.EffectivePageCount(),
		"confidence", c.current.Confidence(),
		"elapsed_seconds", elapsed)

	c.view.ShowResult(render.Build(c.current), elapsed)
	c.view.SetState(StateResults)
}
