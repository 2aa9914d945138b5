package workflow

import (
	"github.com/ocrdesk/ocrdesk/internal/render"
	"github.com/ocrdesk/ocrdesk/internal/selection"
)

// State is the visible state of the client.
type State string

const (
	// StateEmpty is the idle state: no submission in flight, no result shown.
	StateEmpty State = "empty"
	// StateLoading is shown while a submission is in flight.
	StateLoading State = "loading"
	// StateResults is shown after a successful submission.
	StateResults State = "results"
)

// View receives the side effects of the workflow. Implementations render
// to a terminal, an HTTP response, or a test recorder; the controller
// never touches presentation directly.
type View interface {
	// SetState switches the visible state.
	SetState(s State)

	// SetProcessing toggles the trigger control. true disables it and
	// shows the processing label; false restores the default label/icon.
	SetProcessing(active bool)

	// RenderFileList redraws the pending-file list. Called on every
	// list mutation.
	RenderFileList(files []selection.File)

	// ShowResult renders the current result. elapsed is the wall-clock
	// processing time in seconds, one decimal place.
	ShowResult(vm render.ViewModel, elapsed string)

	// Notify surfaces a short user-facing message.
	Notify(msg string)
}
