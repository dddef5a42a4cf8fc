package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState is the backend state visible to a single window.
type WindowState struct {
	Bundle
	Controller *stream.Controller
	// Invalidate requests a new frame from any goroutine.
	Invalidate func()
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
		Invalidate: win.Invalidate,
	}
}

// Bundle is the application-wide backend state shared by all windows.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle(ds *Datasource) Bundle {
	return Bundle{
		Datasource: ds,
	}
}
