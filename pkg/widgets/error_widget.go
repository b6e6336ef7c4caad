package widgets

import (
	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/errors"
	"github.com/go-drift/postboard/pkg/rendering"
)

func init() {
	core.SetErrorWidgetBuilder(func(err *errors.BuildError) core.Widget {
		return ErrorWidget{Error: err}
	})
}

// ErrorWidget is painted in place of a widget whose build panicked.
type ErrorWidget struct {
	core.NodeBase
	// Error is the build error that occurred.
	Error *errors.BuildError
	// Verbose paints the full error instead of a short notice.
	Verbose bool
}

func (e ErrorWidget) ChildWidgets() []core.Widget { return nil }

// Message returns the text the widget paints.
func (e ErrorWidget) Message() string {
	switch {
	case e.Error == nil:
		return "Unknown error"
	case e.Verbose:
		return e.Error.Error()
	default:
		return "An error occurred in " + e.Error.Widget
	}
}

// Paint draws the message in red.
func (e ErrorWidget) Paint(c *rendering.Canvas) {
	c.DrawText("! "+e.Message(), rendering.TextStyle{Color: rendering.ColorRed, Bold: true})
}
