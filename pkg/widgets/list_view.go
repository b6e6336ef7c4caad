package widgets

import (
	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/rendering"
)

// ListView displays a header, a list of items and a footer.
//
// Separator, when set, is placed between consecutive items. When Children is
// empty, Empty is shown in place of the items; the header and footer remain.
//
//	ListView{
//	    Header:    Text{Content: "Post list"},
//	    Children:  cards,
//	    Separator: VSpace(16),
//	    Empty:     Text{Content: "No posts found"},
//	    Footer:    Text{Content: "End of list"},
//	    OnRefresh: s.Refresh,
//	}
//
// While Refreshing is true a small indicator is shown under the header and
// the current items stay visible.
type ListView struct {
	core.NodeBase

	Header    core.Widget
	Children  []core.Widget
	Separator core.Widget
	Empty     core.Widget
	Footer    core.Widget

	// Refreshing shows the refresh indicator.
	Refreshing bool
	// OnRefresh is called on a pull-to-refresh gesture.
	OnRefresh func()
}

// RefreshIndicatorText labels the indicator shown while refreshing.
const RefreshIndicatorText = "Refreshing..."

func (l ListView) ChildWidgets() []core.Widget {
	out := make([]core.Widget, 0, 2*len(l.Children)+4)
	if l.Header != nil {
		out = append(out, l.Header)
	}
	if l.Refreshing {
		out = append(out, Text{Content: RefreshIndicatorText, Style: rendering.TextStyle{
			Color: rendering.ColorBlue,
			Align: rendering.TextAlignCenter,
		}})
	}
	if len(l.Children) == 0 {
		if l.Empty != nil {
			out = append(out, l.Empty)
		}
	}
	for i, child := range l.Children {
		if i > 0 && l.Separator != nil {
			out = append(out, l.Separator)
		}
		out = append(out, child)
	}
	if l.Footer != nil {
		out = append(out, l.Footer)
	}
	return out
}

// HandleRefresh calls OnRefresh unless a refresh is already showing.
func (l ListView) HandleRefresh() bool {
	if l.Refreshing || l.OnRefresh == nil {
		return false
	}
	l.OnRefresh()
	return true
}
