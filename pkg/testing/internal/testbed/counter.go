// Package testbed provides internal test widgets for the testing framework.
package testbed

import (
	"fmt"

	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/widgets"
)

// Counter is a stateful widget that displays a count and increments when
// its button is tapped.
type Counter struct {
	core.StatefulBase
	Initial int
	OnTap   func(count int)
}

func (c Counter) CreateState() core.State {
	return &CounterState{}
}

// CounterState holds the current count.
type CounterState struct {
	core.StateBase
	count int
	onTap func(int)
}

func (s *CounterState) InitState() {
	w := s.Element().Widget().(Counter)
	s.count = w.Initial
	s.onTap = w.OnTap
}

// Count returns the current count.
func (s *CounterState) Count() int { return s.count }

func (s *CounterState) Build(ctx core.BuildContext) core.Widget {
	return widgets.ColumnOf(
		widgets.TextOf(fmt.Sprintf("%d", s.count)),
		widgets.ButtonOf("+", func() {
			s.SetState(func() {
				s.count++
			})
			if s.onTap != nil {
				s.onTap(s.count)
			}
		}),
	)
}

func (s *CounterState) DidUpdateWidget(oldWidget core.StatefulWidget) {
	if w, ok := s.Element().Widget().(Counter); ok {
		s.onTap = w.OnTap
	}
}
