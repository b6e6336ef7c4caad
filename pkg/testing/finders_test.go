package testing

import (
	"testing"

	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/testing/internal/testbed"
	"github.com/go-drift/postboard/pkg/widgets"
)

func TestByType(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 0})

	result := tester.Find(ByType[widgets.Text]())
	if !result.Exists() {
		t.Fatal("expected to find Text widget")
	}
	text := result.Widget().(widgets.Text)
	if text.Content != "0" {
		t.Errorf("expected text '0', got %q", text.Content)
	}
}

func TestByText(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 42})

	if !tester.Find(ByText("42")).Exists() {
		t.Error("expected to find text '42'")
	}
	if tester.Find(ByText("99")).Exists() {
		t.Error("should not find text '99'")
	}
}

func TestByText_MatchesButtonLabel(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 0})

	result := tester.Find(ByText("+"))
	if !result.Exists() {
		t.Fatal("expected to find button labelled '+'")
	}
	if _, ok := result.Widget().(widgets.Button); !ok {
		t.Errorf("expected Button, got %T", result.Widget())
	}
}

func TestByTextContaining(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 123})

	if !tester.Find(ByTextContaining("12")).Exists() {
		t.Error("expected to find text containing '12'")
	}
	if tester.Find(ByTextContaining("99")).Exists() {
		t.Error("should not find text containing '99'")
	}
}

func TestByType_Counter(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 5})

	result := tester.Find(ByType[testbed.Counter]())
	if !result.Exists() {
		t.Fatal("expected to find Counter widget")
	}
}

func TestByKey(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.ColumnOf(
		widgets.TextField{ID: "title", OnChanged: func(string) {}},
		widgets.TextField{ID: "body", OnChanged: func(string) {}},
	))

	result := tester.Find(ByKey("body"))
	if result.Count() != 1 {
		t.Fatalf("expected 1 match, got %d", result.Count())
	}
	if id := result.Widget().(widgets.TextField).ID; id != "body" {
		t.Errorf("matched field %q, want body", id)
	}
}

func TestFinderResult_Count(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 0})

	result := tester.Find(ByType[widgets.Text]())
	if result.Count() != 1 {
		t.Errorf("expected 1 Text widget, got %d", result.Count())
	}
}

func TestFinderResult_FirstOrNil(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.TextOf("hello"))

	if tester.Find(ByText("hello")).FirstOrNil() == nil {
		t.Error("FirstOrNil should return element for existing text")
	}
	if tester.Find(ByText("missing")).FirstOrNil() != nil {
		t.Error("FirstOrNil should return nil for missing text")
	}
}

func TestFinderResult_First_PanicsOnEmpty(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.TextOf("hello"))

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected First() to panic on empty result")
		}
	}()
	tester.Find(ByText("missing")).First()
}

func TestByPredicate(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 7})

	result := tester.Find(ByPredicate(func(e core.Element) bool {
		if tw, ok := e.Widget().(widgets.Text); ok {
			return tw.Content == "7"
		}
		return false
	}))
	if !result.Exists() {
		t.Error("expected predicate to find text '7'")
	}
}

func TestDescendant(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 0})

	result := tester.Find(Descendant(
		ByType[widgets.Column](),
		ByType[widgets.Text](),
	))
	if !result.Exists() {
		t.Error("expected to find Text as descendant of Column")
	}
	if tester.Find(Descendant(ByType[widgets.Text](), ByType[widgets.Column]())).Exists() {
		t.Error("Column is not a descendant of Text")
	}
}

func TestAncestor(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 0})

	result := tester.Find(Ancestor(ByText("+"), ByType[testbed.Counter]()))
	if result.Count() != 1 {
		t.Errorf("expected Counter as the single ancestor, got %d", result.Count())
	}
}

func TestStateOf(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 3})

	state := StateOf[*testbed.CounterState](tester.Find(ByType[testbed.Counter]()))
	if state == nil {
		t.Fatal("expected CounterState")
	}
	if state.Count() != 3 {
		t.Errorf("count = %d, want 3", state.Count())
	}
	if s := StateOf[*testbed.CounterState](tester.Find(ByType[widgets.Text]())); s != nil {
		t.Error("expected nil state for a non-stateful element")
	}
}
