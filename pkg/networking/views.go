package networking

import (
	"fmt"

	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/posts"
	"github.com/go-drift/postboard/pkg/rendering"
	"github.com/go-drift/postboard/pkg/widgets"
)

// Screen text.
const (
	LoadingText      = "Loading..."
	HeaderText       = "Post list"
	FooterText       = "End of list"
	EmptyText        = "No posts found"
	RetryLabel       = "Retry"
	AddLabel         = "Add"
	AddingLabel      = "Adding..."
	TitlePlaceholder = "Post title"
	BodyPlaceholder  = "Post body"
)

// Text field ids, usable as finder keys.
const (
	TitleFieldID = "title"
	BodyFieldID  = "body"
)

// SeparatorHeight is the gap between post cards.
const SeparatorHeight = 16

var (
	successStyle = rendering.TextStyle{Color: rendering.ColorGreen}
	failureStyle = rendering.TextStyle{Color: rendering.ColorRed}
	titleStyle   = rendering.TextStyle{Bold: true}
)

// listView maps a list state to its presentation tree.
func listView(s ListState, onRefresh, onRetry func()) core.Widget {
	header := widgets.Text{Content: HeaderText, Style: widgets.HeaderStyle}
	switch s.Phase {
	case PhaseLoading:
		return widgets.ColumnOf(
			widgets.ActivityIndicator{Size: widgets.ActivityIndicatorLarge},
			widgets.Text{Content: LoadingText, Style: widgets.HeaderStyle},
		)
	case PhaseError:
		return widgets.ColumnOf(
			header,
			widgets.Text{Content: "Could not load posts: " + describeError(s.Err), Style: failureStyle},
			widgets.ButtonOf(RetryLabel, onRetry),
		)
	}
	cards := make([]core.Widget, 0, len(s.Posts))
	for _, p := range s.Posts {
		cards = append(cards, postCard(p))
	}
	return widgets.ListView{
		Header:     header,
		Children:   cards,
		Separator:  widgets.VSpace(SeparatorHeight),
		Empty:      widgets.Text{Content: EmptyText, Style: widgets.MutedStyle},
		Footer:     widgets.Text{Content: FooterText, Style: widgets.HeaderStyle},
		Refreshing: s.Phase == PhaseRefreshing,
		OnRefresh:  onRefresh,
	}
}

func postCard(p posts.Post) core.Widget {
	return widgets.Card{
		ID: p.ID,
		Child: widgets.ColumnOf(
			widgets.Text{Content: p.Title, Style: titleStyle},
			widgets.TextOf(p.Body),
		),
	}
}

// submitView maps a submit state to its presentation tree.
func submitView(s SubmitState, onTitle, onBody func(string), onSubmit func()) core.Widget {
	label := AddLabel
	if s.Busy {
		label = AddingLabel
	}
	var status core.Widget
	switch {
	case s.Err != nil:
		status = widgets.Text{Content: "Could not add post: " + describeError(s.Err), Style: failureStyle}
	case s.Result != nil:
		status = widgets.Text{Content: fmt.Sprintf("Added post #%d", s.Result.ID), Style: successStyle}
	}
	return widgets.ColumnOf(
		widgets.TextField{
			ID:          TitleFieldID,
			Value:       s.Draft.Title,
			Placeholder: TitlePlaceholder,
			OnChanged:   onTitle,
			Disabled:    s.Busy,
		},
		widgets.TextField{
			ID:          BodyFieldID,
			Value:       s.Draft.Body,
			Placeholder: BodyPlaceholder,
			OnChanged:   onBody,
			Disabled:    s.Busy,
		},
		widgets.ButtonOf(label, onSubmit).WithDisabled(s.Busy),
		status,
	)
}
