package networking

import (
	"strings"
	"testing"

	"github.com/go-drift/postboard/pkg/postsapi"
	drifttest "github.com/go-drift/postboard/pkg/testing"
)

func TestNetworkingApp_SubmitterAndListerAreIndependent(t *testing.T) {
	fx, client := newFixture(t, 5)
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(NetworkingApp{Client: client})

	lister := listerState(t, tester)
	submitter := submitterState(t, tester)
	pumpUntilPhase(t, tester, lister, PhaseReady)
	before := postIDs(lister.Value().Posts)

	submitter.UpdateTitle("Hello")
	submitter.UpdateBody("World")
	tester.Pump()
	submitter.Submit()
	if err := tester.PumpUntilFound(drifttest.ByTextContaining("Added post #"), settle); err != nil {
		t.Fatalf("%v\n%s", err, tester.RenderText())
	}

	// The new post is not pushed into the list.
	if got := postIDs(lister.Value().Posts); len(got) != len(before) {
		t.Errorf("list changed after submit: %v -> %v", before, got)
	}
	if fx.store.Len() != 6 {
		t.Errorf("store has %d posts, want 6", fx.store.Len())
	}

	lister.Refresh()
	pumpUntilPhase(t, tester, lister, PhaseReady)
	if !tester.Find(drifttest.Descendant(drifttest.ByType[PostLister](), drifttest.ByText("Hello"))).Exists() {
		t.Errorf("refresh should list the stored post:\n%s", tester.RenderText())
	}
}

func TestNetworkingApp_Frame(t *testing.T) {
	_, client := newFixture(t, postsapi.DefaultSeed)
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.SetColumns(200)
	tester.PumpWidget(NetworkingApp{Client: client, InitialLimit: 2, RefreshLimit: 4})

	lister := listerState(t, tester)
	pumpUntilPhase(t, tester, lister, PhaseReady)

	frame := tester.RenderText()
	order := []string{TitlePlaceholder, BodyPlaceholder, "[ " + AddLabel + " ]", HeaderText, lister.Value().Posts[1].Title, FooterText}
	last := -1
	for _, want := range order {
		i := strings.Index(frame, want)
		if i < 0 || i < last {
			t.Fatalf("%q missing or out of order in:\n%s", want, frame)
		}
		last = i
	}

	lister.Refresh()
	pumpUntilPhase(t, tester, lister, PhaseReady)
	if got := len(lister.Value().Posts); got != 4 {
		t.Errorf("refresh limit: got %d posts, want 4", got)
	}
	if lister.Value().Limit != 4 {
		t.Errorf("limit = %d", lister.Value().Limit)
	}
}
