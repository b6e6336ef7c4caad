// Package testing provides a widget testing framework for postboard.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestLister(t *testing.T) {
//	    tester := drifttest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(networking.PostLister{Client: fake})
//
//	    // Wait for the background fetch to be dispatched back
//	    err := tester.PumpUntilFound(drifttest.ByText("End of list"), time.Second)
//
//	    // Simulate input
//	    tester.Refresh(drifttest.ByType[widgets.ListView]())
//	    tester.Pump()
//	}
//
// The tester registers itself as the platform dispatcher, so callbacks
// scheduled with platform.Dispatch or platform.Async queue on the tester
// and run on the next Pump.
//
// # Snapshot Testing
//
// Capture and compare the element tree and painted frame:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/lister.snapshot.json")
//
// Update snapshots with:
//
//	POSTBOARD_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drifttest "github.com/go-drift/postboard/pkg/testing"
package testing
