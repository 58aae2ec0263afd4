// Package testing provides a headless harness for trellis widget trees.
//
// # Quick Start
//
// Build a harness around a root widget, drive it with events and assert on
// widget states:
//
//	func TestButton(t *testing.T) {
//	    h := trellistest.NewHarness(t, widgets.Row().WithChild(myButton))
//
//	    h.Tap(trellistest.ByType("Button"))
//
//	    s := h.Find(trellistest.ByType("Button")).First()
//	    if !s.HasFocus() {
//	        t.Error("expected the button to take focus")
//	    }
//	}
//
// # Test Widgets
//
// ModularWidget assembles a widget from closures, and NewParent gives a
// correct single-child container whose closures can be swapped to break the
// container contract on purpose. Recorder wraps any widget and records the
// calls it receives.
//
// # Snapshot Testing
//
// Capture and compare the laid out tree and the painted scene:
//
//	snapshot := h.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/my_widget.snapshot.json")
//
// Update snapshots with:
//
//	TRELLIS_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Animation Testing
//
// Animate advances the harness FakeClock and delivers the elapsed time as
// the AnimFrame interval:
//
//	h.Animate(16 * time.Millisecond)
//
// # Warnings
//
// The harness installs itself as the global error handler, so configuration
// warnings can be asserted with Warnings.
package testing
