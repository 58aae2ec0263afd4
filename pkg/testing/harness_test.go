package testing

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
	"github.com/go-drift/trellis/pkg/testing/internal/testbed"
)

func TestNewHarness_Defaults(t *testing.T) {
	h := NewHarness(t, &testbed.LayoutBox{Width: 10, Height: 10})

	if got := h.Root().Size(); got != (graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}) {
		t.Errorf("expected default size, got %v", got)
	}
	root := h.Root().RootState()
	if root.NeedsLayout() {
		t.Error("expected the first layout to have run")
	}
	if root.Size() != h.Root().Size() {
		t.Errorf("expected the root to fill the window, got %v", root.Size())
	}
}

func TestNewHarness_ContentSize(t *testing.T) {
	h := NewHarness(t, &testbed.LayoutBox{Width: 30, Height: 20}, WithContentSize())

	if got := h.Root().Size(); got != (graphics.Size{Width: 30, Height: 20}) {
		t.Errorf("expected the window to follow the root, got %v", got)
	}
}

func TestAnimate_DeliversElapsedTime(t *testing.T) {
	w := &testbed.Animated{Frames: 2}
	h := NewHarness(t, w)

	h.Animate(16 * time.Millisecond)
	h.Animate(10 * time.Millisecond)
	h.Animate(10 * time.Millisecond)

	if len(w.Elapsed) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(w.Elapsed))
	}
	if w.Elapsed[0] != 16*time.Millisecond || w.Elapsed[1] != 10*time.Millisecond {
		t.Errorf("unexpected intervals %v", w.Elapsed)
	}
}

func TestTap_ClicksAndFocuses(t *testing.T) {
	c := &testbed.Counter{Size: graphics.Size{Width: 50, Height: 50}}
	h := NewHarness(t, c)

	if err := h.Tap(ByType("Counter")); err != nil {
		t.Fatal(err)
	}
	if c.Clicks != 1 {
		t.Errorf("expected 1 click, got %d", c.Clicks)
	}
	if h.Root().FocusedWidget() != h.Root().RootID() {
		t.Error("expected the counter to take focus")
	}

	var sawCursor bool
	for _, s := range h.Signals() {
		if sc, ok := s.(core.SignalSetCursor); ok && sc.Cursor == core.CursorPointer {
			sawCursor = true
		}
	}
	if !sawCursor {
		t.Error("expected a pointer cursor signal")
	}

	if !h.TypeText("a") {
		t.Error("expected the text event to be handled")
	}
	if len(c.Keys) != 1 || c.Keys[0] != "a" {
		t.Errorf("unexpected keys %v", c.Keys)
	}
}

func TestTap_NoMatch(t *testing.T) {
	h := NewHarness(t, &testbed.LayoutBox{})
	if err := h.Tap(ByType("Missing")); err == nil {
		t.Error("expected an error for a finder without matches")
	}
}

func TestFinders(t *testing.T) {
	h := NewHarness(t, NewParent(&testbed.LayoutBox{Width: 5, Height: 5}))

	if n := h.Find(ByType("LayoutBox")).Count(); n != 1 {
		t.Errorf("expected 1 LayoutBox, got %d", n)
	}
	if !h.Find(ByID(h.Root().RootID())).Exists() {
		t.Error("expected the root to be found by id")
	}
	all := h.Find(ByPredicate("any", func(*core.WidgetState) bool { return true }))
	if all.Count() != 2 || all.First().ID() != h.Root().RootID() {
		t.Errorf("expected pre-order [root, child], got %v", all.IDs())
	}
}

func TestRecorder_SeesPasses(t *testing.T) {
	w, rec := NewRecorder(&testbed.LayoutBox{Width: 5, Height: 5})
	h := NewHarness(t, w)
	h.Scene()

	lcs := rec.Lifecycles()
	if len(lcs) == 0 {
		t.Fatal("expected lifecycle records")
	}
	if _, ok := lcs[0].(core.WidgetAdded); !ok {
		t.Errorf("expected WidgetAdded first, got %T", lcs[0])
	}
	if rec.Count(RecordLayout) != 1 || rec.Count(RecordPaint) != 1 {
		t.Errorf("expected one layout and one paint, got %d and %d", rec.Count(RecordLayout), rec.Count(RecordPaint))
	}
}

func TestWarnings_NonFiniteSize(t *testing.T) {
	w := NewModularWidget(struct{}{}).WithLayout(func(_ *struct{}, _ *core.LayoutCtx, _ layout.BoxConstraints) graphics.Size {
		return graphics.Size{Width: math.Inf(1), Height: 1}
	})
	h := NewHarness(t, w)

	warnings := h.Warnings()
	if len(warnings) == 0 {
		t.Fatal("expected a warning")
	}
	if warnings[0].Kind != errors.KindLayout {
		t.Errorf("expected a layout warning, got %v", warnings[0].Kind)
	}
}

func TestCaptureSnapshot_TreeAndOps(t *testing.T) {
	h := NewHarness(t, &testbed.LayoutBox{Color: graphics.ColorRed}, WithSize(graphics.Size{Width: 20, Height: 10}))

	snap := h.CaptureSnapshot()
	if snap.Tree == nil || snap.Tree.Type != "LayoutBox" || snap.Tree.ID != "LayoutBox#0" {
		t.Fatalf("unexpected tree %+v", snap.Tree)
	}
	if snap.Tree.Size != [2]float64{20, 10} {
		t.Errorf("unexpected size %v", snap.Tree.Size)
	}
	var fills int
	for _, op := range snap.DisplayOps {
		if op.Op == "fillRect" {
			fills++
		}
	}
	if fills != 1 {
		t.Errorf("expected one fillRect, got %d", fills)
	}
	if diff := snap.Diff(h.CaptureSnapshot()); diff != "" {
		t.Errorf("expected identical snapshots, got:\n%s", diff)
	}
}

type fakeT struct {
	testing.TB
	errors []string
}

func (f *fakeT) Errorf(format string, args ...any) { f.errors = append(f.errors, format) }

func TestSnapshot_MatchesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.snapshot.json")
	h := NewHarness(t, &testbed.LayoutBox{Color: graphics.ColorBlue})
	snap := h.CaptureSnapshot()
	if err := snap.UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	ft := &fakeT{TB: t}
	snap.MatchesFile(ft, path)
	if len(ft.errors) != 0 {
		t.Errorf("expected a match, got %v", ft.errors)
	}

	h.Resize(graphics.Size{Width: 100, Height: 100})
	h.CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.errors) != 1 {
		t.Errorf("expected a mismatch after resize, got %d errors", len(ft.errors))
	}
}

func TestFakeClock_Tick(t *testing.T) {
	c := NewFakeClock()
	c.Advance(5 * time.Millisecond)
	c.Advance(5 * time.Millisecond)
	if d := c.Tick(); d != 10*time.Millisecond {
		t.Errorf("expected 10ms, got %v", d)
	}
	if d := c.Tick(); d != 0 {
		t.Errorf("expected 0 after a tick, got %v", d)
	}
}
