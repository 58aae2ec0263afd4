package testing

import (
	"image"
	"testing"
	"time"

	"github.com/go-drift/trellis/pkg/config"
	"github.com/go-drift/trellis/pkg/core"
	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
)

const (
	// DefaultTestWidth is the default logical width of the test window.
	DefaultTestWidth = 400
	// DefaultTestHeight is the default logical height of the test window.
	DefaultTestHeight = 400
)

// Harness drives a RenderRoot without a platform shell. It captures the
// warnings reported through the errors package and the signals emitted by
// the tree.
type Harness struct {
	t        testing.TB
	root     *core.RenderRoot
	clock    *FakeClock
	signals  []core.Signal
	warnings []*errors.TreeError
	panics   []*errors.PanicError
}

type harnessOptions struct {
	size   graphics.Size
	config *config.Config
	policy core.WindowSizePolicy
}

// Option configures a Harness.
type Option func(*harnessOptions)

// WithSize sets the window size.
func WithSize(size graphics.Size) Option {
	return func(o *harnessOptions) { o.size = size }
}

// WithConfig sets the runtime configuration. Its window size is replaced by
// the harness size.
func WithConfig(cfg *config.Config) Option {
	return func(o *harnessOptions) { o.config = cfg }
}

// WithContentSize lays the root out unconstrained and sizes the window to it.
func WithContentSize() Option {
	return func(o *harnessOptions) { o.policy = core.SizePolicyContent }
}

// NewHarness builds a tree around root and runs the first layout. The
// harness replaces the global error handler until the test ends.
func NewHarness(t testing.TB, root core.Widget, opts ...Option) *Harness {
	t.Helper()
	o := harnessOptions{size: graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}}
	for _, opt := range opts {
		opt(&o)
	}
	cfg := config.Default()
	if o.config != nil {
		c := *o.config
		cfg = &c
	}
	cfg.Window.Width, cfg.Window.Height = o.size.Width, o.size.Height

	h := &Harness{t: t, clock: NewFakeClock()}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })

	h.root = core.NewRenderRoot(root, core.Options{Config: cfg, SizePolicy: o.policy})
	h.root.Layout()
	h.drain()
	return h
}

// HandleWarning records a warning.
func (h *Harness) HandleWarning(err *errors.TreeError) { h.warnings = append(h.warnings, err) }

// HandlePanic records a recovered panic.
func (h *Harness) HandlePanic(err *errors.PanicError) { h.panics = append(h.panics, err) }

func (h *Harness) drain() {
	for {
		s, ok := h.root.PopSignal()
		if !ok {
			return
		}
		h.signals = append(h.signals, s)
	}
}

// Root returns the driven RenderRoot.
func (h *Harness) Root() *core.RenderRoot { return h.root }

// Clock returns the clock used by Animate.
func (h *Harness) Clock() *FakeClock { return h.clock }

// State returns the state of a registered widget, failing the test if there
// is none.
func (h *Harness) State(id core.WidgetID) *core.WidgetState {
	h.t.Helper()
	s, ok := h.root.WidgetState(id)
	if !ok {
		h.t.Fatalf("no widget with id %s", id)
	}
	return s
}

// Edit mutates the root widget, then runs layout.
func (h *Harness) Edit(fn func(*core.WidgetMut[core.Widget])) {
	h.root.Edit(fn)
	h.root.Layout()
	h.drain()
}

// Layout runs a pending layout pass.
func (h *Harness) Layout() {
	h.root.Layout()
	h.drain()
}

// Scene paints the tree.
func (h *Harness) Scene() *graphics.Scene {
	scene := h.root.Paint()
	h.drain()
	return scene
}

// Render paints and rasterizes the tree.
func (h *Harness) Render() *image.RGBA {
	return h.Scene().Rasterize(h.root.Size())
}

// Accessibility builds the accessibility tree.
func (h *Harness) Accessibility() *core.AccessTree {
	tree := h.root.Accessibility()
	h.drain()
	return tree
}

// Resize changes the window size.
func (h *Harness) Resize(size graphics.Size) {
	h.root.HandleWindowEvent(core.WindowResize{Size: size})
	h.root.Layout()
	h.drain()
}

// Animate advances the clock by d and delivers an animation frame.
func (h *Harness) Animate(d time.Duration) {
	h.clock.Advance(d)
	h.root.Animate(h.clock.Tick())
	h.drain()
}

// PointerEvent routes ev and reports whether it was handled.
func (h *Harness) PointerEvent(ev core.Event) bool {
	handled := h.root.HandlePointerEvent(ev)
	h.drain()
	return handled
}

// MouseMove moves the pointer to the window position p.
func (h *Harness) MouseMove(p graphics.Offset) bool {
	return h.PointerEvent(core.PointerMove{Position: p})
}

// MouseLeave moves the pointer out of the window.
func (h *Harness) MouseLeave() bool {
	return h.PointerEvent(core.PointerLeave{})
}

// KeyPress sends a named key along the focus path.
func (h *Harness) KeyPress(key string) bool {
	handled := h.root.HandleTextEvent(core.TextEvent{Key: key})
	h.drain()
	return handled
}

// TypeText sends text along the focus path.
func (h *Harness) TypeText(text string) bool {
	handled := h.root.HandleTextEvent(core.TextEvent{Text: text})
	h.drain()
	return handled
}

// Signals returns and clears the signals emitted so far.
func (h *Harness) Signals() []core.Signal {
	s := h.signals
	h.signals = nil
	return s
}

// Warnings returns the warnings reported so far.
func (h *Harness) Warnings() []*errors.TreeError { return h.warnings }

// Panics returns the panics recovered through the errors package so far.
func (h *Harness) Panics() []*errors.PanicError { return h.panics }
