package core

import (
	"slices"
	"time"

	"github.com/go-drift/trellis/pkg/config"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
)

// WindowSizePolicy selects the constraints given to the root widget.
type WindowSizePolicy int

const (
	// SizePolicyUser lays the root out to fill the window exactly.
	SizePolicyUser WindowSizePolicy = iota
	// SizePolicyContent lets the root pick its size; the window follows it.
	SizePolicyContent
)

// Options configures a RenderRoot.
type Options struct {
	// Config provides the window size and theme. Nil means config.Default().
	Config *config.Config
	// SizePolicy defaults to SizePolicyUser.
	SizePolicy WindowSizePolicy
	// Scale is the device scale factor. Zero means 1.
	Scale float64
}

// RenderRoot owns a widget tree and drives its passes.
//
// The platform shell feeds it window, pointer and text events and drains
// the resulting signals with PopSignal. RenderRoot is not safe for
// concurrent use.
type RenderRoot struct {
	root   *WidgetPod[Widget]
	window WidgetState
	global globalState

	size   graphics.Size
	policy WindowSizePolicy
	scale  float64

	cursor     CursorIcon
	pointer    graphics.Offset
	hasPointer bool
	focusChain []WidgetID
	textFields []WidgetID
}

// NewRenderRoot wraps root and delivers WidgetAdded to the whole tree.
func NewRenderRoot(root Widget, opts Options) *RenderRoot {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	r := &RenderRoot{
		root:   Boxed(root),
		window: WidgetState{debugName: "RenderRoot"},
		global: globalState{arena: newStateArena(), config: cfg},
		size:   graphics.Size{Width: cfg.Window.Width, Height: cfg.Window.Height},
		policy: opts.SizePolicy,
		scale:  scale,
	}
	r.runLifecycle(WidgetAdded{})
	r.postEvent()
	return r
}

// RootID returns the id of the root widget.
func (r *RenderRoot) RootID() WidgetID { return r.root.ID() }

// RootState returns the state of the root widget.
func (r *RenderRoot) RootState() *WidgetState { return &r.root.state }

// WidgetState returns the state of a registered widget.
func (r *RenderRoot) WidgetState(id WidgetID) (*WidgetState, bool) {
	s := r.global.arena.get(id)
	return s, s != nil
}

// WidgetCount returns the number of registered widgets.
func (r *RenderRoot) WidgetCount() int { return r.global.arena.len() }

// Config returns the runtime configuration.
func (r *RenderRoot) Config() *config.Config { return r.global.config }

// Size returns the window size.
func (r *RenderRoot) Size() graphics.Size { return r.size }

// Scale returns the device scale factor.
func (r *RenderRoot) Scale() float64 { return r.scale }

// Cursor returns the cursor last signalled to the platform.
func (r *RenderRoot) Cursor() CursorIcon { return r.cursor }

// FocusedWidget returns the focused widget, or zero.
func (r *RenderRoot) FocusedWidget() WidgetID { return r.global.focused }

// FocusChain returns the focusable widgets in tab order.
func (r *RenderRoot) FocusChain() []WidgetID { return slices.Clone(r.focusChain) }

// TextFields returns the widgets that registered for text input.
func (r *RenderRoot) TextFields() []WidgetID { return slices.Clone(r.textFields) }

// NeedsLayout reports whether a layout pass is pending.
func (r *RenderRoot) NeedsLayout() bool {
	return r.window.needsLayout || r.root.state.needsLayout
}

// NeedsPaint reports whether a paint pass is pending.
func (r *RenderRoot) NeedsPaint() bool {
	return r.window.needsPaint || r.root.state.needsPaint
}

// PopSignal removes and returns the oldest pending signal.
func (r *RenderRoot) PopSignal() (Signal, bool) {
	if len(r.global.signals) == 0 {
		return nil, false
	}
	s := r.global.signals[0]
	r.global.signals = r.global.signals[1:]
	return s, true
}

func (r *RenderRoot) emit(s Signal) {
	r.global.signals = append(r.global.signals, s)
}

// HitTest returns the widgets under the window position p, outermost first.
func (r *RenderRoot) HitTest(p graphics.Offset) []WidgetID {
	return hitTest(r.global.arena, &r.root.state, p)
}

// HandleWindowEvent applies a window notification.
func (r *RenderRoot) HandleWindowEvent(ev WindowEvent) {
	switch e := ev.(type) {
	case WindowResize:
		r.size = e.Size
		r.window.needsLayout = true
		r.root.state.needsLayout = true
	case WindowRescale:
		r.scale = e.Scale
		r.window.needsPaint = true
	}
	r.postEvent()
}

// HandlePointerEvent routes a pointer event and reports whether a widget
// handled it.
func (r *RenderRoot) HandlePointerEvent(ev Event) bool {
	if pos, ok := pointerPosition(ev); ok {
		r.pointer, r.hasPointer = pos, true
	} else if _, ok := ev.(PointerLeave); ok {
		r.hasPointer = false
	}
	r.Layout()
	handled := r.dispatch(ev)
	r.postEvent()
	return handled
}

// HandleTextEvent routes keyboard input along the focus path. An unhandled
// Tab moves focus.
func (r *RenderRoot) HandleTextEvent(ev TextEvent) bool {
	r.Layout()
	handled := r.dispatch(ev)
	if !handled && ev.Key == "Tab" {
		r.window.requestFocus = &focusChange{kind: focusNext}
		handled = true
	}
	r.postEvent()
	return handled
}

func (r *RenderRoot) dispatch(ev Event) bool {
	r.root.state.visited = false
	r.window.hasCursor = false
	ctx := &EventCtx{mutCtx: mutCtx{ctxBase: ctxBase{state: &r.window, global: &r.global}}}
	r.root.OnEvent(ctx, ev)
	if _, ok := ev.(TextEvent); !ok {
		icon, ok := r.window.Cursor()
		if !ok {
			icon = CursorDefault
		}
		if icon != r.cursor {
			r.cursor = icon
			r.emit(SignalSetCursor{Cursor: icon})
		}
	}
	return ctx.isHandled
}

// Animate delivers an AnimFrame to the widgets that requested one.
func (r *RenderRoot) Animate(interval time.Duration) {
	if !r.window.requestAnim && !r.root.state.requestAnim {
		return
	}
	r.window.requestAnim = false
	r.runLifecycle(AnimFrame{Interval: interval})
	r.postEvent()
}

// Edit passes a handle to the root widget to fn and processes the changes
// it made.
func (r *RenderRoot) Edit(fn func(*WidgetMut[Widget])) {
	var scratch WidgetState
	editPod(&scratch, r.root, &r.global, fn)
	r.window.MergeUp(&scratch)
	r.postEvent()
}

// FocusNext moves focus along the focus chain.
func (r *RenderRoot) FocusNext(forward bool) {
	kind := focusNext
	if !forward {
		kind = focusPrevious
	}
	r.window.requestFocus = &focusChange{kind: kind}
	r.postEvent()
}

func (r *RenderRoot) runLifecycle(ev LifeCycle) {
	r.root.state.visited = false
	ctx := &LifeCycleCtx{mutCtx: mutCtx{ctxBase: ctxBase{state: &r.window, global: &r.global}}}
	r.root.Lifecycle(ctx, ev)
}

// postEvent runs the lifecycle passes implied by the flags raised so far and
// emits the matching signals.
func (r *RenderRoot) postEvent() {
	if r.window.childrenChanged {
		r.window.childrenChanged = false
		r.runLifecycle(RouteWidgetAdded{})
	}
	if r.window.childrenDisabledChanged {
		r.window.childrenDisabledChanged = false
		r.runLifecycle(RouteDisabledChanged{})
	}
	if r.window.updateFocusChain {
		r.rebuildFocusChain()
	}
	if len(r.window.textRegistrations) > 0 {
		for _, reg := range r.window.textRegistrations {
			r.textFields = append(r.textFields, reg.ID)
			r.emit(SignalTextFieldAdded{ID: reg.ID})
		}
		r.window.textRegistrations = nil
	}

	if req := r.window.requestFocus; req != nil {
		r.window.requestFocus = nil
		r.applyFocusChange(*req)
	}
	if f := r.global.focused; !f.IsZero() {
		if s := r.global.arena.get(f); s == nil || s.IsDisabled() {
			r.setFocus(0)
		}
	}

	if r.window.requestAnim || r.root.state.requestAnim {
		r.emit(SignalRequestAnimFrame{})
	}
	if r.NeedsLayout() || r.NeedsPaint() {
		r.emit(SignalRequestRedraw{})
	}
}

func (r *RenderRoot) rebuildFocusChain() {
	r.window.updateFocusChain = false
	r.window.focusChain = r.window.focusChain[:0]
	r.runLifecycle(BuildFocusChain{})
	r.focusChain = slices.Clone(r.window.focusChain)
}

func (r *RenderRoot) applyFocusChange(req focusChange) {
	next := r.global.focused
	switch req.kind {
	case focusTo:
		next = req.id
	case focusResign:
		if next == req.id {
			next = 0
		}
	case focusNext, focusPrevious:
		if r.window.updateFocusChain {
			r.rebuildFocusChain()
		}
		next = r.focusStep(req.kind == focusNext)
	}
	if s := r.global.arena.get(next); !next.IsZero() && (s == nil || s.IsDisabled()) {
		return
	}
	r.setFocus(next)
}

func (r *RenderRoot) focusStep(forward bool) WidgetID {
	chain := r.focusChain
	if len(chain) == 0 {
		return 0
	}
	i := slices.Index(chain, r.global.focused)
	switch {
	case i < 0 && forward:
		return chain[0]
	case i < 0:
		return chain[len(chain)-1]
	case forward:
		return chain[(i+1)%len(chain)]
	default:
		return chain[(i-1+len(chain))%len(chain)]
	}
}

func (r *RenderRoot) setFocus(next WidgetID) {
	old := r.global.focused
	if old == next {
		return
	}
	r.global.focused = next
	r.runLifecycle(RouteFocusChanged{Old: old, New: next})
	r.emit(SignalFocusChanged{Old: old, New: next})
}

// Layout runs the layout pass if one is pending.
func (r *RenderRoot) Layout() {
	if !r.NeedsLayout() {
		return
	}
	r.window.needsLayout = false

	bc := layout.Tight(r.size)
	if r.policy == SizePolicyContent {
		bc = layout.UnboundedConstraints
	}
	r.root.state.visited = false
	ctx := &LayoutCtx{ctxBase: ctxBase{state: &r.window, global: &r.global}}
	size := ctx.RunLayout(r.root, bc)
	ctx.PlaceChild(r.root, graphics.Offset{})
	if r.policy == SizePolicyContent && size != r.size {
		r.size = size
		r.emit(SignalContentSize{Size: size})
	}

	r.root.state.parentWindowOrigin = graphics.Offset{}
	updateWindowOrigins(r.global.arena, &r.root.state)
	r.window.needsWindowOrigin = false
	if DebugAssertions {
		checkLayoutDone(r.global.arena, &r.root.state)
	}

	// Widgets may have moved under a still pointer.
	if r.hasPointer {
		r.dispatch(PointerMove{Position: r.pointer})
	}
}

// Paint lays the tree out if needed and records it into a new scene.
func (r *RenderRoot) Paint() *graphics.Scene {
	r.Layout()
	r.window.needsPaint = false
	scene := graphics.NewScene()
	r.root.state.visited = false
	ctx := &PaintCtx{ctxBase: ctxBase{state: &r.window, global: &r.global}}
	r.root.Paint(ctx, scene)
	return scene
}

// Accessibility lays the tree out if needed and builds its accessibility tree.
func (r *RenderRoot) Accessibility() *AccessTree {
	r.Layout()
	tree := &AccessTree{
		AppName: r.global.config.App.Name,
		Root:    r.root.ID(),
		Nodes:   make(map[WidgetID]*AccessNode),
	}
	r.root.state.visited = false
	ctx := &AccessCtx{ctxBase: ctxBase{state: &r.window, global: &r.global}, tree: tree}
	r.root.Accessibility(ctx)
	return tree
}
