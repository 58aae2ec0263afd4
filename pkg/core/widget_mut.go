package core

import (
	"fmt"
	"slices"
)

// mutHandle tracks the liveness of one WidgetMut.
type mutHandle struct {
	state  *WidgetState
	live   bool
	frozen int
}

func (h *mutHandle) check(op string) {
	if !DebugAssertions || h == nil {
		return
	}
	if !h.live {
		debugPanic(h.state, op, "WidgetMut used after its callback returned")
	}
	if h.frozen > 0 {
		debugPanic(h.state, op, "WidgetMut used while a child handle is live")
	}
}

// WidgetMut is a scoped mutable handle to a widget obtained with [GetMut],
// [WidgetMut.Reborrow], [Downcast] or [RenderRoot.Edit].
//
// It is only valid inside the callback it was passed to. When the callback
// returns, the widget's state is merged into its parent.
type WidgetMut[W Widget] struct {
	parent *WidgetState
	state  *WidgetState
	widget W
	ctx    WidgetCtx
	handle *mutHandle
}

func newWidgetMut[W Widget](parent, state *WidgetState, widget W, g *globalState) *WidgetMut[W] {
	h := &mutHandle{state: state, live: true}
	return &WidgetMut[W]{
		parent: parent,
		state:  state,
		widget: widget,
		ctx:    WidgetCtx{mutCtx: mutCtx{ctxBase: ctxBase{state: state, global: g}, owner: h}},
		handle: h,
	}
}

// Widget returns the widget being mutated.
func (m *WidgetMut[W]) Widget() W {
	m.handle.check("Widget")
	return m.widget
}

// Ctx returns the context used to raise flags on the widget.
func (m *WidgetMut[W]) Ctx() *WidgetCtx {
	m.handle.check("Ctx")
	return &m.ctx
}

// ID returns the widget id.
func (m *WidgetMut[W]) ID() WidgetID { return m.state.id }

// State returns the widget state for inspection.
func (m *WidgetMut[W]) State() *WidgetState { return m.state }

// Reborrow passes a second handle to the same widget to fn. m is frozen
// until fn returns.
func (m *WidgetMut[W]) Reborrow(fn func(*WidgetMut[W])) {
	m.handle.check("Reborrow")
	deriveMut(m, m.widget, fn)
}

// Downcast passes a handle typed as W2 to fn. It panics if the widget is
// not a W2.
func Downcast[W2 Widget, W Widget](m *WidgetMut[W], fn func(*WidgetMut[W2])) {
	if !TryDowncast(m, fn) {
		var want W2
		panic(fmt.Sprintf("core.Downcast: widget %s%s is %s, not %s",
			m.state.debugName, m.state.id, ShortTypeName(m.widget), ShortTypeName(want)))
	}
}

// TryDowncast is like Downcast but reports a type mismatch instead of
// panicking.
func TryDowncast[W2 Widget, W Widget](m *WidgetMut[W], fn func(*WidgetMut[W2])) bool {
	m.handle.check("Downcast")
	w2, ok := any(m.widget).(W2)
	if !ok {
		return false
	}
	deriveMut(m, w2, fn)
	return true
}

func deriveMut[W2 Widget, W Widget](m *WidgetMut[W], widget W2, fn func(*WidgetMut[W2])) {
	inner := newWidgetMut(m.parent, m.state, widget, m.ctx.global)
	m.handle.frozen++
	defer func() {
		inner.handle.live = false
		m.handle.frozen--
		m.parent.MergeUp(m.state)
	}()
	fn(inner)
}

// GetMut passes a handle to child to fn. ctx is the parent's context; a
// parent WidgetMut is frozen until fn returns. The child is merged into the
// parent when fn returns, also when it panics.
func GetMut[C Widget](ctx Mutator, child *WidgetPod[C], fn func(*WidgetMut[C])) {
	base := ctx.mutBase()
	if base.owner != nil {
		base.owner.check("GetMut")
		base.owner.frozen++
		defer func() { base.owner.frozen-- }()
	}
	editPod(base.state, child, base.global, fn)
}

func editPod[W Widget](parent *WidgetState, pod *WidgetPod[W], g *globalState, fn func(*WidgetMut[W])) {
	m := newWidgetMut(parent, &pod.state, pod.inner, g)
	before := pod.inner.ChildrenIDs()
	defer func() {
		m.handle.live = false
		r := recover()
		if r == nil {
			after := pod.inner.ChildrenIDs()
			if DebugAssertions {
				pod.checkChildList(g, "widget mutation", before, after)
			}
			pod.state.childIDs = slices.Clone(after)
		}
		parent.MergeUp(&pod.state)
		if r != nil {
			panic(r)
		}
	}()
	fn(m)
}
