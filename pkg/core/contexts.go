package core

import (
	"fmt"
	"math"

	"github.com/go-drift/trellis/pkg/config"
	"github.com/go-drift/trellis/pkg/errors"
	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/layout"
)

// globalState is shared by every context of one RenderRoot.
type globalState struct {
	arena   *stateArena
	config  *config.Config
	focused WidgetID
	signals []Signal
}

// AnyPod is implemented by every [WidgetPod], whatever its widget type.
type AnyPod interface {
	ID() WidgetID
	State() *WidgetState
	layout(parent *LayoutCtx, bc layout.BoxConstraints) graphics.Size
}

// ctxBase holds the read-only accessors common to all contexts.
type ctxBase struct {
	state  *WidgetState
	global *globalState
}

// WidgetID returns the id of the widget the context belongs to.
func (c *ctxBase) WidgetID() WidgetID { return c.state.id }

// Size returns the widget size from the last layout.
func (c *ctxBase) Size() graphics.Size { return c.state.size }

// WindowOrigin returns the widget origin in window coordinates.
func (c *ctxBase) WindowOrigin() graphics.Offset { return c.state.WindowOrigin() }

// IsHot reports whether the pointer is over the widget.
func (c *ctxBase) IsHot() bool { return c.state.isHot }

// IsActive reports whether the widget captured the pointer.
func (c *ctxBase) IsActive() bool { return c.state.isActive }

// HasActive reports whether a descendant is active.
func (c *ctxBase) HasActive() bool { return c.state.hasActive }

// IsFocused reports whether the widget itself holds focus.
func (c *ctxBase) IsFocused() bool { return c.global.focused == c.state.id }

// HasFocus reports whether the widget or a descendant holds focus.
func (c *ctxBase) HasFocus() bool { return c.state.hasFocus }

// IsDisabled reports whether the widget or an ancestor is disabled.
func (c *ctxBase) IsDisabled() bool { return c.state.IsDisabled() }

// IsStashed reports whether the widget is stashed.
func (c *ctxBase) IsStashed() bool { return c.state.isStashed }

// Config returns the runtime configuration.
func (c *ctxBase) Config() *config.Config { return c.global.config }

// mutCtx adds the requests that mutate widget state.
type mutCtx struct {
	ctxBase
	// owner is the WidgetMut handle the context was obtained from, if any.
	owner *mutHandle
}

func (c *mutCtx) mutBase() *mutCtx { return c }

// Mutator is implemented by the contexts that can hand out child handles:
// [*EventCtx], [*LifeCycleCtx] and [*WidgetCtx].
type Mutator interface {
	mutBase() *mutCtx
}

func (c *mutCtx) checkOwner(op string) {
	if c.owner != nil {
		c.owner.check(op)
	}
}

// RequestPaint schedules a repaint of the widget.
func (c *mutCtx) RequestPaint() {
	c.checkOwner("RequestPaint")
	c.state.needsPaint = true
}

// RequestLayout schedules a new layout, and with it a repaint.
func (c *mutCtx) RequestLayout() {
	c.checkOwner("RequestLayout")
	c.state.needsLayout = true
	c.state.needsPaint = true
}

// RequestAnimFrame asks for an AnimFrame lifecycle event on the next frame.
func (c *mutCtx) RequestAnimFrame() {
	c.checkOwner("RequestAnimFrame")
	c.state.requestAnim = true
	c.state.needsPaint = true
}

// ChildrenChanged announces that children were added or removed. New
// children receive WidgetAdded before the next layout.
func (c *mutCtx) ChildrenChanged() {
	c.checkOwner("ChildrenChanged")
	c.state.childrenChanged = true
	c.state.updateFocusChain = true
	c.state.needsLayout = true
	c.state.needsPaint = true
}

// SetDisabled changes the explicit disabled status. The effective status of
// the widget and its descendants is updated after the current pass.
func (c *mutCtx) SetDisabled(disabled bool) {
	c.checkOwner("SetDisabled")
	c.state.isExplicitlyDisabledNew = disabled
	c.state.childrenDisabledChanged = true
}

// SetStashed excludes child from (or returns it to) layout and paint.
func (c *mutCtx) SetStashed(child AnyPod, stashed bool) {
	c.checkOwner("SetStashed")
	setStashed(c.state, child.State(), stashed)
	c.state.needsLayout = true
	c.state.needsPaint = true
}

// RemoveChild unregisters child and its whole subtree. Call it before
// dropping the child pod.
func (c *mutCtx) RemoveChild(child AnyPod) {
	c.checkOwner("RemoveChild")
	removeSubtree(c.global.arena, child.ID())
	c.ChildrenChanged()
}

// RequestFocus asks for the widget to become focused.
func (c *mutCtx) RequestFocus() {
	c.checkOwner("RequestFocus")
	c.state.requestFocus = &focusChange{kind: focusTo, id: c.state.id}
}

// ResignFocus gives up focus if the widget holds it.
func (c *mutCtx) ResignFocus() {
	c.checkOwner("ResignFocus")
	if c.IsFocused() {
		c.state.requestFocus = &focusChange{kind: focusResign, id: c.state.id}
	}
}

// FocusNext moves focus to the next widget of the focus chain.
func (c *mutCtx) FocusNext() {
	c.checkOwner("FocusNext")
	c.state.requestFocus = &focusChange{kind: focusNext}
}

// FocusPrevious moves focus to the previous widget of the focus chain.
func (c *mutCtx) FocusPrevious() {
	c.checkOwner("FocusPrevious")
	c.state.requestFocus = &focusChange{kind: focusPrevious}
}

func setStashed(parent, child *WidgetState, stashed bool) {
	if child.isStashed == stashed {
		return
	}
	child.isStashed = stashed
	if !stashed {
		child.needsLayout = true
		child.needsPaint = true
	}
	parent.childrenChanged = true
	parent.updateFocusChain = true
}

// EventCtx is passed to [Widget.OnEvent].
type EventCtx struct {
	mutCtx
	isHandled bool
}

// SetHandled stops the event from reaching later siblings.
func (c *EventCtx) SetHandled() { c.isHandled = true }

// IsHandled reports whether a widget already handled the event.
func (c *EventCtx) IsHandled() bool { return c.isHandled }

// SetActive captures (or releases) the pointer. An active widget keeps
// receiving pointer events when the pointer leaves it.
func (c *EventCtx) SetActive(active bool) {
	c.state.isActive = active
}

// SetCursor requests icon while the widget is hot or active.
func (c *EventCtx) SetCursor(icon CursorIcon) {
	c.state.cursorChange = SetCursorChange(icon)
}

// OverrideCursor requests icon over every descendant's request.
func (c *EventCtx) OverrideCursor(icon CursorIcon) {
	c.state.cursorChange = OverrideCursorChange(icon)
}

// ClearCursor withdraws the widget's cursor request.
func (c *EventCtx) ClearCursor() {
	c.state.cursorChange = CursorChange{}
}

// ToLocal translates a window position into the widget's coordinates.
func (c *EventCtx) ToLocal(p graphics.Offset) graphics.Offset {
	return p.Sub(c.state.WindowOrigin())
}

// LifeCycleCtx is passed to [Widget.Lifecycle].
type LifeCycleCtx struct {
	mutCtx
}

// RegisterForFocus adds the widget to the focus chain. Call it while
// handling BuildFocusChain.
func (c *LifeCycleCtx) RegisterForFocus() {
	c.state.focusChain = append(c.state.focusChain, c.state.id)
}

// RegisterTextInput announces that the widget accepts text input.
func (c *LifeCycleCtx) RegisterTextInput() {
	c.state.textRegistrations = append(c.state.textRegistrations, TextFieldRegistration{ID: c.state.id})
}

// WidgetCtx is the context of a [WidgetMut].
type WidgetCtx struct {
	mutCtx
}

// LayoutCtx is passed to [Widget.Layout].
type LayoutCtx struct {
	ctxBase
}

// RunLayout lays out child with bc and returns its size. The child must then
// be placed with PlaceChild.
func (c *LayoutCtx) RunLayout(child AnyPod, bc layout.BoxConstraints) graphics.Size {
	return child.layout(c, bc)
}

// PlaceChild sets the origin of a child laid out during this pass.
func (c *LayoutCtx) PlaceChild(child AnyPod, origin graphics.Offset) {
	st := child.State()
	if !st.isExpectingPlaceChildCall {
		debugPanic(c.state, "layout", "PlaceChild called on %s%s without a prior RunLayout", st.debugName, st.id)
	}
	if math.IsNaN(origin.X) || math.IsNaN(origin.Y) {
		errors.Warn(&errors.TreeError{
			Op:     "core.LayoutCtx.PlaceChild",
			Kind:   errors.KindLayout,
			Widget: c.state.debugName,
			ID:     uint64(c.state.id),
			Err:    fmt.Errorf("NaN origin for child %s", st.id),
		})
		origin = graphics.Offset{}
	}
	st.isExpectingPlaceChildCall = false
	if origin != st.origin {
		st.origin = origin
		st.needsWindowOrigin = true
		c.state.needsWindowOrigin = true
	}
}

func (c *LayoutCtx) checkLaidOut(child AnyPod, op string) *WidgetState {
	st := child.State()
	if st.isNew || st.needsLayout {
		debugPanic(c.state, "layout", "%s queried on %s%s before RunLayout", op, st.debugName, st.id)
	}
	return st
}

func (c *LayoutCtx) checkPlaced(child AnyPod, op string) *WidgetState {
	st := c.checkLaidOut(child, op)
	if st.isExpectingPlaceChildCall {
		debugPanic(c.state, "layout", "%s queried on %s%s before PlaceChild", op, st.debugName, st.id)
	}
	return st
}

// ChildSize returns the size of a laid out child.
func (c *LayoutCtx) ChildSize(child AnyPod) graphics.Size {
	return c.checkLaidOut(child, "ChildSize").size
}

// ChildBaselineOffset returns the baseline offset of a laid out child.
func (c *LayoutCtx) ChildBaselineOffset(child AnyPod) float64 {
	return c.checkLaidOut(child, "ChildBaselineOffset").baselineOffset
}

// ChildLayoutRect returns the layout rect of a placed child.
func (c *LayoutCtx) ChildLayoutRect(child AnyPod) graphics.Rect {
	return c.checkPlaced(child, "ChildLayoutRect").LayoutRect()
}

// ChildPaintRect returns the paint rect of a placed child.
func (c *LayoutCtx) ChildPaintRect(child AnyPod) graphics.Rect {
	return c.checkPlaced(child, "ChildPaintRect").PaintRect()
}

// SetPaintInsets declares how far painting extends beyond the layout rect.
// Negative components are clamped to zero.
func (c *LayoutCtx) SetPaintInsets(insets graphics.Insets) {
	c.state.paintInsets = insets.NonNegative()
}

// SetBaselineOffset sets the distance from the bottom edge to the baseline.
func (c *LayoutCtx) SetBaselineOffset(offset float64) {
	c.state.baselineOffset = offset
}

// SetStashed excludes child from (or returns it to) layout and paint.
// It takes effect immediately: a stashed child must not be laid out.
func (c *LayoutCtx) SetStashed(child AnyPod, stashed bool) {
	setStashed(c.state, child.State(), stashed)
}

// WidgetPadding returns the themed default spacing along axis.
func (c *LayoutCtx) WidgetPadding(axis layout.Axis) float64 {
	if axis == layout.AxisHorizontal {
		return c.global.config.PaddingHorizontal()
	}
	return c.global.config.PaddingVertical()
}

// PaintCtx is passed to [Widget.Paint].
type PaintCtx struct {
	ctxBase
	depth int
}

// Depth returns the nesting depth of the widget, the root being 0.
func (c *PaintCtx) Depth() int { return c.depth }

// AccessCtx is passed to [Widget.Accessibility].
type AccessCtx struct {
	ctxBase
	node *AccessNode
	tree *AccessTree
}

// SetRole sets the role reported for the widget.
func (c *AccessCtx) SetRole(role Role) { c.node.Role = role }

// SetLabel sets the accessible name of the widget.
func (c *AccessCtx) SetLabel(label string) { c.node.Label = label }

// Node returns the node being built for the widget.
func (c *AccessCtx) Node() *AccessNode { return c.node }
