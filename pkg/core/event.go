package core

import (
	"time"

	"github.com/go-drift/trellis/pkg/graphics"
)

// PointerButton identifies a mouse button.
type PointerButton int

const (
	PointerButtonPrimary PointerButton = iota
	PointerButtonSecondary
	PointerButtonAuxiliary
)

// Event is a user input routed through the OnEvent pass.
//
// Pointer positions are in window coordinates; use [EventCtx.ToLocal] to
// translate them.
type Event interface {
	isEvent()
}

// PointerDown is a button press.
type PointerDown struct {
	Position graphics.Offset
	Button   PointerButton
}

// PointerUp is a button release.
type PointerUp struct {
	Position graphics.Offset
	Button   PointerButton
}

// PointerMove is a pointer motion.
type PointerMove struct {
	Position graphics.Offset
}

// PointerLeave reports the pointer leaving the window.
type PointerLeave struct{}

// TextEvent is keyboard input delivered along the focus path.
type TextEvent struct {
	// Key is a named key such as "Enter" or "Tab", or empty.
	Key string
	// Text is the produced text, or empty.
	Text string
}

func (PointerDown) isEvent()  {}
func (PointerUp) isEvent()    {}
func (PointerMove) isEvent()  {}
func (PointerLeave) isEvent() {}
func (TextEvent) isEvent()    {}

// pointerPosition returns the window position carried by ev, if any.
func pointerPosition(ev Event) (graphics.Offset, bool) {
	switch e := ev.(type) {
	case PointerDown:
		return e.Position, true
	case PointerUp:
		return e.Position, true
	case PointerMove:
		return e.Position, true
	}
	return graphics.Offset{}, false
}

// isHoverEvent reports whether ev only updates hot tracking. Disabled
// widgets still receive these.
func isHoverEvent(ev Event) bool {
	switch ev.(type) {
	case PointerMove, PointerLeave:
		return true
	}
	return false
}

// LifeCycle is a tree notification delivered through the Lifecycle pass.
//
// Containers forward every LifeCycle they receive to all their children;
// pods decide which child widgets actually see it.
type LifeCycle interface {
	isLifeCycle()
	// reachesStashed reports whether stashed widgets receive the event.
	reachesStashed() bool
}

// WidgetAdded is the first event every widget receives.
type WidgetAdded struct{}

// AnimFrame is delivered to widgets that requested an animation frame.
type AnimFrame struct {
	Interval time.Duration
}

// DisabledChanged reports a change of the effective disabled status.
type DisabledChanged struct {
	Disabled bool
}

// BuildFocusChain asks widgets to register for focus.
type BuildFocusChain struct{}

// HotChanged reports that the pointer entered or left the widget.
type HotChanged struct {
	Hot bool
}

// FocusChanged reports that the widget gained or lost focus.
type FocusChanged struct {
	Focused bool
}

// RouteWidgetAdded carries WidgetAdded to new descendants.
type RouteWidgetAdded struct{}

// RouteDisabledChanged carries pending SetDisabled calls down the tree.
type RouteDisabledChanged struct{}

// RouteFocusChanged carries a focus transfer to the old and new holders.
type RouteFocusChanged struct {
	Old, New WidgetID
}

func (WidgetAdded) isLifeCycle()          {}
func (AnimFrame) isLifeCycle()            {}
func (DisabledChanged) isLifeCycle()      {}
func (BuildFocusChain) isLifeCycle()      {}
func (HotChanged) isLifeCycle()           {}
func (FocusChanged) isLifeCycle()         {}
func (RouteWidgetAdded) isLifeCycle()     {}
func (RouteDisabledChanged) isLifeCycle() {}
func (RouteFocusChanged) isLifeCycle()    {}

func (WidgetAdded) reachesStashed() bool          { return true }
func (AnimFrame) reachesStashed() bool            { return false }
func (DisabledChanged) reachesStashed() bool      { return true }
func (BuildFocusChain) reachesStashed() bool      { return false }
func (HotChanged) reachesStashed() bool           { return false }
func (FocusChanged) reachesStashed() bool         { return false }
func (RouteWidgetAdded) reachesStashed() bool     { return true }
func (RouteDisabledChanged) reachesStashed() bool { return true }
func (RouteFocusChanged) reachesStashed() bool    { return true }

// WindowEvent is a platform window notification.
type WindowEvent interface {
	isWindowEvent()
}

// WindowResize reports a new window size.
type WindowResize struct {
	Size graphics.Size
}

// WindowRescale reports a new device scale factor.
type WindowRescale struct {
	Scale float64
}

func (WindowResize) isWindowEvent()  {}
func (WindowRescale) isWindowEvent() {}
