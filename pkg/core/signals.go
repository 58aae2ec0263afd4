package core

import "github.com/go-drift/trellis/pkg/graphics"

// Signal is a request from the tree to the platform shell.
type Signal interface {
	isSignal()
}

// SignalRequestRedraw asks for a new frame.
type SignalRequestRedraw struct{}

// SignalRequestAnimFrame asks for Animate to be called on the next frame.
type SignalRequestAnimFrame struct{}

// SignalSetCursor asks for the platform cursor to change.
type SignalSetCursor struct {
	Cursor CursorIcon
}

// SignalTextFieldAdded announces a widget accepting text input.
type SignalTextFieldAdded struct {
	ID WidgetID
}

// SignalFocusChanged reports a focus transfer.
type SignalFocusChanged struct {
	Old, New WidgetID
}

// SignalContentSize reports the root size under [SizePolicyContent].
type SignalContentSize struct {
	Size graphics.Size
}

func (SignalRequestRedraw) isSignal()    {}
func (SignalRequestAnimFrame) isSignal() {}
func (SignalSetCursor) isSignal()        {}
func (SignalTextFieldAdded) isSignal()   {}
func (SignalFocusChanged) isSignal()     {}
func (SignalContentSize) isSignal()      {}
