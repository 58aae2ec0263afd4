package core

// CursorIcon is a platform mouse cursor.
type CursorIcon int

const (
	CursorDefault CursorIcon = iota
	CursorPointer
	CursorText
	CursorCrosshair
	CursorGrab
	CursorNotAllowed
	CursorResizeLeftRight
	CursorResizeUpDown
)

func (c CursorIcon) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorPointer:
		return "pointer"
	case CursorText:
		return "text"
	case CursorCrosshair:
		return "crosshair"
	case CursorGrab:
		return "grab"
	case CursorNotAllowed:
		return "not-allowed"
	case CursorResizeLeftRight:
		return "ew-resize"
	case CursorResizeUpDown:
		return "ns-resize"
	default:
		return "unknown"
	}
}

type cursorChangeKind int

const (
	cursorUnchanged cursorChangeKind = iota
	cursorSet
	cursorOverride
)

// CursorChange is a widget's standing cursor request.
//
// A Set cursor applies while the widget is hot or active and no descendant
// asks for something else. An Override cursor wins over every descendant.
type CursorChange struct {
	kind cursorChangeKind
	icon CursorIcon
}

// SetCursorChange returns a Set request for icon.
func SetCursorChange(icon CursorIcon) CursorChange {
	return CursorChange{kind: cursorSet, icon: icon}
}

// OverrideCursorChange returns an Override request for icon.
func OverrideCursorChange(icon CursorIcon) CursorChange {
	return CursorChange{kind: cursorOverride, icon: icon}
}

// Icon returns the requested icon and whether any request is present.
func (c CursorChange) Icon() (CursorIcon, bool) {
	return c.icon, c.kind != cursorUnchanged
}

// IsOverride reports whether c is an Override request.
func (c CursorChange) IsOverride() bool {
	return c.kind == cursorOverride
}
