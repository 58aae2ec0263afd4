package core

import (
	"strconv"
	"sync/atomic"
)

// WidgetID uniquely identifies a widget for the lifetime of the process.
// The zero value means "no widget".
type WidgetID uint64

var lastWidgetID atomic.Uint64

// NewWidgetID returns a fresh, never reused id.
func NewWidgetID() WidgetID {
	return WidgetID(lastWidgetID.Add(1))
}

// IsZero reports whether id refers to no widget.
func (id WidgetID) IsZero() bool {
	return id == 0
}

func (id WidgetID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}

func (id WidgetID) bytes() []byte {
	var b [8]byte
	v := uint64(id)
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
	return b[:]
}
