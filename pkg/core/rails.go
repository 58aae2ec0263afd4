package core

import (
	"fmt"

	"github.com/go-drift/trellis/pkg/errors"
)

// debugPanic reports a broken tree invariant. It is a no-op in release builds.
func debugPanic(state *WidgetState, method, format string, args ...any) {
	if !DebugAssertions {
		return
	}
	panic(&errors.InvariantError{
		Widget: state.debugName,
		ID:     uint64(state.id),
		Method: method,
		Msg:    fmt.Sprintf(format, args...),
	})
}
