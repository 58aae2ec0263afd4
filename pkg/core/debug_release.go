//go:build release

package core

// DebugAssertions reports whether the tree safety rails are compiled in.
const DebugAssertions = false
