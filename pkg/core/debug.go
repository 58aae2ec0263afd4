//go:build !release

package core

// DebugAssertions reports whether the tree safety rails are compiled in.
// Build with -tags release to remove them.
const DebugAssertions = true
