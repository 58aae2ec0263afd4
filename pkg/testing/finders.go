package testing

import (
	"fmt"

	"github.com/go-drift/trellis/pkg/core"
)

// Finder locates widgets in the tree driven by a Harness.
type Finder interface {
	// Evaluate returns all matching widget states (depth-first pre-order).
	Evaluate(h *Harness) []*core.WidgetState
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	states []*core.WidgetState
	finder Finder
}

// Find evaluates finder against the current tree.
func (h *Harness) Find(finder Finder) FinderResult {
	return FinderResult{states: finder.Evaluate(h), finder: finder}
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *core.WidgetState {
	if len(r.states) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.finder.Description()))
	}
	return r.states[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *core.WidgetState {
	if index < 0 || index >= len(r.states) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.states), r.finder.Description()))
	}
	return r.states[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*core.WidgetState { return r.states }

// IDs returns the ids of all matches.
func (r FinderResult) IDs() []core.WidgetID {
	ids := make([]core.WidgetID, len(r.states))
	for i, s := range r.states {
		ids[i] = s.ID()
	}
	return ids
}

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.states) }

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool { return len(r.states) > 0 }

type predicateFinder struct {
	desc string
	fn   func(*core.WidgetState) bool
}

func (f *predicateFinder) Evaluate(h *Harness) []*core.WidgetState {
	var out []*core.WidgetState
	walkStates(h, h.root.RootState(), func(s *core.WidgetState) {
		if f.fn(s) {
			out = append(out, s)
		}
	})
	return out
}

func (f *predicateFinder) Description() string { return f.desc }

// ByType finds widgets by short type name, such as "Flex" or "Label".
func ByType(name string) Finder {
	return &predicateFinder{
		desc: fmt.Sprintf("type %s", name),
		fn:   func(s *core.WidgetState) bool { return s.DebugName() == name },
	}
}

// ByID finds the widget with the given id.
func ByID(id core.WidgetID) Finder {
	return &predicateFinder{
		desc: fmt.Sprintf("id %s", id),
		fn:   func(s *core.WidgetState) bool { return s.ID() == id },
	}
}

// ByPredicate finds widgets whose state satisfies fn.
func ByPredicate(desc string, fn func(*core.WidgetState) bool) Finder {
	return &predicateFinder{desc: desc, fn: fn}
}

// walkStates visits registered states depth first, stashed subtrees included.
func walkStates(h *Harness, s *core.WidgetState, visit func(*core.WidgetState)) {
	visit(s)
	for _, id := range s.ChildIDs() {
		if child, ok := h.root.WidgetState(id); ok {
			walkStates(h, child, visit)
		}
	}
}
