package core

// stateArena indexes the states of every registered widget by id.
type stateArena struct {
	states map[WidgetID]*WidgetState
}

func newStateArena() *stateArena {
	return &stateArena{states: make(map[WidgetID]*WidgetState)}
}

func (a *stateArena) register(s *WidgetState) {
	if prev, ok := a.states[s.id]; ok && prev != s {
		debugPanic(s, "lifecycle", "id %s is already used by %s", s.id, prev.debugName)
	}
	a.states[s.id] = s
}

func (a *stateArena) get(id WidgetID) *WidgetState {
	return a.states[id]
}

func (a *stateArena) remove(id WidgetID) {
	delete(a.states, id)
}

func (a *stateArena) len() int {
	return len(a.states)
}
