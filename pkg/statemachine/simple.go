package statemachine

import (
	"context"
	"sync"
)

// SimpleStateMachine is a thread-safe in-memory state machine with at most
// one edge per state and event.
type SimpleStateMachine struct {
	mu          sync.RWMutex
	current     State
	transitions map[string]map[string]Transition
	enterHooks  map[string][]Hook
}

func newSimpleStateMachine(initial State) *SimpleStateMachine {
	return &SimpleStateMachine{
		current:     initial,
		transitions: make(map[string]map[string]Transition),
		enterHooks:  make(map[string][]Hook),
	}
}

func (sm *SimpleStateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

// Is reports whether the machine is currently in state.
func (sm *SimpleStateMachine) Is(state State) bool {
	if state == nil {
		return false
	}
	return sm.Current().Name() == state.Name()
}

// AddTransition declares an edge. A later edge for the same state and event
// replaces the earlier one.
func (sm *SimpleStateMachine) AddTransition(from, to State, event Event) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	byEvent, ok := sm.transitions[from.Name()]
	if !ok {
		byEvent = make(map[string]Transition)
		sm.transitions[from.Name()] = byEvent
	}
	byEvent[event.Name()] = Transition{From: from, To: to, Event: event}
	return nil
}

// OnEnter registers hook to run every time the machine enters state.
func (sm *SimpleStateMachine) OnEnter(state State, hook Hook) {
	if state == nil || hook == nil {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.enterHooks[state.Name()] = append(sm.enterHooks[state.Name()], hook)
}

func (sm *SimpleStateMachine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	sm.mu.Lock()
	from := sm.current
	t, ok := sm.transitions[from.Name()][event.Name()]
	if !ok {
		sm.mu.Unlock()
		return &TransitionError{State: from.Name(), Event: event.Name(), Cause: ErrNoTransition}
	}
	sm.current = t.To
	hooks := sm.enterHooks[t.To.Name()]
	sm.mu.Unlock()

	for _, hook := range hooks {
		hook(ctx, from, t.To, event, data)
	}
	return nil
}
