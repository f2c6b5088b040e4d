package statemachine

import "context"

// State and Event are identified by name only.
type State interface{ Name() string }

type Event interface{ Name() string }

// Hook observes a completed transition. Hooks run after the machine is
// unlocked, so they may call back into it.
type Hook func(ctx context.Context, from, to State, event Event, data any)

// Transition is one edge of the machine.
type Transition struct {
	From  State
	To    State
	Event Event
}

type StateMachine interface {
	Current() State
	Is(state State) bool
	AddTransition(from, to State, event Event) error
	OnEnter(state State, hook Hook)
	Fire(ctx context.Context, event Event, data any) error
}

// StringState and StringEvent are the plain string implementations.
type StringState string

func (s StringState) Name() string { return string(s) }

type StringEvent string

func (e StringEvent) Name() string { return string(e) }
