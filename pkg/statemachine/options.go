package statemachine

import (
	"errors"
	"fmt"
)

// Option configures a machine built by New.
type Option func(*SimpleStateMachine) error

// New returns a machine resting in initial with opts applied in order.
func New(initial State, opts ...Option) (StateMachine, error) {
	if initial == nil {
		return nil, errors.New("statemachine: nil initial state")
	}
	sm := newSimpleStateMachine(initial)
	for _, opt := range opts {
		if err := opt(sm); err != nil {
			return nil, err
		}
	}
	return sm, nil
}

// MustNew is New for machines defined at compile time.
func MustNew(initial State, opts ...Option) StateMachine {
	sm, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("statemachine: %v", err))
	}
	return sm
}

func WithTransition(from, to State, event Event) Option {
	return func(sm *SimpleStateMachine) error {
		return sm.AddTransition(from, to, event)
	}
}

// WithOnEnter registers hook for every transition into state.
func WithOnEnter(state State, hook Hook) Option {
	return func(sm *SimpleStateMachine) error {
		if state == nil {
			return ErrInvalidTransition
		}
		sm.OnEnter(state, hook)
		return nil
	}
}
