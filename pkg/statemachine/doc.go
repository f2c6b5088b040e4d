// Package statemachine implements small finite state machines driven by
// events.
//
// States and events are anything with a Name; StringState and StringEvent
// cover the common case. Transitions are declared with functional options and
// side effects hang off OnEnter hooks:
//
//	const (
//	    Entering = statemachine.StringState("entering")
//	    Visible  = statemachine.StringState("visible")
//	    Frame    = statemachine.StringEvent("frame")
//	)
//
//	machine := statemachine.MustNew(Entering,
//	    statemachine.WithTransition(Entering, Visible, Frame),
//	    statemachine.WithOnEnter(Visible, func(ctx context.Context, from, to statemachine.State, evt statemachine.Event, data any) {
//	        // arm the dismiss timer
//	    }),
//	)
//
//	_ = machine.Fire(ctx, Frame, nil)
//
// # Hooks
//
// OnEnter hooks run after the state has changed and the lock is released, so
// a hook may fire the next event or call into code that inspects the machine.
//
// # Errors
//
// Fire returns a *TransitionError naming the state and event when no edge
// applies; it unwraps to ErrNoTransition:
//
//	if errors.Is(err, statemachine.ErrNoTransition) { /* out of phase */ }
//
// # Concurrency
//
// SimpleStateMachine guards its state with a RWMutex: Current and Is take the
// read lock, Fire and AddTransition the write lock.
package statemachine
