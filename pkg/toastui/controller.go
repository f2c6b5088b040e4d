package toastui

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/flashtoast/pkg/statemachine"
)

// Phase is a step of an item's lifecycle.
type Phase = statemachine.StringState

const (
	PhaseEntering Phase = "entering"
	PhaseVisible  Phase = "visible"
	PhaseExiting  Phase = "exiting"
	PhaseRemoved  Phase = "removed"
)

const (
	eventFrame         = statemachine.StringEvent("frame")
	eventTimeout       = statemachine.StringEvent("timeout")
	eventDismiss       = statemachine.StringEvent("dismiss")
	eventTransitionEnd = statemachine.StringEvent("transition_end")
)

// Controller drives one item from entering to removed.
// Events that do not apply to the current phase are ignored, as is
// everything after Unmount.
type Controller struct {
	id       string
	duration time.Duration
	exit     time.Duration
	sched    Scheduler
	sm       statemachine.StateMachine

	notify func(id string, phase Phase)

	unmounted atomic.Bool
	mu        sync.Mutex
	frame     Timer
	timer     Timer
	exitTimer Timer
}

// newController builds a controller in the entering phase. notify is called
// after every phase change, never while the controller is locked.
func newController(id string, duration, exit time.Duration, sched Scheduler, notify func(id string, phase Phase)) *Controller {
	c := &Controller{
		id:       id,
		duration: duration,
		exit:     exit,
		sched:    sched,
		notify:   notify,
	}

	c.sm = statemachine.MustNew(PhaseEntering,
		statemachine.WithTransition(PhaseEntering, PhaseVisible, eventFrame),
		statemachine.WithTransition(PhaseEntering, PhaseExiting, eventDismiss),
		statemachine.WithTransition(PhaseVisible, PhaseExiting, eventTimeout),
		statemachine.WithTransition(PhaseVisible, PhaseExiting, eventDismiss),
		statemachine.WithTransition(PhaseExiting, PhaseRemoved, eventTransitionEnd),
		statemachine.WithOnEnter(PhaseVisible, c.enterVisible),
		statemachine.WithOnEnter(PhaseExiting, c.enterExiting),
		statemachine.WithOnEnter(PhaseRemoved, c.enterRemoved),
	)
	return c
}

// ID is the item the controller drives.
func (c *Controller) ID() string { return c.id }

// Phase is the current lifecycle phase.
func (c *Controller) Phase() Phase {
	if p, ok := c.sm.Current().(Phase); ok {
		return p
	}
	return Phase(c.sm.Current().Name())
}

// Mount starts the lifecycle by requesting the first frame.
func (c *Controller) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unmounted.Load() || c.frame != nil {
		return
	}
	c.frame = c.sched.RequestFrame(func() { c.fire(eventFrame) })
}

// Dismiss starts the exit transition now.
func (c *Controller) Dismiss() {
	c.fire(eventDismiss)
}

// TransitionEnd reports that the exit transition finished.
func (c *Controller) TransitionEnd() {
	c.fire(eventTransitionEnd)
}

// Unmount cancels every pending frame and timer. Later events are no-ops.
func (c *Controller) Unmount() {
	if c.unmounted.Swap(true) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	stop(c.frame, c.timer, c.exitTimer)
}

func (c *Controller) fire(event statemachine.Event) {
	if c.unmounted.Load() {
		return
	}
	// Out-of-phase events (a timeout racing a dismiss) are expected.
	_ = c.sm.Fire(context.Background(), event, nil)
}

func (c *Controller) enterVisible(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) {
	if c.unmounted.Load() {
		return
	}
	if c.duration > 0 {
		c.mu.Lock()
		// Unmount may have stopped the timers since the check above.
		if c.unmounted.Load() {
			c.mu.Unlock()
			return
		}
		c.timer = c.sched.AfterFunc(c.duration, func() { c.fire(eventTimeout) })
		c.mu.Unlock()
	}
	c.notify(c.id, PhaseVisible)
}

func (c *Controller) enterExiting(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) {
	if c.unmounted.Load() {
		return
	}
	c.mu.Lock()
	stop(c.frame, c.timer)
	if c.unmounted.Load() {
		c.mu.Unlock()
		return
	}
	if c.exit > 0 {
		c.exitTimer = c.sched.AfterFunc(c.exit, func() { c.fire(eventTransitionEnd) })
	}
	c.mu.Unlock()

	c.notify(c.id, PhaseExiting)
	if c.exit <= 0 {
		c.fire(eventTransitionEnd)
	}
}

func (c *Controller) enterRemoved(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) {
	if c.unmounted.Load() {
		return
	}
	c.mu.Lock()
	stop(c.exitTimer)
	c.mu.Unlock()
	c.notify(c.id, PhaseRemoved)
}

func stop(timers ...Timer) {
	for _, t := range timers {
		if t != nil {
			t.Stop()
		}
	}
}
