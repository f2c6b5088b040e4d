// Package toastui is the client-side runtime for toasts delivered by
// package toast.
//
// A Store keeps the visible stack newest first, capped at a maximum size.
// Each item is driven by a Controller through four phases:
//
//	entering -> visible -> exiting -> removed
//
// Toasts arrive either locally (Store.Success and friends) or from the
// payload of a navigation (Store.HandleNavigation), which is processed once
// per navigation ID.
//
// Renderers observe the stack through Store.Subscribe, which publishes a
// Snapshot after every change. Timers and animation frames come from a
// Scheduler so tests can drive time by hand:
//
//	sched := toastui.NewManualScheduler()
//	store := toastui.NewStore(toastui.DefaultConfig(), toastui.WithScheduler(sched))
//	store.Success("Saved")
//	sched.Frame()                // entering -> visible
//	sched.Advance(5 * time.Second) // visible -> exiting
package toastui
