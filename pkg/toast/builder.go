package toast

import "time"

// Pending is a toast under construction. It is a value: Duration returns an
// updated copy, and one of the level methods commits it to the Toaster.
type Pending struct {
	text     string
	duration *time.Duration
	toaster  *Toaster
}

// Duration sets the display time override.
func (p Pending) Duration(d time.Duration) Pending {
	p.duration = &d
	return p
}

// Success commits the toast with LevelSuccess.
func (p Pending) Success() *Toaster { return p.commit(LevelSuccess) }

// Error commits the toast with LevelError.
func (p Pending) Error() *Toaster { return p.commit(LevelError) }

// Info commits the toast with LevelInfo.
func (p Pending) Info() *Toaster { return p.commit(LevelInfo) }

// Warning commits the toast with LevelWarning.
func (p Pending) Warning() *Toaster { return p.commit(LevelWarning) }

func (p Pending) commit(level Level) *Toaster {
	if p.duration != nil {
		return p.toaster.Add(p.text, level, *p.duration)
	}
	return p.toaster.Add(p.text, level)
}
