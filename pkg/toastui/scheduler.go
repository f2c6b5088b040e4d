package toastui

import (
	"slices"
	"sync"
	"time"
)

// FrameInterval is the delay the real scheduler uses for animation frames.
const FrameInterval = 16 * time.Millisecond

// Timer is a pending callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// ran or was stopped.
	Stop() bool
}

// Scheduler runs callbacks later. Callbacks may run on any goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	RequestFrame(f func()) Timer
}

type realScheduler struct{}

// NewScheduler returns a Scheduler backed by time.AfterFunc.
func NewScheduler() Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (realScheduler) RequestFrame(f func()) Timer {
	return time.AfterFunc(FrameInterval, f)
}

// ManualScheduler is a Scheduler driven by hand. Time only moves on Advance
// and frames only run on Frame. Callbacks run on the calling goroutine.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*manualTimer
	frames []*manualTimer
}

type manualTimer struct {
	s    *ManualScheduler
	at   time.Duration
	seq  uint64
	f    func()
	done bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// NewManualScheduler returns a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, at: s.now + max(d, 0), seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *ManualScheduler) RequestFrame(f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, at: s.now, seq: s.seq, f: f}
	s.frames = append(s.frames, t)
	return t
}

// Advance moves time forward by d, running due timers in order. Timers
// scheduled by a callback run too if they fall within d.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		t := s.nextDue(target)
		if t == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = t.at
		t.done = true
		s.mu.Unlock()

		t.f()
	}
}

// Frame runs every frame requested so far. Frames requested while running
// wait for the next call.
func (s *ManualScheduler) Frame() {
	s.mu.Lock()
	frames := s.frames
	s.frames = nil
	var due []*manualTimer
	for _, t := range frames {
		if !t.done {
			t.done = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// Now is the time elapsed since the scheduler was created.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending counts timers and frames that have not run or been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.done {
			n++
		}
	}
	for _, t := range s.frames {
		if !t.done {
			n++
		}
	}
	return n
}

// nextDue pops the earliest live timer due by target. Callers hold the lock.
func (s *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	s.timers = slices.DeleteFunc(s.timers, func(t *manualTimer) bool { return t.done })
	var next *manualTimer
	for _, t := range s.timers {
		if t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}
