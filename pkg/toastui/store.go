package toastui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/flashtoast/pkg/broadcast"
	"github.com/dmitrymomot/flashtoast/pkg/logger"
	"github.com/dmitrymomot/flashtoast/pkg/toast"
)

// maxHandledNavigations bounds the set of remembered navigation IDs.
const maxHandledNavigations = 256

// Navigation is one page visit as seen by the client: a unique ID and the
// shared props the server sent with it.
type Navigation struct {
	ID    string
	Props map[string]any
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithScheduler sets the scheduler item timers run on.
func WithScheduler(s Scheduler) StoreOption {
	return func(st *Store) {
		if s != nil {
			st.sched = s
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) StoreOption {
	return func(st *Store) {
		if l != nil {
			st.logger = l
		}
	}
}

// WithConfigOptions applies opts to the config after defaults are filled
// in. It is the way to ask for a zero Duration (persistent toasts) or a
// zero ExitDuration at construction.
func WithConfigOptions(opts ...Option) StoreOption {
	return func(st *Store) {
		st.cfg = st.cfg.with(opts...)
	}
}

// WithClock replaces the wall clock used in item IDs.
func WithClock(now func() time.Time) StoreOption {
	return func(st *Store) {
		if now != nil {
			st.now = now
		}
	}
}

// Store holds the visible toasts, newest first. All methods are safe for
// concurrent use; controller callbacks never run while the store is locked.
type Store struct {
	mu      sync.Mutex
	pubMu   sync.Mutex
	cfg     Config
	items   []Item
	ctrls   map[string]*Controller
	handled []string
	closed  bool

	counter atomic.Uint64
	sched   Scheduler
	logger  *slog.Logger
	now     func() time.Time
	updates *broadcast.MemoryBroadcaster[Snapshot]
}

// NewStore creates an empty store. Zero fields of cfg take the values of
// DefaultConfig; use WithConfigOptions for an explicit zero.
func NewStore(cfg Config, opts ...StoreOption) *Store {
	def := DefaultConfig()
	if cfg.Duration <= 0 {
		cfg.Duration = def.Duration
	}
	if cfg.ExitDuration <= 0 {
		cfg.ExitDuration = def.ExitDuration
	}
	if cfg.MaxVisible <= 0 {
		cfg.MaxVisible = def.MaxVisible
	}
	if !cfg.Position.Valid() {
		cfg.Position = def.Position
	}
	if cfg.PropKey == "" {
		cfg.PropKey = def.PropKey
	}

	s := &Store{
		cfg:     cfg,
		ctrls:   make(map[string]*Controller),
		sched:   NewScheduler(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		updates: broadcast.NewMemoryBroadcaster[Snapshot](1, broadcast.WithReplayLast(), broadcast.WithKeepLatest()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest puts rec on top of the stack and starts its lifecycle. Items beyond
// MaxVisible are evicted oldest first.
func (s *Store) Ingest(rec toast.Record) Item {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Item{}
	}
	item := itemFromRecord(s.nextID(), rec)
	ctrl := newController(item.ID, item.EffectiveDuration(s.cfg), s.cfg.ExitDuration, s.sched, s.phaseChanged)
	s.ctrls[item.ID] = ctrl
	s.items = slices.Insert(s.items, 0, item)

	var evicted []*Controller
	if len(s.items) > s.cfg.MaxVisible {
		for _, old := range s.items[s.cfg.MaxVisible:] {
			evicted = append(evicted, s.ctrls[old.ID])
			delete(s.ctrls, old.ID)
		}
		s.items = slices.Clip(s.items[:s.cfg.MaxVisible])
	}
	s.mu.Unlock()

	for _, c := range evicted {
		c.Unmount()
	}
	ctrl.Mount()
	s.publish()

	s.logger.Debug("toast shown",
		logger.Component("toastui"),
		slog.String("id", item.ID),
		slog.String("level", item.Level.String()),
		logger.Count(len(evicted)),
	)
	return item
}

// Success shows a local success toast.
func (s *Store) Success(text string, duration ...time.Duration) Item {
	return s.add(text, toast.LevelSuccess, duration)
}

// Error shows a local error toast.
func (s *Store) Error(text string, duration ...time.Duration) Item {
	return s.add(text, toast.LevelError, duration)
}

// Info shows a local info toast.
func (s *Store) Info(text string, duration ...time.Duration) Item {
	return s.add(text, toast.LevelInfo, duration)
}

// Warning shows a local warning toast.
func (s *Store) Warning(text string, duration ...time.Duration) Item {
	return s.add(text, toast.LevelWarning, duration)
}

func (s *Store) add(text string, level toast.Level, duration []time.Duration) Item {
	return s.Ingest(toast.NewMessage(text, level, duration...).Record())
}

// Remove drops the item with id. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	i := slices.IndexFunc(s.items, func(it Item) bool { return it.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items = slices.Delete(s.items, i, i+1)
	ctrl := s.ctrls[id]
	delete(s.ctrls, id)
	s.mu.Unlock()

	if ctrl != nil {
		ctrl.Unmount()
	}
	s.publish()
}

// Dismiss starts the exit transition of the item with id.
func (s *Store) Dismiss(id string) error {
	ctrl, ok := s.Controller(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	ctrl.Dismiss()
	return nil
}

// Clear removes every item.
func (s *Store) Clear() {
	s.mu.Lock()
	ctrls := make([]*Controller, 0, len(s.ctrls))
	for _, c := range s.ctrls {
		ctrls = append(ctrls, c)
	}
	s.items = nil
	clear(s.ctrls)
	s.mu.Unlock()

	for _, c := range ctrls {
		c.Unmount()
	}
	s.publish()
}

// Configure merges opts into the current config. Items already on screen
// keep their timers; a smaller MaxVisible applies from the next toast.
func (s *Store) Configure(opts ...Option) {
	s.mu.Lock()
	s.cfg = s.cfg.with(opts...)
	s.mu.Unlock()

	s.publish()
}

// HandleNavigation ingests the toasts carried in nav.Props under the prop
// key. Each navigation ID is handled once; re-renders of the same visit are
// ignored. An empty ID is always handled. It returns the number of toasts
// ingested.
func (s *Store) HandleNavigation(nav Navigation) int {
	s.mu.Lock()
	if nav.ID != "" {
		if slices.Contains(s.handled, nav.ID) {
			s.mu.Unlock()
			return 0
		}
		s.handled = append(s.handled, nav.ID)
		if len(s.handled) > maxHandledNavigations {
			s.handled = slices.Delete(s.handled, 0, len(s.handled)-maxHandledNavigations)
		}
	}
	key := s.cfg.PropKey
	s.mu.Unlock()

	raw, ok := nav.Props[key]
	if !ok || raw == nil {
		return 0
	}
	recs, err := toast.DecodeRecords(raw)
	if err != nil {
		s.logger.Warn("ignoring malformed toast payload",
			logger.Component("toastui"),
			logger.Error(err),
			slog.String("navigation", nav.ID),
		)
		return 0
	}
	for _, rec := range recs {
		s.Ingest(rec)
	}
	return len(recs)
}

// Items returns the visible items, newest first, with their current phase.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

// Config returns the current config.
func (s *Store) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Controller returns the lifecycle controller of the item with id.
func (s *Store) Controller(id string) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.ctrls[id]
	return c, ok
}

// Subscribe streams a Snapshot after every change, starting with the
// latest one. Slow readers only miss intermediate snapshots.
func (s *Store) Subscribe(ctx context.Context) broadcast.Subscriber[Snapshot] {
	return s.updates.Subscribe(ctx)
}

// Close clears the store and closes all subscriptions.
func (s *Store) Close() error {
	s.Clear()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.updates.Close()
}

func (s *Store) phaseChanged(id string, phase Phase) {
	if phase == PhaseRemoved {
		s.Remove(id)
		return
	}

	s.mu.Lock()
	_, ok := s.ctrls[id]
	s.mu.Unlock()
	if !ok {
		return
	}

	s.publish()
}

// publish broadcasts the current state. Publishing is serialized so the
// last snapshot out always matches the store.
func (s *Store) publish() {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	snap := Snapshot{Items: s.itemsLocked(), Config: s.cfg}
	s.mu.Unlock()

	// Only fails after Close.
	_ = s.updates.Broadcast(context.Background(), broadcast.Message[Snapshot]{Data: snap})
}

func (s *Store) nextID() string {
	return fmt.Sprintf("toast-%d-%d", s.counter.Add(1), s.now().UnixMilli())
}

func (s *Store) itemsLocked() []Item {
	out := make([]Item, len(s.items))
	for i, it := range s.items {
		if c, ok := s.ctrls[it.ID]; ok {
			it.Phase = c.Phase()
		}
		out[i] = it
	}
	return out
}
