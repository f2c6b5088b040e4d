package toastui

import (
	"time"

	"github.com/dmitrymomot/flashtoast/pkg/toast"
)

// Item is a toast on screen.
type Item struct {
	ID      string      `json:"id"`
	Message string      `json:"message"`
	Level   toast.Level `json:"level"`
	// Duration overrides Config.Duration when set.
	Duration *time.Duration `json:"duration,omitempty"`
	Phase    Phase          `json:"phase"`
}

// EffectiveDuration is the display time of the item under cfg.
func (i Item) EffectiveDuration(cfg Config) time.Duration {
	if i.Duration != nil {
		return *i.Duration
	}
	return cfg.Duration
}

// Snapshot is the full client state at one point in time.
type Snapshot struct {
	Items  []Item `json:"items"`
	Config Config `json:"config"`
}

func itemFromRecord(id string, rec toast.Record) Item {
	item := Item{
		ID:      id,
		Message: rec.Message,
		Level:   rec.Level,
		Phase:   PhaseEntering,
	}
	if rec.Duration != nil {
		d := rec.DurationOr(0)
		item.Duration = &d
	}
	return item
}
