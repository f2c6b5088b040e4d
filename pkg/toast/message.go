package toast

import (
	"encoding/json"
	"errors"
	"slices"
	"time"
)

// Message is a single toast queued by application code.
// Messages are values; nothing mutates them after construction.
type Message struct {
	Text  string
	Level Level
	// Duration overrides the client's default display time; nil keeps the default.
	Duration *time.Duration
}

// NewMessage builds a message. At most one duration is used.
func NewMessage(text string, level Level, duration ...time.Duration) Message {
	m := Message{Text: text, Level: level}
	if len(duration) > 0 {
		d := duration[0]
		m.Duration = &d
	}
	return m
}

// Record converts the message into its flat transport form.
func (m Message) Record() Record {
	r := Record{Message: m.Text, Level: m.Level}
	if m.Duration != nil {
		ms := m.Duration.Milliseconds()
		r.Duration = &ms
	}
	return r
}

// Record is the wire form of a toast: {"message","level","duration"}.
// Duration is in milliseconds and serializes as null when unset.
type Record struct {
	Message  string `json:"message"`
	Level    Level  `json:"level"`
	Duration *int64 `json:"duration"`
}

// DurationOr returns the record's duration, or fallback when it has none.
func (r Record) DurationOr(fallback time.Duration) time.Duration {
	if r.Duration == nil {
		return fallback
	}
	return time.Duration(*r.Duration) * time.Millisecond
}

// Records serializes messages in order.
func Records(msgs []Message) []Record {
	out := make([]Record, len(msgs))
	for i, m := range msgs {
		out[i] = m.Record()
	}
	return out
}

// DecodeRecords turns a durable store value into records.
// Stores that keep Go values hand back []Record as is; stores that serialize
// (Redis, cookies) hand back generic JSON trees which are re-decoded.
func DecodeRecords(v any) ([]Record, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []Record:
		return slices.Clone(val), nil
	case json.RawMessage:
		return unmarshalRecords(val)
	case []byte:
		return unmarshalRecords(val)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	return unmarshalRecords(data)
}

func unmarshalRecords(data []byte) ([]Record, error) {
	var out []Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	return out, nil
}
