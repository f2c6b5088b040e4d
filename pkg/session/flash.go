package session

import "slices"

const (
	flashNewKey = "_flash.new"
	flashOldKey = "_flash.old"
)

// Flash stores value under key for the current and the next request.
// The value is removed by the AgeFlashData call that ends the next request.
func (s *Session) Flash(key string, value any) {
	if s == nil {
		return
	}
	s.Set(key, value)
	s.Keep(key)
}

// Keep extends the lifetime of already flashed keys by one more request.
func (s *Session) Keep(keys ...string) {
	if s == nil || len(keys) == 0 {
		return
	}
	fresh := s.flashKeys(flashNewKey)
	for _, key := range keys {
		if !slices.Contains(fresh, key) {
			fresh = append(fresh, key)
		}
	}
	s.setFlashKeys(flashNewKey, fresh)
	s.setFlashKeys(flashOldKey, without(s.flashKeys(flashOldKey), keys))
}

// Forget removes keys together with their flash bookkeeping.
func (s *Session) Forget(keys ...string) {
	if s == nil || len(keys) == 0 {
		return
	}
	for _, key := range keys {
		s.Delete(key)
	}
	s.setFlashKeys(flashNewKey, without(s.flashKeys(flashNewKey), keys))
	s.setFlashKeys(flashOldKey, without(s.flashKeys(flashOldKey), keys))
}

// AgeFlashData ends a request: values flashed for it are removed and values
// flashed during it become visible to the next one only.
func (s *Session) AgeFlashData() {
	if s == nil {
		return
	}
	for _, key := range s.flashKeys(flashOldKey) {
		s.Delete(key)
	}
	s.setFlashKeys(flashOldKey, s.flashKeys(flashNewKey))
	s.setFlashKeys(flashNewKey, nil)
}

// IsFlashed reports whether key is tracked as flash data.
func (s *Session) IsFlashed(key string) bool {
	return slices.Contains(s.flashKeys(flashNewKey), key) ||
		slices.Contains(s.flashKeys(flashOldKey), key)
}

// flashKeys reads a bookkeeping list. Stores that round-trip through JSON
// hand it back as []any.
func (s *Session) flashKeys(name string) []string {
	val, ok := s.Get(name)
	if !ok {
		return nil
	}
	switch v := val.(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		keys := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				keys = append(keys, str)
			}
		}
		return keys
	default:
		return nil
	}
}

func (s *Session) setFlashKeys(name string, keys []string) {
	if len(keys) == 0 {
		s.Delete(name)
		return
	}
	s.Set(name, keys)
}

func without(list, drop []string) []string {
	return slices.DeleteFunc(list, func(k string) bool {
		return slices.Contains(drop, k)
	})
}
