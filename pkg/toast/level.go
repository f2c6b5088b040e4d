package toast

import "fmt"

// Level is the severity tag of a toast.
// The zero value is LevelInfo.
type Level uint8

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
	LevelWarning
)

var levelNames = [...]string{
	LevelInfo:    "info",
	LevelSuccess: "success",
	LevelError:   "error",
	LevelWarning: "warning",
}

// Levels lists every level in canonical wire order.
func Levels() []Level {
	return []Level{LevelSuccess, LevelError, LevelInfo, LevelWarning}
}

// String returns the lowercase wire tag.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", uint8(l))
}

// Valid reports whether l is one of the four known levels.
func (l Level) Valid() bool {
	return int(l) < len(levelNames)
}

// ParseLevel converts a wire tag into a Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, uint8(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
