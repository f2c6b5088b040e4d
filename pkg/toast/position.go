package toast

import (
	"fmt"
	"strings"
)

// Position is the screen anchor toasts are stacked at.
type Position string

const (
	TopRight     Position = "top-right"
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	BottomRight  Position = "bottom-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
)

// Positions lists the six supported anchors.
func Positions() []Position {
	return []Position{TopRight, TopLeft, TopCenter, BottomRight, BottomLeft, BottomCenter}
}

// Valid reports whether p is a supported anchor.
func (p Position) Valid() bool {
	switch p {
	case TopRight, TopLeft, TopCenter, BottomRight, BottomLeft, BottomCenter:
		return true
	}
	return false
}

// ParsePosition validates and converts s into a Position.
func ParsePosition(s string) (Position, error) {
	p := Position(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return p, nil
}

func (p Position) String() string {
	return string(p)
}

// Anchor is the screen edge pair a position sticks to.
type Anchor struct {
	Vertical   string // top or bottom
	Horizontal string // left, right or center
	Align      string // cross-axis alignment of the stack: start, end or center
}

// Offset is the direction a hidden toast slides to, one unit per axis.
// Positive X is right, positive Y is down.
type Offset struct {
	X, Y int
}

// Anchor splits p into its vertical and horizontal edges.
// Unknown positions fall back to top-right.
func (p Position) Anchor() Anchor {
	if !p.Valid() {
		p = TopRight
	}
	v, h, _ := strings.Cut(string(p), "-")
	a := Anchor{Vertical: v, Horizontal: h, Align: "center"}
	switch h {
	case "left":
		a.Align = "start"
	case "right":
		a.Align = "end"
	}
	return a
}

// HiddenOffset returns where a toast at p slides to while entering and
// exiting: sideways for corner anchors, vertically for centered ones.
func (p Position) HiddenOffset() Offset {
	a := p.Anchor()
	switch {
	case a.Horizontal == "right":
		return Offset{X: 1}
	case a.Horizontal == "left":
		return Offset{X: -1}
	case a.Vertical == "top":
		return Offset{Y: -1}
	default:
		return Offset{Y: 1}
	}
}
