package toast_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashtoast/pkg/toast"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    toast.Level
		expected string
	}{
		{toast.LevelSuccess, "success"},
		{toast.LevelError, "error"},
		{toast.LevelInfo, "info"},
		{toast.LevelWarning, "warning"},
		{toast.Level(42), "level(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestLevel_ZeroValueIsInfo(t *testing.T) {
	var l toast.Level
	assert.Equal(t, toast.LevelInfo, l)
}

func TestParseLevel(t *testing.T) {
	for _, l := range toast.Levels() {
		parsed, err := toast.ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}

	_, err := toast.ParseLevel("fatal")
	assert.ErrorIs(t, err, toast.ErrInvalidLevel)

	_, err = toast.ParseLevel("Success")
	assert.ErrorIs(t, err, toast.ErrInvalidLevel)
}

func TestLevel_JSON(t *testing.T) {
	data, err := json.Marshal(toast.LevelWarning)
	require.NoError(t, err)
	assert.JSONEq(t, `"warning"`, string(data))

	var l toast.Level
	require.NoError(t, json.Unmarshal([]byte(`"error"`), &l))
	assert.Equal(t, toast.LevelError, l)

	err = json.Unmarshal([]byte(`"loud"`), &l)
	assert.ErrorIs(t, err, toast.ErrInvalidLevel)

	_, err = json.Marshal(toast.Level(9))
	assert.Error(t, err)
}

func TestParsePosition(t *testing.T) {
	for _, p := range toast.Positions() {
		parsed, err := toast.ParsePosition(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	assert.Len(t, toast.Positions(), 6)

	_, err := toast.ParsePosition("middle")
	assert.ErrorIs(t, err, toast.ErrInvalidPosition)
}

func TestPosition_Anchor(t *testing.T) {
	tests := []struct {
		pos    toast.Position
		anchor toast.Anchor
		offset toast.Offset
	}{
		{toast.TopRight, toast.Anchor{Vertical: "top", Horizontal: "right", Align: "end"}, toast.Offset{X: 1}},
		{toast.TopLeft, toast.Anchor{Vertical: "top", Horizontal: "left", Align: "start"}, toast.Offset{X: -1}},
		{toast.TopCenter, toast.Anchor{Vertical: "top", Horizontal: "center", Align: "center"}, toast.Offset{Y: -1}},
		{toast.BottomRight, toast.Anchor{Vertical: "bottom", Horizontal: "right", Align: "end"}, toast.Offset{X: 1}},
		{toast.BottomLeft, toast.Anchor{Vertical: "bottom", Horizontal: "left", Align: "start"}, toast.Offset{X: -1}},
		{toast.BottomCenter, toast.Anchor{Vertical: "bottom", Horizontal: "center", Align: "center"}, toast.Offset{Y: 1}},
		{toast.Position("nowhere"), toast.Anchor{Vertical: "top", Horizontal: "right", Align: "end"}, toast.Offset{X: 1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.pos), func(t *testing.T) {
			assert.Equal(t, tt.anchor, tt.pos.Anchor())
			assert.Equal(t, tt.offset, tt.pos.HiddenOffset())
		})
	}
}
