package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColor_WithOpacity(t *testing.T) {
	tests := []struct {
		color   Color
		opacity float64
		want    string
	}{
		{"#3B82F6", 0.1, "#3B82F61a"},
		{"#3B82F6", 0, "#3B82F600"},
		{"#3B82F6", 1, "#3B82F6ff"},
		{"#000000", 0.5, "#00000080"},
		{"#10B981", 0.25, "#10B98140"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.color.WithOpacity(tt.opacity))
	}
}

func TestAlphaByte(t *testing.T) {
	assert.Equal(t, uint8(26), AlphaByte(0.1))
	assert.Equal(t, uint8(128), AlphaByte(0.5))
	assert.Equal(t, uint8(0), AlphaByte(-1))
	assert.Equal(t, uint8(255), AlphaByte(2))
}

func TestColor_Validate(t *testing.T) {
	assert.NoError(t, Color("#abcdef").Validate())
	assert.NoError(t, Color("#ABCDEF").Validate())
	assert.Error(t, Color("abcdef").Validate())
	assert.Error(t, Color("#abc").Validate())
	assert.Error(t, Color("#abcdef80").Validate())
}

func TestParseDrawingColor(t *testing.T) {
	c, err := ParseDrawingColor("#3B82F6")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x3b), c.R)
	assert.Equal(t, uint8(0x82), c.G)
	assert.Equal(t, uint8(0xf6), c.B)
	assert.Equal(t, uint8(255), c.A)

	c, err = ParseDrawingColor("#3B82F61a")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x1a), c.A)

	_, err = ParseDrawingColor("blue")
	assert.ErrorIs(t, err, ErrInvalidColor)
}
