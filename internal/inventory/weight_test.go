package inventory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		path string
		name string
		raw  string
		unit Unit
	}{
		{"/r/merged/Britannia 1 ozt.png", "Britannia", "1", TroyOunce},
		{"Valcambi CombiBar 50 g.png", "Valcambi CombiBar", "50", Gram},
		{"Silver Eagle 10 ozt 2021.png", "Silver Eagle 2021", "10", TroyOunce},
		{"Lunar 0.5 ozt.png", "Lunar", "0.5", TroyOunce},
		{"PAMP 100 g.png", "PAMP", "100", Gram},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			item, err := ParseFilename(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.name, item.Name)
			assert.Equal(t, tt.raw, item.Weight.Raw)
			assert.Equal(t, tt.unit, item.Weight.Unit)
			assert.Equal(t, tt.path, item.Path)
		})
	}
}

func TestParseFilename_Invalid(t *testing.T) {
	for _, path := range []string{
		"2024-03-09 14-05-07_0.png",
		"Maple Leaf.png",
		"1 ozt.png",
		"Bar 5 grams.png",
		"Bar 5ozt.png",
	} {
		_, err := ParseFilename(path)
		assert.True(t, errors.Is(err, ErrInvalidName), "%s: got %v", path, err)
	}
}

func TestWeight_ToOzt(t *testing.T) {
	assert.Equal(t, 2.0, Weight{Value: 2, Unit: TroyOunce}.ToOzt())
	assert.InDelta(t, 1.0, Weight{Value: 31.1034768, Unit: Gram}.ToOzt(), 1e-12)
	assert.InDelta(t, 3.215, Weight{Value: 100, Unit: Gram}.ToOzt(), 1e-3)
}

func TestWeight_String(t *testing.T) {
	assert.Equal(t, "2.5 g", Weight{Raw: "2.5", Value: 2.5, Unit: Gram}.String())
}
