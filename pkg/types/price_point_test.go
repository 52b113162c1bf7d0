package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceSeries_IndexOf(t *testing.T) {
	s := PriceSeries{
		{Timestamp: 1000}, {Timestamp: 2000}, {Timestamp: 3000}, {Timestamp: 5000},
	}

	assert.True(t, s.IsSorted())
	assert.Equal(t, 0, s.IndexOf(1000))
	assert.Equal(t, 3, s.IndexOf(5000))
	assert.Equal(t, -1, s.IndexOf(4000))
	assert.Equal(t, -1, s.IndexOf(9000))
	assert.Equal(t, []int64{1000, 2000, 3000, 5000}, s.Timestamps())

	assert.False(t, PriceSeries{{Timestamp: 2}, {Timestamp: 2}}.IsSorted())
}

func TestPriceSource_Map(t *testing.T) {
	p := PricePoint{Open: 1, High: 4, Low: 0.5, Close: 2}
	assert.Equal(t, 1.0, PriceSourceOpen.Map(p))
	assert.Equal(t, 4.0, PriceSourceHigh.Map(p))
	assert.Equal(t, 0.5, PriceSourceLow.Map(p))
	assert.Equal(t, 2.0, PriceSourceClose.Map(p))

	src, err := ParsePriceSource(" Close ")
	assert.NoError(t, err)
	assert.Equal(t, PriceSourceClose, src)

	_, err = ParsePriceSource("hl2")
	assert.ErrorIs(t, err, ErrInvalidPriceSource)
}

func TestLineStyle_DashArray(t *testing.T) {
	assert.Equal(t, []float64{5, 5}, LineStyleDashed.DashArray())
	assert.Empty(t, LineStyleSolid.DashArray())

	// callers may not corrupt the shared pattern
	d := LineStyleDashed.DashArray()
	d[0] = 1
	assert.Equal(t, []float64{5, 5}, DashedPattern)
}

func TestBandPoint_Width(t *testing.T) {
	b := BandPoint{Upper: 110, Middle: 100, Lower: 90}
	assert.InDelta(t, 20.0, b.Width(), 1e-9)
	assert.Equal(t, 110.0, b.Value(BandUpper))
	assert.Equal(t, 90.0, b.Value(BandLower))
	assert.Equal(t, 0.0, BandPoint{}.Width())
}
