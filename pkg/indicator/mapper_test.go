package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c9s/bollband/pkg/types"
)

func TestMapPrices(t *testing.T) {
	series := []types.PricePoint{
		{Timestamp: 1, Open: 1, High: 4, Low: 0.5, Close: 2},
		{Timestamp: 2, Open: 2, High: 5, Low: 1.5, Close: 3},
	}

	tests := []struct {
		source   types.PriceSource
		expected []float64
	}{
		{types.PriceSourceOpen, []float64{1, 2}},
		{types.PriceSourceHigh, []float64{4, 5}},
		{types.PriceSourceLow, []float64{0.5, 1.5}},
		{types.PriceSourceClose, []float64{2, 3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			assert.Equal(t, tt.expected, MapPrices(series, tt.source))
		})
	}

	assert.Empty(t, MapPrices(nil, types.PriceSourceClose))
}
