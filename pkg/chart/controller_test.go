package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/bollband/pkg/types"
)

func rampSeries(n int) types.PriceSeries {
	series := make(types.PriceSeries, n)
	for i := range series {
		v := 100 + float64(i%7)
		series[i] = types.PricePoint{
			Timestamp: int64(i+1) * 60_000,
			Open:      v - 0.5,
			High:      v + 1,
			Low:       v - 1,
			Close:     v,
			Volume:    10,
		}
	}
	return series
}

func TestOverlay_RecomputesOnlyOnChange(t *testing.T) {
	settings := types.DefaultBollingerSettings()
	o := NewOverlay(rampSeries(30), settings)
	require.NoError(t, o.Err())
	assert.Equal(t, 1, o.Computations())
	assert.Len(t, o.Bands(), 11)

	o.SetSettings(settings)
	assert.Equal(t, 1, o.Computations(), "equal settings must not recompute")

	// style only change still yields a new value and a recompute
	o.SetSettings(settings.WithOffset(2))
	assert.Equal(t, 2, o.Computations())
	assert.Equal(t, 2, o.Settings().Offset)

	o.SetSeries(rampSeries(40))
	assert.Equal(t, 3, o.Computations())
	assert.Len(t, o.Bands(), 21)

	// drawing never recomputes
	frame, _ := testFrame(0, 21)
	for i := 0; i < 5; i++ {
		assert.True(t, o.Draw(frame))
	}
	assert.Equal(t, 3, o.Computations())
}

func TestOverlay_LastWriteWins(t *testing.T) {
	o := NewOverlay(rampSeries(30), types.DefaultBollingerSettings())

	o.SetSettings(types.DefaultBollingerSettings().WithLength(5))
	o.SetSettings(types.DefaultBollingerSettings().WithLength(10))

	assert.Equal(t, 10, o.Settings().Length)
	assert.Len(t, o.Bands(), 21)
}

func TestOverlay_Apply(t *testing.T) {
	o := NewOverlay(rampSeries(30), types.DefaultBollingerSettings())

	length := 25
	dashed := types.LineStyleDashed
	o.Apply(&types.SettingsPatch{
		Length:    &length,
		UpperBand: &types.BandStylePatch{LineStyle: &dashed},
	})

	assert.Equal(t, 25, o.Settings().Length)
	assert.Equal(t, types.LineStyleDashed, o.Settings().UpperBand.LineStyle)
	assert.Len(t, o.Bands(), 6)
	assert.Equal(t, 2, o.Computations())

	// an empty patch keeps the settings
	o.Apply(&types.SettingsPatch{})
	assert.Equal(t, 2, o.Computations())
}

func TestOverlay_RejectedSettings(t *testing.T) {
	o := NewOverlay(rampSeries(30), types.DefaultBollingerSettings().WithLength(0))
	require.Error(t, o.Err())
	assert.True(t, types.IsConfigurationError(o.Err()))
	assert.Empty(t, o.Bands())

	frame, rec := testFrame(0, 10)
	assert.True(t, o.Draw(frame))
	assert.Empty(t, rec.Commands())

	o.SetSettings(types.DefaultBollingerSettings())
	assert.NoError(t, o.Err())
	assert.NotEmpty(t, o.Bands())
}
