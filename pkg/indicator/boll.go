package indicator

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/c9s/bollband/pkg/types"
)

/*
boll implements the bollinger indicator:

The Basics of Bollinger Bands
- https://www.investopedia.com/articles/technical/102201.asp

Bollinger Bands
- https://www.investopedia.com/terms/b/bollingerbands.asp

The dispersion is the population standard deviation of the window (divided by
the window size, not window size - 1).
*/

var log = logrus.WithField("indicator", "boll")

// Bollinger computes one band point per full window of the series.
//
// A series shorter than the window yields an empty result and no error.
// Invalid settings are rejected with a *types.ConfigurationError before
// anything is computed.
func Bollinger(series []types.PricePoint, settings types.BollingerSettings) ([]types.BandPoint, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return calculateBollinger(series, settings), nil
}

// MustBollinger is Bollinger for fixtures and tests; it panics on invalid settings.
func MustBollinger(series []types.PricePoint, settings types.BollingerSettings) []types.BandPoint {
	bands, err := Bollinger(series, settings)
	if err != nil {
		panic(err)
	}
	return bands
}

func calculateBollinger(series []types.PricePoint, settings types.BollingerSettings) []types.BandPoint {
	var window = settings.Length
	if len(series) < window {
		log.Debugf("insufficient data: %d candles for window %d", len(series), window)
		return nil
	}

	var prices = MapPrices(series, settings.Source)
	var bands = make([]types.BandPoint, 0, len(series)-window+1)
	for i := window - 1; i < len(series); i++ {
		var recent = prices[i-window+1 : i+1]

		mean := stat.Mean(recent, nil)
		std := math.Sqrt(stat.MomentAbout(2, recent, mean, nil))
		band := std * settings.StdDevMultiplier

		bands = append(bands, types.BandPoint{
			Timestamp: series[OffsetIndex(i, settings.Offset, len(series))].Timestamp,
			Upper:     mean + band,
			Middle:    mean,
			Lower:     mean - band,
		})
	}

	return bands
}

// OffsetIndex shifts a window end index by offset and clamps it into [0, n-1].
// Only the displayed timestamp moves; the band values stay with window i.
func OffsetIndex(i, offset, n int) int {
	target := i + offset
	if target > n-1 {
		target = n - 1
	}
	if target < 0 {
		target = 0
	}
	return target
}
