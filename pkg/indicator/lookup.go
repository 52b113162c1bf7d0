package indicator

import "github.com/c9s/bollband/pkg/types"

// BandAtPriceIndex returns the band whose window ends at the candle with the
// given index, as used by a crosshair readout.
func BandAtPriceIndex(bands []types.BandPoint, settings types.BollingerSettings, priceIndex int) (types.BandPoint, bool) {
	bandIndex := priceIndex - settings.Lead()
	if bandIndex < 0 || bandIndex >= len(bands) {
		return types.BandPoint{}, false
	}

	return bands[bandIndex], true
}

// Last returns the most recent band point.
func Last(bands []types.BandPoint) (types.BandPoint, bool) {
	if len(bands) == 0 {
		return types.BandPoint{}, false
	}
	return bands[len(bands)-1], true
}
