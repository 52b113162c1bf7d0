package indicator

import "github.com/c9s/bollband/pkg/types"

type PriceValueMapper func(p types.PricePoint) float64

// SourceMapper returns the mapper of a price source.
func SourceMapper(source types.PriceSource) PriceValueMapper {
	return source.Map
}

func MapPrices(series []types.PricePoint, source types.PriceSource) []float64 {
	return MapPricesWith(series, SourceMapper(source))
}

func MapPricesWith(series []types.PricePoint, f PriceValueMapper) []float64 {
	prices := make([]float64, len(series))
	for i, p := range series {
		prices[i] = f(p)
	}

	return prices
}
