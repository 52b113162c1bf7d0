package chart

import (
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/c9s/bollband/pkg/types"
)

var (
	_ gochart.Series                = &BandSeries{}
	_ gochart.BoundedValuesProvider = &BandSeries{}
)

// BandSeries hosts the overlay inside a go-chart Chart. The chart's x axis is
// expected to be in candle index units of Prices, bar centered, i.e.
// ranging over [-0.5, len(Prices)-0.5].
//
// Band points are placed under the candle carrying their timestamp, so an
// offset moves the drawn band along the time axis.
type BandSeries struct {
	Name     string
	Prices   types.PriceSeries
	Bands    []types.BandPoint
	Settings types.BollingerSettings

	// positions[i] is the candle index of Bands[i], or -1 outside of Prices
	positions []int
	visible   VisibleRange
}

func NewBandSeries(name string, prices types.PriceSeries, bands []types.BandPoint, settings types.BollingerSettings) *BandSeries {
	s := &BandSeries{
		Name:     name,
		Prices:   prices,
		Bands:    bands,
		Settings: settings,
	}
	s.index()
	return s
}

func (s *BandSeries) index() {
	s.positions = make([]int, len(s.Bands))

	from, to := -1, -1
	for i, b := range s.Bands {
		p := s.Prices.IndexOf(b.Timestamp)
		s.positions[i] = p
		if p < 0 {
			continue
		}
		if from < 0 {
			from = i
		}
		to = i + 1
	}

	if from < 0 {
		s.visible = VisibleRange{}
		return
	}
	s.visible = VisibleRange{From: from, To: to}
}

// VisibleBands is the band index range that falls on the charted candles.
func (s *BandSeries) VisibleBands() VisibleRange {
	return s.visible
}

func (s *BandSeries) GetName() string {
	return s.Name
}

func (s *BandSeries) GetStyle() gochart.Style {
	return gochart.Style{
		StrokeWidth: 1.0,
	}
}

func (s *BandSeries) GetYAxis() gochart.YAxisType {
	return gochart.YAxisPrimary
}

func (s *BandSeries) Validate() error {
	return nil
}

// Len and GetBoundedValues let go-chart fit the y axis around the bands.
func (s *BandSeries) Len() int {
	return s.visible.Len()
}

func (s *BandSeries) GetBoundedValues(index int) (x, y1, y2 float64) {
	i := s.visible.From + index
	b := s.Bands[i]
	return float64(s.positions[i]), b.Upper, b.Lower
}

func (s *BandSeries) Render(r gochart.Renderer, box gochart.Box, xrange, yrange gochart.Range, style gochart.Style) {
	frame := &Frame{
		Range:    s.visible,
		BarSpace: BarSpace{Bar: barWidth(box, xrange)},
		XFunc: func(i int) float64 {
			return float64(xrange.Translate(float64(s.positions[i])))
		},
		YFunc: func(v float64) float64 {
			return float64(box.Height() - yrange.Translate(v))
		},
		Canvas: NewRendererSurface(r, box),
	}

	Render(s.Bands, s.Settings, frame)
}

func barWidth(box gochart.Box, xrange gochart.Range) float64 {
	delta := xrange.GetDelta()
	if delta <= 0 {
		return 0
	}
	return float64(box.Width()) / delta
}
