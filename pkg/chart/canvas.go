package chart

import (
	"io"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/c9s/bollband/pkg/types"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

var ErrUnsupportedFormat = errors.New("unsupported chart format")

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	switch f {
	case FormatPNG, FormatSVG:
		return f, nil
	case "":
		return FormatPNG, nil
	}
	return f, errors.Wrapf(ErrUnsupportedFormat, "%q", s)
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatSVG {
		return gochart.SVG
	}
	return gochart.PNG
}

func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

type CanvasOptions struct {
	Title  string
	Width  int
	Height int

	// LogScale maps prices on a logarithmic y axis.
	LogScale bool

	// Window is the half-open candle index range to chart; a zero To means
	// up to the last candle.
	Window VisibleRange
}

// Canvas is a candlestick chart with the bollinger overlay on top.
type Canvas struct {
	gochart.Chart

	Candles *CandleSeries
	Bands   *BandSeries
}

// NewCanvas lays out the chart for the candle window in options. Bands are
// expected to be computed from the full price series, so the first windows in
// view already carry values.
func NewCanvas(prices types.PriceSeries, bands []types.BandPoint, settings types.BollingerSettings, options CanvasOptions) (*Canvas, error) {
	window := options.Window
	if window.To == 0 {
		window.To = len(prices)
	}
	window = window.Clamp(len(prices))
	if window.Len() < 2 {
		return nil, errors.Errorf("at least 2 candles are required to draw a chart, got %d", window.Len())
	}

	visible := prices[window.From:window.To]

	candles := &CandleSeries{Name: "price", Prices: visible}
	overlay := NewBandSeries(settings.String(), visible, bands, settings)

	var yrange gochart.Range
	if options.LogScale {
		yrange = &gochart.LogarithmicRange{}
	}

	canvas := &Canvas{
		Chart: gochart.Chart{
			Title:  options.Title,
			Width:  options.Width,
			Height: options.Height,
			Background: gochart.Style{
				Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
			},
			XAxis: gochart.XAxis{
				Range: &gochart.ContinuousRange{
					Min: -0.5,
					Max: float64(len(visible)) - 0.5,
				},
				ValueFormatter: candleTimeFormatter(visible),
			},
			YAxis: gochart.YAxis{
				Range: yrange,
			},
			Series: []gochart.Series{candles, overlay},
		},
		Candles: candles,
		Bands:   overlay,
	}

	return canvas, nil
}

// Render writes the chart image.
func (c *Canvas) Render(format Format, w io.Writer) error {
	return errors.Wrapf(c.Chart.Render(format.provider(), w), "render %s chart", format)
}

func candleTimeFormatter(prices types.PriceSeries) gochart.ValueFormatter {
	layout := "01-02 15:04"
	if len(prices) > 1 && time.Duration(prices[1].Timestamp-prices[0].Timestamp)*time.Millisecond >= 24*time.Hour {
		layout = "2006-01-02"
	}

	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}

		i := int(math.Round(f))
		if i < 0 || i >= len(prices) {
			return ""
		}
		return prices[i].Time().UTC().Format(layout)
	}
}
