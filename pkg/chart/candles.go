package chart

import (
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/bollband/pkg/types"
)

var (
	CandleUpColor       = drawing.ColorFromHex("26a69a")
	CandleDownColor     = drawing.ColorFromHex("ef5350")
	CandleNoChangeColor = drawing.ColorFromHex("888888")
)

var (
	_ gochart.Series                = &CandleSeries{}
	_ gochart.BoundedValuesProvider = &CandleSeries{}
)

// CandleSeries draws the base candlestick chart the overlay sits on.
type CandleSeries struct {
	Name   string
	Prices types.PriceSeries
}

func (cs *CandleSeries) GetName() string {
	return cs.Name
}

func (cs *CandleSeries) GetStyle() gochart.Style {
	return gochart.Style{StrokeWidth: 1}
}

func (cs *CandleSeries) GetYAxis() gochart.YAxisType {
	return gochart.YAxisPrimary
}

func (cs *CandleSeries) Validate() error {
	return nil
}

func (cs *CandleSeries) Len() int {
	return len(cs.Prices)
}

func (cs *CandleSeries) GetBoundedValues(index int) (x, y1, y2 float64) {
	p := cs.Prices[index]
	return float64(index), p.High, p.Low
}

func (cs *CandleSeries) Render(r gochart.Renderer, box gochart.Box, xrange, yrange gochart.Range, style gochart.Style) {
	bar := barWidth(box, xrange)
	half := math.Max(1, math.Floor(bar*0.35))

	for i, p := range cs.Prices {
		x := box.Left + xrange.Translate(float64(i))
		open := box.Bottom - yrange.Translate(p.Open)
		closed := box.Bottom - yrange.Translate(p.Close)
		high := box.Bottom - yrange.Translate(p.High)
		low := box.Bottom - yrange.Translate(p.Low)

		color := CandleNoChangeColor
		switch {
		case p.Close > p.Open:
			color = CandleUpColor
		case p.Close < p.Open:
			color = CandleDownColor
		}

		r.ResetStyle()
		r.SetStrokeColor(color)
		r.SetStrokeWidth(1)
		r.MoveTo(x, high)
		r.LineTo(x, low)
		r.Stroke()

		top, bottom := open, closed
		if top > bottom {
			top, bottom = bottom, top
		}
		if bottom == top {
			bottom++
		}

		left, right := x-int(half), x+int(half)
		r.ResetStyle()
		r.SetFillColor(color)
		r.SetStrokeColor(drawing.ColorTransparent)
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.Close()
		r.Fill()
	}

	r.ResetStyle()
}
