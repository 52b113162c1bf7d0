package chart

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/c9s/bollband/pkg/metrics"
	"github.com/c9s/bollband/pkg/types"
)

var log = logrus.WithField("component", "overlay")

const fillKind = "fill"

// Render draws the band overlay for the visible range of the host frame.
//
// For each visible index i that has a visible successor i+1 it draws, in
// order, the background fill quad and the enabled upper, middle and lower
// line segments from i to i+1. The last visible index draws nothing forward.
// Segments with a non-finite pixel coordinate are skipped.
//
// All style changes are scoped by Save/Restore on the surface. Render always
// reports the overlay as handled, so the host skips its default figure.
func Render(bands []types.BandPoint, settings types.BollingerSettings, ctx RenderContext) bool {
	metrics.RenderTotalMetrics.Inc()

	visible := ctx.VisibleRange().Clamp(len(bands))
	if visible.Len() < 2 {
		return true
	}

	surface := ctx.Surface()
	surface.Save()
	defer surface.Restore()

	fill := settings.BackgroundFill
	fillColor := fill.FillColor()

	for i := visible.From; i < visible.To-1; i++ {
		cur, next := bands[i], bands[i+1]
		x0, x1 := ctx.IndexToX(i), ctx.IndexToX(i+1)

		if fill.Show {
			drawFill(surface, fillColor,
				x0, ctx.ValueToY(cur.Upper), ctx.ValueToY(cur.Lower),
				x1, ctx.ValueToY(next.Upper), ctx.ValueToY(next.Lower))
		}

		for _, kind := range types.BandKinds {
			style := settings.Band(kind)
			if !style.Show {
				continue
			}

			drawSegment(surface, kind, style,
				x0, ctx.ValueToY(cur.Value(kind)),
				x1, ctx.ValueToY(next.Value(kind)))
		}
	}

	return true
}

func drawFill(surface Surface, color string, x0, upper0, lower0, x1, upper1, lower1 float64) {
	if !finite(x0, upper0, lower0, x1, upper1, lower1) {
		metrics.SkippedSegmentsMetrics.WithLabelValues(fillKind).Inc()
		log.Debugf("skip fill segment at x=%f: non-finite coordinate", x0)
		return
	}

	surface.SetFillStyle(color)
	surface.BeginPath()
	surface.MoveTo(x0, upper0)
	surface.LineTo(x1, upper1)
	surface.LineTo(x1, lower1)
	surface.LineTo(x0, lower0)
	surface.ClosePath()
	surface.Fill()
	metrics.RenderSegmentsMetrics.WithLabelValues(fillKind).Inc()
}

func drawSegment(surface Surface, kind types.BandKind, style types.BandStyle, x0, y0, x1, y1 float64) {
	if !finite(x0, y0, x1, y1) {
		metrics.SkippedSegmentsMetrics.WithLabelValues(string(kind)).Inc()
		log.Debugf("skip %s segment at x=%f: non-finite coordinate", kind, x0)
		return
	}

	surface.SetStrokeStyle(style.Color.String())
	surface.SetLineWidth(float64(style.LineWidth))
	surface.SetLineDash(style.LineStyle.DashArray())
	surface.BeginPath()
	surface.MoveTo(x0, y0)
	surface.LineTo(x1, y1)
	surface.Stroke()
	metrics.RenderSegmentsMetrics.WithLabelValues(string(kind)).Inc()
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
