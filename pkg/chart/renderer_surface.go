package chart

import (
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/bollband/pkg/types"
)

type surfaceState struct {
	stroke drawing.Color
	fill   drawing.Color
	width  float64
	dash   []float64
}

// RendererSurface adapts a go-chart Renderer to the Surface interface.
// Coordinates are translated by the canvas box origin and rounded to the
// integer pixels go-chart works with. go-chart has no style stack, so Save
// and Restore are emulated here.
type RendererSurface struct {
	r      gochart.Renderer
	origin gochart.Box

	state surfaceState
	stack []surfaceState
}

var _ Surface = (*RendererSurface)(nil)

func NewRendererSurface(r gochart.Renderer, origin gochart.Box) *RendererSurface {
	return &RendererSurface{
		r:      r,
		origin: origin,
		state: surfaceState{
			stroke: drawing.ColorBlack,
			fill:   drawing.ColorTransparent,
			width:  1,
		},
	}
}

func (s *RendererSurface) Save() {
	saved := s.state
	saved.dash = append([]float64(nil), s.state.dash...)
	s.stack = append(s.stack, saved)
}

func (s *RendererSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}

	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]

	s.r.ResetStyle()
	s.r.SetStrokeColor(s.state.stroke)
	s.r.SetFillColor(s.state.fill)
	s.r.SetStrokeWidth(s.state.width)
	s.r.SetStrokeDashArray(s.state.dash)
}

// BeginPath is implicit in go-chart: Stroke and Fill consume the current path.
func (s *RendererSurface) BeginPath() {}

func (s *RendererSurface) MoveTo(x, y float64) {
	s.r.MoveTo(s.px(x, y))
}

func (s *RendererSurface) LineTo(x, y float64) {
	s.r.LineTo(s.px(x, y))
}

func (s *RendererSurface) ClosePath() {
	s.r.Close()
}

// Stroke strokes without filling; the vector renderer would otherwise apply both.
func (s *RendererSurface) Stroke() {
	s.r.SetFillColor(drawing.ColorTransparent)
	s.r.SetStrokeColor(s.state.stroke)
	s.r.Stroke()
	s.r.SetFillColor(s.state.fill)
}

func (s *RendererSurface) Fill() {
	s.r.SetStrokeColor(drawing.ColorTransparent)
	s.r.SetFillColor(s.state.fill)
	s.r.Fill()
	s.r.SetStrokeColor(s.state.stroke)
}

func (s *RendererSurface) SetStrokeStyle(color string) {
	c, err := types.ParseDrawingColor(color)
	if err != nil {
		log.WithError(err).Warnf("ignoring stroke color %q", color)
		return
	}

	s.state.stroke = c
	s.r.SetStrokeColor(c)
}

func (s *RendererSurface) SetFillStyle(color string) {
	c, err := types.ParseDrawingColor(color)
	if err != nil {
		log.WithError(err).Warnf("ignoring fill color %q", color)
		return
	}

	s.state.fill = c
	s.r.SetFillColor(c)
}

func (s *RendererSurface) SetLineWidth(width float64) {
	s.state.width = width
	s.r.SetStrokeWidth(width)
}

// SetLineDash takes an empty or nil slice as a continuous line.
func (s *RendererSurface) SetLineDash(segments []float64) {
	if len(segments) == 0 {
		segments = nil
	}

	s.state.dash = segments
	s.r.SetStrokeDashArray(segments)
}

func (s *RendererSurface) px(x, y float64) (int, int) {
	return s.origin.Left + int(math.Round(x)), s.origin.Top + int(math.Round(y))
}
