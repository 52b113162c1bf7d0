package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/bollband/pkg/types"
)

type strokeCall struct {
	color drawing.Color
	width float64
	dash  []float64
}

// styleRenderer keeps the style a go-chart renderer would hold. Only the
// calls made by RendererSurface are implemented.
type styleRenderer struct {
	gochart.Renderer

	stroke drawing.Color
	fill   drawing.Color
	width  float64
	dash   []float64

	resets  int
	moves   [][2]int
	strokes []strokeCall
	fills   []drawing.Color
}

func (r *styleRenderer) ResetStyle() {
	r.resets++
	r.stroke, r.fill, r.width, r.dash = drawing.Color{}, drawing.Color{}, 0, nil
}

func (r *styleRenderer) SetStrokeColor(c drawing.Color) { r.stroke = c }
func (r *styleRenderer) SetFillColor(c drawing.Color) { r.fill = c }
func (r *styleRenderer) SetStrokeWidth(width float64) { r.width = width }
func (r *styleRenderer) SetStrokeDashArray(dash []float64) { r.dash = dash }
func (r *styleRenderer) MoveTo(x, y int) { r.moves = append(r.moves, [2]int{x, y}) }
func (r *styleRenderer) LineTo(x, y int) {}
func (r *styleRenderer) Close() {}

func (r *styleRenderer) Stroke() {
	r.strokes = append(r.strokes, strokeCall{color: r.stroke, width: r.width, dash: r.dash})
}

func (r *styleRenderer) Fill() {
	r.fills = append(r.fills, r.fill)
}

func mustDrawingColor(t *testing.T, s string) drawing.Color {
	c, err := types.ParseDrawingColor(s)
	require.NoError(t, err)
	return c
}

func TestRendererSurface_SaveRestore(t *testing.T) {
	r := &styleRenderer{}
	surface := NewRendererSurface(r, gochart.Box{})

	surface.SetStrokeStyle("#FF0000")
	surface.SetLineWidth(2)

	surface.Save()
	surface.SetStrokeStyle("#0000FF")
	surface.SetFillStyle("#00FF0080")
	surface.SetLineWidth(3)
	surface.SetLineDash([]float64{5, 5})
	assert.Equal(t, []float64{5, 5}, r.dash)
	surface.Restore()

	assert.Equal(t, mustDrawingColor(t, "#FF0000"), r.stroke)
	assert.Equal(t, drawing.ColorTransparent, r.fill)
	assert.Equal(t, 2.0, r.width)
	assert.Nil(t, r.dash)

	// an unbalanced Restore leaves the style alone
	resets := r.resets
	surface.Restore()
	assert.Equal(t, resets, r.resets)
	assert.Equal(t, mustDrawingColor(t, "#FF0000"), r.stroke)
}

func TestRendererSurface_RenderDoesNotLeakStyle(t *testing.T) {
	r := &styleRenderer{}
	surface := NewRendererSurface(r, gochart.Box{Top: 10, Left: 20})

	settings := types.DefaultBollingerSettings()
	settings.UpperBand.LineStyle = types.LineStyleDashed
	settings.UpperBand.LineWidth = 3

	frame := &Frame{
		Range:    VisibleRange{From: 0, To: 2},
		BarSpace: BarSpace{Bar: 10},
		YFunc:    LinearY(0, 20, 200),
		Canvas:   surface,
	}
	assert.True(t, Render(testBands(), settings, frame))

	// the host gets the style it had before the overlay ran
	assert.Equal(t, 1, r.resets)
	assert.Equal(t, drawing.ColorBlack, r.stroke)
	assert.Equal(t, drawing.ColorTransparent, r.fill)
	assert.Equal(t, 1.0, r.width)
	assert.Nil(t, r.dash)

	require.Len(t, r.fills, 1)
	assert.Equal(t, mustDrawingColor(t, "#3B82F61a"), r.fills[0])

	require.Len(t, r.strokes, 3)
	assert.Equal(t, strokeCall{color: mustDrawingColor(t, "#10B981"), width: 3, dash: []float64{5, 5}}, r.strokes[0])
	assert.Equal(t, mustDrawingColor(t, "#3B82F6"), r.strokes[1].color)
	assert.Nil(t, r.strokes[1].dash)
	assert.Equal(t, mustDrawingColor(t, "#EF4444"), r.strokes[2].color)

	// coordinates are shifted by the canvas box origin: upper(0) = (5, 80)
	require.NotEmpty(t, r.moves)
	assert.Equal(t, [2]int{25, 90}, r.moves[0])
}
