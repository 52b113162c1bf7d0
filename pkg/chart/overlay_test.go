package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/bollband/pkg/types"
)

func testBands() []types.BandPoint {
	return []types.BandPoint{
		{Timestamp: 1000, Upper: 12, Middle: 10, Lower: 8},
		{Timestamp: 2000, Upper: 13, Middle: 11, Lower: 9},
		{Timestamp: 3000, Upper: 14, Middle: 12, Lower: 10},
		{Timestamp: 4000, Upper: 15, Middle: 13, Lower: 11},
	}
}

func testFrame(from, to int) (*Frame, *Recorder) {
	rec := NewRecorder()
	return &Frame{
		Range:    VisibleRange{From: from, To: to},
		BarSpace: BarSpace{Bar: 10},
		YFunc:    LinearY(0, 20, 200),
		Canvas:   rec,
	}, rec
}

func TestRender_AllBandsAndFill(t *testing.T) {
	settings := types.DefaultBollingerSettings()
	frame, rec := testFrame(0, 3)

	handled := Render(testBands(), settings, frame)
	assert.True(t, handled)

	// 2 segment pairs: (0,1) and (1,2); index 2 is the last visible one
	assert.Equal(t, 2, rec.Count(OpFill))
	assert.Equal(t, 6, rec.Count(OpStroke))
	assert.Equal(t, 1, rec.Count(OpSave))
	assert.Equal(t, 1, rec.Count(OpRestore))
	assert.True(t, rec.Balanced())
	assert.Equal(t, 1, rec.MaxDepth())
	assert.Len(t, rec.Commands(), 2+2*(8+3*7))

	cmds := rec.Commands()
	assert.Equal(t, OpSave, cmds[0].Op)
	assert.Equal(t, OpRestore, cmds[len(cmds)-1].Op)

	// the fill quad of the first pair comes first
	assert.Equal(t, []Command{
		{Op: OpFillStyle, Color: "#3B82F61a"},
		{Op: OpBeginPath},
		{Op: OpMoveTo, X: 5, Y: 80},
		{Op: OpLineTo, X: 15, Y: 70},
		{Op: OpLineTo, X: 15, Y: 110},
		{Op: OpLineTo, X: 5, Y: 120},
		{Op: OpClosePath},
		{Op: OpFill},
	}, cmds[1:9])

	// then the upper line segment
	assert.Equal(t, []Command{
		{Op: OpStrokeStyle, Color: "#10B981"},
		{Op: OpLineWidth, Width: 1},
		{Op: OpLineDash, Dash: []float64{}},
		{Op: OpBeginPath},
		{Op: OpMoveTo, X: 5, Y: 80},
		{Op: OpLineTo, X: 15, Y: 70},
		{Op: OpStroke},
	}, cmds[9:16])

	var strokeColors []string
	for _, c := range cmds {
		if c.Op == OpStrokeStyle {
			strokeColors = append(strokeColors, c.Color)
		}
	}
	assert.Equal(t, []string{"#10B981", "#3B82F6", "#EF4444", "#10B981", "#3B82F6", "#EF4444"}, strokeColors)
}

func TestRender_NoFill(t *testing.T) {
	settings := types.DefaultBollingerSettings()
	settings.BackgroundFill.Show = false

	frame, rec := testFrame(0, 4)
	Render(testBands(), settings, frame)

	assert.Equal(t, 0, rec.Count(OpFill))
	assert.Equal(t, 0, rec.Count(OpFillStyle))
	assert.Equal(t, 9, rec.Count(OpStroke))
}

func TestRender_HiddenBandsAndDashes(t *testing.T) {
	settings := types.DefaultBollingerSettings()
	settings.BackgroundFill.Show = false
	settings.UpperBand.Show = false
	settings.LowerBand.LineStyle = types.LineStyleDashed
	settings.LowerBand.LineWidth = 3

	frame, rec := testFrame(0, 2)
	Render(testBands(), settings, frame)

	assert.Equal(t, 2, rec.Count(OpStroke))

	var dashes [][]float64
	var widths []float64
	for _, c := range rec.Commands() {
		switch c.Op {
		case OpLineDash:
			dashes = append(dashes, c.Dash)
		case OpLineWidth:
			widths = append(widths, c.Width)
		}
	}
	assert.Equal(t, [][]float64{{}, {5, 5}}, dashes)
	assert.Equal(t, []float64{1, 3}, widths)
}

func TestRender_EmptyAndSinglePoint(t *testing.T) {
	settings := types.DefaultBollingerSettings()

	frame, rec := testFrame(0, 10)
	assert.True(t, Render(nil, settings, frame))
	assert.Empty(t, rec.Commands())

	frame, rec = testFrame(0, 1)
	assert.True(t, Render(testBands(), settings, frame))
	assert.Empty(t, rec.Commands())
}

func TestRender_ClampsVisibleRange(t *testing.T) {
	settings := types.DefaultBollingerSettings()
	settings.BackgroundFill.Show = false
	settings.UpperBand.Show = false
	settings.LowerBand.Show = false

	frame, rec := testFrame(-5, 100)
	Render(testBands(), settings, frame)

	// clamped to [0, 4): 3 middle segments
	assert.Equal(t, 3, rec.Count(OpStroke))

	var moves []float64
	for _, c := range rec.Commands() {
		if c.Op == OpMoveTo {
			moves = append(moves, c.X)
		}
	}
	assert.Equal(t, []float64{5, 15, 25}, moves)

	frame, rec = testFrame(2, 4)
	Render(testBands(), settings, frame)
	require.Equal(t, 1, rec.Count(OpStroke))
}

func TestRender_SkipsNonFiniteSegments(t *testing.T) {
	settings := types.DefaultBollingerSettings()

	frame, rec := testFrame(0, 4)
	frame.YFunc = func(v float64) float64 {
		// a broken log mapping of one value
		if v == 13 {
			return math.NaN()
		}
		return v
	}

	assert.True(t, Render(testBands(), settings, frame))
	assert.True(t, rec.Balanced())

	// value 13 is band[1].Upper and band[3].Middle:
	// fill (0,1) and (1,2) are dropped, upper (0,1) and (1,2), middle (2,3)
	assert.Equal(t, 1, rec.Count(OpFill))
	assert.Equal(t, 9-3, rec.Count(OpStroke))
}

func TestRender_DoesNotMutateInputs(t *testing.T) {
	bands := testBands()
	settings := types.DefaultBollingerSettings()
	frame, _ := testFrame(0, 4)

	Render(bands, settings, frame)
	assert.Equal(t, testBands(), bands)
	assert.Equal(t, types.DefaultBollingerSettings(), settings)
}

func TestBarSpace(t *testing.T) {
	b := BarSpace{Bar: 8}
	assert.Equal(t, 4.0, b.IndexToX(0))
	assert.Equal(t, 12.0, b.IndexToX(1))

	frame := &Frame{BarSpace: b, XFunc: func(i int) float64 { return float64(i) * 100 }}
	assert.Equal(t, 200.0, frame.IndexToX(2))
	assert.Equal(t, 8.0, frame.BarWidth())
}

func TestVisibleRange_Clamp(t *testing.T) {
	assert.Equal(t, VisibleRange{From: 0, To: 5}, VisibleRange{From: -1, To: 9}.Clamp(5))
	assert.Equal(t, VisibleRange{From: 5, To: 5}, VisibleRange{From: 7, To: 9}.Clamp(5))
	assert.Equal(t, VisibleRange{From: 5, To: 5}, VisibleRange{From: 100, To: 0}.Clamp(5))
	assert.Equal(t, VisibleRange{From: 0, To: 0}, VisibleRange{From: 3, To: 4}.Clamp(0))
	assert.Equal(t, VisibleRange{From: 2, To: 2}, VisibleRange{From: 2, To: 1}.Clamp(5))
	assert.Equal(t, 0, VisibleRange{From: 3, To: 1}.Len())
}

func TestLinearY(t *testing.T) {
	y := LinearY(0, 100, 200)
	assert.Equal(t, 200.0, y(0))
	assert.Equal(t, 0.0, y(100))
	assert.Equal(t, 100.0, y(50))
	assert.Equal(t, 50.0, LinearY(1, 1, 100)(1))
}
