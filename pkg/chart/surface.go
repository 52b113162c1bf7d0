package chart

// Surface is the 2D drawing capability a host lends to the overlay for the
// duration of one Render call. The overlay must not keep it afterwards.
//
// Colors are CSS-like hex strings: "#RRGGBB" for strokes and "#RRGGBBAA"
// for translucent fills.
type Surface interface {
	Save()
	Restore()

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()

	Stroke()
	Fill()

	SetStrokeStyle(color string)
	SetFillStyle(color string)
	SetLineWidth(width float64)
	SetLineDash(segments []float64)
}

// VisibleRange is a half-open [From, To) range of band indexes scrolled into view.
type VisibleRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Clamp limits the range to [0, n).
func (r VisibleRange) Clamp(n int) VisibleRange {
	if r.From < 0 {
		r.From = 0
	}
	if r.From > n {
		r.From = n
	}
	if r.To > n {
		r.To = n
	}
	if r.To < r.From {
		r.To = r.From
	}
	return r
}

func (r VisibleRange) Len() int {
	if r.To <= r.From {
		return 0
	}
	return r.To - r.From
}

// RenderContext is supplied by the chart host for every frame.
type RenderContext interface {
	VisibleRange() VisibleRange

	// IndexToX maps a band index to a horizontal pixel position.
	IndexToX(i int) float64

	// ValueToY maps a price to a vertical pixel position. It is monotonic but
	// not necessarily linear.
	ValueToY(v float64) float64

	BarWidth() float64

	Surface() Surface
}

// BarSpace places logical index i at the center of its bar.
type BarSpace struct {
	Bar float64
}

func (b BarSpace) IndexToX(i int) float64 {
	return b.Bar * (float64(i) + 0.5)
}

// Frame is a ready-made RenderContext for hosts that know their geometry up front.
type Frame struct {
	Range    VisibleRange
	BarSpace BarSpace

	// XFunc overrides BarSpace when set.
	XFunc func(i int) float64

	YFunc  func(v float64) float64
	Canvas Surface
}

var _ RenderContext = (*Frame)(nil)

func (f *Frame) VisibleRange() VisibleRange {
	return f.Range
}

func (f *Frame) IndexToX(i int) float64 {
	if f.XFunc != nil {
		return f.XFunc(i)
	}
	return f.BarSpace.IndexToX(i)
}

func (f *Frame) ValueToY(v float64) float64 {
	return f.YFunc(v)
}

func (f *Frame) BarWidth() float64 {
	return f.BarSpace.Bar
}

func (f *Frame) Surface() Surface {
	return f.Canvas
}

// LinearY maps [min, max] onto [height, 0], the usual screen orientation.
func LinearY(min, max, height float64) func(v float64) float64 {
	return func(v float64) float64 {
		if max == min {
			return height / 2
		}
		return height - (v-min)/(max-min)*height
	}
}
