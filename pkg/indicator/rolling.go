package indicator

import (
	"math"

	"github.com/c9s/bollband/pkg/types"
)

// RollingStdDev keeps the mean and the population variance of the last
// `window` values in O(1) per update. It uses a circular buffer and the
// sliding-window form of Welford's update, which stays stable for prices far
// from zero where sum-of-squares would cancel. Accumulated rounding drift is
// dropped by an exact two-pass resync once every `window` slides, so the cost
// stays O(1) amortized.
type RollingStdDev struct {
	window int
	buf    []float64
	idx    int
	count  int
	slides int

	mean float64
	m2   float64
}

func NewRollingStdDev(window int) *RollingStdDev {
	if window < 1 {
		window = 1
	}

	return &RollingStdDev{
		window: window,
		buf:    make([]float64, window),
	}
}

func (r *RollingStdDev) Update(v float64) {
	if r.count < r.window {
		// growing phase, plain Welford
		r.buf[r.idx] = v
		r.idx = (r.idx + 1) % r.window
		r.count++

		delta := v - r.mean
		r.mean += delta / float64(r.count)
		r.m2 += delta * (v - r.mean)
		return
	}

	old := r.buf[r.idx]
	r.buf[r.idx] = v
	r.idx = (r.idx + 1) % r.window

	r.slides++
	if r.slides%r.window == 0 {
		r.resync()
		return
	}

	oldMean := r.mean
	r.mean += (v - old) / float64(r.window)
	r.m2 += (v - old) * (v - r.mean + old - oldMean)
	if r.m2 < 0 {
		r.m2 = 0
	}
}

func (r *RollingStdDev) resync() {
	var sum float64
	for _, v := range r.buf {
		sum += v
	}
	r.mean = sum / float64(r.window)

	var m2 float64
	for _, v := range r.buf {
		d := v - r.mean
		m2 += d * d
	}
	r.m2 = m2
}

func (r *RollingStdDev) Ready() bool {
	return r.count >= r.window
}

func (r *RollingStdDev) Mean() float64 {
	return r.mean
}

// Variance is the population variance of the current window.
func (r *RollingStdDev) Variance() float64 {
	if r.count == 0 {
		return 0
	}
	return r.m2 / float64(r.count)
}

func (r *RollingStdDev) StdDev() float64 {
	return math.Sqrt(r.Variance())
}

func (r *RollingStdDev) Reset() {
	r.idx = 0
	r.count = 0
	r.slides = 0
	r.mean = 0
	r.m2 = 0
	for i := range r.buf {
		r.buf[i] = 0
	}
}

// BollingerRolling produces the same band series as Bollinger, in O(n)
// instead of O(n*length). Results agree within floating point tolerance.
func BollingerRolling(series []types.PricePoint, settings types.BollingerSettings) ([]types.BandPoint, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	var window = settings.Length
	if len(series) < window {
		return nil, nil
	}

	var mapper = SourceMapper(settings.Source)
	var std = NewRollingStdDev(window)
	var bands = make([]types.BandPoint, 0, len(series)-window+1)
	for i, p := range series {
		std.Update(mapper(p))
		if !std.Ready() {
			continue
		}

		mean := std.Mean()
		band := std.StdDev() * settings.StdDevMultiplier
		bands = append(bands, types.BandPoint{
			Timestamp: series[OffsetIndex(i, settings.Offset, len(series))].Timestamp,
			Upper:     mean + band,
			Middle:    mean,
			Lower:     mean - band,
		})
	}

	return bands, nil
}
