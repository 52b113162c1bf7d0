package chart

import (
	"time"

	"github.com/c9s/bollband/pkg/indicator"
	"github.com/c9s/bollband/pkg/metrics"
	"github.com/c9s/bollband/pkg/types"
)

// Overlay keeps the band series in sync with the latest price series and
// settings. It recomputes eagerly when either input changes and redraws on
// every frame. It is meant to be driven from a single rendering goroutine.
type Overlay struct {
	series   types.PriceSeries
	settings types.BollingerSettings

	bands []types.BandPoint
	err   error
	dirty bool

	computations int
}

func NewOverlay(series types.PriceSeries, settings types.BollingerSettings) *Overlay {
	o := &Overlay{series: series, settings: settings, dirty: true}
	o.recompute()
	return o
}

// SetSeries replaces the price series; a replaced series always counts as a change.
func (o *Overlay) SetSeries(series types.PriceSeries) {
	o.series = series
	o.dirty = true
	o.recompute()
}

// SetSettings replaces the settings. Settings equal by value to the current
// ones do not trigger a recomputation.
func (o *Overlay) SetSettings(settings types.BollingerSettings) {
	if settings == o.settings && !o.dirty {
		return
	}

	o.settings = settings
	o.dirty = true
	o.recompute()
}

// Apply merges a partial settings update.
func (o *Overlay) Apply(patch *types.SettingsPatch) {
	o.SetSettings(patch.Apply(o.settings))
}

func (o *Overlay) recompute() {
	if !o.dirty {
		return
	}

	start := time.Now()
	o.bands, o.err = indicator.Bollinger(o.series, o.settings)
	o.dirty = false
	o.computations++

	metrics.ComputeTotalMetrics.WithLabelValues("overlay").Inc()
	metrics.ComputeDurationMetrics.WithLabelValues("overlay").Observe(time.Since(start).Seconds())
	metrics.BandPointsMetrics.Set(float64(len(o.bands)))

	if o.err != nil {
		log.WithError(o.err).Warnf("bollinger settings rejected: %s", o.settings)
		return
	}

	log.Debugf("recomputed %s: %d candles -> %d band points", o.settings, len(o.series), len(o.bands))
}

func (o *Overlay) Settings() types.BollingerSettings {
	return o.settings
}

func (o *Overlay) Bands() []types.BandPoint {
	return o.bands
}

// Err is the configuration error of the last computation, if any.
func (o *Overlay) Err() error {
	return o.err
}

// Computations counts how many times the bands were computed.
func (o *Overlay) Computations() int {
	return o.computations
}

// Draw redraws the overlay for one host frame. With rejected settings there
// is nothing to draw and the frame is still reported as handled.
func (o *Overlay) Draw(ctx RenderContext) bool {
	if o.err != nil {
		return true
	}
	return Render(o.bands, o.settings, ctx)
}
