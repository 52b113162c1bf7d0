package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var ComputeTotalMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bollband_compute_total",
		Help: "number of band series computations",
	}, []string{"method"})

var ComputeDurationMetrics = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bollband_compute_duration_seconds",
		Help:    "time spent computing one band series",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"method"})

var BandPointsMetrics = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "bollband_band_points",
		Help: "number of band points produced by the last computation",
	})

var RenderTotalMetrics = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "bollband_overlay_render_total",
		Help: "number of overlay draw passes",
	})

var RenderSegmentsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bollband_overlay_segments_total",
		Help: "number of drawn overlay segments",
	}, []string{"kind"})

var SkippedSegmentsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bollband_overlay_skipped_segments_total",
		Help: "number of overlay segments skipped because the host mapping returned a non-finite coordinate",
	}, []string{"kind"})

func init() {
	prometheus.MustRegister(
		ComputeTotalMetrics,
		ComputeDurationMetrics,
		BandPointsMetrics,
		RenderTotalMetrics,
		RenderSegmentsMetrics,
		SkippedSegmentsMetrics,
	)
}
