package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var HTTPRequestMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bollband_http_requests_total",
		Help: "number of served http requests",
	}, []string{"method", "route", "status"})

var ReloadTotalMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bollband_price_reload_total",
		Help: "number of scheduled price data reloads",
	}, []string{"result"})

var LoadedCandlesMetrics = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "bollband_loaded_candles",
		Help: "number of candles currently loaded",
	})

var WebsocketClientsMetrics = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "bollband_websocket_clients",
		Help: "number of connected websocket clients",
	})

func init() {
	prometheus.MustRegister(
		HTTPRequestMetrics,
		ReloadTotalMetrics,
		LoadedCandlesMetrics,
		WebsocketClientsMetrics,
	)
}
