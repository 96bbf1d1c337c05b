package dataconnector

import "github.com/prometheus/client_golang/prometheus"

const (
	refreshResultSuccess           = "success"
	refreshResultConnectivityError = "connectivity_error"
	refreshResultFailure           = "failure"
)

var (
	// RefreshTotal counts refresh cycles per connector and outcome
	RefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboard_connector_refresh_total",
			Help: "Total number of refresh cycles run by polling data connectors.",
		},
		[]string{"connector", "result"},
	)

	RefreshDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "onboard_connector_refresh_duration_seconds",
			Help:    "Time spent in a single refresh cycle.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"connector"},
	)

	// ConnectedStatus is 1 while a connector is running and has refreshed successfully
	ConnectedStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "onboard_connector_connected",
			Help: "Whether the connector is connected to its API (1=Connected, 0=Not connected).",
		},
		[]string{"connector"},
	)
)

func init() {
	prometheus.MustRegister(RefreshTotal)
	prometheus.MustRegister(RefreshDuration)
	prometheus.MustRegister(ConnectedStatus)
}
