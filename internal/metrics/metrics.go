// Package metrics exposes Prometheus instrumentation for the signaling core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "beacon_rooms_active",
		Help: "Number of rooms currently registered.",
	})
	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beacon_signal_messages_total",
		Help: "Recognized inbound signaling messages by type.",
	}, []string{"type"})
	RelayedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beacon_signal_relayed_total",
		Help: "Relayed handshake payloads by type.",
	}, []string{"type"})
	DroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beacon_signal_dropped_total",
		Help: "Outbound messages dropped on send.",
	})
	SweptTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beacon_rooms_swept_total",
		Help: "Rooms removed by the sweeper, by reason.",
	}, []string{"reason"})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
