// Package metrics holds the Prometheus collectors of the signaling server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "signal"

// Join results.
const (
	JoinOK       = "ok"
	JoinRejoin   = "rejoin"
	JoinFull     = "full"
	JoinThrottle = "throttled"
)

var (
	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rooms_active",
		Help:      "Number of sessions with at least one member.",
	})
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connections_active",
		Help:      "Number of open signaling connections.",
	})
	Joins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "joins_total",
		Help:      "Join attempts by result.",
	}, []string{"result"})
	Relayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relayed_total",
		Help:      "Signaling messages delivered to peers, by event.",
	}, []string{"event"})
	SendDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "send_dropped_total",
		Help:      "Outbound messages that could not be queued.",
	})
)
