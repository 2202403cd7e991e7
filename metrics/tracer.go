// Package metrics provides a logging.Tracer that exposes record layer
// activity as Prometheus metrics.
package metrics

import (
	"net"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quic-rl/qtx/logging"
)

const metricNamespace = "qtx"

var (
	packetsSealed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "packets_sealed_total",
			Help:      "Packets sealed for transmission",
		},
		[]string{"enc_level"},
	)
	datagramsQueued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "datagrams_queued_total",
			Help:      "Datagrams finalized and queued for transmission",
		},
	)
	datagramsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "datagrams_sent_total",
			Help:      "Datagrams handed to the sink",
		},
	)
	bytesSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "sent_bytes_total",
			Help:      "Datagram payload bytes handed to the sink",
		},
	)
	keyUpdates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "key_updates_total",
			Help:      "1-RTT key updates triggered",
		},
	)
	keysDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "keys_dropped_total",
			Help:      "Encryption levels discarded",
		},
		[]string{"enc_level"},
	)
)

// NewTracer creates a new tracer using the default Prometheus registerer.
func NewTracer() *logging.Tracer {
	return NewTracerWithRegisterer(prometheus.DefaultRegisterer)
}

// NewTracerWithRegisterer creates a new tracer using a given Prometheus registerer.
func NewTracerWithRegisterer(registerer prometheus.Registerer) *logging.Tracer {
	for _, c := range [...]prometheus.Collector{
		packetsSealed,
		datagramsQueued,
		datagramsSent,
		bytesSent,
		keyUpdates,
		keysDropped,
	} {
		if err := registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
	return &logging.Tracer{
		SealedPacket: func(el logging.EncryptionLevel, _ logging.PacketNumber, _ logging.ByteCount) {
			packetsSealed.WithLabelValues(el.String()).Inc()
		},
		QueuedDatagram: func(logging.ByteCount, int) {
			datagramsQueued.Inc()
		},
		SentDatagram: func(size logging.ByteCount, _ net.Addr) {
			datagramsSent.Inc()
			bytesSent.Add(float64(size))
		},
		UpdatedKeys: func(logging.KeyPhase) {
			keyUpdates.Inc()
		},
		DroppedKeys: func(el logging.EncryptionLevel) {
			keysDropped.WithLabelValues(el.String()).Inc()
		},
	}
}
