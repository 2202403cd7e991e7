package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/quic-rl/qtx/logging"
)

func TestTracerMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	tracer := NewTracerWithRegisterer(registry)

	tracer.SealedPacket(logging.EncryptionInitial, 0, 1200)
	tracer.SealedPacket(logging.EncryptionInitial, 1, 1200)
	tracer.SealedPacket(logging.Encryption1RTT, 0, 100)
	require.Equal(t, float64(2), testutil.ToFloat64(packetsSealed.WithLabelValues("Initial")))
	require.Equal(t, float64(1), testutil.ToFloat64(packetsSealed.WithLabelValues("1-RTT")))

	tracer.QueuedDatagram(1200, 2)
	require.Equal(t, float64(1), testutil.ToFloat64(datagramsQueued))

	tracer.SentDatagram(1200, nil)
	tracer.SentDatagram(800, nil)
	require.Equal(t, float64(2), testutil.ToFloat64(datagramsSent))
	require.Equal(t, float64(2000), testutil.ToFloat64(bytesSent))

	tracer.UpdatedKeys(1)
	require.Equal(t, float64(1), testutil.ToFloat64(keyUpdates))

	tracer.DroppedKeys(logging.EncryptionHandshake)
	require.Equal(t, float64(1), testutil.ToFloat64(keysDropped.WithLabelValues("Handshake")))
}

func TestTracerRegistersOnlyOnce(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NotPanics(t, func() {
		NewTracerWithRegisterer(registry)
		NewTracerWithRegisterer(registry)
	})
}
