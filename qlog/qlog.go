// Package qlog writes record layer events in a qlog-flavored NDJSON
// format: one JSON event object per line.
package qlog

import (
	"io"
	"net"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/quic-rl/qtx/logging"
)

type writer struct {
	w         io.Writer
	reference time.Time
}

func newWriter(w io.Writer) *writer {
	return &writer{
		w:         w,
		reference: time.Now(),
	}
}

func (w *writer) record(details eventDetails) {
	ev := event{
		RelativeTime: time.Since(w.reference),
		eventDetails: details,
	}
	if err := gojay.NewEncoder(w.w).EncodeObject(ev); err != nil {
		return
	}
	w.w.Write([]byte{'\n'})
}

// NewTracer creates a tracer writing qlog events to w.
// Writes happen synchronously from the record layer's caller; wrap w in a
// bufio.Writer when tracing to a file.
func NewTracer(w io.Writer) *logging.Tracer {
	qw := newWriter(w)
	return &logging.Tracer{
		ProvisionedKeys: func(el logging.EncryptionLevel) {
			qw.record(eventKeysProvisioned{EncLevel: el})
		},
		DroppedKeys: func(el logging.EncryptionLevel) {
			qw.record(eventKeysDiscarded{EncLevel: el})
		},
		UpdatedKeys: func(p logging.KeyPhase) {
			qw.record(eventKeysUpdated{KeyPhase: p})
		},
		SealedPacket: func(el logging.EncryptionLevel, pn logging.PacketNumber, size logging.ByteCount) {
			qw.record(eventPacketSealed{EncLevel: el, PacketNumber: pn, Size: size})
		},
		QueuedDatagram: func(size logging.ByteCount, numPackets int) {
			qw.record(eventDatagramQueued{Size: size, NumPackets: numPackets})
		},
		SentDatagram: func(size logging.ByteCount, _ net.Addr) {
			qw.record(eventDatagramSent{Size: size})
		},
	}
}
