package logging

import "net"

// A Tracer records events of the transmit-side record layer.
// Every callback is optional.
type Tracer struct {
	// ProvisionedKeys is called when keys for an encryption level are installed.
	ProvisionedKeys func(EncryptionLevel)
	// DroppedKeys is called when an encryption level is discarded.
	DroppedKeys func(EncryptionLevel)
	// UpdatedKeys is called when a 1-RTT key update is triggered.
	UpdatedKeys func(KeyPhase)
	// SealedPacket is called for every packet appended to a datagram.
	SealedPacket func(EncryptionLevel, PacketNumber, ByteCount)
	// QueuedDatagram is called when a coalescing datagram is finalized.
	QueuedDatagram func(size ByteCount, numPackets int)
	// SentDatagram is called when a datagram has been written to the sink.
	SentDatagram func(size ByteCount, addr net.Addr)
}

// NewMultiplexedTracer creates a new tracer that multiplexes events to
// multiple tracers.
func NewMultiplexedTracer(tracers ...*Tracer) *Tracer {
	if len(tracers) == 0 {
		return nil
	}
	if len(tracers) == 1 {
		return tracers[0]
	}
	return &Tracer{
		ProvisionedKeys: func(el EncryptionLevel) {
			for _, t := range tracers {
				if t.ProvisionedKeys != nil {
					t.ProvisionedKeys(el)
				}
			}
		},
		DroppedKeys: func(el EncryptionLevel) {
			for _, t := range tracers {
				if t.DroppedKeys != nil {
					t.DroppedKeys(el)
				}
			}
		},
		UpdatedKeys: func(p KeyPhase) {
			for _, t := range tracers {
				if t.UpdatedKeys != nil {
					t.UpdatedKeys(p)
				}
			}
		},
		SealedPacket: func(el EncryptionLevel, pn PacketNumber, size ByteCount) {
			for _, t := range tracers {
				if t.SealedPacket != nil {
					t.SealedPacket(el, pn, size)
				}
			}
		},
		QueuedDatagram: func(size ByteCount, numPackets int) {
			for _, t := range tracers {
				if t.QueuedDatagram != nil {
					t.QueuedDatagram(size, numPackets)
				}
			}
		},
		SentDatagram: func(size ByteCount, addr net.Addr) {
			for _, t := range tracers {
				if t.SentDatagram != nil {
					t.SentDatagram(size, addr)
				}
			}
		},
	}
}
