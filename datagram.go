package qtx

import "net"

// A Datagram is a fully assembled UDP payload, possibly containing multiple
// coalesced packets.
type Datagram struct {
	Data []byte
	// Peer is the destination address, or nil if the sink doesn't need one.
	Peer net.Addr
	// Local is the local source address, or nil.
	Local net.Addr
}

// A DatagramSink transmits datagrams for the record layer.
// The record layer doesn't care whether the sink is a connected UDP socket,
// a sendmmsg batcher, or a test capture.
type DatagramSink interface {
	// Send attempts to send as many of the given datagrams as possible,
	// in order. It returns the number of datagrams sent; partial success
	// is allowed. A sink that would block returns the count sent so far
	// and a nil error.
	Send(dgrams []Datagram) (int, error)
	// SupportsLocalAddr says if the sink honors the Local field of
	// submitted datagrams. If false, Local must be left nil.
	SupportsLocalAddr() bool
}

// a queued datagram retains the buffer it was assembled in, so the buffer
// can go back into the pool once the sink took the datagram
type queuedDatagram struct {
	Datagram
	numPackets int
	buf        *packetBuffer
}

func addrsEqual(a, b net.Addr) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Network() == b.Network() && a.String() == b.String()
}
