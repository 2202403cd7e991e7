package qtx

import (
	"net"

	"github.com/quic-rl/qtx/internal/protocol"
	"github.com/quic-rl/qtx/internal/wire"
)

// A Packet is a logical packet submitted to WritePacket.
// It is only borrowed for the duration of the call.
type Packet struct {
	// Type selects the header form and the encryption level.
	Type protocol.PacketType

	// Version, SrcConnectionID and Token are only serialized into long
	// header packets. The Token is only serialized into Initial packets.
	Version          protocol.Version
	SrcConnectionID  protocol.ConnectionID
	DestConnectionID protocol.ConnectionID
	Token            []byte

	// SpinBit is only serialized into short header packets.
	SpinBit bool

	// PacketNumber is the full packet number, used for encryption.
	// It is transmitted truncated to PacketNumberLen bytes. Choosing a
	// PacketNumberLen large enough for the receiver to reconstruct the
	// packet number is the caller's responsibility.
	PacketNumber    protocol.PacketNumber
	PacketNumberLen protocol.PacketNumberLen

	// Payload holds the packet payload as a list of buffers.
	// Zero-length entries are permitted. The data is copied exactly once,
	// as it is encrypted into the outgoing datagram.
	Payload [][]byte

	// Peer is the destination address, passed through to the sink.
	Peer net.Addr
	// Local is the local address. Specify only if the sink has local
	// address support enabled.
	Local net.Addr

	// Coalesce signals that more packets will be written which should go
	// into the same datagram. It is a hint, not a guarantee: if no further
	// packet can fit, the datagram is finalized anyway.
	Coalesce bool
}

// EncryptionLevel returns the encryption level the packet is sealed at.
func (p *Packet) EncryptionLevel() protocol.EncryptionLevel {
	//nolint:exhaustive
	switch p.Type {
	case protocol.PacketTypeInitial:
		return protocol.EncryptionInitial
	case protocol.PacketTypeHandshake:
		return protocol.EncryptionHandshake
	case protocol.PacketType0RTT:
		return protocol.Encryption0RTT
	case protocol.PacketType1RTT:
		return protocol.Encryption1RTT
	default:
		return 0
	}
}

func (p *Packet) payloadLen() protocol.ByteCount {
	var n protocol.ByteCount
	for _, b := range p.Payload {
		n += protocol.ByteCount(len(b))
	}
	return n
}

// headerLen determines the length of the serialized header, including the
// truncated packet number.
func (p *Packet) headerLen(payloadLen protocol.ByteCount, overhead int) protocol.ByteCount {
	if p.Type == protocol.PacketType1RTT {
		return wire.ShortHeaderLen(p.DestConnectionID, p.PacketNumberLen)
	}
	h := wire.ExtendedHeader{
		Header: wire.Header{
			Type:             p.Type,
			Version:          p.Version,
			SrcConnectionID:  p.SrcConnectionID,
			DestConnectionID: p.DestConnectionID,
			Token:            p.Token,
		},
		PacketNumberLen: p.PacketNumberLen,
		Length:          protocol.ByteCount(p.PacketNumberLen) + payloadLen + protocol.ByteCount(overhead),
	}
	return h.GetLength(p.Version)
}
