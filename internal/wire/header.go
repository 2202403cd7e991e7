package wire

import (
	"errors"
	"fmt"

	"github.com/quic-rl/qtx/internal/protocol"
	"github.com/quic-rl/qtx/quicvarint"
)

// IsLongHeaderPacket says if this is a long header packet
func IsLongHeaderPacket(firstByte byte) bool {
	return firstByte&0x80 > 0
}

// The Header is the version independent part of a long header
type Header struct {
	Type    protocol.PacketType
	Version protocol.Version

	SrcConnectionID  protocol.ConnectionID
	DestConnectionID protocol.ConnectionID

	Token []byte
}

// ExtendedHeader is the header of a long header packet, including the
// version dependent fields.
type ExtendedHeader struct {
	Header

	PacketNumberLen protocol.PacketNumberLen
	PacketNumber    protocol.PacketNumber

	// Length is the value of the Length field: packet number, payload and
	// AEAD tag. It is filled in by the sealer.
	Length protocol.ByteCount
}

var errInvalidPacketNumberLen = errors.New("invalid packet number length")

// Append serializes the header.
func (h *ExtendedHeader) Append(b []byte, v protocol.Version) ([]byte, error) {
	if !h.PacketNumberLen.IsValid() {
		return nil, errInvalidPacketNumberLen
	}

	var packetType uint8
	//nolint:exhaustive
	switch h.Type {
	case protocol.PacketTypeInitial:
		packetType = 0b00
	case protocol.PacketType0RTT:
		packetType = 0b01
	case protocol.PacketTypeHandshake:
		packetType = 0b10
	default:
		return nil, fmt.Errorf("unsupported long header packet type: %s", h.Type)
	}
	firstByte := 0xc0 | packetType<<4
	firstByte |= uint8(h.PacketNumberLen - 1)

	b = append(b, firstByte)
	b = append(b, make([]byte, 4)...)
	b[len(b)-4] = uint8(h.Version >> 24)
	b[len(b)-3] = uint8(h.Version >> 16)
	b[len(b)-2] = uint8(h.Version >> 8)
	b[len(b)-1] = uint8(h.Version)
	b = append(b, uint8(h.DestConnectionID.Len()))
	b = append(b, h.DestConnectionID.Bytes()...)
	b = append(b, uint8(h.SrcConnectionID.Len()))
	b = append(b, h.SrcConnectionID.Bytes()...)
	if h.Type == protocol.PacketTypeInitial {
		b = quicvarint.Append(b, uint64(len(h.Token)))
		b = append(b, h.Token...)
	}
	b = quicvarint.AppendWithLen(b, uint64(h.Length), h.lengthFieldLen())
	return appendPacketNumber(b, h.PacketNumber, h.PacketNumberLen)
}

// GetLength determines the length of the serialized header.
// It is guaranteed to be the length of the slice appended by Append.
func (h *ExtendedHeader) GetLength(_ protocol.Version) protocol.ByteCount {
	length := 1 /* type byte */ + 4 /* version */ +
		1 /* dest conn ID len */ + protocol.ByteCount(h.DestConnectionID.Len()) +
		1 /* src conn ID len */ + protocol.ByteCount(h.SrcConnectionID.Len()) +
		protocol.ByteCount(h.lengthFieldLen()) + protocol.ByteCount(h.PacketNumberLen)
	if h.Type == protocol.PacketTypeInitial {
		length += protocol.ByteCount(quicvarint.Len(uint64(len(h.Token)))) + protocol.ByteCount(len(h.Token))
	}
	return length
}

// The Length field is always at least 2 bytes long, so that packets can be
// padded in place after serialization.
func (h *ExtendedHeader) lengthFieldLen() int {
	if l := quicvarint.Len(uint64(h.Length)); l > 2 {
		return l
	}
	return 2
}

func appendPacketNumber(b []byte, pn protocol.PacketNumber, pnLen protocol.PacketNumberLen) ([]byte, error) {
	switch pnLen {
	case protocol.PacketNumberLen1:
		b = append(b, uint8(pn))
	case protocol.PacketNumberLen2:
		b = append(b, uint8(pn>>8), uint8(pn))
	case protocol.PacketNumberLen3:
		b = append(b, uint8(pn>>16), uint8(pn>>8), uint8(pn))
	case protocol.PacketNumberLen4:
		b = append(b, uint8(pn>>24), uint8(pn>>16), uint8(pn>>8), uint8(pn))
	default:
		return nil, errInvalidPacketNumberLen
	}
	return b, nil
}
