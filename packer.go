package qtx

import (
	"github.com/quic-rl/qtx/internal/protocol"
	"github.com/quic-rl/qtx/internal/wire"
)

// appendSealedPacket serializes, encrypts and header-protects one packet,
// appending it to b. The payload is copied exactly once: from the iovecs
// into the output buffer, where it is encrypted in place.
func appendSealedPacket(b []byte, st *elState, p *Packet) ([]byte, error) {
	start := len(b)

	var err error
	if p.Type == protocol.PacketType1RTT {
		b, err = wire.AppendShortHeader(b, p.DestConnectionID, p.PacketNumber, p.PacketNumberLen, st.keyPhase.Bit(), p.SpinBit)
	} else {
		hdr := wire.ExtendedHeader{
			Header: wire.Header{
				Type:             p.Type,
				Version:          p.Version,
				SrcConnectionID:  p.SrcConnectionID,
				DestConnectionID: p.DestConnectionID,
				Token:            p.Token,
			},
			PacketNumber:    p.PacketNumber,
			PacketNumberLen: p.PacketNumberLen,
			Length:          protocol.ByteCount(p.PacketNumberLen) + p.payloadLen() + protocol.ByteCount(st.sealer.Overhead()),
		}
		b, err = hdr.Append(b, p.Version)
	}
	if err != nil {
		return nil, err
	}
	payloadOffset := len(b)
	pnOffset := payloadOffset - int(p.PacketNumberLen)

	for _, iov := range p.Payload {
		b = append(b, iov...)
	}
	plaintext := b[payloadOffset:]
	sealed := st.sealer.Seal(plaintext[:0], plaintext, p.PacketNumber, b[start:payloadOffset])
	b = b[:payloadOffset+len(sealed)]

	// the sample starts 4 - pn_len bytes into the ciphertext, so that its
	// position is independent of the packet number length
	sampleOffset := pnOffset + 4
	st.sealer.EncryptHeader(
		b[sampleOffset:sampleOffset+16],
		&b[start],
		b[pnOffset:payloadOffset],
	)
	return b, nil
}
