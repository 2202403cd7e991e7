package wire

import (
	"testing"

	"github.com/quic-rl/qtx/internal/protocol"

	"github.com/stretchr/testify/require"
)

func TestWriteInitialHeader(t *testing.T) {
	b, err := (&ExtendedHeader{
		Header: Header{
			Type:             protocol.PacketTypeInitial,
			DestConnectionID: protocol.ParseConnectionID([]byte{0xde, 0xad, 0xbe, 0xef, 0xca, 0xfe}),
			SrcConnectionID:  protocol.ParseConnectionID([]byte{0xde, 0xca, 0xfb, 0xad, 0x0, 0x0, 0x13, 0x37}),
			Token:            []byte{0xde, 0xad, 0xbe, 0xef},
			Version:          protocol.Version1,
		},
		PacketNumber:    0xdecafbad,
		PacketNumberLen: protocol.PacketNumberLen4,
		Length:          0xcafe,
	}).Append(nil, protocol.Version1)
	require.NoError(t, err)
	expected := []byte{
		0xc0 | 0x0<<4 | 0x3,
		0x0, 0x0, 0x0, 0x1, // version number
		0x6,                                // dest connection ID length
		0xde, 0xad, 0xbe, 0xef, 0xca, 0xfe, // dest connection ID
		0x8,                                          // src connection ID length
		0xde, 0xca, 0xfb, 0xad, 0x0, 0x0, 0x13, 0x37, // source connection ID
		0x4,                    // token length
		0xde, 0xad, 0xbe, 0xef, // token
		0x80, 0x0, 0xca, 0xfe, // length
		0xde, 0xca, 0xfb, 0xad, // packet number
	}
	require.Equal(t, expected, b)
}

func TestWriteHandshakeHeader(t *testing.T) {
	b, err := (&ExtendedHeader{
		Header: Header{
			Type:             protocol.PacketTypeHandshake,
			DestConnectionID: protocol.ParseConnectionID([]byte{0xde, 0xad, 0xbe, 0xef, 0xca, 0xfe}),
			SrcConnectionID:  protocol.ParseConnectionID([]byte{0xde, 0xca, 0xfb, 0xad, 0x0, 0x0, 0x13, 0x37}),
			Version:          0x1020304,
		},
		PacketNumber:    0xdecaf,
		PacketNumberLen: protocol.PacketNumberLen3,
		Length:          protocol.MinInitialPacketSize,
	}).Append(nil, protocol.Version1)
	require.NoError(t, err)
	expected := []byte{
		0xc0 | 0x2<<4 | 0x2,
		0x1, 0x2, 0x3, 0x4, // version number
		0x6,                                // dest connection ID length
		0xde, 0xad, 0xbe, 0xef, 0xca, 0xfe, // dest connection ID
		0x8,                                          // src connection ID length
		0xde, 0xca, 0xfb, 0xad, 0x0, 0x0, 0x13, 0x37, // source connection ID
		0x44, 0xb0, // length
		0xd, 0xec, 0xaf, // packet number
	}
	require.Equal(t, expected, b)
}

func TestWrite0RTTHeader(t *testing.T) {
	b, err := (&ExtendedHeader{
		Header: Header{
			Type:             protocol.PacketType0RTT,
			DestConnectionID: protocol.ParseConnectionID([]byte{1, 2, 3, 4}),
			Version:          protocol.Version1,
		},
		PacketNumber:    0x42,
		PacketNumberLen: protocol.PacketNumberLen1,
		Length:          0x2a,
	}).Append(nil, protocol.Version1)
	require.NoError(t, err)
	expected := []byte{
		0xc0 | 0x1<<4,
		0x0, 0x0, 0x0, 0x1, // version number
		0x4,                // dest connection ID length
		0x1, 0x2, 0x3, 0x4, // dest connection ID
		0x0,       // src connection ID length
		0x40, 0x2a, // length
		0x42, // packet number
	}
	require.Equal(t, expected, b)
}

func TestWriteHeaderInvalidPacketNumberLen(t *testing.T) {
	_, err := (&ExtendedHeader{
		Header: Header{Type: protocol.PacketTypeHandshake, Version: protocol.Version1},
		// PacketNumberLen unset
		PacketNumber: 0x42,
	}).Append(nil, protocol.Version1)
	require.Error(t, err)
}

func TestHeaderGetLengthMatchesAppend(t *testing.T) {
	for _, hdr := range []*ExtendedHeader{
		{
			Header: Header{
				Type:             protocol.PacketTypeInitial,
				DestConnectionID: protocol.ParseConnectionID([]byte{1, 2, 3, 4}),
				SrcConnectionID:  protocol.ParseConnectionID([]byte{5, 6}),
				Token:            make([]byte, 100),
				Version:          protocol.Version1,
			},
			PacketNumberLen: protocol.PacketNumberLen2,
			Length:          1337,
		},
		{
			Header: Header{
				Type:    protocol.PacketTypeHandshake,
				Version: protocol.Version1,
			},
			PacketNumberLen: protocol.PacketNumberLen4,
			Length:          20000, // needs a 4-byte length field
		},
	} {
		b, err := hdr.Append(nil, protocol.Version1)
		require.NoError(t, err)
		require.Equal(t, hdr.GetLength(protocol.Version1), protocol.ByteCount(len(b)))
	}
}

func TestWriteShortHeader(t *testing.T) {
	connID := protocol.ParseConnectionID([]byte{0xde, 0xad, 0xbe, 0xef})

	b, err := AppendShortHeader(nil, connID, 0x1337, protocol.PacketNumberLen2, protocol.KeyPhaseOne, false)
	require.NoError(t, err)
	expected := []byte{
		0x40 | 0x4 | 0x1,
		0xde, 0xad, 0xbe, 0xef, // connection ID
		0x13, 0x37, // packet number
	}
	require.Equal(t, expected, b)
	require.Equal(t, protocol.ByteCount(len(b)), ShortHeaderLen(connID, protocol.PacketNumberLen2))
	require.False(t, IsLongHeaderPacket(b[0]))

	// spin bit and key phase zero
	b, err = AppendShortHeader(nil, connID, 0xbeef, protocol.PacketNumberLen3, protocol.KeyPhaseZero, true)
	require.NoError(t, err)
	require.Equal(t, byte(0x40|1<<5|0x2), b[0])
}
