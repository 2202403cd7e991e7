package qtx

import (
	"crypto"
	"testing"

	"github.com/quic-rl/qtx/internal/handshake"
	"github.com/quic-rl/qtx/internal/protocol"
	"github.com/quic-rl/qtx/quicvarint"

	"github.com/stretchr/testify/require"
)

type receivedPacket struct {
	encLevel protocol.EncryptionLevel
	pnBytes  []byte
	payload  []byte
}

// openLongHeaderPacket removes the protection of the first packet in data
// and returns the remainder of the datagram.
func openLongHeaderPacket(t *testing.T, opener handshake.Opener, data []byte, fullPN protocol.PacketNumber) (receivedPacket, []byte) {
	t.Helper()
	require.NotZero(t, data[0]&0x80)

	pos := 5 // first byte + version
	dcidLen := int(data[pos])
	pos += 1 + dcidLen
	scidLen := int(data[pos])
	pos += 1 + scidLen

	// the long header type bits are not covered by header protection
	var encLevel protocol.EncryptionLevel
	switch (data[0] & 0x30) >> 4 {
	case 0x0:
		encLevel = protocol.EncryptionInitial
	case 0x1:
		encLevel = protocol.Encryption0RTT
	case 0x2:
		encLevel = protocol.EncryptionHandshake
	}
	if encLevel == protocol.EncryptionInitial {
		tokenLen, n, err := quicvarint.Parse(data[pos:])
		require.NoError(t, err)
		pos += n + int(tokenLen)
	}
	length, n, err := quicvarint.Parse(data[pos:])
	require.NoError(t, err)
	pnOffset := pos + n

	// undo the header protection: decrypt the first byte and 4 packet
	// number candidate bytes, then restore the bytes beyond the actual
	// packet number length
	var pnCandidate [4]byte
	copy(pnCandidate[:], data[pnOffset:pnOffset+4])
	opener.DecryptHeader(data[pnOffset+4:pnOffset+20], &data[0], data[pnOffset:pnOffset+4])
	pnLen := int(data[0]&0x3) + 1
	for i := pnLen; i < 4; i++ {
		data[pnOffset+i] = pnCandidate[i]
	}

	payloadOffset := pnOffset + pnLen
	end := pnOffset + int(length)
	payload, err := opener.Open(nil, data[payloadOffset:end], fullPN, data[:payloadOffset])
	require.NoError(t, err)

	return receivedPacket{
		encLevel: encLevel,
		pnBytes:  data[pnOffset:payloadOffset],
		payload:  payload,
	}, data[end:]
}

func openShortHeaderPacket(t *testing.T, opener handshake.Opener, data []byte, connIDLen int, fullPN protocol.PacketNumber) receivedPacket {
	t.Helper()
	require.Zero(t, data[0]&0x80)

	pnOffset := 1 + connIDLen
	var pnCandidate [4]byte
	copy(pnCandidate[:], data[pnOffset:pnOffset+4])
	opener.DecryptHeader(data[pnOffset+4:pnOffset+20], &data[0], data[pnOffset:pnOffset+4])
	pnLen := int(data[0]&0x3) + 1
	for i := pnLen; i < 4; i++ {
		data[pnOffset+i] = pnCandidate[i]
	}

	payloadOffset := pnOffset + pnLen
	payload, err := opener.Open(nil, data[payloadOffset:], fullPN, data[:payloadOffset])
	require.NoError(t, err)

	return receivedPacket{
		encLevel: protocol.Encryption1RTT,
		pnBytes:  data[pnOffset:payloadOffset],
		payload:  payload,
	}
}

// The concatenation of all sealed packets, opened with matching keys,
// yields exactly the logical packets in order.
func TestSealedPacketsRoundTrip(t *testing.T) {
	initialSecret := newTestSecret(t, 32)
	handshakeSecret := newTestSecret(t, 32)
	oneRTTSecret := newTestSecret(t, 32)

	q, err := New(Config{})
	require.NoError(t, err)
	require.NoError(t, q.ProvideSecret(protocol.EncryptionInitial, SuiteAES128GCM, crypto.SHA256, initialSecret))
	require.NoError(t, q.ProvideSecret(protocol.EncryptionHandshake, SuiteAES128GCM, crypto.SHA256, handshakeSecret))
	require.NoError(t, q.ProvideSecret(protocol.Encryption1RTT, SuiteChaCha20Poly1305, crypto.SHA256, oneRTTSecret))

	suite := handshake.CipherSuiteByID(uint16(SuiteAES128GCM))
	initialOpener := handshake.NewOpener(suite, crypto.SHA256, initialSecret, true)
	handshakeOpener := handshake.NewOpener(suite, crypto.SHA256, handshakeSecret, true)
	oneRTTOpener := handshake.NewOpener(handshake.CipherSuiteByID(uint16(SuiteChaCha20Poly1305)), crypto.SHA256, oneRTTSecret, false)

	initial := newLongHeaderPacket(protocol.PacketTypeInitial, 0x42, []byte("ClientHello"))
	initial.Token = []byte("retry token")
	initial.Coalesce = true
	require.NoError(t, q.WritePacket(initial))

	hs := newLongHeaderPacket(protocol.PacketTypeHandshake, 0x43, []byte("Finished"))
	hs.Coalesce = true
	require.NoError(t, q.WritePacket(hs))

	oneRTT := newShortHeaderPacket(0x44, []byte("application data"))
	require.NoError(t, q.WritePacket(oneRTT))

	require.Equal(t, 1, q.QueueLenDatagrams())
	d, ok := q.PopNet()
	require.True(t, ok)

	p1, rest := openLongHeaderPacket(t, initialOpener, d.Data, 0x42)
	require.Equal(t, protocol.EncryptionInitial, p1.encLevel)
	require.Equal(t, []byte{0x00, 0x42}, p1.pnBytes)
	require.Equal(t, []byte("ClientHello"), p1.payload)

	p2, rest := openLongHeaderPacket(t, handshakeOpener, rest, 0x43)
	require.Equal(t, protocol.EncryptionHandshake, p2.encLevel)
	require.Equal(t, []byte("Finished"), p2.payload)

	p3 := openShortHeaderPacket(t, oneRTTOpener, rest, 4, 0x44)
	require.Equal(t, []byte{0x00, 0x44}, p3.pnBytes)
	require.Equal(t, []byte("application data"), p3.payload)
}

// Packets sealed after a key update open with the updated keys.
func TestKeyUpdateRoundTrip(t *testing.T) {
	secret := newTestSecret(t, 32)
	q, err := New(Config{})
	require.NoError(t, err)
	require.NoError(t, q.ProvideSecret(protocol.Encryption1RTT, SuiteAES128GCM, crypto.SHA256, secret))
	q.DiscardEncLevel(protocol.EncryptionInitial)
	q.DiscardEncLevel(protocol.EncryptionHandshake)

	require.NoError(t, q.WritePacket(newShortHeaderPacket(0, []byte("phase zero"))))
	require.NoError(t, q.TriggerKeyUpdate())
	require.NoError(t, q.WritePacket(newShortHeaderPacket(1, []byte("phase one"))))

	suite := handshake.CipherSuiteByID(uint16(SuiteAES128GCM))
	opener := handshake.NewOpener(suite, crypto.SHA256, secret, false)
	nextOpener := handshake.NewOpener(suite, crypto.SHA256, handshake.NextTrafficSecret(crypto.SHA256, secret), false)

	d, ok := q.PopNet()
	require.True(t, ok)
	p := openShortHeaderPacket(t, opener, d.Data, 4, 0)
	require.Equal(t, []byte("phase zero"), p.payload)

	d, ok = q.PopNet()
	require.True(t, ok)
	p = openShortHeaderPacket(t, nextOpener, d.Data, 4, 1)
	require.Equal(t, []byte("phase one"), p.payload)
}
