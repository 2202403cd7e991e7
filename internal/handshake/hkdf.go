package handshake

import (
	"crypto"
	"encoding/binary"

	"golang.org/x/crypto/hkdf"
)

// hkdfExpandLabel HKDF expands a label as defined in RFC 8446, section 7.1.
func hkdfExpandLabel(hash crypto.Hash, secret, context []byte, label string, length int) []byte {
	b := make([]byte, 3, 3+6+len(label)+1+len(context))
	binary.BigEndian.PutUint16(b, uint16(length))
	b[2] = uint8(6 + len(label))
	b = append(b, []byte("tls13 ")...)
	b = append(b, []byte(label)...)
	b = b[:3+6+len(label)+1]
	b[3+6+len(label)] = uint8(len(context))
	b = append(b, context...)

	out := make([]byte, length)
	n, err := hkdf.Expand(hash.New, secret, b).Read(out)
	if err != nil || n != length {
		panic("qtx: HKDF-Expand-Label invocation failed unexpectedly")
	}
	return out
}

// NextTrafficSecret derives the traffic secret of the next key phase,
// as defined in RFC 9001, section 6.1.
func NextTrafficSecret(hash crypto.Hash, current []byte) []byte {
	return hkdfExpandLabel(hash, current, []byte{}, "quic ku", hash.Size())
}
