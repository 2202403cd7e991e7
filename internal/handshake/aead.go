package handshake

import (
	"crypto"
	"encoding/binary"
	"errors"

	"github.com/quic-rl/qtx/internal/protocol"
)

// ErrDecryptionFailed is returned when the AEAD fails to authenticate the packet.
var ErrDecryptionFailed = errors.New("decryption failed")

// A Sealer protects packets for transmission.
type Sealer interface {
	Seal(dst, src []byte, packetNumber protocol.PacketNumber, associatedData []byte) []byte
	EncryptHeader(sample []byte, firstByte *byte, pnBytes []byte)
	Overhead() int
}

// An Opener removes the packet protection again.
// The QTX itself never opens packets; the opener exists so that round trips
// can be verified against the sealer.
type Opener interface {
	Open(dst, src []byte, packetNumber protocol.PacketNumber, associatedData []byte) ([]byte, error)
	DecryptHeader(sample []byte, firstByte *byte, pnBytes []byte)
	Overhead() int
}

type sealer struct {
	aead     *XorNonceAEAD
	hp       headerProtector
	nonceBuf []byte
}

var _ Sealer = &sealer{}

// NewSealer derives packet protection keys from the traffic secret and
// returns a sealer using them. The traffic secret is not retained.
func NewSealer(suite *CipherSuite, hash crypto.Hash, trafficSecret []byte, isLongHeader bool) Sealer {
	aead := createAEAD(suite, hash, trafficSecret)
	return &sealer{
		aead:     aead,
		hp:       newHeaderProtector(suite, hash, trafficSecret, isLongHeader),
		nonceBuf: make([]byte, aead.NonceSize()),
	}
}

func (s *sealer) Seal(dst, src []byte, pn protocol.PacketNumber, ad []byte) []byte {
	binary.BigEndian.PutUint64(s.nonceBuf[len(s.nonceBuf)-8:], uint64(pn))
	// The nonce is XORed with the IV inside the AEAD.
	return s.aead.Seal(dst, s.nonceBuf, src, ad)
}

func (s *sealer) EncryptHeader(sample []byte, firstByte *byte, pnBytes []byte) {
	s.hp.EncryptHeader(sample, firstByte, pnBytes)
}

func (s *sealer) Overhead() int {
	return s.aead.Overhead()
}

type opener struct {
	aead     *XorNonceAEAD
	hp       headerProtector
	nonceBuf []byte
}

var _ Opener = &opener{}

// NewOpener derives packet protection keys from the traffic secret and
// returns an opener using them.
func NewOpener(suite *CipherSuite, hash crypto.Hash, trafficSecret []byte, isLongHeader bool) Opener {
	aead := createAEAD(suite, hash, trafficSecret)
	return &opener{
		aead:     aead,
		hp:       newHeaderProtector(suite, hash, trafficSecret, isLongHeader),
		nonceBuf: make([]byte, aead.NonceSize()),
	}
}

func (o *opener) Open(dst, src []byte, pn protocol.PacketNumber, ad []byte) ([]byte, error) {
	binary.BigEndian.PutUint64(o.nonceBuf[len(o.nonceBuf)-8:], uint64(pn))
	dec, err := o.aead.Open(dst, o.nonceBuf, src, ad)
	if err != nil {
		err = ErrDecryptionFailed
	}
	return dec, err
}

func (o *opener) DecryptHeader(sample []byte, firstByte *byte, pnBytes []byte) {
	o.hp.DecryptHeader(sample, firstByte, pnBytes)
}

func (o *opener) Overhead() int {
	return o.aead.Overhead()
}

func createAEAD(suite *CipherSuite, hash crypto.Hash, trafficSecret []byte) *XorNonceAEAD {
	key := hkdfExpandLabel(hash, trafficSecret, []byte{}, "quic key", suite.KeyLen)
	iv := hkdfExpandLabel(hash, trafficSecret, []byte{}, "quic iv", suite.IVLen())
	aead := suite.AEAD(key, iv)
	wipe(key)
	wipe(iv)
	return aead
}
