package handshake

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/tls"

	"golang.org/x/crypto/chacha20poly1305"
)

// These cipher suite implementations are copied from the standard library crypto/tls package.

const aeadNonceLength = 12

// A CipherSuite is a TLS 1.3 cipher suite usable for QUIC packet protection.
type CipherSuite struct {
	ID     uint16
	Hash   crypto.Hash
	KeyLen int
	AEAD   func(key, nonceMask []byte) *XorNonceAEAD

	// MaxPacketsPerEpoch is the number of packets that may be protected
	// under one set of keys before the confidentiality limit of the AEAD
	// is reached (RFC 9001, section 6.6).
	MaxPacketsPerEpoch uint64
}

// IVLen returns the length of the IV ("quic iv") for this suite.
func (s *CipherSuite) IVLen() int { return aeadNonceLength }

// CipherSuiteByID returns the cipher suite with the given TLS cipher suite ID.
// It returns nil for IDs that don't identify a TLS 1.3 suite.
func CipherSuiteByID(id uint16) *CipherSuite {
	switch id {
	case tls.TLS_AES_128_GCM_SHA256:
		return &CipherSuite{ID: tls.TLS_AES_128_GCM_SHA256, Hash: crypto.SHA256, KeyLen: 16, AEAD: aeadAESGCMTLS13, MaxPacketsPerEpoch: 1 << 23}
	case tls.TLS_CHACHA20_POLY1305_SHA256:
		return &CipherSuite{ID: tls.TLS_CHACHA20_POLY1305_SHA256, Hash: crypto.SHA256, KeyLen: 32, AEAD: aeadChaCha20Poly1305, MaxPacketsPerEpoch: 1 << 62}
	case tls.TLS_AES_256_GCM_SHA384:
		return &CipherSuite{ID: tls.TLS_AES_256_GCM_SHA384, Hash: crypto.SHA384, KeyLen: 32, AEAD: aeadAESGCMTLS13, MaxPacketsPerEpoch: 1 << 23}
	default:
		return nil
	}
}

func aeadAESGCMTLS13(key, nonceMask []byte) *XorNonceAEAD {
	if len(nonceMask) != aeadNonceLength {
		panic("qtx: internal error: wrong nonce length")
	}
	aes, err := aes.NewCipher(key)
	if err != nil {
		panic(err)
	}
	aead, err := cipher.NewGCM(aes)
	if err != nil {
		panic(err)
	}

	ret := &XorNonceAEAD{aead: aead}
	copy(ret.nonceMask[:], nonceMask)
	return ret
}

func aeadChaCha20Poly1305(key, nonceMask []byte) *XorNonceAEAD {
	if len(nonceMask) != aeadNonceLength {
		panic("qtx: internal error: wrong nonce length")
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		panic(err)
	}

	ret := &XorNonceAEAD{aead: aead}
	copy(ret.nonceMask[:], nonceMask)
	return ret
}

// XorNonceAEAD wraps an AEAD by XORing in a fixed pattern to the nonce
// before each call.
type XorNonceAEAD struct {
	nonceMask [aeadNonceLength]byte
	aead      cipher.AEAD
}

// NonceSize returns the size of the nonce: a 64-bit packet number.
func (f *XorNonceAEAD) NonceSize() int { return 8 }

// Overhead returns the AEAD tag size.
func (f *XorNonceAEAD) Overhead() int { return f.aead.Overhead() }

// Seal seals the plaintext, XORing the nonce into the IV mask.
func (f *XorNonceAEAD) Seal(out, nonce, plaintext, additionalData []byte) []byte {
	for i, b := range nonce {
		f.nonceMask[4+i] ^= b
	}
	result := f.aead.Seal(out, f.nonceMask[:], plaintext, additionalData)
	for i, b := range nonce {
		f.nonceMask[4+i] ^= b
	}
	return result
}

// Open opens the ciphertext, XORing the nonce into the IV mask.
func (f *XorNonceAEAD) Open(out, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	for i, b := range nonce {
		f.nonceMask[4+i] ^= b
	}
	result, err := f.aead.Open(out, f.nonceMask[:], ciphertext, additionalData)
	for i, b := range nonce {
		f.nonceMask[4+i] ^= b
	}
	return result, err
}
