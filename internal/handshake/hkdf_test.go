package handshake

import (
	"crypto"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func splitHexString(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// The expected values are taken from RFC 9001, Appendix A.1.
func TestExpandPacketProtectionKeys(t *testing.T) {
	secret := splitHexString(t, "c00cf151ca5be075ed0ebfb5c80323c42d6b7db67881289af4008f1f6c357aea")

	key := hkdfExpandLabel(crypto.SHA256, secret, []byte{}, "quic key", 16)
	require.Equal(t, splitHexString(t, "1f369613dd76d5467730efcbe3b1a22d"), key)

	iv := hkdfExpandLabel(crypto.SHA256, secret, []byte{}, "quic iv", 12)
	require.Equal(t, splitHexString(t, "fa044b2f42a3fd3b46fb255c"), iv)

	hp := hkdfExpandLabel(crypto.SHA256, secret, []byte{}, "quic hp", 16)
	require.Equal(t, splitHexString(t, "9f50449e04a0e810283a1e9933adedd2"), hp)
}

func TestExpandServerPacketProtectionKeys(t *testing.T) {
	secret := splitHexString(t, "3c199828fd139efd216c155ad844cc81fb82fa8d7446fa7d78be803acdda951b")

	key := hkdfExpandLabel(crypto.SHA256, secret, []byte{}, "quic key", 16)
	require.Equal(t, splitHexString(t, "cf3a5331653c364c88f0f379b6067e37"), key)

	iv := hkdfExpandLabel(crypto.SHA256, secret, []byte{}, "quic iv", 12)
	require.Equal(t, splitHexString(t, "0ac1493ca1905853b0bba03e"), iv)

	hp := hkdfExpandLabel(crypto.SHA256, secret, []byte{}, "quic hp", 16)
	require.Equal(t, splitHexString(t, "c206b8d9b9f0f37644430b490eeaa314"), hp)
}

func TestNextTrafficSecret(t *testing.T) {
	secret := splitHexString(t, "9ac312a7f877468ebe69422748ad00a15443f18203a07d6060f688f30f21632b")
	next := NextTrafficSecret(crypto.SHA256, secret)
	require.Len(t, next, crypto.SHA256.Size())
	require.NotEqual(t, secret, next)
	// the expansion is deterministic
	require.Equal(t, next, NextTrafficSecret(crypto.SHA256, secret))
	// and not idempotent
	require.NotEqual(t, next, NextTrafficSecret(crypto.SHA256, next))
}
