package qtx

import "crypto/tls"

// A SuiteID identifies the AEAD used for packet protection.
// The values are TLS 1.3 cipher suite IDs.
type SuiteID uint16

const (
	// SuiteAES128GCM is TLS_AES_128_GCM_SHA256
	SuiteAES128GCM = SuiteID(tls.TLS_AES_128_GCM_SHA256)
	// SuiteAES256GCM is TLS_AES_256_GCM_SHA384
	SuiteAES256GCM = SuiteID(tls.TLS_AES_256_GCM_SHA384)
	// SuiteChaCha20Poly1305 is TLS_CHACHA20_POLY1305_SHA256
	SuiteChaCha20Poly1305 = SuiteID(tls.TLS_CHACHA20_POLY1305_SHA256)
)
