package handshake

// Wipe overwrites key material. The caller must not use the slice afterwards.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func wipe(b []byte) { Wipe(b) }
