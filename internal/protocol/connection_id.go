package protocol

import (
	"fmt"
	"io"
)

// MaxConnIDLen is the maximum length of the connection ID
const MaxConnIDLen = 20

// A ConnectionID in QUIC
type ConnectionID struct {
	b [20]byte
	l uint8
}

// ParseConnectionID interprets b as a Connection ID.
// It panics if b is longer than 20 bytes.
func ParseConnectionID(b []byte) ConnectionID {
	if len(b) > MaxConnIDLen {
		panic("connection IDs cannot be longer than 20 bytes")
	}
	var c ConnectionID
	c.l = uint8(len(b))
	copy(c.b[:c.l], b)
	return c
}

// ReadConnectionID reads a connection ID of length l from the given io.Reader.
// It returns io.EOF if there aren't enough bytes to read.
func ReadConnectionID(r io.Reader, l int) (ConnectionID, error) {
	var c ConnectionID
	if l == 0 {
		return c, nil
	}
	if l > MaxConnIDLen {
		return c, fmt.Errorf("invalid connection ID length: %d bytes", l)
	}
	c.l = uint8(l)
	_, err := io.ReadFull(r, c.b[:l])
	if err == io.ErrUnexpectedEOF {
		return c, io.EOF
	}
	return c, err
}

// Len returns the length of the connection ID in bytes
func (c ConnectionID) Len() int { return int(c.l) }

// Bytes returns the byte representation
func (c ConnectionID) Bytes() []byte { return c.b[:c.l] }

func (c ConnectionID) String() string {
	if c.Len() == 0 {
		return "(empty)"
	}
	return fmt.Sprintf("%x", c.Bytes())
}
