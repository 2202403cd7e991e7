package qtx

import (
	"sync"

	"github.com/quic-rl/qtx/internal/protocol"
)

type packetBuffer struct {
	Data []byte
}

// Release puts the buffer back into the pool.
// The Data slice must not be used afterwards.
func (b *packetBuffer) Release() {
	b.Data = b.Data[:0]
	switch cap(b.Data) {
	case protocol.MaxPacketBufferSize:
		bufferPool.Put(b)
	case protocol.MaxDatagramPayloadSize:
		largeBufferPool.Put(b)
	default:
		panic("putPacketBuffer called with packet of wrong size!")
	}
}

// Len returns the length of Data
func (b *packetBuffer) Len() protocol.ByteCount { return protocol.ByteCount(len(b.Data)) }

var bufferPool, largeBufferPool sync.Pool

// getPacketBuffer returns a buffer with capacity for at least size bytes.
func getPacketBuffer(size int) *packetBuffer {
	if size <= protocol.MaxPacketBufferSize {
		buf := bufferPool.Get().(*packetBuffer)
		buf.Data = buf.Data[:0]
		return buf
	}
	buf := largeBufferPool.Get().(*packetBuffer)
	buf.Data = buf.Data[:0]
	return buf
}

func init() {
	bufferPool.New = func() any {
		return &packetBuffer{Data: make([]byte, 0, protocol.MaxPacketBufferSize)}
	}
	largeBufferPool.New = func() any {
		return &packetBuffer{Data: make([]byte, 0, protocol.MaxDatagramPayloadSize)}
	}
}
