package qtx

import (
	"net"

	"github.com/quic-rl/qtx/internal/protocol"
	"github.com/quic-rl/qtx/quicvarint"
)

// A coalescingDatagram is the one in-progress datagram packets are sealed
// into. Its addresses and size limit are fixed at creation.
type coalescingDatagram struct {
	buf  *packetBuffer
	data []byte // sealed packet bytes so far, aliasing buf.Data

	limit       int // MDPL at creation time
	peer, local net.Addr
	numPackets  int
}

func (cd *coalescingDatagram) remaining() int {
	return cd.limit - len(cd.data)
}

// WritePacket seals a logical packet and appends it to the current
// coalescing datagram, starting a new one if needed. The packet is queued
// regardless of whether it can be sent immediately; call FlushNet to drain
// the queue to the sink.
//
// On failure nothing is mutated: the coalescing datagram and all queue
// counters are exactly as before the call.
func (q *QTX) WritePacket(p *Packet) error {
	el := p.EncryptionLevel()
	if el == 0 || !p.PacketNumberLen.IsValid() {
		return ErrBadPacketShape
	}
	if p.PacketNumber < 0 || p.PacketNumber > protocol.PacketNumber(quicvarint.Max) {
		return ErrBadPacketShape
	}
	st := q.elState(el)
	if !st.live() {
		return ErrNoKeys
	}
	if st.epochPktCount >= st.maxEpochPkts {
		q.logger.Debugf("%s keys exhausted after %d packets in the current key epoch", el, st.epochPktCount)
		return ErrEpochExhausted
	}

	payloadLen := p.payloadLen()
	overhead := st.sealer.Overhead()
	// the header protection sample is taken 4 - pn_len bytes into the
	// ciphertext; the ciphertext must be long enough to contain it
	if int(payloadLen)+overhead < 4-int(p.PacketNumberLen)+16 {
		return ErrBadPacketShape
	}
	size := int(p.headerLen(payloadLen, overhead)) + int(payloadLen) + overhead
	if size > q.mdpl {
		return ErrPacketTooLarge
	}

	// coalescing state transitions
	if q.cd != nil &&
		(!addrsEqual(q.cd.peer, p.Peer) || !addrsEqual(q.cd.local, p.Local) || q.cd.remaining() < size) {
		q.finishDgram()
	}
	if q.cd == nil {
		q.startDgram(p.Peer, p.Local)
	}

	// a pending key update takes effect with this packet
	if el == protocol.Encryption1RTT && st.nextSealer != nil {
		st.installPending()
		q.logger.Debugf("Key update: now sealing with key phase %d", st.keyPhase)
	}

	data, err := appendSealedPacket(q.cd.data, st, p)
	if err != nil {
		return err
	}
	sealedLen := protocol.ByteCount(len(data) - len(q.cd.data))
	q.cd.data = data
	q.cd.buf.Data = data
	q.cd.numPackets++
	st.epochPktCount++

	if q.logger.Debug() {
		q.logger.Debugf("Sealed %s packet (%d bytes), PN %d, %d bytes in current datagram", el, sealedLen, p.PacketNumber, len(q.cd.data))
	}
	if q.tracer != nil && q.tracer.SealedPacket != nil {
		q.tracer.SealedPacket(el, p.PacketNumber, sealedLen)
	}

	// a short header packet has no length field, so nothing can follow it
	// within the same datagram
	if !p.Coalesce || p.Type == protocol.PacketType1RTT || q.cd.remaining() < protocol.MinCoalescingSpace {
		q.finishDgram()
	}
	return nil
}

func (q *QTX) startDgram(peer, local net.Addr) {
	limit := q.mdpl
	buf := getPacketBuffer(limit)
	q.cd = &coalescingDatagram{
		buf:   buf,
		data:  buf.Data,
		limit: limit,
		peer:  peer,
		local: local,
	}
}

// FinishDatagram finalizes the current coalescing datagram, moving it to
// the transmit queue. It is a no-op if there is none.
func (q *QTX) FinishDatagram() {
	if q.cd == nil {
		return
	}
	q.finishDgram()
}

func (q *QTX) finishDgram() {
	cd := q.cd
	q.cd = nil
	q.queue.PushBack(queuedDatagram{
		Datagram:   Datagram{Data: cd.data, Peer: cd.peer, Local: cd.local},
		numPackets: cd.numPackets,
		buf:        cd.buf,
	})
	q.queueBytes += protocol.ByteCount(len(cd.data))
	if q.tracer != nil && q.tracer.QueuedDatagram != nil {
		q.tracer.QueuedDatagram(protocol.ByteCount(len(cd.data)), cd.numPackets)
	}
}

// FlushNet drains the transmit queue into the sink, one datagram at a
// time. It stops without error when the sink would block; a sink error
// halts the drain and is returned, with the unsent datagrams left queued.
// Note that this does not finalize the coalescing datagram; call
// FinishDatagram first if that is desired.
func (q *QTX) FlushNet() error {
	if q.sink == nil {
		return ErrSinkMissing
	}
	for !q.queue.Empty() {
		head := q.queue.PeekFront()
		n, err := q.sink.Send([]Datagram{head.Datagram})
		if n > 0 {
			q.queue.PopFront()
			q.queueBytes -= protocol.ByteCount(len(head.Data))
			if q.tracer != nil && q.tracer.SentDatagram != nil {
				q.tracer.SentDatagram(protocol.ByteCount(len(head.Data)), head.Peer)
			}
			head.buf.Release()
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
	return nil
}

// PopNet removes the datagram at the head of the transmit queue and
// returns it. It reports false if the queue is empty. The coalescing
// datagram is not touched. For test and diagnostic use; the returned
// buffer is not pooled again.
func (q *QTX) PopNet() (Datagram, bool) {
	if q.queue.Empty() {
		return Datagram{}, false
	}
	qd := q.queue.PopFront()
	q.queueBytes -= protocol.ByteCount(len(qd.Data))
	return qd.Datagram, true
}

// QueueLenDatagrams returns the number of fully-formed datagrams that
// haven't been sent yet.
func (q *QTX) QueueLenDatagrams() int {
	return q.queue.Len()
}

// QueueLenBytes returns the number of payload bytes across all
// fully-formed datagrams that haven't been sent yet. It doesn't count the
// coalescing datagram.
func (q *QTX) QueueLenBytes() int {
	return int(q.queueBytes)
}

// CurDatagramLenBytes returns the number of bytes in the coalescing
// datagram, or 0 if there is none.
func (q *QTX) CurDatagramLenBytes() int {
	if q.cd == nil {
		return 0
	}
	return len(q.cd.data)
}

// UnflushedPacketCount returns the number of packets in the coalescing
// datagram, i.e. packets that have been sealed but not yet put into a
// complete datagram. If this is non-zero, FinishDatagram needs to be
// called before the packets can leave the QTX.
func (q *QTX) UnflushedPacketCount() int {
	if q.cd == nil {
		return 0
	}
	return q.cd.numPackets
}
