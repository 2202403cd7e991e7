// Package qtx implements the transmit side of the QUIC packet protection
// record layer: it seals logical packets per RFC 9001, coalesces them into
// datagrams, and hands complete datagrams to a datagram sink.
//
// The QTX is a single-owner state machine. It is not internally
// synchronized; concurrent use requires external locking.
package qtx

import (
	"crypto"
	"math"

	"github.com/quic-rl/qtx/internal/handshake"
	"github.com/quic-rl/qtx/internal/protocol"
	"github.com/quic-rl/qtx/internal/utils"
	"github.com/quic-rl/qtx/internal/utils/ringbuffer"
	"github.com/quic-rl/qtx/logging"
)

// Config contains the configuration for a QTX.
type Config struct {
	// Sink is the initial datagram sink. It may be nil; datagrams are then
	// queued until a sink is set.
	Sink DatagramSink
	// MDPL is the maximum datagram payload length.
	// If zero, protocol.InitialPacketSize is used.
	MDPL int
	// Logger is used for debug logging. If nil, the default logger is used.
	Logger utils.Logger
	// Tracer records record layer events. It may be nil.
	Tracer *logging.Tracer
}

// A QTX seals packets and assembles outgoing datagrams.
type QTX struct {
	els [4]elState // indexed by EncryptionLevel - 1

	mdpl int
	sink DatagramSink

	cd         *coalescingDatagram
	queue      ringbuffer.RingBuffer[queuedDatagram]
	queueBytes protocol.ByteCount

	logger utils.Logger
	tracer *logging.Tracer
}

// New creates a new QTX with no encryption levels provisioned.
func New(conf Config) (*QTX, error) {
	mdpl := conf.MDPL
	if mdpl == 0 {
		mdpl = protocol.InitialPacketSize
	}
	logger := conf.Logger
	if logger == nil {
		logger = utils.DefaultLogger.WithPrefix("qtx")
	}
	q := &QTX{
		logger: logger,
		tracer: conf.Tracer,
		sink:   conf.Sink,
	}
	if err := q.SetMDPL(mdpl); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *QTX) elState(el protocol.EncryptionLevel) *elState {
	if !el.IsValid() {
		return nil
	}
	return &q.els[el-1]
}

// ProvideSecret installs the traffic secret for an encryption level.
// The "quic key", "quic iv" and "quic hp" values are derived from it
// directly (RFC 9001, section 5.1).
//
// It can only be called once per encryption level: subsequent calls fail,
// as do calls made after DiscardEncLevel for that level. The secret is
// copied; the caller may wipe its copy afterwards.
func (q *QTX) ProvideSecret(el protocol.EncryptionLevel, suiteID SuiteID, hash crypto.Hash, secret []byte) error {
	st := q.elState(el)
	if st == nil {
		return ErrWrongLevel
	}
	if st.discarded {
		return ErrAlreadyDiscarded
	}
	if st.provisioned {
		return ErrAlreadyProvisioned
	}
	suite := handshake.CipherSuiteByID(uint16(suiteID))
	if suite == nil {
		return ErrUnknownSuite
	}
	if hash == 0 {
		hash = suite.Hash
	}
	if len(secret) != hash.Size() {
		return ErrBadSecretLen
	}
	st.provision(suite, hash, secret, el != protocol.Encryption1RTT)
	q.logger.Debugf("Provisioned %s keys (suite %#x)", el, uint16(suiteID))
	if q.tracer != nil && q.tracer.ProvisionedKeys != nil {
		q.tracer.ProvisionedKeys(el)
	}
	return nil
}

// DiscardEncLevel discards the key material for an encryption level.
// No further packets can be sealed at that level. It is idempotent, and
// doesn't abort packets already placed into the coalescing datagram.
func (q *QTX) DiscardEncLevel(el protocol.EncryptionLevel) {
	st := q.elState(el)
	if st == nil || st.discarded {
		return
	}
	st.discard()
	q.logger.Debugf("Dropped %s keys", el)
	if q.tracer != nil && q.tracer.DroppedKeys != nil {
		q.tracer.DroppedKeys(el)
	}
}

// TriggerKeyUpdate starts a key update. The update takes effect with the
// next 1-RTT packet sealed: its key phase bit is inverted and it uses keys
// derived via the "quic ku" label (RFC 9001, section 6).
//
// RFC 9001 imposes further conditions on when a key update may be
// initiated (e.g. not before a packet of the current phase was
// acknowledged); meeting those is the caller's responsibility. As a sanity
// check, this function fails while the Initial or Handshake level is still
// live, and while a previously triggered update hasn't been consumed by a
// packet yet.
func (q *QTX) TriggerKeyUpdate() error {
	st := &q.els[protocol.Encryption1RTT-1]
	if !st.live() {
		return ErrWrongLevel
	}
	if q.els[protocol.EncryptionInitial-1].live() || q.els[protocol.EncryptionHandshake-1].live() {
		return ErrPrereqNotMet
	}
	if st.nextSealer != nil {
		return ErrUpdateInFlight
	}
	st.startKeyUpdate()
	q.logger.Debugf("Initiating key update to key phase %d", st.keyPhase)
	if q.tracer != nil && q.tracer.UpdatedKeys != nil {
		q.tracer.UpdatedKeys(st.keyPhase)
	}
	return nil
}

// KeyPhase returns the key phase bit the next 1-RTT packet will be sealed
// with. Callers mirroring a peer-initiated key update compare this against
// the phase of received packets.
func (q *QTX) KeyPhase() protocol.KeyPhaseBit {
	st := &q.els[protocol.Encryption1RTT-1]
	if !st.live() {
		return protocol.KeyPhaseUndefined
	}
	return st.keyPhase.Bit()
}

// CurEpochPacketCount returns the number of packets sealed with the
// current set of keys at the given encryption level. It is reset to zero
// by a key update. Returns math.MaxUint64 if the level is not available.
func (q *QTX) CurEpochPacketCount(el protocol.EncryptionLevel) uint64 {
	st := q.elState(el)
	if st == nil || !st.live() {
		return math.MaxUint64
	}
	return st.epochPktCount
}

// MaxEpochPacketCount returns the maximum number of packets the record
// layer will seal under one set of keys at the given encryption level,
// determined by the confidentiality limit of the configured cipher suite.
// Returns math.MaxUint64 if the level is not available.
func (q *QTX) MaxEpochPacketCount(el protocol.EncryptionLevel) uint64 {
	st := q.elState(el)
	if st == nil || !st.live() {
		return math.MaxUint64
	}
	return st.maxEpochPkts
}

// SetSink changes the datagram sink. A nil sink is allowed if actual
// transmission is not currently required; datagrams then accumulate in
// the queue.
func (q *QTX) SetSink(s DatagramSink) {
	q.sink = s
}

// SetMDPL changes the maximum datagram payload length. An already open
// coalescing datagram keeps the limit it was created with; the new value
// applies from the next datagram on.
func (q *QTX) SetMDPL(mdpl int) error {
	if mdpl < protocol.MinCoalescingMDPL {
		return ErrMDPLTooSmall
	}
	if mdpl > protocol.MaxDatagramPayloadSize {
		mdpl = protocol.MaxDatagramPayloadSize
	}
	q.mdpl = mdpl
	return nil
}
