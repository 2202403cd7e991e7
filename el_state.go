package qtx

import (
	"crypto"

	"github.com/quic-rl/qtx/internal/handshake"
	"github.com/quic-rl/qtx/internal/protocol"
)

// elState is the keyed state of one encryption level.
// Once discarded, an encryption level can never seal again.
type elState struct {
	suite *handshake.CipherSuite
	hash  crypto.Hash

	sealer        handshake.Sealer
	trafficSecret []byte

	// nextSealer and nextSecret are set between TriggerKeyUpdate and the
	// first 1-RTT packet sealed afterwards. Only 1-RTT ever populates them.
	nextSealer handshake.Sealer
	nextSecret []byte

	keyPhase      protocol.KeyPhase
	epochPktCount uint64
	maxEpochPkts  uint64

	provisioned bool
	discarded   bool
}

// live says if the encryption level can still seal packets.
func (s *elState) live() bool {
	return s.provisioned && !s.discarded
}

func (s *elState) provision(suite *handshake.CipherSuite, hash crypto.Hash, secret []byte, isLongHeader bool) {
	// keep an owned copy: the secret is needed again for the "quic ku"
	// expansion on key update
	s.trafficSecret = make([]byte, len(secret))
	copy(s.trafficSecret, secret)
	s.suite = suite
	s.hash = hash
	s.sealer = handshake.NewSealer(suite, hash, s.trafficSecret, isLongHeader)
	s.maxEpochPkts = suite.MaxPacketsPerEpoch
	s.provisioned = true
}

// startKeyUpdate derives the next-generation keys and flips the key phase.
// The new keys are not used until the next packet is sealed.
func (s *elState) startKeyUpdate() {
	s.nextSecret = handshake.NextTrafficSecret(s.hash, s.trafficSecret)
	s.nextSealer = handshake.NewSealer(s.suite, s.hash, s.nextSecret, false)
	s.keyPhase++
}

// installPending makes the next-generation keys current.
// Called when the first packet of the new key phase is about to be sealed.
func (s *elState) installPending() {
	handshake.Wipe(s.trafficSecret)
	s.trafficSecret = s.nextSecret
	s.sealer = s.nextSealer
	s.nextSecret = nil
	s.nextSealer = nil
	s.epochPktCount = 0
}

// discard wipes the traffic secrets and drops the sealers; the key state
// inside the dropped sealers is not wiped. Idempotent.
func (s *elState) discard() {
	if s.discarded {
		return
	}
	handshake.Wipe(s.trafficSecret)
	handshake.Wipe(s.nextSecret)
	s.trafficSecret = nil
	s.nextSecret = nil
	s.sealer = nil
	s.nextSealer = nil
	s.discarded = true
}
