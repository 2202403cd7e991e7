package qtx

import "errors"

// Configuration errors.
var (
	// ErrAlreadyProvisioned is returned by ProvideSecret when keys for the
	// encryption level were installed before. A secret cannot be changed
	// after it is set: QUIC key updates derive new keys from existing key
	// material and never introduce new entropy.
	ErrAlreadyProvisioned = errors.New("encryption level already provisioned")
	// ErrAlreadyDiscarded is returned by ProvideSecret after a call to
	// DiscardEncLevel for the same encryption level.
	ErrAlreadyDiscarded = errors.New("encryption level already discarded")
	// ErrBadSecretLen is returned when the secret doesn't match the
	// output length of the hash function.
	ErrBadSecretLen = errors.New("wrong secret length")
	// ErrUnknownSuite is returned for cipher suite IDs this record layer
	// doesn't implement.
	ErrUnknownSuite = errors.New("unknown cipher suite")
	// ErrMDPLTooSmall is returned when the maximum datagram payload length
	// is too small to hold even a minimal packet.
	ErrMDPLTooSmall = errors.New("maximum datagram payload length too small")
)

// Precondition errors.
var (
	// ErrNoKeys is returned by WritePacket when the encryption level was
	// never provisioned, or was discarded.
	ErrNoKeys = errors.New("no keys for encryption level")
	// ErrWrongLevel is returned by TriggerKeyUpdate when 1-RTT keys don't exist.
	ErrWrongLevel = errors.New("operation requires 1-RTT keys")
	// ErrUpdateInFlight is returned by TriggerKeyUpdate when a key update
	// was triggered but no packet has been sealed under the new keys yet.
	ErrUpdateInFlight = errors.New("key update already in flight")
	// ErrPrereqNotMet is returned by TriggerKeyUpdate while the Initial or
	// Handshake encryption level is still live.
	ErrPrereqNotMet = errors.New("Initial and Handshake keys not yet discarded")
	// ErrSinkMissing is returned by FlushNet when no sink is set.
	// The queued datagrams are left untouched.
	ErrSinkMissing = errors.New("no datagram sink set")
)

// Packet errors.
var (
	// ErrBadPacketShape is returned for logical packets that cannot be
	// sealed: an invalid packet number length, or a payload too short to
	// leave room for the header protection sample.
	ErrBadPacketShape = errors.New("malformed logical packet")
	// ErrPacketTooLarge is returned when the sealed packet would not fit
	// even into a fresh empty datagram.
	ErrPacketTooLarge = errors.New("packet exceeds maximum datagram payload length")
	// ErrEpochExhausted is returned once the AEAD confidentiality limit of
	// the current key epoch is reached. The affected encryption level is
	// permanently unable to seal; for 1-RTT a key update should have been
	// triggered well before this point.
	ErrEpochExhausted = errors.New("confidentiality limit of current key epoch reached")
)
