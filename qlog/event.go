package qlog

import (
	"time"

	"github.com/francoispqt/gojay"

	"github.com/quic-rl/qtx/logging"
)

type eventDetails interface {
	Category() string
	Name() string
	gojay.MarshalerJSONObject
}

type event struct {
	RelativeTime time.Duration
	eventDetails
}

var _ gojay.MarshalerJSONObject = event{}

func (e event) IsNil() bool { return false }
func (e event) MarshalJSONObject(enc *gojay.Encoder) {
	enc.FloatKey("time", float64(e.RelativeTime.Nanoseconds())/1e6)
	enc.StringKey("name", e.Category()+":"+e.Name())
	enc.ObjectKey("data", e.eventDetails)
}

type eventKeysProvisioned struct {
	EncLevel logging.EncryptionLevel
}

var _ eventDetails = &eventKeysProvisioned{}

func (e eventKeysProvisioned) Category() string { return "security" }
func (e eventKeysProvisioned) Name() string     { return "keys_provisioned" }
func (e eventKeysProvisioned) IsNil() bool      { return false }

func (e eventKeysProvisioned) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("enc_level", e.EncLevel.String())
}

type eventKeysDiscarded struct {
	EncLevel logging.EncryptionLevel
}

var _ eventDetails = &eventKeysDiscarded{}

func (e eventKeysDiscarded) Category() string { return "security" }
func (e eventKeysDiscarded) Name() string     { return "keys_discarded" }
func (e eventKeysDiscarded) IsNil() bool      { return false }

func (e eventKeysDiscarded) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("enc_level", e.EncLevel.String())
}

type eventKeysUpdated struct {
	KeyPhase logging.KeyPhase
}

var _ eventDetails = &eventKeysUpdated{}

func (e eventKeysUpdated) Category() string { return "security" }
func (e eventKeysUpdated) Name() string     { return "key_updated" }
func (e eventKeysUpdated) IsNil() bool      { return false }

func (e eventKeysUpdated) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Uint64Key("key_phase", uint64(e.KeyPhase))
	enc.StringKey("trigger", "local")
}

type eventPacketSealed struct {
	EncLevel     logging.EncryptionLevel
	PacketNumber logging.PacketNumber
	Size         logging.ByteCount
}

var _ eventDetails = &eventPacketSealed{}

func (e eventPacketSealed) Category() string { return "transport" }
func (e eventPacketSealed) Name() string     { return "packet_sent" }
func (e eventPacketSealed) IsNil() bool      { return false }

func (e eventPacketSealed) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ObjectKey("header", packetHeader{
		EncLevel:     e.EncLevel,
		PacketNumber: e.PacketNumber,
		PacketSize:   e.Size,
	})
}

type packetHeader struct {
	EncLevel     logging.EncryptionLevel
	PacketNumber logging.PacketNumber
	PacketSize   logging.ByteCount
}

var _ gojay.MarshalerJSONObject = packetHeader{}

func (h packetHeader) IsNil() bool { return false }
func (h packetHeader) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("packet_type", packetTypeFromEncryptionLevel(h.EncLevel))
	enc.Int64Key("packet_number", int64(h.PacketNumber))
	enc.Int64Key("packet_size", int64(h.PacketSize))
}

func packetTypeFromEncryptionLevel(el logging.EncryptionLevel) string {
	switch el {
	case logging.EncryptionInitial:
		return "initial"
	case logging.EncryptionHandshake:
		return "handshake"
	case logging.Encryption0RTT:
		return "0RTT"
	case logging.Encryption1RTT:
		return "1RTT"
	default:
		return "unknown"
	}
}

type eventDatagramQueued struct {
	Size       logging.ByteCount
	NumPackets int
}

var _ eventDetails = &eventDatagramQueued{}

func (e eventDatagramQueued) Category() string { return "transport" }
func (e eventDatagramQueued) Name() string     { return "datagram_queued" }
func (e eventDatagramQueued) IsNil() bool      { return false }

func (e eventDatagramQueued) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Int64Key("byte_length", int64(e.Size))
	enc.IntKey("packet_count", e.NumPackets)
}

type eventDatagramSent struct {
	Size logging.ByteCount
}

var _ eventDetails = &eventDatagramSent{}

func (e eventDatagramSent) Category() string { return "transport" }
func (e eventDatagramSent) Name() string     { return "datagrams_sent" }
func (e eventDatagramSent) IsNil() bool      { return false }

func (e eventDatagramSent) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Int64Key("byte_length", int64(e.Size))
}
