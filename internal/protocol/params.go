package protocol

// MinInitialPacketSize is the minimum size of an Initial packet
const MinInitialPacketSize = 1200

// InitialPacketSize is the QTX default for the maximum datagram payload
// length: the IPv4 minimum MTU of 1280 minus IP and UDP header sizes.
const InitialPacketSize = 1252

// MaxPacketBufferSize maximum packet size of any QUIC packet, based on
// ethernet's max size, minus the IP and UDP headers. IPv6 has a 40 byte header,
// UDP adds an additional 8 bytes.  This is a total overhead of 48 bytes.
// Ethernet's max packet size is 1500 bytes,  1500 - 48 = 1452.
const MaxPacketBufferSize = 1452

// MaxDatagramPayloadSize is the hard upper bound on the size of a UDP
// datagram payload: the maximum value of the UDP Length field minus the
// UDP header.
const MaxDatagramPayloadSize = 65527

// MinCoalescingMDPL is the smallest maximum datagram payload length the
// record layer accepts. Any smaller and not even a minimal short header
// packet with header protection sample room is guaranteed to fit.
const MinCoalescingMDPL = 64

// MinCoalescingSpace is the smallest datagram remainder worth keeping a
// coalescing datagram open for: a short header packet with a 1-byte packet
// number, no connection ID, an AEAD tag and sample headroom.
const MinCoalescingSpace = 32
