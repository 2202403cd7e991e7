package protocol

import "fmt"

// Version is a version number as int
type Version uint32

// The version numbers, making grepping easier
const (
	// Version1 is RFC 9000
	Version1 Version = 0x1
)

func (vn Version) String() string {
	switch vn {
	case Version1:
		return "v1"
	default:
		return fmt.Sprintf("%#x", uint32(vn))
	}
}
