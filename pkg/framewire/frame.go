// Package framewire frames payloads into caller-owned fixed-capacity
// buffers on top of the bufpack codec: a two-byte magic, a frame type, a
// total-length field patched in after the body, and a trailing CRC32 over
// everything past the magic. Multi-byte fields inherit bufpack's host-order
// wire contract.
package framewire

import "errors"

// FrameType identifies the frame kind carried after the magic.
type FrameType uint8

const (
	TypeData FrameType = iota + 1
	TypeError
	TypeHandshake
)

// ValidFrameType reports whether t is a known frame type.
func ValidFrameType(t FrameType) bool { return t >= TypeData && t <= TypeHandshake }

// Frame magic, first two bytes of every frame.
const (
	Magic0 byte = 0xF5
	Magic1 byte = 0xBC
)

// Data frame flags.
const (
	FlagHasOffsetTable byte = 1 << 0
	FlagCompressed     byte = 1 << 1
)

var (
	ErrBadMagic         = errors.New("bad magic")
	ErrUnknownFrameType = errors.New("unknown frame type")
	ErrNotDataFrame     = errors.New("not a data frame")
	ErrNotErrorFrame    = errors.New("not an error frame")
	ErrNotHandshake     = errors.New("not a handshake frame")
	ErrTruncated        = errors.New("truncated frame")
	ErrLengthMismatch   = errors.New("length mismatch")
	ErrCRCMismatch      = errors.New("crc mismatch")
	ErrFrameTooLarge    = errors.New("frame does not fit in buffer")
)

// HandshakeFrame carries the session parameters exchanged before data flows.
type HandshakeFrame struct {
	VersionMask uint16
	MTU         uint16
	TimeoutMS   uint32
	AlgCodes    []byte
}
