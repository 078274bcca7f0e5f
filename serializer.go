package bufpack

import "github.com/rawbytedev/bufpack/internal/common"

// Serializer writes typed values into a borrowed buffer, advancing a cursor.
// The capacity is fixed at construction; writes that do not fit fail without
// touching the cursor or the buffer. A Serializer only ever mutates bytes it
// writes itself.
//
// Write, WriteEnum, Reserve and the string writers are package-level generic
// functions taking the Serializer as their first argument.
type Serializer struct {
	buf    []byte
	cursor int
}

// NewSerializer borrows buf for the lifetime of the returned Serializer.
func NewSerializer(buf []byte) *Serializer {
	return &Serializer{buf: buf}
}

// BufferSize returns the fixed capacity of the borrowed buffer.
func (s *Serializer) BufferSize() int { return len(s.buf) }

// BytesWritten returns the current cursor position.
func (s *Serializer) BytesWritten() int { return s.cursor }

// BytesLeft returns the capacity remaining past the cursor.
func (s *Serializer) BytesLeft() int { return len(s.buf) - s.cursor }

// FitsInBuffer reports whether n more bytes fit at the cursor.
func (s *Serializer) FitsInBuffer(n int) bool { return s.cursor+n <= len(s.buf) }

// Bytes returns the written prefix of the buffer.
func (s *Serializer) Bytes() []byte { return s.buf[:s.cursor] }

// Buffer returns the whole backing buffer.
func (s *Serializer) Buffer() []byte { return s.buf }

// Reset rewinds the cursor to the start of the buffer.
func (s *Serializer) Reset() { s.cursor = 0 }

// WriteRaw copies p verbatim at the cursor, with no length prefix.
func (s *Serializer) WriteRaw(p []byte) error {
	if s.cursor+len(p) > len(s.buf) {
		return StatusOutOfRange
	}
	s.cursor += copy(s.buf[s.cursor:], p)
	return nil
}

// Fits reports whether one value of T fits at the cursor.
func Fits[T Fixed](s *Serializer) bool {
	return s.cursor+common.Size[T]() <= len(s.buf)
}

// Write copies the native representation of v into the buffer at the cursor
// and advances it by the width of T.
func Write[T Fixed](s *Serializer, v T) error {
	n := common.Size[T]()
	if s.cursor+n > len(s.buf) {
		return StatusOutOfRange
	}
	common.Put(s.buf[s.cursor:], v)
	s.cursor += n
	return nil
}

// WriteEnum encodes v as its underlying integer, exactly as Write would for
// that width.
func WriteEnum[T Enum](s *Serializer, v T) error {
	n := common.Size[T]()
	if s.cursor+n > len(s.buf) {
		return StatusOutOfRange
	}
	common.Put(s.buf[s.cursor:], v)
	s.cursor += n
	return nil
}

// Reserve advances the cursor past a slot of T's width without writing it
// and returns a reference bound to that slot, for values only known after
// later writes (trailing lengths, checksums). The returned reference is
// null when the slot does not fit.
func Reserve[T Fixed](s *Serializer) (SerializerRef[T], error) {
	n := common.Size[T]()
	if s.cursor+n > len(s.buf) {
		return SerializerRef[T]{}, StatusOutOfRange
	}
	ref := SerializerRef[T]{slot: s.buf[s.cursor : s.cursor+n]}
	s.cursor += n
	return ref, nil
}

// WriteString frames str as [length: S][bytes]. No terminator is stored.
func WriteString[S SizeType](s *Serializer, str string) error {
	if uint64(len(str)) > uint64(^S(0)) {
		return StatusStringSizeOutOfRange
	}
	n := common.Size[S]()
	size := len(str)
	if s.cursor+n+size > len(s.buf) {
		return StatusStringOutOfRange
	}
	if err := Write(s, S(size)); err != nil {
		return StatusStringSizeOutOfRange
	}
	s.cursor += copy(s.buf[s.cursor:], str)
	return nil
}

// WriteBytes frames p as [length: S][bytes]. A nil p is an empty frame.
func WriteBytes[S SizeType](s *Serializer, p []byte) error {
	if uint64(len(p)) > uint64(^S(0)) {
		return StatusStringSizeOutOfRange
	}
	n := common.Size[S]()
	size := len(p)
	if s.cursor+n+size > len(s.buf) {
		return StatusStringOutOfRange
	}
	if err := Write(s, S(size)); err != nil {
		return StatusStringSizeOutOfRange
	}
	s.cursor += copy(s.buf[s.cursor:], p)
	return nil
}

// WriteCString frames the bytes of p before its first NUL. The scan is
// capped at BytesLeft, so an unterminated p never reads past what could be
// framed anyway.
func WriteCString[S SizeType](s *Serializer, p []byte) error {
	limit := min(s.BytesLeft(), len(p))
	size := 0
	for size < limit && p[size] != 0 {
		size++
	}
	return WriteBytes[S](s, p[:size])
}
