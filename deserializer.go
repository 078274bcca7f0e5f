package bufpack

import "github.com/rawbytedev/bufpack/internal/common"

// Deserializer reads typed values out of a borrowed buffer, advancing a
// cursor. It never writes to the buffer. Reads that would run past the
// capacity fail without touching the cursor.
type Deserializer struct {
	buf    []byte
	cursor int
}

// NewDeserializer borrows buf for the lifetime of the returned Deserializer.
func NewDeserializer(buf []byte) *Deserializer {
	return &Deserializer{buf: buf}
}

// BufferSize returns the fixed capacity of the borrowed buffer.
func (d *Deserializer) BufferSize() int { return len(d.buf) }

// BytesRead returns the current cursor position.
func (d *Deserializer) BytesRead() int { return d.cursor }

// BytesLeft returns the bytes remaining past the cursor.
func (d *Deserializer) BytesLeft() int { return len(d.buf) - d.cursor }

// FitsInBuffer reports whether n more bytes are available at the cursor.
func (d *Deserializer) FitsInBuffer(n int) bool { return d.cursor+n <= len(d.buf) }

// Buffer returns the whole backing buffer.
func (d *Deserializer) Buffer() []byte { return d.buf }

// Reset rewinds the cursor to the start of the buffer.
func (d *Deserializer) Reset() { d.cursor = 0 }

// ReadRaw returns a zero-copy view of the next n bytes and advances the
// cursor past them. The view aliases the borrowed buffer.
func (d *Deserializer) ReadRaw(n int) ([]byte, error) {
	if n < 0 || d.cursor+n > len(d.buf) {
		return nil, StatusOutOfRange
	}
	p := d.buf[d.cursor : d.cursor+n]
	d.cursor += n
	return p, nil
}

// FitsRead reports whether one value of T is available at the cursor.
func FitsRead[T Fixed](d *Deserializer) bool {
	return d.cursor+common.Size[T]() <= len(d.buf)
}

// Read copies one value of T out of the buffer and advances the cursor by
// T's width.
func Read[T Fixed](d *Deserializer) (T, error) {
	var zero T
	n := common.Size[T]()
	if d.cursor+n > len(d.buf) {
		return zero, StatusOutOfRange
	}
	v := common.Get[T](d.buf[d.cursor:])
	d.cursor += n
	return v, nil
}

// Skip advances the cursor past one value of T without exposing it.
func Skip[T Fixed](d *Deserializer) error {
	n := common.Size[T]()
	if d.cursor+n > len(d.buf) {
		return StatusOutOfRange
	}
	d.cursor += n
	return nil
}

// ReadEnum reads the underlying integer of T and accepts it only if isValid
// says so. The bounds check runs before any byte is touched; on a rejected
// value the cursor does not advance, leaving the field readable as a plain
// integer if the caller wants to inspect it.
func ReadEnum[T Enum](d *Deserializer, isValid func(T) bool) (T, error) {
	var zero T
	if isValid == nil {
		return zero, StatusValidatorMissing
	}
	n := common.Size[T]()
	if d.cursor+n > len(d.buf) {
		return zero, StatusOutOfRange
	}
	v := common.Get[T](d.buf[d.cursor:])
	if !isValid(v) {
		return zero, StatusValidatorRejected
	}
	d.cursor += n
	return v, nil
}

// View advances the cursor past one value of T and returns a zero-copy
// reference to its slot; the bytes are not copied out until the reference
// is read. The returned reference is null when the slot does not fit.
func View[T Fixed](d *Deserializer) (DeserializerRef[T], error) {
	n := common.Size[T]()
	if d.cursor+n > len(d.buf) {
		return DeserializerRef[T]{}, StatusOutOfRange
	}
	ref := DeserializerRef[T]{slot: d.buf[d.cursor : d.cursor+n]}
	d.cursor += n
	return ref, nil
}

// ReadString decodes a [length: S][bytes] frame into a new owned string.
// The frame must fit the caller's declared cap: the bounds check is against
// maxSize, not merely the bytes remaining. A stored length larger than
// maxSize is clamped to it, and the cursor advances by the clamped length.
func ReadString[S SizeType](d *Deserializer, maxSize S) (string, error) {
	n := common.Size[S]()
	if uint64(maxSize) > uint64(len(d.buf)) || d.cursor+n+int(maxSize) > len(d.buf) {
		return "", StatusStringOutOfRange
	}
	stored, err := Read[S](d)
	if err != nil {
		return "", StatusStringSizeOutOfRange
	}
	size := int(maxSize)
	if stored < maxSize {
		size = int(stored)
	}
	out := string(d.buf[d.cursor : d.cursor+size])
	d.cursor += size
	return out, nil
}

// ReadStringInto decodes a string frame into dst and appends a NUL
// terminator. One byte of dst is reserved for the terminator, so the
// effective cap is len(dst)-1; a stored length at or above that is clamped.
// The cursor advances by the clamped length. Returns the decoded length.
func ReadStringInto[S SizeType](d *Deserializer, dst []byte) (S, error) {
	if len(dst) == 0 {
		return 0, StatusNilOutput
	}
	n := common.Size[S]()
	maxSize := len(dst)
	if d.cursor+n+maxSize > len(d.buf) {
		return 0, StatusStringOutOfRange
	}
	stored, err := Read[S](d)
	if err != nil {
		return 0, StatusStringSizeOutOfRange
	}
	size := maxSize - 1
	if uint64(stored) < uint64(maxSize) {
		size = int(stored)
	}
	copy(dst, d.buf[d.cursor:d.cursor+size])
	dst[size] = 0
	d.cursor += size
	return S(size), nil
}
