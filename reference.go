package bufpack

import "github.com/rawbytedev/bufpack/internal/common"

// SerializerRef is a handle to one reserved slot of a Serializer's buffer,
// bound at Reserve time. It stays valid no matter how far the cursor moves
// afterwards; bounds were settled at reservation, so Write cannot fail on a
// non-null reference. The handle borrows the buffer, nothing more.
type SerializerRef[T Fixed] struct {
	slot []byte
}

// IsNull reports whether the reservation failed.
func (r SerializerRef[T]) IsNull() bool { return r.slot == nil }

// Write stores v into the reserved slot, independent of the cursor.
// On a null reference it does nothing.
func (r SerializerRef[T]) Write(v T) {
	if r.slot == nil {
		return
	}
	common.Put(r.slot, v)
}

// Read returns the slot's current value. A null reference yields the
// sentinel whose bytes are all 0xFF (the maximum for unsigned widths),
// never an error.
func (r SerializerRef[T]) Read() T {
	if r.slot == nil {
		return sentinel[T]()
	}
	return common.Get[T](r.slot)
}

// DeserializerRef is the read-only counterpart obtained from View: a
// zero-copy window into a Deserializer's buffer that dereferences lazily.
type DeserializerRef[T Fixed] struct {
	slot []byte
}

// IsNull reports whether the view failed.
func (r DeserializerRef[T]) IsNull() bool { return r.slot == nil }

// Read returns the slot's current value. A null reference yields the
// all-0xFF sentinel, never an error.
func (r DeserializerRef[T]) Read() T {
	if r.slot == nil {
		return sentinel[T]()
	}
	return common.Get[T](r.slot)
}

func sentinel[T Fixed]() T {
	b := make([]byte, common.Size[T]())
	for i := range b {
		b[i] = 0xFF
	}
	return common.Get[T](b)
}
