// Package bufpack packs and unpacks structured binary messages in
// caller-owned fixed-capacity buffers. A Serializer writes typed values at
// a cursor, a Deserializer reads them back; neither ever grows, copies or
// frees the buffer. Every operation is bounds-checked up front and atomic:
// on failure the cursor and the buffer are left exactly as they were.
//
// Fixed-width values travel as their native in-memory representation (host
// byte order, exact width). Strings are framed as [length: SizeType][bytes]
// with no terminator on the wire. Enums are bare integers of their declared
// width. Both ends must agree out of band on the ordered field sequence and
// on byte order; bufpack performs no normalization and carries no schema.
package bufpack

// Fixed is the set of fixed-width value types a Serializer or Deserializer
// can move in a single bounds-checked operation.
type Fixed interface {
	~bool |
		~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr |
		~float32 | ~float64
}

// Enum constrains enum-like named integer types. The wire carries only the
// underlying integer at its declared width; nothing marks it as an enum.
type Enum interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// SizeType is the set of unsigned widths usable as a string length prefix.
// Encode and decode must use the same SizeType for a given field.
type SizeType interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}
