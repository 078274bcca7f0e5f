package common

import "unsafe"

// Size returns the in-memory width of T in bytes.
func Size[T any]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// Put copies the native representation of v into dst.
// dst must be at least Size[T]() bytes long. The copy is byte-wise, so
// dst alignment does not matter.
func Put[T any](dst []byte, v T) {
	copy(dst, unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)))
}

// Get decodes a value of T from its native representation at src.
// src must be at least Size[T]() bytes long.
func Get[T any](src []byte) T {
	var v T
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)), src)
	return v
}

// WriteVarUint appends a varint to buf (allocating if needed).
func WriteVarUint(buf []byte, x uint64) []byte {
	for x >= 0x80 {
		buf = append(buf, byte(x)|0x80)
		x >>= 7
	}
	return append(buf, byte(x))
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}
