package bufpack

import (
	"bytes"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color uint8

const (
	colorRed color = iota
	colorGreen
	colorBlue
)

func isColor(c color) bool { return c <= colorBlue }

func TestWriteReadRoundTripTypes(t *testing.T) {
	buf := make([]byte, 128)
	s := NewSerializer(buf)

	require.NoError(t, Write(s, true))
	require.NoError(t, Write(s, int8(-12)))
	require.NoError(t, Write(s, uint8(0xAB)))
	require.NoError(t, Write(s, int16(-3000)))
	require.NoError(t, Write(s, uint16(60000)))
	require.NoError(t, Write(s, int32(-2000000)))
	require.NoError(t, Write(s, uint32(4000000000)))
	require.NoError(t, Write(s, int64(-1<<60)))
	require.NoError(t, Write(s, uint64(1<<63)))
	require.NoError(t, Write(s, float32(12.5)))
	require.NoError(t, Write(s, float64(-1236.25)))

	d := NewDeserializer(s.Bytes())
	rb, err := Read[bool](d)
	require.NoError(t, err)
	assert.True(t, rb)
	ri8, err := Read[int8](d)
	require.NoError(t, err)
	assert.Equal(t, int8(-12), ri8)
	ru8, err := Read[uint8](d)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), ru8)
	ri16, err := Read[int16](d)
	require.NoError(t, err)
	assert.Equal(t, int16(-3000), ri16)
	ru16, err := Read[uint16](d)
	require.NoError(t, err)
	assert.Equal(t, uint16(60000), ru16)
	ri32, err := Read[int32](d)
	require.NoError(t, err)
	assert.Equal(t, int32(-2000000), ri32)
	ru32, err := Read[uint32](d)
	require.NoError(t, err)
	assert.Equal(t, uint32(4000000000), ru32)
	ri64, err := Read[int64](d)
	require.NoError(t, err)
	assert.Equal(t, int64(-1<<60), ri64)
	ru64, err := Read[uint64](d)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<63), ru64)
	rf32, err := Read[float32](d)
	require.NoError(t, err)
	assert.Equal(t, float32(12.5), rf32)
	rf64, err := Read[float64](d)
	require.NoError(t, err)
	assert.Equal(t, float64(-1236.25), rf64)
	assert.Equal(t, s.BytesWritten(), d.BytesRead())
}

func TestWriteOutOfRangeLeavesState(t *testing.T) {
	buf := make([]byte, 4)
	s := NewSerializer(buf)
	require.NoError(t, Write(s, uint32(0xDEADBEEF)))
	snapshot := append([]byte(nil), buf...)

	err := Write(s, uint8(1))
	require.ErrorIs(t, err, StatusOutOfRange)
	assert.Equal(t, 4, s.BytesWritten())
	assert.Equal(t, snapshot, buf)

	err = Write(s, uint64(2))
	require.ErrorIs(t, err, StatusOutOfRange)
	assert.Equal(t, 4, s.BytesWritten())
	assert.Equal(t, snapshot, buf)
}

func TestWriteStringVector(t *testing.T) {
	buf := make([]byte, 16)
	s := NewSerializer(buf)
	require.NoError(t, WriteString[uint8](s, "hello"))
	assert.Equal(t, 6, s.BytesWritten())
	assert.Equal(t, []byte{5, 'h', 'e', 'l', 'l', 'o'}, s.Bytes())
}

func TestWriteStringOutOfRange(t *testing.T) {
	buf := make([]byte, 4)
	s := NewSerializer(buf)
	err := WriteString[uint8](s, "hello")
	require.ErrorIs(t, err, StatusStringOutOfRange)
	assert.Equal(t, 0, s.BytesWritten())
}

func TestWriteStringPrefixTooNarrow(t *testing.T) {
	buf := make([]byte, 512)
	s := NewSerializer(buf)
	long := bytes.Repeat([]byte{'a'}, 300)
	err := WriteString[uint8](s, string(long))
	require.ErrorIs(t, err, StatusStringSizeOutOfRange)
	assert.Equal(t, 0, s.BytesWritten())
}

func TestWriteCString(t *testing.T) {
	buf := make([]byte, 16)
	s := NewSerializer(buf)
	require.NoError(t, WriteCString[uint8](s, []byte("abc\x00junk")))
	assert.Equal(t, []byte{3, 'a', 'b', 'c'}, s.Bytes())

	// unterminated input stops at the input's end
	s.Reset()
	require.NoError(t, WriteCString[uint8](s, []byte("xy")))
	assert.Equal(t, []byte{2, 'x', 'y'}, s.Bytes())
}

func TestWriteEnumWidth(t *testing.T) {
	type mode uint16
	buf := make([]byte, 8)
	s := NewSerializer(buf)
	require.NoError(t, WriteEnum(s, mode(7)))
	assert.Equal(t, 2, s.BytesWritten())

	d := NewDeserializer(s.Bytes())
	m, err := ReadEnum(d, func(m mode) bool { return m < 10 })
	require.NoError(t, err)
	assert.Equal(t, mode(7), m)
}

func TestReservePatchMatchesImmediateWrite(t *testing.T) {
	patched := make([]byte, 32)
	direct := make([]byte, 32)

	sp := NewSerializer(patched)
	ref, err := Reserve[uint32](sp)
	require.NoError(t, err)
	require.False(t, ref.IsNull())
	require.NoError(t, WriteString[uint8](sp, "body"))
	ref.Write(42)

	sd := NewSerializer(direct)
	require.NoError(t, Write(sd, uint32(42)))
	require.NoError(t, WriteString[uint8](sd, "body"))

	assert.Equal(t, sd.Bytes(), sp.Bytes())
	assert.Equal(t, uint32(42), ref.Read())
}

func TestResetReplay(t *testing.T) {
	write := func(s *Serializer) {
		require.NoError(t, Write(s, uint16(512)))
		require.NoError(t, WriteString[uint8](s, "replay"))
		require.NoError(t, Write(s, int64(-9)))
	}

	buf := make([]byte, 32)
	s := NewSerializer(buf)
	write(s)
	first := append([]byte(nil), s.Bytes()...)

	s.Reset()
	assert.Equal(t, 0, s.BytesWritten())
	write(s)
	assert.Equal(t, first, s.Bytes())

	fresh := NewSerializer(make([]byte, 32))
	write(fresh)
	assert.Equal(t, first, fresh.Bytes())
}

func TestAccessors(t *testing.T) {
	buf := make([]byte, 10)
	s := NewSerializer(buf)
	assert.Equal(t, 10, s.BufferSize())
	assert.Equal(t, 10, s.BytesLeft())
	assert.True(t, s.FitsInBuffer(10))
	assert.False(t, s.FitsInBuffer(11))
	assert.True(t, Fits[uint64](s))

	require.NoError(t, Write(s, uint32(1)))
	assert.Equal(t, 6, s.BytesLeft())
	assert.False(t, Fits[uint64](s))
	assert.Len(t, s.Buffer(), 10)
}

func TestQuickRoundTrip(t *testing.T) {
	prop := func(a uint64, b int32, c uint16) bool {
		buf := make([]byte, 16)
		s := NewSerializer(buf)
		if Write(s, a) != nil || Write(s, b) != nil || Write(s, c) != nil {
			return false
		}
		d := NewDeserializer(s.Bytes())
		ra, err := Read[uint64](d)
		if err != nil {
			return false
		}
		rb, err := Read[int32](d)
		if err != nil {
			return false
		}
		rc, err := Read[uint16](d)
		if err != nil {
			return false
		}
		return ra == a && rb == b && rc == c
	}
	require.NoError(t, quick.Check(prop, nil))
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(uint8(1), int32(-5), uint64(9), "hello")
	f.Add(uint8(0), int32(0), uint64(0), "")
	f.Fuzz(func(t *testing.T, a uint8, b int32, c uint64, str string) {
		buf := make([]byte, len(str)+32)
		s := NewSerializer(buf)
		require.NoError(t, Write(s, a))
		require.NoError(t, Write(s, b))
		require.NoError(t, Write(s, c))
		require.NoError(t, WriteString[uint32](s, str))

		d := NewDeserializer(s.Bytes())
		ra, err := Read[uint8](d)
		require.NoError(t, err)
		rb, err := Read[int32](d)
		require.NoError(t, err)
		rc, err := Read[uint64](d)
		require.NoError(t, err)
		rs, err := ReadString(d, uint32(len(str)))
		require.NoError(t, err)
		require.Equal(t, a, ra)
		require.Equal(t, b, rb)
		require.Equal(t, c, rc)
		require.Equal(t, str, rs)
		require.Equal(t, s.BytesWritten(), d.BytesRead())
	})
}
