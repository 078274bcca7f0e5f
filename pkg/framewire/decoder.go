package framewire

import (
	"hash/crc32"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/bufpack"
	"github.com/rawbytedev/bufpack/internal/common"
)

// DecodeData parses a data frame and returns its payload, offset table and
// flags. The payload aliases data unless the frame was compressed.
func DecodeData(data []byte) ([]byte, []uint32, byte, error) {
	d := bufpack.NewDeserializer(data)
	t, err := readPreamble(d)
	if err != nil {
		return nil, nil, 0, err
	}
	if t != TypeData {
		return nil, nil, 0, ErrNotDataFrame
	}

	total, err := bufpack.Read[uint32](d)
	if err != nil {
		return nil, nil, 0, ErrTruncated
	}
	if int(total) != len(data) {
		return nil, nil, 0, ErrLengthMismatch
	}
	flags, err := bufpack.Read[byte](d)
	if err != nil {
		return nil, nil, 0, ErrTruncated
	}

	var offsets []uint32
	if flags&FlagHasOffsetTable != 0 {
		cnt, err := bufpack.Read[uint16](d)
		if err != nil {
			return nil, nil, 0, ErrTruncated
		}
		offsets = make([]uint32, cnt)
		for i := range offsets {
			if offsets[i], err = bufpack.Read[uint32](d); err != nil {
				return nil, nil, 0, ErrTruncated
			}
		}
	}

	body, err := d.ReadRaw(d.BytesLeft() - 4)
	if err != nil {
		return nil, nil, 0, ErrTruncated
	}
	if err := checkCRC(d, data); err != nil {
		return nil, nil, 0, err
	}

	payload := body
	if flags&FlagCompressed != 0 {
		size, n := common.ReadVarUint(body)
		if n == 0 {
			return nil, nil, 0, ErrTruncated
		}
		if payload, err = decompress(body[n:], int(size)); err != nil {
			return nil, nil, 0, err
		}
	}
	return payload, offsets, flags, nil
}

// DecodeError parses an error frame and returns its code and custom data.
// The data aliases the input frame.
func DecodeError(data []byte) (byte, []byte, error) {
	d := bufpack.NewDeserializer(data)
	t, err := readPreamble(d)
	if err != nil {
		return 0, nil, err
	}
	if t != TypeError {
		return 0, nil, ErrNotErrorFrame
	}

	if _, err := bufpack.Read[uint32](d); err != nil { // TLV length
		return 0, nil, ErrTruncated
	}
	code, err := bufpack.Read[byte](d)
	if err != nil {
		return 0, nil, ErrTruncated
	}
	dataLen, err := bufpack.Read[uint16](d)
	if err != nil {
		return 0, nil, ErrTruncated
	}
	custom, err := d.ReadRaw(int(dataLen))
	if err != nil {
		return 0, nil, ErrTruncated
	}
	if err := checkCRC(d, data); err != nil {
		return 0, nil, err
	}
	return code, custom, nil
}

// DecodeHandshake parses a handshake frame. AlgCodes aliases the input.
func DecodeHandshake(data []byte) (HandshakeFrame, error) {
	var h HandshakeFrame
	d := bufpack.NewDeserializer(data)
	t, err := readPreamble(d)
	if err != nil {
		return h, err
	}
	if t != TypeHandshake {
		return h, ErrNotHandshake
	}

	total, err := bufpack.Read[uint32](d)
	if err != nil {
		return h, ErrTruncated
	}
	if int(total) != len(data) {
		return h, ErrLengthMismatch
	}
	if h.VersionMask, err = bufpack.Read[uint16](d); err != nil {
		return h, ErrTruncated
	}
	if h.MTU, err = bufpack.Read[uint16](d); err != nil {
		return h, ErrTruncated
	}
	if h.TimeoutMS, err = bufpack.Read[uint32](d); err != nil {
		return h, ErrTruncated
	}
	algoLen, err := bufpack.Read[uint16](d)
	if err != nil {
		return h, ErrTruncated
	}
	if h.AlgCodes, err = d.ReadRaw(int(algoLen)); err != nil {
		return h, ErrTruncated
	}
	if err := checkCRC(d, data); err != nil {
		return h, err
	}
	return h, nil
}

func readPreamble(d *bufpack.Deserializer) (FrameType, error) {
	magic, err := d.ReadRaw(2)
	if err != nil {
		return 0, ErrTruncated
	}
	if magic[0] != Magic0 || magic[1] != Magic1 {
		return 0, ErrBadMagic
	}
	t, err := bufpack.ReadEnum(d, ValidFrameType)
	if err != nil {
		return 0, ErrUnknownFrameType
	}
	return t, nil
}

// checkCRC reads the trailing CRC32 and verifies it over everything between
// the magic and the CRC itself.
func checkCRC(d *bufpack.Deserializer, data []byte) error {
	want, err := bufpack.Read[uint32](d)
	if err != nil {
		return ErrTruncated
	}
	if crc32.ChecksumIEEE(data[2:len(data)-4]) != want {
		return ErrCRCMismatch
	}
	return nil
}

func decompress(comp []byte, uncompressedSize int) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(comp, make([]byte, 0, uncompressedSize))
}
