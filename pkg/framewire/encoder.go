package framewire

import (
	"hash/crc32"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/bufpack"
	"github.com/rawbytedev/bufpack/internal/common"
)

// EncodeData builds a data frame into buf and returns the written prefix.
// Layout: magic, type, total length (reserved, patched once the body is
// done), flags, optional offset table (count u16 + u32 entries), payload,
// CRC32. With FlagCompressed the payload is zstd-compressed and prefixed by
// a varint uncompressed size.
func EncodeData(buf, payload []byte, flags byte, offsets []uint32) ([]byte, error) {
	s := bufpack.NewSerializer(buf)
	if err := writePreamble(s, TypeData); err != nil {
		return nil, ErrFrameTooLarge
	}
	length, err := bufpack.Reserve[uint32](s)
	if err != nil {
		return nil, ErrFrameTooLarge
	}
	if err := bufpack.Write(s, flags); err != nil {
		return nil, ErrFrameTooLarge
	}

	if flags&FlagHasOffsetTable != 0 {
		if err := bufpack.Write(s, uint16(len(offsets))); err != nil {
			return nil, ErrFrameTooLarge
		}
		for _, off := range offsets {
			if err := bufpack.Write(s, off); err != nil {
				return nil, ErrFrameTooLarge
			}
		}
	}

	body := payload
	if flags&FlagCompressed != 0 {
		comp, err := compress(payload)
		if err != nil {
			return nil, err
		}
		if err := s.WriteRaw(common.WriteVarUint(nil, uint64(len(payload)))); err != nil {
			return nil, ErrFrameTooLarge
		}
		body = comp
	}
	if err := s.WriteRaw(body); err != nil {
		return nil, ErrFrameTooLarge
	}

	// total covers everything up to and including the CRC
	length.Write(uint32(s.BytesWritten() + 4))

	crc := crc32.ChecksumIEEE(s.Bytes()[2:])
	if err := bufpack.Write(s, crc); err != nil {
		return nil, ErrFrameTooLarge
	}
	return s.Bytes(), nil
}

// EncodeError builds an error frame with a code and custom data.
func EncodeError(buf []byte, code byte, data []byte) ([]byte, error) {
	s := bufpack.NewSerializer(buf)
	if err := writePreamble(s, TypeError); err != nil {
		return nil, ErrFrameTooLarge
	}

	// TLV length = code(1) + dataLen(2) + len(data)
	if err := bufpack.Write(s, uint32(1+2+len(data))); err != nil {
		return nil, ErrFrameTooLarge
	}
	if err := bufpack.Write(s, code); err != nil {
		return nil, ErrFrameTooLarge
	}
	if err := bufpack.WriteBytes[uint16](s, data); err != nil {
		return nil, ErrFrameTooLarge
	}

	crc := crc32.ChecksumIEEE(s.Bytes()[2:])
	if err := bufpack.Write(s, crc); err != nil {
		return nil, ErrFrameTooLarge
	}
	return s.Bytes(), nil
}

// EncodeHandshake builds a handshake frame from h.
func EncodeHandshake(buf []byte, h HandshakeFrame) ([]byte, error) {
	s := bufpack.NewSerializer(buf)
	if err := writePreamble(s, TypeHandshake); err != nil {
		return nil, ErrFrameTooLarge
	}
	length, err := bufpack.Reserve[uint32](s)
	if err != nil {
		return nil, ErrFrameTooLarge
	}
	if err := bufpack.Write(s, h.VersionMask); err != nil {
		return nil, ErrFrameTooLarge
	}
	if err := bufpack.Write(s, h.MTU); err != nil {
		return nil, ErrFrameTooLarge
	}
	if err := bufpack.Write(s, h.TimeoutMS); err != nil {
		return nil, ErrFrameTooLarge
	}
	if err := bufpack.WriteBytes[uint16](s, h.AlgCodes); err != nil {
		return nil, ErrFrameTooLarge
	}

	length.Write(uint32(s.BytesWritten() + 4))

	crc := crc32.ChecksumIEEE(s.Bytes()[2:])
	if err := bufpack.Write(s, crc); err != nil {
		return nil, ErrFrameTooLarge
	}
	return s.Bytes(), nil
}

func writePreamble(s *bufpack.Serializer, t FrameType) error {
	if err := s.WriteRaw([]byte{Magic0, Magic1}); err != nil {
		return err
	}
	return bufpack.WriteEnum(s, t)
}

func compress(raw []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}
