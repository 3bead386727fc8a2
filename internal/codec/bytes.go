package codec

import (
	"encoding/binary"
	"fmt"
)

// ReadUint16 decodes a big-endian uint16 at offset.
func ReadUint16(buf []byte, offset int) (uint16, error) {
	if offset < 0 || offset+2 > len(buf) {
		return 0, fmt.Errorf("read uint16 at %d of %d: %w", offset, len(buf), ErrShortBuffer)
	}
	return binary.BigEndian.Uint16(buf[offset:]), nil
}

// PutUint16 encodes v big-endian at offset.
func PutUint16(buf []byte, offset int, v uint16) error {
	if offset < 0 || offset+2 > len(buf) {
		return fmt.Errorf("put uint16 at %d of %d: %w", offset, len(buf), ErrShortBuffer)
	}
	binary.BigEndian.PutUint16(buf[offset:], v)
	return nil
}

// Uint16Bytes returns v as a two byte big-endian slice.
func Uint16Bytes(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}
