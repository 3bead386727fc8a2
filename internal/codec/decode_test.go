// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"io"
	"testing"

	"github.com/MKhiriev/bucket-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUint16(t *testing.T) {
	v, err := ReadUint16([]byte{0x00, 0x12, 0x34}, 1)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)

	_, err = ReadUint16([]byte{0x01}, 0)
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, err = ReadUint16([]byte{0x01, 0x02}, -1)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestPutUint16(t *testing.T) {
	buf := make([]byte, 3)
	require.NoError(t, PutUint16(buf, 1, 0xBEEF))
	assert.Equal(t, []byte{0x00, 0xBE, 0xEF}, buf)

	assert.ErrorIs(t, PutUint16(buf, 2, 1), ErrShortBuffer)
}

func TestDecodeStartHeader_Example(t *testing.T) {
	packet := []byte{0, 0x00, 0x05, 2, 7, 0, 9, 0, 7, 2, 0xAA, 0xBB}

	h, err := DecodeStartHeader(packet)
	require.NoError(t, err)

	assert.Equal(t, models.StatusMorePackets, h.Status)
	assert.Equal(t, uint16(5), h.NextVersion)
	assert.Equal(t, models.BucketList{{ID: 7}, {ID: 9}}, h.Buckets)
	assert.Equal(t, 8, h.ChunkOffset)

	chunks, err := DecodeChunks(packet, h.ChunkOffset)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, uint8(7), chunks[0].ID)
	assert.Equal(t, []byte{0xAA, 0xBB}, chunks[0].Payload)
}

func TestDecodeStartHeader_KeepsTransmittedOrderAndFlags(t *testing.T) {
	packet := []byte{1, 0x01, 0x00, 3, 9, 4, 1, 0, 5, 0xFF}

	h, err := DecodeStartHeader(packet)
	require.NoError(t, err)

	assert.Equal(t, uint16(256), h.NextVersion)
	assert.Equal(t, models.BucketList{{ID: 9, Flags: 4}, {ID: 1, Flags: 0}, {ID: 5, Flags: 0xFF}}, h.Buckets)
	assert.Equal(t, len(packet), h.ChunkOffset)
}

func TestDecodeStartHeader_UpToDateIgnoresRest(t *testing.T) {
	h, err := DecodeStartHeader([]byte{2})
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpToDate, h.Status)
	assert.Empty(t, h.Buckets)
}

func TestDecodeStartHeader_Errors(t *testing.T) {
	tests := []struct {
		name   string
		packet []byte
		want   error
	}{
		{name: "empty", packet: nil, want: ErrMalformedPacket},
		{name: "bad status", packet: []byte{3, 0, 1, 0}, want: ErrInvalidStatus},
		{name: "short header", packet: []byte{0, 0, 1}, want: ErrMalformedPacket},
		{name: "too many buckets", packet: append([]byte{0, 0, 1, 16}, make([]byte, 32)...), want: ErrTooManyBuckets},
		{name: "short bucket list", packet: []byte{0, 0, 1, 2, 7, 0, 9}, want: ErrMalformedPacket},
		{name: "duplicate id", packet: []byte{0, 0, 1, 2, 7, 0, 7, 1}, want: ErrDuplicateBucketID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStartHeader(tt.packet)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeStartHeader_FifteenBuckets(t *testing.T) {
	packet := []byte{0, 0, 1, models.MaxActiveBuckets}
	for i := 0; i < models.MaxActiveBuckets; i++ {
		packet = append(packet, uint8(i+1), uint8(i))
	}

	h, err := DecodeStartHeader(packet)
	require.NoError(t, err)
	require.Len(t, h.Buckets, models.MaxActiveBuckets)
	for i, b := range h.Buckets {
		assert.Equal(t, models.BucketMetadata{ID: uint8(i + 1), Flags: uint8(i)}, b)
	}
}

func TestDecodeContinuationStatus(t *testing.T) {
	s, err := DecodeContinuationStatus([]byte{1, 9, 1, 0x01})
	require.NoError(t, err)
	assert.Equal(t, models.StatusLastPacket, s)

	_, err = DecodeContinuationStatus([]byte{2})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = DecodeContinuationStatus(nil)
	assert.ErrorIs(t, err, ErrMalformedPacket)
}

func TestChunkReader(t *testing.T) {
	packet := []byte{0, 1, 2, 0x10, 0x11, 2, 0, 3, 1, 0x30}
	r := NewChunkReader(packet, ContinuationChunkOffset)

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, models.ChunkEntry{ID: 1, Payload: []byte{0x10, 0x11}}, first)

	second, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint8(2), second.ID)
	assert.Empty(t, second.Payload)

	third, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, models.ChunkEntry{ID: 3, Payload: []byte{0x30}}, third)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, len(packet), r.Offset())
}

func TestChunkReader_Truncated(t *testing.T) {
	chunks, err := DecodeChunks([]byte{0, 1, 1, 0xAA, 2, 5, 0xBB}, 1)
	assert.ErrorIs(t, err, ErrTruncatedChunk)
	require.Len(t, chunks, 1)
	assert.Equal(t, uint8(1), chunks[0].ID)

	_, err = DecodeChunks([]byte{0, 4}, 1)
	assert.ErrorIs(t, err, ErrTruncatedChunk)
}

func TestChunkReader_OffsetPastEnd(t *testing.T) {
	chunks, err := DecodeChunks([]byte{0}, 5)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
