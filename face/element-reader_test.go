/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkedReader feeds its data at most chunkSize bytes per read.
type chunkedReader struct {
	data      []byte
	chunkSize int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.chunkSize
	if n > len(r.data) {
		n = len(r.data)
	}
	if n > len(p) {
		n = len(p)
	}
	n = copy(p[:n], r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func TestReadTlvStreamChunked(t *testing.T) {
	longValue := make([]byte, 300)
	for i := range longValue {
		longValue[i] = byte(i)
	}
	elements := [][]byte{
		{0x05, 0x03, 0x01, 0x02, 0x03},
		{0x06, 0x00},
		append([]byte{0x64, 0xfd, 0x01, 0x2c}, longValue...),
	}
	var stream []byte
	for _, element := range elements {
		stream = append(stream, element...)
	}

	// Elements must come out whole no matter where reads split them.
	for _, chunkSize := range []int{1, 7, len(stream)} {
		reader := &chunkedReader{data: append([]byte{}, stream...), chunkSize: chunkSize}
		var received [][]byte
		err := readTlvStream(reader, make([]byte, recvBlockSize), func(element []byte) {
			received = append(received, append([]byte{}, element...))
		})
		assert.Equal(t, io.EOF, err)
		require.Len(t, received, len(elements), "chunk size %d", chunkSize)
		for i, element := range elements {
			assert.Equal(t, element, received[i], "chunk size %d", chunkSize)
		}
	}
}

func TestReadTlvStreamDropsTrailingPartial(t *testing.T) {
	stream := []byte{0x05, 0x02, 0xca, 0xfe,
		0x05, 0x10, 0x01} // declares 16 bytes, stream ends after 1

	reader := &chunkedReader{data: stream, chunkSize: 4}
	var received [][]byte
	err := readTlvStream(reader, make([]byte, recvBlockSize), func(element []byte) {
		received = append(received, append([]byte{}, element...))
	})
	assert.Equal(t, io.EOF, err)
	require.Len(t, received, 1)
	assert.Equal(t, []byte{0x05, 0x02, 0xca, 0xfe}, received[0])
}

func TestReadTlvStreamRejectsOversizeElement(t *testing.T) {
	// Declares far more than the maximum packet size, so the reader must give
	// up once a maximum packet's worth of bytes has accumulated.
	stream := append([]byte{0x05, 0xfd, 0xff, 0xff}, make([]byte, 9000)...)

	reader := &chunkedReader{data: stream, chunkSize: 4096}
	err := readTlvStream(reader, make([]byte, recvBlockSize), func(element []byte) {
		t.Error("no element should be extracted")
	})
	assert.EqualError(t, err, "received too much data without valid TLV block")
}
