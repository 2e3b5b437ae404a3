/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv_test

import (
	"testing"
	"time"

	"github.com/named-data/GoNDN2/ndn/tlv"
	"github.com/stretchr/testify/assert"
)

func TestEncoderWritesBackward(t *testing.T) {
	encoder := tlv.NewEncoder()
	assert.Equal(t, 0, encoder.Len())

	// Innermost value first, then its header
	encoder.WriteBytes([]byte{0x01, 0x02, 0x03, 0x04})
	assert.Equal(t, 4, encoder.Len())
	encoder.WriteTypeAndLength(0x28, 4)
	assert.Equal(t, 6, encoder.Len())
	assert.Equal(t, []byte{0x28, 0x04, 0x01, 0x02, 0x03, 0x04}, encoder.Output())

	// Enclose in an outer element
	encoder.WriteTypeAndLength(0x77, encoder.Len())
	assert.Equal(t, []byte{0x77, 0x06, 0x28, 0x04, 0x01, 0x02, 0x03, 0x04}, encoder.Output())
}

func TestEncoderGrowth(t *testing.T) {
	encoder := tlv.NewEncoderSized(4)

	// Exceed the initial capacity several times over
	for i := 0; i < 100; i++ {
		encoder.WriteBytes([]byte{byte(i)})
	}
	assert.Equal(t, 100, encoder.Len())
	output := encoder.Output()
	assert.Equal(t, 100, len(output))
	assert.Equal(t, byte(99), output[0])
	assert.Equal(t, byte(0), output[99])
}

func TestEncoderVarNum(t *testing.T) {
	encoder := tlv.NewEncoder()
	encoder.WriteVarNum(0x320)
	assert.Equal(t, []byte{0xFD, 0x03, 0x20}, encoder.Output())

	encoder = tlv.NewEncoder()
	encoder.WriteTypeAndLength(0x320, 300)
	assert.Equal(t, []byte{0xFD, 0x03, 0x20, 0xFD, 0x01, 0x2C}, encoder.Output())
}

func TestEncoderNNITlv(t *testing.T) {
	encoder := tlv.NewEncoder()
	encoder.WriteNNITlv(0x0C, 4000)
	assert.Equal(t, []byte{0x0C, 0x02, 0x0F, 0xA0}, encoder.Output())

	encoder = tlv.NewEncoder()
	encoder.WriteNNITlv(0x18, 0)
	assert.Equal(t, []byte{0x18, 0x01, 0x00}, encoder.Output())

	// Unset optional values are skipped
	encoder = tlv.NewEncoder()
	encoder.WriteOptionalNNITlv(0x0C, nil)
	assert.Equal(t, 0, encoder.Len())
	value := uint64(256)
	encoder.WriteOptionalNNITlv(0x0C, &value)
	assert.Equal(t, []byte{0x0C, 0x02, 0x01, 0x00}, encoder.Output())
}

func TestEncoderDuration(t *testing.T) {
	encoder := tlv.NewEncoder()
	lifetime := 4 * time.Second
	encoder.WriteOptionalNNITlvFromDuration(0x0C, &lifetime)
	assert.Equal(t, []byte{0x0C, 0x02, 0x0F, 0xA0}, encoder.Output())

	encoder = tlv.NewEncoder()
	encoder.WriteOptionalNNITlvFromDuration(0x0C, nil)
	assert.Equal(t, 0, encoder.Len())

	negative := -1 * time.Second
	encoder.WriteOptionalNNITlvFromDuration(0x0C, &negative)
	assert.Equal(t, 0, encoder.Len())
}

func TestEncoderBlobTlv(t *testing.T) {
	encoder := tlv.NewEncoder()
	encoder.WriteBlobTlv(0x15, []byte{0xCA, 0xFE})
	assert.Equal(t, []byte{0x15, 0x02, 0xCA, 0xFE}, encoder.Output())

	// Nil produces a zero-length element
	encoder = tlv.NewEncoder()
	encoder.WriteBlobTlv(0x15, nil)
	assert.Equal(t, []byte{0x15, 0x00}, encoder.Output())

	// Optional blobs are skipped when nil or empty
	encoder = tlv.NewEncoder()
	encoder.WriteOptionalBlobTlv(0x15, nil)
	encoder.WriteOptionalBlobTlv(0x15, []byte{})
	assert.Equal(t, 0, encoder.Len())
	encoder.WriteOptionalBlobTlv(0x15, []byte{0x01})
	assert.Equal(t, []byte{0x15, 0x01, 0x01}, encoder.Output())
}
