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

func TestDecoderReadTypeAndLength(t *testing.T) {
	decoder := tlv.NewDecoder([]byte{0x28, 0x04, 0x01, 0x02, 0x03, 0x04})
	length, err := decoder.ReadTypeAndLength(0x28)
	assert.NoError(t, err)
	assert.Equal(t, 4, length)
	assert.Equal(t, 2, decoder.Offset())

	// Wrong type
	decoder = tlv.NewDecoder([]byte{0x28, 0x04, 0x01, 0x02, 0x03, 0x04})
	_, err = decoder.ReadTypeAndLength(0x29)
	assert.ErrorIs(t, err, tlv.ErrUnexpected)

	// Declared length exceeds the buffer
	decoder = tlv.NewDecoder([]byte{0x28, 0x04, 0x01, 0x02})
	_, err = decoder.ReadTypeAndLength(0x28)
	assert.ErrorIs(t, err, tlv.ErrBufferTooShort)
}

func TestDecoderNested(t *testing.T) {
	wire := []byte{0x77, 0x06, 0x28, 0x04, 0x01, 0x02, 0x03, 0x04}
	decoder := tlv.NewDecoder(wire)
	endOffset, err := decoder.ReadNestedTlvsStart(0x77)
	assert.NoError(t, err)
	assert.Equal(t, 8, endOffset)

	value, err := decoder.ReadBlobTlv(0x28)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, value)
	assert.NoError(t, decoder.FinishNestedTlvs(endOffset))
	assert.Equal(t, 8, decoder.Offset())
}

func TestDecoderFinishSkipsNonCritical(t *testing.T) {
	// 0x84 is non-critical and unrecognized; it is skipped
	wire := []byte{0x77, 0x07, 0x28, 0x01, 0x01, 0x84, 0x02, 0xAA, 0xBB}
	decoder := tlv.NewDecoder(wire)
	endOffset, err := decoder.ReadNestedTlvsStart(0x77)
	assert.NoError(t, err)
	_, err = decoder.ReadBlobTlv(0x28)
	assert.NoError(t, err)
	assert.NoError(t, decoder.FinishNestedTlvs(endOffset))

	// 0x85 is critical and unrecognized; it is rejected
	wire = []byte{0x77, 0x07, 0x28, 0x01, 0x01, 0x85, 0x02, 0xAA, 0xBB}
	decoder = tlv.NewDecoder(wire)
	endOffset, err = decoder.ReadNestedTlvsStart(0x77)
	assert.NoError(t, err)
	_, err = decoder.ReadBlobTlv(0x28)
	assert.NoError(t, err)
	assert.ErrorIs(t, decoder.FinishNestedTlvs(endOffset), tlv.ErrUnrecognizedCritical)

	// Critical elements are skipped when explicitly requested
	decoder = tlv.NewDecoder(wire)
	endOffset, err = decoder.ReadNestedTlvsStart(0x77)
	assert.NoError(t, err)
	_, err = decoder.ReadBlobTlv(0x28)
	assert.NoError(t, err)
	assert.NoError(t, decoder.FinishNestedTlvsSkippingCritical(endOffset))
}

func TestDecoderPeekType(t *testing.T) {
	wire := []byte{0x28, 0x01, 0x01, 0x29, 0x01, 0x02}
	decoder := tlv.NewDecoder(wire)
	assert.True(t, decoder.PeekType(0x28, len(wire)))
	assert.False(t, decoder.PeekType(0x29, len(wire)))
	assert.Equal(t, 0, decoder.Offset())

	_, err := decoder.ReadBlobTlv(0x28)
	assert.NoError(t, err)
	assert.True(t, decoder.PeekType(0x29, len(wire)))

	// Peeking never looks past the end offset
	assert.False(t, decoder.PeekType(0x29, decoder.Offset()))
}

func TestDecoderNNITlv(t *testing.T) {
	decoder := tlv.NewDecoder([]byte{0x0C, 0x02, 0x0F, 0xA0})
	v, err := decoder.ReadNNITlv(0x0C)
	assert.NoError(t, err)
	assert.Equal(t, uint64(4000), v)

	// Optional integer absent
	decoder = tlv.NewDecoder([]byte{0x18, 0x01, 0x00})
	opt, err := decoder.ReadOptionalNNITlv(0x0C, 3)
	assert.NoError(t, err)
	assert.Nil(t, opt)

	// Optional integer present
	opt, err = decoder.ReadOptionalNNITlv(0x18, 3)
	assert.NoError(t, err)
	assert.NotNil(t, opt)
	assert.Equal(t, uint64(0), *opt)

	// Invalid integer length
	decoder = tlv.NewDecoder([]byte{0x0C, 0x03, 0x01, 0x02, 0x03})
	_, err = decoder.ReadNNITlv(0x0C)
	assert.ErrorIs(t, err, tlv.ErrInvalidNNI)
}

func TestDecoderDuration(t *testing.T) {
	decoder := tlv.NewDecoder([]byte{0x0C, 0x02, 0x0F, 0xA0})
	d, err := decoder.ReadOptionalNNITlvAsDuration(0x0C, 4)
	assert.NoError(t, err)
	assert.NotNil(t, d)
	assert.Equal(t, 4*time.Second, *d)

	decoder = tlv.NewDecoder([]byte{0x15, 0x00})
	d, err = decoder.ReadOptionalNNITlvAsDuration(0x0C, 2)
	assert.NoError(t, err)
	assert.Nil(t, d)
}

func TestDecoderBooleanTlv(t *testing.T) {
	wire := []byte{0x12, 0x00, 0x15, 0x01, 0xFF}
	decoder := tlv.NewDecoder(wire)
	present, err := decoder.ReadBooleanTlv(0x12, len(wire))
	assert.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 2, decoder.Offset())

	present, err = decoder.ReadBooleanTlv(0x12, len(wire))
	assert.NoError(t, err)
	assert.False(t, present)

	// A boolean element with a value has the value skipped
	present, err = decoder.ReadBooleanTlv(0x15, len(wire))
	assert.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, len(wire), decoder.Offset())
}

func TestDecoderSliceAndSeek(t *testing.T) {
	wire := []byte{0x06, 0x04, 0x07, 0x02, 0x08, 0x00}
	decoder := tlv.NewDecoder(wire)
	endOffset, err := decoder.ReadNestedTlvsStart(0x06)
	assert.NoError(t, err)

	beginOffset := decoder.Offset()
	_, err = decoder.ReadBlobTlv(0x07)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x07, 0x02, 0x08, 0x00}, decoder.Slice(beginOffset, decoder.Offset()))

	// Seek back and read the same element again
	decoder.Seek(beginOffset)
	value, err := decoder.ReadBlobTlv(0x07)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x00}, value)
	assert.NoError(t, decoder.FinishNestedTlvs(endOffset))
}

func TestDecoderNestedLengthMismatch(t *testing.T) {
	// Inner element runs past the end of the outer element
	wire := []byte{0x77, 0x03, 0x84, 0x03, 0x01, 0x02, 0x03}
	decoder := tlv.NewDecoder(wire)
	endOffset, err := decoder.ReadNestedTlvsStart(0x77)
	assert.NoError(t, err)
	assert.ErrorIs(t, decoder.FinishNestedTlvs(endOffset), tlv.ErrNestedLength)
}
