/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"math"
	"time"
)

// Decoder decodes TLV elements from a wire buffer, advancing an internal
// offset. Returned blob values alias the input buffer.
type Decoder struct {
	input  []byte
	offset int
}

// NewDecoder creates a Decoder over the given input.
func NewDecoder(input []byte) *Decoder {
	return &Decoder{input: input}
}

// Offset returns the current read offset.
func (d *Decoder) Offset() int {
	return d.offset
}

// Seek sets the read offset.
func (d *Decoder) Seek(offset int) {
	d.offset = offset
}

// Slice returns the input bytes between the two absolute offsets. The returned
// slice aliases the input buffer.
func (d *Decoder) Slice(beginOffset int, endOffset int) []byte {
	return d.input[beginOffset:endOffset]
}

// ReadVarNum reads a TLV variable-length number at the current offset.
func (d *Decoder) ReadVarNum() (uint64, error) {
	v, size, err := DecodeVarNum(d.input[d.offset:])
	if err != nil {
		return 0, err
	}
	d.offset += size
	return v, nil
}

// ReadTypeAndLength reads a TLV type and length at the current offset,
// returning the length. It is an error if the type differs from expectedType
// or if the length exceeds the remaining input.
func (d *Decoder) ReadTypeAndLength(expectedType uint32) (int, error) {
	t, err := d.ReadVarNum()
	if err != nil {
		return 0, err
	}
	if t > math.MaxUint32 {
		return 0, ErrTypeOutOfRange
	}
	if uint32(t) != expectedType {
		return 0, ErrUnexpected
	}

	length, err := d.ReadVarNum()
	if err != nil {
		return 0, err
	}
	if d.offset+int(length) > len(d.input) {
		return 0, ErrBufferTooShort
	}
	return int(length), nil
}

// ReadNestedTlvsStart reads a TLV type and length at the current offset and
// returns the absolute offset of the end of the element's value. Nested
// elements are then read until the end offset is reached, after which the
// caller must call FinishNestedTlvs.
func (d *Decoder) ReadNestedTlvsStart(expectedType uint32) (int, error) {
	length, err := d.ReadTypeAndLength(expectedType)
	if err != nil {
		return 0, err
	}
	return d.offset + length, nil
}

func (d *Decoder) finishNestedTlvs(endOffset int, skipCritical bool) error {
	// We expect the offset to be endOffset, so check this first.
	if d.offset == endOffset {
		return nil
	}

	// Skip remaining TLVs.
	for d.offset < endOffset {
		t, err := d.ReadVarNum()
		if err != nil {
			return err
		}
		if !skipCritical && (t > math.MaxUint32 || IsCritical(uint32(t))) {
			return ErrUnrecognizedCritical
		}

		length, err := d.ReadVarNum()
		if err != nil {
			return err
		}
		d.offset += int(length)
		if d.offset > len(d.input) {
			return ErrBufferTooShort
		}
	}

	if d.offset != endOffset {
		return ErrNestedLength
	}
	return nil
}

// FinishNestedTlvs skips any remaining unrecognized elements before the given
// end offset, rejecting critical ones.
func (d *Decoder) FinishNestedTlvs(endOffset int) error {
	return d.finishNestedTlvs(endOffset, false)
}

// FinishNestedTlvsSkippingCritical skips any remaining elements before the
// given end offset, including critical ones.
func (d *Decoder) FinishNestedTlvsSkippingCritical(endOffset int) error {
	return d.finishNestedTlvs(endOffset, true)
}

// PeekType returns whether the element at the current offset has the given
// type, without advancing the offset. It returns false if the offset is at or
// past endOffset.
func (d *Decoder) PeekType(expectedType uint32, endOffset int) bool {
	if d.offset >= endOffset {
		return false
	}
	saveOffset := d.offset
	t, err := d.ReadVarNum()
	d.offset = saveOffset
	return err == nil && t == uint64(expectedType)
}

// ReadNNI reads a non-negative integer of the given length at the current
// offset. NDN only permits non-negative integers of 1, 2, 4, or 8 octets.
func (d *Decoder) ReadNNI(length int) (uint64, error) {
	if d.offset+length > len(d.input) {
		return 0, ErrBufferTooShort
	}
	v, err := DecodeNNI(d.input[d.offset : d.offset+length])
	if err != nil {
		return 0, err
	}
	d.offset += length
	return v, nil
}

// ReadNNITlv reads a TLV element containing a non-negative integer at the
// current offset.
func (d *Decoder) ReadNNITlv(expectedType uint32) (uint64, error) {
	length, err := d.ReadTypeAndLength(expectedType)
	if err != nil {
		return 0, err
	}
	return d.ReadNNI(length)
}

// ReadOptionalNNITlv reads a TLV element containing a non-negative integer at
// the current offset if one of the given type is present before endOffset,
// returning nil otherwise.
func (d *Decoder) ReadOptionalNNITlv(expectedType uint32, endOffset int) (*uint64, error) {
	if !d.PeekType(expectedType, endOffset) {
		return nil, nil
	}
	v, err := d.ReadNNITlv(expectedType)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ReadOptionalNNITlvAsDuration reads a TLV element containing a duration in
// milliseconds at the current offset if one of the given type is present
// before endOffset, returning nil otherwise.
func (d *Decoder) ReadOptionalNNITlvAsDuration(expectedType uint32, endOffset int) (*time.Duration, error) {
	v, err := d.ReadOptionalNNITlv(expectedType, endOffset)
	if v == nil || err != nil {
		return nil, err
	}
	duration := time.Duration(*v) * time.Millisecond
	return &duration, nil
}

// ReadBlobTlv reads a TLV element at the current offset and returns its value.
// The returned slice aliases the input buffer.
func (d *Decoder) ReadBlobTlv(expectedType uint32) ([]byte, error) {
	length, err := d.ReadTypeAndLength(expectedType)
	if err != nil {
		return nil, err
	}
	value := d.input[d.offset : d.offset+length]
	d.offset += length
	return value, nil
}

// ReadOptionalBlobTlv reads a TLV element at the current offset if one of the
// given type is present before endOffset, returning nil otherwise.
func (d *Decoder) ReadOptionalBlobTlv(expectedType uint32, endOffset int) ([]byte, error) {
	if !d.PeekType(expectedType, endOffset) {
		return nil, nil
	}
	return d.ReadBlobTlv(expectedType)
}

// ReadBooleanTlv reads a boolean element at the current offset, returning
// whether an element of the given type is present before endOffset. Any value
// the element carries is skipped.
func (d *Decoder) ReadBooleanTlv(expectedType uint32, endOffset int) (bool, error) {
	if !d.PeekType(expectedType, endOffset) {
		return false, nil
	}
	length, err := d.ReadTypeAndLength(expectedType)
	if err != nil {
		return false, err
	}
	d.offset += length
	return true, nil
}
