/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"time"
)

// Encoder encodes TLV elements from back to front. NDN wire encoding nests
// length-prefixed elements, so encoders write the innermost values first and
// prepend each enclosing header once the length of its value is known.
type Encoder struct {
	output []byte
	length int
}

const defaultEncoderCapacity = 16

// NewEncoder creates an empty Encoder.
func NewEncoder() *Encoder {
	return NewEncoderSized(defaultEncoderCapacity)
}

// NewEncoderSized creates an empty Encoder with the specified initial capacity.
func NewEncoderSized(initialCapacity int) *Encoder {
	if initialCapacity < 1 {
		initialCapacity = defaultEncoderCapacity
	}
	return &Encoder{output: make([]byte, initialCapacity)}
}

// Len returns the number of bytes written so far. Callers use offsets relative
// to Len to recover absolute offsets (such as the signed portion of a Data
// packet) once encoding is complete.
func (e *Encoder) Len() int {
	return e.length
}

// Grow the backing buffer so that total bytes fit at the back, preserving
// already-written content at the back of the new buffer.
func (e *Encoder) ensureCapacityFromBack(total int) {
	if total <= len(e.output) {
		return
	}
	size := 2 * len(e.output)
	if size < total {
		size = total
	}
	newOutput := make([]byte, size)
	copy(newOutput[size-e.length:], e.output[len(e.output)-e.length:])
	e.output = newOutput
}

// WriteBytes writes a byte slice to the front of the output.
func (e *Encoder) WriteBytes(value []byte) {
	e.ensureCapacityFromBack(e.length + len(value))
	e.length += len(value)
	copy(e.output[len(e.output)-e.length:], value)
}

// WriteVarNum writes a TLV variable-length number to the front of the output.
func (e *Encoder) WriteVarNum(v uint64) {
	e.WriteBytes(EncodeVarNum(v))
}

// WriteTypeAndLength writes a TLV type and length to the front of the output.
// Because encoding proceeds backwards, this is called after the value it
// delimits has been written.
func (e *Encoder) WriteTypeAndLength(t uint32, length int) {
	e.WriteVarNum(uint64(length))
	e.WriteVarNum(uint64(t))
}

// WriteNNI writes a non-negative integer (without a TLV header) to the front
// of the output.
func (e *Encoder) WriteNNI(v uint64) {
	e.WriteBytes(EncodeNNI(v))
}

// WriteNNITlv writes a TLV element containing a non-negative integer to the
// front of the output.
func (e *Encoder) WriteNNITlv(t uint32, v uint64) {
	value := EncodeNNI(v)
	e.WriteBytes(value)
	e.WriteTypeAndLength(t, len(value))
}

// WriteOptionalNNITlv writes a TLV element containing a non-negative integer
// to the front of the output, unless the value is unset.
func (e *Encoder) WriteOptionalNNITlv(t uint32, v *uint64) {
	if v != nil {
		e.WriteNNITlv(t, *v)
	}
}

// WriteOptionalNNITlvFromDuration writes a TLV element containing a duration
// in milliseconds to the front of the output, unless the value is unset.
// Negative durations are treated as unset.
func (e *Encoder) WriteOptionalNNITlvFromDuration(t uint32, d *time.Duration) {
	if d != nil && *d >= 0 {
		e.WriteNNITlv(t, uint64(d.Milliseconds()))
	}
}

// WriteBlobTlv writes a TLV element containing the given value to the front of
// the output. A nil value produces a zero-length element.
func (e *Encoder) WriteBlobTlv(t uint32, value []byte) {
	e.WriteBytes(value)
	e.WriteTypeAndLength(t, len(value))
}

// WriteOptionalBlobTlv writes a TLV element containing the given value to the
// front of the output, unless the value is nil or empty.
func (e *Encoder) WriteOptionalBlobTlv(t uint32, value []byte) {
	if len(value) > 0 {
		e.WriteBlobTlv(t, value)
	}
}

// Output returns the encoded bytes. The returned slice aliases the encoder's
// internal buffer and remains valid until the next write.
func (e *Encoder) Output() []byte {
	return e.output[len(e.output)-e.length:]
}
