/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

// SignedBlob is a Blob of wire encoding carrying the offsets of its signed
// portion, the contiguous byte range a signature covers.
type SignedBlob struct {
	Blob
	signedPortionBeginOffset int
	signedPortionEndOffset   int
}

// NewSignedBlob creates a SignedBlob over the given encoding, copying it when
// copyValue is set.
func NewSignedBlob(value []byte, copyValue bool, signedPortionBeginOffset int, signedPortionEndOffset int) SignedBlob {
	return SignedBlob{
		Blob:                     NewBlob(value, copyValue),
		signedPortionBeginOffset: signedPortionBeginOffset,
		signedPortionEndOffset:   signedPortionEndOffset,
	}
}

// SignedPortionBeginOffset returns the offset of the first signed byte.
func (b SignedBlob) SignedPortionBeginOffset() int {
	return b.signedPortionBeginOffset
}

// SignedPortionEndOffset returns the offset one past the last signed byte.
func (b SignedBlob) SignedPortionEndOffset() int {
	return b.signedPortionEndOffset
}

// SignedPortion returns the signed byte range of the encoding. Callers must
// not modify the returned slice.
func (b SignedBlob) SignedPortion() []byte {
	if b.IsNull() {
		return nil
	}
	return b.value[b.signedPortionBeginOffset:b.signedPortionEndOffset]
}
