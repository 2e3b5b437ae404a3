/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"bytes"
	"encoding/hex"
)

// Blob is an immutable byte sequence. A Blob either aliases caller storage or
// owns a private copy; callers must not modify bytes they handed to a Blob
// without copying. The zero Blob is null and distinct from an empty Blob.
type Blob struct {
	value   []byte
	present bool
}

// NewBlob creates a Blob over the given bytes, copying them when copyValue is
// set.
func NewBlob(value []byte, copyValue bool) Blob {
	if value == nil {
		return Blob{}
	}
	if copyValue {
		copied := make([]byte, len(value))
		copy(copied, value)
		value = copied
	}
	return Blob{value: value, present: true}
}

// BlobFromString creates a Blob holding the bytes of the given string.
func BlobFromString(value string) Blob {
	return Blob{value: []byte(value), present: true}
}

// IsNull returns whether the Blob carries no byte sequence at all. An empty
// Blob is not null.
func (b Blob) IsNull() bool {
	return !b.present
}

// Size returns the number of bytes in the Blob.
func (b Blob) Size() int {
	return len(b.value)
}

// Bytes returns the underlying bytes. Callers must not modify the returned
// slice.
func (b Blob) Bytes() []byte {
	return b.value
}

// Equals returns whether both Blobs hold the same byte content. Two null Blobs
// are equal; a null Blob never equals a non-null one.
func (b Blob) Equals(other Blob) bool {
	if b.present != other.present {
		return false
	}
	return bytes.Equal(b.value, other.value)
}

func (b Blob) String() string {
	return hex.EncodeToString(b.value)
}
