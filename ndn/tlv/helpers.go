/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"encoding/binary"
	"math"
)

// EncodeVarNum encodes a value as a TLV variable-length number.
func EncodeVarNum(in uint64) []byte {
	if in <= 0xFC {
		// This is just here to avoid having to write this condition in every other conditional.
		return []byte{byte(in)}
	} else if in <= 0xFFFF {
		bytes := make([]byte, 3)
		bytes[0] = 0xFD
		binary.BigEndian.PutUint16(bytes[1:], uint16(in))
		return bytes
	} else if in <= 0xFFFFFFFF {
		bytes := make([]byte, 5)
		bytes[0] = 0xFE
		binary.BigEndian.PutUint32(bytes[1:], uint32(in))
		return bytes
	} else {
		bytes := make([]byte, 9)
		bytes[0] = 0xFF
		binary.BigEndian.PutUint64(bytes[1:], in)
		return bytes
	}
}

// DecodeVarNum decodes a TLV variable-length number from a wire value.
func DecodeVarNum(in []byte) (uint64, int, error) {
	if len(in) < 1 {
		return 0, 0, ErrReadPastEnd
	}

	if in[0] <= 0xFC {
		return uint64(in[0]), 1, nil
	} else if in[0] == 0xFD {
		if len(in) < 3 {
			return 0, 0, ErrReadPastEnd
		}
		return uint64(binary.BigEndian.Uint16(in[1:3])), 3, nil
	} else if in[0] == 0xFE {
		if len(in) < 5 {
			return 0, 0, ErrReadPastEnd
		}
		return uint64(binary.BigEndian.Uint32(in[1:5])), 5, nil
	} else { // Must be 0xFF
		if len(in) < 9 {
			return 0, 0, ErrReadPastEnd
		}
		return binary.BigEndian.Uint64(in[1:9]), 9, nil
	}
}

// EncodeNNI encodes a non-negative integer value into a TLV value slice.
func EncodeNNI(v uint64) []byte {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, v)

	if v <= math.MaxUint8 {
		return value[7:]
	} else if v <= math.MaxUint16 {
		return value[6:]
	} else if v <= math.MaxUint32 {
		return value[4:]
	}
	return value
}

// DecodeNNI decodes a non-negative integer value from a TLV value slice.
// NDN only permits non-negative integers of 1, 2, 4, or 8 octets.
func DecodeNNI(value []byte) (uint64, error) {
	switch len(value) {
	case 1:
		return uint64(value[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(value)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(value)), nil
	case 8:
		return binary.BigEndian.Uint64(value), nil
	}
	return 0, ErrInvalidNNI
}

// DecodeTypeLength decodes the TLV type, TLV length, and total size of the element at the
// front of a byte slice. It does not require the whole element to be present.
func DecodeTypeLength(bytes []byte) (uint32, int, int, error) {
	var tlvType uint64
	var tlvLength uint64

	tlvType, tlvTypeSize, err := DecodeVarNum(bytes)
	if err != nil {
		return 0, 0, 0, err
	} else if tlvType > math.MaxUint32 {
		return 0, 0, 0, ErrTypeOutOfRange
	}

	tlvLength, tlvLengthSize, err := DecodeVarNum(bytes[tlvTypeSize:])
	if err != nil {
		return 0, 0, 0, ErrMissingLength
	}

	return uint32(tlvType), int(tlvLength), tlvTypeSize + tlvLengthSize + int(tlvLength), nil
}
