/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import "errors"

// TLV errors.
var (
	ErrBufferTooShort       = errors.New("TLV length exceeds buffer size")
	ErrInvalidNNI           = errors.New("invalid length for TLV non-negative integer")
	ErrMissingLength        = errors.New("missing TLV length")
	ErrNestedLength         = errors.New("TLV length does not equal the total length of nested TLVs")
	ErrReadPastEnd          = errors.New("read past the end of the input")
	ErrTypeOutOfRange       = errors.New("TLV type out of range")
	ErrUnexpected           = errors.New("unexpected TLV type")
	ErrUnrecognizedCritical = errors.New("unrecognized critical TLV type")
)
