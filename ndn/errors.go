/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import "errors"

// Error categories surfaced by the packet model and codec. Call sites wrap
// these with context via github.com/pkg/errors; callers discriminate with
// errors.Is.
var (
	// ErrDecoding indicates a malformed or truncated wire encoding.
	ErrDecoding = errors.New("decoding error")
	// ErrProtocol indicates a structurally inconsistent field combination
	// rejected at encode time.
	ErrProtocol = errors.New("protocol violation")
	// ErrSizeLimit indicates an encoded packet exceeding the maximum packet size.
	ErrSizeLimit = errors.New("packet exceeds maximum size")
	// ErrConfiguration indicates a missing signing identity or other
	// incomplete configuration.
	ErrConfiguration = errors.New("configuration incomplete")

	ErrNonExistent = errors.New("required value does not exist")
	ErrOutOfRange  = errors.New("value outside of allowed range")
)
