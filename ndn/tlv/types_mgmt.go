/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

// TLV types for NFD management.
const (
	// Command parameters
	ControlParameters             = 0x68
	FaceID                        = 0x69
	URI                           = 0x72
	LocalURI                      = 0x81
	LocalControlFeature           = 0x6E
	Origin                        = 0x6F
	Cost                          = 0x6A
	Capacity                      = 0x83
	Count                         = 0x84
	BaseCongestionMarkingInterval = 0x87
	DefaultCongestionThreshold    = 0x88
	MTU                           = 0x89
	Flags                         = 0x6C
	Mask                          = 0x70
	Strategy                      = 0x6B
	ExpirationPeriod              = 0x6D

	// Command responses
	ControlResponse = 0x65
	StatusCode      = 0x66
	StatusText      = 0x67
)
