/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package lpv2

// TLV types for NDNLPv2.
const (
	Fragment       = 0x50
	Sequence       = 0x51
	FragIndex      = 0x52
	FragCount      = 0x53
	PitToken       = 0x62
	LpPacket       = 0x64
	Nack           = 0x0320
	NackReasonType = 0x0321
	NextHopFaceID  = 0x0330
	IncomingFaceID = 0x0331
	CongestionMark = 0x0340
)

// Bounds of the NDNLPv2 reserved header type range in which unrecognized
// fields may be ignorable.
const (
	ignoreMin = 800
	ignoreMax = 959
)

// IsCritical returns whether an unrecognized NDNLPv2 header of the given TLV
// type must abort decoding. A header is ignorable only when its type lies in
// the reserved range and has its two low bits clear.
func IsCritical(tlvType uint32) bool {
	if tlvType >= ignoreMin && tlvType <= ignoreMax {
		return tlvType&0x03 != 0
	}
	return true
}
