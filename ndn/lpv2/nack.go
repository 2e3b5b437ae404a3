/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package lpv2

import "strconv"

// NackReason indicates the reason a network Nack was sent.
type NackReason int

// Network Nack reasons. The numeric values of the named reasons match their
// encoded NackReason codes.
const (
	NackReasonNone       NackReason = 0
	NackReasonCongestion NackReason = 50
	NackReasonDuplicate  NackReason = 100
	NackReasonNoRoute    NackReason = 150
	NackReasonOtherCode  NackReason = 0x7fff
)

// NetworkNack represents a Nack header carried in an NDNLPv2 packet.
type NetworkNack struct {
	reason          NackReason
	otherReasonCode uint64
}

// NewNetworkNack creates a NetworkNack with reason NackReasonNone.
func NewNetworkNack() *NetworkNack {
	return &NetworkNack{reason: NackReasonNone}
}

// Reason returns the reason of the Nack.
func (n *NetworkNack) Reason() NackReason {
	return n.reason
}

// SetReason sets the reason of the Nack. To set a code not represented by a
// named reason, use SetOtherReasonCode instead.
func (n *NetworkNack) SetReason(reason NackReason) {
	n.reason = reason
	if reason != NackReasonOtherCode {
		n.otherReasonCode = 0
	}
}

// OtherReasonCode returns the reason code when Reason is NackReasonOtherCode.
func (n *NetworkNack) OtherReasonCode() uint64 {
	return n.otherReasonCode
}

// SetOtherReasonCode sets an unrecognized reason code and changes the reason
// to NackReasonOtherCode.
func (n *NetworkNack) SetOtherReasonCode(code uint64) {
	n.reason = NackReasonOtherCode
	n.otherReasonCode = code
}

func (n *NetworkNack) String() string {
	switch n.reason {
	case NackReasonNone:
		return "None"
	case NackReasonCongestion:
		return "Congestion"
	case NackReasonDuplicate:
		return "Duplicate"
	case NackReasonNoRoute:
		return "NoRoute"
	case NackReasonOtherCode:
		return "OtherCode(" + strconv.FormatUint(n.otherReasonCode, 10) + ")"
	}
	return "Unrecognized(" + strconv.Itoa(int(n.reason)) + ")"
}
