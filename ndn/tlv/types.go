/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

// TLV types for NDN.
const (
	// Packet types
	Interest = 0x05
	Data     = 0x06

	// Name and components
	Name                            = 0x07
	ImplicitSha256DigestComponent   = 0x01
	ParametersSha256DigestComponent = 0x02
	GenericNameComponent            = 0x08
	KeywordNameComponent            = 0x20
	SegmentNameComponent            = 0x21
	ByteOffsetNameComponent         = 0x22
	VersionNameComponent            = 0x23
	TimestampNameComponent          = 0x24
	SequenceNumNameComponent        = 0x25

	// Interest packets (shared between v0.2 and v0.3)
	Nonce            = 0x0a
	InterestLifetime = 0x0c
	ForwardingHint   = 0x1e

	// Interest packets (v0.2 selectors)
	Selectors                 = 0x09
	MinSuffixComponents       = 0x0d
	MaxSuffixComponents       = 0x0e
	PublisherPublicKeyLocator = 0x0f
	Exclude                   = 0x10
	ChildSelector             = 0x11
	MustBeFresh               = 0x12
	Any                       = 0x13
	SelectedDelegation        = 0x20

	// Interest packets (v0.3)
	CanBePrefix           = 0x21
	HopLimit              = 0x22
	ApplicationParameters = 0x24

	// Data packets
	MetaInfo       = 0x14
	Content        = 0x15
	SignatureInfo  = 0x16
	SignatureValue = 0x17

	// Data/MetaInfo
	ContentType     = 0x18
	FreshnessPeriod = 0x19
	FinalBlockID    = 0x1a

	// Signature
	SignatureType  = 0x1b
	KeyLocator     = 0x1c
	KeyDigest      = 0x1d
	ValidityPeriod = 0xfd
	NotBefore      = 0xfe
	NotAfter       = 0xff

	// Link Object
	Delegation = 0x1f
	Preference = 0x1e
)

// IsCritical returns whether a TLV type is critical.
func IsCritical(tlvType uint32) bool {
	if tlvType < 0x20 {
		return true
	}
	return tlvType&0x1 == 1
}
