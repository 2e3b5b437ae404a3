/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import "github.com/named-data/GoNDN2/ndn/lpv2"

// WireFormat encodes and decodes packets in a particular wire format. Packet
// operations that accept a WireFormat treat nil as DefaultWireFormat. Encoded
// packet offsets are returned alongside the encoding so that callers can
// locate the signed portion without re-parsing.
type WireFormat interface {
	// EncodeName encodes the name, returning the encoding and the begin and
	// end offsets of the portion of the name covered by a Data packet
	// signature, which ends at the start of the final component.
	EncodeName(name *Name) ([]byte, int, int, error)
	// DecodeName decodes input into the name, returning the begin and end
	// offsets of the signed portion.
	DecodeName(name *Name, input []byte) (int, int, error)

	// EncodeInterest encodes the Interest, returning the encoding and the
	// begin and end offsets of the signed portion of the name.
	EncodeInterest(interest *Interest) ([]byte, int, int, error)
	// DecodeInterest decodes input into the Interest, replacing all fields,
	// and returns the begin and end offsets of the signed portion of the name.
	DecodeInterest(interest *Interest, input []byte) (int, int, error)

	// EncodeData encodes the Data packet, returning the encoding and the
	// begin and end offsets of the signed portion.
	EncodeData(data *Data) ([]byte, int, int, error)
	// DecodeData decodes input into the Data packet, replacing all fields,
	// and returns the begin and end offsets of the signed portion.
	DecodeData(data *Data, input []byte) (int, int, error)

	// EncodeControlParameters encodes the control parameters.
	EncodeControlParameters(controlParameters *ControlParameters) ([]byte, error)
	// DecodeControlParameters decodes input into the control parameters,
	// replacing all fields.
	DecodeControlParameters(controlParameters *ControlParameters, input []byte) error

	// EncodeControlResponse encodes the control response.
	EncodeControlResponse(controlResponse *ControlResponse) ([]byte, error)
	// DecodeControlResponse decodes input into the control response,
	// replacing all fields.
	DecodeControlResponse(controlResponse *ControlResponse, input []byte) error

	// EncodeSignatureInfo encodes the SignatureInfo of the signature as a
	// standalone TLV, the form carried in a signed Interest name component.
	EncodeSignatureInfo(signature *Signature) ([]byte, error)
	// EncodeSignatureValue encodes the value bits of the signature as a
	// standalone SignatureValue TLV.
	EncodeSignatureValue(signature *Signature) ([]byte, error)

	// EncodeDelegationSet encodes the delegation set as a sequence of
	// Delegation TLVs with no enclosing element.
	EncodeDelegationSet(delegationSet *DelegationSet) ([]byte, error)
	// DecodeDelegationSet decodes input as a sequence of Delegation TLVs,
	// preserving their order in the delegation set.
	DecodeDelegationSet(delegationSet *DelegationSet, input []byte) error

	// EncodeLpPacket encodes the NDNLPv2 packet.
	EncodeLpPacket(packet *lpv2.Packet) ([]byte, error)
	// DecodeLpPacket decodes input into the NDNLPv2 packet, replacing all
	// fields.
	DecodeLpPacket(packet *lpv2.Packet, input []byte) error
}

// DefaultWireFormat is the wire format selected by packet operations when the
// caller does not specify one. It is fixed at initialization; code needing a
// different format passes it explicitly.
var DefaultWireFormat WireFormat = NewTlvWireFormat()
