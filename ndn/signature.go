/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2024 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import "strconv"

// SignatureType represents the type of a signature.
type SignatureType uint64

// The various possible values of SignatureType.
const (
	DigestSha256Type             SignatureType = 0
	SignatureSha256WithRsaType   SignatureType = 1
	SignatureSha256WithEcdsaType SignatureType = 3
	SignatureHmacWithSha256Type  SignatureType = 4
)

// GenericSignatureType marks a signature of a kind this library does not
// model. The SignatureInfo TLV is carried verbatim and its actual type code
// is available from TypeCode. This value never appears on the wire.
const GenericSignatureType SignatureType = 0xFFFFFFFF

// Signature holds the signature of a Data packet as a tagged variant: one of
// the modeled signature types, or a generic signature preserving unrecognized
// SignatureInfo bytes for re-encoding.
type Signature struct {
	typ            SignatureType
	keyLocator     KeyLocator
	validityPeriod ValidityPeriod
	value          []byte

	// Generic variant only
	signatureInfoEncoding []byte
	typeCode              uint64

	changeCount               uint64
	keyLocatorChangeCount     uint64
	validityPeriodChangeCount uint64
}

// Type returns the type of the signature.
func (s *Signature) Type() SignatureType {
	return s.typ
}

// SetType sets the type of the signature. Selecting a modeled type discards
// any generic SignatureInfo encoding.
func (s *Signature) SetType(typ SignatureType) {
	s.typ = typ
	if typ != GenericSignatureType {
		s.signatureInfoEncoding = nil
		s.typeCode = 0
	}
	s.changeCount++
}

// KeyLocator returns the key locator of the signature. Mutating it through
// the returned pointer is observed by the change count.
func (s *Signature) KeyLocator() *KeyLocator {
	return &s.keyLocator
}

// ValidityPeriod returns the validity period of the signature. Mutating it
// through the returned pointer is observed by the change count.
func (s *Signature) ValidityPeriod() *ValidityPeriod {
	return &s.validityPeriod
}

// Value returns a copy of the signature value (the bits of the signature).
func (s *Signature) Value() []byte {
	value := make([]byte, len(s.value))
	copy(value, s.value)
	return value
}

// SetValue sets the signature value.
func (s *Signature) SetValue(value []byte) {
	s.value = make([]byte, len(value))
	copy(s.value, value)
	s.changeCount++
}

// SignatureInfoEncoding returns a copy of the verbatim SignatureInfo bytes of
// a generic signature, or nil for modeled types.
func (s *Signature) SignatureInfoEncoding() []byte {
	if s.signatureInfoEncoding == nil {
		return nil
	}
	encoding := make([]byte, len(s.signatureInfoEncoding))
	copy(encoding, s.signatureInfoEncoding)
	return encoding
}

// TypeCode returns the wire type code of a generic signature, or 0 for
// modeled types.
func (s *Signature) TypeCode() uint64 {
	return s.typeCode
}

// SetSignatureInfoEncoding sets the signature to the generic variant carrying
// the given SignatureInfo TLV verbatim, with its decoded type code.
func (s *Signature) SetSignatureInfoEncoding(encoding []byte, typeCode uint64) {
	s.typ = GenericSignatureType
	s.signatureInfoEncoding = make([]byte, len(encoding))
	copy(s.signatureInfoEncoding, encoding)
	s.typeCode = typeCode
	s.changeCount++
}

func (s *Signature) String() string {
	switch s.typ {
	case DigestSha256Type:
		return "DigestSha256"
	case SignatureSha256WithRsaType:
		return "SignatureSha256WithRsa"
	case SignatureSha256WithEcdsaType:
		return "SignatureSha256WithEcdsa"
	case SignatureHmacWithSha256Type:
		return "SignatureHmacWithSha256"
	case GenericSignatureType:
		return "GenericSignature(" + strconv.FormatUint(s.typeCode, 10) + ")"
	}
	return "UnknownSignature(" + strconv.FormatUint(uint64(s.typ), 10) + ")"
}

// ChangeCount returns the number of times the signature or its nested fields
// have been mutated.
func (s *Signature) ChangeCount() uint64 {
	if s.keyLocatorChangeCount != s.keyLocator.ChangeCount() ||
		s.validityPeriodChangeCount != s.validityPeriod.ChangeCount() {
		s.keyLocatorChangeCount = s.keyLocator.ChangeCount()
		s.validityPeriodChangeCount = s.validityPeriod.ChangeCount()
		s.changeCount++
	}
	return s.changeCount
}
