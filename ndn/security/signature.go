/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package security

import (
	"github.com/named-data/GoNDN2/ndn"
	"github.com/pkg/errors"
)

// Signer computes and checks signature bits over a signed portion. Key-backed
// signature types (RSA, ECDSA, HMAC) are supplied by external keychains; the
// library itself ships only DigestSha256.
type Signer interface {
	Sign(buffer []byte) ([]byte, error)
	Validate(buffer []byte, signature []byte) bool
}

// ForType returns the built-in signer for the signature type.
func ForType(signatureType ndn.SignatureType) (Signer, error) {
	if signatureType == ndn.DigestSha256Type {
		return DigestSha256{}, nil
	}
	return nil, errors.WithMessagef(ndn.ErrConfiguration,
		"no built-in signer for signature type %d", uint64(signatureType))
}

// SignData computes the signature value over the signed portion of the Data
// packet and installs it, leaving the packet with a current cached encoding.
// The signature type must already be set on the packet.
func SignData(data *ndn.Data, wireFormat ndn.WireFormat) error {
	signer, err := ForType(data.Signature().Type())
	if err != nil {
		return err
	}

	encoding, err := data.WireEncode(wireFormat)
	if err != nil {
		return err
	}
	value, err := signer.Sign(encoding.SignedPortion())
	if err != nil {
		return err
	}
	data.Signature().SetValue(value)

	// Re-encode so that the cached encoding carries the signature.
	_, err = data.WireEncode(wireFormat)
	return err
}

// VerifyData returns whether the signature value of the Data packet matches
// its signed portion.
func VerifyData(data *ndn.Data, wireFormat ndn.WireFormat) (bool, error) {
	signer, err := ForType(data.Signature().Type())
	if err != nil {
		return false, err
	}

	encoding, err := data.WireEncode(wireFormat)
	if err != nil {
		return false, err
	}
	return signer.Validate(encoding.SignedPortion(), data.Signature().Value()), nil
}
