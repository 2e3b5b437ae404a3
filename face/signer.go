/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"crypto/sha256"

	"github.com/named-data/GoNDN2/ndn"
)

// Signer signs a command Interest by appending a SignatureInfo component and
// a SignatureValue component to its name. The signed portion covers the name
// up to and including the SignatureInfo component.
type Signer interface {
	Sign(interest *ndn.Interest, certificateName *ndn.Name, wireFormat ndn.WireFormat) error
}

// DigestSha256Signer signs with a SHA-256 digest over the signed portion. It
// carries no key material, so it proves integrity only; forwarders accept
// digest-signed commands from local applications.
type DigestSha256Signer struct{}

var _ Signer = DigestSha256Signer{}

// Sign appends the SignatureInfo and SignatureValue components. The
// certificate name is ignored, since a digest names no key.
func (DigestSha256Signer) Sign(interest *ndn.Interest, certificateName *ndn.Name, wireFormat ndn.WireFormat) error {
	if wireFormat == nil {
		wireFormat = ndn.DefaultWireFormat
	}

	signature := new(ndn.Signature)
	signature.SetType(ndn.DigestSha256Type)

	encodedInfo, err := wireFormat.EncodeSignatureInfo(signature)
	if err != nil {
		return err
	}
	interest.Name().Append(ndn.NewGenericComponent(encodedInfo))
	// An empty placeholder component, so that the signed portion of the
	// encoding below covers everything up to the signature value.
	interest.Name().Append(ndn.NewGenericComponent(nil))

	encoding, err := interest.WireEncode(wireFormat)
	if err != nil {
		return err
	}
	digest := sha256.Sum256(encoding.SignedPortion())
	signature.SetValue(digest[:])

	encodedValue, err := wireFormat.EncodeSignatureValue(signature)
	if err != nil {
		return err
	}
	interest.SetName(interest.Name().GetPrefix(interest.Name().Size() - 1).
		Append(ndn.NewGenericComponent(encodedValue)))
	return nil
}
