/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2024 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"crypto/sha256"
	"strconv"
)

// Data represents an NDN Data packet: a name, meta information, content, and
// a signature over the signed portion of the encoding.
type Data struct {
	name      Name
	metaInfo  MetaInfo
	content   Blob
	signature Signature

	defaultWireEncoding       SignedBlob
	defaultWireEncodingFormat WireFormat
	defaultWireEncodingCount  uint64
	defaultFullName           Name

	changeCount          uint64
	nameChangeCount      uint64
	metaInfoChangeCount  uint64
	signatureChangeCount uint64
}

// NewData creates a new Data packet with a copy of the given name, default
// meta information, and a DigestSha256 signature.
func NewData(name *Name) *Data {
	d := new(Data)
	d.name = *name.DeepCopy()
	return d
}

//////////////////
// Setters/Getters
//////////////////

// Name returns the name of the Data packet. Mutating it through the returned
// pointer is observed by the change count.
func (d *Data) Name() *Name {
	return &d.name
}

// SetName sets the name of the Data packet to a copy of the given name.
func (d *Data) SetName(name *Name) {
	d.name = *name.DeepCopy()
	d.changeCount++
}

// MetaInfo returns the meta information of the Data packet. Mutating it
// through the returned pointer is observed by the change count.
func (d *Data) MetaInfo() *MetaInfo {
	return &d.metaInfo
}

// Content returns the content of the Data packet.
func (d *Data) Content() Blob {
	return d.content
}

// SetContent sets the content of the Data packet.
func (d *Data) SetContent(content Blob) {
	d.content = content
	d.changeCount++
}

// Signature returns the signature of the Data packet. Mutating it through
// the returned pointer is observed by the change count.
func (d *Data) Signature() *Signature {
	return &d.signature
}

// SetSignature sets the signature of the Data packet to a copy of the given
// signature.
func (d *Data) SetSignature(signature *Signature) {
	d.signature = *signature
	d.changeCount++
}

///////////
// Encoding
///////////

// WireEncode encodes the Data packet, reusing the cached encoding when the
// packet has not been mutated since it was produced with the same wire
// format. A nil wire format selects DefaultWireFormat.
func (d *Data) WireEncode(wireFormat WireFormat) (SignedBlob, error) {
	if wireFormat == nil {
		wireFormat = DefaultWireFormat
	}
	if !d.defaultWireEncoding.IsNull() && d.defaultWireEncodingFormat == wireFormat &&
		d.defaultWireEncodingCount == d.ChangeCount() {
		return d.defaultWireEncoding, nil
	}

	encoding, signedPortionBeginOffset, signedPortionEndOffset, err := wireFormat.EncodeData(d)
	if err != nil {
		return SignedBlob{}, err
	}
	d.defaultWireEncoding = NewSignedBlob(encoding, false, signedPortionBeginOffset, signedPortionEndOffset)
	d.defaultWireEncodingFormat = wireFormat
	d.defaultWireEncodingCount = d.ChangeCount()
	d.defaultFullName.Clear()
	return d.defaultWireEncoding, nil
}

// WireDecode decodes the Data packet from the given bytes, replacing all
// fields and caching a private copy of the encoding. A nil wire format
// selects DefaultWireFormat.
func (d *Data) WireDecode(input []byte, wireFormat WireFormat) error {
	if wireFormat == nil {
		wireFormat = DefaultWireFormat
	}
	signedPortionBeginOffset, signedPortionEndOffset, err := wireFormat.DecodeData(d, input)
	if err != nil {
		return err
	}
	d.defaultWireEncoding = NewSignedBlob(input, true, signedPortionBeginOffset, signedPortionEndOffset)
	d.defaultWireEncodingFormat = wireFormat
	d.defaultWireEncodingCount = d.ChangeCount()
	d.defaultFullName.Clear()
	return nil
}

// FullName returns the full name of the Data packet: its name with the
// implicit SHA-256 digest of the encoding appended. Computing it requires the
// wire encoding, which is cached along with the resulting name.
func (d *Data) FullName(wireFormat WireFormat) (*Name, error) {
	if wireFormat == nil {
		wireFormat = DefaultWireFormat
	}
	if d.defaultFullName.Size() > 0 && !d.defaultWireEncoding.IsNull() &&
		d.defaultWireEncodingFormat == wireFormat &&
		d.defaultWireEncodingCount == d.ChangeCount() {
		return d.defaultFullName.DeepCopy(), nil
	}

	encoding, err := d.WireEncode(wireFormat)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(encoding.Bytes())
	digestComponent, err := NewImplicitSha256DigestComponent(digest[:])
	if err != nil {
		return nil, err
	}

	fullName := d.name.DeepCopy().Append(digestComponent)
	d.defaultFullName = *fullName.DeepCopy()
	return fullName, nil
}

func (d *Data) String() string {
	str := "Data(Name=" + d.name.String()
	if d.metaInfo.ContentType() != ContentTypeBlob {
		str += ", ContentType=" + strconv.FormatUint(uint64(d.metaInfo.ContentType()), 10)
	}
	if freshness := d.metaInfo.FreshnessPeriod(); freshness != nil {
		str += ", FreshnessPeriod=" + strconv.FormatInt(freshness.Milliseconds(), 10) + "ms"
	}
	str += ", ContentLen=" + strconv.Itoa(d.content.Size())
	str += ", Signature=" + d.signature.String() + ")"
	return str
}

// ChangeCount returns the number of times the Data packet or its nested
// fields have been mutated.
func (d *Data) ChangeCount() uint64 {
	if d.nameChangeCount != d.name.ChangeCount() ||
		d.metaInfoChangeCount != d.metaInfo.ChangeCount() ||
		d.signatureChangeCount != d.signature.ChangeCount() {
		d.nameChangeCount = d.name.ChangeCount()
		d.metaInfoChangeCount = d.metaInfo.ChangeCount()
		d.signatureChangeCount = d.signature.ChangeCount()
		d.changeCount++
	}
	return d.changeCount
}
