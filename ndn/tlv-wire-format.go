/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2024 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"crypto/rand"
	"math"

	"github.com/named-data/GoNDN2/ndn/lpv2"
	"github.com/named-data/GoNDN2/ndn/tlv"
	"github.com/pkg/errors"
)

// Nonce TLVs always carry exactly four octets.
const interestNonceSize = 4

// TlvWireFormat encodes and decodes packets in the NDN-TLV wire format.
// Interests are encoded in format v0.2, or v0.3 when they carry application
// parameters; both formats are accepted when decoding.
type TlvWireFormat struct{}

// NewTlvWireFormat creates a TlvWireFormat.
func NewTlvWireFormat() *TlvWireFormat {
	return &TlvWireFormat{}
}

// EncodeName encodes the name, returning the encoding and the begin and end
// offsets of the portion of the name covered by a Data packet signature,
// which ends at the start of the final component.
func (wf *TlvWireFormat) EncodeName(name *Name) ([]byte, int, int, error) {
	encoder := tlv.NewEncoderSized(128)
	signedPortionBeginOffset, signedPortionEndOffset := encodeNameTlv(encoder, name)
	return encoder.Output(), signedPortionBeginOffset, signedPortionEndOffset, nil
}

// DecodeName decodes input into the name, returning the begin and end offsets
// of the signed portion.
func (wf *TlvWireFormat) DecodeName(name *Name, input []byte) (int, int, error) {
	decoder := tlv.NewDecoder(input)
	return decodeNameTlv(name, decoder)
}

// EncodeInterest encodes the Interest, returning the encoding and the begin
// and end offsets of the signed portion of the name. An Interest carrying
// application parameters is encoded in format v0.3, all others in v0.2.
func (wf *TlvWireFormat) EncodeInterest(interest *Interest) ([]byte, int, int, error) {
	if interest.HasApplicationParameters() {
		return encodeInterestV03(interest)
	}
	return encodeInterestV02(interest)
}

// DecodeInterest decodes input into the Interest, replacing all fields, and
// returns the begin and end offsets of the signed portion of the name. Both
// format v0.2 and v0.3 are accepted; if neither parses, the error from the
// v0.2 decode is returned.
func (wf *TlvWireFormat) DecodeInterest(interest *Interest, input []byte) (int, int, error) {
	signedPortionBeginOffset, signedPortionEndOffset, err := decodeInterestV02(interest, input)
	if err == nil {
		return signedPortionBeginOffset, signedPortionEndOffset, nil
	}
	if begin, end, errV03 := decodeInterestV03(interest, input); errV03 == nil {
		return begin, end, nil
	}
	return 0, 0, err
}

// EncodeData encodes the Data packet, returning the encoding and the begin
// and end offsets of the signed portion, which extends from the start of the
// Name to the end of the SignatureInfo.
func (wf *TlvWireFormat) EncodeData(data *Data) ([]byte, int, int, error) {
	encoder := tlv.NewEncoderSized(512)
	saveLength := encoder.Len()

	// Encode backwards.
	encoder.WriteBlobTlv(tlv.SignatureValue, data.signature.value)
	signedPortionEndOffsetFromBack := encoder.Len()

	if err := encodeSignatureInfo(&data.signature, encoder); err != nil {
		return nil, 0, 0, err
	}
	encoder.WriteBlobTlv(tlv.Content, data.content.Bytes())
	encodeMetaInfo(&data.metaInfo, encoder)
	encodeNameTlv(encoder, &data.name)
	signedPortionBeginOffsetFromBack := encoder.Len()

	encoder.WriteTypeAndLength(tlv.Data, encoder.Len()-saveLength)
	signedPortionBeginOffset := encoder.Len() - signedPortionBeginOffsetFromBack
	signedPortionEndOffset := encoder.Len() - signedPortionEndOffsetFromBack
	return encoder.Output(), signedPortionBeginOffset, signedPortionEndOffset, nil
}

// DecodeData decodes input into the Data packet, replacing all fields, and
// returns the begin and end offsets of the signed portion.
func (wf *TlvWireFormat) DecodeData(data *Data, input []byte) (int, int, error) {
	decoder := tlv.NewDecoder(input)
	endOffset, err := decoder.ReadNestedTlvsStart(tlv.Data)
	if err != nil {
		return 0, 0, err
	}
	signedPortionBeginOffset := decoder.Offset()

	if _, _, err := decodeNameTlv(&data.name, decoder); err != nil {
		return 0, 0, err
	}

	if decoder.PeekType(tlv.MetaInfo, endOffset) {
		if err := decodeMetaInfo(data.MetaInfo(), decoder); err != nil {
			return 0, 0, err
		}
	} else {
		resetMetaInfo(data.MetaInfo())
	}

	if decoder.PeekType(tlv.Content, endOffset) {
		content, err := decoder.ReadBlobTlv(tlv.Content)
		if err != nil {
			return 0, 0, err
		}
		data.SetContent(NewBlob(content, true))
	} else {
		data.SetContent(Blob{})
	}

	if err := decodeSignatureInfo(data, decoder); err != nil {
		return 0, 0, err
	}
	signedPortionEndOffset := decoder.Offset()

	signatureValue, err := decoder.ReadBlobTlv(tlv.SignatureValue)
	if err != nil {
		return 0, 0, err
	}
	data.Signature().SetValue(signatureValue)

	if err := decoder.FinishNestedTlvs(endOffset); err != nil {
		return 0, 0, err
	}
	return signedPortionBeginOffset, signedPortionEndOffset, nil
}

// EncodeControlParameters encodes the control parameters.
func (wf *TlvWireFormat) EncodeControlParameters(controlParameters *ControlParameters) ([]byte, error) {
	encoder := tlv.NewEncoderSized(256)
	encodeControlParametersValue(controlParameters, encoder)
	return encoder.Output(), nil
}

// DecodeControlParameters decodes input into the control parameters,
// replacing all fields.
func (wf *TlvWireFormat) DecodeControlParameters(controlParameters *ControlParameters, input []byte) error {
	decoder := tlv.NewDecoder(input)
	return decodeControlParametersValue(controlParameters, decoder)
}

// EncodeControlResponse encodes the control response.
func (wf *TlvWireFormat) EncodeControlResponse(controlResponse *ControlResponse) ([]byte, error) {
	encoder := tlv.NewEncoderSized(256)
	saveLength := encoder.Len()

	// Encode backwards.
	if controlResponse.body != nil {
		encodeControlParametersValue(controlResponse.body, encoder)
	}
	encoder.WriteBlobTlv(tlv.StatusText, []byte(controlResponse.statusText))
	encoder.WriteNNITlv(tlv.StatusCode, controlResponse.statusCode)

	encoder.WriteTypeAndLength(tlv.ControlResponse, encoder.Len()-saveLength)
	return encoder.Output(), nil
}

// DecodeControlResponse decodes input into the control response, replacing
// all fields.
func (wf *TlvWireFormat) DecodeControlResponse(controlResponse *ControlResponse, input []byte) error {
	decoder := tlv.NewDecoder(input)
	endOffset, err := decoder.ReadNestedTlvsStart(tlv.ControlResponse)
	if err != nil {
		return err
	}

	statusCode, err := decoder.ReadNNITlv(tlv.StatusCode)
	if err != nil {
		return err
	}
	controlResponse.SetStatusCode(statusCode)

	statusText, err := decoder.ReadBlobTlv(tlv.StatusText)
	if err != nil {
		return err
	}
	controlResponse.SetStatusText(string(statusText))

	if decoder.PeekType(tlv.ControlParameters, endOffset) {
		body := NewControlParameters()
		if err := decodeControlParametersValue(body, decoder); err != nil {
			return err
		}
		controlResponse.SetBody(body)
	} else {
		controlResponse.SetBody(nil)
	}
	return decoder.FinishNestedTlvsSkippingCritical(endOffset)
}

// EncodeSignatureInfo encodes the SignatureInfo of the signature as a
// standalone TLV.
func (wf *TlvWireFormat) EncodeSignatureInfo(signature *Signature) ([]byte, error) {
	encoder := tlv.NewEncoderSized(64)
	if err := encodeSignatureInfo(signature, encoder); err != nil {
		return nil, err
	}
	return encoder.Output(), nil
}

// EncodeSignatureValue encodes the value bits of the signature as a
// standalone SignatureValue TLV.
func (wf *TlvWireFormat) EncodeSignatureValue(signature *Signature) ([]byte, error) {
	encoder := tlv.NewEncoderSized(64)
	encoder.WriteBlobTlv(tlv.SignatureValue, signature.value)
	return encoder.Output(), nil
}

// EncodeDelegationSet encodes the delegation set as a sequence of Delegation
// TLVs with no enclosing element, the form embedded in a Link object's
// content and in a ForwardingHint.
func (wf *TlvWireFormat) EncodeDelegationSet(delegationSet *DelegationSet) ([]byte, error) {
	encoder := tlv.NewEncoderSized(256)
	encodeDelegationSetValue(delegationSet, encoder)
	return encoder.Output(), nil
}

// DecodeDelegationSet decodes input as a sequence of Delegation TLVs,
// preserving their order in the delegation set.
func (wf *TlvWireFormat) DecodeDelegationSet(delegationSet *DelegationSet, input []byte) error {
	decoder := tlv.NewDecoder(input)
	return decodeDelegationSetValue(delegationSet, len(input), decoder)
}

// EncodeLpPacket encodes the NDNLPv2 packet.
func (wf *TlvWireFormat) EncodeLpPacket(packet *lpv2.Packet) ([]byte, error) {
	return lpv2.EncodePacket(packet)
}

// DecodeLpPacket decodes input into the NDNLPv2 packet, replacing all fields.
func (wf *TlvWireFormat) DecodeLpPacket(packet *lpv2.Packet, input []byte) error {
	return lpv2.DecodePacket(packet, input)
}

////////
// Names
////////

// Encode the components of name without an enclosing Name TLV, returning the
// offsets from the back of the encoding of the start of the first component
// and of the start of the final component.
func encodeNameComponents(encoder *tlv.Encoder, name *Name) (int, int) {
	signedPortionEndOffsetFromBack := 0
	for i := len(name.components) - 1; i >= 0; i-- {
		encoder.WriteBlobTlv(name.components[i].typ, name.components[i].value)
		if i == len(name.components)-1 {
			signedPortionEndOffsetFromBack = encoder.Len()
		}
	}
	return encoder.Len(), signedPortionEndOffsetFromBack
}

// Encode name as a Name TLV, returning the begin and end offsets of the
// signed portion relative to the bytes written so far. With an empty name
// there is no final component, so the end offset equals the begin offset.
func encodeNameTlv(encoder *tlv.Encoder, name *Name) (int, int) {
	saveLength := encoder.Len()
	beginFromBack, endFromBack := encodeNameComponents(encoder, name)
	encoder.WriteTypeAndLength(tlv.Name, encoder.Len()-saveLength)

	signedPortionBeginOffset := encoder.Len() - beginFromBack
	signedPortionEndOffset := encoder.Len() - endFromBack
	if name.Size() == 0 {
		signedPortionEndOffset = signedPortionBeginOffset
	}
	return signedPortionBeginOffset, signedPortionEndOffset
}

func decodeNameComponent(decoder *tlv.Decoder) (Component, error) {
	saveOffset := decoder.Offset()
	componentType, err := decoder.ReadVarNum()
	if err != nil {
		return Component{}, err
	}
	if componentType > math.MaxUint32 {
		return Component{}, tlv.ErrTypeOutOfRange
	}
	decoder.Seek(saveOffset)

	value, err := decoder.ReadBlobTlv(uint32(componentType))
	if err != nil {
		return Component{}, err
	}
	return NewOtherCodeComponent(uint32(componentType), value)
}

func decodeNameTlv(name *Name, decoder *tlv.Decoder) (int, int, error) {
	name.Clear()
	endOffset, err := decoder.ReadNestedTlvsStart(tlv.Name)
	if err != nil {
		return 0, 0, err
	}

	signedPortionBeginOffset := decoder.Offset()
	// In case there are no components, the end offset equals the begin offset.
	signedPortionEndOffset := signedPortionBeginOffset
	for decoder.Offset() < endOffset {
		signedPortionEndOffset = decoder.Offset()
		component, err := decodeNameComponent(decoder)
		if err != nil {
			return 0, 0, err
		}
		name.Append(component)
	}

	if err := decoder.FinishNestedTlvs(endOffset); err != nil {
		return 0, 0, err
	}
	return signedPortionBeginOffset, signedPortionEndOffset, nil
}

////////////
// Interests
////////////

// Normalize a nonce for the wire: pad a short nonce with random octets and
// truncate a long one.
func encodeNonce(nonce []byte) ([]byte, error) {
	wireNonce := make([]byte, interestNonceSize)
	copied := copy(wireNonce, nonce)
	if copied < interestNonceSize {
		if _, err := rand.Read(wireNonce[copied:]); err != nil {
			return nil, err
		}
	}
	return wireNonce, nil
}

func encodeInterestV02(interest *Interest) ([]byte, int, int, error) {
	encoder := tlv.NewEncoderSized(256)
	saveLength := encoder.Len()

	// Encode backwards.
	if interest.selectedDelegationIndex != nil {
		encoder.WriteNNITlv(tlv.SelectedDelegation, uint64(*interest.selectedDelegationIndex))
	}
	if interest.HasLink() {
		// The Link object is a full Data packet, encoded verbatim.
		encoder.WriteBytes(interest.linkWireEncoding)
	}
	if interest.forwardingHint.Size() > 0 {
		if interest.selectedDelegationIndex != nil {
			return nil, 0, 0, errors.WithMessage(ErrProtocol,
				"an Interest may not have a selected delegation when encoding a forwarding hint")
		}
		if interest.HasLink() {
			return nil, 0, 0, errors.WithMessage(ErrProtocol,
				"an Interest may not have a link object when encoding a forwarding hint")
		}
		forwardingHintSaveLength := encoder.Len()
		encodeDelegationSetValue(&interest.forwardingHint, encoder)
		encoder.WriteTypeAndLength(tlv.ForwardingHint, encoder.Len()-forwardingHintSaveLength)
	}
	encoder.WriteOptionalNNITlvFromDuration(tlv.InterestLifetime, interest.lifetime)

	nonce, err := encodeNonce(interest.Nonce())
	if err != nil {
		return nil, 0, 0, err
	}
	encoder.WriteBlobTlv(tlv.Nonce, nonce)

	encodeSelectors(interest, encoder)

	tempBegin, tempEnd := encodeNameTlv(encoder, &interest.name)
	signedPortionBeginOffsetFromBack := encoder.Len() - tempBegin
	signedPortionEndOffsetFromBack := encoder.Len() - tempEnd

	encoder.WriteTypeAndLength(tlv.Interest, encoder.Len()-saveLength)
	signedPortionBeginOffset := encoder.Len() - signedPortionBeginOffsetFromBack
	signedPortionEndOffset := encoder.Len() - signedPortionEndOffsetFromBack
	return encoder.Output(), signedPortionBeginOffset, signedPortionEndOffset, nil
}

func encodeInterestV03(interest *Interest) ([]byte, int, int, error) {
	encoder := tlv.NewEncoderSized(256)
	saveLength := encoder.Len()

	// Encode backwards.
	encoder.WriteOptionalBlobTlv(tlv.ApplicationParameters, interest.applicationParameters.Bytes())
	encoder.WriteOptionalNNITlvFromDuration(tlv.InterestLifetime, interest.lifetime)

	nonce, err := encodeNonce(interest.Nonce())
	if err != nil {
		return nil, 0, 0, err
	}
	encoder.WriteBlobTlv(tlv.Nonce, nonce)

	if interest.forwardingHint.Size() > 0 {
		if interest.selectedDelegationIndex != nil {
			return nil, 0, 0, errors.WithMessage(ErrProtocol,
				"an Interest may not have a selected delegation when encoding a forwarding hint")
		}
		if interest.HasLink() {
			return nil, 0, 0, errors.WithMessage(ErrProtocol,
				"an Interest may not have a link object when encoding a forwarding hint")
		}
		forwardingHintSaveLength := encoder.Len()
		encodeDelegationSetValue(&interest.forwardingHint, encoder)
		encoder.WriteTypeAndLength(tlv.ForwardingHint, encoder.Len()-forwardingHintSaveLength)
	}

	if interest.mustBeFresh {
		encoder.WriteTypeAndLength(tlv.MustBeFresh, 0)
	}
	if interest.CanBePrefix() {
		encoder.WriteTypeAndLength(tlv.CanBePrefix, 0)
	}

	tempBegin, tempEnd := encodeNameTlv(encoder, &interest.name)
	signedPortionBeginOffsetFromBack := encoder.Len() - tempBegin
	signedPortionEndOffsetFromBack := encoder.Len() - tempEnd

	encoder.WriteTypeAndLength(tlv.Interest, encoder.Len()-saveLength)
	signedPortionBeginOffset := encoder.Len() - signedPortionBeginOffsetFromBack
	signedPortionEndOffset := encoder.Len() - signedPortionEndOffsetFromBack
	return encoder.Output(), signedPortionBeginOffset, signedPortionEndOffset, nil
}

func encodeSelectors(interest *Interest, encoder *tlv.Encoder) {
	saveLength := encoder.Len()

	// Encode backwards.
	if interest.mustBeFresh {
		encoder.WriteTypeAndLength(tlv.MustBeFresh, 0)
	}
	encoder.WriteOptionalNNITlv(tlv.ChildSelector, interest.childSelector)
	if interest.exclude.Size() > 0 {
		encodeExclude(&interest.exclude, encoder)
	}
	if interest.keyLocator.typ != KeyLocatorUnset {
		encodeKeyLocator(tlv.PublisherPublicKeyLocator, &interest.keyLocator, encoder)
	}
	encoder.WriteOptionalNNITlv(tlv.MaxSuffixComponents, interest.maxSuffixComponents)
	encoder.WriteOptionalNNITlv(tlv.MinSuffixComponents, interest.minSuffixComponents)

	// Only output the Selectors TLV if it has elements.
	if encoder.Len() != saveLength {
		encoder.WriteTypeAndLength(tlv.Selectors, encoder.Len()-saveLength)
	}
}

func encodeExclude(exclude *Exclude, encoder *tlv.Encoder) {
	saveLength := encoder.Len()

	// Encode the entries backwards.
	for i := len(exclude.entries) - 1; i >= 0; i-- {
		if exclude.entries[i].any {
			encoder.WriteTypeAndLength(tlv.Any, 0)
		} else {
			encoder.WriteBlobTlv(exclude.entries[i].component.typ, exclude.entries[i].component.value)
		}
	}

	encoder.WriteTypeAndLength(tlv.Exclude, encoder.Len()-saveLength)
}

func decodeInterestV02(interest *Interest, input []byte) (int, int, error) {
	decoder := tlv.NewDecoder(input)
	endOffset, err := decoder.ReadNestedTlvsStart(tlv.Interest)
	if err != nil {
		return 0, 0, err
	}

	signedPortionBeginOffset, signedPortionEndOffset, err := decodeNameTlv(&interest.name, decoder)
	if err != nil {
		return 0, 0, err
	}

	if decoder.PeekType(tlv.Selectors, endOffset) {
		if err := decodeSelectors(interest, decoder); err != nil {
			return 0, 0, err
		}
	} else {
		interest.SetMinSuffixComponents(nil)
		interest.SetMaxSuffixComponents(nil)
		interest.KeyLocator().Clear()
		interest.Exclude().Clear()
		interest.SetChildSelector(nil)
		interest.SetMustBeFresh(false)
	}

	// Require a Nonce, but don't force it to be 4 bytes.
	nonce, err := decoder.ReadBlobTlv(tlv.Nonce)
	if err != nil {
		return 0, 0, err
	}

	lifetime, err := decoder.ReadOptionalNNITlvAsDuration(tlv.InterestLifetime, endOffset)
	if err != nil {
		return 0, 0, err
	}
	interest.SetLifetime(lifetime)

	if decoder.PeekType(tlv.ForwardingHint, endOffset) {
		forwardingHintEndOffset, err := decoder.ReadNestedTlvsStart(tlv.ForwardingHint)
		if err != nil {
			return 0, 0, err
		}
		if err := decodeDelegationSetValue(&interest.forwardingHint, forwardingHintEndOffset, decoder); err != nil {
			return 0, 0, err
		}
		if err := decoder.FinishNestedTlvs(forwardingHintEndOffset); err != nil {
			return 0, 0, err
		}
	} else {
		interest.ForwardingHint().Clear()
	}

	if decoder.PeekType(tlv.Data, endOffset) {
		// Take the bytes of the entire Link TLV.
		linkBeginOffset := decoder.Offset()
		linkEndOffset, err := decoder.ReadNestedTlvsStart(tlv.Data)
		if err != nil {
			return 0, 0, err
		}
		decoder.Seek(linkEndOffset)
		interest.SetLinkWireEncoding(decoder.Slice(linkBeginOffset, linkEndOffset))
	} else {
		interest.SetLinkWireEncoding(nil)
	}

	selectedDelegation, err := decoder.ReadOptionalNNITlv(tlv.SelectedDelegation, endOffset)
	if err != nil {
		return 0, 0, err
	}
	if selectedDelegation != nil {
		if !interest.HasLink() {
			return 0, 0, errors.WithMessage(ErrDecoding, "Interest has a selected delegation, but no link object")
		}
		index := int(*selectedDelegation)
		interest.SetSelectedDelegationIndex(&index)
	} else {
		interest.SetSelectedDelegationIndex(nil)
	}

	interest.SetApplicationParameters(Blob{})

	// Set the nonce last so that the change count treats it as current.
	interest.SetNonce(nonce)

	if err := decoder.FinishNestedTlvs(endOffset); err != nil {
		return 0, 0, err
	}
	return signedPortionBeginOffset, signedPortionEndOffset, nil
}

func decodeInterestV03(interest *Interest, input []byte) (int, int, error) {
	decoder := tlv.NewDecoder(input)
	endOffset, err := decoder.ReadNestedTlvsStart(tlv.Interest)
	if err != nil {
		return 0, 0, err
	}

	signedPortionBeginOffset, signedPortionEndOffset, err := decodeNameTlv(&interest.name, decoder)
	if err != nil {
		return 0, 0, err
	}

	canBePrefix, err := decoder.ReadBooleanTlv(tlv.CanBePrefix, endOffset)
	if err != nil {
		return 0, 0, err
	}
	interest.SetCanBePrefix(canBePrefix)

	mustBeFresh, err := decoder.ReadBooleanTlv(tlv.MustBeFresh, endOffset)
	if err != nil {
		return 0, 0, err
	}
	interest.SetMustBeFresh(mustBeFresh)

	if decoder.PeekType(tlv.ForwardingHint, endOffset) {
		forwardingHintEndOffset, err := decoder.ReadNestedTlvsStart(tlv.ForwardingHint)
		if err != nil {
			return 0, 0, err
		}
		if err := decodeDelegationSetValue(&interest.forwardingHint, forwardingHintEndOffset, decoder); err != nil {
			return 0, 0, err
		}
		if err := decoder.FinishNestedTlvs(forwardingHintEndOffset); err != nil {
			return 0, 0, err
		}
	} else {
		interest.ForwardingHint().Clear()
	}

	nonce, err := decoder.ReadOptionalBlobTlv(tlv.Nonce, endOffset)
	if err != nil {
		return 0, 0, err
	}

	lifetime, err := decoder.ReadOptionalNNITlvAsDuration(tlv.InterestLifetime, endOffset)
	if err != nil {
		return 0, 0, err
	}
	interest.SetLifetime(lifetime)

	// HopLimit is not modeled; skip it.
	if _, err := decoder.ReadOptionalNNITlv(tlv.HopLimit, endOffset); err != nil {
		return 0, 0, err
	}

	parameters, err := decoder.ReadOptionalBlobTlv(tlv.ApplicationParameters, endOffset)
	if err != nil {
		return 0, 0, err
	}
	interest.SetApplicationParameters(NewBlob(parameters, true))

	// Clear the fields that format v0.3 does not carry.
	interest.SetMinSuffixComponents(nil)
	interest.KeyLocator().Clear()
	interest.Exclude().Clear()
	interest.SetChildSelector(nil)
	interest.SetLinkWireEncoding(nil)
	interest.SetSelectedDelegationIndex(nil)

	// Set the nonce last so that the change count treats it as current.
	interest.SetNonce(nonce)

	if err := decoder.FinishNestedTlvs(endOffset); err != nil {
		return 0, 0, err
	}
	return signedPortionBeginOffset, signedPortionEndOffset, nil
}

func decodeSelectors(interest *Interest, decoder *tlv.Decoder) error {
	endOffset, err := decoder.ReadNestedTlvsStart(tlv.Selectors)
	if err != nil {
		return err
	}

	minSuffix, err := decoder.ReadOptionalNNITlv(tlv.MinSuffixComponents, endOffset)
	if err != nil {
		return err
	}
	interest.SetMinSuffixComponents(minSuffix)

	maxSuffix, err := decoder.ReadOptionalNNITlv(tlv.MaxSuffixComponents, endOffset)
	if err != nil {
		return err
	}
	interest.SetMaxSuffixComponents(maxSuffix)

	if decoder.PeekType(tlv.PublisherPublicKeyLocator, endOffset) {
		if err := decodeKeyLocator(tlv.PublisherPublicKeyLocator, interest.KeyLocator(), decoder); err != nil {
			return err
		}
	} else {
		interest.KeyLocator().Clear()
	}

	if decoder.PeekType(tlv.Exclude, endOffset) {
		if err := decodeExclude(interest.Exclude(), decoder); err != nil {
			return err
		}
	} else {
		interest.Exclude().Clear()
	}

	childSelector, err := decoder.ReadOptionalNNITlv(tlv.ChildSelector, endOffset)
	if err != nil {
		return err
	}
	interest.SetChildSelector(childSelector)

	mustBeFresh, err := decoder.ReadBooleanTlv(tlv.MustBeFresh, endOffset)
	if err != nil {
		return err
	}
	interest.SetMustBeFresh(mustBeFresh)

	return decoder.FinishNestedTlvs(endOffset)
}

func decodeExclude(exclude *Exclude, decoder *tlv.Decoder) error {
	endOffset, err := decoder.ReadNestedTlvsStart(tlv.Exclude)
	if err != nil {
		return err
	}

	// Preserve the entry list exactly as received.
	exclude.Clear()
	for decoder.Offset() < endOffset {
		if decoder.PeekType(tlv.Any, endOffset) {
			if _, err := decoder.ReadBooleanTlv(tlv.Any, endOffset); err != nil {
				return err
			}
			exclude.appendEntry(excludeEntry{any: true})
		} else {
			component, err := decodeNameComponent(decoder)
			if err != nil {
				return err
			}
			exclude.appendEntry(excludeEntry{component: component})
		}
	}
	return decoder.FinishNestedTlvs(endOffset)
}

///////////////
// Key locators
///////////////

func encodeKeyLocator(typ uint32, keyLocator *KeyLocator, encoder *tlv.Encoder) {
	saveLength := encoder.Len()

	// Encode backwards. An unset KeyLocator encodes with an empty value.
	switch keyLocator.typ {
	case KeyLocatorKeyName:
		encodeNameTlv(encoder, &keyLocator.keyName)
	case KeyLocatorKeyDigest:
		if keyLocator.keyData.Size() > 0 {
			encoder.WriteBlobTlv(tlv.KeyDigest, keyLocator.keyData.Bytes())
		}
	}

	encoder.WriteTypeAndLength(typ, encoder.Len()-saveLength)
}

func decodeKeyLocator(expectedType uint32, keyLocator *KeyLocator, decoder *tlv.Decoder) error {
	endOffset, err := decoder.ReadNestedTlvsStart(expectedType)
	if err != nil {
		return err
	}

	keyLocator.Clear()
	if decoder.Offset() == endOffset {
		return nil
	}

	switch {
	case decoder.PeekType(tlv.Name, endOffset):
		var keyName Name
		if _, _, err := decodeNameTlv(&keyName, decoder); err != nil {
			return err
		}
		keyLocator.SetKeyName(&keyName)
	case decoder.PeekType(tlv.KeyDigest, endOffset):
		keyData, err := decoder.ReadBlobTlv(tlv.KeyDigest)
		if err != nil {
			return err
		}
		keyLocator.SetKeyData(NewBlob(keyData, true))
	default:
		return errors.WithMessage(ErrDecoding, "unrecognized KeyLocator variant")
	}
	return decoder.FinishNestedTlvs(endOffset)
}

/////////////
// Signatures
/////////////

func encodeSignatureInfo(signature *Signature, encoder *tlv.Encoder) error {
	if signature.typ == GenericSignatureType {
		// A generic signature carries its entire SignatureInfo TLV. Check that
		// it is well formed before re-emitting it verbatim.
		decoder := tlv.NewDecoder(signature.signatureInfoEncoding)
		if _, err := decoder.ReadNestedTlvsStart(tlv.SignatureInfo); err != nil {
			return errors.WithMessage(err, "generic signature does not carry a valid SignatureInfo")
		}
		if _, err := decoder.ReadNNITlv(tlv.SignatureType); err != nil {
			return errors.WithMessage(err, "generic signature does not carry a valid SignatureInfo")
		}
		encoder.WriteBytes(signature.signatureInfoEncoding)
		return nil
	}

	saveLength := encoder.Len()

	// Encode backwards.
	switch signature.typ {
	case DigestSha256Type:
	case SignatureHmacWithSha256Type:
		encodeKeyLocator(tlv.KeyLocator, &signature.keyLocator, encoder)
	case SignatureSha256WithRsaType, SignatureSha256WithEcdsaType:
		if signature.validityPeriod.hasPeriod {
			encodeValidityPeriod(&signature.validityPeriod, encoder)
		}
		encodeKeyLocator(tlv.KeyLocator, &signature.keyLocator, encoder)
	default:
		return errors.WithMessagef(ErrProtocol, "unrecognized signature type %d", uint64(signature.typ))
	}
	encoder.WriteNNITlv(tlv.SignatureType, uint64(signature.typ))

	encoder.WriteTypeAndLength(tlv.SignatureInfo, encoder.Len()-saveLength)
	return nil
}

// Decode a SignatureInfo TLV and the signature variant it selects into data,
// leaving the decoder positioned at the SignatureValue.
func decodeSignatureInfo(data *Data, decoder *tlv.Decoder) error {
	beginOffset := decoder.Offset()
	endOffset, err := decoder.ReadNestedTlvsStart(tlv.SignatureInfo)
	if err != nil {
		return err
	}

	signatureType, err := decoder.ReadNNITlv(tlv.SignatureType)
	if err != nil {
		return err
	}

	var signature Signature
	switch SignatureType(signatureType) {
	case DigestSha256Type:
		signature.SetType(DigestSha256Type)
	case SignatureHmacWithSha256Type:
		signature.SetType(SignatureHmacWithSha256Type)
		if err := decodeKeyLocator(tlv.KeyLocator, signature.KeyLocator(), decoder); err != nil {
			return err
		}
	case SignatureSha256WithRsaType, SignatureSha256WithEcdsaType:
		signature.SetType(SignatureType(signatureType))
		if err := decodeKeyLocator(tlv.KeyLocator, signature.KeyLocator(), decoder); err != nil {
			return err
		}
		if decoder.PeekType(tlv.ValidityPeriod, endOffset) {
			if err := decodeValidityPeriod(signature.ValidityPeriod(), decoder); err != nil {
				return err
			}
		}
	default:
		// An unmodeled signature type keeps the whole SignatureInfo verbatim.
		signature.SetSignatureInfoEncoding(decoder.Slice(beginOffset, endOffset), signatureType)
		decoder.Seek(endOffset)
	}
	data.SetSignature(&signature)

	return decoder.FinishNestedTlvs(endOffset)
}

func encodeValidityPeriod(validityPeriod *ValidityPeriod, encoder *tlv.Encoder) {
	saveLength := encoder.Len()

	// Encode backwards.
	encoder.WriteBlobTlv(tlv.NotAfter, formatValidityTimestamp(validityPeriod.notAfter))
	encoder.WriteBlobTlv(tlv.NotBefore, formatValidityTimestamp(validityPeriod.notBefore))

	encoder.WriteTypeAndLength(tlv.ValidityPeriod, encoder.Len()-saveLength)
}

func decodeValidityPeriod(validityPeriod *ValidityPeriod, decoder *tlv.Decoder) error {
	endOffset, err := decoder.ReadNestedTlvsStart(tlv.ValidityPeriod)
	if err != nil {
		return err
	}

	notBeforeBytes, err := decoder.ReadBlobTlv(tlv.NotBefore)
	if err != nil {
		return err
	}
	notBefore, err := parseValidityTimestamp(notBeforeBytes)
	if err != nil {
		return err
	}

	notAfterBytes, err := decoder.ReadBlobTlv(tlv.NotAfter)
	if err != nil {
		return err
	}
	notAfter, err := parseValidityTimestamp(notAfterBytes)
	if err != nil {
		return err
	}

	validityPeriod.SetPeriod(notBefore, notAfter)
	return decoder.FinishNestedTlvs(endOffset)
}

///////////
// MetaInfo
///////////

func encodeMetaInfo(metaInfo *MetaInfo, encoder *tlv.Encoder) {
	saveLength := encoder.Len()

	// Encode backwards.
	if metaInfo.finalBlockId != nil {
		// FinalBlockId wraps a name component.
		finalBlockIdSaveLength := encoder.Len()
		encoder.WriteBlobTlv(metaInfo.finalBlockId.typ, metaInfo.finalBlockId.value)
		encoder.WriteTypeAndLength(tlv.FinalBlockID, encoder.Len()-finalBlockIdSaveLength)
	}
	encoder.WriteOptionalNNITlvFromDuration(tlv.FreshnessPeriod, metaInfo.freshnessPeriod)
	if metaInfo.contentType != ContentTypeBlob {
		encoder.WriteNNITlv(tlv.ContentType, uint64(metaInfo.contentType))
	}

	encoder.WriteTypeAndLength(tlv.MetaInfo, encoder.Len()-saveLength)
}

func decodeMetaInfo(metaInfo *MetaInfo, decoder *tlv.Decoder) error {
	endOffset, err := decoder.ReadNestedTlvsStart(tlv.MetaInfo)
	if err != nil {
		return err
	}

	contentType, err := decoder.ReadOptionalNNITlv(tlv.ContentType, endOffset)
	if err != nil {
		return err
	}
	if contentType == nil {
		// Default to Blob when the element is omitted.
		metaInfo.SetContentType(ContentTypeBlob)
	} else {
		metaInfo.SetContentType(ContentType(*contentType))
	}

	freshness, err := decoder.ReadOptionalNNITlvAsDuration(tlv.FreshnessPeriod, endOffset)
	if err != nil {
		return err
	}
	metaInfo.SetFreshnessPeriod(freshness)

	if decoder.PeekType(tlv.FinalBlockID, endOffset) {
		finalBlockIdEndOffset, err := decoder.ReadNestedTlvsStart(tlv.FinalBlockID)
		if err != nil {
			return err
		}
		component, err := decodeNameComponent(decoder)
		if err != nil {
			return err
		}
		metaInfo.SetFinalBlockId(&component)
		if err := decoder.FinishNestedTlvs(finalBlockIdEndOffset); err != nil {
			return err
		}
	} else {
		metaInfo.SetFinalBlockId(nil)
	}
	return decoder.FinishNestedTlvs(endOffset)
}

func resetMetaInfo(metaInfo *MetaInfo) {
	metaInfo.SetContentType(ContentTypeBlob)
	metaInfo.SetFreshnessPeriod(nil)
	metaInfo.SetFinalBlockId(nil)
}

//////////////
// Delegations
//////////////

// Encode the delegations backwards without an enclosing TLV.
func encodeDelegationSetValue(delegationSet *DelegationSet, encoder *tlv.Encoder) {
	for i := len(delegationSet.delegations) - 1; i >= 0; i-- {
		saveLength := encoder.Len()
		encodeNameTlv(encoder, &delegationSet.delegations[i].name)
		encoder.WriteNNITlv(tlv.Preference, delegationSet.delegations[i].preference)
		encoder.WriteTypeAndLength(tlv.Delegation, encoder.Len()-saveLength)
	}
}

func decodeDelegationSetValue(delegationSet *DelegationSet, endOffset int, decoder *tlv.Decoder) error {
	delegationSet.Clear()
	for decoder.Offset() < endOffset {
		delegationEndOffset, err := decoder.ReadNestedTlvsStart(tlv.Delegation)
		if err != nil {
			return err
		}
		preference, err := decoder.ReadNNITlv(tlv.Preference)
		if err != nil {
			return err
		}
		var name Name
		if _, _, err := decodeNameTlv(&name, decoder); err != nil {
			return err
		}
		// Keep the received order so that a selected delegation index still
		// refers to the right entry.
		delegationSet.appendDelegation(preference, &name)
		if err := decoder.FinishNestedTlvs(delegationEndOffset); err != nil {
			return err
		}
	}
	return nil
}

/////////////
// Management
/////////////

func encodeControlParametersValue(controlParameters *ControlParameters, encoder *tlv.Encoder) {
	saveLength := encoder.Len()

	// Encode backwards.
	encoder.WriteOptionalNNITlvFromDuration(tlv.ExpirationPeriod, controlParameters.expirationPeriod)
	if controlParameters.strategy != nil && controlParameters.strategy.Size() > 0 {
		strategySaveLength := encoder.Len()
		encodeNameTlv(encoder, controlParameters.strategy)
		encoder.WriteTypeAndLength(tlv.Strategy, encoder.Len()-strategySaveLength)
	}
	if flags := controlParameters.flags.NfdForwardingFlags(); flags != NewRegistrationOptions().NfdForwardingFlags() {
		// The flags differ from the defaults, so they must be encoded.
		encoder.WriteNNITlv(tlv.Flags, flags)
	}
	encoder.WriteOptionalNNITlv(tlv.Cost, controlParameters.cost)
	encoder.WriteOptionalNNITlv(tlv.Origin, controlParameters.origin)
	encoder.WriteOptionalNNITlv(tlv.LocalControlFeature, controlParameters.localControlFeature)
	if len(controlParameters.uri) > 0 {
		encoder.WriteBlobTlv(tlv.URI, []byte(controlParameters.uri))
	}
	encoder.WriteOptionalNNITlv(tlv.FaceID, controlParameters.faceId)
	if controlParameters.name != nil {
		encodeNameTlv(encoder, controlParameters.name)
	}

	encoder.WriteTypeAndLength(tlv.ControlParameters, encoder.Len()-saveLength)
}

func decodeControlParametersValue(controlParameters *ControlParameters, decoder *tlv.Decoder) error {
	endOffset, err := decoder.ReadNestedTlvsStart(tlv.ControlParameters)
	if err != nil {
		return err
	}

	if decoder.PeekType(tlv.Name, endOffset) {
		var name Name
		if _, _, err := decodeNameTlv(&name, decoder); err != nil {
			return err
		}
		controlParameters.SetName(&name)
	} else {
		controlParameters.SetName(nil)
	}

	faceId, err := decoder.ReadOptionalNNITlv(tlv.FaceID, endOffset)
	if err != nil {
		return err
	}
	controlParameters.SetFaceId(faceId)

	uri, err := decoder.ReadOptionalBlobTlv(tlv.URI, endOffset)
	if err != nil {
		return err
	}
	controlParameters.SetUri(string(uri))

	// LocalUri is not modeled; skip it.
	if _, err := decoder.ReadOptionalBlobTlv(tlv.LocalURI, endOffset); err != nil {
		return err
	}

	feature, err := decoder.ReadOptionalNNITlv(tlv.LocalControlFeature, endOffset)
	if err != nil {
		return err
	}
	controlParameters.SetLocalControlFeature(feature)

	origin, err := decoder.ReadOptionalNNITlv(tlv.Origin, endOffset)
	if err != nil {
		return err
	}
	controlParameters.SetOrigin(origin)

	cost, err := decoder.ReadOptionalNNITlv(tlv.Cost, endOffset)
	if err != nil {
		return err
	}
	controlParameters.SetCost(cost)

	// Face properties reported by NFD are not modeled; skip them.
	for _, skippedType := range []uint32{tlv.Capacity, tlv.Count,
		tlv.BaseCongestionMarkingInterval, tlv.DefaultCongestionThreshold, tlv.MTU} {
		if _, err := decoder.ReadOptionalNNITlv(skippedType, endOffset); err != nil {
			return err
		}
	}

	flags, err := decoder.ReadOptionalNNITlv(tlv.Flags, endOffset)
	if err != nil {
		return err
	}
	if flags != nil {
		controlParameters.Flags().SetNfdForwardingFlags(*flags)
	} else {
		controlParameters.SetFlags(NewRegistrationOptions())
	}

	if _, err := decoder.ReadOptionalNNITlv(tlv.Mask, endOffset); err != nil {
		return err
	}

	if decoder.PeekType(tlv.Strategy, endOffset) {
		strategyEndOffset, err := decoder.ReadNestedTlvsStart(tlv.Strategy)
		if err != nil {
			return err
		}
		var strategy Name
		if _, _, err := decodeNameTlv(&strategy, decoder); err != nil {
			return err
		}
		controlParameters.SetStrategy(&strategy)
		if err := decoder.FinishNestedTlvs(strategyEndOffset); err != nil {
			return err
		}
	} else {
		controlParameters.SetStrategy(nil)
	}

	expiration, err := decoder.ReadOptionalNNITlvAsDuration(tlv.ExpirationPeriod, endOffset)
	if err != nil {
		return err
	}
	controlParameters.SetExpirationPeriod(expiration)

	return decoder.FinishNestedTlvsSkippingCritical(endOffset)
}
