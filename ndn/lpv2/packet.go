/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package lpv2

import (
	"github.com/named-data/GoNDN2/ndn/tlv"
	"github.com/pkg/errors"
)

// Packet represents an NDNLPv2 packet: an optional fragment holding the
// enclosed network-layer packet, plus the header fields understood by this
// library.
type Packet struct {
	fragment       []byte
	nack           *NetworkNack
	incomingFaceId *uint64
	congestionMark *uint64
}

// NewPacket creates an empty Packet.
func NewPacket() *Packet {
	return &Packet{}
}

// HasFragment returns whether the packet carries a fragment.
func (p *Packet) HasFragment() bool {
	return len(p.fragment) > 0
}

// Fragment returns the bytes of the enclosed network-layer packet, or nil if
// there is none.
func (p *Packet) Fragment() []byte {
	return p.fragment
}

// SetFragment sets the bytes of the enclosed network-layer packet.
func (p *Packet) SetFragment(fragment []byte) {
	p.fragment = fragment
}

// Nack returns the Nack header, or nil if there is none.
func (p *Packet) Nack() *NetworkNack {
	return p.nack
}

// SetNack sets the Nack header. Set to nil to remove it.
func (p *Packet) SetNack(nack *NetworkNack) {
	p.nack = nack
}

// IncomingFaceId returns the incoming face ID header, or nil if there is none.
func (p *Packet) IncomingFaceId() *uint64 {
	if p.incomingFaceId == nil {
		return nil
	}
	faceId := *p.incomingFaceId
	return &faceId
}

// SetIncomingFaceId sets the incoming face ID header. Set to nil to remove it.
func (p *Packet) SetIncomingFaceId(faceId *uint64) {
	if faceId == nil {
		p.incomingFaceId = nil
		return
	}
	value := *faceId
	p.incomingFaceId = &value
}

// CongestionMark returns the congestion mark header, or nil if there is none.
func (p *Packet) CongestionMark() *uint64 {
	if p.congestionMark == nil {
		return nil
	}
	mark := *p.congestionMark
	return &mark
}

// SetCongestionMark sets the congestion mark header. Set to nil to remove it.
func (p *Packet) SetCongestionMark(mark *uint64) {
	if mark == nil {
		p.congestionMark = nil
		return
	}
	value := *mark
	p.congestionMark = &value
}

// Clear removes the fragment and all header fields.
func (p *Packet) Clear() {
	p.fragment = nil
	p.nack = nil
	p.incomingFaceId = nil
	p.congestionMark = nil
}

// IsLpPacket returns whether input begins an LpPacket TLV, as opposed to a
// bare network-layer packet.
func IsLpPacket(input []byte) bool {
	tlvType, _, _, err := tlv.DecodeTypeLength(input)
	return err == nil && tlvType == LpPacket
}

// EncodePacket encodes packet as an LpPacket TLV.
func EncodePacket(packet *Packet) ([]byte, error) {
	encoder := tlv.NewEncoder()
	saveLen := encoder.Len()

	// Encode backwards. The fragment is always the last field.
	if packet.HasFragment() {
		encoder.WriteBlobTlv(Fragment, packet.fragment)
	}
	encoder.WriteOptionalNNITlv(CongestionMark, packet.congestionMark)
	encoder.WriteOptionalNNITlv(IncomingFaceID, packet.incomingFaceId)
	if packet.nack != nil {
		nackSaveLen := encoder.Len()
		if packet.nack.reason == NackReasonOtherCode {
			encoder.WriteNNITlv(NackReasonType, packet.nack.otherReasonCode)
		} else if packet.nack.reason != NackReasonNone {
			encoder.WriteNNITlv(NackReasonType, uint64(packet.nack.reason))
		}
		encoder.WriteTypeAndLength(Nack, encoder.Len()-nackSaveLen)
	}

	encoder.WriteTypeAndLength(LpPacket, encoder.Len()-saveLen)
	return encoder.Output(), nil
}

// DecodePacket decodes input as an LpPacket TLV and sets the fields of
// packet, replacing any existing values. Unrecognized headers are skipped if
// ignorable; a critical unrecognized header fails the decode.
func DecodePacket(packet *Packet, input []byte) error {
	packet.Clear()

	decoder := tlv.NewDecoder(input)
	endOffset, err := decoder.ReadNestedTlvsStart(LpPacket)
	if err != nil {
		return err
	}

	for decoder.Offset() < endOffset {
		fieldType, fieldLength, err := readFieldHeader(decoder, endOffset)
		if err != nil {
			return err
		}
		fieldEndOffset := decoder.Offset() + fieldLength

		switch fieldType {
		case Fragment:
			// The fragment is the last field, so this ends the scan.
			packet.fragment = decoder.Slice(decoder.Offset(), fieldEndOffset)
			return nil
		case Nack:
			nack := NewNetworkNack()
			code, err := decoder.ReadOptionalNNITlv(NackReasonType, fieldEndOffset)
			if err != nil {
				return err
			}
			if code != nil {
				switch NackReason(*code) {
				case NackReasonCongestion, NackReasonDuplicate, NackReasonNoRoute:
					nack.SetReason(NackReason(*code))
				default:
					nack.SetOtherReasonCode(*code)
				}
			}
			packet.nack = nack
			decoder.Seek(fieldEndOffset)
		case IncomingFaceID:
			faceId, err := decoder.ReadNNI(fieldLength)
			if err != nil {
				return err
			}
			packet.incomingFaceId = &faceId
		case CongestionMark:
			mark, err := decoder.ReadNNI(fieldLength)
			if err != nil {
				return err
			}
			packet.congestionMark = &mark
		default:
			if IsCritical(fieldType) {
				return errors.WithMessagef(tlv.ErrUnrecognizedCritical,
					"LpPacket header type %d", fieldType)
			}
			decoder.Seek(fieldEndOffset)
		}
	}
	return nil
}

// readFieldHeader reads the type and length of the next LpPacket header and
// checks that its value fits within the packet.
func readFieldHeader(decoder *tlv.Decoder, endOffset int) (uint32, int, error) {
	fieldType, err := decoder.ReadVarNum()
	if err != nil {
		return 0, 0, err
	}
	fieldLength, err := decoder.ReadVarNum()
	if err != nil {
		return 0, 0, err
	}
	if decoder.Offset()+int(fieldLength) > endOffset {
		return 0, 0, errors.WithMessage(tlv.ErrBufferTooShort, "LpPacket header")
	}
	return uint32(fieldType), int(fieldLength), nil
}
