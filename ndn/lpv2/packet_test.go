/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package lpv2_test

import (
	"testing"

	"github.com/named-data/GoNDN2/ndn/lpv2"
	"github.com/named-data/GoNDN2/ndn/tlv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkNackAccessors(t *testing.T) {
	nack := lpv2.NewNetworkNack()
	assert.Equal(t, lpv2.NackReasonNone, nack.Reason())
	assert.Equal(t, "None", nack.String())

	nack.SetReason(lpv2.NackReasonNoRoute)
	assert.Equal(t, lpv2.NackReasonNoRoute, nack.Reason())
	assert.Equal(t, "NoRoute", nack.String())

	nack.SetOtherReasonCode(777)
	assert.Equal(t, lpv2.NackReasonOtherCode, nack.Reason())
	assert.Equal(t, uint64(777), nack.OtherReasonCode())
	assert.Equal(t, "OtherCode(777)", nack.String())

	// A named reason discards the unrecognized code
	nack.SetReason(lpv2.NackReasonCongestion)
	assert.Equal(t, "Congestion", nack.String())
	assert.Equal(t, uint64(0), nack.OtherReasonCode())
}

func TestPacketAccessors(t *testing.T) {
	packet := lpv2.NewPacket()
	assert.False(t, packet.HasFragment())
	assert.Nil(t, packet.Fragment())
	assert.Nil(t, packet.Nack())
	assert.Nil(t, packet.IncomingFaceId())
	assert.Nil(t, packet.CongestionMark())

	packet.SetFragment([]byte{0x01, 0x02})
	assert.True(t, packet.HasFragment())

	faceId := uint64(4)
	packet.SetIncomingFaceId(&faceId)
	faceId = 5
	assert.Equal(t, uint64(4), *packet.IncomingFaceId())
	*packet.IncomingFaceId() = 6
	assert.Equal(t, uint64(4), *packet.IncomingFaceId())

	mark := uint64(1)
	packet.SetCongestionMark(&mark)
	assert.Equal(t, uint64(1), *packet.CongestionMark())

	packet.Clear()
	assert.False(t, packet.HasFragment())
	assert.Nil(t, packet.IncomingFaceId())
	assert.Nil(t, packet.CongestionMark())
}

func TestIsLpPacket(t *testing.T) {
	assert.True(t, lpv2.IsLpPacket([]byte{0x64, 0x00}))
	assert.False(t, lpv2.IsLpPacket([]byte{
		0x05, 0x0E,
		0x07, 0x06, 0x08, 0x04, 0x74, 0x65, 0x73, 0x74,
		0x0A, 0x04, 0x01, 0x02, 0x03, 0x04,
	}))
	assert.False(t, lpv2.IsLpPacket(nil))
}

func TestEncodeNack(t *testing.T) {
	interestEncoding := []byte{
		0x05, 0x0E,
		0x07, 0x06, 0x08, 0x04, 0x74, 0x65, 0x73, 0x74,
		0x0A, 0x04, 0x01, 0x02, 0x03, 0x04,
	}

	packet := lpv2.NewPacket()
	nack := lpv2.NewNetworkNack()
	nack.SetReason(lpv2.NackReasonNoRoute)
	packet.SetNack(nack)
	packet.SetFragment(interestEncoding)

	encoding, err := lpv2.EncodePacket(packet)
	require.NoError(t, err)
	expected := []byte{
		0x64, 0x1B,
		0xFD, 0x03, 0x20, 0x05, 0xFD, 0x03, 0x21, 0x01, 0x96,
		0x50, 0x10,
	}
	expected = append(expected, interestEncoding...)
	assert.Equal(t, expected, encoding)

	decoded := lpv2.NewPacket()
	require.NoError(t, lpv2.DecodePacket(decoded, encoding))
	require.NotNil(t, decoded.Nack())
	assert.Equal(t, lpv2.NackReasonNoRoute, decoded.Nack().Reason())
	assert.Equal(t, interestEncoding, decoded.Fragment())
}

func TestEncodeHeaders(t *testing.T) {
	packet := lpv2.NewPacket()
	faceId := uint64(4)
	packet.SetIncomingFaceId(&faceId)
	mark := uint64(1)
	packet.SetCongestionMark(&mark)
	packet.SetFragment([]byte{0x01, 0x02, 0x03})

	encoding, err := lpv2.EncodePacket(packet)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x64, 0x0F,
		0xFD, 0x03, 0x31, 0x01, 0x04,
		0xFD, 0x03, 0x40, 0x01, 0x01,
		0x50, 0x03, 0x01, 0x02, 0x03,
	}, encoding)

	// Decoding replaces the previous contents entirely
	decoded := lpv2.NewPacket()
	decoded.SetNack(lpv2.NewNetworkNack())
	require.NoError(t, lpv2.DecodePacket(decoded, encoding))
	assert.Nil(t, decoded.Nack())
	require.NotNil(t, decoded.IncomingFaceId())
	assert.Equal(t, uint64(4), *decoded.IncomingFaceId())
	require.NotNil(t, decoded.CongestionMark())
	assert.Equal(t, uint64(1), *decoded.CongestionMark())
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, decoded.Fragment())
}

func TestEncodeBareNack(t *testing.T) {
	// A Nack header without a fragment is how an idle-timeout Nack arrives
	packet := lpv2.NewPacket()
	nack := lpv2.NewNetworkNack()
	nack.SetReason(lpv2.NackReasonCongestion)
	packet.SetNack(nack)

	encoding, err := lpv2.EncodePacket(packet)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x64, 0x09,
		0xFD, 0x03, 0x20, 0x05, 0xFD, 0x03, 0x21, 0x01, 0x32,
	}, encoding)

	decoded := lpv2.NewPacket()
	require.NoError(t, lpv2.DecodePacket(decoded, encoding))
	require.NotNil(t, decoded.Nack())
	assert.Equal(t, lpv2.NackReasonCongestion, decoded.Nack().Reason())
	assert.False(t, decoded.HasFragment())
}

func TestNackReasonNone(t *testing.T) {
	packet := lpv2.NewPacket()
	packet.SetNack(lpv2.NewNetworkNack())

	encoding, err := lpv2.EncodePacket(packet)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x64, 0x04, 0xFD, 0x03, 0x20, 0x00}, encoding)

	decoded := lpv2.NewPacket()
	require.NoError(t, lpv2.DecodePacket(decoded, encoding))
	require.NotNil(t, decoded.Nack())
	assert.Equal(t, lpv2.NackReasonNone, decoded.Nack().Reason())
}

func TestNackOtherReasonCode(t *testing.T) {
	packet := lpv2.NewPacket()
	nack := lpv2.NewNetworkNack()
	nack.SetOtherReasonCode(777)
	packet.SetNack(nack)

	encoding, err := lpv2.EncodePacket(packet)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x64, 0x0A,
		0xFD, 0x03, 0x20, 0x06, 0xFD, 0x03, 0x21, 0x02, 0x03, 0x09,
	}, encoding)

	decoded := lpv2.NewPacket()
	require.NoError(t, lpv2.DecodePacket(decoded, encoding))
	require.NotNil(t, decoded.Nack())
	assert.Equal(t, lpv2.NackReasonOtherCode, decoded.Nack().Reason())
	assert.Equal(t, uint64(777), decoded.Nack().OtherReasonCode())
}

func TestDecodeSkipsIgnorableHeader(t *testing.T) {
	// Type 0x324 lies in the reserved range with its two low bits clear
	packet := lpv2.NewPacket()
	require.NoError(t, lpv2.DecodePacket(packet, []byte{
		0x64, 0x0A,
		0xFD, 0x03, 0x24, 0x01, 0x00,
		0x50, 0x03, 0x01, 0x02, 0x03,
	}))
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, packet.Fragment())
}

func TestDecodeRejectsCriticalHeader(t *testing.T) {
	// Type 0x322 lies in the reserved range but has a low bit set
	packet := lpv2.NewPacket()
	err := lpv2.DecodePacket(packet, []byte{
		0x64, 0x05,
		0xFD, 0x03, 0x22, 0x01, 0x00,
	})
	assert.ErrorIs(t, err, tlv.ErrUnrecognizedCritical)

	// A header type outside the reserved range is always critical
	err = lpv2.DecodePacket(packet, []byte{
		0x64, 0x04,
		0x63, 0x02, 0x01, 0x02,
	})
	assert.ErrorIs(t, err, tlv.ErrUnrecognizedCritical)
}
