/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2024 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn_test

import (
	"testing"
	"time"

	"github.com/named-data/GoNDN2/ndn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDefaults(t *testing.T) {
	name := nameFromString(t, "/test")
	data := ndn.NewData(name)

	assert.True(t, data.Name().Equals(name))
	assert.Equal(t, 0, data.Content().Size())
	assert.Equal(t, ndn.ContentTypeBlob, data.MetaInfo().ContentType())
	assert.Nil(t, data.MetaInfo().FreshnessPeriod())
	assert.Nil(t, data.MetaInfo().FinalBlockId())
	assert.Equal(t, ndn.DigestSha256Type, data.Signature().Type())
	assert.Empty(t, data.Signature().Value())

	// The Data packet holds its own copy of the name
	name.Append(ndn.NewGenericComponent([]byte("more")))
	assert.Equal(t, 1, data.Name().Size())
}

func TestDataEncodeDefault(t *testing.T) {
	wf := ndn.NewTlvWireFormat()
	data := ndn.NewData(nameFromString(t, "/test"))

	encoding, err := data.WireEncode(wf)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x06, 0x13,
		0x07, 0x06, 0x08, 0x04, 0x74, 0x65, 0x73, 0x74,
		0x14, 0x00,
		0x15, 0x00,
		0x16, 0x03, 0x1B, 0x01, 0x00,
		0x17, 0x00,
	}, encoding.Bytes())
	assert.Equal(t, 2, encoding.SignedPortionBeginOffset())
	assert.Equal(t, 19, encoding.SignedPortionEndOffset())

	// Name through SignatureInfo
	assert.Equal(t, []byte{
		0x07, 0x06, 0x08, 0x04, 0x74, 0x65, 0x73, 0x74,
		0x14, 0x00,
		0x15, 0x00,
		0x16, 0x03, 0x1B, 0x01, 0x00,
	}, encoding.SignedPortion())

	// An unchanged packet reuses the cached encoding
	again, err := data.WireEncode(wf)
	require.NoError(t, err)
	assert.Equal(t, encoding.Bytes(), again.Bytes())
}

func TestDataEncodeContent(t *testing.T) {
	wf := ndn.NewTlvWireFormat()
	data := ndn.NewData(nameFromString(t, "/test"))
	data.SetContent(ndn.NewBlob([]byte{0x01, 0x02, 0x03}, false))
	data.Signature().SetValue([]byte{0xAB, 0xCD})

	encoding, err := data.WireEncode(wf)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x06, 0x18,
		0x07, 0x06, 0x08, 0x04, 0x74, 0x65, 0x73, 0x74,
		0x14, 0x00,
		0x15, 0x03, 0x01, 0x02, 0x03,
		0x16, 0x03, 0x1B, 0x01, 0x00,
		0x17, 0x02, 0xAB, 0xCD,
	}, encoding.Bytes())

	decoded := ndn.NewData(ndn.NewName())
	require.NoError(t, decoded.WireDecode(encoding.Bytes(), wf))
	assert.Equal(t, "/test", decoded.Name().String())
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, decoded.Content().Bytes())
	assert.Equal(t, ndn.DigestSha256Type, decoded.Signature().Type())
	assert.Equal(t, []byte{0xAB, 0xCD}, decoded.Signature().Value())
}

func TestDataEncodeMetaInfo(t *testing.T) {
	wf := ndn.NewTlvWireFormat()
	data := ndn.NewData(nameFromString(t, "/test"))
	data.MetaInfo().SetContentType(ndn.ContentTypeKey)
	freshness := 5 * time.Second
	data.MetaInfo().SetFreshnessPeriod(&freshness)
	finalBlockId := ndn.NewGenericComponent([]byte("ndn"))
	data.MetaInfo().SetFinalBlockId(&finalBlockId)

	encoding, err := data.WireEncode(wf)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x06, 0x21,
		0x07, 0x06, 0x08, 0x04, 0x74, 0x65, 0x73, 0x74,
		0x14, 0x0E,
		0x18, 0x01, 0x02,
		0x19, 0x02, 0x13, 0x88,
		0x1A, 0x05, 0x08, 0x03, 0x6E, 0x64, 0x6E,
		0x15, 0x00,
		0x16, 0x03, 0x1B, 0x01, 0x00,
		0x17, 0x00,
	}, encoding.Bytes())

	decoded := ndn.NewData(ndn.NewName())
	require.NoError(t, decoded.WireDecode(encoding.Bytes(), wf))
	assert.Equal(t, ndn.ContentTypeKey, decoded.MetaInfo().ContentType())
	require.NotNil(t, decoded.MetaInfo().FreshnessPeriod())
	assert.Equal(t, 5*time.Second, *decoded.MetaInfo().FreshnessPeriod())
	require.NotNil(t, decoded.MetaInfo().FinalBlockId())
	assert.Equal(t, "ndn", decoded.MetaInfo().FinalBlockId().String())
}

func TestDataDecodeWithoutMetaInfo(t *testing.T) {
	wf := ndn.NewTlvWireFormat()
	input := []byte{
		0x06, 0x0F,
		0x07, 0x06, 0x08, 0x04, 0x74, 0x65, 0x73, 0x74,
		0x16, 0x03, 0x1B, 0x01, 0x00,
		0x17, 0x00,
	}

	data := ndn.NewData(ndn.NewName())
	require.NoError(t, data.WireDecode(input, wf))
	assert.Equal(t, "/test", data.Name().String())
	assert.Equal(t, ndn.ContentTypeBlob, data.MetaInfo().ContentType())
	assert.Nil(t, data.MetaInfo().FreshnessPeriod())
	assert.Equal(t, 0, data.Content().Size())
}

func TestDataDecodeOffsets(t *testing.T) {
	wf := ndn.NewTlvWireFormat()
	data := ndn.NewData(nameFromString(t, "/test"))
	encoding, err := data.WireEncode(wf)
	require.NoError(t, err)

	decoded := ndn.NewData(ndn.NewName())
	require.NoError(t, decoded.WireDecode(encoding.Bytes(), wf))
	redone, err := decoded.WireEncode(wf)
	require.NoError(t, err)
	assert.Equal(t, encoding.Bytes(), redone.Bytes())
	assert.Equal(t, encoding.SignedPortionBeginOffset(), redone.SignedPortionBeginOffset())
	assert.Equal(t, encoding.SignedPortionEndOffset(), redone.SignedPortionEndOffset())
}

func TestDataKeyLocatorRoundTrip(t *testing.T) {
	wf := ndn.NewTlvWireFormat()
	keyName := nameFromString(t, "/key/name")

	data := ndn.NewData(nameFromString(t, "/test"))
	data.Signature().SetType(ndn.SignatureSha256WithRsaType)
	data.Signature().KeyLocator().SetKeyName(keyName)
	data.Signature().SetValue([]byte{0x01})

	encoding, err := data.WireEncode(wf)
	require.NoError(t, err)

	decoded := ndn.NewData(ndn.NewName())
	require.NoError(t, decoded.WireDecode(encoding.Bytes(), wf))
	assert.Equal(t, ndn.SignatureSha256WithRsaType, decoded.Signature().Type())
	assert.Equal(t, ndn.KeyLocatorKeyName, decoded.Signature().KeyLocator().Type())
	assert.True(t, keyName.Equals(decoded.Signature().KeyLocator().KeyName()))

	digestLocator := ndn.NewData(nameFromString(t, "/test"))
	digestLocator.Signature().SetType(ndn.SignatureHmacWithSha256Type)
	digestLocator.Signature().KeyLocator().SetKeyData(ndn.NewBlob([]byte{0x10, 0x20}, false))

	encoding, err = digestLocator.WireEncode(wf)
	require.NoError(t, err)
	require.NoError(t, decoded.WireDecode(encoding.Bytes(), wf))
	assert.Equal(t, ndn.SignatureHmacWithSha256Type, decoded.Signature().Type())
	assert.Equal(t, ndn.KeyLocatorKeyDigest, decoded.Signature().KeyLocator().Type())
	assert.Equal(t, []byte{0x10, 0x20}, decoded.Signature().KeyLocator().KeyData().Bytes())
}

func TestDataValidityPeriodRoundTrip(t *testing.T) {
	wf := ndn.NewTlvWireFormat()
	notBefore := time.Date(2022, time.November, 13, 8, 58, 49, 0, time.UTC)
	notAfter := time.Date(2023, time.November, 13, 8, 58, 49, 0, time.UTC)

	data := ndn.NewData(nameFromString(t, "/test"))
	data.Signature().SetType(ndn.SignatureSha256WithEcdsaType)
	data.Signature().KeyLocator().SetKeyName(nameFromString(t, "/key"))
	data.Signature().ValidityPeriod().SetPeriod(notBefore, notAfter)

	encoding, err := data.WireEncode(wf)
	require.NoError(t, err)

	decoded := ndn.NewData(ndn.NewName())
	require.NoError(t, decoded.WireDecode(encoding.Bytes(), wf))
	require.True(t, decoded.Signature().ValidityPeriod().HasPeriod())
	assert.True(t, notBefore.Equal(decoded.Signature().ValidityPeriod().NotBefore()))
	assert.True(t, notAfter.Equal(decoded.Signature().ValidityPeriod().NotAfter()))
	assert.True(t, decoded.Signature().ValidityPeriod().IsValid(
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, decoded.Signature().ValidityPeriod().IsValid(
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDataGenericSignature(t *testing.T) {
	wf := ndn.NewTlvWireFormat()
	input := []byte{
		0x06, 0x15,
		0x07, 0x06, 0x08, 0x04, 0x74, 0x65, 0x73, 0x74,
		0x14, 0x00,
		0x15, 0x00,
		0x16, 0x03, 0x1B, 0x01, 0xC8,
		0x17, 0x02, 0xAB, 0xCD,
	}

	data := ndn.NewData(ndn.NewName())
	require.NoError(t, data.WireDecode(input, wf))
	assert.Equal(t, ndn.GenericSignatureType, data.Signature().Type())
	assert.Equal(t, uint64(0xC8), data.Signature().TypeCode())
	assert.Equal(t, []byte{0x16, 0x03, 0x1B, 0x01, 0xC8}, data.Signature().SignatureInfoEncoding())
	assert.Equal(t, "GenericSignature(200)", data.Signature().String())

	// Force a fresh encoding; the unmodeled SignatureInfo is emitted verbatim
	data.Signature().SetValue(data.Signature().Value())
	encoding, err := data.WireEncode(wf)
	require.NoError(t, err)
	assert.Equal(t, input, encoding.Bytes())
}

func TestDataFullName(t *testing.T) {
	wf := ndn.NewTlvWireFormat()
	data := ndn.NewData(nameFromString(t, "/a/b"))

	fullName, err := data.FullName(wf)
	require.NoError(t, err)
	require.Equal(t, 3, fullName.Size())
	assert.True(t, nameFromString(t, "/a/b").Match(fullName))
	assert.True(t, fullName.Get(-1).IsImplicitSha256Digest())
	assert.Equal(t, 32, fullName.Get(-1).Size())

	// Stable across calls
	again, err := data.FullName(wf)
	require.NoError(t, err)
	assert.True(t, fullName.Equals(again))

	// The digest follows the encoding
	data.SetContent(ndn.NewBlob([]byte{0x01}, false))
	changed, err := data.FullName(wf)
	require.NoError(t, err)
	assert.False(t, fullName.Equals(changed))
}

func TestDataString(t *testing.T) {
	data := ndn.NewData(nameFromString(t, "/test"))
	assert.Equal(t, "Data(Name=/test, ContentLen=0, Signature=DigestSha256)", data.String())

	data.MetaInfo().SetContentType(ndn.ContentTypeKey)
	freshness := 5 * time.Second
	data.MetaInfo().SetFreshnessPeriod(&freshness)
	data.SetContent(ndn.NewBlob([]byte{0x01, 0x02, 0x03}, false))
	assert.Equal(t,
		"Data(Name=/test, ContentType=2, FreshnessPeriod=5000ms, ContentLen=3, Signature=DigestSha256)",
		data.String())
}
