/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"crypto/sha256"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/named-data/GoNDN2/ndn"
	"github.com/named-data/GoNDN2/ndn/tlv"
)

func TestDigestSha256SignerSignsName(t *testing.T) {
	name, err := ndn.NameFromString("/localhost/nfd/rib/register/param")
	require.NoError(t, err)
	interest := ndn.NewInterest(name)

	require.NoError(t, DigestSha256Signer{}.Sign(interest, nil, nil))
	require.Equal(t, 7, interest.Name().Size())

	// SignatureInfo component: SignatureInfo TLV holding SignatureType 0
	assert.Equal(t, []byte{0x16, 0x03, 0x1b, 0x01, 0x00}, interest.Name().Get(5).Value())

	sigValue := interest.Name().Get(6).Value()
	require.Len(t, sigValue, 34)
	assert.Equal(t, byte(0x17), sigValue[0])
	assert.Equal(t, byte(0x20), sigValue[1])

	// The signed portion excludes the final component, so it is unchanged by
	// replacing the placeholder and the digest must verify against it.
	encoding, err := interest.WireEncode(nil)
	require.NoError(t, err)
	digest := sha256.Sum256(encoding.SignedPortion())
	assert.Equal(t, digest[:], sigValue[2:])
}

func TestCommandInterestGeneratorTimestamps(t *testing.T) {
	generator := new(commandInterestGenerator)

	name, err := ndn.NameFromString("/localhost/nfd/rib/register")
	require.NoError(t, err)

	first := ndn.NewInterest(name)
	require.NoError(t, generator.generate(first, DigestSha256Signer{}, nil, nil))
	second := ndn.NewInterest(name)
	require.NoError(t, generator.generate(second, DigestSha256Signer{}, nil, nil))

	// timestamp, nonce, SignatureInfo, SignatureValue appended
	require.Equal(t, 8, first.Name().Size())
	require.Equal(t, 8, second.Name().Size())

	firstTimestamp, err := tlv.DecodeNNI(first.Name().Get(4).Value())
	require.NoError(t, err)
	secondTimestamp, err := tlv.DecodeNNI(second.Name().Get(4).Value())
	require.NoError(t, err)
	assert.Greater(t, secondTimestamp, firstTimestamp)

	assert.Len(t, first.Name().Get(5).Value(), 8)

	require.NotNil(t, first.Lifetime())
	assert.Equal(t, 2500*time.Millisecond, *first.Lifetime())
}

func TestCommandInterestGeneratorKeepsLifetime(t *testing.T) {
	generator := new(commandInterestGenerator)

	name, err := ndn.NameFromString("/localhost/nfd/rib/register")
	require.NoError(t, err)
	interest := ndn.NewInterest(name)
	lifetime := time.Second
	interest.SetLifetime(&lifetime)

	require.NoError(t, generator.generate(interest, DigestSha256Signer{}, nil, nil))
	require.NotNil(t, interest.Lifetime())
	assert.Equal(t, time.Second, *interest.Lifetime())
}
