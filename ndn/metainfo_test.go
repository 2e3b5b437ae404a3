/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
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

func TestMetaInfoAccessors(t *testing.T) {
	metaInfo := new(ndn.MetaInfo)
	assert.Equal(t, ndn.ContentTypeBlob, metaInfo.ContentType())
	assert.Nil(t, metaInfo.FreshnessPeriod())
	assert.Nil(t, metaInfo.FinalBlockId())

	metaInfo.SetContentType(ndn.ContentTypeNack)
	assert.Equal(t, ndn.ContentTypeNack, metaInfo.ContentType())

	freshness := time.Second
	metaInfo.SetFreshnessPeriod(&freshness)
	require.NotNil(t, metaInfo.FreshnessPeriod())
	assert.Equal(t, time.Second, *metaInfo.FreshnessPeriod())

	// The setter and getter copy the value
	freshness = 2 * time.Second
	assert.Equal(t, time.Second, *metaInfo.FreshnessPeriod())
	*metaInfo.FreshnessPeriod() = 3 * time.Second
	assert.Equal(t, time.Second, *metaInfo.FreshnessPeriod())

	metaInfo.SetFreshnessPeriod(nil)
	assert.Nil(t, metaInfo.FreshnessPeriod())

	finalBlockId := ndn.ComponentFromSegment(9)
	metaInfo.SetFinalBlockId(&finalBlockId)
	require.NotNil(t, metaInfo.FinalBlockId())
	assert.True(t, finalBlockId.Equals(*metaInfo.FinalBlockId()))
	metaInfo.SetFinalBlockId(nil)
	assert.Nil(t, metaInfo.FinalBlockId())
}

func TestMetaInfoChangeCount(t *testing.T) {
	metaInfo := new(ndn.MetaInfo)
	count := metaInfo.ChangeCount()

	metaInfo.SetContentType(ndn.ContentTypeLink)
	assert.Greater(t, metaInfo.ChangeCount(), count)

	count = metaInfo.ChangeCount()
	freshness := time.Minute
	metaInfo.SetFreshnessPeriod(&freshness)
	assert.Greater(t, metaInfo.ChangeCount(), count)
}

func TestMetaInfoUnknownContentTypeRoundTrip(t *testing.T) {
	wf := ndn.NewTlvWireFormat()
	data := ndn.NewData(nameFromString(t, "/test"))
	data.MetaInfo().SetContentType(ndn.ContentType(9))

	encoding, err := data.WireEncode(wf)
	require.NoError(t, err)

	decoded := ndn.NewData(ndn.NewName())
	require.NoError(t, decoded.WireDecode(encoding.Bytes(), wf))
	assert.Equal(t, ndn.ContentType(9), decoded.MetaInfo().ContentType())
}
