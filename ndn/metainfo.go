/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import "time"

// ContentType is the MetaInfo content type code. Codes other than the named
// ones pass through encode and decode unchanged.
type ContentType uint64

// Named content type codes.
const (
	ContentTypeBlob ContentType = 0
	ContentTypeLink ContentType = 1
	ContentTypeKey  ContentType = 2
	ContentTypeNack ContentType = 3
)

// MetaInfo holds the meta information of a Data packet.
type MetaInfo struct {
	contentType     ContentType
	freshnessPeriod *time.Duration
	finalBlockId    *Component

	changeCount uint64
}

// ContentType returns the content type.
func (m *MetaInfo) ContentType() ContentType {
	return m.contentType
}

// SetContentType sets the content type.
func (m *MetaInfo) SetContentType(contentType ContentType) {
	m.contentType = contentType
	m.changeCount++
}

// FreshnessPeriod returns the freshness period of the Data packet, or nil if
// unset.
func (m *MetaInfo) FreshnessPeriod() *time.Duration {
	if m.freshnessPeriod == nil {
		return nil
	}
	freshness := new(time.Duration)
	*freshness = *m.freshnessPeriod
	return freshness
}

// SetFreshnessPeriod sets the freshness period of the Data packet (or unsets
// it if nil is specified).
func (m *MetaInfo) SetFreshnessPeriod(freshnessPeriod *time.Duration) {
	if freshnessPeriod == nil {
		m.freshnessPeriod = nil
	} else {
		m.freshnessPeriod = new(time.Duration)
		*m.freshnessPeriod = *freshnessPeriod
	}
	m.changeCount++
}

// FinalBlockId returns the final block id of the Data packet, or nil if
// unset.
func (m *MetaInfo) FinalBlockId() *Component {
	if m.finalBlockId == nil {
		return nil
	}
	finalBlockId := new(Component)
	*finalBlockId = *m.finalBlockId
	return finalBlockId
}

// SetFinalBlockId sets the final block id of the Data packet (or unsets it if
// nil is specified).
func (m *MetaInfo) SetFinalBlockId(finalBlockId *Component) {
	if finalBlockId == nil {
		m.finalBlockId = nil
	} else {
		m.finalBlockId = new(Component)
		*m.finalBlockId = *finalBlockId
	}
	m.changeCount++
}

// ChangeCount returns the number of times the MetaInfo has been mutated.
func (m *MetaInfo) ChangeCount() uint64 {
	return m.changeCount
}
