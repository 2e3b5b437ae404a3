/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2024 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"bytes"

	"github.com/named-data/GoNDN2/ndn"
	"github.com/named-data/GoNDN2/ndn/lpv2"
	"golang.org/x/exp/slices"
)

// PendingInterestEntry ties an expressed Interest to the callbacks that
// should fire when it is satisfied, Nack'd, or times out. The table owns the
// entry until it is extracted or removed; the removed flag makes a timeout
// that races a satisfaction harmless.
type PendingInterestEntry struct {
	id            uint64
	interest      *ndn.Interest
	onData        func(*ndn.Interest, *ndn.Data)
	onTimeout     func(*ndn.Interest)
	onNetworkNack func(*ndn.Interest, *lpv2.NetworkNack)
	removed       bool
}

// Id returns the entry id.
func (e *PendingInterestEntry) Id() uint64 {
	return e.id
}

// Interest returns the Interest held by the entry.
func (e *PendingInterestEntry) Interest() *ndn.Interest {
	return e.interest
}

// OnData returns the Data callback of the entry, or nil.
func (e *PendingInterestEntry) OnData() func(*ndn.Interest, *ndn.Data) {
	return e.onData
}

// OnTimeout returns the timeout callback of the entry, or nil.
func (e *PendingInterestEntry) OnTimeout() func(*ndn.Interest) {
	return e.onTimeout
}

// OnNetworkNack returns the Nack callback of the entry, or nil.
func (e *PendingInterestEntry) OnNetworkNack() func(*ndn.Interest, *lpv2.NetworkNack) {
	return e.onNetworkNack
}

// IsRemoved returns whether the entry has been removed from the table.
func (e *PendingInterestEntry) IsRemoved() bool {
	return e.removed
}

// PendingInterestTable tracks the Interests expressed through a Node that
// have not yet been satisfied, Nack'd, timed out, or removed.
type PendingInterestTable struct {
	table          []*PendingInterestEntry
	removeRequests []uint64
}

// NewPendingInterestTable creates an empty PendingInterestTable.
func NewPendingInterestTable() *PendingInterestTable {
	return new(PendingInterestTable)
}

// Add creates an entry for the Interest and appends it. When a removal of
// this id was requested before the entry existed, the request is consumed
// and no entry is added.
func (p *PendingInterestTable) Add(id uint64, interest *ndn.Interest,
	onData func(*ndn.Interest, *ndn.Data), onTimeout func(*ndn.Interest),
	onNetworkNack func(*ndn.Interest, *lpv2.NetworkNack)) *PendingInterestEntry {
	if i := slices.Index(p.removeRequests, id); i >= 0 {
		p.removeRequests = slices.Delete(p.removeRequests, i, i+1)
		return nil
	}

	entry := &PendingInterestEntry{
		id:            id,
		interest:      interest,
		onData:        onData,
		onTimeout:     onTimeout,
		onNetworkNack: onNetworkNack,
	}
	p.table = append(p.table, entry)
	return entry
}

// ExtractEntriesForExpressedInterest removes and returns the entries whose
// Interest matches the name, oldest first. Every returned entry is marked
// removed before this returns, so its scheduled timeout does nothing.
func (p *PendingInterestTable) ExtractEntriesForExpressedInterest(name *ndn.Name) []*PendingInterestEntry {
	var entries []*PendingInterestEntry
	kept := p.table[:0]
	for _, entry := range p.table {
		if entry.interest.MatchesName(name) {
			entry.removed = true
			entries = append(entries, entry)
		} else {
			kept = append(kept, entry)
		}
	}
	p.table = kept
	return entries
}

// ExtractEntriesForNackInterest removes and returns the entries that hold an
// OnNetworkNack callback and whose Interest has the same encoding as the
// Nack'd Interest. Entries without the callback stay pending until they time
// out.
func (p *PendingInterestTable) ExtractEntriesForNackInterest(interest *ndn.Interest,
	wireFormat ndn.WireFormat) ([]*PendingInterestEntry, error) {
	encoding, err := interest.WireEncode(wireFormat)
	if err != nil {
		return nil, err
	}

	var entries []*PendingInterestEntry
	kept := p.table[:0]
	for _, entry := range p.table {
		matched := false
		if entry.onNetworkNack != nil {
			entryEncoding, err := entry.interest.WireEncode(wireFormat)
			if err == nil && bytes.Equal(entryEncoding.Bytes(), encoding.Bytes()) {
				matched = true
			}
		}
		if matched {
			entry.removed = true
			entries = append(entries, entry)
		} else {
			kept = append(kept, entry)
		}
	}
	p.table = kept
	return entries, nil
}

// RemovePendingInterest removes the entry with the given id. When no entry
// has the id, the id is recorded so that an Add racing this removal becomes
// a no-op. Removal is idempotent.
func (p *PendingInterestTable) RemovePendingInterest(id uint64) {
	found := false
	kept := p.table[:0]
	for _, entry := range p.table {
		if entry.id == id {
			entry.removed = true
			found = true
		} else {
			kept = append(kept, entry)
		}
	}
	p.table = kept

	if !found {
		p.removeRequests = append(p.removeRequests, id)
	}
}

// RemoveEntry removes the entry unless it was already removed, and reports
// whether this call removed it.
func (p *PendingInterestTable) RemoveEntry(entry *PendingInterestEntry) bool {
	if entry.removed {
		return false
	}
	entry.removed = true

	if i := slices.Index(p.table, entry); i >= 0 {
		p.table = slices.Delete(p.table, i, i+1)
	}
	return true
}

// Size returns the number of pending entries.
func (p *PendingInterestTable) Size() int {
	return len(p.table)
}
