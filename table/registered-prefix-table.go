/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"github.com/named-data/GoNDN2/ndn"
	"golang.org/x/exp/slices"
)

// RegisteredPrefixEntry records a prefix registered with the forwarder and
// the id of the InterestFilter set along with it, or zero if none was.
type RegisteredPrefixEntry struct {
	id                      uint64
	prefix                  *ndn.Name
	relatedInterestFilterId uint64
}

// Id returns the entry id.
func (e *RegisteredPrefixEntry) Id() uint64 {
	return e.id
}

// Prefix returns the registered prefix.
func (e *RegisteredPrefixEntry) Prefix() *ndn.Name {
	return e.prefix
}

// RegisteredPrefixTable holds the prefixes registered with the forwarder.
// Removing a registered prefix also unsets the InterestFilter that was set
// with it.
type RegisteredPrefixTable struct {
	table               []*RegisteredPrefixEntry
	interestFilterTable *InterestFilterTable
	removeRequests      []uint64
}

// NewRegisteredPrefixTable creates an empty RegisteredPrefixTable operating
// alongside the given InterestFilterTable.
func NewRegisteredPrefixTable(interestFilterTable *InterestFilterTable) *RegisteredPrefixTable {
	return &RegisteredPrefixTable{interestFilterTable: interestFilterTable}
}

// Add creates an entry for the prefix, reporting whether it was added. When
// a removal of this id was requested before the entry existed, the request
// is consumed and nothing is added.
func (t *RegisteredPrefixTable) Add(id uint64, prefix *ndn.Name, relatedInterestFilterId uint64) bool {
	if i := slices.Index(t.removeRequests, id); i >= 0 {
		t.removeRequests = slices.Delete(t.removeRequests, i, i+1)
		return false
	}

	t.table = append(t.table, &RegisteredPrefixEntry{
		id:                      id,
		prefix:                  prefix,
		relatedInterestFilterId: relatedInterestFilterId,
	})
	return true
}

// RemoveRegisteredPrefix removes the entry with the given id, unsetting its
// related InterestFilter. When no entry has the id, the id is recorded so
// that an Add racing this removal becomes a no-op. Removal is idempotent.
func (t *RegisteredPrefixTable) RemoveRegisteredPrefix(id uint64) {
	found := false
	kept := t.table[:0]
	for _, entry := range t.table {
		if entry.id == id {
			found = true
			if entry.relatedInterestFilterId > 0 {
				t.interestFilterTable.UnsetInterestFilter(entry.relatedInterestFilterId)
			}
		} else {
			kept = append(kept, entry)
		}
	}
	t.table = kept

	if !found {
		t.removeRequests = append(t.removeRequests, id)
	}
}

// Size returns the number of registered prefixes.
func (t *RegisteredPrefixTable) Size() int {
	return len(t.table)
}
