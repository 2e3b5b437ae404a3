/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"github.com/named-data/GoNDN2/ndn"
)

// InterestFilterEntry holds a registered InterestFilter and the handler for
// Interests matching it.
type InterestFilterEntry struct {
	id         uint64
	filter     *ndn.InterestFilter
	onInterest func(*ndn.Name, *ndn.Interest, uint64, *ndn.InterestFilter)
}

// Id returns the entry id.
func (e *InterestFilterEntry) Id() uint64 {
	return e.id
}

// Filter returns the InterestFilter of the entry.
func (e *InterestFilterEntry) Filter() *ndn.InterestFilter {
	return e.filter
}

// OnInterest returns the Interest handler of the entry.
func (e *InterestFilterEntry) OnInterest() func(*ndn.Name, *ndn.Interest, uint64, *ndn.InterestFilter) {
	return e.onInterest
}

// InterestFilterTable holds the InterestFilters registered on a Node, in
// registration order.
type InterestFilterTable struct {
	table []*InterestFilterEntry
}

// NewInterestFilterTable creates an empty InterestFilterTable.
func NewInterestFilterTable() *InterestFilterTable {
	return new(InterestFilterTable)
}

// SetInterestFilter appends an entry for the filter and handler.
func (t *InterestFilterTable) SetInterestFilter(id uint64, filter *ndn.InterestFilter,
	onInterest func(*ndn.Name, *ndn.Interest, uint64, *ndn.InterestFilter)) {
	t.table = append(t.table, &InterestFilterEntry{
		id:         id,
		filter:     filter,
		onInterest: onInterest,
	})
}

// GetMatchedFilters returns the entries whose filter matches the name, in
// registration order.
func (t *InterestFilterTable) GetMatchedFilters(name *ndn.Name) []*InterestFilterEntry {
	var entries []*InterestFilterEntry
	for _, entry := range t.table {
		if entry.filter.DoesMatch(name) {
			entries = append(entries, entry)
		}
	}
	return entries
}

// UnsetInterestFilter removes the entry with the given id. Removing an
// unknown or already removed id does nothing.
func (t *InterestFilterTable) UnsetInterestFilter(id uint64) {
	kept := t.table[:0]
	for _, entry := range t.table {
		if entry.id != id {
			kept = append(kept, entry)
		}
	}
	t.table = kept
}

// Size returns the number of registered filters.
func (t *InterestFilterTable) Size() int {
	return len(t.table)
}
