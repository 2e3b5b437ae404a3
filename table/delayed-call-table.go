/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"golang.org/x/exp/slices"
)

type delayedCallEntry struct {
	callTime time.Time
	callback func()
}

// DelayedCallTable holds callbacks scheduled for a later pump cycle, sorted
// by call time.
type DelayedCallTable struct {
	table []*delayedCallEntry
}

// NewDelayedCallTable creates an empty DelayedCallTable.
func NewDelayedCallTable() *DelayedCallTable {
	return new(DelayedCallTable)
}

// CallLater schedules the callback to fire once the given delay has passed.
// The insertion point is searched from the back because later deadlines
// mostly arrive in increasing order.
func (d *DelayedCallTable) CallLater(delay time.Duration, callback func()) {
	entry := &delayedCallEntry{
		callTime: time.Now().Add(delay),
		callback: callback,
	}

	i := len(d.table) - 1
	for i >= 0 && d.table[i].callTime.After(entry.callTime) {
		i--
	}
	d.table = slices.Insert(d.table, i+1, entry)
}

// CallTimedOut fires the callbacks whose call time is not after now, in call
// time order. Each entry leaves the table before its callback runs, so a
// callback may schedule further calls.
func (d *DelayedCallTable) CallTimedOut(now time.Time) {
	for len(d.table) > 0 && !d.table[0].callTime.After(now) {
		entry := d.table[0]
		d.table = d.table[1:]
		entry.callback()
	}
}

// Size returns the number of scheduled callbacks.
func (d *DelayedCallTable) Size() int {
	return len(d.table)
}
