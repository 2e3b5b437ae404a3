/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import "strconv"

// Delegation is one (preference, name) pair of a DelegationSet.
type Delegation struct {
	preference uint64
	name       Name
}

// NewDelegation creates a new delegation.
func NewDelegation(preference uint64, name *Name) *Delegation {
	d := new(Delegation)
	d.preference = preference
	d.name = *name.DeepCopy()
	return d
}

// Preference returns the preference set in the delegation.
func (d *Delegation) Preference() uint64 {
	return d.preference
}

// Name returns a copy of the name set in the delegation.
func (d *Delegation) Name() *Name {
	return d.name.DeepCopy()
}

func (d *Delegation) String() string {
	return "Delegation(" + strconv.FormatUint(d.preference, 10) + ", " + d.name.String() + ")"
}

// DelegationSet is an ordered list of delegations, sorted by increasing
// preference, used as the ForwardingHint of an Interest and as the content of
// a Link object.
type DelegationSet struct {
	delegations []Delegation
	changeCount uint64
}

// Size returns the number of delegations.
func (d *DelegationSet) Size() int {
	return len(d.delegations)
}

// Get returns a copy of the delegation at the given index, or nil if out of
// range.
func (d *DelegationSet) Get(i int) *Delegation {
	if i < 0 || i >= len(d.delegations) {
		return nil
	}
	return NewDelegation(d.delegations[i].preference, &d.delegations[i].name)
}

// Add adds a delegation, keeping the list sorted by increasing preference. An
// existing delegation with the same name is replaced.
func (d *DelegationSet) Add(preference uint64, name *Name) {
	d.Remove(name)

	insertAt := 0
	for insertAt < len(d.delegations) && d.delegations[insertAt].preference <= preference {
		insertAt++
	}

	d.delegations = append(d.delegations, Delegation{})
	copy(d.delegations[insertAt+1:], d.delegations[insertAt:])
	d.delegations[insertAt] = Delegation{preference: preference, name: *name.DeepCopy()}
	d.changeCount++
}

// Append an entry without re-sorting. Decoding uses this to preserve the
// received order.
func (d *DelegationSet) appendDelegation(preference uint64, name *Name) {
	d.delegations = append(d.delegations, Delegation{preference: preference, name: *name.DeepCopy()})
	d.changeCount++
}

// Remove removes every delegation with the given name, returning whether any
// was removed.
func (d *DelegationSet) Remove(name *Name) bool {
	removed := false
	for i := len(d.delegations) - 1; i >= 0; i-- {
		if d.delegations[i].name.Equals(name) {
			d.delegations = append(d.delegations[:i], d.delegations[i+1:]...)
			removed = true
		}
	}
	if removed {
		d.changeCount++
	}
	return removed
}

// Find returns the index of the first delegation with the given name, or -1
// if not found.
func (d *DelegationSet) Find(name *Name) int {
	for i, delegation := range d.delegations {
		if delegation.name.Equals(name) {
			return i
		}
	}
	return -1
}

// Clear removes all delegations.
func (d *DelegationSet) Clear() {
	d.delegations = nil
	d.changeCount++
}

// ChangeCount returns the number of times the DelegationSet has been mutated.
func (d *DelegationSet) ChangeCount() uint64 {
	return d.changeCount
}
