/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Exclude is a constraint on the name component immediately following an
// Interest name: an ordered list of component entries and Any wildcards
// denoting excluded values. A component entry on its own excludes exactly
// itself. A run "L Any U" excludes the half-open range [L, U); a leading
// "Any U" excludes everything up to but not including U; a trailing "L Any"
// excludes L and everything after it; a lone Any excludes everything.
type Exclude struct {
	entries     []excludeEntry
	changeCount uint64
}

type excludeEntry struct {
	any       bool
	component Component
}

// An exclusion expressed as a half-open component interval. An absent lower
// bound reaches back to the least component, an absent upper bound reaches
// forward without limit.
type excludeInterval struct {
	hasLower bool
	lower    Component
	hasUpper bool
	upper    Component
}

// Size returns the number of entries, counting each Any wildcard.
func (ex *Exclude) Size() int {
	return len(ex.entries)
}

// IsAny returns whether the entry at the given index is an Any wildcard.
func (ex *Exclude) IsAny(i int) bool {
	return i >= 0 && i < len(ex.entries) && ex.entries[i].any
}

// Get returns the component of the entry at the given index, or a zero
// component for an Any wildcard or an out-of-range index.
func (ex *Exclude) Get(i int) Component {
	if i < 0 || i >= len(ex.entries) || ex.entries[i].any {
		return Component{}
	}
	return ex.entries[i].component
}

// Clear removes all entries.
func (ex *Exclude) Clear() {
	ex.entries = nil
	ex.changeCount++
}

// AppendAny adds an Any wildcard, returning the Exclude to allow chaining.
// Appending directly after another Any is a no-op.
func (ex *Exclude) AppendAny() *Exclude {
	if len(ex.entries) > 0 && ex.entries[len(ex.entries)-1].any {
		return ex
	}
	ex.entries = append(ex.entries, excludeEntry{any: true})
	ex.changeCount++
	return ex
}

// AppendComponent adds a component entry, which must be strictly greater in
// canonical order than every component already present.
func (ex *Exclude) AppendComponent(component Component) error {
	for i := len(ex.entries) - 1; i >= 0; i-- {
		if ex.entries[i].any {
			continue
		}
		if ex.entries[i].component.Compare(component) >= 0 {
			return errors.WithMessage(ErrOutOfRange, "exclude components must be strictly increasing")
		}
		break
	}
	ex.entries = append(ex.entries, excludeEntry{component: component})
	ex.changeCount++
	return nil
}

// Append an entry without order checks. Decoding uses this to preserve the
// received entry list verbatim.
func (ex *Exclude) appendEntry(entry excludeEntry) {
	ex.entries = append(ex.entries, entry)
	ex.changeCount++
}

// Matches returns whether the given component is excluded.
func (ex *Exclude) Matches(component Component) bool {
	i := 0
	for i < len(ex.entries) {
		if !ex.entries[i].any {
			if component.Equals(ex.entries[i].component) {
				return true
			}
			i++
			continue
		}

		var lower, upper *Component
		if i > 0 && !ex.entries[i-1].any {
			lower = &ex.entries[i-1].component
		}
		if i+1 < len(ex.entries) && !ex.entries[i+1].any {
			upper = &ex.entries[i+1].component
			// The upper bound component belongs to this range
			i += 2
		} else {
			i++
		}

		switch {
		case lower != nil && upper != nil:
			if component.Compare(*lower) >= 0 && component.Compare(*upper) < 0 {
				return true
			}
		case lower != nil:
			if component.Compare(*lower) >= 0 {
				return true
			}
		case upper != nil:
			if component.Compare(*upper) < 0 {
				return true
			}
		default:
			return true
		}
	}
	return false
}

// ExcludeOne excludes exactly the given component, returning the Exclude to
// allow chaining. Re-excluding a covered component is a no-op.
func (ex *Exclude) ExcludeOne(component Component) *Exclude {
	ex.unionInterval(excludeInterval{
		hasLower: true, lower: component,
		hasUpper: true, upper: component.Successor(),
	})
	return ex
}

// ExcludeRange excludes the half-open range [from, to), which must be
// non-empty. Overlapping and adjacent exclusions merge; re-adding a covered
// range is a no-op.
func (ex *Exclude) ExcludeRange(from Component, to Component) error {
	if from.Compare(to) >= 0 {
		return errors.WithMessage(ErrOutOfRange, "exclude range requires from < to")
	}
	ex.unionInterval(excludeInterval{hasLower: true, lower: from, hasUpper: true, upper: to})
	return nil
}

// ExcludeBefore excludes every component before (not including) the given
// one, returning the Exclude to allow chaining.
func (ex *Exclude) ExcludeBefore(to Component) *Exclude {
	ex.unionInterval(excludeInterval{hasUpper: true, upper: to})
	return ex
}

// ExcludeAfter excludes the given component and everything after it,
// returning the Exclude to allow chaining.
func (ex *Exclude) ExcludeAfter(from Component) *Exclude {
	ex.unionInterval(excludeInterval{hasLower: true, lower: from})
	return ex
}

// Merge one more interval into the entry list: convert entries to intervals,
// take the union, and rebuild the minimal entry list.
func (ex *Exclude) unionInterval(added excludeInterval) {
	intervals := append(ex.toIntervals(), added)
	sort.SliceStable(intervals, func(i, j int) bool {
		if !intervals[i].hasLower {
			return intervals[j].hasLower
		}
		if !intervals[j].hasLower {
			return false
		}
		return intervals[i].lower.Compare(intervals[j].lower) < 0
	})

	merged := make([]excludeInterval, 0, len(intervals))
	current := intervals[0]
	for _, next := range intervals[1:] {
		if overlapsOrAdjacent(current, next) {
			if current.hasUpper && (!next.hasUpper || next.upper.Compare(current.upper) > 0) {
				current.hasUpper = next.hasUpper
				current.upper = next.upper
			}
		} else {
			merged = append(merged, current)
			current = next
		}
	}
	merged = append(merged, current)

	newEntries := intervalsToEntries(merged)
	if !entryListsEqual(ex.entries, newEntries) {
		ex.entries = newEntries
		ex.changeCount++
	}
}

func overlapsOrAdjacent(current excludeInterval, next excludeInterval) bool {
	if !current.hasUpper || !next.hasLower {
		return true
	}
	return next.lower.Compare(current.upper) <= 0
}

func (ex *Exclude) toIntervals() []excludeInterval {
	intervals := make([]excludeInterval, 0, len(ex.entries))
	i := 0
	for i < len(ex.entries) {
		switch {
		case ex.entries[i].any:
			iv := excludeInterval{}
			if i+1 < len(ex.entries) && !ex.entries[i+1].any {
				iv.hasUpper = true
				iv.upper = ex.entries[i+1].component
				i += 2
			} else {
				i++
			}
			intervals = append(intervals, iv)
		case i+1 < len(ex.entries) && ex.entries[i+1].any:
			iv := excludeInterval{hasLower: true, lower: ex.entries[i].component}
			if i+2 < len(ex.entries) && !ex.entries[i+2].any {
				iv.hasUpper = true
				iv.upper = ex.entries[i+2].component
				i += 3
			} else {
				i += 2
			}
			intervals = append(intervals, iv)
		default:
			component := ex.entries[i].component
			intervals = append(intervals, excludeInterval{
				hasLower: true, lower: component,
				hasUpper: true, upper: component.Successor(),
			})
			i++
		}
	}
	return intervals
}

func intervalsToEntries(intervals []excludeInterval) []excludeEntry {
	entries := make([]excludeEntry, 0, 3*len(intervals))
	for _, iv := range intervals {
		switch {
		case !iv.hasLower && !iv.hasUpper:
			return []excludeEntry{{any: true}}
		case !iv.hasLower:
			entries = append(entries, excludeEntry{any: true}, excludeEntry{component: iv.upper})
		case !iv.hasUpper:
			entries = append(entries, excludeEntry{component: iv.lower}, excludeEntry{any: true})
		case iv.upper.Equals(iv.lower.Successor()):
			entries = append(entries, excludeEntry{component: iv.lower})
		default:
			entries = append(entries,
				excludeEntry{component: iv.lower},
				excludeEntry{any: true},
				excludeEntry{component: iv.upper})
		}
	}
	return entries
}

func entryListsEqual(a []excludeEntry, b []excludeEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].any != b[i].any || !a[i].component.Equals(b[i].component) {
			return false
		}
	}
	return true
}

// String returns the entries joined by commas, with * for Any.
func (ex *Exclude) String() string {
	out := make([]string, len(ex.entries))
	for i, entry := range ex.entries {
		if entry.any {
			out[i] = "*"
		} else {
			out[i] = entry.component.String()
		}
	}
	return strings.Join(out, ",")
}

// ChangeCount returns the number of times the Exclude has been mutated.
func (ex *Exclude) ChangeCount() uint64 {
	return ex.changeCount
}
