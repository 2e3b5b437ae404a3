/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn_test

import (
	"testing"

	"github.com/named-data/GoNDN2/ndn"
	"github.com/stretchr/testify/assert"
)

func component(value string) ndn.Component {
	return ndn.NewGenericComponent([]byte(value))
}

func TestExcludeAppend(t *testing.T) {
	exclude := new(ndn.Exclude)
	assert.Equal(t, 0, exclude.Size())
	assert.Equal(t, "", exclude.String())
	assert.False(t, exclude.Matches(component("a")))

	assert.NoError(t, exclude.AppendComponent(component("a")))
	exclude.AppendAny()
	assert.NoError(t, exclude.AppendComponent(component("c")))
	assert.Equal(t, 3, exclude.Size())
	assert.Equal(t, "a,*,c", exclude.String())
	assert.False(t, exclude.IsAny(0))
	assert.True(t, exclude.IsAny(1))
	assert.Equal(t, component("a"), exclude.Get(0))
	assert.Equal(t, 0, exclude.Get(1).Size())

	// Doubled wildcards collapse
	exclude.AppendAny().AppendAny()
	assert.Equal(t, 4, exclude.Size())

	// Components must be strictly increasing
	assert.ErrorIs(t, exclude.AppendComponent(component("b")), ndn.ErrOutOfRange)
	assert.ErrorIs(t, exclude.AppendComponent(component("c")), ndn.ErrOutOfRange)
	assert.NoError(t, exclude.AppendComponent(component("d")))

	exclude.Clear()
	assert.Equal(t, 0, exclude.Size())
}

func TestExcludeMatchesSingle(t *testing.T) {
	exclude := new(ndn.Exclude)
	assert.NoError(t, exclude.AppendComponent(component("b")))

	assert.True(t, exclude.Matches(component("b")))
	assert.False(t, exclude.Matches(component("a")))
	assert.False(t, exclude.Matches(component("c")))

	// A lone entry matches by type as well as value
	assert.False(t, exclude.Matches(ndn.ComponentFromSegment(0x62)))
}

func TestExcludeMatchesRange(t *testing.T) {
	exclude := new(ndn.Exclude)
	assert.NoError(t, exclude.AppendComponent(component("a")))
	exclude.AppendAny()
	assert.NoError(t, exclude.AppendComponent(component("c")))

	// The lower bound is excluded, the upper bound is not
	assert.True(t, exclude.Matches(component("a")))
	assert.True(t, exclude.Matches(component("b")))
	assert.False(t, exclude.Matches(component("c")))
	assert.False(t, exclude.Matches(component("d")))
	assert.False(t, exclude.Matches(component("A")))
}

func TestExcludeMatchesUnbounded(t *testing.T) {
	before := new(ndn.Exclude).AppendAny()
	assert.NoError(t, before.AppendComponent(component("c")))
	assert.True(t, before.Matches(component("a")))
	assert.True(t, before.Matches(component("b")))
	assert.False(t, before.Matches(component("c")))
	assert.False(t, before.Matches(component("d")))

	after := new(ndn.Exclude)
	assert.NoError(t, after.AppendComponent(component("b")))
	after.AppendAny()
	assert.False(t, after.Matches(component("a")))
	assert.True(t, after.Matches(component("b")))
	assert.True(t, after.Matches(component("z")))

	any := new(ndn.Exclude).AppendAny()
	assert.True(t, any.Matches(component("")))
	assert.True(t, any.Matches(component("anything")))
}

func TestExcludeOne(t *testing.T) {
	exclude := new(ndn.Exclude).ExcludeOne(component("b"))
	assert.Equal(t, "b", exclude.String())
	assert.True(t, exclude.Matches(component("b")))
	assert.False(t, exclude.Matches(component("c")))

	// Re-excluding a covered component changes nothing
	count := exclude.ChangeCount()
	exclude.ExcludeOne(component("b"))
	assert.Equal(t, count, exclude.ChangeCount())

	exclude.ExcludeOne(component("d"))
	assert.Equal(t, "b,d", exclude.String())
}

func TestExcludeRange(t *testing.T) {
	exclude := new(ndn.Exclude)
	assert.ErrorIs(t, exclude.ExcludeRange(component("c"), component("a")), ndn.ErrOutOfRange)
	assert.ErrorIs(t, exclude.ExcludeRange(component("a"), component("a")), ndn.ErrOutOfRange)

	assert.NoError(t, exclude.ExcludeRange(component("a"), component("c")))
	assert.Equal(t, "a,*,c", exclude.String())

	// Overlapping ranges merge
	assert.NoError(t, exclude.ExcludeRange(component("b"), component("d")))
	assert.Equal(t, "a,*,d", exclude.String())
	assert.True(t, exclude.Matches(component("c")))
	assert.False(t, exclude.Matches(component("d")))

	// A covered range is a no-op
	count := exclude.ChangeCount()
	assert.NoError(t, exclude.ExcludeRange(component("b"), component("c")))
	assert.Equal(t, count, exclude.ChangeCount())
	assert.Equal(t, "a,*,d", exclude.String())

	// A lone range excludes its lower bound through just below its upper bound
	lone := new(ndn.Exclude)
	assert.NoError(t, lone.ExcludeRange(component("b"), component("d")))
	assert.True(t, lone.Matches(component("c")))
	assert.False(t, lone.Matches(component("a")))
	assert.False(t, lone.Matches(component("d")))
}

func TestExcludeRangeCollapsesToPoint(t *testing.T) {
	// [a, successor(a)) is the point a
	exclude := new(ndn.Exclude)
	assert.NoError(t, exclude.ExcludeRange(component("a"), component("a").Successor()))
	assert.Equal(t, "a", exclude.String())
	assert.Equal(t, 1, exclude.Size())
}

func TestExcludeAdjacentMerge(t *testing.T) {
	// The point a ends exactly where [b, d) begins
	exclude := new(ndn.Exclude).ExcludeOne(component("a"))
	assert.NoError(t, exclude.ExcludeRange(component("b"), component("d")))
	assert.Equal(t, "a,*,d", exclude.String())

	// Disjoint exclusions stay separate
	exclude.ExcludeOne(component("x"))
	assert.Equal(t, "a,*,d,x", exclude.String())
	assert.True(t, exclude.Matches(component("x")))
	assert.False(t, exclude.Matches(component("e")))
}

func TestExcludeBeforeAfter(t *testing.T) {
	before := new(ndn.Exclude).ExcludeBefore(component("c"))
	assert.Equal(t, "*,c", before.String())
	assert.False(t, before.Matches(component("c")))

	// Excluding the bound itself extends the range past it
	before.ExcludeOne(component("c"))
	assert.Equal(t, "*,d", before.String())
	assert.True(t, before.Matches(component("c")))

	after := new(ndn.Exclude).ExcludeAfter(component("b"))
	assert.Equal(t, "b,*", after.String())
	assert.True(t, after.Matches(component("z")))

	// An adjacent point below the lower bound is absorbed
	after.ExcludeOne(component("a"))
	assert.Equal(t, "a,*", after.String())

	everything := new(ndn.Exclude).ExcludeBefore(component("m")).ExcludeAfter(component("a"))
	assert.Equal(t, "*", everything.String())
	assert.True(t, everything.Matches(component("z")))
}
