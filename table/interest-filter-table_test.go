/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table_test

import (
	"testing"

	"github.com/named-data/GoNDN2/ndn"
	"github.com/named-data/GoNDN2/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFromString(t *testing.T, uri string) *ndn.InterestFilter {
	name, err := ndn.NameFromString(uri)
	require.NoError(t, err)
	return ndn.NewInterestFilter(name)
}

func noopOnInterest(*ndn.Name, *ndn.Interest, uint64, *ndn.InterestFilter) {}

func TestGetMatchedFilters(t *testing.T) {
	filters := table.NewInterestFilterTable()
	filters.SetInterestFilter(1, filterFromString(t, "/a"), noopOnInterest)
	filters.SetInterestFilter(2, filterFromString(t, "/a/b"), noopOnInterest)
	filters.SetInterestFilter(3, filterFromString(t, "/c"), noopOnInterest)
	assert.Equal(t, 3, filters.Size())

	name, err := ndn.NameFromString("/a/b/c")
	require.NoError(t, err)
	matched := filters.GetMatchedFilters(name)
	require.Len(t, matched, 2)

	// Registration order, not specificity
	assert.Equal(t, uint64(1), matched[0].Id())
	assert.Equal(t, uint64(2), matched[1].Id())
	assert.Equal(t, "/a", matched[0].Filter().Prefix().String())
	assert.NotNil(t, matched[0].OnInterest())

	name, err = ndn.NameFromString("/d")
	require.NoError(t, err)
	assert.Empty(t, filters.GetMatchedFilters(name))
}

func TestUnsetInterestFilter(t *testing.T) {
	filters := table.NewInterestFilterTable()
	filters.SetInterestFilter(1, filterFromString(t, "/a"), noopOnInterest)
	filters.SetInterestFilter(2, filterFromString(t, "/a"), noopOnInterest)

	filters.UnsetInterestFilter(1)
	assert.Equal(t, 1, filters.Size())

	name, err := ndn.NameFromString("/a")
	require.NoError(t, err)
	matched := filters.GetMatchedFilters(name)
	require.Len(t, matched, 1)
	assert.Equal(t, uint64(2), matched[0].Id())

	// Unknown and repeated ids are no-ops
	filters.UnsetInterestFilter(1)
	filters.UnsetInterestFilter(77)
	assert.Equal(t, 1, filters.Size())
}
