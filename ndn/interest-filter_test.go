/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn_test

import (
	"testing"

	"github.com/named-data/GoNDN2/ndn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestFilterPrefix(t *testing.T) {
	filter := ndn.NewInterestFilter(nameFromString(t, "/hello"))
	assert.False(t, filter.HasRegexFilter())
	assert.Equal(t, "/hello", filter.Prefix().String())

	assert.True(t, filter.DoesMatch(nameFromString(t, "/hello")))
	assert.True(t, filter.DoesMatch(nameFromString(t, "/hello/world")))
	assert.False(t, filter.DoesMatch(nameFromString(t, "/hell")))
	assert.False(t, filter.DoesMatch(nameFromString(t, "/goodbye/world")))
	assert.False(t, filter.DoesMatch(ndn.NewName()))

	// The filter holds its own copy of the prefix
	prefix := nameFromString(t, "/hello")
	filter = ndn.NewInterestFilter(prefix)
	prefix.Append(ndn.NewGenericComponent([]byte("more")))
	assert.Equal(t, 1, filter.Prefix().Size())
}

func TestInterestFilterRegex(t *testing.T) {
	filter, err := ndn.NewInterestFilterWithRegex(nameFromString(t, "/hello"), "/world/[a-z]+")
	require.NoError(t, err)
	assert.True(t, filter.HasRegexFilter())
	assert.Equal(t, "/world/[a-z]+", filter.RegexFilter())

	assert.True(t, filter.DoesMatch(nameFromString(t, "/hello/world/abc")))
	assert.False(t, filter.DoesMatch(nameFromString(t, "/hello/world/ABC")))
	assert.False(t, filter.DoesMatch(nameFromString(t, "/hello/world")))
	assert.False(t, filter.DoesMatch(nameFromString(t, "/hello")))
	assert.False(t, filter.DoesMatch(nameFromString(t, "/goodbye/world/abc")))

	// The expression is anchored, so trailing components do not match
	assert.False(t, filter.DoesMatch(nameFromString(t, "/hello/world/abc/extra")))

	_, err = ndn.NewInterestFilterWithRegex(nameFromString(t, "/hello"), "/world/[")
	assert.Error(t, err)
}

func TestInterestFilterString(t *testing.T) {
	filter := ndn.NewInterestFilter(nameFromString(t, "/a/b"))
	assert.Equal(t, "/a/b", filter.String())

	filter, err := ndn.NewInterestFilterWithRegex(nameFromString(t, "/a"), "/b")
	require.NoError(t, err)
	assert.Equal(t, "/a?filter=/b", filter.String())
}
