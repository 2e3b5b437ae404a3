/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"regexp"
	"strings"
)

// InterestFilter selects incoming Interests by a name prefix, optionally
// narrowed by a regular expression over the URI form of the components after
// the prefix.
type InterestFilter struct {
	prefix      *Name
	regexFilter string
	pattern     *regexp.Regexp
}

// NewInterestFilter creates a filter matching every Interest name under the
// prefix. The filter keeps its own copy of the prefix.
func NewInterestFilter(prefix *Name) *InterestFilter {
	return &InterestFilter{prefix: prefix.DeepCopy()}
}

// NewInterestFilterWithRegex creates a filter matching Interest names under
// the prefix whose remaining components, in URI form, match the regular
// expression. The expression is anchored at both ends if not already.
func NewInterestFilterWithRegex(prefix *Name, regexFilter string) (*InterestFilter, error) {
	pattern := regexFilter
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	if !strings.HasSuffix(pattern, "$") {
		pattern = pattern + "$"
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &InterestFilter{
		prefix:      prefix.DeepCopy(),
		regexFilter: regexFilter,
		pattern:     compiled,
	}, nil
}

// Prefix returns the prefix of the filter.
func (f *InterestFilter) Prefix() *Name {
	return f.prefix
}

// HasRegexFilter returns whether the filter carries a regular expression.
func (f *InterestFilter) HasRegexFilter() bool {
	return f.pattern != nil
}

// RegexFilter returns the regular expression as given, or the empty string.
func (f *InterestFilter) RegexFilter() string {
	return f.regexFilter
}

// DoesMatch returns whether the name falls under the prefix and, when a
// regular expression is present, whether the URI of the components after the
// prefix matches it.
func (f *InterestFilter) DoesMatch(name *Name) bool {
	if name.Size() < f.prefix.Size() {
		return false
	}
	if !f.prefix.Match(name) {
		return false
	}
	if f.pattern == nil {
		return true
	}
	return f.pattern.MatchString(name.GetSubName(f.prefix.Size(), -1).String())
}

func (f *InterestFilter) String() string {
	if f.pattern == nil {
		return f.prefix.String()
	}
	return f.prefix.String() + "?filter=" + f.regexFilter
}
