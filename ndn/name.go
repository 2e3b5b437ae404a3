/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"bytes"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/named-data/GoNDN2/ndn/tlv"
	"github.com/pkg/errors"
)

//////////////////
// Name components
//////////////////

// Component is one component of a Name: a TLV type code plus an immutable byte
// value. Components are value types; constructors copy the bytes handed to
// them, and accessors return views that must not be modified.
type Component struct {
	typ   uint32
	value []byte
}

const sha256DigestSize = 32

func makeComponent(typ uint32, value []byte) Component {
	copied := make([]byte, len(value))
	copy(copied, value)
	return Component{typ: typ, value: copied}
}

// NewGenericComponent creates a GenericNameComponent with the given value.
func NewGenericComponent(value []byte) Component {
	return makeComponent(tlv.GenericNameComponent, value)
}

// NewImplicitSha256DigestComponent creates an ImplicitSha256DigestComponent
// from a 32-byte SHA-256 digest.
func NewImplicitSha256DigestComponent(digest []byte) (Component, error) {
	if len(digest) != sha256DigestSize {
		return Component{}, errors.WithMessage(ErrOutOfRange, "implicit digest component must be 32 bytes")
	}
	return makeComponent(tlv.ImplicitSha256DigestComponent, digest), nil
}

// NewParametersSha256DigestComponent creates a ParametersSha256DigestComponent
// from a 32-byte SHA-256 digest.
func NewParametersSha256DigestComponent(digest []byte) (Component, error) {
	if len(digest) != sha256DigestSize {
		return Component{}, errors.WithMessage(ErrOutOfRange, "parameters digest component must be 32 bytes")
	}
	return makeComponent(tlv.ParametersSha256DigestComponent, digest), nil
}

// NewOtherCodeComponent creates a component with an arbitrary TLV type code.
func NewOtherCodeComponent(typeCode uint32, value []byte) (Component, error) {
	switch typeCode {
	case 0:
		return Component{}, errors.WithMessage(ErrOutOfRange, "component type code must be positive")
	case tlv.ImplicitSha256DigestComponent:
		return NewImplicitSha256DigestComponent(value)
	case tlv.ParametersSha256DigestComponent:
		return NewParametersSha256DigestComponent(value)
	}
	return makeComponent(typeCode, value), nil
}

// ComponentFromNumber creates a GenericNameComponent whose value is the
// non-negative integer encoding of the given number.
func ComponentFromNumber(number uint64) Component {
	return Component{typ: tlv.GenericNameComponent, value: tlv.EncodeNNI(number)}
}

// ComponentFromNumberWithMarker creates a GenericNameComponent whose value is
// the given marker octet followed by the non-negative integer encoding of the
// given number, per the early NDN naming conventions.
func ComponentFromNumberWithMarker(number uint64, marker byte) Component {
	value := append([]byte{marker}, tlv.EncodeNNI(number)...)
	return Component{typ: tlv.GenericNameComponent, value: value}
}

// ComponentFromSegment creates a SegmentNameComponent for the given segment
// number.
func ComponentFromSegment(segment uint64) Component {
	return Component{typ: tlv.SegmentNameComponent, value: tlv.EncodeNNI(segment)}
}

// ComponentFromByteOffset creates a ByteOffsetNameComponent for the given
// offset.
func ComponentFromByteOffset(offset uint64) Component {
	return Component{typ: tlv.ByteOffsetNameComponent, value: tlv.EncodeNNI(offset)}
}

// ComponentFromVersion creates a VersionNameComponent for the given version
// number.
func ComponentFromVersion(version uint64) Component {
	return Component{typ: tlv.VersionNameComponent, value: tlv.EncodeNNI(version)}
}

// ComponentFromTimestamp creates a TimestampNameComponent for the given
// timestamp number.
func ComponentFromTimestamp(timestamp uint64) Component {
	return Component{typ: tlv.TimestampNameComponent, value: tlv.EncodeNNI(timestamp)}
}

// ComponentFromSequenceNumber creates a SequenceNumNameComponent for the given
// sequence number.
func ComponentFromSequenceNumber(seq uint64) Component {
	return Component{typ: tlv.SequenceNumNameComponent, value: tlv.EncodeNNI(seq)}
}

// Type returns the TLV type code of the component.
func (c Component) Type() uint32 {
	return c.typ
}

// Value returns the value of the component. Callers must not modify the
// returned slice.
func (c Component) Value() []byte {
	return c.value
}

// Size returns the number of bytes in the component value.
func (c Component) Size() int {
	return len(c.value)
}

// IsGeneric returns whether the component is a GenericNameComponent.
func (c Component) IsGeneric() bool {
	return c.typ == tlv.GenericNameComponent
}

// IsImplicitSha256Digest returns whether the component is an
// ImplicitSha256DigestComponent.
func (c Component) IsImplicitSha256Digest() bool {
	return c.typ == tlv.ImplicitSha256DigestComponent
}

// IsParametersSha256Digest returns whether the component is a
// ParametersSha256DigestComponent.
func (c Component) IsParametersSha256Digest() bool {
	return c.typ == tlv.ParametersSha256DigestComponent
}

// ToNumber interprets the component value as a big-endian unsigned number.
func (c Component) ToNumber() uint64 {
	var result uint64
	for _, b := range c.value {
		result = result<<8 + uint64(b)
	}
	return result
}

// ToNumberWithMarker interprets the component value as a marker octet followed
// by a big-endian unsigned number, returning an error if the first octet does
// not equal the marker.
func (c Component) ToNumberWithMarker(marker byte) (uint64, error) {
	if len(c.value) == 0 || c.value[0] != marker {
		return 0, errors.New("name component does not begin with the expected marker")
	}
	var result uint64
	for _, b := range c.value[1:] {
		result = result<<8 + uint64(b)
	}
	return result, nil
}

// Equals returns whether both components have the same type code and value.
func (c Component) Equals(other Component) bool {
	return c.typ == other.typ && bytes.Equal(c.value, other.value)
}

// Compare orders components canonically: by type code, then by value length,
// then lexicographically by value bytes.
func (c Component) Compare(other Component) int {
	if c.typ != other.typ {
		if c.typ < other.typ {
			return -1
		}
		return 1
	}
	if len(c.value) != len(other.value) {
		if len(c.value) < len(other.value) {
			return -1
		}
		return 1
	}
	return bytes.Compare(c.value, other.value)
}

// Successor returns the next component of the same type in canonical order:
// the value incremented as a big-endian counter. The successor of an all-0xFF
// value is one byte longer and all zero.
func (c Component) Successor() Component {
	value := make([]byte, len(c.value))
	copy(value, c.value)
	for i := len(value) - 1; i >= 0; i-- {
		value[i]++
		if value[i] != 0 {
			return Component{typ: c.typ, value: value}
		}
	}
	return Component{typ: c.typ, value: append(value, 0)}
}

// String returns the URI representation of the component.
func (c Component) String() string {
	switch c.typ {
	case tlv.ImplicitSha256DigestComponent:
		return "sha256digest=" + hex.EncodeToString(c.value)
	case tlv.ParametersSha256DigestComponent:
		return "params-sha256=" + hex.EncodeToString(c.value)
	case tlv.GenericNameComponent:
		return escapeComponent(c.value)
	}
	return strconv.FormatUint(uint64(c.typ), 10) + "=" + escapeComponent(c.value)
}

// ParseComponent parses the URI representation of one name component,
// accepting the sha256digest=, params-sha256=, and <decimal>= type prefixes.
func ParseComponent(uri string) (Component, error) {
	component, ok, err := parseUriComponent(uri)
	if err != nil {
		return Component{}, err
	}
	if !ok {
		return Component{}, errors.New("name component of fewer than three periods is illegal")
	}
	return component, nil
}

// Parse one URI path segment. ok is false for the segments a URI parse
// silently drops (empty or an illegal run of periods).
func parseUriComponent(uri string) (Component, bool, error) {
	if strings.HasPrefix(uri, "sha256digest=") {
		digest, err := hex.DecodeString(uri[len("sha256digest="):])
		if err != nil {
			return Component{}, false, errors.New("implicit digest component is not a hex string")
		}
		component, err := NewImplicitSha256DigestComponent(digest)
		return component, err == nil, err
	}
	if strings.HasPrefix(uri, "params-sha256=") {
		digest, err := hex.DecodeString(uri[len("params-sha256="):])
		if err != nil {
			return Component{}, false, errors.New("parameters digest component is not a hex string")
		}
		component, err := NewParametersSha256DigestComponent(digest)
		return component, err == nil, err
	}

	typ := uint32(tlv.GenericNameComponent)
	if idx := strings.Index(uri, "="); idx > 0 && isDecimal(uri[:idx]) {
		code, err := strconv.ParseUint(uri[:idx], 10, 32)
		if err != nil || code == 0 {
			return Component{}, false, errors.New("unable to parse component type code \"" + uri[:idx] + "\"")
		}
		typ = uint32(code)
		uri = uri[idx+1:]
	}

	value, ok, err := unescapeComponent(uri)
	if err != nil || !ok {
		return Component{}, ok, err
	}
	component, err := NewOtherCodeComponent(typ, value)
	return component, err == nil, err
}

func isDecimal(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func escapeComponent(in []byte) string {
	out := make([]byte, 0, 3*len(in)) // Capacity of 3 * len is worst case if every character has to be escaped
	nPeriods := 0
	for _, b := range in {
		switch {
		case b == '.':
			nPeriods++
			fallthrough
		case (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '-' || b == '_' || b == '~':
			out = append(out, b)
		default:
			out = append(out, '%', 0, 0)
			hex.Encode(out[len(out)-2:], []byte{b})
		}
	}
	if nPeriods == len(in) {
		// A value of zero or more periods gains three more
		out = append(out, '.', '.', '.')
	}
	return string(out)
}

// Percent-unescape a URI segment and apply the period rule: a segment of only
// periods must have at least three, and loses exactly three. ok is false for
// an illegal run of fewer than three periods (which includes the empty
// segment).
func unescapeComponent(in string) ([]byte, bool, error) {
	out := make([]byte, 0, len(in)) // Capacity is worst case if nothing to be unescaped
	for i := 0; i < len(in); i++ {
		if in[i] == '%' {
			if len(in) <= i+2 {
				return nil, false, errors.New("incomplete escape sequence")
			}
			unescaped, err := hex.DecodeString(in[i+1 : i+3])
			if err != nil {
				return nil, false, errors.New("could not decode escape sequence")
			}
			out = append(out, unescaped...)
			i += 2
		} else {
			out = append(out, in[i])
		}
	}

	nPeriods := 0
	for _, b := range out {
		if b == '.' {
			nPeriods++
		}
	}
	if nPeriods == len(out) {
		if nPeriods < 3 {
			return nil, false, nil
		}
		out = out[3:]
	}
	return out, true, nil
}

///////
// Name
///////

// Name represents an NDN name: an ordered sequence of components. A Name
// carries a change counter incremented on every mutation; derived values (URI
// string, hash) are cached lazily and invalidated by counter comparison,
// never recomputed on write.
type Name struct {
	components  []Component
	changeCount uint64

	cachedUri             string
	cachedUriChangeCount  uint64
	haveCachedUri         bool
	cachedHash            uint64
	cachedHashChangeCount uint64
	haveCachedHash        bool
}

// NewName constructs an empty name.
func NewName() *Name {
	return new(Name)
}

// NameFromString parses a name from its URI representation. Empty path
// segments and illegal period runs are dropped, so a trailing slash is
// harmless.
func NameFromString(uri string) (*Name, error) {
	n := new(Name)

	uri = strings.TrimSpace(uri)
	uri = strings.TrimPrefix(uri, "ndn:")
	if strings.HasPrefix(uri, "//") {
		// Drop the authority segment
		uri = uri[2:]
		if idx := strings.Index(uri, "/"); idx >= 0 {
			uri = uri[idx:]
		} else {
			uri = ""
		}
	}

	for _, part := range strings.Split(uri, "/") {
		if len(part) == 0 {
			continue
		}
		component, ok, err := parseUriComponent(part)
		if err != nil {
			return nil, errors.WithMessage(err, "unable to parse name \""+uri+"\"")
		}
		if !ok {
			continue
		}
		n.Append(component)
	}
	return n, nil
}

// String returns the URI representation of the name.
func (n *Name) String() string {
	if n.haveCachedUri && n.cachedUriChangeCount == n.changeCount {
		return n.cachedUri
	}

	if len(n.components) == 0 {
		n.cachedUri = "/"
	} else {
		var out strings.Builder
		for _, component := range n.components {
			out.WriteByte('/')
			out.WriteString(component.String())
		}
		n.cachedUri = out.String()
	}
	n.cachedUriChangeCount = n.changeCount
	n.haveCachedUri = true
	return n.cachedUri
}

// Append adds the given component to the end of the name and returns the name
// to allow chaining.
func (n *Name) Append(component Component) *Name {
	n.components = append(n.components, component)
	n.changeCount++
	return n
}

// Size returns the number of components in the name.
func (n *Name) Size() int {
	return len(n.components)
}

// Get returns the component at the given index. A negative index counts from
// the end of the name. An out-of-range index returns a zero component.
func (n *Name) Get(i int) Component {
	if i < 0 {
		i += len(n.components)
	}
	if i < 0 || i >= len(n.components) {
		return Component{typ: tlv.GenericNameComponent}
	}
	return n.components[i]
}

// GetPrefix returns a new name containing the first nComponents components. A
// negative nComponents counts from the end, so GetPrefix(-1) drops the final
// component.
func (n *Name) GetPrefix(nComponents int) *Name {
	if nComponents < 0 {
		nComponents += len(n.components)
	}
	return n.GetSubName(0, nComponents)
}

// GetSubName returns a new name containing count components starting at
// offset. A negative offset counts from the end of the name; a negative count
// takes all remaining components.
func (n *Name) GetSubName(offset int, count int) *Name {
	if offset < 0 {
		offset += len(n.components)
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(n.components) {
		offset = len(n.components)
	}
	if count < 0 || offset+count > len(n.components) {
		count = len(n.components) - offset
	}

	sub := new(Name)
	sub.components = make([]Component, count)
	copy(sub.components, n.components[offset:offset+count])
	return sub
}

// Clear removes all components from the name.
func (n *Name) Clear() {
	n.components = n.components[:0]
	n.changeCount++
}

// Equals returns whether both names have the same components.
func (n *Name) Equals(other *Name) bool {
	if len(n.components) != len(other.components) {
		return false
	}
	for i, component := range n.components {
		if !component.Equals(other.components[i]) {
			return false
		}
	}
	return true
}

// Compare orders names canonically: component by component, with a name that
// is a proper prefix of another sorting first.
func (n *Name) Compare(other *Name) int {
	for i := 0; i < len(n.components) && i < len(other.components); i++ {
		comparison := n.components[i].Compare(other.components[i])
		if comparison != 0 {
			return comparison
		}
	}
	if len(n.components) < len(other.components) {
		return -1
	} else if len(n.components) > len(other.components) {
		return 1
	}
	return 0
}

// Match returns whether this name is a prefix of (or equal to) the given name.
func (n *Name) Match(other *Name) bool {
	if len(n.components) > len(other.components) {
		return false
	}
	for i, component := range n.components {
		if !component.Equals(other.components[i]) {
			return false
		}
	}
	return true
}

// GetSuccessor returns the next name in canonical order that is not a
// descendant of this name: the successor of the final component. The successor
// of the empty name is the name of a single zero-octet generic component.
func (n *Name) GetSuccessor() *Name {
	if len(n.components) == 0 {
		return NewName().Append(NewGenericComponent([]byte{0}))
	}
	return n.GetPrefix(-1).Append(n.Get(-1).Successor())
}

// DeepCopy returns a copy of the name. Components are immutable, so the copy
// shares their storage.
func (n *Name) DeepCopy() *Name {
	copied := new(Name)
	copied.components = make([]Component, len(n.components))
	copy(copied.components, n.components)
	return copied
}

// Hash returns a hash of the wire encoding of the name, cached until the name
// is mutated.
func (n *Name) Hash() uint64 {
	if n.haveCachedHash && n.cachedHashChangeCount == n.changeCount {
		return n.cachedHash
	}

	encoder := tlv.NewEncoder()
	encodeNameComponents(encoder, n)
	encoder.WriteTypeAndLength(tlv.Name, encoder.Len())
	n.cachedHash = xxhash.Sum64(encoder.Output())
	n.cachedHashChangeCount = n.changeCount
	n.haveCachedHash = true
	return n.cachedHash
}

// ChangeCount returns the number of times the name has been mutated.
func (n *Name) ChangeCount() uint64 {
	return n.changeCount
}
