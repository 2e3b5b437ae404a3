/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2024 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"encoding/hex"
	"strconv"
	"time"
)

// DefaultInterestLifetime is the lifetime applied to an Interest that does
// not carry an InterestLifetime field.
const DefaultInterestLifetime = 4 * time.Second

// Interest represents an NDN Interest packet: a name plus selection
// constraints, a nonce, a lifetime, and optional forwarding hints and
// application parameters. The selectors and link fields belong to wire
// format v0.2; an Interest carrying application parameters encodes as v0.3.
type Interest struct {
	name                    Name
	minSuffixComponents     *uint64
	maxSuffixComponents     *uint64
	keyLocator              KeyLocator
	exclude                 Exclude
	childSelector           *uint64
	mustBeFresh             bool
	nonce                   []byte
	lifetime                *time.Duration
	forwardingHint          DelegationSet
	linkWireEncoding        []byte
	selectedDelegationIndex *int
	applicationParameters   Blob

	defaultWireEncoding       SignedBlob
	defaultWireEncodingFormat WireFormat
	defaultWireEncodingCount  uint64

	changeCount               uint64
	nameChangeCount           uint64
	keyLocatorChangeCount     uint64
	excludeChangeCount        uint64
	forwardingHintChangeCount uint64
	getNonceChangeCount       uint64
}

// NewInterest creates a new Interest with a copy of the given name and
// default values: prefix matching allowed, freshness not required, no nonce,
// no lifetime field.
func NewInterest(name *Name) *Interest {
	i := new(Interest)
	i.name = *name.DeepCopy()
	return i
}

//////////////////
// Setters/Getters
//////////////////

// Name returns the name of the Interest. Mutating it through the returned
// pointer is observed by the change count.
func (i *Interest) Name() *Name {
	return &i.name
}

// SetName sets the name of the Interest to a copy of the given name.
func (i *Interest) SetName(name *Name) {
	i.name = *name.DeepCopy()
	i.changeCount++
}

// MinSuffixComponents returns the minimum number of name components a
// matching Data packet must have beyond the Interest name (counting the
// implicit digest), or nil if unset.
func (i *Interest) MinSuffixComponents() *uint64 {
	return copyOptionalUint64(i.minSuffixComponents)
}

// SetMinSuffixComponents sets the minimum suffix component count (or unsets
// it if nil is specified).
func (i *Interest) SetMinSuffixComponents(min *uint64) {
	i.minSuffixComponents = copyOptionalUint64(min)
	i.changeCount++
}

// MaxSuffixComponents returns the maximum number of name components a
// matching Data packet may have beyond the Interest name (counting the
// implicit digest), or nil if unset.
func (i *Interest) MaxSuffixComponents() *uint64 {
	return copyOptionalUint64(i.maxSuffixComponents)
}

// SetMaxSuffixComponents sets the maximum suffix component count (or unsets
// it if nil is specified).
func (i *Interest) SetMaxSuffixComponents(max *uint64) {
	i.maxSuffixComponents = copyOptionalUint64(max)
	i.changeCount++
}

// CanBePrefix returns whether the Interest may be satisfied by a Data packet
// whose name the Interest name is a proper prefix of. This is the v0.3 view
// of MaxSuffixComponents: false exactly when the maximum suffix count is 1.
func (i *Interest) CanBePrefix() bool {
	return i.maxSuffixComponents == nil || *i.maxSuffixComponents != 1
}

// SetCanBePrefix sets whether the Interest may be satisfied by a Data packet
// whose name the Interest name is a proper prefix of, by adjusting
// MaxSuffixComponents.
func (i *Interest) SetCanBePrefix(canBePrefix bool) {
	if canBePrefix {
		i.maxSuffixComponents = nil
	} else {
		i.maxSuffixComponents = new(uint64)
		*i.maxSuffixComponents = 1
	}
	i.changeCount++
}

// KeyLocator returns the publisher public key locator selector. Mutating it
// through the returned pointer is observed by the change count.
func (i *Interest) KeyLocator() *KeyLocator {
	return &i.keyLocator
}

// Exclude returns the Exclude selector. Mutating it through the returned
// pointer is observed by the change count.
func (i *Interest) Exclude() *Exclude {
	return &i.exclude
}

// ChildSelector returns the child selector (0 leftmost, 1 rightmost), or nil
// if unset.
func (i *Interest) ChildSelector() *uint64 {
	return copyOptionalUint64(i.childSelector)
}

// SetChildSelector sets the child selector (or unsets it if nil is
// specified).
func (i *Interest) SetChildSelector(childSelector *uint64) {
	i.childSelector = copyOptionalUint64(childSelector)
	i.changeCount++
}

// MustBeFresh returns whether the Interest may only be satisfied by Data
// packets within their freshness period.
func (i *Interest) MustBeFresh() bool {
	return i.mustBeFresh
}

// SetMustBeFresh sets whether the Interest may only be satisfied by Data
// packets within their freshness period.
func (i *Interest) SetMustBeFresh(mustBeFresh bool) {
	i.mustBeFresh = mustBeFresh
	i.changeCount++
}

// Nonce returns a copy of the nonce, or an empty slice if not set. A nonce
// set before the last mutation of the Interest is treated as not set, so a
// changed Interest is re-encoded with a fresh nonce.
func (i *Interest) Nonce() []byte {
	if i.getNonceChangeCount != i.ChangeCount() {
		i.nonce = nil
		i.getNonceChangeCount = i.ChangeCount()
	}
	nonce := make([]byte, len(i.nonce))
	copy(nonce, i.nonce)
	return nonce
}

// SetNonce sets the nonce. Encoding normalizes the nonce to exactly 4 bytes.
func (i *Interest) SetNonce(nonce []byte) {
	i.nonce = make([]byte, len(nonce))
	copy(i.nonce, nonce)
	i.changeCount++
	i.getNonceChangeCount = i.ChangeCount()
}

// Lifetime returns the Interest lifetime, or nil if the Interest does not
// carry one (the protocol default applies).
func (i *Interest) Lifetime() *time.Duration {
	if i.lifetime == nil {
		return nil
	}
	lifetime := new(time.Duration)
	*lifetime = *i.lifetime
	return lifetime
}

// SetLifetime sets the Interest lifetime (or unsets it if nil is specified).
func (i *Interest) SetLifetime(lifetime *time.Duration) {
	if lifetime == nil {
		i.lifetime = nil
	} else {
		i.lifetime = new(time.Duration)
		*i.lifetime = *lifetime
	}
	i.changeCount++
}

// ForwardingHint returns the forwarding hint delegations. Mutating them
// through the returned pointer is observed by the change count.
func (i *Interest) ForwardingHint() *DelegationSet {
	return &i.forwardingHint
}

// HasLink returns whether a Link object wire encoding is attached.
func (i *Interest) HasLink() bool {
	return len(i.linkWireEncoding) > 0
}

// LinkWireEncoding returns a copy of the wire encoding of the attached Link
// object, or nil if none is attached.
func (i *Interest) LinkWireEncoding() []byte {
	if i.linkWireEncoding == nil {
		return nil
	}
	encoding := make([]byte, len(i.linkWireEncoding))
	copy(encoding, i.linkWireEncoding)
	return encoding
}

// SetLinkWireEncoding attaches the wire encoding of a Link object (or
// detaches it if nil is specified).
func (i *Interest) SetLinkWireEncoding(encoding []byte) {
	if encoding == nil {
		i.linkWireEncoding = nil
	} else {
		i.linkWireEncoding = make([]byte, len(encoding))
		copy(i.linkWireEncoding, encoding)
	}
	i.changeCount++
}

// SelectedDelegationIndex returns the index of the selected delegation in the
// attached Link object, or nil if unset.
func (i *Interest) SelectedDelegationIndex() *int {
	if i.selectedDelegationIndex == nil {
		return nil
	}
	index := new(int)
	*index = *i.selectedDelegationIndex
	return index
}

// SetSelectedDelegationIndex sets the index of the selected delegation in the
// attached Link object (or unsets it if nil is specified).
func (i *Interest) SetSelectedDelegationIndex(index *int) {
	if index == nil {
		i.selectedDelegationIndex = nil
	} else {
		i.selectedDelegationIndex = new(int)
		*i.selectedDelegationIndex = *index
	}
	i.changeCount++
}

// HasApplicationParameters returns whether the Interest carries application
// parameters, which selects wire format v0.3.
func (i *Interest) HasApplicationParameters() bool {
	return i.applicationParameters.Size() > 0
}

// ApplicationParameters returns the application parameters.
func (i *Interest) ApplicationParameters() Blob {
	return i.applicationParameters
}

// SetApplicationParameters sets the application parameters.
func (i *Interest) SetApplicationParameters(parameters Blob) {
	i.applicationParameters = parameters
	i.changeCount++
}

///////////
// Matching
///////////

// MatchesName returns whether the given name would satisfy the Interest by
// the name-based rules: prefix match, suffix component bounds counting one
// implicit digest component, and the Exclude selector applied to the
// component immediately after the Interest name.
func (i *Interest) MatchesName(name *Name) bool {
	if !i.name.Match(name) {
		return false
	}

	suffixCount := name.Size() + 1 - i.name.Size()
	if i.minSuffixComponents != nil && uint64(suffixCount) < *i.minSuffixComponents {
		return false
	}
	if i.maxSuffixComponents != nil && uint64(suffixCount) > *i.maxSuffixComponents {
		return false
	}

	if i.exclude.Size() > 0 && name.Size() > i.name.Size() &&
		i.exclude.Matches(name.Get(i.name.Size())) {
		return false
	}
	return true
}

// MatchesData returns whether the given Data packet would satisfy the
// Interest: name prefix or full-name equality, suffix component bounds,
// Exclude, and key locator equality when the Interest selects a publisher.
// The Data packet's implicit digest is computed only when a rule actually
// needs it, which requires encoding with the given wire format.
func (i *Interest) MatchesData(data *Data, wireFormat WireFormat) (bool, error) {
	interestNameLength := i.name.Size()
	dataName := data.Name()
	fullNameLength := dataName.Size() + 1

	if interestNameLength == fullNameLength {
		// Only matchable when the final Interest name component is the digest
		if !i.name.Get(-1).IsImplicitSha256Digest() {
			return false, nil
		}
		fullName, err := data.FullName(wireFormat)
		if err != nil {
			return false, err
		}
		if !i.name.Equals(fullName) {
			return false, nil
		}
	} else if !i.name.Match(dataName) {
		return false, nil
	}

	suffixCount := fullNameLength - interestNameLength
	if i.minSuffixComponents != nil && uint64(suffixCount) < *i.minSuffixComponents {
		return false, nil
	}
	if i.maxSuffixComponents != nil && uint64(suffixCount) > *i.maxSuffixComponents {
		return false, nil
	}

	if i.exclude.Size() > 0 && fullNameLength > interestNameLength {
		if interestNameLength == dataName.Size() {
			// The component after the Interest name is the implicit digest
			fullName, err := data.FullName(wireFormat)
			if err != nil {
				return false, err
			}
			if i.exclude.Matches(fullName.Get(interestNameLength)) {
				return false, nil
			}
		} else if i.exclude.Matches(dataName.Get(interestNameLength)) {
			return false, nil
		}
	}

	if i.keyLocator.Type() != KeyLocatorUnset {
		signature := data.Signature()
		switch signature.Type() {
		case SignatureSha256WithRsaType, SignatureSha256WithEcdsaType, SignatureHmacWithSha256Type:
			if !i.keyLocator.Equals(signature.KeyLocator()) {
				return false, nil
			}
		default:
			return false, nil
		}
	}
	return true, nil
}

///////////
// Encoding
///////////

// WireEncode encodes the Interest, reusing the cached encoding when the
// Interest has not been mutated since it was produced with the same wire
// format. A nil wire format selects DefaultWireFormat.
func (i *Interest) WireEncode(wireFormat WireFormat) (SignedBlob, error) {
	if wireFormat == nil {
		wireFormat = DefaultWireFormat
	}
	if !i.defaultWireEncoding.IsNull() && i.defaultWireEncodingFormat == wireFormat &&
		i.defaultWireEncodingCount == i.ChangeCount() {
		return i.defaultWireEncoding, nil
	}

	encoding, signedPortionBeginOffset, signedPortionEndOffset, err := wireFormat.EncodeInterest(i)
	if err != nil {
		return SignedBlob{}, err
	}
	i.defaultWireEncoding = NewSignedBlob(encoding, false, signedPortionBeginOffset, signedPortionEndOffset)
	i.defaultWireEncodingFormat = wireFormat
	i.defaultWireEncodingCount = i.ChangeCount()
	return i.defaultWireEncoding, nil
}

// WireDecode decodes the Interest from the given bytes, replacing all fields
// and caching a private copy of the encoding. A nil wire format selects
// DefaultWireFormat.
func (i *Interest) WireDecode(input []byte, wireFormat WireFormat) error {
	if wireFormat == nil {
		wireFormat = DefaultWireFormat
	}
	signedPortionBeginOffset, signedPortionEndOffset, err := wireFormat.DecodeInterest(i, input)
	if err != nil {
		return err
	}
	i.defaultWireEncoding = NewSignedBlob(input, true, signedPortionBeginOffset, signedPortionEndOffset)
	i.defaultWireEncodingFormat = wireFormat
	i.defaultWireEncodingCount = i.ChangeCount()
	return nil
}

// DeepCopy returns a copy of the Interest, including its cached encoding.
func (i *Interest) DeepCopy() *Interest {
	copied := NewInterest(&i.name)
	copied.minSuffixComponents = copyOptionalUint64(i.minSuffixComponents)
	copied.maxSuffixComponents = copyOptionalUint64(i.maxSuffixComponents)
	switch i.keyLocator.typ {
	case KeyLocatorKeyName:
		copied.keyLocator.SetKeyName(&i.keyLocator.keyName)
	case KeyLocatorKeyDigest:
		copied.keyLocator.SetKeyData(i.keyLocator.keyData)
	}
	copied.exclude.entries = make([]excludeEntry, len(i.exclude.entries))
	copy(copied.exclude.entries, i.exclude.entries)
	copied.childSelector = i.ChildSelector()
	copied.mustBeFresh = i.mustBeFresh
	copied.lifetime = i.Lifetime()
	for _, delegation := range i.forwardingHint.delegations {
		copied.forwardingHint.appendDelegation(delegation.preference, &delegation.name)
	}
	copied.linkWireEncoding = i.LinkWireEncoding()
	copied.selectedDelegationIndex = i.SelectedDelegationIndex()
	copied.applicationParameters = i.applicationParameters

	nonce := i.Nonce()
	if len(nonce) > 0 {
		copied.SetNonce(nonce)
	}
	if !i.defaultWireEncoding.IsNull() && i.defaultWireEncodingCount == i.ChangeCount() {
		copied.defaultWireEncoding = i.defaultWireEncoding
		copied.defaultWireEncodingFormat = i.defaultWireEncodingFormat
		copied.defaultWireEncodingCount = copied.ChangeCount()
	}
	return copied
}

func (i *Interest) String() string {
	str := "Interest(Name=" + i.name.String()
	if i.minSuffixComponents != nil {
		str += ", MinSuffixComponents=" + strconv.FormatUint(*i.minSuffixComponents, 10)
	}
	if i.maxSuffixComponents != nil {
		str += ", MaxSuffixComponents=" + strconv.FormatUint(*i.maxSuffixComponents, 10)
	}
	if i.exclude.Size() > 0 {
		str += ", Exclude=" + i.exclude.String()
	}
	if i.childSelector != nil {
		str += ", ChildSelector=" + strconv.FormatUint(*i.childSelector, 10)
	}
	if i.mustBeFresh {
		str += ", MustBeFresh"
	}
	if len(i.nonce) > 0 {
		str += ", Nonce=0x" + hex.EncodeToString(i.nonce)
	}
	if i.lifetime != nil {
		str += ", Lifetime=" + strconv.FormatInt(i.lifetime.Milliseconds(), 10) + "ms"
	}
	if i.HasApplicationParameters() {
		str += ", ApplicationParameters"
	}
	str += ")"
	return str
}

// ChangeCount returns the number of times the Interest or its nested fields
// have been mutated.
func (i *Interest) ChangeCount() uint64 {
	if i.nameChangeCount != i.name.ChangeCount() ||
		i.keyLocatorChangeCount != i.keyLocator.ChangeCount() ||
		i.excludeChangeCount != i.exclude.ChangeCount() ||
		i.forwardingHintChangeCount != i.forwardingHint.ChangeCount() {
		i.nameChangeCount = i.name.ChangeCount()
		i.keyLocatorChangeCount = i.keyLocator.ChangeCount()
		i.excludeChangeCount = i.exclude.ChangeCount()
		i.forwardingHintChangeCount = i.forwardingHint.ChangeCount()
		i.changeCount++
	}
	return i.changeCount
}

func copyOptionalUint64(value *uint64) *uint64 {
	if value == nil {
		return nil
	}
	copied := new(uint64)
	*copied = *value
	return copied
}
