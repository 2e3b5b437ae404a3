/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

// KeyLocatorType indicates which variant a KeyLocator holds.
type KeyLocatorType int

// KeyLocator variants.
const (
	KeyLocatorUnset KeyLocatorType = iota
	KeyLocatorKeyName
	KeyLocatorKeyDigest
)

// KeyLocator names the key that produced a signature, either by key name or
// by a digest of the key.
type KeyLocator struct {
	typ     KeyLocatorType
	keyName Name
	keyData Blob

	changeCount        uint64
	keyNameChangeCount uint64
}

// Type returns which variant the KeyLocator holds.
func (k *KeyLocator) Type() KeyLocatorType {
	return k.typ
}

// KeyName returns the key name. Mutating it through the returned pointer is
// observed by the enclosing packet's change count.
func (k *KeyLocator) KeyName() *Name {
	return &k.keyName
}

// SetKeyName sets the KeyLocator to the KeyName variant with a copy of the
// given name.
func (k *KeyLocator) SetKeyName(name *Name) {
	k.typ = KeyLocatorKeyName
	k.keyName = *name.DeepCopy()
	k.keyData = Blob{}
	k.changeCount++
}

// KeyData returns the key digest.
func (k *KeyLocator) KeyData() Blob {
	return k.keyData
}

// SetKeyData sets the KeyLocator to the KeyDigest variant with the given
// digest.
func (k *KeyLocator) SetKeyData(data Blob) {
	k.typ = KeyLocatorKeyDigest
	k.keyData = data
	k.keyName.Clear()
	k.changeCount++
}

// Clear resets the KeyLocator to the unset variant.
func (k *KeyLocator) Clear() {
	k.typ = KeyLocatorUnset
	k.keyName.Clear()
	k.keyData = Blob{}
	k.changeCount++
}

// Equals returns whether both KeyLocators hold the same variant with equal
// contents.
func (k *KeyLocator) Equals(other *KeyLocator) bool {
	if k.typ != other.typ {
		return false
	}
	switch k.typ {
	case KeyLocatorKeyName:
		return k.keyName.Equals(&other.keyName)
	case KeyLocatorKeyDigest:
		return k.keyData.Equals(other.keyData)
	}
	return true
}

// ChangeCount returns the number of times the KeyLocator or its nested key
// name has been mutated.
func (k *KeyLocator) ChangeCount() uint64 {
	if k.keyNameChangeCount != k.keyName.ChangeCount() {
		k.keyNameChangeCount = k.keyName.ChangeCount()
		k.changeCount++
	}
	return k.changeCount
}
