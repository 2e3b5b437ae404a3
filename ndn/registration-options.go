/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2022-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

// NFD route flag bits.
const (
	NfdFlagChildInherit uint64 = 1
	NfdFlagCapture      uint64 = 2
)

// RegistrationOptions holds the flags of a prefix registration. The default
// is child inherit on and capture off.
type RegistrationOptions struct {
	childInherit bool
	capture      bool

	changeCount uint64
}

// NewRegistrationOptions creates registration options with the defaults.
func NewRegistrationOptions() *RegistrationOptions {
	return &RegistrationOptions{childInherit: true}
}

// ChildInherit returns whether registrations under this prefix inherit it.
func (r *RegistrationOptions) ChildInherit() bool {
	return r.childInherit
}

// SetChildInherit sets the child inherit flag.
func (r *RegistrationOptions) SetChildInherit(childInherit bool) {
	r.childInherit = childInherit
	r.changeCount++
}

// Capture returns whether this registration shadows shorter prefixes.
func (r *RegistrationOptions) Capture() bool {
	return r.capture
}

// SetCapture sets the capture flag.
func (r *RegistrationOptions) SetCapture(capture bool) {
	r.capture = capture
	r.changeCount++
}

// NfdForwardingFlags returns the NFD wire representation of the flags.
func (r *RegistrationOptions) NfdForwardingFlags() uint64 {
	var flags uint64
	if r.childInherit {
		flags |= NfdFlagChildInherit
	}
	if r.capture {
		flags |= NfdFlagCapture
	}
	return flags
}

// SetNfdForwardingFlags sets the flags from their NFD wire representation.
func (r *RegistrationOptions) SetNfdForwardingFlags(flags uint64) {
	r.childInherit = flags&NfdFlagChildInherit != 0
	r.capture = flags&NfdFlagCapture != 0
	r.changeCount++
}

// ChangeCount returns the number of times the options have been mutated.
func (r *RegistrationOptions) ChangeCount() uint64 {
	return r.changeCount
}
