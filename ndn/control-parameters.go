/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import "time"

// ControlParameters holds the arguments of an NFD management command, most
// importantly RIB registration. Every field is optional; absent fields are
// omitted from the encoding.
type ControlParameters struct {
	name                *Name
	faceId              *uint64
	uri                 string
	localControlFeature *uint64
	origin              *uint64
	cost                *uint64
	flags               RegistrationOptions
	strategy            *Name
	expirationPeriod    *time.Duration
}

// NewControlParameters creates empty control parameters with default
// registration flags.
func NewControlParameters() *ControlParameters {
	c := new(ControlParameters)
	c.flags = *NewRegistrationOptions()
	return c
}

// Name returns the name argument, or nil if unset.
func (c *ControlParameters) Name() *Name {
	return c.name
}

// SetName sets the name argument to a copy of the given name (or unsets it
// if nil is specified).
func (c *ControlParameters) SetName(name *Name) {
	if name == nil {
		c.name = nil
	} else {
		c.name = name.DeepCopy()
	}
}

// FaceId returns the face id argument, or nil if unset.
func (c *ControlParameters) FaceId() *uint64 {
	return copyOptionalUint64(c.faceId)
}

// SetFaceId sets the face id argument (or unsets it if nil is specified).
func (c *ControlParameters) SetFaceId(faceId *uint64) {
	c.faceId = copyOptionalUint64(faceId)
}

// Uri returns the URI argument, or the empty string if unset.
func (c *ControlParameters) Uri() string {
	return c.uri
}

// SetUri sets the URI argument. The empty string unsets it.
func (c *ControlParameters) SetUri(uri string) {
	c.uri = uri
}

// LocalControlFeature returns the local control feature argument, or nil if
// unset.
func (c *ControlParameters) LocalControlFeature() *uint64 {
	return copyOptionalUint64(c.localControlFeature)
}

// SetLocalControlFeature sets the local control feature argument (or unsets
// it if nil is specified).
func (c *ControlParameters) SetLocalControlFeature(feature *uint64) {
	c.localControlFeature = copyOptionalUint64(feature)
}

// Origin returns the route origin argument, or nil if unset.
func (c *ControlParameters) Origin() *uint64 {
	return copyOptionalUint64(c.origin)
}

// SetOrigin sets the route origin argument (or unsets it if nil is
// specified).
func (c *ControlParameters) SetOrigin(origin *uint64) {
	c.origin = copyOptionalUint64(origin)
}

// Cost returns the route cost argument, or nil if unset.
func (c *ControlParameters) Cost() *uint64 {
	return copyOptionalUint64(c.cost)
}

// SetCost sets the route cost argument (or unsets it if nil is specified).
func (c *ControlParameters) SetCost(cost *uint64) {
	c.cost = copyOptionalUint64(cost)
}

// Flags returns the registration flags. Mutate them through the returned
// pointer.
func (c *ControlParameters) Flags() *RegistrationOptions {
	return &c.flags
}

// SetFlags sets the registration flags to a copy of the given options.
func (c *ControlParameters) SetFlags(flags *RegistrationOptions) {
	c.flags = *flags
}

// Strategy returns the strategy choice argument, or nil if unset.
func (c *ControlParameters) Strategy() *Name {
	return c.strategy
}

// SetStrategy sets the strategy choice argument to a copy of the given name
// (or unsets it if nil is specified).
func (c *ControlParameters) SetStrategy(strategy *Name) {
	if strategy == nil {
		c.strategy = nil
	} else {
		c.strategy = strategy.DeepCopy()
	}
}

// ExpirationPeriod returns the route expiration period, or nil if unset.
func (c *ControlParameters) ExpirationPeriod() *time.Duration {
	if c.expirationPeriod == nil {
		return nil
	}
	period := new(time.Duration)
	*period = *c.expirationPeriod
	return period
}

// SetExpirationPeriod sets the route expiration period (or unsets it if nil
// is specified).
func (c *ControlParameters) SetExpirationPeriod(period *time.Duration) {
	if period == nil {
		c.expirationPeriod = nil
	} else {
		c.expirationPeriod = new(time.Duration)
		*c.expirationPeriod = *period
	}
}
