/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2022-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"time"

	"github.com/pkg/errors"
)

// Wire representation of ValidityPeriod timestamps.
const validityPeriodIsoFormat = "20060102T150405"

// ValidityPeriod bounds the time range in which a signature is valid. The
// zero value has no period.
type ValidityPeriod struct {
	notBefore time.Time
	notAfter  time.Time
	hasPeriod bool

	changeCount uint64
}

// HasPeriod returns whether a period has been set.
func (v *ValidityPeriod) HasPeriod() bool {
	return v.hasPeriod
}

// NotBefore returns the start of the validity period.
func (v *ValidityPeriod) NotBefore() time.Time {
	return v.notBefore
}

// NotAfter returns the end of the validity period.
func (v *ValidityPeriod) NotAfter() time.Time {
	return v.notAfter
}

// SetPeriod sets the validity period. Timestamps are stored at second
// granularity in UTC, matching the wire representation.
func (v *ValidityPeriod) SetPeriod(notBefore time.Time, notAfter time.Time) {
	v.notBefore = notBefore.UTC().Truncate(time.Second)
	v.notAfter = notAfter.UTC().Truncate(time.Second)
	v.hasPeriod = true
	v.changeCount++
}

// Clear removes the validity period.
func (v *ValidityPeriod) Clear() {
	v.notBefore = time.Time{}
	v.notAfter = time.Time{}
	v.hasPeriod = false
	v.changeCount++
}

// IsValid returns whether the given time falls within the validity period. A
// ValidityPeriod without a period is valid at all times.
func (v *ValidityPeriod) IsValid(now time.Time) bool {
	if !v.hasPeriod {
		return true
	}
	now = now.UTC()
	return !now.Before(v.notBefore) && !now.After(v.notAfter)
}

// Equals returns whether both ValidityPeriods are the same.
func (v *ValidityPeriod) Equals(other *ValidityPeriod) bool {
	if v.hasPeriod != other.hasPeriod {
		return false
	}
	return !v.hasPeriod || (v.notBefore.Equal(other.notBefore) && v.notAfter.Equal(other.notAfter))
}

// ChangeCount returns the number of times the ValidityPeriod has been
// mutated.
func (v *ValidityPeriod) ChangeCount() uint64 {
	return v.changeCount
}

func formatValidityTimestamp(t time.Time) []byte {
	return []byte(t.UTC().Format(validityPeriodIsoFormat))
}

func parseValidityTimestamp(value []byte) (time.Time, error) {
	t, err := time.Parse(validityPeriodIsoFormat, string(value))
	if err != nil {
		return time.Time{}, errors.WithMessage(ErrDecoding, "invalid ValidityPeriod timestamp")
	}
	return t, nil
}
