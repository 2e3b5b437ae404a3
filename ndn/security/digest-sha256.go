/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package security

import (
	"crypto/sha256"
	"crypto/subtle"
)

// DigestSha256 signs with a plain SHA-256 digest over the signed portion. It
// carries no key material and provides integrity only.
type DigestSha256 struct{}

// Sign returns the SHA-256 digest of the buffer.
func (DigestSha256) Sign(buffer []byte) ([]byte, error) {
	digest := sha256.Sum256(buffer)
	return digest[:], nil
}

// Validate returns whether the signature is the SHA-256 digest of the buffer.
func (DigestSha256) Validate(buffer []byte, signature []byte) bool {
	digest := sha256.Sum256(buffer)
	return subtle.ConstantTimeCompare(digest[:], signature) == 1
}
