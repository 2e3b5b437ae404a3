/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import "errors"

// Error definitions
var (
	ErrNotCanonical = errors.New("URI could not be canonized")
)
