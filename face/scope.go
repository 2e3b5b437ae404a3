/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

// Scope indicates the scope of a transport endpoint.
type Scope int

const (
	// Unknown indicates that the scope is unknown.
	Unknown Scope = -1
	// NonLocal indicates the endpoint is non-local (to another host).
	NonLocal Scope = 0
	// Local indicates the endpoint is local (to a forwarder on this host).
	Local Scope = 1
)
