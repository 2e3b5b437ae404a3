/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

// Version of the library.
var Version string

// BuildTime contains the timestamp of when this version of the library was built.
var BuildTime string

// MaxNDNPacketSize is the maximum allowed NDN packet size.
const MaxNDNPacketSize = 8800
