/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/GoNDN2/ndn"
	"github.com/pkg/errors"
)

// MakeTransportFromURI creates the transport matching the URI's scheme.
func MakeTransportFromURI(remoteURI *URI) (Transport, error) {
	switch remoteURI.URIType() {
	case nullURI:
		return MakeNullTransport(), nil
	case udpURI:
		return MakeUnicastUDPTransport(remoteURI)
	case tcpURI:
		return MakeUnicastTCPTransport(remoteURI)
	case unixURI:
		return MakeUnixStreamTransport(remoteURI)
	case wsURI:
		return MakeWebSocketTransport(remoteURI)
	default:
		return nil, errors.WithMessagef(ndn.ErrConfiguration, "no transport for URI %s", remoteURI)
	}
}
