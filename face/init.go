/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import "github.com/named-data/GoNDN2/core"

// faceQueueSize is the maximum number of received elements that can be buffered on a face.
var faceQueueSize int

// UDPUnicastPort is the standard unicast UDP port for NDN.
var UDPUnicastPort uint16

// TCPUnicastPort is the standard unicast TCP port for NDN.
var TCPUnicastPort uint16

// WebSocketPort is the standard WebSocket port for NDN.
var WebSocketPort uint16

// UnixSocketPath is the standard Unix socket file path for NDN.
var UnixSocketPath string

func init() {
	Configure()
}

// Configure configures the face system. Applications that load a
// configuration file call this again afterward to apply it.
func Configure() {
	faceQueueSize = core.GetConfigIntDefault("faces.queue_size", 1024)
	UDPUnicastPort = core.GetConfigUint16Default("faces.udp.port_unicast", 6363)
	TCPUnicastPort = core.GetConfigUint16Default("faces.tcp.port_unicast", 6363)
	WebSocketPort = core.GetConfigUint16Default("faces.websocket.port", 9696)
	UnixSocketPath = core.GetConfigStringDefault("faces.unix.socket_path", "/run/nfd.sock")
}
