/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face_test

import (
	"testing"

	"github.com/named-data/GoNDN2/face"
	"github.com/stretchr/testify/assert"
)

func TestNull(t *testing.T) {
	uri := face.MakeNullFaceURI()
	assert.True(t, uri.IsCanonical())
	assert.NoError(t, uri.Canonize())
	assert.Equal(t, "null", uri.Scheme())
	assert.Equal(t, "", uri.Path())
	assert.Equal(t, uint16(0), uri.Port())
	assert.Equal(t, "null://", uri.String())
	assert.Equal(t, face.NonLocal, uri.Scope())

	uri = face.DecodeURIString("null://")
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "null://", uri.String())
}

func TestUDP(t *testing.T) {
	uri := face.MakeUDPFaceURI(4, "192.0.2.1", 6363)
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "udp4", uri.Scheme())
	assert.Equal(t, "192.0.2.1", uri.Path())
	assert.Equal(t, uint16(6363), uri.Port())
	assert.Equal(t, "udp4://192.0.2.1:6363", uri.String())
	assert.Equal(t, face.NonLocal, uri.Scope())

	uri = face.MakeUDPFaceURI(4, "[2001:db8::1]", 6363)
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "udp6", uri.Scheme())      // Canonized into UDP6
	assert.Equal(t, "2001:db8::1", uri.Path()) // Braces are trimmed by canonization
	assert.Equal(t, uint16(6363), uri.Port())
	assert.Equal(t, "udp6://[2001:db8::1]:6363", uri.String())

	uri = face.MakeUDPFaceURI(6, "2001:db8::1%eth0", 6363)
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "udp6", uri.Scheme())
	assert.Equal(t, "2001:db8::1%eth0", uri.Path())
	assert.Equal(t, "2001:db8::1", uri.PathHost())
	assert.Equal(t, "eth0", uri.PathZone())
	assert.Equal(t, uint16(6363), uri.Port())
	assert.Equal(t, "udp6://[2001:db8::1%eth0]:6363", uri.String())

	uri = face.MakeUDPFaceURI(4, "127.0.0.1", 6363)
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, face.Local, uri.Scope())

	uri = face.DecodeURIString("udp4://192.0.2.1:6363")
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "udp4", uri.Scheme())
	assert.Equal(t, "192.0.2.1", uri.Path())
	assert.Equal(t, uint16(6363), uri.Port())
	assert.Equal(t, "udp4://192.0.2.1:6363", uri.String())

	// Generic scheme canonizes to the address family.
	uri = face.DecodeURIString("udp://192.0.2.1:6363")
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "udp4", uri.Scheme())

	uri = face.DecodeURIString("udp6://[2001:db8::1]:6363")
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "udp6", uri.Scheme())
	assert.Equal(t, "2001:db8::1", uri.Path())
	assert.Equal(t, uint16(6363), uri.Port())
	assert.Equal(t, "udp6://[2001:db8::1]:6363", uri.String())

	uri = face.DecodeURIString("udp4://192.0.2.1:0")
	assert.False(t, uri.IsCanonical())
}

func TestTCP(t *testing.T) {
	uri := face.MakeTCPFaceURI(4, "192.0.2.1", 6363)
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "tcp4", uri.Scheme())
	assert.Equal(t, "192.0.2.1", uri.Path())
	assert.Equal(t, uint16(6363), uri.Port())
	assert.Equal(t, "tcp4://192.0.2.1:6363", uri.String())
	assert.Equal(t, face.NonLocal, uri.Scope())

	uri = face.MakeTCPFaceURI(6, "2001:db8::1", 6363)
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "tcp6", uri.Scheme())
	assert.Equal(t, "tcp6://[2001:db8::1]:6363", uri.String())

	uri = face.MakeTCPFaceURI(4, "127.0.0.1", 6363)
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, face.Local, uri.Scope())

	uri = face.DecodeURIString("tcp://192.0.2.1:6363")
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "tcp4", uri.Scheme())
	assert.Equal(t, "tcp4://192.0.2.1:6363", uri.String())
}

func TestUnix(t *testing.T) {
	socketPath := t.TempDir() + "/nfd.sock"
	uri := face.MakeUnixFaceURI(socketPath)
	assert.True(t, uri.IsCanonical())
	assert.NoError(t, uri.Canonize())
	assert.Equal(t, "unix", uri.Scheme())
	assert.Equal(t, socketPath, uri.Path())
	assert.Equal(t, uint16(0), uri.Port())
	assert.Equal(t, "unix://"+socketPath, uri.String())
	assert.Equal(t, face.Local, uri.Scope())

	// Is a directory
	uri = face.MakeUnixFaceURI(t.TempDir())
	assert.False(t, uri.IsCanonical())
	assert.Error(t, uri.Canonize())

	uri = face.DecodeURIString("unix://" + socketPath)
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, socketPath, uri.Path())
}

func TestWebSocket(t *testing.T) {
	uri := face.MakeWebSocketFaceURI("127.0.0.1", 9696, false)
	assert.True(t, uri.IsCanonical())
	assert.NoError(t, uri.Canonize())
	assert.Equal(t, "ws", uri.Scheme())
	assert.Equal(t, "127.0.0.1", uri.Path())
	assert.Equal(t, uint16(9696), uri.Port())
	assert.Equal(t, "ws://127.0.0.1:9696", uri.String())
	assert.Equal(t, face.Local, uri.Scope())

	uri = face.MakeWebSocketFaceURI("router.example.com", 443, true)
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "wss", uri.Scheme())
	assert.Equal(t, "wss://router.example.com:443", uri.String())
	assert.Equal(t, face.NonLocal, uri.Scope())

	uri = face.DecodeURIString("ws://localhost:9696")
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "ws", uri.Scheme())
	assert.Equal(t, "localhost", uri.Path())
	assert.Equal(t, face.Local, uri.Scope())

	// A path component is not allowed
	uri = face.DecodeURIString("ws://127.0.0.1:9696/endpoint")
	assert.False(t, uri.IsCanonical())
	assert.Equal(t, "unknown://", uri.String())
}

func TestUnknown(t *testing.T) {
	uri := face.DecodeURIString("fake://abc:123")
	assert.False(t, uri.IsCanonical())
	assert.Equal(t, "unknown://", uri.String())
	assert.Error(t, uri.Canonize())
	assert.False(t, uri.IsCanonical())
	assert.Equal(t, "unknown://", uri.String())
	assert.Equal(t, face.Unknown, uri.Scope())
}
