/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"net"
	"strings"

	"github.com/named-data/GoNDN2/core"
	"github.com/pkg/errors"
	"github.com/zjkmxy/stealthpool"
)

// UnixStreamTransport is a Unix stream transport for communicating with a
// local forwarder.
type UnixStreamTransport struct {
	transportBase
	conn net.Conn
}

var _ Transport = &UnixStreamTransport{}

// MakeUnixStreamTransport creates a Unix stream transport.
func MakeUnixStreamTransport(remoteURI *URI) (*UnixStreamTransport, error) {
	if !remoteURI.IsCanonical() || remoteURI.Scheme() != "unix" {
		return nil, core.ErrNotCanonical
	}

	t := new(UnixStreamTransport)
	t.makeTransportBase(remoteURI, Local, core.MaxNDNPacketSize)
	return t, nil
}

func (t *UnixStreamTransport) String() string {
	return "UnixStreamTransport, RemoteURI=" + t.remoteURI.String()
}

// Connect dials the forwarder's socket and starts the receive goroutine.
func (t *UnixStreamTransport) Connect(observer ElementObserver, onConnected func()) error {
	path := t.remoteURI.Path()
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	conn, err := net.Dial("unix", path)
	if err != nil {
		return errors.WithMessage(err, "unable to connect to Unix socket")
	}
	t.conn = conn
	t.observer = observer
	t.onConnected = onConnected
	t.signalConnected()

	go t.runReceive()
	return nil
}

// Send transmits one encoded element to the forwarder.
func (t *UnixStreamTransport) Send(element []byte) error {
	if err := t.checkSendSize(element); err != nil {
		return err
	}

	core.LogTrace(t, "Sending element of size ", len(element))
	if _, err := t.conn.Write(element); err != nil {
		return errors.WithMessage(err, "unable to send on socket")
	}
	return nil
}

// IsAsync returns whether the transport receives on its own goroutine.
func (t *UnixStreamTransport) IsAsync() bool {
	return true
}

// Close closes the socket and stops the receive goroutine.
func (t *UnixStreamTransport) Close() error {
	if t.isClosed() {
		return nil
	}
	close(t.closeSignal)
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}

func (t *UnixStreamTransport) runReceive() {
	pool, err := stealthpool.New(recvBlockCount, stealthpool.WithBlockSize(recvBlockSize))
	if err != nil {
		t.queueRecvError(errors.WithMessage(err, "unable to allocate receive pool"))
		return
	}
	defer pool.Close()

	recvBuf, err := pool.Get()
	if err != nil {
		t.queueRecvError(errors.WithMessage(err, "unable to allocate receive block"))
		return
	}
	defer pool.Return(recvBuf)

	err = readTlvStream(t.conn, recvBuf, t.queueElement)
	if t.isClosed() {
		return
	}
	core.LogWarn(t, "Unable to read from socket (", err, ") - closing")
	t.queueRecvError(err)
}
