/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"net"
	"strconv"

	"github.com/named-data/GoNDN2/core"
	"github.com/named-data/GoNDN2/face/impl"
	"github.com/pkg/errors"
	"github.com/zjkmxy/stealthpool"
)

// UnicastTCPTransport is a unicast TCP transport.
type UnicastTCPTransport struct {
	transportBase
	dialer *net.Dialer
	conn   *net.TCPConn
}

var _ Transport = &UnicastTCPTransport{}

// MakeUnicastTCPTransport creates a new unicast TCP transport.
func MakeUnicastTCPTransport(remoteURI *URI) (*UnicastTCPTransport, error) {
	if !remoteURI.IsCanonical() || (remoteURI.Scheme() != "tcp4" && remoteURI.Scheme() != "tcp6") {
		return nil, core.ErrNotCanonical
	}

	t := new(UnicastTCPTransport)
	t.makeTransportBase(remoteURI, remoteURI.Scope(), core.MaxNDNPacketSize)
	return t, nil
}

func (t *UnicastTCPTransport) String() string {
	return "UnicastTCPTransport, RemoteURI=" + t.remoteURI.String()
}

// Connect dials the remote endpoint and starts the receive goroutine.
func (t *UnicastTCPTransport) Connect(observer ElementObserver, onConnected func()) error {
	// Configure dialer so we can allow address reuse
	t.dialer = &net.Dialer{Control: impl.SyscallReuseAddr}

	conn, err := t.dialer.Dial(t.remoteURI.Scheme(),
		net.JoinHostPort(t.remoteURI.Path(), strconv.Itoa(int(t.remoteURI.Port()))))
	if err != nil {
		return errors.WithMessage(err, "unable to connect to remote endpoint")
	}
	t.conn = conn.(*net.TCPConn)
	t.observer = observer
	t.onConnected = onConnected
	t.signalConnected()

	go t.runReceive()
	return nil
}

// Send transmits one encoded element to the remote endpoint.
func (t *UnicastTCPTransport) Send(element []byte) error {
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
func (t *UnicastTCPTransport) IsAsync() bool {
	return true
}

// Close closes the socket and stops the receive goroutine.
func (t *UnicastTCPTransport) Close() error {
	if t.isClosed() {
		return nil
	}
	close(t.closeSignal)
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}

func (t *UnicastTCPTransport) runReceive() {
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
