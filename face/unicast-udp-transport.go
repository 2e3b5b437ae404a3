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
	"github.com/named-data/GoNDN2/ndn/tlv"
	"github.com/pkg/errors"
	"github.com/zjkmxy/stealthpool"
)

// UnicastUDPTransport is a unicast UDP transport.
type UnicastUDPTransport struct {
	transportBase
	dialer *net.Dialer
	conn   net.Conn
}

var _ Transport = &UnicastUDPTransport{}

// MakeUnicastUDPTransport creates a new unicast UDP transport.
func MakeUnicastUDPTransport(remoteURI *URI) (*UnicastUDPTransport, error) {
	if !remoteURI.IsCanonical() || (remoteURI.Scheme() != "udp4" && remoteURI.Scheme() != "udp6") {
		return nil, core.ErrNotCanonical
	}

	t := new(UnicastUDPTransport)
	t.makeTransportBase(remoteURI, remoteURI.Scope(), core.MaxNDNPacketSize)
	return t, nil
}

func (t *UnicastUDPTransport) String() string {
	return "UnicastUDPTransport, RemoteURI=" + t.remoteURI.String()
}

// Connect opens the socket and starts the receive goroutine.
func (t *UnicastUDPTransport) Connect(observer ElementObserver, onConnected func()) error {
	// Configure dialer so we can allow address reuse
	t.dialer = &net.Dialer{Control: impl.SyscallReuseAddr}

	conn, err := t.dialer.Dial(t.remoteURI.Scheme(),
		net.JoinHostPort(t.remoteURI.Path(), strconv.Itoa(int(t.remoteURI.Port()))))
	if err != nil {
		return errors.WithMessage(err, "unable to connect to remote endpoint")
	}
	t.conn = conn
	t.observer = observer
	t.onConnected = onConnected
	t.signalConnected()

	go t.runReceive()
	return nil
}

// Send transmits one encoded element to the remote endpoint.
func (t *UnicastUDPTransport) Send(element []byte) error {
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
func (t *UnicastUDPTransport) IsAsync() bool {
	return true
}

// Close closes the socket and stops the receive goroutine.
func (t *UnicastUDPTransport) Close() error {
	if t.isClosed() {
		return nil
	}
	close(t.closeSignal)
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}

func (t *UnicastUDPTransport) runReceive() {
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

	for {
		readSize, err := t.conn.Read(recvBuf)
		if err != nil {
			if t.isClosed() {
				return
			}
			core.LogWarn(t, "Unable to read from socket (", err, ") - closing")
			t.queueRecvError(err)
			return
		}

		// A datagram carries whole TLV elements.
		frame := recvBuf[:readSize]
		for len(frame) > 0 {
			_, _, tlvSize, err := tlv.DecodeTypeLength(frame)
			if err != nil || tlvSize > len(frame) {
				core.LogWarn(t, "Received datagram without valid TLV block - DROP")
				break
			}
			t.queueElement(frame[:tlvSize])
			frame = frame[tlvSize:]
		}
	}
}
