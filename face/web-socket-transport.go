/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/gorilla/websocket"
	"github.com/named-data/GoNDN2/core"
	"github.com/pkg/errors"
)

// WebSocketTransport communicates with a forwarder's WebSocket channel.
type WebSocketTransport struct {
	transportBase
	c *websocket.Conn
}

var _ Transport = &WebSocketTransport{}

// MakeWebSocketTransport creates a WebSocket transport.
func MakeWebSocketTransport(remoteURI *URI) (*WebSocketTransport, error) {
	if !remoteURI.IsCanonical() || (remoteURI.Scheme() != "ws" && remoteURI.Scheme() != "wss") {
		return nil, core.ErrNotCanonical
	}

	t := new(WebSocketTransport)
	t.makeTransportBase(remoteURI, remoteURI.Scope(), core.MaxNDNPacketSize)
	return t, nil
}

func (t *WebSocketTransport) String() string {
	return "WebSocketTransport, RemoteURI=" + t.remoteURI.String()
}

// Connect dials the remote endpoint and starts the receive goroutine.
func (t *WebSocketTransport) Connect(observer ElementObserver, onConnected func()) error {
	c, _, err := websocket.DefaultDialer.Dial(t.remoteURI.String(), nil)
	if err != nil {
		return errors.WithMessage(err, "unable to connect to remote endpoint")
	}
	t.c = c
	t.observer = observer
	t.onConnected = onConnected
	t.signalConnected()

	go t.runReceive()
	return nil
}

// Send transmits one encoded element as a binary message.
func (t *WebSocketTransport) Send(element []byte) error {
	if err := t.checkSendSize(element); err != nil {
		return err
	}

	core.LogTrace(t, "Sending element of size ", len(element))
	if err := t.c.WriteMessage(websocket.BinaryMessage, element); err != nil {
		return errors.WithMessage(err, "unable to send on socket")
	}
	return nil
}

// IsAsync returns whether the transport receives on its own goroutine.
func (t *WebSocketTransport) IsAsync() bool {
	return true
}

// Close closes the connection and stops the receive goroutine.
func (t *WebSocketTransport) Close() error {
	if t.isClosed() {
		return nil
	}
	close(t.closeSignal)
	if t.c != nil {
		return t.c.Close()
	}
	return nil
}

func (t *WebSocketTransport) runReceive() {
	for {
		mt, message, err := t.c.ReadMessage()
		if err != nil {
			if t.isClosed() {
				return
			}
			core.LogWarn(t, "Unable to read from socket (", err, ") - closing")
			t.queueRecvError(err)
			return
		}

		if mt != websocket.BinaryMessage {
			core.LogWarn(t, "Ignored non-binary message")
			continue
		}

		if len(message) > core.MaxNDNPacketSize {
			core.LogWarn(t, "Received too much data without valid TLV block - DROP")
			continue
		}

		t.queueElement(message)
	}
}
