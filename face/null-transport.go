/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import "github.com/named-data/GoNDN2/core"

// NullTransport is a transport that drops all packets. It is useful for
// exercising an application offline.
type NullTransport struct {
	transportBase
}

var _ Transport = &NullTransport{}

// MakeNullTransport makes a NullTransport.
func MakeNullTransport() *NullTransport {
	t := new(NullTransport)
	t.makeTransportBase(MakeNullFaceURI(), NonLocal, core.MaxNDNPacketSize)
	return t
}

func (t *NullTransport) String() string {
	return "NullTransport, RemoteURI=" + t.remoteURI.String()
}

// Connect succeeds immediately; there is nothing to dial.
func (t *NullTransport) Connect(observer ElementObserver, onConnected func()) error {
	t.observer = observer
	t.onConnected = onConnected
	t.signalConnected()
	return nil
}

// Send drops the element.
func (t *NullTransport) Send(element []byte) error {
	if err := t.checkSendSize(element); err != nil {
		return err
	}

	core.LogTrace(t, "Dropping element of size ", len(element))
	return nil
}

// IsAsync returns whether the transport receives on its own goroutine.
func (t *NullTransport) IsAsync() bool {
	return false
}

// Close stops the transport.
func (t *NullTransport) Close() error {
	if t.isClosed() {
		return nil
	}
	close(t.closeSignal)
	return nil
}
