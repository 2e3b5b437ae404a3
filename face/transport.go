/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/GoNDN2/core"
	"github.com/named-data/GoNDN2/ndn"
	"github.com/pkg/errors"
)

// ElementObserver receives whole TLV elements extracted from a transport.
type ElementObserver interface {
	OnReceivedElement(element []byte)
}

// Transport provides an interface for transports for specific face types.
// Received elements and the connected signal are queued by the transport's
// read side and delivered to the observer only from within ProcessEvents, so
// that all dispatch happens on the goroutine driving the pump.
type Transport interface {
	String() string

	// Connect dials the remote endpoint and starts receiving. The connected
	// signal is queued for delivery through ProcessEvents.
	Connect(observer ElementObserver, onConnected func()) error
	// Send transmits one encoded element.
	Send(element []byte) error
	// ProcessEvents fires a pending connected signal, delivers queued
	// elements to the observer, and surfaces any receive failure. It never
	// blocks.
	ProcessEvents() error
	// IsAsync returns whether the transport receives on its own goroutine.
	IsAsync() bool
	// IsLocal returns whether the transport connects to a local forwarder.
	IsLocal() bool
	Close() error
}

// transportBase provides logic common between transport types: the remote
// URI, the packet ceiling, and the queues between the read goroutine and the
// pump.
type transportBase struct {
	remoteURI *URI
	scope     Scope
	mtu       int

	observer    ElementObserver
	onConnected func()

	connectedSignal chan struct{}
	elements        chan []byte
	recvError       chan error
	closeSignal     chan struct{}
}

func (t *transportBase) makeTransportBase(remoteURI *URI, scope Scope, mtu int) {
	t.remoteURI = remoteURI
	t.scope = scope
	t.mtu = mtu
	t.connectedSignal = make(chan struct{}, 1)
	t.elements = make(chan []byte, faceQueueSize)
	t.recvError = make(chan error, 1)
	t.closeSignal = make(chan struct{})
}

// RemoteURI returns the remote URI of the transport.
func (t *transportBase) RemoteURI() *URI {
	return t.remoteURI
}

// MTU returns the maximum transmission unit (MTU) of the transport.
func (t *transportBase) MTU() int {
	return t.mtu
}

// IsLocal returns whether the transport connects to a local forwarder.
func (t *transportBase) IsLocal() bool {
	return t.scope == Local
}

// ProcessEvents fires a pending connected signal, then delivers queued
// elements to the observer in arrival order. A receive failure is surfaced
// only after every element queued before it has been delivered.
func (t *transportBase) ProcessEvents() error {
	select {
	case <-t.connectedSignal:
		if t.onConnected != nil {
			t.onConnected()
		}
	default:
	}

	for {
		select {
		case element := <-t.elements:
			t.observer.OnReceivedElement(element)
		default:
			select {
			case err := <-t.recvError:
				return err
			default:
				return nil
			}
		}
	}
}

func (t *transportBase) signalConnected() {
	select {
	case t.connectedSignal <- struct{}{}:
	default:
	}
}

// queueElement copies the element out of the receive staging buffer and
// queues it for the pump.
func (t *transportBase) queueElement(element []byte) {
	queued := make([]byte, len(element))
	copy(queued, element)
	select {
	case t.elements <- queued:
	default:
		core.LogWarn(t, "Received element queue full - DROP")
	}
}

func (t *transportBase) queueRecvError(err error) {
	select {
	case t.recvError <- err:
	default:
	}
}

func (t *transportBase) isClosed() bool {
	select {
	case <-t.closeSignal:
		return true
	default:
		return false
	}
}

// checkSendSize rejects elements above the packet ceiling before any bytes
// reach the socket.
func (t *transportBase) checkSendSize(element []byte) error {
	if len(element) > t.mtu {
		return errors.WithMessagef(ndn.ErrSizeLimit,
			"element size %d exceeds MTU %d", len(element), t.mtu)
	}
	return nil
}

func (t *transportBase) String() string {
	if t.remoteURI != nil {
		return "Transport, RemoteURI=" + t.remoteURI.String()
	}
	return "Transport"
}
