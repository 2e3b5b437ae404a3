/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/named-data/GoNDN2/core"
	"github.com/named-data/GoNDN2/ndn"
	"github.com/named-data/GoNDN2/ndn/lpv2"
	"github.com/named-data/GoNDN2/ndn/tlv"
	"github.com/named-data/GoNDN2/table"
)

type connectStatus int

const (
	unconnected connectStatus = iota
	connectRequested
	connectComplete
)

// Reserved prefixes and management command names.
var (
	// timeoutPrefix marks Interests used as pure timers. They are entered
	// into the pending Interest table but never transmitted.
	timeoutPrefix, _ = ndn.NameFromString("/local/timeout")

	ribRegisterLocalhost, _ = ndn.NameFromString("/localhost/nfd/rib/register")
	ribRegisterLocalhop, _  = ndn.NameFromString("/localhop/nfd/rib/register")
)

// Lifetimes for RIB registration commands. Commands to a remote forwarder
// travel further, so they get more time.
const (
	localCommandLifetime    = 2 * time.Second
	nonLocalCommandLifetime = 4 * time.Second
)

// Node implements the Interest/Data exchange logic above a Transport: the
// pending Interest, Interest filter, and registered prefix tables, lazy
// connection on the first expressed Interest, and dispatch of received
// elements to application callbacks.
//
// A Node is driven from a single goroutine through ProcessEvents. Its methods
// are not safe for concurrent use, except where noted.
type Node struct {
	transport Transport

	pendingInterests   *table.PendingInterestTable
	interestFilters    *table.InterestFilterTable
	registeredPrefixes *table.RegisteredPrefixTable
	delayedCalls       *table.DelayedCallTable

	commandInterestGenerator commandInterestGenerator

	connectStatus        connectStatus
	onConnectedCallbacks []func()

	// lastEntryId is shared by pending Interests, Interest filters, and
	// registered prefixes, so an id identifies an entry across all three.
	lastEntryId      uint64
	lastEntryIdMutex sync.Mutex
}

// NewNode creates a Node operating over the given transport. The transport is
// connected when the first Interest is expressed.
func NewNode(transport Transport) *Node {
	interestFilters := table.NewInterestFilterTable()
	return &Node{
		transport:          transport,
		pendingInterests:   table.NewPendingInterestTable(),
		interestFilters:    interestFilters,
		registeredPrefixes: table.NewRegisteredPrefixTable(interestFilters),
		delayedCalls:       table.NewDelayedCallTable(),
		connectStatus:      unconnected,
	}
}

func (n *Node) String() string {
	return "Node, " + n.transport.String()
}

// getNextEntryId returns the next entry id. It holds a lock because entry
// ids may be requested from outside the event goroutine.
func (n *Node) getNextEntryId() uint64 {
	n.lastEntryIdMutex.Lock()
	defer n.lastEntryIdMutex.Unlock()
	n.lastEntryId++
	return n.lastEntryId
}

// IsLocal returns whether the transport connects to a forwarder on the local
// machine.
func (n *Node) IsLocal() bool {
	return n.transport.IsLocal()
}

// ExpressInterest sends the Interest and records it in the pending Interest
// table under pendingInterestId. On the first call the transport is connected
// first; Interests expressed while the connection is pending are queued and
// sent once it completes.
func (n *Node) ExpressInterest(pendingInterestId uint64, interest *ndn.Interest,
	onData func(*ndn.Interest, *ndn.Data), onTimeout func(*ndn.Interest),
	onNetworkNack func(*ndn.Interest, *lpv2.NetworkNack), wireFormat ndn.WireFormat) error {
	if wireFormat == nil {
		wireFormat = ndn.DefaultWireFormat
	}

	switch n.connectStatus {
	case connectComplete:
		return n.expressInterestHelper(pendingInterestId, interest, onData, onTimeout, onNetworkNack, wireFormat)
	case unconnected:
		n.connectStatus = connectRequested
		n.onConnectedCallbacks = append(n.onConnectedCallbacks, func() {
			if err := n.expressInterestHelper(pendingInterestId, interest, onData, onTimeout, onNetworkNack, wireFormat); err != nil {
				core.LogError(n, "Unable to express queued Interest: ", err)
			}
		})
		if err := n.transport.Connect(n, n.onConnected); err != nil {
			n.connectStatus = unconnected
			n.onConnectedCallbacks = nil
			return err
		}
	case connectRequested:
		n.onConnectedCallbacks = append(n.onConnectedCallbacks, func() {
			if err := n.expressInterestHelper(pendingInterestId, interest, onData, onTimeout, onNetworkNack, wireFormat); err != nil {
				core.LogError(n, "Unable to express queued Interest: ", err)
			}
		})
	}
	return nil
}

// onConnected runs the callbacks queued while the connection was pending, in
// the order they were queued.
func (n *Node) onConnected() {
	core.LogDebug(n, "Transport connected")
	n.connectStatus = connectComplete
	for _, callback := range n.onConnectedCallbacks {
		callback()
	}
	n.onConnectedCallbacks = nil
}

func (n *Node) expressInterestHelper(pendingInterestId uint64, interest *ndn.Interest,
	onData func(*ndn.Interest, *ndn.Data), onTimeout func(*ndn.Interest),
	onNetworkNack func(*ndn.Interest, *lpv2.NetworkNack), wireFormat ndn.WireFormat) error {
	entry := n.pendingInterests.Add(pendingInterestId, interest, onData, onTimeout, onNetworkNack)
	if entry == nil {
		// Removed before it was expressed.
		return nil
	}

	lifetime := ndn.DefaultInterestLifetime
	if interest.Lifetime() != nil {
		lifetime = *interest.Lifetime()
	}
	n.delayedCalls.CallLater(lifetime, func() {
		n.processInterestTimeout(entry)
	})

	if timeoutPrefix.Match(interest.Name()) {
		// A pure timer, not transmitted.
		return nil
	}

	if len(interest.Nonce()) == 0 {
		nonce := make([]byte, 4)
		if _, err := rand.Read(nonce); err != nil {
			n.pendingInterests.RemoveEntry(entry)
			return errors.WithMessage(err, "unable to generate nonce")
		}
		interest.SetNonce(nonce)
	}

	encoding, err := interest.WireEncode(wireFormat)
	if err != nil {
		n.pendingInterests.RemoveEntry(entry)
		return err
	}
	if len(encoding.Bytes()) > core.MaxNDNPacketSize {
		n.pendingInterests.RemoveEntry(entry)
		return errors.WithMessagef(ndn.ErrSizeLimit,
			"encoded Interest size %d exceeds maximum %d", len(encoding.Bytes()), core.MaxNDNPacketSize)
	}
	if err := n.transport.Send(encoding.Bytes()); err != nil {
		n.pendingInterests.RemoveEntry(entry)
		return err
	}

	core.LogTrace(n, "Expressed Interest for ", interest.Name())
	return nil
}

// processInterestTimeout fires the timeout callback for the entry unless it
// was satisfied, Nack'd, or removed in the meantime.
func (n *Node) processInterestTimeout(entry *table.PendingInterestEntry) {
	if !n.pendingInterests.RemoveEntry(entry) {
		return
	}
	core.LogTrace(n, "Interest for ", entry.Interest().Name(), " timed out")
	if onTimeout := entry.OnTimeout(); onTimeout != nil {
		n.dispatch("OnTimeout", func() {
			onTimeout(entry.Interest())
		})
	}
}

// RemovePendingInterest removes the pending Interest with the given id. The
// Interest itself is not cancelled on the network; its callbacks just no
// longer fire.
func (n *Node) RemovePendingInterest(pendingInterestId uint64) {
	n.pendingInterests.RemovePendingInterest(pendingInterestId)
}

// SetInterestFilter adds an entry dispatching incoming Interests that match
// the filter to onInterest under the given id.
func (n *Node) SetInterestFilter(interestFilterId uint64, filter *ndn.InterestFilter,
	onInterest func(*ndn.Name, *ndn.Interest, uint64, *ndn.InterestFilter)) {
	n.interestFilters.SetInterestFilter(interestFilterId, filter, onInterest)
}

// UnsetInterestFilter removes the Interest filter with the given id.
func (n *Node) UnsetInterestFilter(interestFilterId uint64) {
	n.interestFilters.UnsetInterestFilter(interestFilterId)
}

// RegisterPrefix sends a RIB registration command for the prefix to the
// connected forwarder, signed by the given signer. On a status 200 response
// the prefix is recorded under registeredPrefixId, an Interest filter for the
// prefix is set when onInterest is non-nil, and onRegisterSuccess fires. On
// any failure onRegisterFailed fires instead.
func (n *Node) RegisterPrefix(registeredPrefixId uint64, prefix *ndn.Name,
	onInterest func(*ndn.Name, *ndn.Interest, uint64, *ndn.InterestFilter),
	onRegisterSuccess func(*ndn.Name, uint64), onRegisterFailed func(*ndn.Name),
	flags *ndn.RegistrationOptions, signer Signer, certificateName *ndn.Name) error {
	if signer == nil {
		return errors.WithMessage(ndn.ErrConfiguration, "prefix registration requires a command signer")
	}
	if flags == nil {
		flags = ndn.NewRegistrationOptions()
	}

	controlParameters := ndn.NewControlParameters()
	controlParameters.SetName(prefix)
	controlParameters.SetFlags(flags)

	// The forwarder accepts management commands in the TLV format only.
	commandWireFormat := ndn.NewTlvWireFormat()

	var commandInterest *ndn.Interest
	var commandLifetime time.Duration
	if n.IsLocal() {
		commandInterest = ndn.NewInterest(ribRegisterLocalhost)
		commandLifetime = localCommandLifetime
	} else {
		commandInterest = ndn.NewInterest(ribRegisterLocalhop)
		commandLifetime = nonLocalCommandLifetime
	}
	commandInterest.SetLifetime(&commandLifetime)

	encodedParameters, err := commandWireFormat.EncodeControlParameters(controlParameters)
	if err != nil {
		return err
	}
	commandInterest.Name().Append(ndn.NewGenericComponent(encodedParameters))

	if err := n.commandInterestGenerator.generate(commandInterest, signer, certificateName, commandWireFormat); err != nil {
		return err
	}

	onData := func(interest *ndn.Interest, responseData *ndn.Data) {
		controlResponse := ndn.NewControlResponse()
		if err := commandWireFormat.DecodeControlResponse(controlResponse, responseData.Content().Bytes()); err != nil {
			core.LogWarn(n, "Registration of ", prefix, " failed: unable to decode forwarder response: ", err)
			if onRegisterFailed != nil {
				onRegisterFailed(prefix)
			}
			return
		}
		if controlResponse.StatusCode() != 200 {
			core.LogWarn(n, "Registration of ", prefix, " failed: forwarder returned status ",
				controlResponse.StatusCode(), " ", controlResponse.StatusText())
			if onRegisterFailed != nil {
				onRegisterFailed(prefix)
			}
			return
		}

		core.LogInfo(n, "Registered prefix ", prefix)
		var interestFilterId uint64
		if onInterest != nil {
			interestFilterId = n.getNextEntryId()
			n.interestFilters.SetInterestFilter(interestFilterId, ndn.NewInterestFilter(prefix), onInterest)
		}
		if !n.registeredPrefixes.Add(registeredPrefixId, prefix, interestFilterId) {
			// Removal was requested while the command was in flight.
			if interestFilterId > 0 {
				n.interestFilters.UnsetInterestFilter(interestFilterId)
			}
			return
		}
		if onRegisterSuccess != nil {
			onRegisterSuccess(prefix, registeredPrefixId)
		}
	}
	onTimeout := func(interest *ndn.Interest) {
		core.LogWarn(n, "Registration of ", prefix, " failed: command timed out")
		if onRegisterFailed != nil {
			onRegisterFailed(prefix)
		}
	}

	return n.ExpressInterest(n.getNextEntryId(), commandInterest, onData, onTimeout, nil, commandWireFormat)
}

// RemoveRegisteredPrefix removes the registered prefix with the given id,
// along with the Interest filter set when it was registered. The forwarder
// keeps routing Interests here until the registration expires.
func (n *Node) RemoveRegisteredPrefix(registeredPrefixId uint64) {
	n.registeredPrefixes.RemoveRegisteredPrefix(registeredPrefixId)
}

// Send transmits an encoded packet. The transport must already be connected.
func (n *Node) Send(encoding []byte) error {
	if len(encoding) > core.MaxNDNPacketSize {
		return errors.WithMessagef(ndn.ErrSizeLimit,
			"encoded packet size %d exceeds maximum %d", len(encoding), core.MaxNDNPacketSize)
	}
	if n.connectStatus != connectComplete {
		return errors.New("cannot send before the transport is connected")
	}
	return n.transport.Send(encoding)
}

// CallLater schedules the callback to fire from ProcessEvents once the delay
// has elapsed.
func (n *Node) CallLater(delay time.Duration, callback func()) {
	n.delayedCalls.CallLater(delay, callback)
}

// ProcessEvents delivers queued transport events and fires elapsed timers.
// It never blocks, so applications poll it from their event loop.
func (n *Node) ProcessEvents() error {
	if err := n.transport.ProcessEvents(); err != nil {
		return err
	}
	n.delayedCalls.CallTimedOut(time.Now())
	return nil
}

// OnReceivedElement decodes one TLV element arriving from the transport and
// dispatches it: Data packets to pending Interests, Interests to matching
// filters, and Nacks to pending Interests with a Nack callback. Malformed
// elements are logged and dropped.
func (n *Node) OnReceivedElement(element []byte) {
	var lpPacket *lpv2.Packet
	if lpv2.IsLpPacket(element) {
		lpPacket = lpv2.NewPacket()
		if err := ndn.DefaultWireFormat.DecodeLpPacket(lpPacket, element); err != nil {
			core.LogWarn(n, "Unable to decode NDNLPv2 packet - DROP: ", err)
			return
		}
		if !lpPacket.HasFragment() {
			// IDLE packet or bare header.
			return
		}
		element = lpPacket.Fragment()
	}

	tlvType, _, _, err := tlv.DecodeTypeLength(element)
	if err != nil {
		core.LogWarn(n, "Received element with invalid TLV header - DROP: ", err)
		return
	}

	var interest *ndn.Interest
	var data *ndn.Data
	switch tlvType {
	case tlv.Interest:
		interest = new(ndn.Interest)
		if err := interest.WireDecode(element, ndn.DefaultWireFormat); err != nil {
			core.LogWarn(n, "Unable to decode received Interest - DROP: ", err)
			return
		}
	case tlv.Data:
		data = new(ndn.Data)
		if err := data.WireDecode(element, ndn.DefaultWireFormat); err != nil {
			core.LogWarn(n, "Unable to decode received Data - DROP: ", err)
			return
		}
	default:
		core.LogWarn(n, "Received element of unhandled type ", tlvType, " - DROP")
		return
	}

	if lpPacket != nil && lpPacket.Nack() != nil {
		if interest == nil {
			core.LogWarn(n, "Received Nack without an Interest fragment - DROP")
			return
		}
		entries, err := n.pendingInterests.ExtractEntriesForNackInterest(interest, ndn.DefaultWireFormat)
		if err != nil {
			core.LogWarn(n, "Unable to match Nack against pending Interests - DROP: ", err)
			return
		}
		core.LogTrace(n, "Received Nack (", lpPacket.Nack().Reason(), ") for ", interest.Name())
		for _, entry := range entries {
			onNetworkNack := entry.OnNetworkNack()
			n.dispatch("OnNetworkNack", func() {
				onNetworkNack(entry.Interest(), lpPacket.Nack())
			})
		}
		return
	}

	if interest != nil {
		core.LogTrace(n, "Received Interest for ", interest.Name())
		for _, entry := range n.interestFilters.GetMatchedFilters(interest.Name()) {
			onInterest := entry.OnInterest()
			n.dispatch("OnInterest", func() {
				onInterest(entry.Filter().Prefix(), interest, entry.Id(), entry.Filter())
			})
		}
	} else if data != nil {
		core.LogTrace(n, "Received Data for ", data.Name())
		for _, entry := range n.pendingInterests.ExtractEntriesForExpressedInterest(data.Name()) {
			if onData := entry.OnData(); onData != nil {
				n.dispatch("OnData", func() {
					onData(entry.Interest(), data)
				})
			}
		}
	}
}

// dispatch invokes an application callback, recovering a panic so that one
// misbehaving callback cannot stop event processing.
func (n *Node) dispatch(callbackName string, callback func()) {
	defer func() {
		if r := recover(); r != nil {
			core.LogError(n, "Recovered from panic in ", callbackName, " callback: ", r)
		}
	}()
	callback()
}

// Shutdown closes the transport.
func (n *Node) Shutdown() {
	if err := n.transport.Close(); err != nil {
		core.LogWarn(n, "Error closing transport: ", err)
	}
}
