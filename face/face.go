/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2024 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"net"
	"strconv"
	"time"

	"github.com/named-data/GoNDN2/core"
	"github.com/named-data/GoNDN2/ndn"
	"github.com/named-data/GoNDN2/ndn/lpv2"
)

// FaceOptions configures a Face at creation.
type FaceOptions struct {
	// WireFormat encodes outgoing packets. Defaults to ndn.DefaultWireFormat.
	WireFormat ndn.WireFormat
}

// ExpressInterestOptions carries the callbacks for one expressed Interest.
// Any callback may be nil.
type ExpressInterestOptions struct {
	// OnData fires when a Data packet satisfies the Interest.
	OnData func(interest *ndn.Interest, data *ndn.Data)
	// OnTimeout fires when the Interest lifetime elapses with no response.
	OnTimeout func(interest *ndn.Interest)
	// OnNetworkNack fires when the network returns a Nack for the Interest.
	// When nil, a Nack is ignored and the Interest times out instead.
	OnNetworkNack func(interest *ndn.Interest, nack *lpv2.NetworkNack)
	// WireFormat encodes this Interest. Defaults to the face's wire format.
	WireFormat ndn.WireFormat
}

// RegisterPrefixOptions carries the callbacks and flags for one prefix
// registration.
type RegisterPrefixOptions struct {
	// OnInterest fires for each incoming Interest under the prefix. When nil,
	// the prefix is registered without setting an Interest filter.
	OnInterest func(prefix *ndn.Name, interest *ndn.Interest, interestFilterId uint64, filter *ndn.InterestFilter)
	// OnRegisterSuccess fires when the forwarder accepts the registration.
	OnRegisterSuccess func(prefix *ndn.Name, registeredPrefixId uint64)
	// OnRegisterFailed fires when the registration fails or times out.
	OnRegisterFailed func(prefix *ndn.Name)
	// Flags are the registration flags. Defaults to child inherit.
	Flags *ndn.RegistrationOptions
}

// Face is an application's connection to an NDN forwarder. It expresses
// Interests, publishes Data, and registers prefixes over a single Transport.
//
// A Face is single threaded: the application drives it by polling
// ProcessEvents from its event loop, and all callbacks fire from within that
// call. Its methods must be called from the same goroutine.
type Face struct {
	node                   *Node
	wireFormat             ndn.WireFormat
	commandSigner          Signer
	commandCertificateName *ndn.Name
}

// NewFace creates a Face communicating over the given transport. The
// transport is connected when the first Interest is expressed. Management
// commands are signed with a SHA-256 digest until SetCommandSigner replaces
// the signer.
func NewFace(transport Transport, options FaceOptions) *Face {
	wireFormat := options.WireFormat
	if wireFormat == nil {
		wireFormat = ndn.DefaultWireFormat
	}
	return &Face{
		node:          NewNode(transport),
		wireFormat:    wireFormat,
		commandSigner: DigestSha256Signer{},
	}
}

// NewUnixFace creates a Face connected to the forwarder over the configured
// Unix stream socket.
func NewUnixFace() (*Face, error) {
	transport, err := MakeUnixStreamTransport(MakeUnixFaceURI(UnixSocketPath))
	if err != nil {
		return nil, err
	}
	return NewFace(transport, FaceOptions{}), nil
}

// NewTCPFace creates a Face connected to the forwarder at the given host over
// TCP on the default port.
func NewTCPFace(host string) (*Face, error) {
	uri := DecodeURIString("tcp://" + net.JoinHostPort(host, strconv.Itoa(int(TCPUnicastPort))))
	transport, err := MakeUnicastTCPTransport(uri)
	if err != nil {
		return nil, err
	}
	return NewFace(transport, FaceOptions{}), nil
}

// NewFaceFromConfig creates a Face whose transport is taken from the faces.uri
// key of the given configuration file.
func NewFaceFromConfig(configFile string) (*Face, error) {
	core.LoadConfig(configFile)
	Configure()

	uri := DecodeURIString(core.GetConfigStringDefault("faces.uri", "unix://"+UnixSocketPath))
	transport, err := MakeTransportFromURI(uri)
	if err != nil {
		return nil, err
	}
	return NewFace(transport, FaceOptions{}), nil
}

// ExpressInterest sends a copy of the Interest and dispatches the response to
// the callbacks in options. It returns a pending Interest id accepted by
// RemovePendingInterest.
func (f *Face) ExpressInterest(interest *ndn.Interest, options ExpressInterestOptions) (uint64, error) {
	wireFormat := options.WireFormat
	if wireFormat == nil {
		wireFormat = f.wireFormat
	}
	pendingInterestId := f.node.getNextEntryId()
	if err := f.node.ExpressInterest(pendingInterestId, interest.DeepCopy(),
		options.OnData, options.OnTimeout, options.OnNetworkNack, wireFormat); err != nil {
		return 0, err
	}
	return pendingInterestId, nil
}

// RemovePendingInterest removes the pending Interest so that its callbacks no
// longer fire. The Interest itself is not cancelled on the network.
func (f *Face) RemovePendingInterest(pendingInterestId uint64) {
	f.node.RemovePendingInterest(pendingInterestId)
}

// RegisterPrefix asks the forwarder to route Interests under the prefix to
// this face. It returns a registered prefix id accepted by
// RemoveRegisteredPrefix. The outcome arrives through the OnRegisterSuccess
// and OnRegisterFailed callbacks.
func (f *Face) RegisterPrefix(prefix *ndn.Name, options RegisterPrefixOptions) (uint64, error) {
	registeredPrefixId := f.node.getNextEntryId()
	if err := f.node.RegisterPrefix(registeredPrefixId, prefix.DeepCopy(),
		options.OnInterest, options.OnRegisterSuccess, options.OnRegisterFailed,
		options.Flags, f.commandSigner, f.commandCertificateName); err != nil {
		return 0, err
	}
	return registeredPrefixId, nil
}

// RemoveRegisteredPrefix removes the registered prefix and the Interest
// filter set when it was registered. The forwarder keeps routing Interests
// here until the registration expires.
func (f *Face) RemoveRegisteredPrefix(registeredPrefixId uint64) {
	f.node.RemoveRegisteredPrefix(registeredPrefixId)
}

// SetInterestFilter dispatches incoming Interests matching the filter to
// onInterest without contacting the forwarder. It returns an Interest filter
// id accepted by UnsetInterestFilter.
func (f *Face) SetInterestFilter(filter *ndn.InterestFilter,
	onInterest func(prefix *ndn.Name, interest *ndn.Interest, interestFilterId uint64, filter *ndn.InterestFilter)) uint64 {
	interestFilterId := f.node.getNextEntryId()
	f.node.SetInterestFilter(interestFilterId, filter, onInterest)
	return interestFilterId
}

// UnsetInterestFilter removes the Interest filter with the given id.
func (f *Face) UnsetInterestFilter(interestFilterId uint64) {
	f.node.UnsetInterestFilter(interestFilterId)
}

// PutData publishes the Data packet, satisfying a pending Interest for it.
func (f *Face) PutData(data *ndn.Data) error {
	encoding, err := data.WireEncode(f.wireFormat)
	if err != nil {
		return err
	}
	return f.node.Send(encoding.Bytes())
}

// Send transmits an already encoded packet.
func (f *Face) Send(encoding []byte) error {
	return f.node.Send(encoding)
}

// ProcessEvents delivers queued transport events and fires elapsed timers,
// invoking application callbacks along the way. It never blocks, so
// applications poll it, sleeping briefly between calls.
func (f *Face) ProcessEvents() error {
	return f.node.ProcessEvents()
}

// CallLater schedules the callback to fire from ProcessEvents once the delay
// has elapsed.
func (f *Face) CallLater(delay time.Duration, callback func()) {
	f.node.CallLater(delay, callback)
}

// IsLocal returns whether the face connects to a forwarder on the local
// machine.
func (f *Face) IsLocal() bool {
	return f.node.IsLocal()
}

// MaxPacketSize returns the maximum size of an encoded packet the face will
// send.
func (f *Face) MaxPacketSize() int {
	return core.MaxNDNPacketSize
}

// SetCommandSigner sets the signer and certificate name used for management
// commands such as prefix registrations.
func (f *Face) SetCommandSigner(signer Signer, certificateName *ndn.Name) {
	f.commandSigner = signer
	f.commandCertificateName = certificateName
}

// Close shuts down the face and its transport.
func (f *Face) Close() {
	f.node.Shutdown()
}
