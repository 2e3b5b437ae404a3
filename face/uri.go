/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"net"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/named-data/GoNDN2/core"
)

// URIType represents the type of the URI.
type URIType int

const ipv4Pattern = `^((25[0-4]|2[0-4][0-9]|1[0-9][0-9]|[0-9][0-9]|[0-9])\.){3}(25[0-4]|2[0-4][0-9]|1[0-9][0-9]|[0-9][0-9]|[0-9])$`
const udpPattern = `^(?P<scheme>udp[46]?)://\[?(?P<host>[0-9A-Za-z\:\.\-]+)(%(?P<zone>[A-Za-z0-9\-]+))?\]?:(?P<port>[0-9]+)$`
const tcpPattern = `^(?P<scheme>tcp[46]?)://\[?(?P<host>[0-9A-Za-z\:\.\-]+)(%(?P<zone>[A-Za-z0-9\-]+))?\]?:(?P<port>[0-9]+)$`
const unixPattern = `^(?P<scheme>unix)://(?P<path>[/\\A-Za-z0-9\:\.\-_]+)$`

var ipv4Regex = regexp.MustCompile(ipv4Pattern)
var udpRegex = regexp.MustCompile(udpPattern)
var tcpRegex = regexp.MustCompile(tcpPattern)
var unixRegex = regexp.MustCompile(unixPattern)

const (
	unknownURI URIType = iota
	nullURI
	udpURI
	tcpURI
	unixURI
	wsURI
)

// URI represents a URI for a face.
type URI struct {
	uriType URIType
	scheme  string
	path    string
	port    uint16
}

// MakeNullFaceURI constructs a null face URI.
func MakeNullFaceURI() *URI {
	uri := new(URI)
	uri.uriType = nullURI
	uri.scheme = "null"
	uri.path = ""
	uri.port = 0
	return uri
}

// MakeUDPFaceURI constructs a URI for a UDP face.
func MakeUDPFaceURI(ipVersion int, host string, port uint16) *URI {
	uri := new(URI)
	uri.uriType = udpURI
	uri.scheme = "udp" + strconv.Itoa(ipVersion)
	uri.path = host
	uri.port = port
	uri.Canonize()
	return uri
}

// MakeTCPFaceURI constructs a URI for a TCP face.
func MakeTCPFaceURI(ipVersion int, host string, port uint16) *URI {
	uri := new(URI)
	uri.uriType = tcpURI
	uri.scheme = "tcp" + strconv.Itoa(ipVersion)
	uri.path = host
	uri.port = port
	uri.Canonize()
	return uri
}

// MakeUnixFaceURI constructs a URI for a Unix face.
func MakeUnixFaceURI(path string) *URI {
	uri := new(URI)
	uri.uriType = unixURI
	uri.scheme = "unix"
	uri.path = path
	uri.port = 0
	uri.Canonize()
	return uri
}

// MakeWebSocketFaceURI constructs a URI for a WebSocket face. The host may be
// a name rather than an address, since WebSocket endpoints dial by name.
func MakeWebSocketFaceURI(host string, port uint16, secure bool) *URI {
	uri := new(URI)
	uri.uriType = wsURI
	uri.scheme = "ws"
	if secure {
		uri.scheme = "wss"
	}
	uri.path = host
	uri.port = port
	return uri
}

// DecodeURIString decodes a URI from a string.
func DecodeURIString(str string) *URI {
	u := new(URI)
	u.uriType = unknownURI
	u.scheme = "unknown"
	schemeSplit := strings.SplitN(str, ":", 2)
	if len(schemeSplit) < 2 {
		// No scheme
		return u
	}

	switch {
	case strings.EqualFold("null", schemeSplit[0]):
		u.uriType = nullURI
		u.scheme = "null"
	case strings.EqualFold("udp", schemeSplit[0]),
		strings.EqualFold("udp4", schemeSplit[0]),
		strings.EqualFold("udp6", schemeSplit[0]):
		u.uriType = udpURI
		u.scheme = "udp"

		matches := udpRegex.FindStringSubmatch(str)
		if matches == nil {
			return u
		}
		u.path = matches[udpRegex.SubexpIndex("host")]
		if zone := matches[udpRegex.SubexpIndex("zone")]; zone != "" {
			u.path += "%" + zone
		}
		port, err := strconv.ParseUint(matches[udpRegex.SubexpIndex("port")], 10, 16)
		if err != nil || port == 0 {
			return u
		}
		u.port = uint16(port)
	case strings.EqualFold("tcp", schemeSplit[0]),
		strings.EqualFold("tcp4", schemeSplit[0]),
		strings.EqualFold("tcp6", schemeSplit[0]):
		u.uriType = tcpURI
		u.scheme = "tcp"

		matches := tcpRegex.FindStringSubmatch(str)
		if matches == nil {
			return u
		}
		u.path = matches[tcpRegex.SubexpIndex("host")]
		if zone := matches[tcpRegex.SubexpIndex("zone")]; zone != "" {
			u.path += "%" + zone
		}
		port, err := strconv.ParseUint(matches[tcpRegex.SubexpIndex("port")], 10, 16)
		if err != nil || port == 0 {
			return u
		}
		u.port = uint16(port)
	case strings.EqualFold("unix", schemeSplit[0]):
		u.uriType = unixURI
		u.scheme = "unix"

		matches := unixRegex.FindStringSubmatch(str)
		if matches == nil {
			return u
		}
		u.path = matches[unixRegex.SubexpIndex("path")]
	case strings.EqualFold("ws", schemeSplit[0]),
		strings.EqualFold("wss", schemeSplit[0]):
		parsed, err := url.Parse(str)
		if err != nil || parsed.User != nil || strings.TrimLeft(parsed.Path, "/") != "" ||
			parsed.RawQuery != "" || parsed.Fragment != "" {
			return u
		}
		port, err := strconv.ParseUint(parsed.Port(), 10, 16)
		if err != nil || port == 0 {
			return u
		}
		return MakeWebSocketFaceURI(parsed.Hostname(), uint16(port), strings.EqualFold("wss", parsed.Scheme))
	}

	// Canonize, if possible
	u.Canonize()
	return u
}

// URIType returns the type of the face URI.
func (u *URI) URIType() URIType {
	return u.uriType
}

// Scheme returns the scheme of the face URI.
func (u *URI) Scheme() string {
	return u.scheme
}

// Path returns the path of the face URI.
func (u *URI) Path() string {
	return u.path
}

// PathHost returns the host component of the path of the face URI.
func (u *URI) PathHost() string {
	pathComponents := strings.Split(u.path, "%")
	if len(pathComponents) < 1 {
		return ""
	}
	return pathComponents[0]
}

// PathZone returns the zone component of the path of the face URI.
func (u *URI) PathZone() string {
	pathComponents := strings.Split(u.path, "%")
	if len(pathComponents) < 2 {
		return ""
	}
	return pathComponents[1]
}

// Port returns the port of the face URI.
func (u *URI) Port() uint16 {
	return u.port
}

// IsCanonical returns whether the face URI is canonical.
func (u *URI) IsCanonical() bool {
	switch u.uriType {
	case nullURI:
		return u.scheme == "null" && u.path == "" && u.port == 0
	case udpURI:
		// Split off zone, if any
		ip := net.ParseIP(u.PathHost())
		// Go's net library considers IPv4 addresses to be valid IPv6 addresses,
		// so an explicit IPv4 check is needed for the udp6 case.
		isIPv4 := ipv4Regex.MatchString(u.PathHost())
		return ip != nil && u.port > 0 && ((u.scheme == "udp4" && ip.To4() != nil) ||
			(u.scheme == "udp6" && ip.To16() != nil && !isIPv4))
	case tcpURI:
		ip := net.ParseIP(u.PathHost())
		isIPv4 := ipv4Regex.MatchString(u.PathHost())
		return ip != nil && u.port > 0 && ((u.scheme == "tcp4" && ip.To4() != nil) ||
			(u.scheme == "tcp6" && ip.To16() != nil && !isIPv4))
	case unixURI:
		return u.scheme == "unix" && u.path != "" && u.port == 0 && unixSocketPathOk(u.path)
	case wsURI:
		return (u.scheme == "ws" || u.scheme == "wss") && u.path != "" && u.port > 0
	default:
		// Of unknown type
		return false
	}
}

// unixSocketPathOk reports whether the path could name a Unix socket: either
// nothing exists there yet or the existing file is not a directory. Existence
// itself is not required, so an endpoint can be validated before the forwarder
// creates its socket.
func unixSocketPathOk(path string) bool {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fileInfo, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return false
	} else if err == nil && fileInfo.IsDir() {
		return false
	}
	return true
}

// Canonize attempts to canonize the URI, if not already canonical.
func (u *URI) Canonize() error {
	switch u.uriType {
	case nullURI, wsURI:
		// Nothing to do to canonize these
	case udpURI, tcpURI:
		path := u.path
		zone := ""
		if strings.Contains(u.path, "%") {
			// Has zone, so separate out
			path = u.PathHost()
			zone = "%" + u.PathZone()
		}
		ip := net.ParseIP(strings.Trim(path, "[]"))
		if ip == nil {
			// Resolve DNS
			resolvedIPs, err := net.LookupHost(path)
			if err != nil || len(resolvedIPs) == 0 {
				return core.ErrNotCanonical
			}
			ip = net.ParseIP(resolvedIPs[0])
			if ip == nil {
				return core.ErrNotCanonical
			}
		}

		scheme := "udp"
		if u.uriType == tcpURI {
			scheme = "tcp"
		}
		if ip.To4() != nil {
			u.scheme = scheme + "4"
			u.path = ip.String() + zone
		} else if ip.To16() != nil {
			u.scheme = scheme + "6"
			u.path = ip.String() + zone
		} else {
			return core.ErrNotCanonical
		}
	case unixURI:
		u.scheme = "unix"
		if !unixSocketPathOk(u.path) {
			return core.ErrNotCanonical
		}
		u.port = 0
	default:
		return core.ErrNotCanonical
	}

	return nil
}

// Scope returns the scope of the URI.
func (u *URI) Scope() Scope {
	if !u.IsCanonical() {
		return Unknown
	}

	switch u.uriType {
	case nullURI:
		return NonLocal
	case udpURI, tcpURI:
		if net.ParseIP(u.PathHost()).IsLoopback() {
			return Local
		}
		return NonLocal
	case unixURI:
		return Local
	case wsURI:
		if u.PathHost() == "localhost" {
			return Local
		}
		if ip := net.ParseIP(u.PathHost()); ip != nil && ip.IsLoopback() {
			return Local
		}
		return NonLocal
	}

	return Unknown
}

func (u *URI) String() string {
	switch u.uriType {
	case nullURI:
		return "null://"
	case udpURI, tcpURI, wsURI:
		return u.scheme + "://" + net.JoinHostPort(u.path, strconv.FormatUint(uint64(u.port), 10))
	case unixURI:
		return u.scheme + "://" + u.path
	default:
		return "unknown://"
	}
}
