/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"io"

	"github.com/named-data/GoNDN2/core"
	"github.com/named-data/GoNDN2/ndn/tlv"
	"github.com/pkg/errors"
)

// recvBlockSize is the size of a receive staging block. It must hold at least
// one maximum-size packet plus the partial read that follows it.
const recvBlockSize = 2 * core.MaxNDNPacketSize

// recvBlockCount bounds the staging blocks a face's receive side may hold.
const recvBlockCount = 4

// readTlvStream reads whole TLV elements out of a byte stream, staging
// partial reads in recvBuf. onElement receives each element as a subslice of
// recvBuf, valid only until onElement returns. Returns the error that ended
// the stream.
func readTlvStream(reader io.Reader, recvBuf []byte, onElement func([]byte)) error {
	recvOff := 0
	tlvOff := 0

	for {
		readSize, err := reader.Read(recvBuf[recvOff:])
		recvOff += readSize
		if err != nil {
			return err
		}

		// Determine whether valid packet received
		for {
			_, _, tlvSize, err := tlv.DecodeTypeLength(recvBuf[tlvOff:recvOff])
			if err != nil {
				// Probably incomplete packet
				break
			}

			if recvOff-tlvOff >= tlvSize {
				// Packet was successfully received, send up to the observer
				onElement(recvBuf[tlvOff : tlvOff+tlvSize])
				tlvOff += tlvSize
			} else if recvOff-tlvOff > core.MaxNDNPacketSize {
				return errors.New("received too much data without valid TLV block")
			} else {
				// Incomplete packet (for sure)
				break
			}
		}

		// If less than one packet space remains in buffer, shift to beginning
		if recvOff-tlvOff < core.MaxNDNPacketSize {
			copy(recvBuf, recvBuf[tlvOff:recvOff])
			recvOff -= tlvOff
			tlvOff = 0
		}
	}
}
