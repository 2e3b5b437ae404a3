/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"crypto/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/named-data/GoNDN2/ndn"
	"github.com/named-data/GoNDN2/ndn/tlv"
)

// defaultCommandLifetime is applied to signed commands that carry no
// explicit lifetime.
const defaultCommandLifetime = 2500 * time.Millisecond

// commandInterestGenerator appends the timestamp and nonce components of the
// signed command Interest format and invokes the signer. Timestamps are kept
// strictly increasing so the forwarder's replay detection accepts commands
// issued within the same millisecond.
type commandInterestGenerator struct {
	lastTimestamp uint64
}

func (g *commandInterestGenerator) generate(interest *ndn.Interest, signer Signer, certificateName *ndn.Name, wireFormat ndn.WireFormat) error {
	timestamp := uint64(time.Now().UnixNano() / int64(time.Millisecond))
	for timestamp <= g.lastTimestamp {
		timestamp++
	}

	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); err != nil {
		return errors.WithMessage(err, "unable to generate command nonce")
	}

	interest.Name().Append(ndn.NewGenericComponent(tlv.EncodeNNI(timestamp)))
	interest.Name().Append(ndn.NewGenericComponent(nonce))

	if err := signer.Sign(interest, certificateName, wireFormat); err != nil {
		return err
	}

	if interest.Lifetime() == nil {
		lifetime := defaultCommandLifetime
		interest.SetLifetime(&lifetime)
	}

	// Only committed once signing succeeds, so a failed command does not
	// advance the replay window.
	g.lastTimestamp = timestamp
	return nil
}
