/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2022 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"time"

	"github.com/named-data/GoNDN2/core"
	"github.com/named-data/GoNDN2/ndn"
)

const defaultMaxReExpressLifetime = 16 * time.Second

// ExponentialReExpress returns an OnTimeout callback that re-expresses the
// timed out Interest with double its lifetime, with a fresh nonce, until the
// lifetime would exceed maxLifetime; then it defers to the caller's
// onTimeout. An Interest with no explicit lifetime is never re-expressed.
// Pass a maxLifetime of zero for the default of 16 seconds.
func ExponentialReExpress(face *Face, onData func(*ndn.Interest, *ndn.Data),
	onTimeout func(*ndn.Interest), maxLifetime time.Duration) func(*ndn.Interest) {
	if maxLifetime <= 0 {
		maxLifetime = defaultMaxReExpressLifetime
	}

	var reExpress func(*ndn.Interest)
	reExpress = func(interest *ndn.Interest) {
		lifetime := interest.Lifetime()
		if lifetime == nil {
			if onTimeout != nil {
				onTimeout(interest)
			}
			return
		}

		nextLifetime := *lifetime * 2
		if nextLifetime > maxLifetime {
			if onTimeout != nil {
				onTimeout(interest)
			}
			return
		}

		nextInterest := interest.DeepCopy()
		nextInterest.SetLifetime(&nextLifetime)
		nextInterest.SetNonce(nil)
		if _, err := face.ExpressInterest(nextInterest, ExpressInterestOptions{
			OnData:    onData,
			OnTimeout: reExpress,
		}); err != nil {
			core.LogWarn(face.node, "Unable to re-express Interest for ", interest.Name(), ": ", err)
			if onTimeout != nil {
				onTimeout(interest)
			}
		}
	}
	return reExpress
}
