// SPDX-License-Identifier: ISC

package dispatch

import "github.com/bitmark-inc/elpp-gateway/counter"

// chainCounters - per-chain dispatch counters, grounded on the teacher's
// counter package.
type chainCounters struct {
	Dispatched counter.Counter
	Failed     counter.Counter
}

// ChainCounts - a JSON-friendly view of one chain's dispatch counters.
type ChainCounts struct {
	Dispatched uint64 `json:"dispatched"`
	Failed     uint64 `json:"failed"`
}

// Counters - dispatch counters for every configured chain.
func (d *Dispatcher) Counters() map[string]ChainCounts {
	out := make(map[string]ChainCounts, len(d.counters))
	for chain, c := range d.counters {
		out[chain] = ChainCounts{Dispatched: c.Dispatched.Uint64(), Failed: c.Failed.Uint64()}
	}
	return out
}
