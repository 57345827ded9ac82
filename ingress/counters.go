// SPDX-License-Identifier: ISC

package ingress

import "github.com/bitmark-inc/elpp-gateway/counter"

// Counters - atomic request counters for the uplink endpoint, surfaced
// read-only on the introspection state, grounded on the teacher's
// counter package and rpc/node.go's own counter field.
type Counters struct {
	Received    counter.Counter
	Incomplete  counter.Counter
	Completed   counter.Counter
	TaposReq    counter.Counter
	Errors      counter.Counter
	RateLimited counter.Counter
}

// CountersSnapshot - a JSON-friendly view of Counters.
type CountersSnapshot struct {
	Received    uint64 `json:"received"`
	Incomplete  uint64 `json:"incomplete"`
	Completed   uint64 `json:"completed"`
	TaposReq    uint64 `json:"tapos_request"`
	Errors      uint64 `json:"errors"`
	RateLimited uint64 `json:"rate_limited"`
}

func (c *Counters) snapshot() CountersSnapshot {
	return CountersSnapshot{
		Received:    c.Received.Uint64(),
		Incomplete:  c.Incomplete.Uint64(),
		Completed:   c.Completed.Uint64(),
		TaposReq:    c.TaposReq.Uint64(),
		Errors:      c.Errors.Uint64(),
		RateLimited: c.RateLimited.Uint64(),
	}
}
