// SPDX-License-Identifier: ISC

// Package tapos maintains, per blockchain, the freshest reference-block
// metadata a transaction needs to be accepted within its expiration
// window, by polling a quarantined pool of API hosts.
package tapos

import (
	"sync"
	"time"
)

// Tapos - reference-block metadata for one chain, as of AcqEpoch.
type Tapos struct {
	AcqEpoch       time.Time
	RefBlockNum    uint16
	RefBlockPrefix uint32
}

// Fresh - false until the first successful poll populates AcqEpoch.
func (t Tapos) Fresh() bool {
	return !t.AcqEpoch.IsZero()
}

// ChainState - one chain's TAPOS state: its expected chain id, the
// freshest TAPOS held, the API pool it is drawn from, and the host last
// used successfully. Access is serialized by mu; never hold two chains'
// locks at once.
type ChainState struct {
	mu                sync.Mutex
	ExpectedChainHash string
	tapos             Tapos
	pool              []*ApiPoolEntry
	apiLast           *ApiPoolEntry
}

// NewChainState - a chain state polling the given pool of API hosts.
func NewChainState(expectedChainHash string, pool []*ApiPoolEntry) *ChainState {
	return &ChainState{
		ExpectedChainHash: expectedChainHash,
		pool:              pool,
	}
}

// Current - the freshest TAPOS held for this chain and whether it is
// set at all.
func (s *ChainState) Current() (Tapos, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tapos, s.tapos.Fresh()
}

// ApiLast - the API host most recently used for a successful poll, or
// nil if none has succeeded yet.
func (s *ChainState) ApiLast() *ApiPoolEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiLast
}

// selectApi - pick the next API host to poll, applying quarantine decay
// and uniform-random selection.
func (s *ChainState) selectApi() (*ApiPoolEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return selectEntry(s.pool)
}

// commitSuccess - atomically install freshly-polled TAPOS and record the
// host that supplied it.
func (s *ChainState) commitSuccess(api *ApiPoolEntry, t Tapos, versionFound string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tapos = t
	s.apiLast = api
	recordSuccess(api, versionFound)
}

// commitFailure - record a failed poll against the host that was tried.
func (s *ChainState) commitFailure(api *ApiPoolEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recordFailure(api)
}

// Seed - install a TAPOS value and api_last directly, bypassing the poll
// loop. Used by tests that need a chain state already holding a fresh
// value; the gateway's startup path does not call it.
func (s *ChainState) Seed(api *ApiPoolEntry, t Tapos) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tapos = t
	s.apiLast = api
}

// SetPool - replace the API pool wholesale, e.g. after a configuration
// file reload. Quarantine state on the previous pool's entries is lost;
// the new entries start clean.
func (s *ChainState) SetPool(pool []*ApiPoolEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool = pool
}
