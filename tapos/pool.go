// SPDX-License-Identifier: ISC

package tapos

import (
	"math/rand"

	"github.com/bitmark-inc/elpp-gateway/constants"
	"github.com/bitmark-inc/elpp-gateway/fault"
)

// ApiPoolEntry - one blockchain API host a chain's TAPOS manager may
// poll. An entry is quarantined while Errors >= constants.ErrorsMax;
// every constants.CheckMax selection attempts against a quarantined
// entry decrements Errors by one and resets CheckCount.
type ApiPoolEntry struct {
	Method       string
	Host         string
	Errors       int
	CheckCount   int
	UseCount     uint64
	VersionFound string
}

// quarantined - true while this entry should be excluded from selection.
func (e *ApiPoolEntry) quarantined() bool {
	return e.Errors >= constants.ErrorsMax
}

// decay - apply the quarantine-decay rule to every entry in pool:
// entries currently quarantined get their CheckCount bumped, and once it
// reaches CheckMax, Errors is decremented and CheckCount reset.
func decay(pool []*ApiPoolEntry) {
	for _, e := range pool {
		if !e.quarantined() {
			continue
		}
		e.CheckCount++
		if e.CheckCount >= constants.CheckMax {
			e.Errors--
			e.CheckCount = 0
		}
	}
}

// selectEntry - apply the quarantine-decay pass, then make up to 10
// uniform-random draws from pool, rejecting any quarantined entry.
// Returns fault.ErrApiPoolExhausted if all ten draws land on a
// quarantined entry, or fault.ErrApiPoolEmpty if pool has no members.
func selectEntry(pool []*ApiPoolEntry) (*ApiPoolEntry, error) {
	if 0 == len(pool) {
		return nil, fault.ErrApiPoolEmpty
	}

	decay(pool)

	for i := 0; i < 10; i++ {
		e := pool[rand.Intn(len(pool))]
		if !e.quarantined() {
			e.UseCount++
			return e, nil
		}
	}
	return nil, fault.ErrApiPoolExhausted
}

// recordSuccess - on a successful poll, floor-decrement Errors so a
// host that is behaving well works its way out of past failures.
func recordSuccess(e *ApiPoolEntry, versionFound string) {
	if e.Errors > 0 {
		e.Errors--
	}
	e.VersionFound = versionFound
}

// recordFailure - on a failed poll, count the error towards quarantine.
func recordFailure(e *ApiPoolEntry) {
	e.Errors++
}
