// SPDX-License-Identifier: ISC

// Package dispatch forwards completed transactions to the blockchain API
// most recently used successfully by that chain's TAPOS manager. Each
// chain has its own FIFO and worker: a transaction is posted at most
// once, and is discarded from the queue regardless of the outcome — the
// device is the retry mechanism, bounded by TAPOS expiration.
package dispatch

import (
	"net/http"
	"time"

	"github.com/bitmark-inc/elpp-gateway/constants"
	"github.com/bitmark-inc/elpp-gateway/fault"
	"github.com/bitmark-inc/elpp-gateway/tapos"
	"github.com/bitmark-inc/logger"
)

// queueDepth - how many not-yet-dispatched items a chain's queue may
// hold before Enqueue reports the chain as backed up.
const queueDepth = 256

// Outcome - what happened when a queued transaction was finally POSTed.
// Err is set only when the POST itself could not be attempted or
// completed (no api selected, transport failure); a completed POST
// always reports its StatusCode and Body, success or not.
type Outcome struct {
	StatusCode int
	Body       []byte
	Err        error
}

type queueItem struct {
	epoch     time.Time
	body      []byte
	deviceKey string
	result    chan Outcome
}

// Dispatcher - one FIFO and worker per chain, reading api_last from the
// chain's tapos.ChainState at POST time.
type Dispatcher struct {
	manager  *tapos.Manager
	queues   map[string]chan queueItem
	counters map[string]*chainCounters
	client   *http.Client
	log      *logger.L
}

// NewDispatcher - a Dispatcher with one queue per chain name in chains,
// posting against whichever API host manager currently holds as
// api_last for that chain.
func NewDispatcher(manager *tapos.Manager, chains []string) *Dispatcher {
	d := &Dispatcher{
		manager:  manager,
		queues:   make(map[string]chan queueItem, len(chains)),
		counters: make(map[string]*chainCounters, len(chains)),
		client:   &http.Client{Timeout: constants.OutboundHTTPTimeout},
		log:      logger.New("dispatch"),
	}
	for _, chain := range chains {
		d.queues[chain] = make(chan queueItem, queueDepth)
		d.counters[chain] = &chainCounters{}
	}
	return d
}

// Enqueue - append a completed transaction's JSON body to chain's FIFO.
// The returned channel receives exactly one Outcome once the worker has
// handled the item; the caller should read it with its own deadline.
func (d *Dispatcher) Enqueue(chain, deviceKey string, body []byte) (<-chan Outcome, error) {
	q, ok := d.queues[chain]
	if !ok {
		return nil, fault.ErrUnknownChain
	}

	result := make(chan Outcome, 1)
	select {
	case q <- queueItem{epoch: time.Now(), body: body, deviceKey: deviceKey, result: result}:
		return result, nil
	default:
		return nil, fault.ErrDispatchFailed
	}
}
