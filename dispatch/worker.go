// SPDX-License-Identifier: ISC

package dispatch

import (
	"bytes"
	"io"
	"net/http"

	"github.com/bitmark-inc/elpp-gateway/background"
	"github.com/bitmark-inc/elpp-gateway/fault"
)

// worker - satisfies background.Process; one per chain, draining that
// chain's queue for the lifetime of the process.
type worker struct {
	chain string
	queue chan queueItem
	d     *Dispatcher
}

// Processes - one worker per configured chain, ready to be started
// together with background.Start.
func (d *Dispatcher) Processes() background.Processes {
	processes := make(background.Processes, 0, len(d.queues))
	for chain, q := range d.queues {
		processes = append(processes, &worker{chain: chain, queue: q, d: d})
	}
	return processes
}

func (w *worker) Run(args interface{}, shutdown <-chan struct{}) {
	w.d.log.Infof("%s: starting…", w.chain)
	for {
		select {
		case <-shutdown:
			w.d.log.Infof("%s: shutting down", w.chain)
			return
		case item := <-w.queue:
			w.post(item)
		}
	}
}

func (w *worker) post(item queueItem) {
	outcome := Outcome{}
	counters := w.d.counters[w.chain]
	defer func() {
		if nil != outcome.Err {
			counters.Failed.Increment()
		} else {
			counters.Dispatched.Increment()
		}
		item.result <- outcome
		close(item.result)
	}()

	state, err := w.d.manager.Chain(w.chain)
	if nil != err {
		outcome.Err = err
		return
	}

	api := state.ApiLast()
	if nil == api {
		outcome.Err = fault.ErrNoApiSelected
		return
	}

	req, err := http.NewRequest(http.MethodPost, api.Method+api.Host+"/v1/chain/send_transaction", bytes.NewReader(item.body))
	if nil != err {
		outcome.Err = err
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.d.client.Do(req)
	if nil != err {
		w.d.log.Errorf("%s: dispatch to %s%s: %s", w.chain, api.Method, api.Host, err)
		outcome.Err = err
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if nil != err {
		outcome.Err = err
		return
	}

	// Fire-and-forget: whatever the blockchain API said, 2xx or not, the
	// item is done. Devices resubmit on TAPOS expiration if it failed.
	outcome.StatusCode = resp.StatusCode
	outcome.Body = body
}
