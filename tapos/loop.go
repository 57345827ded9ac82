// SPDX-License-Identifier: ISC

package tapos

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/bitmark-inc/elpp-gateway/constants"
	"github.com/bitmark-inc/logger"
)

// chainLoop - one background.Process per chain, polling its API pool for
// fresh TAPOS on a jittered schedule that shortens after an error.
type chainLoop struct {
	chain  string
	state  *ChainState
	client *http.Client
	log    *logger.L
}

func newChainLoop(chain string, state *ChainState) *chainLoop {
	return &chainLoop{
		chain: chain,
		state: state,
		client: &http.Client{
			Timeout: constants.OutboundHTTPTimeout,
		},
		log: logger.New("tapos-" + chain),
	}
}

// Run - satisfies background.Process. args is unused; each loop owns its
// own ChainState and needs nothing from the caller.
func (l *chainLoop) Run(args interface{}, shutdown <-chan struct{}) {
	l.log.Info("starting…")
	delay := time.After(jitter(constants.TaposErrorIntervalMin, constants.TaposErrorIntervalMax))
	for {
		select {
		case <-shutdown:
			l.log.Info("shutting down")
			return
		case <-delay:
			delay = time.After(l.poll())
		}
	}
}

func (l *chainLoop) poll() time.Duration {
	api, err := l.state.selectApi()
	if nil != err {
		l.log.Errorf("api pool selection: %s", err)
		return jitter(constants.TaposErrorIntervalMin, constants.TaposErrorIntervalMax)
	}

	t, versionFound, err := fetchGetInfo(l.client, api, l.state.ExpectedChainHash)
	if nil != err {
		l.state.commitFailure(api)
		l.log.Errorf("get_info on %s%s: %s", api.Method, api.Host, err)
		return jitter(constants.TaposErrorIntervalMin, constants.TaposErrorIntervalMax)
	}

	l.state.commitSuccess(api, t, versionFound)
	l.log.Debugf("tapos refreshed from %s%s: ref_block_num=%d ref_block_prefix=%d", api.Method, api.Host, t.RefBlockNum, t.RefBlockPrefix)
	return jitter(constants.TaposSuccessIntervalMin, constants.TaposSuccessIntervalMax)
}

// jitter - a uniformly random duration in [min, max).
func jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
