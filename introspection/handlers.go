// SPDX-License-Identifier: ISC

package introspection

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/common/version"

	"github.com/bitmark-inc/elpp-gateway/dispatch"
	"github.com/bitmark-inc/elpp-gateway/ingress"
	"github.com/bitmark-inc/elpp-gateway/tapos"
)

func (s *Server) handleDeviceStates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sendJSON(w, s.reassembler.Snapshot())
}

// ChainState - one chain's TAPOS freshness and dispatch counters, joined
// for the introspection view.
type ChainState struct {
	tapos.Snapshot
	Dispatch dispatch.ChainCounts `json:"dispatch"`
}

func (s *Server) handleTaposManagerState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	counts := s.dispatcher.Counters()
	snapshots := s.manager.Snapshots()

	states := make([]ChainState, 0, len(snapshots))
	for _, snap := range snapshots {
		states = append(states, ChainState{Snapshot: snap, Dispatch: counts[snap.Chain]})
	}

	sendJSON(w, struct {
		Chains  []ChainState             `json:"chains"`
		Ingress ingress.CountersSnapshot `json:"ingress"`
	}{
		Chains:  states,
		Ingress: s.ingress.Counters(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sendJSON(w, struct {
		Info string `json:"info"`
	}{Info: version.Info()})
}
