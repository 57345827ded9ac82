// SPDX-License-Identifier: ISC

// Package introspection exposes read-only JSON views of gateway state:
// every device's in-flight transaction table, every chain's TAPOS
// manager state plus its dispatch counters, and the running build's
// version information. Nothing here mutates; it exists so
// elpp-gatewayctl and operators can see what the gateway is doing
// without touching a log file.
package introspection

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/bitmark-inc/elpp-gateway/dispatch"
	"github.com/bitmark-inc/elpp-gateway/ingress"
	"github.com/bitmark-inc/elpp-gateway/reassembler"
	"github.com/bitmark-inc/elpp-gateway/tapos"
	"github.com/bitmark-inc/logger"
)

// Server - the introspection handlers' dependencies.
type Server struct {
	reassembler *reassembler.Reassembler
	manager     *tapos.Manager
	dispatcher  *dispatch.Dispatcher
	ingress     *ingress.Server
	log         *logger.L
}

// New - an introspection Server reading from the given subsystems.
func New(re *reassembler.Reassembler, manager *tapos.Manager, d *dispatch.Dispatcher, ing *ingress.Server) *Server {
	return &Server{
		reassembler: re,
		manager:     manager,
		dispatcher:  d,
		ingress:     ing,
		log:         logger.New("introspection"),
	}
}

// Router - the httprouter.Router exposing the introspection endpoints.
func (s *Server) Router() *httprouter.Router {
	r := httprouter.New()
	r.GET("/api/device_states", s.handleDeviceStates)
	r.GET("/api/tapos_manager_state", s.handleTaposManagerState)
	r.GET("/api/version", s.handleVersion)
	return r
}

func sendJSON(w http.ResponseWriter, data interface{}) {
	body, err := json.Marshal(data)
	if nil != err {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
