// SPDX-License-Identifier: ISC

// Package ingress is the HTTP surface uplink devices (via their network
// server) talk to: one POST endpoint that runs a device's payload
// through the reassembler, dispatches any completed transaction, and
// answers TAPOS requests with a downlink.
package ingress

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/bitmark-inc/elpp-gateway/dispatch"
	"github.com/bitmark-inc/elpp-gateway/reassembler"
	"github.com/bitmark-inc/elpp-gateway/tapos"
	"github.com/bitmark-inc/logger"
)

// Server - the ingress handler's dependencies: the reassembler, the
// TAPOS manager (read for freshness, never written here), the dispatch
// queues, the configured ELPP port, the chain-id-to-name lookup, and the
// per-request deadline.
type Server struct {
	reassembler *reassembler.Reassembler
	manager     *tapos.Manager
	dispatcher  *dispatch.Dispatcher
	elppPort    int
	chainNames  map[uint32]string
	timeout     time.Duration
	downlink    *http.Client
	limiters    *deviceLimiters
	counters    *Counters
	log         *logger.L
}

// New - an ingress Server wired to the given subsystems.
func New(re *reassembler.Reassembler, manager *tapos.Manager, d *dispatch.Dispatcher, elppPort int, chainNames map[uint32]string, timeout time.Duration, outboundTimeout time.Duration) *Server {
	return &Server{
		reassembler: re,
		manager:     manager,
		dispatcher:  d,
		elppPort:    elppPort,
		chainNames:  chainNames,
		timeout:     timeout,
		downlink:    &http.Client{Timeout: outboundTimeout},
		limiters:    newDeviceLimiters(),
		counters:    &Counters{},
		log:         logger.New("ingress"),
	}
}

// Counters - a read-only view of this server's request counters, for
// the introspection endpoint.
func (s *Server) Counters() CountersSnapshot {
	return s.counters.snapshot()
}

// Router - the httprouter.Router exposing the uplink endpoint.
func (s *Server) Router() *httprouter.Router {
	r := httprouter.New()
	r.POST("/uplink", s.handleUplink)
	return r
}
