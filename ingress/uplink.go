// SPDX-License-Identifier: ISC

package ingress

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/bitmark-inc/elpp-gateway/elpp/codec"
	"github.com/bitmark-inc/elpp-gateway/elpp/schema"
	"github.com/bitmark-inc/elpp-gateway/fault"
	"github.com/bitmark-inc/elpp-gateway/reassembler"
)

// uplinkRequest - the JSON body a network server POSTs per uplink.
type uplinkRequest struct {
	Port        int    `json:"port"`
	Payload     string `json:"payload"`
	DevEUI      string `json:"dev_eui"`
	DownlinkURL string `json:"downlink_url,omitempty"`
	ReportedAt  int64  `json:"reported_at,omitempty"`
}

func (s *Server) handleUplink(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	s.counters.Received.Increment()

	var req uplinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); nil != err {
		s.counters.Errors.Increment()
		sendError(w, fmt.Sprintf("invalid request body: %s", err), http.StatusInternalServerError)
		return
	}

	if req.Port != s.elppPort {
		s.counters.Errors.Increment()
		sendError(w, fault.ErrInvalidPort.Error(), http.StatusInternalServerError)
		return
	}

	if !s.limiters.allow(req.DevEUI) {
		s.counters.RateLimited.Increment()
		sendError(w, fault.ErrRateLimited.Error(), http.StatusTooManyRequests)
		return
	}

	payload, err := base64.StdEncoding.DecodeString(req.Payload)
	if nil != err {
		s.counters.Errors.Increment()
		sendError(w, fault.ErrInvalidPayload.Error(), http.StatusInternalServerError)
		return
	}

	now := time.Now()
	result := s.reassembler.Decode(req.DevEUI, payload, now)

	switch result.Kind {
	case reassembler.ResultIncomplete:
		s.counters.Incomplete.Increment()
		sendReply(w, map[string]string{"status": result.Status})

	case reassembler.ResultError:
		s.counters.Errors.Increment()
		sendError(w, fmt.Sprintf("decoder error: %s", result.Err), http.StatusInternalServerError)

	case reassembler.ResultComplete:
		s.counters.Completed.Increment()
		s.handleComplete(ctx, w, req, result)

	case reassembler.ResultTaposReq:
		s.counters.TaposReq.Increment()
		s.handleTaposRequest(w, req, result, now)

	default:
		s.counters.Errors.Increment()
		sendError(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleComplete(ctx context.Context, w http.ResponseWriter, req uplinkRequest, result reassembler.Result) {
	chainName, ok := s.chainNames[result.Chain]
	if !ok {
		sendError(w, "decoder error: unknown chain", http.StatusInternalServerError)
		return
	}

	body, err := json.Marshal(result.Transaction)
	if nil != err {
		sendError(w, fmt.Sprintf("marshalling transaction: %s", err), http.StatusInternalServerError)
		return
	}

	outcomeCh, err := s.dispatcher.Enqueue(chainName, req.DevEUI, body)
	if nil != err {
		sendError(w, fmt.Sprintf("dispatch error: %s", err), http.StatusInternalServerError)
		return
	}

	select {
	case outcome := <-outcomeCh:
		if nil != outcome.Err {
			sendError(w, fmt.Sprintf("dispatch error: %s", outcome.Err), http.StatusInternalServerError)
			return
		}
		sendRaw(w, http.StatusOK, outcome.Body)
	case <-ctx.Done():
		sendError(w, "dispatch error: timed out waiting for the blockchain api", http.StatusInternalServerError)
	}
}

func (s *Server) handleTaposRequest(w http.ResponseWriter, req uplinkRequest, result reassembler.Result, now time.Time) {
	chainName, ok := s.chainNames[uint32(result.ChainID)]
	if !ok {
		sendError(w, "decoder error: unknown chain", http.StatusInternalServerError)
		return
	}

	state, err := s.manager.Chain(chainName)
	if nil != err {
		sendError(w, fmt.Sprintf("decoder error: %s", err), http.StatusInternalServerError)
		return
	}

	tp, fresh := state.Current()
	if !fresh {
		sendError(w, fault.ErrTaposUnavailable.Error(), http.StatusInternalServerError)
		return
	}

	values := []codec.Value{
		{U: uint64(result.ChainID)},
		{U: uint64(result.ReqID)},
		{U: uint64(now.Unix())},
		{U: uint64(now.Nanosecond() / int(time.Millisecond))},
		{U: uint64(tp.RefBlockNum)},
		{U: uint64(tp.RefBlockPrefix)},
	}

	frame, err := schema.EncodeFrame(reassembler.ChannelTaposRequest, reassembler.TaposResponseSchema, values)
	if nil != err {
		sendError(w, fmt.Sprintf("encoder error: %s", err), http.StatusInternalServerError)
		return
	}

	if "" == req.DownlinkURL {
		sendReply(w, map[string]string{"status": "tapos request answered, no downlink url given"})
		return
	}

	if err := s.postDownlink(req.DownlinkURL, frame); nil != err {
		s.log.Errorf("downlink post to %s: %s", req.DownlinkURL, err)
	}
	sendReply(w, map[string]string{"status": "tapos response dispatched"})
}

// downlinkBody - the body posted to a device's downlink URL.
type downlinkBody struct {
	PayloadRaw string `json:"payload_raw"`
	Port       int    `json:"port"`
	Confirmed  bool   `json:"confirmed"`
}

func (s *Server) postDownlink(url string, frame []byte) error {
	body, err := json.Marshal(downlinkBody{
		PayloadRaw: base64.StdEncoding.EncodeToString(frame),
		Port:       s.elppPort,
		Confirmed:  false,
	})
	if nil != err {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if nil != err {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.downlink.Do(req)
	if nil != err {
		return err
	}
	defer resp.Body.Close()
	return nil
}
