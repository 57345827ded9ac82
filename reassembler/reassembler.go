// SPDX-License-Identifier: ISC

// Package reassembler holds a per-device table of in-flight transactions
// and assembles the four Antelope fragment channels (TAPOS, ACTION,
// SERIALIZED-ACTION, SIGNATURE) into a blockchain-ready transaction, or
// surfaces a device's request for fresh TAPOS.
package reassembler

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/elpp-gateway/elpp/codec"
	"github.com/bitmark-inc/elpp-gateway/elpp/schema"
	"github.com/bitmark-inc/elpp-gateway/fault"
)

// ResultKind - the closed set of outcomes Decode can report.
type ResultKind int

const (
	ResultIncomplete ResultKind = iota
	ResultComplete
	ResultTaposReq
	ResultError
)

// Result - one decoded outcome. Only the fields relevant to Kind are
// populated.
type Result struct {
	Kind        ResultKind
	Transaction *Transaction
	Chain       uint32
	ChainID     uint8
	ReqID       uint8
	Status      string
	Err         error
}

// deviceEntry - a device's in-flight transaction table plus the mutex
// serializing all access to it. Never hold two deviceEntry locks at once.
type deviceEntry struct {
	mu    sync.Mutex
	state *deviceState
}

// Reassembler - the process-wide device table and the channel engine
// wired to mutate it.
type Reassembler struct {
	mu       sync.Mutex
	devices  map[string]*deviceEntry
	engine   *schema.Engine
	purgeAge time.Duration
}

// New - a Reassembler whose records are purged purgeAge after their last
// fragment.
func New(purgeAge time.Duration) *Reassembler {
	re := &Reassembler{
		devices:  make(map[string]*deviceEntry),
		engine:   schema.NewEngine(),
		purgeAge: purgeAge,
	}
	re.engine.Register(ChannelTapos, taposSchema, re.onTapos)
	re.engine.Register(ChannelAction, actionSchema, re.onAction)
	re.engine.Register(ChannelSerializedAction, serializedActionSchema, re.onSerializedAction)
	re.engine.Register(ChannelSignature, signatureSchema, re.onSignature)
	re.engine.Register(ChannelTaposRequest, taposRequestSchema, re.onTaposRequest)
	return re
}

// runContext - per-Decode-call scratch state threaded through the
// engine's processors via the opaque ctx argument.
type runContext struct {
	device    *deviceState
	now       time.Time
	result    *Result
	lastTrxID *uint8
}

func (re *Reassembler) entry(deviceKey string) *deviceEntry {
	re.mu.Lock()
	defer re.mu.Unlock()
	e, ok := re.devices[deviceKey]
	if !ok {
		e = &deviceEntry{state: newDeviceState()}
		re.devices[deviceKey] = e
	}
	return e
}

// Decode - run payload through the channel engine against deviceKey's
// table. Purges expired records before decoding, per the purge-on-lookup
// rule.
func (re *Reassembler) Decode(deviceKey string, payload []byte, now time.Time) (result Result) {
	defer func() {
		if r := recover(); nil != r {
			result = Result{Kind: ResultError, Err: fault.ErrDecodePanic}
		}
	}()

	e := re.entry(deviceKey)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.purge(now, re.purgeAge)

	ctx := &runContext{device: e.state, now: now}
	if err := re.engine.Run(payload, ctx); nil != err {
		return Result{Kind: ResultError, Err: err}
	}

	if nil != ctx.result {
		return *ctx.result
	}

	result = Result{Kind: ResultIncomplete}
	if nil != ctx.lastTrxID {
		if rec, ok := e.state.trxMap[*ctx.lastTrxID]; ok {
			result.Status = describe(rec)
		}
	}
	return result
}

func describe(rec *trxRecord) string {
	field := func(has bool, name string) string {
		if has {
			return "has " + name
		}
		return "needs " + name
	}
	parts := []string{
		field(rec.hasTapos, "tapos"),
		field(rec.hasAction, "action"),
		field(rec.hasData, "data"),
		field(rec.hasSignature, "signature"),
	}
	return strings.Join(parts, ", ")
}

func (re *Reassembler) onTapos(vector []codec.Value, ctxArg interface{}) error {
	ctx := ctxArg.(*runContext)
	trxID := uint8(vector[0].U) & 0x7
	chainID := uint32(vector[1].U) & 0x7

	rec := ctx.device.record(trxID)
	if !rec.chainSet {
		rec.chain = chainID
		rec.chainSet = true
	}
	if !rec.hasTapos {
		rec.taposBytes = padTapos(uint32(vector[2].U), uint16(vector[3].U), uint32(vector[4].U))
		rec.hasTapos = true
	}
	rec.touch(ctx.now)
	ctx.lastTrxID = &trxID
	re.checkComplete(ctx, trxID, rec)
	return nil
}

func (re *Reassembler) onAction(vector []codec.Value, ctxArg interface{}) error {
	ctx := ctxArg.(*runContext)
	trxID := uint8(vector[0].U) & 0x7

	rec := ctx.device.record(trxID)
	if !rec.hasAction {
		rec.actionBytes = frameAction(vector[1].B, vector[2].B, vector[3].B, vector[4].B)
		rec.hasAction = true
	}
	rec.touch(ctx.now)
	ctx.lastTrxID = &trxID
	re.checkComplete(ctx, trxID, rec)
	return nil
}

func (re *Reassembler) onSerializedAction(vector []codec.Value, ctxArg interface{}) error {
	ctx := ctxArg.(*runContext)
	trxID := uint8(vector[0].U) & 0x7

	rec := ctx.device.record(trxID)
	if !rec.hasData {
		rec.dataBytes = vector[1].B
		rec.hasData = true
	}
	rec.touch(ctx.now)
	ctx.lastTrxID = &trxID
	re.checkComplete(ctx, trxID, rec)
	return nil
}

func (re *Reassembler) onSignature(vector []codec.Value, ctxArg interface{}) error {
	ctx := ctxArg.(*runContext)
	trxID := uint8(vector[0].U) & 0x7

	rec := ctx.device.record(trxID)
	if !rec.hasSignature {
		rec.signature = renderSignature(vector[1].B)
		rec.hasSignature = true
	}
	rec.touch(ctx.now)
	ctx.lastTrxID = &trxID
	re.checkComplete(ctx, trxID, rec)
	return nil
}

func (re *Reassembler) onTaposRequest(vector []codec.Value, ctxArg interface{}) error {
	ctx := ctxArg.(*runContext)
	chainID := uint8(vector[0].U)
	reqID := uint8(vector[1].U)
	ctx.result = &Result{Kind: ResultTaposReq, ChainID: chainID, ReqID: reqID}
	return nil
}

// checkComplete - when rec now carries all four fragments, assemble the
// transaction, remove the record so the table never holds a complete
// one, and record the outcome on ctx.
func (re *Reassembler) checkComplete(ctx *runContext, trxID uint8, rec *trxRecord) {
	if !rec.complete() {
		return
	}
	hex, err := packedTrx(rec.taposBytes, rec.actionBytes, rec.dataBytes)
	if nil != err {
		ctx.result = &Result{Kind: ResultError, Err: fmt.Errorf("packing transaction: %w", err)}
		delete(ctx.device.trxMap, trxID)
		return
	}
	ctx.result = &Result{
		Kind:  ResultComplete,
		Chain: rec.chain,
		Transaction: &Transaction{
			Signatures:            []string{rec.signature},
			Compression:           false,
			PackedContextFreeData: "",
			PackedTrx:             hex,
		},
	}
	delete(ctx.device.trxMap, trxID)
}
