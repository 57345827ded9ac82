// SPDX-License-Identifier: ISC

package reassembler

import "time"

// trxRecord - one in-flight transaction for a device, keyed by its
// 3-bit trx id. A field is set exactly once; later fragments of the same
// kind are discarded (first-write-wins).
type trxRecord struct {
	chain        uint32
	chainSet     bool
	taposBytes   []byte
	actionBytes  []byte
	dataBytes    []byte
	signature    string
	hasTapos     bool
	hasAction    bool
	hasData      bool
	hasSignature bool
	lastEpoch    time.Time
}

func (r *trxRecord) touch(now time.Time) {
	r.lastEpoch = now
}

func (r *trxRecord) complete() bool {
	return r.hasTapos && r.hasAction && r.hasData && r.hasSignature
}

// deviceState - per-device table of in-flight transactions, keyed by trx
// id. Callers hold the owning deviceEntry's mutex (see Reassembler.entry)
// for the lifetime of any access.
type deviceState struct {
	trxMap map[uint8]*trxRecord
}

func newDeviceState() *deviceState {
	return &deviceState{trxMap: make(map[uint8]*trxRecord)}
}

func (d *deviceState) record(trxID uint8) *trxRecord {
	r, ok := d.trxMap[trxID]
	if !ok {
		r = &trxRecord{}
		d.trxMap[trxID] = r
	}
	return r
}

// purge - drop any record whose lastEpoch is older than maxAge, relative
// to now.
func (d *deviceState) purge(now time.Time, maxAge time.Duration) {
	for id, r := range d.trxMap {
		if now.Sub(r.lastEpoch) > maxAge {
			delete(d.trxMap, id)
		}
	}
}
