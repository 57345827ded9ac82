// SPDX-License-Identifier: ISC

package reassembler

// TrxSnapshot - a JSON-friendly view of one in-flight transaction, for
// the introspection endpoint. Never includes the raw fragment bytes,
// only whether each has arrived.
type TrxSnapshot struct {
	TrxID        uint8  `json:"trx_id"`
	Chain        uint32 `json:"chain"`
	HasTapos     bool   `json:"has_tapos"`
	HasAction    bool   `json:"has_action"`
	HasData      bool   `json:"has_data"`
	HasSignature bool   `json:"has_signature"`
	LastEpochSec int64  `json:"last_epoch_unix"`
}

// DeviceSnapshot - one device's in-flight transaction table.
type DeviceSnapshot struct {
	DeviceKey    string        `json:"device_key"`
	Transactions []TrxSnapshot `json:"transactions"`
}

// Snapshot - every device currently holding at least one in-flight
// transaction.
func (re *Reassembler) Snapshot() []DeviceSnapshot {
	re.mu.Lock()
	keys := make([]string, 0, len(re.devices))
	entries := make([]*deviceEntry, 0, len(re.devices))
	for key, e := range re.devices {
		keys = append(keys, key)
		entries = append(entries, e)
	}
	re.mu.Unlock()

	out := make([]DeviceSnapshot, 0, len(keys))
	for i, key := range keys {
		e := entries[i]
		e.mu.Lock()
		if 0 == len(e.state.trxMap) {
			e.mu.Unlock()
			continue
		}
		trxs := make([]TrxSnapshot, 0, len(e.state.trxMap))
		for trxID, rec := range e.state.trxMap {
			trxs = append(trxs, TrxSnapshot{
				TrxID:        trxID,
				Chain:        rec.chain,
				HasTapos:     rec.hasTapos,
				HasAction:    rec.hasAction,
				HasData:      rec.hasData,
				HasSignature: rec.hasSignature,
				LastEpochSec: rec.lastEpoch.Unix(),
			})
		}
		e.mu.Unlock()
		out = append(out, DeviceSnapshot{DeviceKey: key, Transactions: trxs})
	}
	return out
}
