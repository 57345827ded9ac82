// SPDX-License-Identifier: ISC

package reassembler

import (
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/bitmark-inc/elpp-gateway/elpp/codec"
)

// padTapos - 10 payload bytes (expiration uint32, ref_block_num uint16,
// ref_block_prefix uint32) plus 3 trailing zero bytes standing in for
// max_net_usage_words, max_cpu_usage_ms, and delay_sec, each a varuint
// zero.
func padTapos(expiration uint32, refBlockNum uint16, refBlockPrefix uint32) []byte {
	buf := make([]byte, 0, 13)
	buf = append(buf,
		byte(expiration), byte(expiration>>8), byte(expiration>>16), byte(expiration>>24),
		byte(refBlockNum), byte(refBlockNum>>8),
		byte(refBlockPrefix), byte(refBlockPrefix>>8), byte(refBlockPrefix>>16), byte(refBlockPrefix>>24),
	)
	return append(buf, 0x00, 0x00, 0x00)
}

// frameAction - prepends the outer action-array count (0x01) and the
// permission-array count (0x01) at bytes 0 and 17 of a 34-byte buffer.
func frameAction(dapp, action, permission, actor []byte) []byte {
	buf := make([]byte, 34)
	buf[0] = 0x01
	copy(buf[1:9], dapp)
	copy(buf[9:17], action)
	buf[17] = 0x01
	copy(buf[18:26], permission)
	copy(buf[26:34], actor)
	return buf
}

// renderSignature - "SIG_K1_" + base58(sig ∥ ripemd160(sig ∥ "K1")[:4]).
func renderSignature(sig []byte) string {
	h := ripemd160.New()
	h.Write(sig)
	h.Write([]byte("K1"))
	checksum := h.Sum(nil)[:4]

	payload := append(append([]byte{}, sig...), checksum...)
	return "SIG_K1_" + base58.Encode(payload)
}

// packedTrx - tapos_bytes ∥ [0x00] (context-free actions count) ∥
// action_bytes ∥ length-prefixed data_bytes, hex encoded.
func packedTrx(tapos, action, data []byte) (string, error) {
	packed := make([]byte, 0, len(tapos)+1+len(action)+len(data)+5)
	packed = append(packed, tapos...)
	packed = append(packed, 0x00)
	packed = append(packed, action...)

	lengthPrefixed, _, err := codec.Encode(codec.DynBytes, nil, 0, codec.Value{B: data}, codec.Args{})
	if nil != err {
		return "", err
	}
	packed = append(packed, lengthPrefixed...)

	return hex.EncodeToString(packed), nil
}

// Transaction - the JSON body POSTed to the blockchain API's
// send_transaction endpoint.
type Transaction struct {
	Signatures            []string `json:"signatures"`
	Compression           bool     `json:"compression"`
	PackedContextFreeData string   `json:"packed_context_free_data"`
	PackedTrx             string   `json:"packed_trx"`
}
