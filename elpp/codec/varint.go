// SPDX-License-Identifier: ISC

package codec

import (
	"github.com/bitmark-inc/elpp-gateway/fault"
)

// maxVarintBytes - varuint32 never needs more than 5 bytes of base-128
// LEB (7 data bits per byte covers up to 35 bits).
const maxVarintBytes = 5

// decodeVarUint32 - base-128 LEB: 7 data bits per byte, high bit set on
// every byte but the last.
func decodeVarUint32(buf []byte, bitPos int) (Value, int, error) {
	byteIndex := bitPos / 8

	var result uint32
	var shift uint
	for count := 0; ; count++ {
		if count >= maxVarintBytes {
			return Value{}, 0, fault.ErrVaruintTooLong
		}
		if byteIndex+count >= len(buf) {
			return Value{}, 0, fault.ErrShortBuffer
		}
		b := buf[byteIndex+count]
		result |= uint32(b&0x7f) << shift
		if 0 == b&0x80 {
			bits := (count + 1) * 8
			return Value{Kind: VarUint32, U: uint64(result)}, bits, nil
		}
		shift += 7
	}
}

func encodeVarUint32(buf []byte, bitPos int, value uint32) ([]byte, int, error) {
	byteIndex := bitPos / 8

	count := 0
	v := value
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if 0 != v {
			b |= 0x80
		}
		buf = growTo(buf, byteIndex+count+1)
		buf[byteIndex+count] = b
		count++
		if 0 == v {
			break
		}
	}
	return buf, count * 8, nil
}

// zigzagEncode - (x << 1) XOR (x >> 31), arithmetic shift on the right
// operand per spec.
func zigzagEncode(x int32) uint32 {
	return uint32((x << 1) ^ (x >> 31))
}

// zigzagDecode - inverse of zigzagEncode.
func zigzagDecode(x uint32) int32 {
	return int32(x>>1) ^ -(int32(x) & 1)
}
