// SPDX-License-Identifier: ISC

package codec

import (
	"github.com/bitmark-inc/elpp-gateway/fault"
)

// decodeFixedLE - u8/u16/u32/name are little-endian at the byte level,
// byte-aligned on entry.
func decodeFixedLE(kind Kind, buf []byte, bitPos int, width int) (Value, int, error) {
	byteIndex := bitPos / 8
	n := width / 8
	if byteIndex+n > len(buf) {
		return Value{}, 0, fault.ErrShortBuffer
	}

	if Name == kind {
		b := make([]byte, n)
		copy(b, buf[byteIndex:byteIndex+n])
		return Value{Kind: kind, B: b}, width, nil
	}

	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(buf[byteIndex+i])
	}
	return Value{Kind: kind, U: v}, width, nil
}

func encodeFixedLE(kind Kind, buf []byte, bitPos int, width int, value Value) ([]byte, int, error) {
	byteIndex := bitPos / 8
	n := width / 8
	buf = growTo(buf, byteIndex+n)

	if Name == kind {
		if len(value.B) != n {
			return buf, 0, fault.ErrMalformedPayload
		}
		copy(buf[byteIndex:byteIndex+n], value.B)
		return buf, width, nil
	}

	v := value.U
	for i := 0; i < n; i++ {
		buf[byteIndex+i] = byte(v)
		v >>= 8
	}
	return buf, width, nil
}
