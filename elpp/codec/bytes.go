// SPDX-License-Identifier: ISC

package codec

import (
	"github.com/bitmark-inc/elpp-gateway/fault"
)

// decodeFixedBytes - n raw bytes, byte-aligned on entry.
func decodeFixedBytes(buf []byte, bitPos int, n int) (Value, int, error) {
	byteIndex := bitPos / 8
	if byteIndex+n > len(buf) {
		return Value{}, 0, fault.ErrShortBuffer
	}
	b := make([]byte, n)
	copy(b, buf[byteIndex:byteIndex+n])
	return Value{Kind: FixedBytes, B: b}, n * 8, nil
}

func encodeFixedBytes(buf []byte, bitPos int, value []byte, n int) ([]byte, int, error) {
	if len(value) != n {
		return buf, 0, fault.ErrMalformedPayload
	}
	byteIndex := bitPos / 8
	buf = growTo(buf, byteIndex+n)
	copy(buf[byteIndex:byteIndex+n], value)
	return buf, n * 8, nil
}

// decodeDynBytes - a varuint32 length prefix followed by that many raw
// bytes.
func decodeDynBytes(buf []byte, bitPos int) (Value, int, error) {
	lenValue, lenBits, err := decodeVarUint32(buf, bitPos)
	if nil != err {
		return Value{}, 0, err
	}
	n := int(lenValue.U)
	dataBitPos := bitPos + lenBits
	byteIndex := dataBitPos / 8
	if byteIndex+n > len(buf) {
		return Value{}, 0, fault.ErrShortBuffer
	}
	b := make([]byte, n)
	copy(b, buf[byteIndex:byteIndex+n])
	return Value{Kind: DynBytes, B: b}, lenBits + n*8, nil
}

func encodeDynBytes(buf []byte, bitPos int, value []byte) ([]byte, int, error) {
	buf, lenBits, err := encodeVarUint32(buf, bitPos, uint32(len(value)))
	if nil != err {
		return buf, 0, err
	}
	dataBitPos := bitPos + lenBits
	byteIndex := dataBitPos / 8
	n := len(value)
	buf = growTo(buf, byteIndex+n)
	copy(buf[byteIndex:byteIndex+n], value)
	return buf, lenBits + n*8, nil
}
