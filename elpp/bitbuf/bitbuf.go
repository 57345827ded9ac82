// SPDX-License-Identifier: ISC

// Package bitbuf implements the two primitive operations the ELPP wire
// codec is built on: reading and writing an arbitrary run of bits from a
// byte sequence.
//
// Bit positions increase monotonically through the buffer. Within a
// single byte, bit 0 is the most significant bit. CaptureBits returns
// the unsigned integer whose most significant bit sits at the run's
// start position and least significant bit at its end position;
// EmplaceBits writes the low (end-start+1) bits of a value into the
// same run, in the same order.
package bitbuf

import (
	"github.com/bitmark-inc/elpp-gateway/fault"
)

// MaxRunBits - widest bit run this package will capture/emplace in one
// call; covers every primitive defined by the ELPP wire format
// (fixed-width integers top out at 32 bits, bitfields likewise).
const MaxRunBits = 32

// CaptureBits - read the unsigned integer occupying bits [start, end]
// (inclusive) of buf, most significant bit first.
func CaptureBits(buf []byte, start, end int) (uint32, error) {
	if start < 0 || end < start {
		return 0, fault.ErrMalformedPayload
	}
	width := end - start + 1
	if width > MaxRunBits {
		return 0, fault.ErrMalformedPayload
	}
	if end >= len(buf)*8 {
		return 0, fault.ErrShortBuffer
	}

	var result uint32
	for pos := start; pos <= end; pos++ {
		byteIndex := pos / 8
		bitInByte := uint(pos % 8) // 0 == MSB
		bit := (buf[byteIndex] >> (7 - bitInByte)) & 1
		result = result<<1 | uint32(bit)
	}
	return result, nil
}

// EmplaceBits - write the low (end-start+1) bits of value into bits
// [start, end] (inclusive) of buf, most significant bit first. buf must
// already be large enough to hold bit index end.
func EmplaceBits(buf []byte, start, end int, value uint32) error {
	if start < 0 || end < start {
		return fault.ErrMalformedPayload
	}
	width := end - start + 1
	if width > MaxRunBits {
		return fault.ErrMalformedPayload
	}
	if end >= len(buf)*8 {
		return fault.ErrShortBuffer
	}

	for i := 0; i < width; i++ {
		pos := start + i
		byteIndex := pos / 8
		bitInByte := uint(pos % 8)
		bit := byte((value >> uint(width-1-i)) & 1)

		mask := byte(1) << (7 - bitInByte)
		if bit != 0 {
			buf[byteIndex] |= mask
		} else {
			buf[byteIndex] &^= mask
		}
	}
	return nil
}

// BytesNeeded - number of bytes required to hold bit index up to and
// including endBit.
func BytesNeeded(endBit int) int {
	return (endBit + 8) / 8
}
