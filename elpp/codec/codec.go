// SPDX-License-Identifier: ISC

// Package codec implements the primitive encoders/decoders of the ELPP
// wire format: fixed-width integers, varints, Q-format bitfields, 64-bit
// names, and fixed/length-prefixed byte arrays. Each primitive consumes
// or produces a run of bits starting at a byte- or bit-aligned position
// and reports how many bits it used.
package codec

import (
	"github.com/bitmark-inc/elpp-gateway/fault"
)

// Kind - tag identifying which primitive a schema leaf evaluates.
type Kind int

const (
	U8 Kind = iota
	U16
	U32
	VarUint32
	VarInt32
	Bitfield
	Name
	FixedBytes
	DynBytes
)

// Args - arguments a primitive needs beyond its kind. Only the fields
// relevant to a given Kind are read.
type Args struct {
	Sign  bool // Bitfield: value is signed
	IBits int  // Bitfield: integer bits
	FBits int  // Bitfield: fraction bits
	N     int  // FixedBytes: length in bytes
}

// Value - one decoded field. U8/U16/U32/VarUint32 populate U, VarInt32
// and integer-valued bitfields (signed or unsigned) populate I, a
// fractional bitfield populates F, and FixedBytes/DynBytes/Name populate B (Name is the raw 8 opaque
// bytes, not decoded further - it is opaque at this layer per spec).
type Value struct {
	Kind Kind
	Name string
	U    uint64
	I    int64
	F    float64
	B    []byte
}

func bitWidth(kind Kind, args Args) int {
	switch kind {
	case U8:
		return 8
	case U16:
		return 16
	case U32:
		return 32
	case Bitfield:
		return args.IBits + args.FBits
	case Name:
		return 64
	default:
		return 0
	}
}

// Decode - consume one primitive starting at bitPos (a bit index into
// buf) and return its value plus the number of bits consumed.
func Decode(kind Kind, buf []byte, bitPos int, args Args) (Value, int, error) {
	switch kind {
	case U8, U16, U32, Name:
		width := bitWidth(kind, args)
		if bitPos%8 != 0 {
			return Value{}, 0, fault.ErrNotAligned
		}
		return decodeFixedLE(kind, buf, bitPos, width)
	case VarUint32:
		if bitPos%8 != 0 {
			return Value{}, 0, fault.ErrNotAligned
		}
		return decodeVarUint32(buf, bitPos)
	case VarInt32:
		if bitPos%8 != 0 {
			return Value{}, 0, fault.ErrNotAligned
		}
		v, bits, err := decodeVarUint32(buf, bitPos)
		if nil != err {
			return Value{}, 0, err
		}
		return Value{Kind: VarInt32, I: int64(zigzagDecode(uint32(v.U)))}, bits, nil
	case Bitfield:
		return decodeBitfield(buf, bitPos, args)
	case FixedBytes:
		if bitPos%8 != 0 {
			return Value{}, 0, fault.ErrNotAligned
		}
		return decodeFixedBytes(buf, bitPos, args.N)
	case DynBytes:
		if bitPos%8 != 0 {
			return Value{}, 0, fault.ErrNotAligned
		}
		return decodeDynBytes(buf, bitPos)
	default:
		return Value{}, 0, fault.ErrMalformedPayload
	}
}

// Encode - append one primitive's wire representation for value starting
// at bitPos, growing buf as needed, and return the new buf plus bits
// produced.
func Encode(kind Kind, buf []byte, bitPos int, value Value, args Args) ([]byte, int, error) {
	switch kind {
	case U8, U16, U32, Name:
		width := bitWidth(kind, args)
		if bitPos%8 != 0 {
			return buf, 0, fault.ErrNotAligned
		}
		return encodeFixedLE(kind, buf, bitPos, width, value)
	case VarUint32:
		if bitPos%8 != 0 {
			return buf, 0, fault.ErrNotAligned
		}
		return encodeVarUint32(buf, bitPos, uint32(value.U))
	case VarInt32:
		if bitPos%8 != 0 {
			return buf, 0, fault.ErrNotAligned
		}
		return encodeVarUint32(buf, bitPos, zigzagEncode(int32(value.I)))
	case Bitfield:
		return encodeBitfield(buf, bitPos, value, args)
	case FixedBytes:
		if bitPos%8 != 0 {
			return buf, 0, fault.ErrNotAligned
		}
		return encodeFixedBytes(buf, bitPos, value.B, args.N)
	case DynBytes:
		if bitPos%8 != 0 {
			return buf, 0, fault.ErrNotAligned
		}
		return encodeDynBytes(buf, bitPos, value.B)
	default:
		return buf, 0, fault.ErrMalformedPayload
	}
}

// growTo - ensure buf is at least n bytes, zero extending.
func growTo(buf []byte, n int) []byte {
	if len(buf) >= n {
		return buf
	}
	grown := make([]byte, n)
	copy(grown, buf)
	return grown
}
