// SPDX-License-Identifier: ISC

package codec

import (
	"math"

	"github.com/bitmark-inc/elpp-gateway/elpp/bitbuf"
)

// decodeBitfield - i_bits+f_bits bits, big-endian within the run.
// Sign-extends by shifting left then arithmetic-right by (32-bits) when
// sign is set, then divides by 2^f_bits.
func decodeBitfield(buf []byte, bitPos int, args Args) (Value, int, error) {
	bits := args.IBits + args.FBits
	raw, err := bitbuf.CaptureBits(buf, bitPos, bitPos+bits-1)
	if nil != err {
		return Value{}, 0, err
	}

	if !args.Sign {
		if 0 == args.FBits {
			return Value{Kind: Bitfield, I: int64(raw)}, bits, nil
		}
		f := float64(raw) / math.Pow(2, float64(args.FBits))
		return Value{Kind: Bitfield, F: f}, bits, nil
	}

	shifted := int32(raw << uint(32-bits))
	signed := shifted >> uint(32-bits)

	if 0 == args.FBits {
		return Value{Kind: Bitfield, I: int64(signed)}, bits, nil
	}
	f := float64(signed) / math.Pow(2, float64(args.FBits))
	return Value{Kind: Bitfield, F: f}, bits, nil
}

// encodeBitfield - clamps to the signed/unsigned range on overflow, then
// quantizes by multiplying by 2^f_bits.
func encodeBitfield(buf []byte, bitPos int, value Value, args Args) ([]byte, int, error) {
	bits := args.IBits + args.FBits
	buf = growTo(buf, bitbuf.BytesNeeded(bitPos+bits-1))

	var raw uint32
	if 0 != args.FBits {
		scaled := value.F * math.Pow(2, float64(args.FBits))
		if args.Sign {
			raw = uint32(clampSigned(int64(math.Round(scaled)), bits))
		} else {
			raw = clampUnsigned(uint64(math.Round(scaled)), bits)
		}
	} else if args.Sign {
		raw = uint32(clampSigned(value.I, bits))
	} else {
		raw = clampUnsigned(uint64(value.I), bits)
	}

	if err := bitbuf.EmplaceBits(buf, bitPos, bitPos+bits-1, raw); nil != err {
		return buf, 0, err
	}
	return buf, bits, nil
}

func clampUnsigned(v uint64, bits int) uint32 {
	max := uint64(1)<<uint(bits) - 1
	if v > max {
		return uint32(max)
	}
	return uint32(v)
}

func clampSigned(v int64, bits int) int64 {
	max := int64(1)<<uint(bits-1) - 1
	min := -(int64(1) << uint(bits-1))
	if v > max {
		return max
	}
	if v < min {
		return min
	}
	return v
}
