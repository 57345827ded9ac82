// SPDX-License-Identifier: ISC

package codec_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/elpp-gateway/elpp/codec"
)

func TestRoundtripU8(t *testing.T) {
	buf, bits, err := codec.Encode(codec.U8, nil, 0, codec.Value{U: 0x7f}, codec.Args{})
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	v, dbits, err := codec.Decode(codec.U8, buf, 0, codec.Args{})
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if bits != dbits || 8 != bits {
		t.Errorf("bits mismatch: %d %d", bits, dbits)
	}
	if 0x7f != v.U {
		t.Errorf("expected 0x7f got 0x%x", v.U)
	}
}

func TestRoundtripU16(t *testing.T) {
	buf, _, err := codec.Encode(codec.U16, nil, 0, codec.Value{U: 0xbeef}, codec.Args{})
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	v, _, err := codec.Decode(codec.U16, buf, 0, codec.Args{})
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if 0xbeef != v.U {
		t.Errorf("expected 0xbeef got 0x%x", v.U)
	}
}

func TestRoundtripU32(t *testing.T) {
	buf, _, err := codec.Encode(codec.U32, nil, 0, codec.Value{U: 0xdeadbeef}, codec.Args{})
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	v, _, err := codec.Decode(codec.U32, buf, 0, codec.Args{})
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if 0xdeadbeef != v.U {
		t.Errorf("expected 0xdeadbeef got 0x%x", v.U)
	}
}

func TestRoundtripVarUint32Small(t *testing.T) {
	buf, bits, err := codec.Encode(codec.VarUint32, nil, 0, codec.Value{U: 3}, codec.Args{})
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	if 8 != bits {
		t.Errorf("expected 1 byte, got %d bits", bits)
	}
	v, _, err := codec.Decode(codec.VarUint32, buf, 0, codec.Args{})
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if 3 != v.U {
		t.Errorf("expected 3 got %d", v.U)
	}
}

func TestRoundtripVarUint32Large(t *testing.T) {
	buf, _, err := codec.Encode(codec.VarUint32, nil, 0, codec.Value{U: 123456789}, codec.Args{})
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	v, _, err := codec.Decode(codec.VarUint32, buf, 0, codec.Args{})
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if 123456789 != v.U {
		t.Errorf("expected 123456789 got %d", v.U)
	}
}

func TestRoundtripVarInt32Negative(t *testing.T) {
	buf, _, err := codec.Encode(codec.VarInt32, nil, 0, codec.Value{I: -42}, codec.Args{})
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	v, _, err := codec.Decode(codec.VarInt32, buf, 0, codec.Args{})
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if -42 != v.I {
		t.Errorf("expected -42 got %d", v.I)
	}
}

func TestRoundtripVarInt32Positive(t *testing.T) {
	buf, _, err := codec.Encode(codec.VarInt32, nil, 0, codec.Value{I: 9000}, codec.Args{})
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	v, _, err := codec.Decode(codec.VarInt32, buf, 0, codec.Args{})
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if 9000 != v.I {
		t.Errorf("expected 9000 got %d", v.I)
	}
}

func TestRoundtripBitfieldUnsignedInteger(t *testing.T) {
	args := codec.Args{Sign: false, IBits: 12, FBits: 0}
	buf, bits, err := codec.Encode(codec.Bitfield, nil, 0, codec.Value{I: 3000}, args)
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	if 12 != bits {
		t.Errorf("expected 12 bits, got %d", bits)
	}
	v, _, err := codec.Decode(codec.Bitfield, buf, 0, args)
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if 3000 != v.I {
		t.Errorf("expected 3000 got %d", v.I)
	}
}

func TestRoundtripBitfieldSignedInteger(t *testing.T) {
	args := codec.Args{Sign: true, IBits: 12, FBits: 0}
	buf, _, err := codec.Encode(codec.Bitfield, nil, 0, codec.Value{I: -100}, args)
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	v, _, err := codec.Decode(codec.Bitfield, buf, 0, args)
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if -100 != v.I {
		t.Errorf("expected -100 got %d", v.I)
	}
}

func TestRoundtripBitfieldSignedFraction(t *testing.T) {
	args := codec.Args{Sign: true, IBits: 8, FBits: 8}
	buf, bits, err := codec.Encode(codec.Bitfield, nil, 0, codec.Value{F: -1.5}, args)
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	if 16 != bits {
		t.Errorf("expected 16 bits, got %d", bits)
	}
	v, _, err := codec.Decode(codec.Bitfield, buf, 0, args)
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if -1.5 != v.F {
		t.Errorf("expected -1.5 got %v", v.F)
	}
}

func TestBitfieldEncodeClampsOnOverflow(t *testing.T) {
	args := codec.Args{Sign: false, IBits: 4, FBits: 0}
	buf, _, err := codec.Encode(codec.Bitfield, nil, 0, codec.Value{I: 99}, args)
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	v, _, err := codec.Decode(codec.Bitfield, buf, 0, args)
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if 15 != v.I {
		t.Errorf("expected clamp to 15 got %d", v.I)
	}
}

func TestRoundtripName(t *testing.T) {
	name := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	buf, _, err := codec.Encode(codec.Name, nil, 0, codec.Value{B: name}, codec.Args{})
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	v, _, err := codec.Decode(codec.Name, buf, 0, codec.Args{})
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(name, v.B) {
		t.Errorf("name mismatch: %v != %v", name, v.B)
	}
}

func TestRoundtripFixedBytes(t *testing.T) {
	raw := []byte{0xaa, 0xbb, 0xcc}
	args := codec.Args{N: 3}
	buf, _, err := codec.Encode(codec.FixedBytes, nil, 0, codec.Value{B: raw}, args)
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	v, _, err := codec.Decode(codec.FixedBytes, buf, 0, args)
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(raw, v.B) {
		t.Errorf("mismatch: %v != %v", raw, v.B)
	}
}

func TestRoundtripDynBytes(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5}
	buf, _, err := codec.Encode(codec.DynBytes, nil, 0, codec.Value{B: raw}, codec.Args{})
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	v, _, err := codec.Decode(codec.DynBytes, buf, 0, codec.Args{})
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(raw, v.B) {
		t.Errorf("mismatch: %v != %v", raw, v.B)
	}
}

func TestDynBytesEmpty(t *testing.T) {
	buf, _, err := codec.Encode(codec.DynBytes, nil, 0, codec.Value{B: nil}, codec.Args{})
	if nil != err {
		t.Fatalf("encode: %v", err)
	}
	v, _, err := codec.Decode(codec.DynBytes, buf, 0, codec.Args{})
	if nil != err {
		t.Fatalf("decode: %v", err)
	}
	if 0 != len(v.B) {
		t.Errorf("expected empty, got %v", v.B)
	}
}

func TestDecodeShortBufferErrors(t *testing.T) {
	if _, _, err := codec.Decode(codec.U32, []byte{1, 2}, 0, codec.Args{}); nil == err {
		t.Errorf("expected short buffer error")
	}
}

func TestNotAlignedErrors(t *testing.T) {
	if _, _, err := codec.Decode(codec.U8, []byte{1, 2}, 3, codec.Args{}); nil == err {
		t.Errorf("expected not-aligned error")
	}
}
