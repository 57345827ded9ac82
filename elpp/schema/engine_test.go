// SPDX-License-Identifier: ISC

package schema_test

import (
	"testing"

	"github.com/bitmark-inc/elpp-gateway/elpp/codec"
	"github.com/bitmark-inc/elpp-gateway/elpp/schema"
	"github.com/bitmark-inc/elpp-gateway/fault"
)

func TestEngineDispatchesSingleChannel(t *testing.T) {
	e := schema.NewEngine()
	var got []codec.Value
	e.Register(0x01, schema.Seq(
		schema.Leaf(codec.U8, codec.Args{}, "a"),
		schema.Leaf(codec.U16, codec.Args{}, "b"),
	), func(vector []codec.Value, ctx interface{}) error {
		got = vector
		return nil
	})

	buf := []byte{0x01, 0x7f, 0xef, 0xbe}
	if err := e.Run(buf, nil); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if 2 != len(got) {
		t.Fatalf("expected 2 values, got %d", len(got))
	}
	if 0x7f != got[0].U {
		t.Errorf("expected 0x7f got 0x%x", got[0].U)
	}
	if 0xbeef != got[1].U {
		t.Errorf("expected 0xbeef got 0x%x", got[1].U)
	}
}

func TestEngineDispatchesMultipleFramesInOrder(t *testing.T) {
	e := schema.NewEngine()
	var order []byte
	e.Register(0x01, schema.Leaf(codec.U8, codec.Args{}, "x"), func(vector []codec.Value, ctx interface{}) error {
		order = append(order, 1)
		return nil
	})
	e.Register(0x02, schema.Leaf(codec.U8, codec.Args{}, "x"), func(vector []codec.Value, ctx interface{}) error {
		order = append(order, 2)
		return nil
	})

	buf := []byte{0x01, 0x00, 0x02, 0x00}
	if err := e.Run(buf, nil); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if 2 != len(order) || 1 != order[0] || 2 != order[1] {
		t.Errorf("expected [1 2], got %v", order)
	}
}

func TestEngineUnknownChannelErrors(t *testing.T) {
	e := schema.NewEngine()
	e.Register(0x01, schema.Leaf(codec.U8, codec.Args{}, "x"), func(vector []codec.Value, ctx interface{}) error {
		return nil
	})

	buf := []byte{0x7f}
	err := e.Run(buf, nil)
	if nil == err {
		t.Fatalf("expected error")
	}
	if !fault.IsDecoderError(err) {
		t.Errorf("expected a decoder error, got %v", err)
	}
}

func TestEngineRealignsAfterOddBitfield(t *testing.T) {
	e := schema.NewEngine()
	var got []codec.Value
	// 12-bit unsigned bitfield followed by a byte-aligned u8 in the next
	// channel frame: the engine must realign to the next byte boundary
	// between DISPATCH and the following CHANNEL.
	e.Register(0x01, schema.Leaf(codec.Bitfield, codec.Args{IBits: 12}, "v"), func(vector []codec.Value, ctx interface{}) error {
		return nil
	})
	e.Register(0x02, schema.Leaf(codec.U8, codec.Args{}, "w"), func(vector []codec.Value, ctx interface{}) error {
		got = vector
		return nil
	})

	buf := []byte{0x01, 0x12, 0x30, 0x02, 0x55}
	if err := e.Run(buf, nil); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if 1 != len(got) || 0x55 != got[0].U {
		t.Errorf("expected realigned read of 0x55, got %v", got)
	}
}

func TestEngineProcessorErrorAborts(t *testing.T) {
	e := schema.NewEngine()
	e.Register(0x01, schema.Leaf(codec.U8, codec.Args{}, "x"), func(vector []codec.Value, ctx interface{}) error {
		return fault.ErrMalformedPayload
	})

	buf := []byte{0x01, 0x00}
	if err := e.Run(buf, nil); nil == err {
		t.Fatalf("expected processor error to propagate")
	}
}

func TestEngineProcessorPanicRecovers(t *testing.T) {
	e := schema.NewEngine()
	e.Register(0x01, schema.Leaf(codec.U8, codec.Args{}, "x"), func(vector []codec.Value, ctx interface{}) error {
		var bad []int
		_ = bad[0] // force an out-of-range panic
		return nil
	})

	buf := []byte{0x01, 0x00}
	err := e.Run(buf, nil)
	if nil == err {
		t.Fatalf("expected a recovered panic to surface as an error")
	}
	if !fault.IsDecoderError(err) {
		t.Errorf("expected a decoder error, got %v", err)
	}
}
