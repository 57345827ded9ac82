// SPDX-License-Identifier: ISC

package bitbuf_test

import (
	"testing"

	"github.com/bitmark-inc/elpp-gateway/elpp/bitbuf"
)

func TestCaptureBitsWholeByte(t *testing.T) {
	buf := []byte{0xa5}
	v, err := bitbuf.CaptureBits(buf, 0, 7)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if 0xa5 != v {
		t.Errorf("expected 0xa5 got 0x%x", v)
	}
}

func TestCaptureBitsNibble(t *testing.T) {
	buf := []byte{0xa5} // 1010 0101
	hi, err := bitbuf.CaptureBits(buf, 0, 3)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if 0xa != hi {
		t.Errorf("expected 0xa got 0x%x", hi)
	}
	lo, err := bitbuf.CaptureBits(buf, 4, 7)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if 0x5 != lo {
		t.Errorf("expected 0x5 got 0x%x", lo)
	}
}

func TestCaptureBitsSpanningBytes(t *testing.T) {
	// 1111 0000  0011 1100
	buf := []byte{0xf0, 0x3c}
	v, err := bitbuf.CaptureBits(buf, 4, 11)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	// bits 4..11 are: 0000 0011 => 0x03
	if 0x03 != v {
		t.Errorf("expected 0x03 got 0x%x", v)
	}
}

func TestCaptureBitsShortBuffer(t *testing.T) {
	buf := []byte{0x00}
	if _, err := bitbuf.CaptureBits(buf, 0, 8); nil == err {
		t.Errorf("expected short buffer error")
	}
}

func TestEmplaceBitsRoundtrip(t *testing.T) {
	buf := make([]byte, 2)
	if err := bitbuf.EmplaceBits(buf, 3, 10, 0x1a5&0xff); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := bitbuf.CaptureBits(buf, 3, 10)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if uint32(0x1a5&0xff) != v {
		t.Errorf("roundtrip mismatch: got 0x%x", v)
	}
}

func TestEmplaceBitsDoesNotTouchNeighbours(t *testing.T) {
	buf := []byte{0xff, 0xff}
	if err := bitbuf.EmplaceBits(buf, 4, 11, 0x00); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf[0] != 0xf0 {
		t.Errorf("expected high nibble preserved, got 0x%x", buf[0])
	}
	if buf[1] != 0x0f {
		t.Errorf("expected low nibble preserved, got 0x%x", buf[1])
	}
}

func TestBytesNeeded(t *testing.T) {
	cases := []struct{ endBit, bytes int }{
		{0, 1}, {7, 1}, {8, 2}, {15, 2}, {16, 3},
	}
	for _, c := range cases {
		if got := bitbuf.BytesNeeded(c.endBit); got != c.bytes {
			t.Errorf("BytesNeeded(%d): expected %d got %d", c.endBit, c.bytes, got)
		}
	}
}
