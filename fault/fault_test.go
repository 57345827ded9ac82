// SPDX-License-Identifier: ISC

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/elpp-gateway/fault"
)

var (
	ErrDecoderOne     = fault.DecoderError("decoder one")
	ErrDecoderTwo     = fault.DecoderError("decoder two")
	ErrReassemblyOne  = fault.ReassemblyError("reassembly one")
	ErrReassemblyTwo  = fault.ReassemblyError("reassembly two")
	ErrTaposOne       = fault.TaposError("tapos one")
	ErrTaposTwo       = fault.TaposError("tapos two")
	ErrDispatchOne    = fault.DispatchError("dispatch one")
	ErrDispatchTwo    = fault.DispatchError("dispatch two")
	ErrApiPoolOne     = fault.ApiPoolError("api pool one")
	ErrApiPoolTwo     = fault.ApiPoolError("api pool two")
	ErrInvalidOne     = fault.InvalidError("invalid one")
	ErrInvalidTwo     = fault.InvalidError("invalid two")
)

// test that each error kind can be subclassed and distinguished
func TestKind(t *testing.T) {
	errorList := []struct {
		err        error
		decoder    bool
		reassembly bool
		tapos      bool
		dispatch   bool
		apiPool    bool
		invalid    bool
	}{
		{ErrDecoderOne, true, false, false, false, false, false},
		{ErrDecoderTwo, true, false, false, false, false, false},
		{ErrReassemblyOne, false, true, false, false, false, false},
		{ErrReassemblyTwo, false, true, false, false, false, false},
		{ErrTaposOne, false, false, true, false, false, false},
		{ErrTaposTwo, false, false, true, false, false, false},
		{ErrDispatchOne, false, false, false, true, false, false},
		{ErrDispatchTwo, false, false, false, true, false, false},
		{ErrApiPoolOne, false, false, false, false, true, false},
		{ErrApiPoolTwo, false, false, false, false, true, false},
		{ErrInvalidOne, false, false, false, false, false, true},
		{ErrInvalidTwo, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsDecoderError(err) != e.decoder {
			t.Errorf("%d: expected 'decoder' == %v for err = %v", i, e.decoder, err)
		}
		if fault.IsReassemblyError(err) != e.reassembly {
			t.Errorf("%d: expected 'reassembly' == %v for err = %v", i, e.reassembly, err)
		}
		if fault.IsTaposError(err) != e.tapos {
			t.Errorf("%d: expected 'tapos' == %v for err = %v", i, e.tapos, err)
		}
		if fault.IsDispatchError(err) != e.dispatch {
			t.Errorf("%d: expected 'dispatch' == %v for err = %v", i, e.dispatch, err)
		}
		if fault.IsApiPoolError(err) != e.apiPool {
			t.Errorf("%d: expected 'apiPool' == %v for err = %v", i, e.apiPool, err)
		}
		if fault.IsInvalidError(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
	}
}
