// SPDX-License-Identifier: ISC

package schema

import (
	"sync"

	"github.com/bitmark-inc/elpp-gateway/elpp/codec"
	"github.com/bitmark-inc/elpp-gateway/fault"
)

// Processor - invoked once per decoded channel frame with the ordered
// vector of primitive outputs produced by depth-first traversal of that
// channel's schema. Must be non-blocking with respect to network I/O; it
// may enqueue work but must return promptly, since it runs on the
// engine's own goroutine.
type Processor func(vector []codec.Value, ctx interface{}) error

// Channel - one entry of the channel map: the schema a selector byte
// decodes to, and the processor that consumes the decoded vector.
type Channel struct {
	Schema    Node
	Processor Processor
}

// Engine - holds the channel map explicitly as a value rather than as
// module-level mutable state, so more than one engine (e.g. one per
// test case) can coexist without interference.
type Engine struct {
	mu       sync.RWMutex
	channels map[byte]Channel
}

// NewEngine - an engine with an empty channel map.
func NewEngine() *Engine {
	return &Engine{channels: make(map[byte]Channel)}
}

// Register - associate a channel selector byte with a schema and its
// processor. Re-registering a selector replaces the previous entry.
func (e *Engine) Register(selector byte, node Node, proc Processor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.channels[selector] = Channel{Schema: node, Processor: proc}
}

// Run - CHANNEL/DECODE/DISPATCH state machine over buf. Stops
// successfully when the bit position reaches the end of buf while in the
// CHANNEL state (i.e. between frames). Any primitive error, or an
// unrecognised channel selector, aborts the whole run; frames already
// dispatched before the error have already had their side effects.
func (e *Engine) Run(buf []byte, ctx interface{}) (err error) {
	defer func() {
		if r := recover(); nil != r {
			err = fault.ErrDecodePanic
		}
	}()

	bitPos := 0
	for {
		if bitPos/8 >= len(buf) {
			return nil
		}
		if 0 != bitPos%8 {
			return fault.ErrNotAligned
		}

		selector := buf[bitPos/8]
		e.mu.RLock()
		ch, found := e.channels[selector]
		e.mu.RUnlock()
		if !found {
			return fault.ErrChannelNotFound
		}
		bitPos += 8

		vector, newBitPos, err := evaluate(ch.Schema, buf, bitPos)
		if nil != err {
			return err
		}
		bitPos = newBitPos

		if err := ch.Processor(vector, ctx); nil != err {
			return err
		}

		if 0 != bitPos%8 {
			bitPos = (bitPos/8 + 1) * 8
		}
	}
}

// evaluate - depth-first traversal appending each leaf's decoded value to
// a single output vector.
func evaluate(node Node, buf []byte, bitPos int) ([]codec.Value, int, error) {
	if node.IsLeaf {
		v, bits, err := codec.Decode(node.Kind, buf, bitPos, node.Args)
		if nil != err {
			return nil, 0, err
		}
		v.Name = node.Name
		return []codec.Value{v}, bitPos + bits, nil
	}

	var vector []codec.Value
	for _, child := range node.Children {
		childVector, newBitPos, err := evaluate(child, buf, bitPos)
		if nil != err {
			return nil, 0, err
		}
		vector = append(vector, childVector...)
		bitPos = newBitPos
	}
	return vector, bitPos, nil
}
