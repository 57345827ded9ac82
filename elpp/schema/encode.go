// SPDX-License-Identifier: ISC

package schema

import "github.com/bitmark-inc/elpp-gateway/elpp/codec"

// Encode - depth-first traversal of node, consuming one codec.Value per
// leaf from values in order and appending its wire representation to buf.
// The caller supplies exactly as many values as node has leaves.
func Encode(node Node, values []codec.Value) ([]byte, error) {
	buf, _, _, err := encodeNode(node, nil, 0, values, 0)
	return buf, err
}

// EncodeFrame - Encode prefixed with the channel selector byte, producing
// a full channel frame ready to append to an outbound buffer.
func EncodeFrame(selector byte, node Node, values []codec.Value) ([]byte, error) {
	body, err := Encode(node, values)
	if nil != err {
		return nil, err
	}
	return append([]byte{selector}, body...), nil
}

func encodeNode(node Node, buf []byte, bitPos int, values []codec.Value, idx int) ([]byte, int, int, error) {
	if node.IsLeaf {
		buf, bits, err := codec.Encode(node.Kind, buf, bitPos, values[idx], node.Args)
		if nil != err {
			return buf, 0, 0, err
		}
		return buf, bitPos + bits, idx + 1, nil
	}

	for _, child := range node.Children {
		var err error
		buf, bitPos, idx, err = encodeNode(child, buf, bitPos, values, idx)
		if nil != err {
			return buf, 0, 0, err
		}
	}
	return buf, bitPos, idx, nil
}
