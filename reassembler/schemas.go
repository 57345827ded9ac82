// SPDX-License-Identifier: ISC

package reassembler

import (
	"github.com/bitmark-inc/elpp-gateway/elpp/codec"
	"github.com/bitmark-inc/elpp-gateway/elpp/schema"
)

// Channel selectors for the four Antelope transaction fragments plus the
// device-originated TAPOS request.
const (
	ChannelTapos            byte = 0x00
	ChannelAction           byte = 0x01
	ChannelSerializedAction byte = 0x02
	ChannelSignature        byte = 0x03
	ChannelTaposRequest     byte = 0x04
)

// taposSchema - header, 1-byte chain id, 10 bytes of opaque TAPOS
// (expiration uint32, ref_block_num uint16, ref_block_prefix uint32).
var taposSchema = schema.Seq(
	schema.Leaf(codec.U8, codec.Args{}, "header"),
	schema.Leaf(codec.U8, codec.Args{}, "chain_id"),
	schema.Leaf(codec.U32, codec.Args{}, "expiration"),
	schema.Leaf(codec.U16, codec.Args{}, "ref_block_num"),
	schema.Leaf(codec.U32, codec.Args{}, "ref_block_prefix"),
)

// actionSchema - header, then dapp/action names (16 bytes) and
// permission/actor names (16 bytes), each name an opaque 64-bit field.
var actionSchema = schema.Seq(
	schema.Leaf(codec.U8, codec.Args{}, "header"),
	schema.Leaf(codec.Name, codec.Args{}, "dapp"),
	schema.Leaf(codec.Name, codec.Args{}, "action"),
	schema.Leaf(codec.Name, codec.Args{}, "permission"),
	schema.Leaf(codec.Name, codec.Args{}, "actor"),
)

// serializedActionSchema - header, then a length-prefixed opaque payload.
var serializedActionSchema = schema.Seq(
	schema.Leaf(codec.U8, codec.Args{}, "header"),
	schema.Leaf(codec.DynBytes, codec.Args{}, "data"),
)

// signatureSchema - header, then the 65-byte i/r/s signature.
var signatureSchema = schema.Seq(
	schema.Leaf(codec.U8, codec.Args{}, "header"),
	schema.Leaf(codec.FixedBytes, codec.Args{N: 65}, "signature"),
)

// taposRequestSchema - a device asking the gateway for fresh TAPOS on a
// chain, identifying the request by an echo id.
var taposRequestSchema = schema.Seq(
	schema.Leaf(codec.U8, codec.Args{}, "chain_id"),
	schema.Leaf(codec.U8, codec.Args{}, "req_id"),
)

// TaposResponseSchema - the downlink reply to a TAPOS request: echoes
// chain_id/req_id, the gateway's receive timestamp, and the current
// reference-block metadata for that chain. Exported so the ingress layer
// can encode it without importing the reassembler's internals.
var TaposResponseSchema = schema.Seq(
	schema.Leaf(codec.U8, codec.Args{}, "chain_id"),
	schema.Leaf(codec.U8, codec.Args{}, "req_id"),
	schema.Leaf(codec.U32, codec.Args{}, "gateway_sec"),
	schema.Leaf(codec.U32, codec.Args{}, "gateway_ms"),
	schema.Leaf(codec.U16, codec.Args{}, "ref_block_num"),
	schema.Leaf(codec.U32, codec.Args{}, "ref_block_prefix"),
)
