// SPDX-License-Identifier: ISC

// Package schema describes ELPP message layouts as a rose tree and
// evaluates them depth-first against a bit buffer. A schema node is
// either a primitive leaf naming a codec.Kind plus its arguments, or an
// internal node holding an ordered list of children. This is a closed
// tagged union rather than a tree of callables: there are no function
// values in the data model, only tags an interpreter switches on.
package schema

import "github.com/bitmark-inc/elpp-gateway/elpp/codec"

// Node - one rose-tree node. IsLeaf selects which fields are live.
type Node struct {
	IsLeaf   bool
	Kind     codec.Kind
	Args     codec.Args
	Name     string
	Children []Node
}

// Leaf - a primitive codec reference with optional arguments and an
// optional field name carried through to decoded output for diagnostics.
func Leaf(kind codec.Kind, args codec.Args, name string) Node {
	return Node{IsLeaf: true, Kind: kind, Args: args, Name: name}
}

// Seq - an ordered sequence of child schemas, evaluated in order.
func Seq(children ...Node) Node {
	return Node{IsLeaf: false, Children: children}
}
