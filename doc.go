// Package binschema provides:
//
// - Composable schema nodes that validate dynamically typed values and
//   serialize them to a compact binary wire format (Validate/Encode/Decode)
// - A stable error model via Issues (JSON Pointer, code, message)
// - Structural derivation of object schemas (extend/merge/pick/omit/partial)
//   as pure operations over immutable nodes
//
// Design policy:
// - Keep only public contracts in the root package; the constructor DSL
//   lives under dsl/, transport codecs under codec/, wire-level packing
//   under wire/, and the CLI under cmd/binschema.
// - Schema nodes are immutable after construction and safe for concurrent
//   use; derivations return new nodes and never mutate their inputs.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := buildSchema()
//	v, err := s.Validate(ctx, input)
//	wire, err := s.Encode(ctx, input)
//	back, err := binschema.Decode(ctx, s, wire)
package binschema
