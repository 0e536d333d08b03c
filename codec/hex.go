// Package codec provides transport codecs over the binary schema encoding.
package codec

import (
	"context"
	"encoding/hex"

	binschema "github.com/binschema/binschema"
)

// Hex returns a codec that carries a schema's binary encoding as a lowercase
// hexadecimal string, two characters per byte, no separators — the transit
// form payloads conventionally travel in.
func Hex(s binschema.Schema) *HexCodec {
	return &HexCodec{schema: s}
}

// HexCodec converts between dynamic values and hex-string payloads.
type HexCodec struct {
	schema binschema.Schema
}

// Schema returns the underlying schema node.
func (c *HexCodec) Schema() binschema.Schema { return c.schema }

// Encode validates v and renders its binary encoding as a hex string.
func (c *HexCodec) Encode(ctx context.Context, v any) (string, error) {
	raw, err := c.schema.Encode(ctx, v)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// Decode parses a hex payload and returns the decoded, validated value.
func (c *HexCodec) Decode(ctx context.Context, payload string) (any, error) {
	raw, err := hex.DecodeString(payload)
	if err != nil {
		return nil, binschema.Issues{{Path: "/", Code: binschema.CodeParseError, Message: "invalid hex payload", Cause: err}}
	}
	return binschema.Decode(ctx, c.schema, raw)
}
