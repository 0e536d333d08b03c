// Package dsl provides the schema node constructors: primitive codecs,
// enums, the Optional/Nullable/Array wrappers, and the object builder with
// its structural derivations. Every constructor returns an immutable node
// implementing binschema.Schema.
package dsl

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	binschema "github.com/binschema/binschema"
	"github.com/binschema/binschema/i18n"
	"github.com/binschema/binschema/wire"
)

// Int returns a fixed-width signed integer schema. width is the wire size in
// bytes and must be 1, 2, or 4.
func Int(width int) binschema.Schema {
	mustWidth(width)
	return intSchema{width: width}
}

// Uint returns a fixed-width unsigned integer schema. width is the wire size
// in bytes and must be 1, 2, or 4.
func Uint(width int) binschema.Schema {
	mustWidth(width)
	return uintSchema{width: width}
}

// Bits returns an unsigned integer schema constrained to bits binary digits,
// occupying ceil(bits/8) bytes on the wire. bits must be in [1, 32].
func Bits(bits int) binschema.Schema {
	if bits < 1 || bits > 32 {
		panic(fmt.Sprintf("dsl: bit width must be in [1, 32], got %d", bits))
	}
	return bitsSchema{bits: bits}
}

// Float32 returns a single-precision float schema. Values are rounded to 7
// significant digits on validate, encode, and decode so that the validated
// form and the round-tripped form agree despite 32-bit precision loss.
func Float32() binschema.Schema { return float32Schema{} }

// Float64 returns a double-precision float schema.
func Float64() binschema.Schema { return float64Schema{} }

// Bool returns a boolean schema encoded as a single 0x00/0x01 byte.
func Bool() binschema.Schema { return boolSchema{} }

// String returns a UTF-8 string schema with a varint byte-length prefix.
func String() binschema.Schema { return stringSchema{} }

// BigInt returns an arbitrary-precision non-negative integer schema encoded
// as a varint of the magnitude.
func BigInt() binschema.Schema { return bigIntSchema{} }

func mustWidth(width int) {
	switch width {
	case 1, 2, 4:
	default:
		panic(fmt.Sprintf("dsl: byte width must be 1, 2, or 4, got %d", width))
	}
}

// ---- shared issue helpers ----

func typeIssue(hint string) error {
	return binschema.Issues{{Path: "/", Code: binschema.CodeInvalidType, Message: i18n.T(binschema.CodeInvalidType, nil), Hint: hint}}
}

func rangeIssue(hint string) error {
	return binschema.Issues{{Path: "/", Code: binschema.CodeOutOfRange, Message: i18n.T(binschema.CodeOutOfRange, nil), Hint: hint}}
}

func wireIssue(err error) error {
	code := binschema.CodeTruncated
	if errors.Is(err, wire.ErrVarintOverflow) {
		code = binschema.CodeOutOfRange
	}
	return binschema.Issues{{Path: "/", Code: code, Message: i18n.T(code, nil), Cause: err}}
}

// ---- signed integers ----

type intSchema struct{ width int }

var _ binschema.Schema = intSchema{}

func (s intSchema) bounds() (min, max int64) {
	max = int64(1)<<(8*s.width-1) - 1
	return -max - 1, max
}

func (s intSchema) Validate(ctx context.Context, v any) (any, error) {
	i, over, ok := asInt64(v)
	if !ok {
		return nil, typeIssue("expected integer")
	}
	min, max := s.bounds()
	if over || i < min || i > max {
		return nil, rangeIssue(fmt.Sprintf("expected integer in [%d, %d]", min, max))
	}
	return i, nil
}

func (s intSchema) Encode(ctx context.Context, v any) ([]byte, error) {
	nv, err := s.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	return wire.AppendInt(nil, nv.(int64), s.width), nil
}

func (s intSchema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	i, n, err := wire.DecodeInt(data, s.width)
	if err != nil {
		return nil, nil, wireIssue(err)
	}
	return i, data[n:], nil
}

// ---- unsigned integers ----

type uintSchema struct{ width int }

var _ binschema.Schema = uintSchema{}

func (s uintSchema) max() uint64 { return 1<<(8*s.width) - 1 }

func (s uintSchema) Validate(ctx context.Context, v any) (any, error) {
	u, neg, ok := asUint64(v)
	if !ok {
		return nil, typeIssue("expected integer")
	}
	if neg || u > s.max() {
		return nil, rangeIssue(fmt.Sprintf("expected integer in [0, %d]", s.max()))
	}
	return u, nil
}

func (s uintSchema) Encode(ctx context.Context, v any) ([]byte, error) {
	nv, err := s.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	return wire.AppendUint(nil, nv.(uint64), s.width), nil
}

func (s uintSchema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	u, n, err := wire.DecodeUint(data, s.width)
	if err != nil {
		return nil, nil, wireIssue(err)
	}
	return u, data[n:], nil
}

// ---- bit-width integers ----

type bitsSchema struct{ bits int }

var _ binschema.Schema = bitsSchema{}

func (s bitsSchema) byteWidth() int { return (s.bits + 7) / 8 }

func (s bitsSchema) max() uint64 { return 1<<s.bits - 1 }

func (s bitsSchema) Validate(ctx context.Context, v any) (any, error) {
	u, neg, ok := asUint64(v)
	if !ok {
		return nil, typeIssue("expected integer")
	}
	if neg || u > s.max() {
		return nil, rangeIssue(fmt.Sprintf("expected integer in [0, %d]", s.max()))
	}
	return u, nil
}

func (s bitsSchema) Encode(ctx context.Context, v any) ([]byte, error) {
	nv, err := s.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	return wire.AppendUint(nil, nv.(uint64), s.byteWidth()), nil
}

func (s bitsSchema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	u, n, err := wire.DecodeUint(data, s.byteWidth())
	if err != nil {
		return nil, nil, wireIssue(err)
	}
	// stray high bits in the padding byte are masked off, not rejected
	return u & s.max(), data[n:], nil
}

// ---- floats ----

// roundFloat32 rounds to 7 significant decimal digits, the precision a
// 32-bit float reliably preserves.
func roundFloat32(f float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'g', 7, 64), 64)
	if err != nil {
		return f
	}
	return r
}

type float32Schema struct{}

var _ binschema.Schema = float32Schema{}

func (float32Schema) Validate(ctx context.Context, v any) (any, error) {
	f, ok := asFloat64(v)
	if !ok {
		return nil, typeIssue("expected number")
	}
	return roundFloat32(f), nil
}

func (s float32Schema) Encode(ctx context.Context, v any) ([]byte, error) {
	nv, err := s.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	return wire.AppendFloat32(nil, float32(nv.(float64))), nil
}

func (float32Schema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	f, n, err := wire.DecodeFloat32(data)
	if err != nil {
		return nil, nil, wireIssue(err)
	}
	return roundFloat32(float64(f)), data[n:], nil
}

type float64Schema struct{}

var _ binschema.Schema = float64Schema{}

func (float64Schema) Validate(ctx context.Context, v any) (any, error) {
	f, ok := asFloat64(v)
	if !ok {
		return nil, typeIssue("expected number")
	}
	return f, nil
}

func (s float64Schema) Encode(ctx context.Context, v any) ([]byte, error) {
	nv, err := s.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	return wire.AppendFloat64(nil, nv.(float64)), nil
}

func (float64Schema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	f, n, err := wire.DecodeFloat64(data)
	if err != nil {
		return nil, nil, wireIssue(err)
	}
	return f, data[n:], nil
}

// ---- bool ----

type boolSchema struct{}

var _ binschema.Schema = boolSchema{}

func (boolSchema) Validate(ctx context.Context, v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, typeIssue("expected bool")
	}
	return b, nil
}

func (s boolSchema) Encode(ctx context.Context, v any) ([]byte, error) {
	nv, err := s.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	if nv.(bool) {
		return []byte{0x01}, nil
	}
	return []byte{0x00}, nil
}

func (boolSchema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	if len(data) < 1 {
		return nil, nil, wireIssue(wire.ErrTruncated)
	}
	return data[0] != 0x00, data[1:], nil
}

// ---- string ----

type stringSchema struct{}

var _ binschema.Schema = stringSchema{}

func (stringSchema) Validate(ctx context.Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, typeIssue("expected string")
	}
	return s, nil
}

func (s stringSchema) Encode(ctx context.Context, v any) ([]byte, error) {
	nv, err := s.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	str := nv.(string)
	buf := wire.AppendUvarint(nil, uint64(len(str)))
	return append(buf, str...), nil
}

func (stringSchema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	length, n, err := wire.DecodeUvarint(data)
	if err != nil {
		return nil, nil, wireIssue(err)
	}
	rest := data[n:]
	if uint64(len(rest)) < length {
		return nil, nil, wireIssue(wire.ErrTruncated)
	}
	return string(rest[:length]), rest[length:], nil
}

// ---- big integers ----

type bigIntSchema struct{}

var _ binschema.Schema = bigIntSchema{}

func (bigIntSchema) Validate(ctx context.Context, v any) (any, error) {
	n, ok := asBigInt(v)
	if !ok {
		return nil, typeIssue("expected big integer")
	}
	if n.Sign() < 0 {
		return nil, rangeIssue("expected non-negative integer")
	}
	return n, nil
}

func (s bigIntSchema) Encode(ctx context.Context, v any) ([]byte, error) {
	nv, err := s.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	return wire.AppendUvarintBig(nil, nv.(*big.Int)), nil
}

func (bigIntSchema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	n, used, err := wire.DecodeUvarintBig(data)
	if err != nil {
		return nil, nil, wireIssue(err)
	}
	return n, data[used:], nil
}
