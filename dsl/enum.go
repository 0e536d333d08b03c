package dsl

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	binschema "github.com/binschema/binschema"
	"github.com/binschema/binschema/i18n"
	"github.com/binschema/binschema/wire"
)

// EnumSchema is a literal enum node: an ordered, de-duplicated set of string
// values encoded as a single-byte index into that ordering. Exclude and
// Extract derive new enums with filtered value sets; indices shift, so wire
// values are not portable between an enum and its derivations.
type EnumSchema interface {
	binschema.Schema

	// Values returns the permitted values in wire-index order.
	Values() []string

	// Exclude derives an enum without the given values. Fails with
	// empty_enum when nothing would remain.
	Exclude(values ...string) (EnumSchema, error)

	// Extract derives an enum keeping only the given values, preserving the
	// receiver's relative order. Fails with empty_enum when nothing would
	// remain.
	Extract(values ...string) (EnumSchema, error)
}

// Enum returns a literal enum over the given values. Duplicates are dropped
// (first occurrence wins). The set must be non-empty and hold at most 256
// values, since the wire index is a single byte.
func Enum(values ...string) EnumSchema {
	seen := make(map[string]struct{}, len(values))
	vals := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		panic("dsl: enum requires at least one value")
	}
	if len(vals) > 256 {
		panic(fmt.Sprintf("dsl: enum holds %d values, wire index is one byte", len(vals)))
	}
	return enumSchema{values: vals}
}

type enumSchema struct{ values []string }

var _ EnumSchema = enumSchema{}

func (s enumSchema) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

func (s enumSchema) indexOf(v string) int {
	for i, ev := range s.values {
		if ev == v {
			return i
		}
	}
	return -1
}

func (s enumSchema) Validate(ctx context.Context, v any) (any, error) {
	sv, ok := v.(string)
	if !ok {
		return nil, typeIssue("expected string")
	}
	if s.indexOf(sv) < 0 {
		return nil, enumIssue(s.values)
	}
	return sv, nil
}

func (s enumSchema) Encode(ctx context.Context, v any) ([]byte, error) {
	nv, err := s.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	return []byte{byte(s.indexOf(nv.(string)))}, nil
}

func (s enumSchema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	if len(data) < 1 {
		return nil, nil, wireIssue(wire.ErrTruncated)
	}
	idx := int(data[0])
	if idx >= len(s.values) {
		return nil, nil, enumIndexIssue(idx, len(s.values))
	}
	return s.values[idx], data[1:], nil
}

func (s enumSchema) Exclude(values ...string) (EnumSchema, error) {
	drop := make(map[string]struct{}, len(values))
	for _, v := range values {
		drop[v] = struct{}{}
	}
	out := make([]string, 0, len(s.values))
	for _, v := range s.values {
		if _, gone := drop[v]; !gone {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, emptyEnumIssue()
	}
	return enumSchema{values: out}, nil
}

func (s enumSchema) Extract(values ...string) (EnumSchema, error) {
	keep := make(map[string]struct{}, len(values))
	for _, v := range values {
		keep[v] = struct{}{}
	}
	out := make([]string, 0, len(values))
	for _, v := range s.values {
		if _, want := keep[v]; want {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, emptyEnumIssue()
	}
	return enumSchema{values: out}, nil
}

func enumIssue(values []string) error {
	return binschema.Issues{{
		Path:    "/",
		Code:    binschema.CodeInvalidEnum,
		Message: i18n.T(binschema.CodeInvalidEnum, nil),
		Hint:    "expected one of: " + strings.Join(values, ", "),
	}}
}

func enumIndexIssue(idx, n int) error {
	return binschema.Issues{{
		Path:    "/",
		Code:    binschema.CodeInvalidEnumIndex,
		Message: i18n.T(binschema.CodeInvalidEnumIndex, nil),
		Hint:    fmt.Sprintf("index %d, enum holds %d values", idx, n),
	}}
}

func emptyEnumIssue() error {
	return binschema.Issues{{Path: "/", Code: binschema.CodeEmptyEnum, Message: i18n.T(binschema.CodeEmptyEnum, nil)}}
}

// NativeEnum wraps an external key-to-value mapping, as produced by code
// generators or configuration tables. The value kind (numeric or string) is
// inferred from the first entry in ascending key order; entries of the other
// kind are ignored, mirroring reverse mappings in generated enum tables.
// The wire index counts same-kind values in ascending key order, since Go
// maps carry no declaration order.
//
// Numeric enums additionally accept the decimal string form of a member
// during validation; the normalized value is always the native one.
func NativeEnum(mapping map[string]any) binschema.Schema {
	if len(mapping) == 0 {
		panic("dsl: native enum requires at least one entry")
	}
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	_, numeric := normalizeEnumNumber(mapping[keys[0]])
	vals := make([]any, 0, len(keys))
	seen := make(map[any]struct{}, len(keys))
	for _, k := range keys {
		raw := mapping[k]
		var v any
		if numeric {
			nv, ok := normalizeEnumNumber(raw)
			if !ok {
				continue
			}
			v = nv
		} else {
			sv, ok := raw.(string)
			if !ok {
				continue
			}
			v = sv
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		panic("dsl: native enum has no usable values")
	}
	if len(vals) > 256 {
		panic(fmt.Sprintf("dsl: native enum holds %d values, wire index is one byte", len(vals)))
	}
	return nativeEnumSchema{values: vals, numeric: numeric}
}

type nativeEnumSchema struct {
	values  []any
	numeric bool
}

var _ binschema.Schema = nativeEnumSchema{}

// normalizeEnumNumber maps any numeric value to int64 (integral) or float64.
func normalizeEnumNumber(v any) (any, bool) {
	if i, over, ok := asInt64(v); ok && !over {
		return i, true
	}
	if f, ok := asFloat64(v); ok {
		return f, true
	}
	return nil, false
}

func (s nativeEnumSchema) indexOf(v any) int {
	for i, ev := range s.values {
		if ev == v {
			return i
		}
	}
	return -1
}

func (s nativeEnumSchema) hint() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = fmt.Sprint(v)
	}
	return "expected one of: " + strings.Join(parts, ", ")
}

func (s nativeEnumSchema) Validate(ctx context.Context, v any) (any, error) {
	if s.numeric {
		if nv, ok := normalizeEnumNumber(v); ok {
			if s.indexOf(nv) >= 0 {
				return nv, nil
			}
			return nil, binschema.Issues{{Path: "/", Code: binschema.CodeInvalidEnum, Message: i18n.T(binschema.CodeInvalidEnum, nil), Hint: s.hint()}}
		}
		// numeric enums also admit the decimal string form of a member
		if sv, ok := v.(string); ok {
			for _, ev := range s.values {
				if fmt.Sprint(ev) == sv {
					return ev, nil
				}
			}
			if _, err := strconv.ParseFloat(sv, 64); err == nil {
				return nil, binschema.Issues{{Path: "/", Code: binschema.CodeInvalidEnum, Message: i18n.T(binschema.CodeInvalidEnum, nil), Hint: s.hint()}}
			}
		}
		return nil, typeIssue("expected number")
	}
	sv, ok := v.(string)
	if !ok {
		return nil, typeIssue("expected string")
	}
	if s.indexOf(sv) < 0 {
		return nil, binschema.Issues{{Path: "/", Code: binschema.CodeInvalidEnum, Message: i18n.T(binschema.CodeInvalidEnum, nil), Hint: s.hint()}}
	}
	return sv, nil
}

func (s nativeEnumSchema) Encode(ctx context.Context, v any) ([]byte, error) {
	nv, err := s.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	return []byte{byte(s.indexOf(nv))}, nil
}

func (s nativeEnumSchema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	if len(data) < 1 {
		return nil, nil, wireIssue(wire.ErrTruncated)
	}
	idx := int(data[0])
	if idx >= len(s.values) {
		return nil, nil, enumIndexIssue(idx, len(s.values))
	}
	return s.values[idx], data[1:], nil
}
