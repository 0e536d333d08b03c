package dsl

import (
	"context"
	"reflect"
	"strconv"

	binschema "github.com/binschema/binschema"
	"github.com/binschema/binschema/wire"
)

// Optional wraps inner so that the Absent sentinel is a legal value. The
// wire format is a one-byte presence flag, 0x00 for absent and 0x01 for
// present followed by the inner encoding.
func Optional(inner binschema.Schema) binschema.Schema {
	return &optionalSchema{inner: inner}
}

type optionalSchema struct{ inner binschema.Schema }

var _ binschema.Schema = (*optionalSchema)(nil)

func isOptional(s binschema.Schema) bool {
	_, ok := s.(*optionalSchema)
	return ok
}

func (s *optionalSchema) Validate(ctx context.Context, v any) (any, error) {
	if binschema.IsAbsent(v) {
		return binschema.Absent, nil
	}
	return s.inner.Validate(ctx, v)
}

func (s *optionalSchema) Encode(ctx context.Context, v any) ([]byte, error) {
	if binschema.IsAbsent(v) {
		return []byte{0x00}, nil
	}
	enc, err := s.inner.Encode(ctx, v)
	if err != nil {
		return nil, err
	}
	return append([]byte{0x01}, enc...), nil
}

func (s *optionalSchema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	if len(data) < 1 {
		return nil, nil, wireIssue(wire.ErrTruncated)
	}
	if data[0] == 0x00 {
		return binschema.Absent, data[1:], nil
	}
	return s.inner.DecodeRaw(ctx, data[1:])
}

// Nullable wraps inner so that nil is a legal value. The flag polarity is
// the inverse of Optional's: 0x01 marks null, 0x00 precedes the inner
// encoding. The asymmetry is part of the wire format and must not be
// normalized.
func Nullable(inner binschema.Schema) binschema.Schema {
	return &nullableSchema{inner: inner}
}

type nullableSchema struct{ inner binschema.Schema }

var _ binschema.Schema = (*nullableSchema)(nil)

func (s *nullableSchema) Validate(ctx context.Context, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return s.inner.Validate(ctx, v)
}

func (s *nullableSchema) Encode(ctx context.Context, v any) ([]byte, error) {
	if v == nil {
		return []byte{0x01}, nil
	}
	enc, err := s.inner.Encode(ctx, v)
	if err != nil {
		return nil, err
	}
	return append([]byte{0x00}, enc...), nil
}

func (s *nullableSchema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	if len(data) < 1 {
		return nil, nil, wireIssue(wire.ErrTruncated)
	}
	if data[0] != 0x00 {
		return nil, data[1:], nil
	}
	return s.inner.DecodeRaw(ctx, data[1:])
}

// Array wraps inner as a homogeneous sequence. The wire format is a varint
// element count followed by each element's encoding in order.
func Array(inner binschema.Schema) binschema.Schema {
	return &arraySchema{inner: inner}
}

type arraySchema struct{ inner binschema.Schema }

var _ binschema.Schema = (*arraySchema)(nil)

// asSlice widens any slice or array kind to []any.
func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func (s *arraySchema) Validate(ctx context.Context, v any) (any, error) {
	src, ok := asSlice(v)
	if !ok {
		return nil, typeIssue("expected array")
	}
	out := make([]any, len(src))
	for i := range src {
		nv, err := s.inner.Validate(ctx, src[i])
		if err != nil {
			return nil, binschema.Rebase("/"+strconv.Itoa(i), err)
		}
		out[i] = nv
	}
	return out, nil
}

func (s *arraySchema) Encode(ctx context.Context, v any) ([]byte, error) {
	nv, err := s.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	elems := nv.([]any)
	buf := wire.AppendUvarint(nil, uint64(len(elems)))
	for i := range elems {
		enc, err := s.inner.Encode(ctx, elems[i])
		if err != nil {
			return nil, binschema.Rebase("/"+strconv.Itoa(i), err)
		}
		buf = append(buf, enc...)
	}
	return buf, nil
}

func (s *arraySchema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	count, n, err := wire.DecodeUvarint(data)
	if err != nil {
		return nil, nil, wireIssue(err)
	}
	rest := data[n:]
	// cap the initial allocation; a hostile length prefix must not reserve
	// memory the input cannot back
	capHint := count
	if capHint > 1024 {
		capHint = 1024
	}
	out := make([]any, 0, capHint)
	for i := uint64(0); i < count; i++ {
		var ev any
		ev, rest, err = s.inner.DecodeRaw(ctx, rest)
		if err != nil {
			return nil, nil, binschema.Rebase("/"+strconv.FormatUint(i, 10), err)
		}
		out = append(out, ev)
	}
	return out, rest, nil
}
