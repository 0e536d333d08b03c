package dsl_test

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	binschema "github.com/binschema/binschema"
	g "github.com/binschema/binschema/dsl"
)

func TestOptional_Wire(t *testing.T) {
	ctx := context.Background()
	s := g.Optional(g.Uint(1))

	enc, err := s.Encode(ctx, binschema.Absent)
	if err != nil || !bytes.Equal(enc, []byte{0x00}) {
		t.Fatalf("encode absent: % x err=%v", enc, err)
	}
	enc, err = s.Encode(ctx, 5)
	if err != nil || !bytes.Equal(enc, []byte{0x01, 0x05}) {
		t.Fatalf("encode present: % x err=%v", enc, err)
	}

	back, err := binschema.Decode(ctx, s, []byte{0x00})
	if err != nil || !binschema.IsAbsent(back) {
		t.Fatalf("decode absent: got %v err=%v", back, err)
	}
	back, err = binschema.Decode(ctx, s, []byte{0x01, 0x05})
	if err != nil || back != uint64(5) {
		t.Fatalf("decode present: got %v err=%v", back, err)
	}

	// inner constraints still apply to present values
	_, err = s.Encode(ctx, 300)
	mustCode(t, err, binschema.CodeOutOfRange)
	_, _, err = s.DecodeRaw(ctx, nil)
	mustCode(t, err, binschema.CodeTruncated)
	_, _, err = s.DecodeRaw(ctx, []byte{0x01})
	mustCode(t, err, binschema.CodeTruncated)
}

func TestNullable_Wire(t *testing.T) {
	ctx := context.Background()
	s := g.Nullable(g.Uint(1))

	// flag polarity is inverted relative to Optional: 0x01 marks null
	enc, err := s.Encode(ctx, nil)
	if err != nil || !bytes.Equal(enc, []byte{0x01}) {
		t.Fatalf("encode null: % x err=%v", enc, err)
	}
	enc, err = s.Encode(ctx, 5)
	if err != nil || !bytes.Equal(enc, []byte{0x00, 0x05}) {
		t.Fatalf("encode value: % x err=%v", enc, err)
	}

	back, err := binschema.Decode(ctx, s, []byte{0x01})
	if err != nil || back != nil {
		t.Fatalf("decode null: got %v err=%v", back, err)
	}
	back, err = binschema.Decode(ctx, s, []byte{0x00, 0x05})
	if err != nil || back != uint64(5) {
		t.Fatalf("decode value: got %v err=%v", back, err)
	}
}

func TestArray_Wire(t *testing.T) {
	ctx := context.Background()
	s := g.Array(g.Uint(1))

	enc, err := s.Encode(ctx, []any{1, 2, 3})
	if err != nil || !bytes.Equal(enc, []byte{0x03, 0x01, 0x02, 0x03}) {
		t.Fatalf("encode: % x err=%v", enc, err)
	}
	back, err := binschema.Decode(ctx, s, enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(back, []any{uint64(1), uint64(2), uint64(3)}) {
		t.Fatalf("round trip: %#v", back)
	}

	// empty arrays are a bare zero count
	enc, err = s.Encode(ctx, []any{})
	if err != nil || !bytes.Equal(enc, []byte{0x00}) {
		t.Fatalf("encode empty: % x err=%v", enc, err)
	}

	// typed Go slices are widened
	if _, err := s.Encode(ctx, []int{1, 2}); err != nil {
		t.Fatalf("typed slice: %v", err)
	}

	_, err = s.Validate(ctx, "not an array")
	mustCode(t, err, binschema.CodeInvalidType)
}

func TestArray_ElementErrorPath(t *testing.T) {
	ctx := context.Background()
	s := g.Array(g.Uint(1))

	_, err := s.Validate(ctx, []any{1, "x", 3})
	if err == nil {
		t.Fatalf("expected element error")
	}
	iss, ok := binschema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Path != "/1" || iss[0].Code != binschema.CodeInvalidType {
		t.Fatalf("expected invalid_type at /1, got %s at %s", iss[0].Code, iss[0].Path)
	}
}

func TestArray_DecodeTruncatedElement(t *testing.T) {
	ctx := context.Background()
	s := g.Array(g.Uint(2))

	// count says two elements, input holds one and a half
	_, _, err := s.DecodeRaw(ctx, []byte{0x02, 0x00, 0x01, 0x00})
	if err == nil {
		t.Fatalf("expected truncation error")
	}
	iss, _ := binschema.AsIssues(err)
	if len(iss) == 0 || iss[0].Path != "/1" || iss[0].Code != binschema.CodeTruncated {
		t.Fatalf("expected truncated at /1, got %v", iss)
	}
}

func TestArray_OfOptional_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := g.Array(g.Optional(g.Uint(1)))

	in := []any{1, binschema.Absent, 3}
	enc, err := s.Encode(ctx, in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(enc, []byte{0x03, 0x01, 0x01, 0x00, 0x01, 0x03}) {
		t.Fatalf("wire: % x", enc)
	}
	back, err := binschema.Decode(ctx, s, enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []any{uint64(1), binschema.Absent, uint64(3)}
	if !reflect.DeepEqual(back, want) {
		t.Fatalf("round trip: %#v", back)
	}
}

func TestNested_ErrorPathComposition(t *testing.T) {
	ctx := context.Background()
	s := g.Array(g.Array(g.Uint(1)))

	_, err := s.Validate(ctx, []any{[]any{1}, []any{2, 300}})
	iss, _ := binschema.AsIssues(err)
	if len(iss) == 0 || iss[0].Path != "/1/1" || iss[0].Code != binschema.CodeOutOfRange {
		t.Fatalf("expected out_of_range at /1/1, got %v", iss)
	}
}
