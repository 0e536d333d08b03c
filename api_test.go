package binschema_test

import (
	"context"
	"encoding/json"
	"testing"

	binschema "github.com/binschema/binschema"
	"github.com/binschema/binschema/dsl"
)

func TestDecode_LeavesTrailingBytes(t *testing.T) {
	ctx := context.Background()
	s := dsl.Uint(1)

	// Decode validates exactly one value; extra input is not an error
	v, err := binschema.Decode(ctx, s, []byte{0x07, 0xff, 0xff})
	if err != nil || v != uint64(7) {
		t.Fatalf("got (%v, %v)", v, err)
	}

	// DecodeRaw surfaces the remainder for sequential consumers
	_, rest, err := s.DecodeRaw(ctx, []byte{0x07, 0xff, 0xff})
	if err != nil || len(rest) != 2 {
		t.Fatalf("rest: % x err=%v", rest, err)
	}
}

func TestIsAndSafeValidate(t *testing.T) {
	ctx := context.Background()
	s := dsl.Uint(1)

	if !binschema.Is(ctx, s, 5) || binschema.Is(ctx, s, 300) {
		t.Fatalf("Is misjudged conformance")
	}
	nv, ok := binschema.SafeValidate(ctx, s, 5)
	if !ok || nv != uint64(5) {
		t.Fatalf("SafeValidate ok case: (%v, %v)", nv, ok)
	}
	if _, ok := binschema.SafeValidate(ctx, s, "no"); ok {
		t.Fatalf("SafeValidate should report failure")
	}
}

func TestAbsentSentinel(t *testing.T) {
	if !binschema.IsAbsent(binschema.Absent) {
		t.Fatalf("Absent should satisfy IsAbsent")
	}
	if binschema.IsAbsent(nil) || binschema.IsAbsent(0) {
		t.Fatalf("nil and zero are not Absent")
	}
	if binschema.Absent.String() != "<absent>" {
		t.Fatalf("String: %q", binschema.Absent.String())
	}
}

func TestJSONValue_Bridge(t *testing.T) {
	ctx := context.Background()
	v, err := binschema.JSONValue([]byte(`{"id": 70000, "name": "ann"}`))
	if err != nil {
		t.Fatalf("JSONValue: %v", err)
	}
	m := v.(map[string]any)
	if m["id"] != json.Number("70000") {
		t.Fatalf("numbers should stay json.Number: %#v", m["id"])
	}

	// json.Number flows straight into a numeric schema
	s := dsl.Object().Field("id", dsl.Uint(4)).Field("name", dsl.String()).MustBuild()
	enc, err := s.Encode(ctx, m)
	if err != nil {
		t.Fatalf("encode from JSON: %v", err)
	}
	back, err := binschema.Decode(ctx, s, enc)
	if err != nil || back.(map[string]any)["id"] != uint64(70000) {
		t.Fatalf("round trip: %#v err=%v", back, err)
	}
}

func TestJSONValue_RejectsMalformedInput(t *testing.T) {
	for _, in := range []string{``, `{`, `1 2`, `{} trailing`} {
		_, err := binschema.JSONValue([]byte(in))
		iss, ok := binschema.AsIssues(err)
		if !ok || len(iss) == 0 || iss[0].Code != binschema.CodeParseError {
			t.Fatalf("input %q: expected parse_error, got %v", in, err)
		}
	}
}

func TestJSONText(t *testing.T) {
	out, err := binschema.JSONText(map[string]any{"ok": true})
	if err != nil {
		t.Fatalf("JSONText: %v", err)
	}
	if string(out) != `{"ok":true}` {
		t.Fatalf("output: %s", out)
	}
	if _, err := binschema.JSONText(func() {}); err == nil {
		t.Fatalf("unrepresentable value should fail")
	}
}
