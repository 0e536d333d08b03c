package codec_test

import (
	"context"
	"testing"

	binschema "github.com/binschema/binschema"
	"github.com/binschema/binschema/codec"
	g "github.com/binschema/binschema/dsl"
)

func TestHex_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := codec.Hex(g.Object().
		Field("id", g.Uint(2)).
		Field("ok", g.Bool()).
		MustBuild())

	payload, err := c.Encode(ctx, map[string]any{"id": 0x0102, "ok": true})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if payload != "010201" {
		t.Fatalf("payload: %q", payload)
	}

	back, err := c.Decode(ctx, payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	m := back.(map[string]any)
	if m["id"] != uint64(0x0102) || m["ok"] != true {
		t.Fatalf("round trip: %#v", m)
	}
}

func TestHex_InvalidPayload(t *testing.T) {
	ctx := context.Background()
	c := codec.Hex(g.Uint(1))

	_, err := c.Decode(ctx, "zz")
	iss, ok := binschema.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != binschema.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
	// odd length is also malformed hex
	if _, err := c.Decode(ctx, "0"); err == nil {
		t.Fatalf("odd-length payload should fail")
	}
}

func TestHex_ValidationErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	c := codec.Hex(g.Uint(1))

	if _, err := c.Encode(ctx, 300); err == nil {
		t.Fatalf("out-of-range encode should fail")
	}
	// well-formed hex that is too short for the schema
	_, err := c.Decode(ctx, "")
	iss, _ := binschema.AsIssues(err)
	if len(iss) == 0 || iss[0].Code != binschema.CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
}
