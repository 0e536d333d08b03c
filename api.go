package binschema

import "context"

// Schema is the contract every schema node implements. Nodes are immutable
// after construction and hold no per-call state, so a single node may serve
// any number of concurrent Validate/Encode/Decode calls.
type Schema interface {
	// Validate checks type and domain constraints and returns the normalized
	// form of v (integers normalize to int64/uint64, floats to float64 under
	// the float32 rounding policy). Composite nodes recurse into children and
	// rebase child issues under the failing field name or element index.
	Validate(ctx context.Context, v any) (any, error)

	// Encode re-validates v and produces its binary representation. A failed
	// encode never emits partial output.
	Encode(ctx context.Context, v any) ([]byte, error)

	// DecodeRaw consumes a schema-specific prefix of data and returns the
	// decoded (not yet validated) value plus the unconsumed remainder.
	// Sequential decoding inside array/object loops threads the remainder
	// forward instead of sharing a cursor.
	DecodeRaw(ctx context.Context, data []byte) (v any, rest []byte, err error)
}

// Decode parses a binary representation back into a value and validates it.
// This is the only externally meaningful decode entry point: it guarantees
// decoded values satisfy the same constraints as directly constructed ones.
// Trailing bytes beyond the schema's own encoding are left untouched.
func Decode(ctx context.Context, s Schema, data []byte) (any, error) {
	raw, _, err := s.DecodeRaw(ctx, data)
	if err != nil {
		return nil, err
	}
	return s.Validate(ctx, raw)
}

// Is reports whether v conforms to the schema s.
func Is(ctx context.Context, s Schema, v any) bool {
	_, err := s.Validate(ctx, v)
	return err == nil
}

// SafeValidate validates v, returning (nil, false) on failure.
func SafeValidate(ctx context.Context, s Schema, v any) (any, bool) {
	nv, err := s.Validate(ctx, v)
	if err != nil {
		return nil, false
	}
	return nv, true
}

// absent is the type of the Absent sentinel.
type absent struct{}

func (absent) String() string { return "<absent>" }

// Absent marks a missing Optional slot. Optional schemas validate and encode
// it as absence; object schemas omit absent fields from their normalized and
// decoded maps.
var Absent = absent{}

// IsAbsent reports whether v is the Absent sentinel.
func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}
