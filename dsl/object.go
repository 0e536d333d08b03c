package dsl

import (
	"context"
	"sort"

	binschema "github.com/binschema/binschema"
	"github.com/binschema/binschema/i18n"
)

// Field pairs a name with its schema node. Field order is the wire order:
// two objects with the same fields in a different order produce different,
// mutually incompatible encodings.
type Field struct {
	Name   string
	Schema binschema.Schema
}

// ObjectSchema is an object node: an ordered mapping from field name to
// schema, with optional strict-mode rejection of undeclared keys. The
// structural derivations are pure; they return new schemas sharing field
// sub-schemas by reference and never mutate the receiver.
type ObjectSchema interface {
	binschema.Schema

	// Fields returns the declared fields in wire order.
	Fields() []Field

	// IsStrict reports whether undeclared input keys are rejected.
	IsStrict() bool

	// Extend overlays fields onto the receiver. An existing name keeps its
	// position but takes the new schema; new names append in the given
	// order.
	Extend(fields ...Field) ObjectSchema

	// Merge overlays the other object's fields onto the receiver; the
	// result is strict when either side is.
	Merge(other ObjectSchema) ObjectSchema

	// Pick keeps only the named fields, preserving relative order.
	Pick(names ...string) ObjectSchema

	// Omit removes the named fields, preserving relative order.
	Omit(names ...string) ObjectSchema

	// Partial wraps every not-already-Optional field in Optional.
	Partial() ObjectSchema

	// Strict returns a strict-mode copy.
	Strict() ObjectSchema
}

type objectSchema struct {
	fields []Field
	strict bool
}

var _ ObjectSchema = (*objectSchema)(nil)

func (o *objectSchema) Fields() []Field {
	out := make([]Field, len(o.fields))
	copy(out, o.fields)
	return out
}

func (o *objectSchema) IsStrict() bool { return o.strict }

func (o *objectSchema) has(name string) bool {
	for _, f := range o.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (o *objectSchema) Validate(ctx context.Context, v any) (any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, typeIssue("expected object")
	}
	if o.strict {
		// unknown keys in sorted order for deterministic error selection
		uks := make([]string, 0, len(src))
		for k := range src {
			if !o.has(k) {
				uks = append(uks, k)
			}
		}
		sort.Strings(uks)
		if len(uks) > 0 {
			return nil, binschema.Issues{{Path: "/" + uks[0], Code: binschema.CodeUnknownKey, Message: i18n.T(binschema.CodeUnknownKey, nil)}}
		}
	}
	out := make(map[string]any, len(o.fields))
	for _, f := range o.fields {
		val, exists := src[f.Name]
		if !exists {
			if !isOptional(f.Schema) {
				return nil, binschema.Issues{{Path: "/" + f.Name, Code: binschema.CodeRequired, Message: i18n.T(binschema.CodeRequired, nil), Hint: "required field missing"}}
			}
			continue
		}
		nv, err := f.Schema.Validate(ctx, val)
		if err != nil {
			return nil, binschema.Rebase("/"+f.Name, err)
		}
		if binschema.IsAbsent(nv) {
			continue
		}
		out[f.Name] = nv
	}
	return out, nil
}

func (o *objectSchema) Encode(ctx context.Context, v any) ([]byte, error) {
	nv, err := o.Validate(ctx, v)
	if err != nil {
		return nil, err
	}
	m := nv.(map[string]any)
	var buf []byte
	for _, f := range o.fields {
		fv, exists := m[f.Name]
		if !exists {
			// only Optional fields survive validation while missing; they
			// encode their own absence flag
			fv = binschema.Absent
		}
		enc, err := f.Schema.Encode(ctx, fv)
		if err != nil {
			return nil, binschema.Rebase("/"+f.Name, err)
		}
		buf = append(buf, enc...)
	}
	return buf, nil
}

func (o *objectSchema) DecodeRaw(ctx context.Context, data []byte) (any, []byte, error) {
	out := make(map[string]any, len(o.fields))
	rest := data
	for _, f := range o.fields {
		var fv any
		var err error
		fv, rest, err = f.Schema.DecodeRaw(ctx, rest)
		if err != nil {
			return nil, nil, binschema.Rebase("/"+f.Name, err)
		}
		if binschema.IsAbsent(fv) {
			continue
		}
		out[f.Name] = fv
	}
	return out, rest, nil
}

func (o *objectSchema) Extend(fields ...Field) ObjectSchema {
	out := make([]Field, len(o.fields))
	copy(out, o.fields)
	for _, nf := range fields {
		replaced := false
		for i := range out {
			if out[i].Name == nf.Name {
				out[i].Schema = nf.Schema
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, nf)
		}
	}
	return &objectSchema{fields: out, strict: o.strict}
}

func (o *objectSchema) Merge(other ObjectSchema) ObjectSchema {
	merged := o.Extend(other.Fields()...).(*objectSchema)
	merged.strict = o.strict || other.IsStrict()
	return merged
}

func (o *objectSchema) Pick(names ...string) ObjectSchema {
	keep := make(map[string]struct{}, len(names))
	for _, n := range names {
		keep[n] = struct{}{}
	}
	out := make([]Field, 0, len(names))
	for _, f := range o.fields {
		if _, want := keep[f.Name]; want {
			out = append(out, f)
		}
	}
	return &objectSchema{fields: out, strict: o.strict}
}

func (o *objectSchema) Omit(names ...string) ObjectSchema {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := make([]Field, 0, len(o.fields))
	for _, f := range o.fields {
		if _, gone := drop[f.Name]; !gone {
			out = append(out, f)
		}
	}
	return &objectSchema{fields: out, strict: o.strict}
}

func (o *objectSchema) Partial() ObjectSchema {
	out := make([]Field, len(o.fields))
	copy(out, o.fields)
	for i := range out {
		if !isOptional(out[i].Schema) {
			out[i].Schema = Optional(out[i].Schema)
		}
	}
	return &objectSchema{fields: out, strict: o.strict}
}

func (o *objectSchema) Strict() ObjectSchema {
	return &objectSchema{fields: o.fields, strict: true}
}
