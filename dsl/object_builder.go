package dsl

import (
	"fmt"

	binschema "github.com/binschema/binschema"
)

// ObjectBuilder accumulates fields in declaration order. Declaration order
// is the wire order of the built schema.
type ObjectBuilder struct {
	fields []Field
	strict bool
}

// Object creates a new object builder (non-strict by default: undeclared
// input keys are dropped during validation).
func Object() *ObjectBuilder {
	return &ObjectBuilder{}
}

// Field registers a field. Registering a name twice keeps the original
// position and takes the later schema.
func (b *ObjectBuilder) Field(name string, s binschema.Schema) *ObjectBuilder {
	for i := range b.fields {
		if b.fields[i].Name == name {
			b.fields[i].Schema = s
			return b
		}
	}
	b.fields = append(b.fields, Field{Name: name, Schema: s})
	return b
}

// Strict makes the built schema reject undeclared input keys.
func (b *ObjectBuilder) Strict() *ObjectBuilder {
	b.strict = true
	return b
}

// Build validates the builder and returns the object schema.
func (b *ObjectBuilder) Build() (ObjectSchema, error) {
	fields := make([]Field, len(b.fields))
	copy(fields, b.fields)
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("dsl: object field with empty name")
		}
		if f.Schema == nil {
			return nil, fmt.Errorf("dsl: object field %q has nil schema", f.Name)
		}
	}
	return &objectSchema{fields: fields, strict: b.strict}, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder) MustBuild() ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
