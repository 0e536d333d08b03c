// Package schemadef imports schema definitions from declarative YAML
// documents and builds the equivalent schema graph through the DSL. Field
// lists are YAML sequences, so declaration order — and with it the wire
// order — survives the round trip through the document.
package schemadef

import (
	"fmt"

	"gopkg.in/yaml.v3"

	binschema "github.com/binschema/binschema"
	"github.com/binschema/binschema/dsl"
)

// node is the YAML shape of a single schema node.
type node struct {
	Type   string      `yaml:"type"`
	Size   int         `yaml:"size"`   // byte width for int/uint
	Bits   int         `yaml:"bits"`   // bit width for bits
	Of     *node       `yaml:"of"`     // inner node for array/optional/nullable
	Values []string    `yaml:"values"` // enum value set
	Fields []fieldNode `yaml:"fields"` // object fields, in wire order
	Strict bool        `yaml:"strict"` // object strict mode
}

type fieldNode struct {
	Name string `yaml:"name"`
	node `yaml:",inline"`
}

// FromYAML parses a single-document YAML schema definition and builds the
// schema it describes.
func FromYAML(data []byte) (binschema.Schema, error) {
	var root node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("schemadef: %w", err)
	}
	return build(&root, "$")
}

func build(n *node, at string) (binschema.Schema, error) {
	switch n.Type {
	case "int":
		if err := checkSize(n.Size, at); err != nil {
			return nil, err
		}
		return dsl.Int(n.Size), nil
	case "uint":
		if err := checkSize(n.Size, at); err != nil {
			return nil, err
		}
		return dsl.Uint(n.Size), nil
	case "bits":
		if n.Bits < 1 || n.Bits > 32 {
			return nil, fmt.Errorf("schemadef: %s: bits must be in [1, 32], got %d", at, n.Bits)
		}
		return dsl.Bits(n.Bits), nil
	case "float32":
		return dsl.Float32(), nil
	case "float64":
		return dsl.Float64(), nil
	case "bool":
		return dsl.Bool(), nil
	case "string":
		return dsl.String(), nil
	case "bigint":
		return dsl.BigInt(), nil
	case "enum":
		if len(n.Values) == 0 {
			return nil, fmt.Errorf("schemadef: %s: enum requires values", at)
		}
		return dsl.Enum(n.Values...), nil
	case "array", "optional", "nullable":
		if n.Of == nil {
			return nil, fmt.Errorf("schemadef: %s: %s requires an inner node under 'of'", at, n.Type)
		}
		inner, err := build(n.Of, at+".of")
		if err != nil {
			return nil, err
		}
		switch n.Type {
		case "array":
			return dsl.Array(inner), nil
		case "optional":
			return dsl.Optional(inner), nil
		default:
			return dsl.Nullable(inner), nil
		}
	case "object":
		b := dsl.Object()
		seen := make(map[string]struct{}, len(n.Fields))
		for i := range n.Fields {
			f := &n.Fields[i]
			if f.Name == "" {
				return nil, fmt.Errorf("schemadef: %s: object field %d has no name", at, i)
			}
			if _, dup := seen[f.Name]; dup {
				return nil, fmt.Errorf("schemadef: %s: duplicate field %q", at, f.Name)
			}
			seen[f.Name] = struct{}{}
			fs, err := build(&f.node, at+"."+f.Name)
			if err != nil {
				return nil, err
			}
			b.Field(f.Name, fs)
		}
		if n.Strict {
			b.Strict()
		}
		return b.Build()
	case "":
		return nil, fmt.Errorf("schemadef: %s: missing type", at)
	default:
		return nil, fmt.Errorf("schemadef: %s: unknown type %q", at, n.Type)
	}
}

func checkSize(size int, at string) error {
	switch size {
	case 1, 2, 4:
		return nil
	}
	return fmt.Errorf("schemadef: %s: size must be 1, 2, or 4, got %d", at, size)
}
