package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"

	binschema "github.com/binschema/binschema"
	"github.com/binschema/binschema/codec"
	"github.com/binschema/binschema/schemadef"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "validate":
		validateCmd(os.Args[2:])
	case "encode":
		encodeCmd(os.Args[2:])
	case "decode":
		decodeCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "binschema CLI\n\nUsage:\n  binschema validate -schema schema.yaml -value value.json\n  binschema encode   -schema schema.yaml -value value.json\n  binschema decode   -schema schema.yaml -hex <payload>\n\nNotes:\n  - value.json may be \"-\" to read the JSON document from stdin.")
}

func loadSchema(path string) binschema.Schema {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("read schema: %v", err)
	}
	s, err := schemadef.FromYAML(data)
	if err != nil {
		fatalf("%v", err)
	}
	return s
}

func loadValue(path string) any {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		fatalf("read value: %v", err)
	}
	v, err := binschema.JSONValue(data)
	if err != nil {
		fatalf("%v", err)
	}
	return v
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var schemaPath, valuePath string
	fs.StringVar(&schemaPath, "schema", "", "YAML schema definition")
	fs.StringVar(&valuePath, "value", "", "JSON value to validate (\"-\" for stdin)")
	_ = fs.Parse(args)
	if schemaPath == "" || valuePath == "" {
		fs.Usage()
		os.Exit(2)
	}
	s := loadSchema(schemaPath)
	v := loadValue(valuePath)
	if _, err := s.Validate(context.Background(), v); err != nil {
		reportIssues(err)
		os.Exit(1)
	}
	fmt.Println("ok")
}

func encodeCmd(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	var schemaPath, valuePath string
	fs.StringVar(&schemaPath, "schema", "", "YAML schema definition")
	fs.StringVar(&valuePath, "value", "", "JSON value to encode (\"-\" for stdin)")
	_ = fs.Parse(args)
	if schemaPath == "" || valuePath == "" {
		fs.Usage()
		os.Exit(2)
	}
	s := loadSchema(schemaPath)
	v := loadValue(valuePath)
	payload, err := codec.Hex(s).Encode(context.Background(), v)
	if err != nil {
		reportIssues(err)
		os.Exit(1)
	}
	fmt.Println(payload)
}

func decodeCmd(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	var schemaPath, payload string
	fs.StringVar(&schemaPath, "schema", "", "YAML schema definition")
	fs.StringVar(&payload, "hex", "", "hex payload to decode")
	_ = fs.Parse(args)
	if schemaPath == "" || payload == "" {
		fs.Usage()
		os.Exit(2)
	}
	s := loadSchema(schemaPath)
	v, err := codec.Hex(s).Decode(context.Background(), payload)
	if err != nil {
		reportIssues(err)
		os.Exit(1)
	}
	out, err := binschema.JSONText(jsonReady(v))
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(string(out))
}

// jsonReady rewrites decoded values into shapes the JSON encoder renders as
// plain numbers: *big.Int has no JSON marshaling of its own.
func jsonReady(v any) any {
	switch t := v.(type) {
	case *big.Int:
		return json.Number(t.String())
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = jsonReady(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = jsonReady(e)
		}
		return out
	default:
		return v
	}
}

func reportIssues(err error) {
	if iss, ok := binschema.AsIssues(err); ok {
		for _, it := range iss {
			fmt.Fprintf(os.Stderr, "%s at %s: %s\n", it.Code, it.Path, it.Message)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
