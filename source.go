package binschema

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"
)

// JSONValue decodes a JSON document into the dynamic value shape the schemas
// operate on: objects as map[string]any, arrays as []any, numbers as
// json.Number (numeric schemas accept json.Number directly, so JSON-borne
// values flow straight into Validate/Encode without precision loss).
func JSONValue(data []byte) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "invalid JSON input", Cause: err}}
	}
	// reject trailing garbage after the document
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "trailing data after JSON document"}}
	}
	return v, nil
}

// JSONText renders a decoded value back to JSON.
func JSONText(v any) ([]byte, error) {
	out, err := j.Marshal(v)
	if err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "value not representable as JSON", Cause: err}}
	}
	return out, nil
}
