package tomlio

import (
	"bytes"

	gotoml "github.com/pelletier/go-toml/v2"
)

// Codec parses and serializes TOML documents to and from generic value
// trees. Implementations must be stateless and safe for reuse across a
// pipeline run.
type Codec interface {
	// Unmarshal parses TOML text into a value tree.
	Unmarshal(data []byte) (map[string]any, error)

	// Marshal serializes a value tree to canonical TOML text. Output is
	// deterministic: identical trees always produce identical bytes.
	Marshal(doc map[string]any) ([]byte, error)
}

// GoTOMLCodec is the production Codec backed by pelletier/go-toml.
type GoTOMLCodec struct{}

// NewCodec returns the default TOML codec.
func NewCodec() *GoTOMLCodec {
	return &GoTOMLCodec{}
}

// Unmarshal parses TOML text into a value tree.
func (c *GoTOMLCodec) Unmarshal(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := gotoml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// Marshal serializes a value tree to canonical TOML text. The tree is
// normalized first so scalar representation does not depend on how the
// values were produced upstream.
func (c *GoTOMLCodec) Marshal(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := gotoml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(Normalize(doc)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Normalize returns a deep copy of doc with every scalar coerced to its
// canonical Go representation (int64 for integers, float64 for floats).
// The input is never mutated.
func Normalize(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Normalize(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return t
	}
}
