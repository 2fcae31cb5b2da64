package merge

import "github.com/curvhdl/curvcfg/pkg/tomlio"

// DescriptionKey is the reserved documentation-only root key. It is stripped
// from merged results so it never reaches the resolver or the emitters.
const DescriptionKey = "description"

// Merge deep-merges an ordered list of documents into one canonical tree.
// Later documents take precedence: tables merge key by key, while scalars
// and arrays from a later document replace the earlier value wholesale.
// Arrays are never merged element-wise. The inputs are not mutated.
func Merge(docs []map[string]any) map[string]any {
	result := map[string]any{}
	for _, doc := range docs {
		result = mergeTables(result, tomlio.Normalize(doc))
	}
	delete(result, DescriptionKey)
	return result
}

func mergeTables(base, over map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		if bt, ok := out[k].(map[string]any); ok {
			if ot, ok := v.(map[string]any); ok {
				out[k] = mergeTables(bt, ot)
				continue
			}
		}
		out[k] = v
	}
	return out
}
