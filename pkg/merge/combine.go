package merge

import (
	"fmt"
	"sort"

	"github.com/curvhdl/curvcfg/pkg/tomlio"
)

// Reserved top-level namespaces with special combine handling.
const (
	// SchemaKey holds schema declarations. Conflicts are checked one
	// level deeper, at _schema.<category>.<variable-name>, so fragments
	// may each contribute different variables to the same category.
	SchemaKey = "_schema"

	// MetadataKey is recognized and silently dropped: it is neither
	// merged nor conflict-checked.
	MetadataKey = "_metadata"
)

// Combine unions an ordered list of documents that are assumed disjoint.
// Any ordinary top-level key present in more than one document is a fatal
// CombineConflictError, regardless of whether the values are equal. The
// inputs are not mutated.
func Combine(sources []tomlio.Source) (map[string]any, error) {
	result := map[string]any{}
	owner := map[string]string{}       // top-level key -> source path
	schemaOwner := map[string]string{} // _schema.<cat>.<name> -> source path

	for _, src := range sources {
		doc := tomlio.Normalize(src.Doc)
		// Keys are visited in sorted order so the first conflict reported
		// for a given pair of documents is always the same one.
		for _, key := range sortedKeys(doc) {
			val := doc[key]
			switch key {
			case MetadataKey:
				continue
			case SchemaKey:
				if err := combineSchema(result, schemaOwner, src.Path, val); err != nil {
					return nil, err
				}
			default:
				if prev, taken := owner[key]; taken {
					return nil, &CombineConflictError{
						Path:    key,
						ValueA:  result[key],
						SourceA: prev,
						ValueB:  val,
						SourceB: src.Path,
					}
				}
				owner[key] = src.Path
				result[key] = val
			}
		}
	}
	return result, nil
}

// combineSchema merges one document's _schema table into result, detecting
// collisions at the _schema.<category>.<variable-name> level.
func combineSchema(result map[string]any, schemaOwner map[string]string, srcPath string, val any) error {
	schemaTable, ok := val.(map[string]any)
	if !ok {
		return &CombineConflictError{
			Path:    SchemaKey,
			ValueA:  result[SchemaKey],
			SourceA: schemaOwner[SchemaKey],
			ValueB:  val,
			SourceB: srcPath,
		}
	}

	dst, _ := result[SchemaKey].(map[string]any)
	if dst == nil {
		dst = map[string]any{}
		result[SchemaKey] = dst
	}

	for _, category := range sortedKeys(schemaTable) {
		entries := schemaTable[category]
		entriesTable, ok := entries.(map[string]any)
		if !ok {
			return &CombineConflictError{
				Path:    fmt.Sprintf("%s.%s", SchemaKey, category),
				ValueA:  dst[category],
				SourceA: schemaOwner[fmt.Sprintf("%s.%s", SchemaKey, category)],
				ValueB:  entries,
				SourceB: srcPath,
			}
		}
		dstCategory, _ := dst[category].(map[string]any)
		if dstCategory == nil {
			dstCategory = map[string]any{}
			dst[category] = dstCategory
		}
		schemaOwner[fmt.Sprintf("%s.%s", SchemaKey, category)] = srcPath
		for _, name := range sortedKeys(entriesTable) {
			decl := entriesTable[name]
			path := fmt.Sprintf("%s.%s.%s", SchemaKey, category, name)
			if prev, taken := schemaOwner[path]; taken {
				return &CombineConflictError{
					Path:    path,
					ValueA:  dstCategory[name],
					SourceA: prev,
					ValueB:  decl,
					SourceB: srcPath,
				}
			}
			schemaOwner[path] = srcPath
			dstCategory[name] = decl
		}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
