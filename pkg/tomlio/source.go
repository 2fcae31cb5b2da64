package tomlio

import (
	"os"
	"strings"
)

// Source is a parsed TOML document together with its originating path.
// Sources are created at load time and treated as immutable afterwards.
type Source struct {
	// Path is the absolute path the document was loaded from.
	Path string

	// Doc is the parsed value tree.
	Doc map[string]any
}

// LoadSource reads and parses a single TOML file.
func LoadSource(codec Codec, path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, &FileNotFoundError{Path: path, Err: err}
	}
	doc, err := codec.Unmarshal(data)
	if err != nil {
		return Source{}, &ParseError{Path: path, Err: err}
	}
	return Source{Path: path, Doc: doc}, nil
}

// LoadSources reads and parses an ordered list of TOML files, preserving
// order. The first failing path aborts the load.
func LoadSources(codec Codec, paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		src, err := LoadSource(codec, p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// LookupPath resolves a dotted key path ("cpu.cache.tags_in_lutram") inside
// a value tree. The second return is false when any segment is missing or a
// non-table value is traversed.
func LookupPath(doc map[string]any, path string) (any, bool) {
	segs := strings.Split(path, ".")
	cur := any(doc)
	for _, seg := range segs {
		table, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = table[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
