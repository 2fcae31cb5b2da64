// Package tomlio provides TOML parsing and serialization for curvcfg
// configuration pipelines.
//
// # Overview
//
// tomlio is the leaf of the curvcfg pipeline: every profile, overlay and
// schema fragment enters the system through this package, and the merged
// configuration artifact leaves through it.
//
// Documents are represented as generic value trees: nested map[string]any
// tables, []any arrays and int64/float64/string/bool scalars. All downstream
// packages (merge, schema, resolve, emit) operate on these trees and never
// touch TOML text directly.
//
// # Components
//
// Codec: the parse/serialize interface. The production implementation wraps
// pelletier/go-toml. The codec is constructor-injected everywhere it is
// needed; there is no process-wide backend singleton, which keeps tests free
// to supply doubles.
//
// Source: a parsed document paired with its originating absolute path, used
// for diagnostics and Make dependency tracking.
//
// Canonicalization: Marshal output is deterministic (tables sorted by key),
// so re-serializing a document always yields identical bytes for identical
// trees. The emit package relies on this for no-op write detection.
package tomlio
