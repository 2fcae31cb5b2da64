// Package pipeline orchestrates a full curvcfg run: load the TOML sources,
// merge the configuration fragments, combine and compile the schema
// fragments, resolve values against the catalog, and emit the requested
// artifacts.
//
// The pipeline renders every artifact in memory before the first write, so
// a failed load, merge, compile or resolution never leaves a partial
// artifact set on disk.
package pipeline
