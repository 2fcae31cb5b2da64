// Package emit renders resolved configuration values into the build-flow
// artifact formats and writes them idempotently.
//
// # Targets
//
// Four value-carrying targets exist, selected per variable by its artifact
// tags: a shell env file (NAME=value), an include-guarded Makefile fragment
// (NAME := value), a SystemVerilog `define header (.svh) and a
// SystemVerilog localparam package (.sv). A fifth output, the Make
// dependency fragment, links an artifact to the TOML sources it was
// generated from. A sixth, the merged TOML, re-serializes the merged
// configuration with the combined schema appended.
//
// # Write discipline
//
// Every file is rendered fully in memory first. With write-if-changed
// enabled, the content goes to a temporary file in the destination
// directory, is byte-compared against the existing destination, and only
// replaces it via atomic rename when they differ. A crash mid-write can
// therefore never leave a half-written destination, and unchanged outputs
// never trigger spurious downstream rebuilds. The changed/unchanged outcome
// is reported per file; "unchanged" is a normal result, not an error.
package emit
