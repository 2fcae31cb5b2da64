// Package schema compiles TOML schema fragments into a catalog of typed
// configuration variables.
//
// # Overview
//
// A schema fragment declares recognized configuration variables under the
// reserved "_schema" root: scalar variables under "_schema.vars" and
// array-of-struct variables under "_schema.arrays". The compiler turns these
// declarations into Variable and ArrayVariable objects indexed twice: by the
// generated macro-style name (CFG_CACHE_TAGS_IN_LUTRAM) and by the dotted
// TOML path (cache.tags_in_lutram). Both keys resolve to the same object.
//
// Scalar kinds form a tagged union fixed at compile time (Int, Str, IntEnum,
// StrEnum), so the resolver and the emitters never have to sniff value types
// at use sites.
//
// # Declaration shapes
//
// Scalar:
//
//	[_schema.vars."cache.tags_in_lutram"]
//	type = "int"
//	domain = { min = 0, max = 1 }
//	sv_type = "int"
//	artifacts = ["mk", "svpkg", "env", "svh"]
//	default = 0
//
// Array-of-struct:
//
//	[_schema.arrays."board.buttons"]
//	sv_port = "input wire"
//	sv_name = "btn"
//	[_schema.arrays."board.buttons".fields.name]
//	type = "string"
//	[_schema.arrays."board.buttons".fields.active_low]
//	type = "int"
//	domain = { min = 0, max = 1 }
//
// Array schemas keep the outward shape (per-field kinds, HDL port
// declaration) separate from the per-element values resolved later, because
// downstream renderers need both.
package schema
