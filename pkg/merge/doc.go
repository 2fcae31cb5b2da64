// Package merge implements the two document-composition strategies of the
// curvcfg pipeline.
//
// Merge is the cascading-override strategy used for profile + overlay
// stacks: later documents win, tables merge recursively, everything else
// (scalars and arrays) is replaced wholesale. Merge has no error path; every
// collision resolves by precedence.
//
// Combine is the disjoint-union strategy used for independently authored
// fragments (schema files, board + device definitions) that must not clash:
// a key appearing in two documents is a fatal CombineConflictError, even
// when both sides carry the same value. The reserved "_schema" namespace is
// checked one level deeper so two fragments may each declare different
// variables under the same category; the reserved "_metadata" namespace is
// dropped entirely.
package merge
