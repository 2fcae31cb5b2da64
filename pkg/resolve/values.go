package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/curvhdl/curvcfg/pkg/schema"
)

// CfgValue binds one schema variable to its validated merged-config value.
// A CfgValue is never constructed for a failed validation, so Value always
// satisfies the variable's domain.
type CfgValue struct {
	// Var is the schema variable this value was resolved against.
	Var *schema.Variable

	// Raw is the value as it appeared in the merged config (or the
	// schema default when the config did not provide one).
	Raw any

	// Value is the coerced canonical value: int64 for numeric kinds,
	// string otherwise.
	Value any
}

// MakeDisplay renders the value for the makefile target.
func (c *CfgValue) MakeDisplay() string { return c.Var.MakeDisplay(c.Value) }

// EnvDisplay renders the value for the shell-env target. The format is
// shared with the makefile target.
func (c *CfgValue) EnvDisplay() string { return c.Var.MakeDisplay(c.Value) }

// SvDisplay renders the value as a localparam declaration.
func (c *CfgValue) SvDisplay() string { return c.Var.SvDisplay(c.Value) }

// DefineDisplay renders the value as a `define macro.
func (c *CfgValue) DefineDisplay() string { return c.Var.DefineDisplay(c.Value) }

// ArrayValue binds an array-of-struct variable to its validated elements.
// Each element is a field-keyed record of canonical values; the outward
// shape stays on the variable.
type ArrayValue struct {
	// Var is the array schema variable.
	Var *schema.ArrayVariable

	// Elements holds one record per TOML array-of-tables entry, in
	// declaration order.
	Elements []map[string]any
}

// PortDisplay renders the HDL port declaration sized to the element count.
func (a *ArrayValue) PortDisplay() string {
	return a.Var.RenderPort(len(a.Elements))
}

// CfgValues is the immutable result of one resolution run: every scalar and
// array variable of the catalog bound to a validated value, ordered by
// generated name, plus a content fingerprint.
type CfgValues struct {
	names  []string
	vals   map[string]*CfgValue
	arrays map[string]*ArrayValue
	fprint string
}

// Names returns all scalar value names in ascending order.
func (cv *CfgValues) Names() []string {
	out := make([]string, len(cv.names))
	copy(out, cv.names)
	return out
}

// Get returns the scalar value for a generated name.
func (cv *CfgValues) Get(name string) (*CfgValue, bool) {
	v, ok := cv.vals[name]
	return v, ok
}

// ArrayNames returns all array value names in ascending order.
func (cv *CfgValues) ArrayNames() []string {
	names := make([]string, 0, len(cv.arrays))
	for n := range cv.arrays {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Array returns the array value for a generated name.
func (cv *CfgValues) Array(name string) (*ArrayValue, bool) {
	a, ok := cv.arrays[name]
	return a, ok
}

// Len is the number of scalar values.
func (cv *CfgValues) Len() int { return len(cv.names) }

// Fingerprint is a stable hash over the sorted name=value pairs, used for
// display and change detection. Identical resolutions always produce the
// same fingerprint.
func (cv *CfgValues) Fingerprint() string { return cv.fprint }

// fingerprint hashes the sorted name=value stream with xxhash.
func fingerprint(vals map[string]*CfgValue, arrays map[string]*ArrayValue) string {
	names := make([]string, 0, len(vals)+len(arrays))
	for n := range vals {
		names = append(names, n)
	}
	for n := range arrays {
		names = append(names, n)
	}
	sort.Strings(names)

	h := xxhash.New()
	for _, n := range names {
		_, _ = h.WriteString(n)
		_, _ = h.WriteString("=")
		if v, ok := vals[n]; ok {
			_, _ = h.WriteString(stableString(v.Value))
		} else {
			a := arrays[n]
			for _, elem := range a.Elements {
				_, _ = h.WriteString(stableString(elem))
				_, _ = h.WriteString(";")
			}
		}
		_, _ = h.WriteString("\n")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// stableString formats a value deterministically: table keys are emitted in
// sorted order so the fingerprint never depends on map iteration.
func stableString(v any) string {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ":" + stableString(t[k])
		}
		return "{" + strings.Join(parts, ",") + "}"
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stableString(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
