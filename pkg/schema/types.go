package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind is the scalar type of a schema variable, fixed at compile time.
type Kind int

const (
	// KindInt is an integer, optionally bounded by a Range.
	KindInt Kind = iota

	// KindStr is a free-form string.
	KindStr

	// KindIntEnum is an integer restricted to an explicit choice set.
	KindIntEnum

	// KindStrEnum is a string restricted to an explicit choice set.
	KindStrEnum
)

// String returns the declaration-level name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindStr:
		return "string"
	case KindIntEnum:
		return "int-enum"
	case KindStrEnum:
		return "string-enum"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsNumeric returns true for kinds whose canonical value is an int64.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindIntEnum
}

// Range is an inclusive integer domain.
type Range struct {
	Min int64
	Max int64
}

// Contains reports range membership, inclusive on both ends.
func (r Range) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

// Artifact identifies one emitted output format.
type Artifact string

const (
	// ArtifactMakefile is the include-guarded NAME := value fragment.
	ArtifactMakefile Artifact = "makefile"

	// ArtifactEnv is the shell NAME=value assignment file.
	ArtifactEnv Artifact = "env"

	// ArtifactDefines is the SystemVerilog `define header (.svh).
	ArtifactDefines Artifact = "defines"

	// ArtifactCfgPkg is the SystemVerilog localparam package (.sv).
	ArtifactCfgPkg Artifact = "cfgpkg"

	// ArtifactAll is the wildcard tag selecting every target.
	ArtifactAll Artifact = "all"
)

// ParseArtifact maps a schema declaration token to an Artifact. Both the
// short schema-file tokens (mk, svpkg, svh) and the canonical tag names are
// accepted.
func ParseArtifact(token string) (Artifact, error) {
	switch token {
	case "mk", "makefile":
		return ArtifactMakefile, nil
	case "env":
		return ArtifactEnv, nil
	case "svh", "defines":
		return ArtifactDefines, nil
	case "svpkg", "cfgpkg":
		return ArtifactCfgPkg, nil
	case "all":
		return ArtifactAll, nil
	default:
		return "", fmt.Errorf("unknown artifact tag %q", token)
	}
}

// Variable is one compiled scalar schema declaration.
type Variable struct {
	// Name is the generated macro-style name, unique across the catalog.
	Name string

	// Path is the dotted TOML path the value is read from.
	Path string

	// Kind is the scalar type tag.
	Kind Kind

	// Range bounds KindInt variables when non-nil.
	Range *Range

	// IntChoices is the allowed set for KindIntEnum.
	IntChoices []int64

	// StrChoices is the allowed set for KindStrEnum.
	StrChoices []string

	// SvType is the optional HDL type annotation, e.g. "logic [7:0]".
	SvType string

	// MakeType is the optional display-kind hint for textual targets:
	// hex, hex32, hex16, hex8, decimal or string.
	MakeType string

	// Artifacts is the ordered set of targets that receive this variable.
	Artifacts []Artifact

	// Default is the declared fallback value; valid only when HasDefault.
	Default    any
	HasDefault bool

	// File is the schema fragment the declaration came from.
	File string
}

// GeneratedName derives the macro-style name from a dotted TOML path:
// "cache.tags_in_lutram" becomes "CFG_CACHE_TAGS_IN_LUTRAM".
func GeneratedName(path string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '.', '-':
			return '_'
		default:
			return r
		}
	}, path)
	return "CFG_" + strings.ToUpper(mapped)
}

// Targets reports whether the variable is emitted into the given target,
// honoring the "all" wildcard.
func (v *Variable) Targets(target Artifact) bool {
	for _, a := range v.Artifacts {
		if a == ArtifactAll || a == target {
			return true
		}
	}
	return false
}

// Parse coerces a raw merged-config value into the variable's canonical
// representation: int64 for numeric kinds (decimal or 0x-prefixed hex
// strings, underscore digit separators allowed), string otherwise.
func (v *Variable) Parse(raw any) (any, error) {
	if v.Kind.IsNumeric() {
		return coerceInt(raw)
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected string for %s, got %T", v.Name, raw)
	}
	return s, nil
}

// Validate reports whether a raw value satisfies the variable's declared
// domain. Range membership is inclusive on both ends; enum membership is
// exact match after coercion.
func (v *Variable) Validate(raw any) bool {
	canonical, err := v.Parse(raw)
	if err != nil {
		return false
	}
	switch v.Kind {
	case KindInt:
		if v.Range != nil {
			return v.Range.Contains(canonical.(int64))
		}
		return true
	case KindIntEnum:
		n := canonical.(int64)
		for _, c := range v.IntChoices {
			if c == n {
				return true
			}
		}
		return false
	case KindStrEnum:
		s := canonical.(string)
		for _, c := range v.StrChoices {
			if c == s {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// DomainString renders the declared domain for error messages.
func (v *Variable) DomainString() string {
	switch v.Kind {
	case KindInt:
		if v.Range != nil {
			return fmt.Sprintf("[%d, %d]", v.Range.Min, v.Range.Max)
		}
		return "int"
	case KindIntEnum:
		parts := make([]string, len(v.IntChoices))
		for i, c := range v.IntChoices {
			parts[i] = strconv.FormatInt(c, 10)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindStrEnum:
		return "{" + strings.Join(v.StrChoices, ", ") + "}"
	default:
		return "string"
	}
}

// Field is one per-element sub-schema of an array-of-struct variable.
type Field struct {
	Name       string
	Kind       Kind
	Range      *Range
	IntChoices []int64
	StrChoices []string
	SvType     string
}

// asVariable adapts the field to Variable so element validation reuses the
// scalar Parse/Validate rules.
func (f *Field) asVariable(arrayName string) *Variable {
	return &Variable{
		Name:       arrayName + "." + f.Name,
		Path:       f.Name,
		Kind:       f.Kind,
		Range:      f.Range,
		IntChoices: f.IntChoices,
		StrChoices: f.StrChoices,
		SvType:     f.SvType,
	}
}

// Parse coerces a raw element field value per the scalar rules.
func (f *Field) Parse(raw any) (any, error) {
	return f.asVariable("").Parse(raw)
}

// Validate checks a raw element field value against the field domain.
func (f *Field) Validate(raw any) bool {
	return f.asVariable("").Validate(raw)
}

// DomainString renders the field domain for error messages.
func (f *Field) DomainString() string {
	return f.asVariable("").DomainString()
}

// ArrayVariable is one compiled array-of-struct schema declaration. It
// carries the outward shape needed by HDL port renderers separately from
// the per-element values resolved later.
type ArrayVariable struct {
	// Name is the generated macro-style name, unique across the catalog.
	Name string

	// Path is the dotted TOML path of the bound array of tables.
	Path string

	// Fields are the per-element sub-schemas, sorted by field name.
	Fields []Field

	// PortDecl is the HDL port prefix, e.g. "input wire".
	PortDecl string

	// PortName is the HDL signal name, e.g. "btn".
	PortName string

	// File is the schema fragment the declaration came from.
	File string
}

// Field returns the sub-schema for the named element field.
func (a *ArrayVariable) Field(name string) (*Field, bool) {
	for i := range a.Fields {
		if a.Fields[i].Name == name {
			return &a.Fields[i], true
		}
	}
	return nil, false
}

// RenderPort renders the HDL port declaration for n elements, one bit per
// element: "input wire [2:0] btn" for three buttons.
func (a *ArrayVariable) RenderPort(n int) string {
	width := n - 1
	if width < 0 {
		width = 0
	}
	return fmt.Sprintf("%s [%d:0] %s", a.PortDecl, width, a.PortName)
}

// Catalog indexes compiled variables by generated name and by dotted path.
// Both indices resolve to the same object identity.
type Catalog struct {
	byName map[string]*Variable
	byPath map[string]*Variable

	arraysByName map[string]*ArrayVariable
	arraysByPath map[string]*ArrayVariable
}

func newCatalog() *Catalog {
	return &Catalog{
		byName:       map[string]*Variable{},
		byPath:       map[string]*Variable{},
		arraysByName: map[string]*ArrayVariable{},
		arraysByPath: map[string]*ArrayVariable{},
	}
}

// Lookup resolves a scalar variable by generated name or dotted path.
func (c *Catalog) Lookup(key string) (*Variable, bool) {
	if v, ok := c.byName[key]; ok {
		return v, true
	}
	v, ok := c.byPath[key]
	return v, ok
}

// LookupArray resolves an array variable by generated name or dotted path.
func (c *Catalog) LookupArray(key string) (*ArrayVariable, bool) {
	if a, ok := c.arraysByName[key]; ok {
		return a, true
	}
	a, ok := c.arraysByPath[key]
	return a, ok
}

// Names returns all scalar variable names in ascending order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ArrayNames returns all array variable names in ascending order.
func (c *Catalog) ArrayNames() []string {
	names := make([]string, 0, len(c.arraysByName))
	for n := range c.arraysByName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len is the total number of compiled variables, scalar and array.
func (c *Catalog) Len() int {
	return len(c.byName) + len(c.arraysByName)
}

// coerceInt converts a raw TOML value to int64. Strings may use any base
// accepted by strconv with a 0x/0o/0b prefix, and underscores are allowed
// as digit separators.
func coerceInt(raw any) (int64, error) {
	switch t := raw.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		return int64(t), nil
	case string:
		n, err := strconv.ParseInt(strings.ReplaceAll(t, "_", ""), 0, 64)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("not an integer: %v (%T)", raw, raw)
	}
}
