package schema

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/curvhdl/curvcfg/pkg/merge"
	"github.com/curvhdl/curvcfg/pkg/tomlio"
)

// Schema categories recognized under the _schema root.
const (
	categoryVars   = "vars"
	categoryArrays = "arrays"
)

// scalarDecl is the declaration surface of a scalar schema variable. The
// struct exists so field-level constraints can live in validator tags
// instead of hand-rolled checks.
type scalarDecl struct {
	Type      string   `validate:"required,oneof=int string enum"`
	MakeType  string   `validate:"omitempty,oneof=hex hex32 hex16 hex8 decimal string"`
	Artifacts []string `validate:"omitempty,min=1,dive,oneof=all mk makefile env svh defines svpkg cfgpkg"`
}

// Compiler turns schema fragments into a Catalog.
type Compiler struct {
	validate *validator.Validate
}

// NewCompiler creates a schema compiler.
func NewCompiler() *Compiler {
	return &Compiler{validate: validator.New()}
}

// Compile is a convenience wrapper around NewCompiler().Compile.
func Compile(sources []tomlio.Source) (*Catalog, error) {
	return NewCompiler().Compile(sources)
}

// Compile builds a catalog from an ordered list of schema fragments. Each
// variable remembers the fragment it was declared in; a generated name or
// dotted path declared twice, within or across fragments, is a
// DuplicateNameError.
func (c *Compiler) Compile(sources []tomlio.Source) (*Catalog, error) {
	catalog := newCatalog()
	for _, src := range sources {
		root, ok := src.Doc[merge.SchemaKey].(map[string]any)
		if !ok {
			// A fragment without a _schema root contributes nothing.
			// This covers the profile-doubles-as-schema arrangement.
			continue
		}
		root = tomlio.Normalize(root)
		for category, entries := range root {
			entriesTable, ok := entries.(map[string]any)
			if !ok {
				return nil, &ParseError{File: src.Path, Path: merge.SchemaKey + "." + category,
					Reason: "schema category must be a table"}
			}
			switch category {
			case categoryVars:
				for path, decl := range entriesTable {
					v, err := c.compileScalar(src.Path, path, decl)
					if err != nil {
						return nil, err
					}
					if err := catalog.addVariable(v); err != nil {
						return nil, err
					}
				}
			case categoryArrays:
				for path, decl := range entriesTable {
					a, err := c.compileArray(src.Path, path, decl)
					if err != nil {
						return nil, err
					}
					if err := catalog.addArray(a); err != nil {
						return nil, err
					}
				}
			default:
				return nil, &ParseError{File: src.Path, Path: merge.SchemaKey + "." + category,
					Reason: fmt.Sprintf("unknown schema category %q", category)}
			}
		}
	}
	return catalog, nil
}

func (c *Compiler) compileScalar(file, path string, rawDecl any) (*Variable, error) {
	table, ok := rawDecl.(map[string]any)
	if !ok {
		return nil, &ParseError{File: file, Path: path, Reason: "scalar declaration must be a table"}
	}

	decl := scalarDecl{}
	var domain, def any
	var hasDefault bool
	var svType string
	for key, val := range table {
		switch key {
		case "type":
			decl.Type, _ = val.(string)
		case "domain":
			domain = val
		case "sv_type":
			svType, _ = val.(string)
		case "makefile_type":
			decl.MakeType, _ = val.(string)
		case "artifacts":
			tokens, err := stringList(val)
			if err != nil {
				return nil, &ParseError{File: file, Path: path, Reason: "artifacts must be a list of strings", Err: err}
			}
			decl.Artifacts = tokens
		case "default":
			def = val
			hasDefault = true
		default:
			return nil, &ParseError{File: file, Path: path,
				Reason: fmt.Sprintf("unknown declaration field %q", key)}
		}
	}

	if err := c.validate.Struct(decl); err != nil {
		return nil, &ParseError{File: file, Path: path, Reason: "declaration failed validation", Err: err}
	}

	kind, rng, intChoices, strChoices, err := parseDomain(decl.Type, domain)
	if err != nil {
		return nil, &ParseError{File: file, Path: path, Reason: err.Error()}
	}

	artifacts := []Artifact{ArtifactAll}
	if len(decl.Artifacts) > 0 {
		artifacts = make([]Artifact, len(decl.Artifacts))
		for i, tok := range decl.Artifacts {
			a, err := ParseArtifact(tok)
			if err != nil {
				return nil, &ParseError{File: file, Path: path, Reason: err.Error()}
			}
			artifacts[i] = a
		}
	}

	v := &Variable{
		Name:       GeneratedName(path),
		Path:       path,
		Kind:       kind,
		Range:      rng,
		IntChoices: intChoices,
		StrChoices: strChoices,
		SvType:     svType,
		MakeType:   decl.MakeType,
		Artifacts:  artifacts,
		Default:    def,
		HasDefault: hasDefault,
		File:       file,
	}

	if hasDefault && !v.Validate(def) {
		return nil, &ParseError{File: file, Path: path,
			Reason: fmt.Sprintf("default %v is outside the declared domain %s", def, v.DomainString())}
	}
	return v, nil
}

func (c *Compiler) compileArray(file, path string, rawDecl any) (*ArrayVariable, error) {
	table, ok := rawDecl.(map[string]any)
	if !ok {
		return nil, &ParseError{File: file, Path: path, Reason: "array declaration must be a table"}
	}

	a := &ArrayVariable{
		Name: GeneratedName(path),
		Path: path,
		File: file,
	}
	var fieldsTable map[string]any
	for key, val := range table {
		switch key {
		case "sv_port":
			a.PortDecl, _ = val.(string)
		case "sv_name":
			a.PortName, _ = val.(string)
		case "fields":
			fieldsTable, ok = val.(map[string]any)
			if !ok {
				return nil, &ParseError{File: file, Path: path, Reason: "fields must be a table"}
			}
		default:
			return nil, &ParseError{File: file, Path: path,
				Reason: fmt.Sprintf("unknown declaration field %q", key)}
		}
	}
	if len(fieldsTable) == 0 {
		return nil, &ParseError{File: file, Path: path, Reason: "array declaration needs at least one field"}
	}

	for _, name := range sortedKeys(fieldsTable) {
		field, err := c.compileField(file, path+"."+name, name, fieldsTable[name])
		if err != nil {
			return nil, err
		}
		a.Fields = append(a.Fields, *field)
	}
	return a, nil
}

func (c *Compiler) compileField(file, declPath, name string, rawDecl any) (*Field, error) {
	table, ok := rawDecl.(map[string]any)
	if !ok {
		return nil, &ParseError{File: file, Path: declPath, Reason: "field declaration must be a table"}
	}

	decl := scalarDecl{}
	var domain any
	var svType string
	for key, val := range table {
		switch key {
		case "type":
			decl.Type, _ = val.(string)
		case "domain":
			domain = val
		case "sv_type":
			svType, _ = val.(string)
		default:
			return nil, &ParseError{File: file, Path: declPath,
				Reason: fmt.Sprintf("unknown field declaration key %q", key)}
		}
	}
	if err := c.validate.Struct(decl); err != nil {
		return nil, &ParseError{File: file, Path: declPath, Reason: "field declaration failed validation", Err: err}
	}

	kind, rng, intChoices, strChoices, err := parseDomain(decl.Type, domain)
	if err != nil {
		return nil, &ParseError{File: file, Path: declPath, Reason: err.Error()}
	}
	return &Field{
		Name:       name,
		Kind:       kind,
		Range:      rng,
		IntChoices: intChoices,
		StrChoices: strChoices,
		SvType:     svType,
	}, nil
}

// parseDomain fixes the scalar kind from the declared type and domain.
func parseDomain(typ string, domain any) (Kind, *Range, []int64, []string, error) {
	switch d := domain.(type) {
	case nil:
		switch typ {
		case "int":
			return KindInt, nil, nil, nil, nil
		case "string":
			return KindStr, nil, nil, nil, nil
		default:
			return 0, nil, nil, nil, fmt.Errorf("enum type requires an explicit domain")
		}

	case map[string]any:
		if typ != "int" {
			return 0, nil, nil, nil, fmt.Errorf("range domain is only valid for int type")
		}
		min, okMin := d["min"]
		max, okMax := d["max"]
		if !okMin || !okMax || len(d) != 2 {
			return 0, nil, nil, nil, fmt.Errorf("range domain must be exactly {min, max}")
		}
		lo, err := coerceInt(min)
		if err != nil {
			return 0, nil, nil, nil, fmt.Errorf("range min: %v", err)
		}
		hi, err := coerceInt(max)
		if err != nil {
			return 0, nil, nil, nil, fmt.Errorf("range max: %v", err)
		}
		if lo > hi {
			return 0, nil, nil, nil, fmt.Errorf("range min %d exceeds max %d", lo, hi)
		}
		return KindInt, &Range{Min: lo, Max: hi}, nil, nil, nil

	case []any:
		if len(d) == 0 {
			return 0, nil, nil, nil, fmt.Errorf("choice domain must not be empty")
		}
		if _, isStr := d[0].(string); isStr {
			if typ == "int" {
				return 0, nil, nil, nil, fmt.Errorf("string choices are not valid for int type")
			}
			choices := make([]string, len(d))
			for i, e := range d {
				s, ok := e.(string)
				if !ok {
					return 0, nil, nil, nil, fmt.Errorf("mixed-type choice domain")
				}
				choices[i] = s
			}
			return KindStrEnum, nil, nil, choices, nil
		}
		if typ == "string" {
			return 0, nil, nil, nil, fmt.Errorf("integer choices are not valid for string type")
		}
		choices := make([]int64, len(d))
		for i, e := range d {
			n, err := coerceInt(e)
			if err != nil {
				return 0, nil, nil, nil, fmt.Errorf("mixed-type choice domain")
			}
			choices[i] = n
		}
		return KindIntEnum, nil, choices, nil, nil

	default:
		return 0, nil, nil, nil, fmt.Errorf("domain must be a {min, max} table or a choice list")
	}
}

func (c *Catalog) addVariable(v *Variable) error {
	if err := c.checkCollision(v.Name, v.Path, v.File); err != nil {
		return err
	}
	c.byName[v.Name] = v
	c.byPath[v.Path] = v
	return nil
}

func (c *Catalog) addArray(a *ArrayVariable) error {
	if err := c.checkCollision(a.Name, a.Path, a.File); err != nil {
		return err
	}
	c.arraysByName[a.Name] = a
	c.arraysByPath[a.Path] = a
	return nil
}

func (c *Catalog) checkCollision(name, path, file string) error {
	if prev, ok := c.byName[name]; ok {
		return &DuplicateNameError{Name: name, Path: path, FirstFile: prev.File, SecondFile: file}
	}
	if prev, ok := c.byPath[path]; ok {
		return &DuplicateNameError{Name: name, Path: path, FirstFile: prev.File, SecondFile: file}
	}
	if prev, ok := c.arraysByName[name]; ok {
		return &DuplicateNameError{Name: name, Path: path, FirstFile: prev.File, SecondFile: file}
	}
	if prev, ok := c.arraysByPath[path]; ok {
		return &DuplicateNameError{Name: name, Path: path, FirstFile: prev.File, SecondFile: file}
	}
	return nil
}

func stringList(val any) ([]string, error) {
	list, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", val)
	}
	out := make([]string, len(list))
	for i, e := range list {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, not a string", i, e)
		}
		out[i] = s
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
