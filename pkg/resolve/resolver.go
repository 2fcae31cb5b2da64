// Package resolve binds a merged configuration tree against a compiled
// schema catalog, producing validated CfgValues for the emitters.
//
// Resolution is a pure read: neither the merged config nor the catalog is
// mutated, and the resulting CfgValues collection is immutable.
package resolve

import (
	"sort"

	"github.com/curvhdl/curvcfg/pkg/schema"
	"github.com/curvhdl/curvcfg/pkg/tomlio"
)

// Resolve binds every variable of the catalog against the merged config.
// Scalars fall back to their schema default when the config has no value;
// a variable with neither is a MissingValueError. A present value outside
// its domain is a ValidationError. Array variables validate every element
// against the per-field sub-schema.
func Resolve(mergedConfig map[string]any, catalog *schema.Catalog) (*CfgValues, error) {
	vals := map[string]*CfgValue{}
	for _, name := range catalog.Names() {
		v, _ := catalog.Lookup(name)
		cfgVal, err := resolveScalar(mergedConfig, v)
		if err != nil {
			return nil, err
		}
		vals[name] = cfgVal
	}

	arrays := map[string]*ArrayValue{}
	for _, name := range catalog.ArrayNames() {
		a, _ := catalog.LookupArray(name)
		arrVal, err := resolveArray(mergedConfig, a)
		if err != nil {
			return nil, err
		}
		arrays[name] = arrVal
	}

	names := make([]string, 0, len(vals))
	for n := range vals {
		names = append(names, n)
	}
	sort.Strings(names)

	return &CfgValues{
		names:  names,
		vals:   vals,
		arrays: arrays,
		fprint: fingerprint(vals, arrays),
	}, nil
}

func resolveScalar(mergedConfig map[string]any, v *schema.Variable) (*CfgValue, error) {
	raw, found := tomlio.LookupPath(mergedConfig, v.Path)
	if !found {
		if !v.HasDefault {
			return nil, &MissingValueError{Name: v.Name, Path: v.Path}
		}
		raw = v.Default
	}
	if !v.Validate(raw) {
		return nil, &ValidationError{Name: v.Name, Raw: raw, Domain: v.DomainString()}
	}
	canonical, err := v.Parse(raw)
	if err != nil {
		// Validate passed, so Parse cannot fail; keep the guard anyway.
		return nil, &ValidationError{Name: v.Name, Raw: raw, Domain: v.DomainString()}
	}
	return &CfgValue{Var: v, Raw: raw, Value: canonical}, nil
}

func resolveArray(mergedConfig map[string]any, a *schema.ArrayVariable) (*ArrayValue, error) {
	raw, found := tomlio.LookupPath(mergedConfig, a.Path)
	if !found {
		return nil, &MissingValueError{Name: a.Name, Path: a.Path}
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &ValidationError{Name: a.Name, Raw: raw, Domain: "array of tables"}
	}

	elements := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		table, ok := entry.(map[string]any)
		if !ok {
			return nil, &ValidationError{Name: a.Name, Raw: entry, Domain: "table element"}
		}
		record := map[string]any{}
		for i := range a.Fields {
			field := &a.Fields[i]
			rawField, present := table[field.Name]
			if !present {
				return nil, &MissingValueError{Name: a.Name, Path: a.Path + "." + field.Name}
			}
			if !field.Validate(rawField) {
				return nil, &ValidationError{
					Name:   a.Name + "." + field.Name,
					Raw:    rawField,
					Domain: field.DomainString(),
				}
			}
			canonical, err := field.Parse(rawField)
			if err != nil {
				return nil, &ValidationError{Name: a.Name + "." + field.Name, Raw: rawField, Domain: field.DomainString()}
			}
			record[field.Name] = canonical
		}
		elements = append(elements, record)
	}
	return &ArrayValue{Var: a, Elements: elements}, nil
}
