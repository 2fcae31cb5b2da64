package merge

import (
	"reflect"
	"strings"
	"testing"

	"github.com/curvhdl/curvcfg/pkg/tomlio"
)

func src(path string, doc map[string]any) tomlio.Source {
	return tomlio.Source{Path: path, Doc: doc}
}

func TestCombineDisjointDocuments(t *testing.T) {
	a := src("board.toml", map[string]any{"board": map[string]any{"name": "arty"}})
	b := src("device.toml", map[string]any{"device": map[string]any{"part": "xc7a35t"}})

	got, err := Combine([]tomlio.Source{a, b})
	if err != nil {
		t.Fatalf("combine failed: %v", err)
	}
	if _, ok := got["board"]; !ok {
		t.Error("board fragment missing from union")
	}
	if _, ok := got["device"]; !ok {
		t.Error("device fragment missing from union")
	}
}

func TestCombineConflictEvenWhenEqual(t *testing.T) {
	a := src("a.toml", map[string]any{"cpu": map[string]any{"xlen": int64(32)}})
	b := src("b.toml", map[string]any{"cpu": map[string]any{"xlen": int64(32)}})

	_, err := Combine([]tomlio.Source{a, b})
	if !IsCombineConflict(err) {
		t.Fatalf("expected conflict for duplicate key with equal values, got %v", err)
	}
}

func TestCombineConflictCarriesBothSides(t *testing.T) {
	a := src("a.toml", map[string]any{"cpu": map[string]any{"xlen": int64(32)}})
	b := src("b.toml", map[string]any{"cpu": map[string]any{"xlen": int64(64)}})

	_, err := Combine([]tomlio.Source{a, b})
	var conflict *CombineConflictError
	if !IsCombineConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	conflict = err.(*CombineConflictError)
	if conflict.Path != "cpu" {
		t.Errorf("conflict path = %q, want cpu", conflict.Path)
	}
	if conflict.SourceA != "a.toml" || conflict.SourceB != "b.toml" {
		t.Errorf("conflict sources = %q, %q", conflict.SourceA, conflict.SourceB)
	}
	msg := err.Error()
	for _, needle := range []string{"xlen", "32", "64"} {
		if !strings.Contains(msg, needle) {
			t.Errorf("conflict message %q missing %q", msg, needle)
		}
	}
}

func TestCombineConflictSymmetry(t *testing.T) {
	a := src("a.toml", map[string]any{"cpu": map[string]any{"xlen": int64(32)}})
	b := src("b.toml", map[string]any{"cpu": map[string]any{"xlen": int64(64)}})

	_, errAB := Combine([]tomlio.Source{a, b})
	_, errBA := Combine([]tomlio.Source{b, a})
	if !IsCombineConflict(errAB) || !IsCombineConflict(errBA) {
		t.Fatalf("both orders must conflict: %v / %v", errAB, errBA)
	}
	if errAB.(*CombineConflictError).Path != errBA.(*CombineConflictError).Path {
		t.Errorf("conflict paths differ by order: %q vs %q",
			errAB.(*CombineConflictError).Path, errBA.(*CombineConflictError).Path)
	}
}

func TestCombineConflictIsDeterministic(t *testing.T) {
	base := src("base.toml", map[string]any{
		"cpu":    map[string]any{"xlen": int64(32)},
		"memory": map[string]any{"size": int64(1024)},
	})
	overlap := src("overlap.toml", map[string]any{
		"memory": map[string]any{"size": int64(2048)},
		"cpu":    map[string]any{"xlen": int64(64)},
	})

	// Both keys conflict; the reported one must not depend on map
	// iteration order.
	for i := 0; i < 50; i++ {
		_, err := Combine([]tomlio.Source{base, overlap})
		if !IsCombineConflict(err) {
			t.Fatalf("expected conflict, got %v", err)
		}
		if got := err.(*CombineConflictError).Path; got != "cpu" {
			t.Fatalf("run %d: conflict path = %q, want cpu", i, got)
		}
	}
}

func TestCombineSchemaNamespaceIsDeeper(t *testing.T) {
	a := src("a.toml", map[string]any{
		"_schema": map[string]any{
			"vars": map[string]any{
				"cpu.xlen": map[string]any{"type": "int"},
			},
		},
	})
	b := src("b.toml", map[string]any{
		"_schema": map[string]any{
			"vars": map[string]any{
				"cache.ways": map[string]any{"type": "int"},
			},
		},
	})

	got, err := Combine([]tomlio.Source{a, b})
	if err != nil {
		t.Fatalf("distinct _schema.vars entries must not conflict: %v", err)
	}
	vars := got["_schema"].(map[string]any)["vars"].(map[string]any)
	if len(vars) != 2 {
		t.Fatalf("expected 2 schema vars, got %#v", vars)
	}
}

func TestCombineSchemaSameVariableConflicts(t *testing.T) {
	decl := map[string]any{"type": "int"}
	a := src("a.toml", map[string]any{
		"_schema": map[string]any{"vars": map[string]any{"cpu.xlen": decl}},
	})
	b := src("b.toml", map[string]any{
		"_schema": map[string]any{"vars": map[string]any{"cpu.xlen": decl}},
	})

	_, err := Combine([]tomlio.Source{a, b})
	if !IsCombineConflict(err) {
		t.Fatalf("expected conflict for duplicate schema variable, got %v", err)
	}
	if got := err.(*CombineConflictError).Path; got != "_schema.vars.cpu.xlen" {
		t.Errorf("conflict path = %q, want _schema.vars.cpu.xlen", got)
	}
}

func TestCombineDropsMetadata(t *testing.T) {
	a := src("a.toml", map[string]any{
		"_metadata": map[string]any{"generator": "curvcfg"},
		"cpu":       map[string]any{"xlen": int64(32)},
	})
	b := src("b.toml", map[string]any{
		"_metadata": map[string]any{"generator": "other"},
	})

	got, err := Combine([]tomlio.Source{a, b})
	if err != nil {
		t.Fatalf("_metadata must never conflict: %v", err)
	}
	if _, ok := got["_metadata"]; ok {
		t.Fatalf("_metadata must be dropped, got %#v", got)
	}
	want := map[string]any{"cpu": map[string]any{"xlen": int64(32)}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("combine result = %#v, want %#v", got, want)
	}
}
