package emit

import (
	"strings"
	"testing"

	"github.com/curvhdl/curvcfg/pkg/tomlio"
)

func TestMergedTOMLRoundTrips(t *testing.T) {
	codec := tomlio.NewCodec()
	m := &MergedTOML{
		Config: map[string]any{
			"cpu": map[string]any{"xlen": int64(64)},
		},
		Schema: map[string]any{
			"_schema": map[string]any{
				"vars": map[string]any{
					"cpu.xlen": map[string]any{"type": "int"},
				},
			},
		},
		Header: "board: nexys-a7",
	}

	content, err := m.Render(codec)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.HasPrefix(content, "# board: nexys-a7\n") {
		t.Errorf("header comment missing:\n%s", content)
	}
	if !strings.Contains(content, "# Machine-generated file; do not edit\n") {
		t.Errorf("banner missing:\n%s", content)
	}
	cfgIdx := strings.Index(content, "# Configuration section")
	schIdx := strings.Index(content, "# Schema section")
	if cfgIdx < 0 || schIdx < 0 || schIdx < cfgIdx {
		t.Fatalf("section banners missing or out of order:\n%s", content)
	}

	// The file must parse back into the same two documents.
	doc, err := codec.Unmarshal([]byte(content))
	if err != nil {
		t.Fatalf("rendered file does not parse: %v", err)
	}
	config, schemaDoc := SplitMerged(doc)
	xlen, ok := tomlio.LookupPath(config, "cpu.xlen")
	if !ok || xlen != int64(64) {
		t.Errorf("cpu.xlen = %v after round trip", xlen)
	}
	// The variable path is a single quoted key, not a nested table.
	vars, ok := tomlio.LookupPath(schemaDoc, "_schema.vars")
	if !ok {
		t.Fatal("_schema.vars lost after round trip")
	}
	decl, ok := vars.(map[string]any)["cpu.xlen"].(map[string]any)
	if !ok || decl["type"] != "int" {
		t.Errorf("schema declaration lost after round trip: %v", vars)
	}
}

func TestMergedTOMLDeterministic(t *testing.T) {
	codec := tomlio.NewCodec()
	m := &MergedTOML{
		Config: map[string]any{
			"cpu":   map[string]any{"xlen": int64(64), "harts": int64(2)},
			"cache": map[string]any{"policy": "writeback"},
		},
		Schema: map[string]any{},
	}
	first, err := m.Render(codec)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := m.Render(codec)
		if err != nil {
			t.Fatalf("render %d failed: %v", i, err)
		}
		if again != first {
			t.Fatalf("render %d differs from first", i)
		}
	}
}

func TestSplitMergedDropsMetadata(t *testing.T) {
	doc := map[string]any{
		"_schema":   map[string]any{"vars": map[string]any{}},
		"_metadata": map[string]any{"generated": "yes"},
		"cpu":       map[string]any{"xlen": int64(32)},
	}
	config, schemaDoc := SplitMerged(doc)
	if _, ok := config["_metadata"]; ok {
		t.Error("metadata leaked into config half")
	}
	if _, ok := schemaDoc["_metadata"]; ok {
		t.Error("metadata leaked into schema half")
	}
	if _, ok := config["cpu"]; !ok {
		t.Error("config table missing")
	}
	if _, ok := schemaDoc["_schema"]; !ok {
		t.Error("schema table missing")
	}
}
