package schema

import "testing"

func TestExtractSvWidth(t *testing.T) {
	tests := []struct {
		svType string
		width  int
		ok     bool
	}{
		{"logic [31:0]", 32, true},
		{"logic [7:0]", 8, true},
		{"wire [15 : 0]", 16, true},
		{"wire [ 15 : 0 ]", 0, false},
		{"int", 0, false},
		{"", 0, false},
		{"logic", 0, false},
	}
	for _, tc := range tests {
		w, ok := ExtractSvWidth(tc.svType)
		if w != tc.width || ok != tc.ok {
			t.Errorf("ExtractSvWidth(%q) = (%d, %v), want (%d, %v)", tc.svType, w, ok, tc.width, tc.ok)
		}
	}
}

func TestSvNumericLiteral(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		svType   string
		makeType string
		want     string
	}{
		{"explicit 8-bit width", 15, "logic [7:0]", "", "8'h0F"},
		{"explicit 32-bit width", 255, "logic [31:0]", "", "32'h000000FF"},
		{"explicit width beats hint", 15, "logic [7:0]", "hex32", "8'h0F"},
		{"hex hint", 171, "", "hex", "32'h000000AB"},
		{"hex32 hint", 171, "", "hex32", "32'h000000AB"},
		{"hex16 hint", 171, "", "hex16", "16'h00AB"},
		{"hex8 hint", 171, "", "hex8", "8'hAB"},
		{"decimal hint", 171, "", "decimal", "171"},
		{"magnitude small", 200, "", "", "8'hC8"},
		{"magnitude boundary 256", 256, "", "", "8'h00"},
		{"magnitude 16-bit", 4096, "", "", "16'h1000"},
		{"magnitude 32-bit", 1 << 20, "", "", "32'h00100000"},
		{"negative", -1, "", "", "32'hFFFFFFFF"},
		{"width truncates", 0x1FF, "logic [7:0]", "", "8'hFF"},
	}
	for _, tc := range tests {
		if got := SvNumericLiteral(tc.value, tc.svType, tc.makeType); got != tc.want {
			t.Errorf("%s: SvNumericLiteral(%d, %q, %q) = %q, want %q",
				tc.name, tc.value, tc.svType, tc.makeType, got, tc.want)
		}
	}
}

func TestFormatMakeValue(t *testing.T) {
	tests := []struct {
		value    any
		makeType string
		want     string
	}{
		{int64(171), "", "171"},
		{int64(171), "decimal", "171"},
		{int64(171), "hex", "0xAB"},
		{int64(171), "hex32", "0x000000AB"},
		{int64(171), "hex16", "0x00AB"},
		{int64(171), "hex8", "0xAB"},
		{"0x0000_00ab", "hex32", "0x000000AB"},
		{"42", "decimal", "42"},
		{"icache", "", "icache"},
		{"icache", "string", "icache"},
	}
	for _, tc := range tests {
		if got := FormatMakeValue(tc.value, tc.makeType); got != tc.want {
			t.Errorf("FormatMakeValue(%v, %q) = %q, want %q", tc.value, tc.makeType, got, tc.want)
		}
	}
}

func TestScalarDisplays(t *testing.T) {
	lutram := &Variable{
		Name:   "CFG_CACHE_TAGS_IN_LUTRAM",
		Path:   "cache.tags_in_lutram",
		Kind:   KindInt,
		Range:  &Range{Min: 0, Max: 1},
		SvType: "int",
	}
	if got := lutram.SvDisplay(int64(1)); got != "localparam int CFG_CACHE_TAGS_IN_LUTRAM = 1;" {
		t.Errorf("SvDisplay = %q", got)
	}
	if got := lutram.MakeDisplay(int64(1)); got != "1" {
		t.Errorf("MakeDisplay = %q", got)
	}
	if got := lutram.DefineDisplay(int64(1)); got != "`define CFG_CACHE_TAGS_IN_LUTRAM 1" {
		t.Errorf("DefineDisplay = %q", got)
	}

	icache := &Variable{
		Name: "CFG_CACHE_HEX_FILES_SUBDIRS_ICACHE",
		Path: "cache.hex_files.subdirs.icache",
		Kind: KindStr,
	}
	if got := icache.SvDisplay("icache"); got != `localparam string CFG_CACHE_HEX_FILES_SUBDIRS_ICACHE = "icache";` {
		t.Errorf("SvDisplay = %q", got)
	}
	if got := icache.MakeDisplay("icache"); got != "icache" {
		t.Errorf("MakeDisplay = %q", got)
	}
	if got := icache.DefineDisplay("icache"); got != "`define CFG_CACHE_HEX_FILES_SUBDIRS_ICACHE `\"icache`\"" {
		t.Errorf("DefineDisplay = %q", got)
	}

	sized := &Variable{
		Name:   "CFG_RESET_VECTOR",
		Path:   "cpu.reset_vector",
		Kind:   KindInt,
		SvType: "logic [7:0]",
	}
	if got := sized.SvDisplay(int64(15)); got != "localparam logic [7:0] CFG_RESET_VECTOR = 8'h0F;" {
		t.Errorf("SvDisplay = %q", got)
	}
	if got := sized.DefineDisplay(int64(15)); got != "`define CFG_RESET_VECTOR 8'h0F" {
		t.Errorf("DefineDisplay = %q", got)
	}
}

func TestDisplaysWithoutSvType(t *testing.T) {
	hinted := &Variable{
		Name:     "CFG_IRQ_MASK",
		Path:     "irq.mask",
		Kind:     KindInt,
		MakeType: "hex16",
	}
	if got := hinted.DefineDisplay(int64(15)); got != "`define CFG_IRQ_MASK 16'h000F" {
		t.Errorf("DefineDisplay = %q", got)
	}
	if got := hinted.SvDisplay(int64(15)); got != "localparam int CFG_IRQ_MASK = 16'h000F;" {
		t.Errorf("SvDisplay = %q", got)
	}

	bare := &Variable{
		Name: "CFG_IRQ_PRIORITY",
		Path: "irq.priority",
		Kind: KindInt,
	}
	if got := bare.DefineDisplay(int64(15)); got != "`define CFG_IRQ_PRIORITY 8'h0F" {
		t.Errorf("DefineDisplay = %q", got)
	}
	if got := bare.DefineDisplay(int64(1<<20)); got != "`define CFG_IRQ_PRIORITY 32'h00100000" {
		t.Errorf("DefineDisplay = %q", got)
	}
}

func TestDomainBoundary(t *testing.T) {
	v := &Variable{
		Name:  "CFG_CACHE_WAYS",
		Path:  "cache.ways",
		Kind:  KindInt,
		Range: &Range{Min: 1, Max: 8},
	}
	if !v.Validate(int64(1)) || !v.Validate(int64(8)) {
		t.Error("range endpoints must validate")
	}
	if v.Validate(int64(0)) || v.Validate(int64(9)) {
		t.Error("values outside the range must not validate")
	}
}
