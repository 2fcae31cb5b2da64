package schema

import (
	"fmt"
	"regexp"
	"strconv"
)

var svWidthRe = regexp.MustCompile(`\[(\d+)\s*:\s*0\]`)

// ExtractSvWidth pulls the bit width out of an HDL type annotation of the
// form "logic [W-1:0]" or "wire [7:0]". The second return is false when the
// annotation carries no explicit range.
func ExtractSvWidth(svType string) (int, bool) {
	m := svWidthRe.FindStringSubmatch(svType)
	if m == nil {
		return 0, false
	}
	msb, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return msb + 1, true
}

// SvNumericLiteral renders an integer as a sized SystemVerilog literal.
// Width selection, in order: an explicit [W-1:0] range in svType, the
// display-kind hint (hex/hex32, hex16, hex8, decimal), then inference from
// the value's magnitude.
func SvNumericLiteral(value int64, svType, makeType string) string {
	if w, ok := ExtractSvWidth(svType); ok {
		return sizedHex(value, w)
	}
	switch makeType {
	case "hex", "hex32":
		return sizedHex(value, 32)
	case "hex16":
		return sizedHex(value, 16)
	case "hex8":
		return sizedHex(value, 8)
	case "decimal", "string":
		return strconv.FormatInt(value, 10)
	}
	switch {
	case value < 0:
		return sizedHex(value, 32)
	case value <= 1<<8:
		return sizedHex(value, 8)
	case value <= 1<<16:
		return sizedHex(value, 16)
	default:
		return sizedHex(value, 32)
	}
}

// sizedHex renders value as W'h<hex> with the hex digits zero-padded to
// ceil(W/4). Negative values are truncated to the declared width.
func sizedHex(value int64, width int) string {
	digits := (width + 3) / 4
	v := uint64(value)
	if width < 64 {
		v &= (uint64(1) << uint(width)) - 1
	}
	return fmt.Sprintf("%d'h%0*X", width, digits, v)
}

// FormatMakeValue renders a value for the makefile and env targets:
// decimal by default, 0x-prefixed hex with 2/4/8-digit padding when the
// display-kind hint asks for it. Non-numeric strings pass through verbatim.
func FormatMakeValue(v any, makeType string) string {
	if s, ok := v.(string); ok {
		switch makeType {
		case "hex", "hex32", "hex16", "hex8", "decimal":
			n, err := coerceInt(s)
			if err != nil {
				return s
			}
			return formatMakeInt(n, makeType)
		default:
			return s
		}
	}
	if n, err := coerceInt(v); err == nil {
		return formatMakeInt(n, makeType)
	}
	return fmt.Sprintf("%v", v)
}

func formatMakeInt(n int64, makeType string) string {
	switch makeType {
	case "hex":
		return fmt.Sprintf("0x%X", n)
	case "hex32":
		return fmt.Sprintf("0x%08X", uint64(n)&0xFFFFFFFF)
	case "hex16":
		return fmt.Sprintf("0x%04X", uint64(n)&0xFFFF)
	case "hex8":
		return fmt.Sprintf("0x%02X", uint64(n)&0xFF)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// SvDisplay renders the variable as a localparam declaration for package
// context: `localparam int CFG_CACHE_TAGS_IN_LUTRAM = 1;`.
func (v *Variable) SvDisplay(value any) string {
	if v.Kind.IsNumeric() {
		n, err := coerceInt(value)
		if err != nil {
			return fmt.Sprintf("localparam %s %s = %v;", v.svTypeOrInt(), v.Name, value)
		}
		return fmt.Sprintf("localparam %s %s = %s;", v.svTypeOrInt(), v.Name, v.svLiteral(n))
	}
	return fmt.Sprintf("localparam string %s = %q;", v.Name, value)
}

// DefineDisplay renders the variable as a `define macro for header context.
// Strings become backtick-quoted HDL string literals.
func (v *Variable) DefineDisplay(value any) string {
	if v.Kind.IsNumeric() {
		n, err := coerceInt(value)
		if err != nil {
			return fmt.Sprintf("`define %s %v", v.Name, value)
		}
		return fmt.Sprintf("`define %s %s", v.Name, v.svLiteral(n))
	}
	return fmt.Sprintf("`define %s `\"%v`\"", v.Name, value)
}

// MakeDisplay renders the variable's value for makefile and env targets.
func (v *Variable) MakeDisplay(value any) string {
	return FormatMakeValue(value, v.MakeType)
}

func (v *Variable) svTypeOrInt() string {
	if v.SvType == "" {
		return "int"
	}
	return v.SvType
}

/// svLiteral picks the numeric literal form: plain decimal only when the HDL
// type is explicitly a bare int. An absent type falls through to the sized
// literal chain (width from type, then display-kind hint, then magnitude).
func (v *Variable) svLiteral(n int64) string {
	if v.SvType == "int" {
		return strconv.FormatInt(n, 10)
	}
	return SvNumericLiteral(n, v.SvType, v.MakeType)
}
