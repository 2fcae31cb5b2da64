package emit

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/curvhdl/curvcfg/pkg/resolve"
	"github.com/curvhdl/curvcfg/pkg/schema"
)

// Default output file names per target.
var DefaultOutfileNames = map[schema.Artifact]string{
	schema.ArtifactMakefile: "curv.mk",
	schema.ArtifactEnv:      ".curv.env",
	schema.ArtifactDefines:  "curvcfg.svh",
	schema.ArtifactCfgPkg:   "curvcfgpkg.sv",
}

// DefaultPaths maps every target to its default file name under outDir.
func DefaultPaths(outDir string) map[schema.Artifact]string {
	paths := make(map[schema.Artifact]string, len(DefaultOutfileNames))
	for tag, name := range DefaultOutfileNames {
		paths[tag] = filepath.Join(outDir, name)
	}
	return paths
}

// Emitter renders a resolved value set into the requested artifact files.
type Emitter struct {
	values        *resolve.CfgValues
	paths         map[schema.Artifact]string
	onlyIfChanged bool
}

// NewEmitter creates an emitter for the given values and target paths. The
// paths map doubles as the target selection: only the tags present in it
// are emitted.
func NewEmitter(values *resolve.CfgValues, paths map[schema.Artifact]string, onlyIfChanged bool) *Emitter {
	return &Emitter{values: values, paths: paths, onlyIfChanged: onlyIfChanged}
}

// Emit renders and writes every requested target. The result maps each tag
// to true when the file was created or replaced, false when it was left
// unchanged. Rendering happens for all targets before the first write, so a
// render failure never leaves a partial artifact set.
func (e *Emitter) Emit() (map[schema.Artifact]bool, error) {
	// Deterministic target order keeps logs and failures reproducible.
	order := []schema.Artifact{
		schema.ArtifactMakefile,
		schema.ArtifactEnv,
		schema.ArtifactDefines,
		schema.ArtifactCfgPkg,
	}

	type rendered struct {
		tag     schema.Artifact
		path    string
		content string
	}
	var files []rendered
	for _, tag := range order {
		path, requested := e.paths[tag]
		if !requested {
			continue
		}
		files = append(files, rendered{tag: tag, path: path, content: e.Render(tag, path)})
	}

	results := make(map[schema.Artifact]bool, len(files))
	for _, f := range files {
		changed, err := WriteFileIfChanged(f.path, []byte(f.content), e.onlyIfChanged)
		if err != nil {
			return nil, fmt.Errorf("failed to emit %s artifact: %w", f.tag, err)
		}
		results[f.tag] = changed
	}
	return results, nil
}

// Render produces the full file content for one target without touching the
// filesystem.
func (e *Emitter) Render(tag schema.Artifact, path string) string {
	switch tag {
	case schema.ArtifactMakefile:
		return renderMakefile(e.values, filepath.Base(path))
	case schema.ArtifactEnv:
		return renderEnv(e.values)
	case schema.ArtifactDefines:
		return renderDefines(e.values, filepath.Base(path))
	case schema.ArtifactCfgPkg:
		return renderPackage(e.values, filepath.Base(path))
	default:
		return ""
	}
}

const bannerRule = "-----------------------------------------------------------------------------"

// selected returns the values targeted at tag, in ascending name order.
func selected(values *resolve.CfgValues, tag schema.Artifact) []*resolve.CfgValue {
	var out []*resolve.CfgValue
	for _, name := range values.Names() {
		v, _ := values.Get(name)
		if v.Var.Targets(tag) {
			out = append(out, v)
		}
	}
	return out
}

// guardName derives an include guard from an output file name:
// "curv.mk" becomes "__CURV_MK__".
func guardName(filename string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, strings.ToUpper(filename))
	return "__" + mapped + "__"
}

func renderMakefile(values *resolve.CfgValues, filename string) string {
	guard := guardName(filename)
	var b strings.Builder
	fmt.Fprintf(&b, "ifndef %s\n", guard)
	fmt.Fprintf(&b, "%s := 1\n\n", guard)
	b.WriteString("# Autogenerated by curvcfg. Do not edit.\n")
	for _, v := range selected(values, schema.ArtifactMakefile) {
		fmt.Fprintf(&b, "%s := %s\n", v.Var.Name, v.MakeDisplay())
	}
	fmt.Fprintf(&b, "\nendif # %s\n", guard)
	return b.String()
}

func renderEnv(values *resolve.CfgValues) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", bannerRule)
	b.WriteString("# Autogenerated by curvcfg. Do not edit.\n")
	fmt.Fprintf(&b, "# %s\n\n", bannerRule)
	for _, v := range selected(values, schema.ArtifactEnv) {
		fmt.Fprintf(&b, "%s=%s\n", v.Var.Name, v.EnvDisplay())
	}
	return b.String()
}

func renderDefines(values *resolve.CfgValues, filename string) string {
	guard := guardName(filename)
	vals := selected(values, schema.ArtifactDefines)

	longest := 0
	for _, v := range vals {
		if len(v.Var.Name) > longest {
			longest = len(v.Var.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// %s\n", bannerRule)
	b.WriteString("// Autogenerated by curvcfg. Do not edit.\n")
	fmt.Fprintf(&b, "// %s\n\n", bannerRule)
	fmt.Fprintf(&b, "`ifndef %s\n`define %s\n\n", guard, guard)
	if len(vals) == 0 {
		b.WriteString("// (no values selected for this target)\n")
	}
	for _, v := range vals {
		// Reuse the variable renderer for the literal, but pad the
		// name column so the header stays readable.
		line := v.DefineDisplay()
		name := v.Var.Name
		literal := strings.TrimPrefix(line, "`define "+name+" ")
		fmt.Fprintf(&b, "`define %-*s %s\n", longest+4, name, literal)
	}
	fmt.Fprintf(&b, "\n`endif // %s\n", guard)
	return b.String()
}

func renderPackage(values *resolve.CfgValues, filename string) string {
	pkgName := strings.ToLower(strings.TrimSuffix(filename, filepath.Ext(filename)))
	var b strings.Builder
	fmt.Fprintf(&b, "// %s\n", bannerRule)
	b.WriteString("// Autogenerated by curvcfg. Do not edit.\n")
	fmt.Fprintf(&b, "// %s\n\n", bannerRule)
	fmt.Fprintf(&b, "package %s;\n\n", pkgName)
	b.WriteString("  // verilator lint_off UNUSEDPARAM\n")
	for _, v := range selected(values, schema.ArtifactCfgPkg) {
		fmt.Fprintf(&b, "  %s\n", v.SvDisplay())
	}
	b.WriteString("  // verilator lint_on UNUSEDPARAM\n\n")
	fmt.Fprintf(&b, "endpackage : %s\n", pkgName)
	return b.String()
}
