package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/curvhdl/curvcfg/pkg/emit"
	"github.com/curvhdl/curvcfg/pkg/merge"
	"github.com/curvhdl/curvcfg/pkg/resolve"
	"github.com/curvhdl/curvcfg/pkg/schema"
	"github.com/curvhdl/curvcfg/pkg/telemetry"
	"github.com/curvhdl/curvcfg/pkg/tomlio"
)

// Request describes one merge run. Paths are consumed in slice order:
// for ConfigPaths later files override earlier ones, for SchemaPaths the
// fragments must be disjoint.
type Request struct {
	// ConfigPaths are the profile and overlay files, lowest precedence
	// first.
	ConfigPaths []string

	// SchemaPaths are the schema fragment files. A file may appear in
	// both lists when it carries values next to its declarations.
	SchemaPaths []string

	// OutDir receives the artifact files named in DefaultOutfileNames.
	OutDir string

	// Artifacts selects which targets to emit. Empty means all four.
	Artifacts []schema.Artifact

	// MergedTOMLPath, when set, receives the merged single-file form.
	MergedTOMLPath string

	// DepFilePath, when set, receives a make dependency stanza naming
	// MergedTOMLPath as target and every input file as prerequisite.
	DepFilePath string

	// RootVars rewrites dep file prerequisites under the given directory
	// prefixes to $(VAR)/rest.
	RootVars map[string]string

	// Header is an optional comment line for the merged TOML file.
	Header string

	// OnlyIfChanged skips rewriting output files whose content is
	// already current.
	OnlyIfChanged bool
}

// Result reports what one run produced.
type Result struct {
	// Values is the resolved value set.
	Values *resolve.CfgValues

	// Fingerprint is the content hash of Values.
	Fingerprint string

	// Changed maps each emitted target to whether its file was replaced.
	Changed map[schema.Artifact]bool

	// MergedTOMLChanged reports whether the merged TOML file was
	// replaced. Always false when no merged TOML was requested.
	MergedTOMLChanged bool

	// DepFileChanged reports whether the dep file was replaced.
	DepFileChanged bool
}

// Pipeline runs the merge and generate flows with an injected codec and
// logger.
type Pipeline struct {
	codec tomlio.Codec
	log   *telemetry.Logger
}

// New creates a pipeline. A nil logger falls back to the default logger.
func New(codec tomlio.Codec, log *telemetry.Logger) *Pipeline {
	if log == nil {
		log = telemetry.FromContext(context.Background())
	}
	return &Pipeline{codec: codec, log: log.NewComponentLogger("pipeline")}
}

// Run executes the full merge flow: load, merge, combine, compile, resolve
// and emit. It returns the resolved values and per-file change flags, or
// the first typed error encountered.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	log := p.log.WithRunID(uuid.NewString())
	log.Debugf("merge run: %d config file(s), %d schema file(s)",
		len(req.ConfigPaths), len(req.SchemaPaths))

	schemaSources, err := tomlio.LoadSources(p.codec, req.SchemaPaths)
	if err != nil {
		return nil, err
	}
	configSources, err := tomlio.LoadSources(p.codec, req.ConfigPaths)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	combined, err := merge.Combine(schemaSources)
	if err != nil {
		return nil, err
	}
	catalog, err := schema.Compile(schemaSources)
	if err != nil {
		return nil, err
	}
	log.Debugf("catalog: %d scalar(s), %d array(s)", len(catalog.Names()), len(catalog.ArrayNames()))

	docs := make([]map[string]any, len(configSources))
	for i, src := range configSources {
		docs[i] = src.Doc
	}
	mergedConfig := merge.Merge(docs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	values, err := resolve.Resolve(mergedConfig, catalog)
	if err != nil {
		return nil, err
	}
	log.Infof("resolved %d value(s), fingerprint %s", values.Len(), values.Fingerprint())

	result := &Result{
		Values:      values,
		Fingerprint: values.Fingerprint(),
	}

	// Render everything up front. A render error must not leave any file
	// behind, so the writes only start once all content exists.
	var mergedContent string
	if req.MergedTOMLPath != "" {
		_, schemaDoc := emit.SplitMerged(combined)
		m := &emit.MergedTOML{
			Config: mergedConfig,
			Schema: schemaDoc,
			Header: req.Header,
		}
		mergedContent, err = m.Render(p.codec)
		if err != nil {
			return nil, err
		}
	}
	var depContent string
	if req.DepFilePath != "" {
		if req.MergedTOMLPath == "" {
			return nil, fmt.Errorf("dep file requested without a merged TOML target")
		}
		d := &emit.DepFile{
			Target:   req.MergedTOMLPath,
			Prereqs:  append(append([]string{}, req.SchemaPaths...), req.ConfigPaths...),
			RootVars: req.RootVars,
		}
		depContent = d.Render()
	}

	if req.MergedTOMLPath != "" {
		changed, err := emit.WriteFileIfChanged(req.MergedTOMLPath, []byte(mergedContent), req.OnlyIfChanged)
		if err != nil {
			return nil, fmt.Errorf("failed to write merged TOML: %w", err)
		}
		result.MergedTOMLChanged = changed
		log.WithFile(req.MergedTOMLPath).Debugf("merged TOML changed=%v", changed)
	}
	if req.DepFilePath != "" {
		changed, err := emit.WriteFileIfChanged(req.DepFilePath, []byte(depContent), req.OnlyIfChanged)
		if err != nil {
			return nil, fmt.Errorf("failed to write dep file: %w", err)
		}
		result.DepFileChanged = changed
	}

	if req.OutDir != "" {
		changed, err := p.emitArtifacts(log, values, req.OutDir, req.Artifacts, req.OnlyIfChanged)
		if err != nil {
			return nil, err
		}
		result.Changed = changed
	}
	return result, nil
}

// GenerateRequest describes one generate run: artifacts rebuilt from a
// previously written merged TOML file.
type GenerateRequest struct {
	// MergedTOMLPath is the merged TOML input.
	MergedTOMLPath string

	// OutDir receives the artifact files.
	OutDir string

	// Artifacts selects which targets to emit. Empty means all four.
	Artifacts []schema.Artifact

	// OnlyIfChanged skips rewriting output files whose content is
	// already current.
	OnlyIfChanged bool
}

// Generate rebuilds artifacts from a merged TOML file. The file's schema
// section is recompiled and its config section resolved against it, so a
// hand-edited merged file fails the same validation a fresh merge would.
func (p *Pipeline) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	log := p.log.WithRunID(uuid.NewString())
	log.WithFile(req.MergedTOMLPath).Debug("generate run")

	src, err := tomlio.LoadSource(p.codec, req.MergedTOMLPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config, schemaDoc := emit.SplitMerged(src.Doc)
	catalog, err := schema.Compile([]tomlio.Source{{Path: src.Path, Doc: schemaDoc}})
	if err != nil {
		return nil, err
	}
	values, err := resolve.Resolve(config, catalog)
	if err != nil {
		return nil, err
	}
	log.Infof("resolved %d value(s), fingerprint %s", values.Len(), values.Fingerprint())

	changed, err := p.emitArtifacts(log, values, req.OutDir, req.Artifacts, req.OnlyIfChanged)
	if err != nil {
		return nil, err
	}
	return &Result{
		Values:      values,
		Fingerprint: values.Fingerprint(),
		Changed:     changed,
	}, nil
}

func (p *Pipeline) emitArtifacts(log *telemetry.Logger, values *resolve.CfgValues, outDir string, tags []schema.Artifact, onlyIfChanged bool) (map[schema.Artifact]bool, error) {
	paths := emit.DefaultPaths(outDir)
	if len(tags) > 0 {
		selected := make(map[schema.Artifact]string, len(tags))
		for _, tag := range tags {
			if tag == schema.ArtifactAll {
				selected = emit.DefaultPaths(outDir)
				break
			}
			selected[tag] = paths[tag]
		}
		paths = selected
	}

	changed, err := emit.NewEmitter(values, paths, onlyIfChanged).Emit()
	if err != nil {
		return nil, err
	}
	for tag, c := range changed {
		log.WithArtifact(string(tag)).WithFile(paths[tag]).Debugf("changed=%v", c)
	}
	return changed, nil
}
