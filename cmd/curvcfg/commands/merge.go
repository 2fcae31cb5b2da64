package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/curvhdl/curvcfg/pkg/pipeline"
	"github.com/curvhdl/curvcfg/pkg/schema"
	"github.com/curvhdl/curvcfg/pkg/tomlio"
)

func newMergeCommand() *cobra.Command {
	var (
		configPaths  []string
		schemaPaths  []string
		outDir       string
		artifacts    []string
		mergedOut    string
		depOut       string
		rootVars     []string
		header       string
		forceRewrite bool
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge config files and emit build artifacts",
		Long: `Merge profile and overlay TOML files with later-file-wins precedence,
compile the schema fragments, resolve every declared variable and emit the
selected artifacts.

With --merged-out the run also writes the merged single-file form, and
with --dep-out a make dependency stanza naming every input file, so a
makefile can rebuild the merged TOML when any input changes.`,
		Example: `  # Merge a profile with one overlay and emit all artifacts
  curvcfg merge --schema cfg/schema.toml \
    --config cfg/profiles/nexys.toml --config cfg/overlays/sim.toml \
    --out-dir build/cfg

  # Also write the merged TOML and its dep file
  curvcfg merge --schema cfg/schema.toml --config cfg/profiles/nexys.toml \
    --out-dir build/cfg --merged-out build/merged_config.toml \
    --dep-out build/merged_config.toml.d --root-var CURV_ROOT=/work/repo

  # Emit only the makefile fragment
  curvcfg merge --schema cfg/schema.toml --config cfg/profiles/nexys.toml \
    --out-dir build/cfg --artifact mk`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newRunLogger()
			if err != nil {
				return err
			}

			tags, err := parseArtifacts(artifacts)
			if err != nil {
				return err
			}
			vars, err := parseRootVars(rootVars)
			if err != nil {
				return err
			}

			p := pipeline.New(tomlio.NewCodec(), log)
			result, err := p.Run(cmd.Context(), pipeline.Request{
				ConfigPaths:    configPaths,
				SchemaPaths:    schemaPaths,
				OutDir:         outDir,
				Artifacts:      tags,
				MergedTOMLPath: mergedOut,
				DepFilePath:    depOut,
				RootVars:       vars,
				Header:         header,
				OnlyIfChanged:  !forceRewrite,
			})
			if err != nil {
				return err
			}

			log.Infof("merge complete, fingerprint %s", result.Fingerprint)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&configPaths, "config", "c", nil, "config file (profile or overlay), repeatable, later wins")
	cmd.Flags().StringSliceVarP(&schemaPaths, "schema", "s", nil, "schema fragment file, repeatable")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "artifact output directory")
	cmd.Flags().StringSliceVarP(&artifacts, "artifact", "a", nil, "artifact to emit (mk, env, svh, svpkg, all), repeatable")
	cmd.Flags().StringVar(&mergedOut, "merged-out", "", "merged TOML output path (optional)")
	cmd.Flags().StringVar(&depOut, "dep-out", "", "dep file output path (requires --merged-out)")
	cmd.Flags().StringSliceVar(&rootVars, "root-var", nil, "dep file root substitution VAR=DIR, repeatable")
	cmd.Flags().StringVar(&header, "header", "", "comment line for the merged TOML file")
	cmd.Flags().BoolVar(&forceRewrite, "force", false, "rewrite outputs even when unchanged")
	cmd.MarkFlagRequired("schema")
	cmd.MarkFlagRequired("out-dir")

	return cmd
}

// parseArtifacts maps CLI artifact tokens to canonical tags.
func parseArtifacts(tokens []string) ([]schema.Artifact, error) {
	var tags []schema.Artifact
	for _, tok := range tokens {
		tag, err := schema.ParseArtifact(tok)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// parseRootVars parses repeated VAR=DIR flags.
func parseRootVars(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, dir, ok := strings.Cut(pair, "=")
		if !ok || name == "" || dir == "" {
			return nil, fmt.Errorf("invalid root var %q, want VAR=DIR", pair)
		}
		vars[name] = dir
	}
	return vars, nil
}
