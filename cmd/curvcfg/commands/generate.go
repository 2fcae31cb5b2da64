package commands

import (
	"github.com/spf13/cobra"

	"github.com/curvhdl/curvcfg/pkg/pipeline"
	"github.com/curvhdl/curvcfg/pkg/tomlio"
)

func newGenerateCommand() *cobra.Command {
	var (
		mergedPath   string
		outDir       string
		artifacts    []string
		forceRewrite bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate build artifacts from a merged TOML file",
		Long: `Regenerate artifacts from a previously merged TOML file without
re-reading the original profiles and overlays.

The file's schema section is recompiled and its configuration section
resolved against it, so a hand-edited merged file fails the same
validation a fresh merge would.`,
		Example: `  # Regenerate all artifacts
  curvcfg generate --merged build/merged_config.toml --out-dir build/cfg

  # Regenerate only the SystemVerilog package
  curvcfg generate --merged build/merged_config.toml --out-dir build/cfg \
    --artifact svpkg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newRunLogger()
			if err != nil {
				return err
			}

			tags, err := parseArtifacts(artifacts)
			if err != nil {
				return err
			}

			p := pipeline.New(tomlio.NewCodec(), log)
			result, err := p.Generate(cmd.Context(), pipeline.GenerateRequest{
				MergedTOMLPath: mergedPath,
				OutDir:         outDir,
				Artifacts:      tags,
				OnlyIfChanged:  !forceRewrite,
			})
			if err != nil {
				return err
			}

			log.Infof("generate complete, fingerprint %s", result.Fingerprint)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mergedPath, "merged", "m", "", "merged TOML input path")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "artifact output directory")
	cmd.Flags().StringSliceVarP(&artifacts, "artifact", "a", nil, "artifact to emit (mk, env, svh, svpkg, all), repeatable")
	cmd.Flags().BoolVar(&forceRewrite, "force", false, "rewrite outputs even when unchanged")
	cmd.MarkFlagRequired("merged")
	cmd.MarkFlagRequired("out-dir")

	return cmd
}
