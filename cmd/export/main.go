package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lfg-site/internal/config"
	"lfg-site/internal/export"
	"lfg-site/internal/logging"
	"lfg-site/internal/starfield"
)

func main() {
	if err := newExportCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newExportCommand() *cobra.Command {
	var (
		outDir    string
		target    string
		basePath  string
		assetPfx  string
		apiBase   string
		starCount int
		starSpeed float64
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the site to static files",
		Long: `Render every page of the LFG.tech site to DIR/<path>/index.html,
together with 404.html, the starfield image and the static assets.

The github-pages target serves under /LFG and adds the 404 redirect
scripts; the vercel target serves from the root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(logging.Options{Level: logLevel})

			switch target {
			case config.TargetGitHubPages, config.TargetVercel:
			default:
				return fmt.Errorf("unknown target %q (want %s or %s)", target, config.TargetGitHubPages, config.TargetVercel)
			}

			defBase, defAsset := config.TargetPaths(target)
			if !cmd.Flags().Changed("base-path") {
				basePath = defBase
			}
			if !cmd.Flags().Changed("asset-prefix") {
				assetPfx = defAsset
				if cmd.Flags().Changed("base-path") {
					assetPfx = basePath
				}
			}

			res, err := export.Run(export.Options{
				OutDir:      outDir,
				Target:      target,
				BasePath:    basePath,
				AssetPrefix: assetPfx,
				APIBase:     apiBase,
				Stars:       starfield.Options{Count: starCount, Speed: starSpeed},
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d files to %s\n", len(res.Files), outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
	cmd.Flags().StringVar(&target, "target", config.TargetGitHubPages, "hosting target: github-pages or vercel")
	cmd.Flags().StringVar(&basePath, "base-path", "", "override the target's base path")
	cmd.Flags().StringVar(&assetPfx, "asset-prefix", "", "override the asset prefix (defaults to the base path)")
	cmd.Flags().StringVar(&apiBase, "api-base", "", "absolute URL of the chat and contact API")
	cmd.Flags().IntVar(&starCount, "star-count", starfield.PageOptions.Count, "starfield particle count")
	cmd.Flags().Float64Var(&starSpeed, "star-speed", starfield.PageOptions.Speed, "starfield speed")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level")

	return cmd
}
