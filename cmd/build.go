package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/quill/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site into the output directory",
	Long: `The build command reads Markdown files from '<source>/content/',
parses their front matter, applies layouts from '<source>/layouts/',
copies assets from '<source>/static/', and writes the finished site to
the configured output directory (default '<source>/public/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild()
	},
}

func runBuild() error {
	b := site.New(sourceDir, cfg, logger)
	start := time.Now()
	sum, err := b.Build()
	if err != nil {
		return err
	}
	fmt.Printf("Built %d page(s), copied %d static file(s), skipped %d record(s) in %s\n",
		sum.Rendered, sum.Static, sum.Skipped, time.Since(start).Round(time.Millisecond))
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
