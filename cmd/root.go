package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Bitlatte/quill/internal/config"
)

var (
	cfgFile   string
	sourceDir string
	verbose   bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "quill is a static site generator",
	Long: `quill takes a directory of Markdown content with YAML front matter,
renders each record against an HTML layout, and emits a static site
along with any passthrough assets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if logger, err = newLogger(verbose); err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		// "new" scaffolds a site that does not exist yet, so there is no
		// config to load for it.
		if cmd.Name() == "new" {
			return nil
		}
		if cfg, err = config.Load(sourceDir, cfgFile); err != nil {
			return err
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <source>/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&sourceDir, "source", "s", ".", "site root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func newLogger(verbose bool) (*zap.Logger, error) {
	c := zap.NewDevelopmentConfig()
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return c.Build()
}
