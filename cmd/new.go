package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/quill/internal/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new site",
	Long: `The new command creates a starter site: a config.yaml, a set of
layouts with shared partials, example content, and a stylesheet.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := scaffold.Create(name); err != nil {
			return err
		}
		fmt.Printf("Created site %q. Next steps:\n\n", name)
		fmt.Printf("  cd %s\n", name)
		fmt.Println("  quill serve")
		fmt.Println()
		fmt.Println("Edit content/ and layouts/ to make the site yours.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
