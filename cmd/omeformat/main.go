package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ome-nbo-tools/ome-nbo-formatter/cmd/omeformat/commands"
	"github.com/ome-nbo-tools/ome-nbo-formatter/logger"
)

var rootCmd = &cobra.Command{
	Use:   "omeformat",
	Short: "omeformat - XML Schema to LinkML converter",
	Long: `omeformat converts resolved XML Schema models into LinkML schemas.

The converter walks a parsed XSD object graph and produces a normalized
class/slot/enum model, preserving type inheritance, reference
semantics, choice-group exclusivity and key/keyref constraints.

Available commands:
  generate - Convert an XSD file into a LinkML schema
  inspect  - Show source model statistics for an XSD file
  version  - Show version information

Examples:
  omeformat generate ome.xsd -o ome.yaml     # Single-document output
  omeformat generate ome.xsd --partition     # One file per class
  omeformat generate ome.xsd --watch         # Regenerate on change
  omeformat inspect ome.xsd                  # Source model statistics`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output results and logs as JSON")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
