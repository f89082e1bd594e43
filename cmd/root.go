package cmd

import (
	"github.com/spf13/cobra"
)

var debugDump bool

var rootCmd = &cobra.Command{
	Use:   "magic4",
	Short: "Magic4 CLI — semantic analyzer for Mini programs",
	Long: `Magic4 runs the semantic front end over a parsed Mini program.

Commands:
  check  Run name and type analysis over a syntax tree document
`,
	SilenceUsage: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugDump, "debug", false, "dump the decoded syntax tree before analysis")

	rootCmd.AddCommand(CheckCmd)
}
