package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blocks",
		Short: "Corner-to-corner crowd crossing through a narrow passage",
		Long: `blocks runs the Blocks navigation scenario: four groups of agents start in
the corners of a square arena and cross to the opposite corner through the
gap left by four square obstacles. The run ends when every agent is within
the goal tolerance, or fails when the step ceiling is reached first.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Scenario YAML file (defaults to the built-in Blocks scenario)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newRunCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blocks version %s\n", version)
		},
	}
}
