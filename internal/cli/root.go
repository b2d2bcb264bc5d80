// Package cli implements the wlog command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:     "wlog",
	Short:   "Replay captured request workloads against an HTTP server",
	Version: version,
	Long: `wlog replays a previously captured sequence of request targets from a
flat, NUL-delimited workload log, issuing the exact same requests in the
exact same order as during capture. Logs may carry per-request header
blocks embedded alongside each target.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(inspectCmd)
	RootCmd.AddCommand(buildCmd)
	RootCmd.AddCommand(sampleCmd)
}
