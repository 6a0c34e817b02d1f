package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dynamic-uses",
	Short: "Invoke a GitHub Action chosen at run time",
	Long: `dynamic-uses composes a composite-action manifest around an action
reference supplied as a step input, and exports sanitized environment
variables through the runner's workflow-command protocol.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
