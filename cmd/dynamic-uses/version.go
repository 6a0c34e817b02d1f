package main

import (
	"fmt"

	dynamicuses "github.com/jenseng/dynamic-uses"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dynamic-uses",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dynamic-uses version %s\n", dynamicuses.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
