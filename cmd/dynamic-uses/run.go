package main

import (
	"os"

	dynamicuses "github.com/jenseng/dynamic-uses"
	"github.com/jenseng/dynamic-uses/pkg/core"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Action entrypoint: compose the manifest and export env inputs",
	Long: `Reads the uses/with/env/prefix/upcase/on-conflict step inputs from the
environment the runner injected, writes the generated action manifest, and
sets the 'path' output. Errors surface as runner error annotations and a
non-zero exit code.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")

		act, err := core.New()
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}
		// Run reports its own failure through the command stream.
		_ = dynamicuses.Run(act, dynamicuses.RunOptions{ManifestDir: dir})
		os.Exit(act.ExitCode())
	},
}

func init() {
	runCmd.Flags().String("dir", "", "Directory for the generated action manifest")
	rootCmd.AddCommand(runCmd)
}
