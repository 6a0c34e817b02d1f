package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jenseng/dynamic-uses/pkg/core"
	"github.com/jenseng/dynamic-uses/pkg/envmap"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export a batch of key/value pairs as environment variables",
	Long: `Reads a flat YAML or JSON mapping from a file (or stdin when no file is
given), normalizes every key, applies the conflict policy, and exports each
pair through the workflow-command protocol.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		act, err := core.New()
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}
		if err := runExport(cmd, args, act); err != nil {
			act.SetFailed(err.Error())
		}
		os.Exit(act.ExitCode())
	},
}

func init() {
	exportCmd.Flags().String("prefix", "", "Prefix prepended to every normalized name")
	exportCmd.Flags().Bool("upcase", false, "Uppercase normalized names (default lowercase)")
	exportCmd.Flags().String("on-conflict", "overwrite", "Policy for already-defined names: overwrite|preserve|error")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string, act *core.Action) error {
	var raw []byte
	var err error
	if len(args) > 0 {
		raw, err = os.ReadFile(args[0])
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read batch: %w", err)
	}

	var entries map[string]any
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("parse batch: %w", err)
	}

	prefix, _ := cmd.Flags().GetString("prefix")
	upcase, _ := cmd.Flags().GetBool("upcase")
	onConflict, _ := cmd.Flags().GetString("on-conflict")
	opts, err := envmap.DecodeOptions(map[string]any{
		"prefix":      prefix,
		"upcase":      upcase,
		"on-conflict": onConflict,
	})
	if err != nil {
		return err
	}

	return envmap.NewExporter(act).ExportBatch(entries, opts)
}
