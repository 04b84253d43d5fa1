package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sscp/internal/ir"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <module.bc>",
	Short: "Print a serialized module in human-readable form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		mod, err := ir.ReadModuleFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if outPath != "" {
			// #nosec G304 -- path comes from the --out flag
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %q: %w", outPath, err)
			}
			defer func() {
				_ = f.Close()
			}()
			out = f
		}
		return ir.DumpModule(out, mod, ir.DumpOptions{})
	},
}

func init() {
	dumpCmd.Flags().String("out", "", "write the dump to a file instead of stdout")
}
