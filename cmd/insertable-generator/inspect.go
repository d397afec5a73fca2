package main

import (
	"context"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"insertable-generator/internal/record"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [packages]",
	Short: "Dump parsed and derived records",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := commonOptions(cmd, args)
		opts.File = inspectFile

		return runInspect(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

var inspectFile string

func init() {
	inspectCmd.Flags().StringVarP(&inspectFile, "file", "f", "", "Inspect a single Go file instead of packages")
	rootCmd.AddCommand(inspectCmd)
}

// dumpConfig prints records without pointer addresses so output is stable.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func runInspect(ctx context.Context, opts runOptions, out io.Writer) error {
	g, units, err := opts.prepare(ctx)
	if err != nil {
		return err
	}

	results, err := g.Transform(ctx, units)
	if err != nil {
		return err
	}

	for _, res := range results {
		if len(res.Inputs) == 0 {
			continue
		}

		fmt.Fprintf(out, "== %s\n", res.Unit.Filename)

		for i := range res.Inputs {
			dumpConfig.Fdump(out, struct {
				Input  *record.Record
				Output *record.Record
			}{res.Inputs[i], res.Outputs[i]})
		}
	}

	return nil
}
