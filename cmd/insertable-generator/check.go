package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Report every problem with marked types without writing files",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := commonOptions(cmd, args)
		opts.File = checkFile

		return runCheck(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

var checkFile string

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Check a single Go file instead of packages")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(ctx context.Context, opts runOptions, out io.Writer) error {
	g, units, err := opts.prepare(ctx)
	if err != nil {
		return err
	}

	d := g.Check(ctx, units)
	if !d.HasErrors() {
		fmt.Fprintln(out, "ok")
		return nil
	}

	for _, e := range d.Errors {
		fmt.Fprintln(out, e)
	}

	return fmt.Errorf("%d problem(s) found", len(d.Errors))
}
