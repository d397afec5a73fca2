package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"insertable-generator/internal/gen"
)

var genCmd = &cobra.Command{
	Use:   "gen [packages]",
	Short: "Generate New<Name> types next to their sources",
	Long: `Loads the given packages (default ".") and writes one <file>_insertable.go
per source file that declares marked types. Nothing is written if any
record fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := commonOptions(cmd, args)
		opts.File = genFile
		opts.Workers = genWorkers
		opts.DebugUnformatted = genDebugUnformatted

		return runGen(cmd.Context(), opts, genDryRun, cmd.OutOrStdout())
	},
}

var (
	genFile             string
	genDryRun           bool
	genWorkers          int
	genDebugUnformatted bool
)

func init() {
	genCmd.Flags().StringVarP(&genFile, "file", "f", "", "Process a single Go file instead of packages")
	genCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Print generated code instead of writing files")
	genCmd.Flags().IntVar(&genWorkers, "workers", 0, "Records synthesized concurrently (default GOMAXPROCS)")
	genCmd.Flags().BoolVar(&genDebugUnformatted, "debug-unformatted", false,
		"Write a .unformatted sidecar when formatting fails")
	rootCmd.AddCommand(genCmd)
}

func runGen(ctx context.Context, opts runOptions, dryRun bool, out io.Writer) error {
	g, units, err := opts.prepare(ctx)
	if err != nil {
		return err
	}

	files, err := g.Generate(ctx, units)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if dryRun {
		for _, f := range files {
			fmt.Fprintf(out, "// %s\n%s\n", f.Path, f.Content)
		}

		return nil
	}

	if err := gen.WriteFiles(files); err != nil {
		return err
	}

	for _, f := range files {
		opts.Logger.Info("wrote file", "path", f.Path, "records", len(f.Records))
	}

	return nil
}
