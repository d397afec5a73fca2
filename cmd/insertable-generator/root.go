package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"insertable-generator/internal/config"
	"insertable-generator/internal/gen"
	"insertable-generator/internal/load"
)

var rootCmd = &cobra.Command{
	Use:   "insertable-generator",
	Short: "Generate insert-only variants of ORM record types",
	Long: `insertable-generator derives a New<Name> struct from every struct marked
with //insertable:new. The derived struct has no id field, keeps the table
binding and the other annotations, and lists Insertable instead of
Identifiable in its derive directive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	verbose    bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "Path to the YAML configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
}

// newLogger returns a text logger writing to w.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// runOptions are the settings shared by the commands that run the pipeline.
type runOptions struct {
	ConfigPath       string
	File             string
	Patterns         []string
	Workers          int
	DebugUnformatted bool
	Logger           *slog.Logger
}

// prepare loads the configuration and the source files named by o.
func (o runOptions) prepare(ctx context.Context) (*gen.Generator, []load.Unit, error) {
	cfg, err := config.LoadOptional(o.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	gcfg := gen.DefaultGeneratorConfig()
	gcfg.Config = cfg
	gcfg.Logger = o.Logger
	gcfg.DebugUnformatted = o.DebugUnformatted

	if o.Workers > 0 {
		gcfg.Workers = o.Workers
	}

	units, err := o.units(ctx, cfg.OutputSuffix)
	if err != nil {
		return nil, nil, err
	}

	return gen.NewGenerator(gcfg), units, nil
}

func (o runOptions) units(ctx context.Context, skipSuffix string) ([]load.Unit, error) {
	if o.File != "" {
		u, err := load.File(o.File)
		if err != nil {
			return nil, err
		}

		return []load.Unit{u}, nil
	}

	patterns := o.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	units, err := load.Packages(ctx, skipSuffix, patterns...)
	if err != nil {
		return nil, err
	}

	o.Logger.Debug("loaded source files", "patterns", patterns, "files", len(units))

	return units, nil
}

func commonOptions(cmd *cobra.Command, args []string) runOptions {
	return runOptions{
		ConfigPath: configPath,
		Patterns:   args,
		Logger:     newLogger(cmd.ErrOrStderr(), verbose),
	}
}
