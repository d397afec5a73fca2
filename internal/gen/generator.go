package gen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"insertable-generator/internal/config"
	"insertable-generator/internal/diagnostic"
	"insertable-generator/internal/emit"
	"insertable-generator/internal/load"
	"insertable-generator/internal/parse"
	"insertable-generator/internal/record"
	"insertable-generator/internal/synth"
)

// DefaultHeader marks generated files.
const DefaultHeader = "Code generated by insertable-generator. DO NOT EDIT."

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Config holds naming and directive settings.
	Config *config.Config
	// Header is the comment written at the top of generated files.
	Header string
	// Workers bounds the number of records synthesized concurrently.
	Workers int
	// DebugUnformatted writes an ".unformatted" sidecar when formatting fails.
	DebugUnformatted bool
	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Config:  config.Default(),
		Header:  DefaultHeader,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Generator turns loaded source files into generated files.
type Generator struct {
	config GeneratorConfig
	logger *slog.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.Config == nil {
		cfg.Config = config.Default()
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Generator{config: cfg, logger: logger}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Path is where the file is written, next to its source.
	Path string
	// Source is the path of the file the records were read from.
	Source string
	// Records are the names of the generated types in order.
	Records []string
	// Content is the formatted Go source code.
	Content []byte
}

// Result holds the records of one source file before emission.
type Result struct {
	Unit    load.Unit
	Inputs  []*record.Record
	Outputs []*record.Record
}

// Transform parses and synthesizes every selected record of units.
// Records are independent: all of them are attempted and every failure is
// returned, joined. Results are only returned when nothing failed.
func (g *Generator) Transform(ctx context.Context, units []load.Unit) ([]Result, error) {
	results := make([]Result, len(units))

	var errs []error

	type job struct{ unit, rec int }

	var jobs []job

	for i, u := range units {
		recs, err := parse.File(u.Fset, u.File, g.config.Config.Parse())
		if err != nil {
			errs = append(errs, err)
		}

		g.logger.Debug("parsed source file", "file", u.Filename, "records", len(recs))

		results[i] = Result{
			Unit:    u,
			Inputs:  recs,
			Outputs: make([]*record.Record, len(recs)),
		}

		for j := range recs {
			jobs = append(jobs, job{i, j})
		}
	}

	opts := g.config.Config.Synth()
	jobErrs := make([]error, len(jobs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.config.Workers)

	for k, jb := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			in := results[jb.unit].Inputs[jb.rec]

			out, err := synth.Synthesize(in, opts)
			if err != nil {
				jobErrs[k] = err
				return nil
			}

			results[jb.unit].Outputs[jb.rec] = out

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	errs = append(errs, jobErrs...)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return results, nil
}

// Generate runs the pipeline and emits one file per source file that has
// records selected for generation.
func (g *Generator) Generate(ctx context.Context, units []load.Unit) ([]GeneratedFile, error) {
	results, err := g.Transform(ctx, units)
	if err != nil {
		return nil, err
	}

	var files []GeneratedFile

	for _, res := range results {
		if len(res.Outputs) == 0 {
			continue
		}

		file, err := g.emitFile(res)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", res.Unit.Filename, err)
		}

		files = append(files, file)
	}

	return files, nil
}

// Check runs the pipeline without emitting and collects every diagnostic.
func (g *Generator) Check(ctx context.Context, units []load.Unit) *diagnostic.Diagnostics {
	d := &diagnostic.Diagnostics{}

	_, err := g.Transform(ctx, units)
	d.Add(err)

	return d
}

func (g *Generator) emitFile(res Result) (GeneratedFile, error) {
	path := res.Unit.OutputName(g.config.Config.OutputSuffix)

	names := make([]string, 0, len(res.Outputs))
	for i, out := range res.Outputs {
		names = append(names, out.Name)
		g.logger.Info("generated record", "from", res.Inputs[i].Name, "to", out.Name, "fields", len(out.Fields))
	}

	content, err := emit.File(emit.FileConfig{
		Filename:        path,
		Package:         res.Unit.Package,
		Header:          g.config.Header,
		BuildConstraint: res.Unit.BuildConstraint(),
		Imports:         res.Unit.Imports(),
		Records:         res.Outputs,
	})
	if err != nil {
		if g.config.DebugUnformatted {
			if werr := writeDebugUnformatted(path, content); werr != nil {
				g.logger.Warn("writing unformatted sidecar", "file", path, "error", werr)
			}
		}

		return GeneratedFile{}, err
	}

	return GeneratedFile{
		Path:    path,
		Source:  res.Unit.Filename,
		Records: names,
		Content: content,
	}, nil
}
