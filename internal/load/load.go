package load

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"insertable-generator/internal/emit"
)

// LoadMode specifies what information to load from packages.
// Types are not needed: records are read from syntax only.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax

// Unit is one parsed source file.
type Unit struct {
	// Filename is the absolute path of the source file.
	Filename string
	// Package is the package name.
	Package string
	// File is the parsed file, comments included.
	File *ast.File
	// Fset is the file set File positions refer to.
	Fset *token.FileSet
}

// Packages loads the packages matching patterns and returns one Unit per
// non-test Go file, sorted by file name. Files ending in skipSuffix (the
// generator's own output) are skipped.
func Packages(ctx context.Context, skipSuffix string, patterns ...string) ([]Unit, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	var units []Unit

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			name := pkg.Fset.Position(file.Package).Filename

			if skipSuffix != "" && strings.HasSuffix(name, skipSuffix) {
				continue
			}

			units = append(units, Unit{
				Filename: name,
				Package:  pkg.Name,
				File:     file,
				Fset:     pkg.Fset,
			})
		}
	}

	sort.Slice(units, func(i, j int) bool {
		return units[i].Filename < units[j].Filename
	})

	return units, nil
}

// File parses a single Go source file.
func File(path string) (Unit, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Unit{}, fmt.Errorf("resolving %s: %w", path, err)
	}

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, abs, nil, parser.ParseComments)
	if err != nil {
		return Unit{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	return Unit{
		Filename: abs,
		Package:  file.Name.Name,
		File:     file,
		Fset:     fset,
	}, nil
}

// Imports returns the file's imports, excluding blank imports and "C".
func (u Unit) Imports() []emit.Import {
	var out []emit.Import

	for _, spec := range u.File.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil || path == "C" {
			continue
		}

		var name string
		if spec.Name != nil {
			name = spec.Name.Name
		}

		if name == "_" {
			continue
		}

		out = append(out, emit.Import{Name: name, Path: path})
	}

	return out
}

// BuildConstraint returns the file's "//go:build" line, or "".
func (u Unit) BuildConstraint() string {
	for _, cg := range u.File.Comments {
		if cg.Pos() >= u.File.Package {
			break
		}

		for _, c := range cg.List {
			if strings.HasPrefix(c.Text, "//go:build ") {
				return c.Text
			}
		}
	}

	return ""
}

// OutputName returns the path of the generated sibling file:
// "model/user.go" with suffix "_insertable.go" yields
// "model/user_insertable.go".
func (u Unit) OutputName(suffix string) string {
	return strings.TrimSuffix(u.Filename, ".go") + suffix
}
