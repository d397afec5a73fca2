package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insertable-generator/internal/emit"
)

func TestPackages(t *testing.T) {
	units, err := Packages(t.Context(), "_insertable.go", "insertable-generator/examples/store")
	require.NoError(t, err)
	require.Len(t, units, 1)

	u := units[0]
	assert.Equal(t, "store", u.Package)
	assert.Equal(t, "types.go", filepath.Base(u.Filename))
	assert.True(t, filepath.IsAbs(u.Filename))
	assert.NotNil(t, u.File)
	assert.NotNil(t, u.Fset)
	assert.Equal(t, []emit.Import{{Path: "time"}}, u.Imports())
}

func TestPackages_WithoutSkip(t *testing.T) {
	units, err := Packages(t.Context(), "", "insertable-generator/examples/store")
	require.NoError(t, err)
	require.Len(t, units, 2)

	assert.Equal(t, "types.go", filepath.Base(units[0].Filename))
	assert.Equal(t, "types_insertable.go", filepath.Base(units[1].Filename))
}

func TestPackages_Error(t *testing.T) {
	_, err := Packages(t.Context(), "", "insertable-generator/does/not/exist")
	require.Error(t, err)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.go")
	src := `//go:build linux

package model

import (
	_ "embed"
	"C"
	db "database/sql"
	"time"
)

type User struct {
	ID   int
	Conn *db.DB
	At   time.Time
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	u, err := File(path)
	require.NoError(t, err)

	assert.Equal(t, path, u.Filename)
	assert.Equal(t, "model", u.Package)
	assert.Equal(t, "//go:build linux", u.BuildConstraint())
	assert.Equal(t, []emit.Import{
		{Name: "db", Path: "database/sql"},
		{Path: "time"},
	}, u.Imports())
	assert.Equal(t, filepath.Join(dir, "user_insertable.go"), u.OutputName("_insertable.go"))
}

func TestFile_NoBuildConstraint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.go")
	require.NoError(t, os.WriteFile(path, []byte("// Package model.\npackage model\n\n//go:build ignore\ntype T struct{}\n"), 0o644))

	u, err := File(path)
	require.NoError(t, err)
	assert.Empty(t, u.BuildConstraint())
	assert.Empty(t, u.Imports())
}

func TestFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := File(filepath.Join(dir, "missing.go"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")

	bad := filepath.Join(dir, "bad.go")
	require.NoError(t, os.WriteFile(bad, []byte("package model\ntype {"), 0o644))

	_, err = File(bad)
	require.Error(t, err)
}
