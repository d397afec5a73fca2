package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, "New", c.Prefix)
	assert.Equal(t, "id", c.KeyField)
	assert.Equal(t, "insertable:new", c.Directive)
	assert.Equal(t, "orm:derive", c.DeriveDirective)
	assert.Equal(t, []string{"Identifiable"}, c.IdentityMarkers)
	assert.Equal(t, "_insertable.go", c.OutputSuffix)
}

func TestParse_PartialOverrides(t *testing.T) {
	c, err := Parse([]byte(`
prefix: Insert
derive_directive: db:derive
identity_markers: [Identifiable, HasKey]
`))
	require.NoError(t, err)

	assert.Equal(t, "1", c.Version)
	assert.Equal(t, "Insert", c.Prefix)
	assert.Equal(t, "db:derive", c.DeriveDirective)
	assert.Equal(t, "orm:table", c.TableDirective)

	so := c.Synth()
	assert.Equal(t, "Insert", so.Prefix)
	assert.Equal(t, "db:derive", so.Names.Derive)
	assert.Equal(t, []string{"Identifiable", "HasKey"}, so.IdentityMarkers)

	po := c.Parse()
	assert.Equal(t, "insertable:new", po.Directive)
	assert.Equal(t, "insertable:key", po.KeyDirective)
}

func TestParse_EmptyIdentityMarkers(t *testing.T) {
	c, err := Parse([]byte("identity_markers: []\n"))
	require.NoError(t, err)
	assert.Empty(t, c.IdentityMarkers)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "prefix: [", "failed to parse config YAML"},
		{"version", `version: "2"`, "unsupported config version"},
		{"prefix", "prefix: 1New", "prefix"},
		{"directive", "directive: Insertable", "is not a directive name"},
		{"directive with space", "table_directive: orm:table users", "is not a directive name"},
		{"duplicate directive", "table_directive: orm:derive", "are both"},
		{"marker", "insertable_marker: Foo(x)", "is not a Go identifier"},
		{"insertable is identity", "insertable_marker: Identifiable", "also an identity marker"},
		{"suffix", "output_suffix: _new.txt", "output_suffix"},
		{"test suffix", "output_suffix: _new_test.go", "output_suffix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insertable.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prefix: Create\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Create", c.Prefix)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOptional(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := LoadOptional("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	_, err = LoadOptional("explicit.yaml")
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}
