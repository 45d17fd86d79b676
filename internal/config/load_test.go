package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestFindConfigFile_WalksUp(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	want := writeConfig(t, root, "[project]\nname = \"x\"\n")

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindConfigFile_NotFound(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	// A directory with the config name is not a config file.
	require.NoError(t, os.Mkdir(filepath.Join(dir, ConfigFileName), 0o755))

	got, err := FindConfigFile(dir)
	require.NoError(t, err)
	assert.NotEqual(t, filepath.Join(dir, ConfigFileName), got)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), `
[project]
name = "launch"
time_unit = "weeks"
inputs = ["plans/**/*.csv"]

[output]
format = "mermaid"
critical_only = true

[editor]
default_duration = 2
id_prefix = "n"
`)

	cfg, md, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Project: ProjectConfig{Name: "launch", TimeUnit: "weeks", Inputs: []string{"plans/**/*.csv"}},
		Output:  OutputConfig{Format: "mermaid", CriticalOnly: true},
		Editor:  EditorConfig{DefaultDuration: 2, IDPrefix: "n"},
	}, cfg)
	assert.Empty(t, md.Undecoded())
	assert.True(t, md.IsDefined("output", "critical_only"))
}

func TestLoadFromFile_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, _, err := LoadFromFile(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeConfig(t, dir, "[project\nname = 1\n")
	_, _, err = LoadFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	rc, meta, err := Load(filepath.Join(dir, "none.toml"), dir, noEnv, nil)
	require.Error(t, err, "an explicit path must exist")
	assert.Nil(t, rc)
	assert.Nil(t, meta)
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeConfig(t, dir, "[output]\nformat = \"json\"\nbogus = 1\n")

	rc, meta, err := Load(path, "", noEnv, nil)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, path, rc.Path)
	assert.Equal(t, "json", rc.Config.Output.Format)
	assert.Equal(t, SourceFile, rc.Sources["output.format"])
	assert.Equal(t, DefaultTimeUnit, rc.Config.Project.TimeUnit)
	assert.Len(t, meta.Undecoded(), 1)
}

func TestLoad_DiscoversFromStartDir(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeConfig(t, root, "[project]\nname = \"found\"\n")
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	rc, _, err := Load("", sub, noEnv, nil)
	require.NoError(t, err)
	assert.Equal(t, "found", rc.Config.Project.Name)
	assert.Equal(t, filepath.Join(root, ConfigFileName), rc.Path)
}
