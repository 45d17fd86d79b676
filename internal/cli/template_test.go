package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/task"
)

func TestTemplateCmd_Stdout(t *testing.T) {
	stdout, stderr, code := runCLI(t, "template")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, templateCSV, stdout)
}

func TestTemplateCmd_TOMLToFile(t *testing.T) {
	dir := inTempDir(t)
	out := filepath.Join(dir, "tasks.toml")

	_, stderr, code := runCLI(t, "template", "--format", "toml", "-o", out)
	require.Equal(t, 0, code, stderr)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	tasks, err := task.ParseTOML(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, task.Template(), tasks)
}

func TestTemplateCmd_RefusesOverwrite(t *testing.T) {
	dir := inTempDir(t)
	out := writeFile(t, dir, "tasks.csv", "keep me")

	_, stderr, code := runCLI(t, "template", "-o", out)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "use --force")

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(raw))

	_, stderr, code = runCLI(t, "template", "-o", out, "--force")
	require.Equal(t, 0, code, stderr)
	raw, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, templateCSV, string(raw))
}

func TestTemplateCmd_BadFormat(t *testing.T) {
	_, stderr, code := runCLI(t, "template", "--format", "json")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no template")
}
