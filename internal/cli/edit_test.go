package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/editor"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/tui"
)

// stubEditor replaces the terminal editor and records its config.
func stubEditor(t *testing.T) *tui.AppConfig {
	t.Helper()
	orig := runEditor
	t.Cleanup(func() { runEditor = orig })

	got := &tui.AppConfig{}
	runEditor = func(cfg tui.AppConfig) error {
		*got = cfg
		return nil
	}
	return got
}

func TestEditCmd_LoadsFileWithConfig(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, dir, "plan.csv", templateCSV)
	writeFile(t, dir, "pertpath.toml", `[project]
name = "Launch"
time_unit = "weeks"

[editor]
default_duration = 3
id_prefix = "step-"
`)
	got := stubEditor(t)

	_, stderr, code := runCLI(t, "edit", "plan.csv")
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, "Launch", got.ProjectName)
	assert.Equal(t, "weeks", got.TimeUnit)
	assert.Equal(t, "plan.csv", got.Path)
	assert.Len(t, got.Tasks, 4)
	assert.Equal(t, editor.Options{IDPrefix: "step-", DefaultDuration: 3}, got.Editor)
}

func TestEditCmd_MissingFileStartsEmpty(t *testing.T) {
	inTempDir(t)
	got := stubEditor(t)

	_, stderr, code := runCLI(t, "edit")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "tasks.csv", got.Path)
	assert.Empty(t, got.Tasks)
	assert.Equal(t, editor.DefaultOptions(), got.Editor)
}

func TestEditCmd_RejectsNonCSV(t *testing.T) {
	inTempDir(t)
	stubEditor(t)

	_, stderr, code := runCLI(t, "edit", "plan.toml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "pertpath export plan.toml -o tasks.csv")
}

func TestEditPath(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		inputs []string
		want   string
	}{
		{name: "argument wins", args: []string{"a.csv"}, inputs: []string{"b.csv"}, want: "a.csv"},
		{name: "single input", inputs: []string{"plans/b.csv"}, want: "plans/b.csv"},
		{name: "glob input", inputs: []string{"plans/*.csv"}, want: "tasks.csv"},
		{name: "no inputs", want: "tasks.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, editPath(tt.args, tt.inputs))
		})
	}
}
