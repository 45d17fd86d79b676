package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDebug_Defaults(t *testing.T) {
	inTempDir(t)

	stdout, stderr, code := runCLI(t, "config", "debug")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "Configuration Debug")
	assert.Contains(t, stdout, "Config file: none found")
	assert.Contains(t, stdout, "[project]")
	assert.Contains(t, stdout, "[output]")
	assert.Contains(t, stdout, "[editor]")
	assert.Regexp(t, `time_unit\s+= "days"\s+\(source: default\)`, stdout)
	assert.Regexp(t, `inputs\s+= \["tasks.csv"\]\s+\(source: default\)`, stdout)
	assert.Regexp(t, `default_duration\s+= 1\s+\(source: default\)`, stdout)
}

func TestConfigDebug_Sources(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, dir, "pertpath.toml", "[output]\ncritical_only = true\n")
	t.Setenv("PERTPATH_TIME_UNIT", "hours")

	stdout, stderr, code := runCLI(t, "config", "debug")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "pertpath.toml")
	assert.Regexp(t, `critical_only\s+= true\s+\(source: file\)`, stdout)
	assert.Regexp(t, `time_unit\s+= "hours"\s+\(source: env\)`, stdout)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode int
		want     []string
	}{
		{
			name:     "clean",
			content:  "[project]\nname = \"x\"\n",
			wantCode: 0,
			want:     []string{"No issues found."},
		},
		{
			name:     "warnings only",
			content:  "[project]\nname = \"x\"\nowner = \"ana\"\n",
			wantCode: 0,
			want:     []string{"Warnings:", "project.owner", "0 error(s), 1 warning(s)"},
		},
		{
			name:     "errors",
			content:  "[project]\nname = \"x\"\n[output]\nformat = \"xml\"\n[editor]\ndefault_duration = 0\n",
			wantCode: 1,
			want:     []string{"Errors:", "[output.format]", "[editor.default_duration]", "2 error(s)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := inTempDir(t)
			writeFile(t, dir, "pertpath.toml", tt.content)

			stdout, _, code := runCLI(t, "config", "validate")
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stdout, "Configuration Validation")
			for _, w := range tt.want {
				assert.Contains(t, stdout, w)
			}
		})
	}
}

func TestFmtHelpers(t *testing.T) {
	assert.Equal(t, `"a b"`, fmtStr("a b"))
	assert.Equal(t, "[]", fmtSlice(nil))
	assert.Equal(t, `["a", "b"]`, fmtSlice([]string{"a", "b"}))
}
