package internal_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/GuilhermmeDev/pert-path-visualizer"

// projectRoot returns the absolute path to the project root directory.
// It walks up from the current file's directory until it finds go.mod.
func projectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (no go.mod found in any parent directory)")
		}
		dir = parent
	}
}

func readFileContent(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read file: %s", path)
	return string(data)
}

// sourceFiles lists the non-test Go files of an internal package.
func sourceFiles(t *testing.T, pkgDir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(pkgDir, "*.go"))
	require.NoError(t, err)
	var files []string
	for _, m := range matches {
		if !strings.HasSuffix(m, "_test.go") {
			files = append(files, m)
		}
	}
	return files
}

var internalPackages = []string{
	"buildinfo", "cli", "config", "editor", "logging",
	"report", "schedule", "task", "tui",
}

func TestInternalPackages_Exist(t *testing.T) {
	t.Parallel()
	root := projectRoot(t)

	entries, err := os.ReadDir(filepath.Join(root, "internal"))
	require.NoError(t, err)

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	assert.ElementsMatch(t, internalPackages, dirs)
}

func TestInternalPackages_HavePackageComment(t *testing.T) {
	t.Parallel()
	root := projectRoot(t)

	for _, pkg := range internalPackages {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()
			found := false
			for _, file := range sourceFiles(t, filepath.Join(root, "internal", pkg)) {
				f, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.PackageClauseOnly|parser.ParseComments)
				require.NoError(t, err)
				assert.Equal(t, pkg, f.Name.Name, "%s declares the wrong package", file)
				if f.Doc != nil && strings.HasPrefix(f.Doc.Text(), "Package "+pkg+" ") {
					found = true
				}
			}
			assert.True(t, found, "internal/%s needs a // Package %s comment", pkg, pkg)
		})
	}
}

// init functions are reserved for cobra command registration.
func TestSourceFiles_InitOnlyInCLI(t *testing.T) {
	t.Parallel()
	root := projectRoot(t)

	for _, pkg := range internalPackages {
		if pkg == "cli" {
			continue
		}
		for _, file := range sourceFiles(t, filepath.Join(root, "internal", pkg)) {
			assert.NotContains(t, readFileContent(t, file), "func init()",
				"%s must not contain init() functions", file)
		}
	}
}

// The engine stays free of presentation and I/O layers.
func TestSchedule_ImportsNoSiblings(t *testing.T) {
	t.Parallel()
	root := projectRoot(t)

	for _, file := range sourceFiles(t, filepath.Join(root, "internal", "schedule")) {
		f, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			assert.NotContains(t, imp.Path.Value, modulePath+"/internal/",
				"%s imports %s", filepath.Base(file), imp.Path.Value)
		}
	}
}

func TestGoMod_ModuleAndDirective(t *testing.T) {
	t.Parallel()
	content := readFileContent(t, filepath.Join(projectRoot(t), "go.mod"))

	assert.Contains(t, content, "module "+modulePath+"\n")
	assert.Contains(t, content, "go 1.24")
	assert.NotContains(t, content, "replace ", "go.mod must not contain replace directives")
}

func TestGoMod_DirectDependencies(t *testing.T) {
	t.Parallel()
	content := readFileContent(t, filepath.Join(projectRoot(t), "go.mod"))

	deps := []string{
		"github.com/spf13/cobra",
		"github.com/spf13/pflag",
		"github.com/charmbracelet/bubbletea",
		"github.com/charmbracelet/bubbles",
		"github.com/charmbracelet/lipgloss",
		"github.com/charmbracelet/huh",
		"github.com/charmbracelet/log",
		"github.com/muesli/termenv",
		"github.com/BurntSushi/toml",
		"github.com/bmatcuk/doublestar/v4",
		"github.com/cespare/xxhash/v2",
		"github.com/xuri/excelize/v2",
		"github.com/emicklei/dot",
		"golang.org/x/sync",
		"github.com/stretchr/testify",
	}
	for _, dep := range deps {
		t.Run(dep, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, content, "\t"+dep+" v", "go.mod must require %s", dep)
		})
	}
}

func TestMainGo(t *testing.T) {
	t.Parallel()
	content := readFileContent(t, filepath.Join(projectRoot(t), "cmd", "pertpath", "main.go"))

	assert.Contains(t, content, "package main")
	assert.Contains(t, content, "func main()")
	assert.Contains(t, content, modulePath+"/internal/cli")
}
