package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/logging"
)

//go:embed templates/pertpath.toml.tmpl
var templateFS embed.FS

const configTemplatePath = "templates/pertpath.toml.tmpl"

// ErrConfigExists is returned when pertpath.toml exists and force is off.
var ErrConfigExists = errors.New("config file already exists")

// TemplateVars are substituted into the generated pertpath.toml.
type TemplateVars struct {
	ProjectName string
	TimeUnit    string
	Inputs      []string
}

// RenderConfig renders a pertpath.toml for vars. Empty fields fall back to
// the defaults.
func RenderConfig(vars TemplateVars) ([]byte, error) {
	if strings.TrimSpace(vars.TimeUnit) == "" {
		vars.TimeUnit = DefaultTimeUnit
	}
	if len(vars.Inputs) == 0 {
		vars.Inputs = []string{DefaultInput}
	}

	raw, err := templateFS.ReadFile(configTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("reading embedded template: %w", err)
	}
	tmpl, err := template.New(ConfigFileName).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing config template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return nil, fmt.Errorf("executing config template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteConfigFile renders pertpath.toml into dir and returns its path.
// An existing file is only replaced when force is set.
func WriteConfigFile(dir string, vars TemplateVars, force bool) (string, error) {
	dest := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(dest); err == nil && !force {
		return dest, fmt.Errorf("%s: %w (use --force to overwrite)", dest, ErrConfigExists)
	}

	content, err := RenderConfig(vars)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	logging.New("config").Debug("wrote config file", "path", dest)
	return dest, nil
}
