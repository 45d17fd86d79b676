package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

// ValidationSeverity tells whether an issue makes the config unusable.
type ValidationSeverity string

const (
	// SeverityError marks a config that cannot be used.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning marks a config that works but is probably wrong.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue is one finding. Field is a dotted path such as
// "output.format".
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string
	Message  string
}

// ValidationResult holds every finding of a Validate run.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors reports whether any issue is an error.
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors()) > 0
}

// HasWarnings reports whether any issue is a warning.
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings()) > 0
}

// Errors returns the error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	return vr.filter(SeverityError)
}

// Warnings returns the warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	return vr.filter(SeverityWarning)
}

func (vr *ValidationResult) filter(sev ValidationSeverity) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// OutputFormats lists the accepted values of output.format.
var OutputFormats = []string{"table", "json", "csv", "mermaid", "dot"}

// Validate checks a resolved configuration. meta may be nil when no file
// was loaded; otherwise keys it did not decode are reported as warnings.
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	vr := &ValidationResult{}
	if cfg == nil {
		vr.add(SeverityError, "", "configuration is nil")
		return vr
	}

	validateProject(vr, &cfg.Project)
	validateOutput(vr, &cfg.Output)
	validateEditor(vr, &cfg.Editor)
	validateUnknownKeys(vr, meta)
	return vr
}

func validateProject(vr *ValidationResult, p *ProjectConfig) {
	if strings.TrimSpace(p.TimeUnit) == "" {
		vr.add(SeverityError, "project.time_unit", "must not be empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		vr.add(SeverityWarning, "project.name", "is empty; reports will be untitled")
	}
	if len(p.Inputs) == 0 {
		vr.add(SeverityWarning, "project.inputs", "is empty; commands will need file arguments")
	}
	for i, in := range p.Inputs {
		field := fmt.Sprintf("project.inputs[%d]", i)
		switch {
		case strings.TrimSpace(in) == "":
			vr.add(SeverityError, field, "must not be an empty string")
		case !doublestar.ValidatePathPattern(in):
			vr.add(SeverityError, field, fmt.Sprintf("invalid glob pattern %q", in))
		}
	}
}

func validateOutput(vr *ValidationResult, o *OutputConfig) {
	for _, f := range OutputFormats {
		if strings.EqualFold(strings.TrimSpace(o.Format), f) {
			return
		}
	}
	vr.add(SeverityError, "output.format",
		fmt.Sprintf("unrecognized format %q; must be one of: %s", o.Format, strings.Join(OutputFormats, ", ")))
}

func validateEditor(vr *ValidationResult, e *EditorConfig) {
	if e.DefaultDuration <= 0 {
		vr.add(SeverityError, "editor.default_duration",
			fmt.Sprintf("must be positive, got %d", e.DefaultDuration))
	}
	if strings.TrimSpace(e.IDPrefix) == "" {
		vr.add(SeverityWarning, "editor.id_prefix", "is empty; the default \"task-\" is used")
	}
}

func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}
	for _, key := range meta.Undecoded() {
		vr.add(SeverityWarning, key.String(), "unknown configuration key")
	}
}

func (vr *ValidationResult) add(sev ValidationSeverity, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{Severity: sev, Field: field, Message: message})
}
