package config

import (
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/logging"
)

// ConfigSource identifies the layer a resolved value came from.
type ConfigSource string

const (
	// SourceDefault is a built-in default.
	SourceDefault ConfigSource = "default"
	// SourceFile is a value from pertpath.toml.
	SourceFile ConfigSource = "file"
	// SourceEnv is a value from a PERTPATH_* environment variable.
	SourceEnv ConfigSource = "env"
	// SourceCLI is a value from a command-line flag.
	SourceCLI ConfigSource = "cli"
)

// Environment variables read by Resolve.
const (
	EnvProjectName  = "PERTPATH_PROJECT_NAME"
	EnvTimeUnit     = "PERTPATH_TIME_UNIT"
	EnvOutputFormat = "PERTPATH_OUTPUT_FORMAT"
	EnvCriticalOnly = "PERTPATH_CRITICAL_ONLY"
)

// ResolvedConfig is the merged configuration. Sources is keyed by dotted
// path, e.g. "output.format".
type ResolvedConfig struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Path is the config file that was read, empty when none was.
	Path string
}

// CLIOverrides carries flag values. A nil pointer or nil slice means the
// flag was not given.
type CLIOverrides struct {
	ProjectName  *string
	TimeUnit     *string
	OutputFormat *string
	CriticalOnly *bool
	Inputs       []string
}

// EnvFunc looks up an environment variable, like os.LookupEnv.
type EnvFunc func(key string) (string, bool)

// Resolve layers defaults, file, environment and CLI overrides, later
// layers winning. When meta is given, a file key counts as set whenever
// it appears in the file, so "critical_only = false" overrides a true
// default. Without meta only non-zero file values override.
func Resolve(defaults, fileConfig *Config, meta *toml.MetaData, envFn EnvFunc, overrides *CLIOverrides) *ResolvedConfig {
	if defaults == nil {
		defaults = &Config{}
	}
	if envFn == nil {
		envFn = func(string) (string, bool) { return "", false }
	}
	if overrides == nil {
		overrides = &CLIOverrides{}
	}

	rc := &ResolvedConfig{
		Config:  copyConfig(defaults),
		Sources: make(map[string]ConfigSource),
	}
	for _, key := range knownKeys {
		rc.Sources[key] = SourceDefault
	}

	if fileConfig != nil {
		resolveFromFile(rc, fileConfig, meta)
	}
	resolveFromEnv(rc, envFn)
	resolveFromCLI(rc, overrides)
	return rc
}

// knownKeys lists every configuration key in file order.
var knownKeys = []string{
	"project.name",
	"project.time_unit",
	"project.inputs",
	"output.format",
	"output.critical_only",
	"editor.default_duration",
	"editor.id_prefix",
}

// KnownKeys returns the dotted paths of all configuration keys.
func KnownKeys() []string {
	out := make([]string, len(knownKeys))
	copy(out, knownKeys)
	return out
}

func resolveFromFile(rc *ResolvedConfig, file *Config, meta *toml.MetaData) {
	set := func(key string, nonZero bool) bool {
		var present bool
		if meta != nil {
			present = meta.IsDefined(strings.Split(key, ".")...)
		} else {
			present = nonZero
		}
		if present {
			rc.Sources[key] = SourceFile
		}
		return present
	}

	c := rc.Config
	if set("project.name", file.Project.Name != "") {
		c.Project.Name = file.Project.Name
	}
	if set("project.time_unit", file.Project.TimeUnit != "") {
		c.Project.TimeUnit = file.Project.TimeUnit
	}
	if set("project.inputs", len(file.Project.Inputs) > 0) {
		c.Project.Inputs = copyStrings(file.Project.Inputs)
	}
	if set("output.format", file.Output.Format != "") {
		c.Output.Format = file.Output.Format
	}
	if set("output.critical_only", file.Output.CriticalOnly) {
		c.Output.CriticalOnly = file.Output.CriticalOnly
	}
	if set("editor.default_duration", file.Editor.DefaultDuration != 0) {
		c.Editor.DefaultDuration = file.Editor.DefaultDuration
	}
	if set("editor.id_prefix", file.Editor.IDPrefix != "") {
		c.Editor.IDPrefix = file.Editor.IDPrefix
	}
}

func resolveFromEnv(rc *ResolvedConfig, envFn EnvFunc) {
	c := rc.Config
	if val, ok := envFn(EnvProjectName); ok {
		c.Project.Name = val
		rc.Sources["project.name"] = SourceEnv
	}
	if val, ok := envFn(EnvTimeUnit); ok {
		c.Project.TimeUnit = val
		rc.Sources["project.time_unit"] = SourceEnv
	}
	if val, ok := envFn(EnvOutputFormat); ok {
		c.Output.Format = val
		rc.Sources["output.format"] = SourceEnv
	}
	if val, ok := envFn(EnvCriticalOnly); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			logging.New("config").Warn("ignoring invalid boolean", "env", EnvCriticalOnly, "value", val)
		} else {
			c.Output.CriticalOnly = b
			rc.Sources["output.critical_only"] = SourceEnv
		}
	}
}

func resolveFromCLI(rc *ResolvedConfig, overrides *CLIOverrides) {
	c := rc.Config
	if overrides.ProjectName != nil {
		c.Project.Name = *overrides.ProjectName
		rc.Sources["project.name"] = SourceCLI
	}
	if overrides.TimeUnit != nil {
		c.Project.TimeUnit = *overrides.TimeUnit
		rc.Sources["project.time_unit"] = SourceCLI
	}
	if overrides.OutputFormat != nil {
		c.Output.Format = *overrides.OutputFormat
		rc.Sources["output.format"] = SourceCLI
	}
	if overrides.CriticalOnly != nil {
		c.Output.CriticalOnly = *overrides.CriticalOnly
		rc.Sources["output.critical_only"] = SourceCLI
	}
	if overrides.Inputs != nil {
		c.Project.Inputs = copyStrings(overrides.Inputs)
		rc.Sources["project.inputs"] = SourceCLI
	}
}

func copyConfig(src *Config) *Config {
	dst := *src
	dst.Project.Inputs = copyStrings(src.Project.Inputs)
	return &dst
}

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
