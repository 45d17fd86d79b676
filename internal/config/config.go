// Package config loads and resolves pertpath.toml.
//
// Values are layered from built-in defaults, the config file, PERTPATH_*
// environment variables and command-line flags, in that order, and every
// resolved key remembers which layer it came from.
package config

// Config maps to pertpath.toml.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Output  OutputConfig  `toml:"output"`
	Editor  EditorConfig  `toml:"editor"`
}

// ProjectConfig maps to the [project] section.
type ProjectConfig struct {
	Name string `toml:"name"`
	// TimeUnit labels durations in reports, e.g. "days".
	TimeUnit string `toml:"time_unit"`
	// Inputs are task file paths or doublestar globs read when a command
	// gets no file arguments.
	Inputs []string `toml:"inputs"`
}

// OutputConfig maps to the [output] section.
type OutputConfig struct {
	Format       string `toml:"format"`
	CriticalOnly bool   `toml:"critical_only"`
}

// EditorConfig maps to the [editor] section.
type EditorConfig struct {
	DefaultDuration int    `toml:"default_duration"`
	IDPrefix        string `toml:"id_prefix"`
}
