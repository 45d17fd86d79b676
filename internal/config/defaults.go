package config

// Default values for a project without a pertpath.toml.
const (
	DefaultTimeUnit       = "days"
	DefaultInput          = "tasks.csv"
	DefaultOutputFormat   = "table"
	DefaultEditorDuration = 1
	DefaultEditorIDPrefix = "task-"
)

// NewDefaults returns a Config holding the built-in defaults.
func NewDefaults() *Config {
	return &Config{
		Project: ProjectConfig{
			TimeUnit: DefaultTimeUnit,
			Inputs:   []string{DefaultInput},
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
		Editor: EditorConfig{
			DefaultDuration: DefaultEditorDuration,
			IDPrefix:        DefaultEditorIDPrefix,
		},
	}
}
