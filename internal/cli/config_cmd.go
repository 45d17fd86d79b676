package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/config"
)

// configCmd is the parent "config" namespace command. It has no action of its
// own -- it groups debug and validate subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  "Inspect and validate pertpath configuration.",
	// RunE shows help when invoked with no subcommand.
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// configDebugCmd implements "pertpath config debug".
// It prints the fully-resolved configuration with source annotations.
var configDebugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Show resolved configuration with source annotations",
	Long: `Display the fully-resolved configuration showing each value and
the source where it came from (cli flag, environment variable, config file, or default).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, _, err := loadConfig(nil)
		if err != nil {
			return err
		}
		printResolvedConfig(cmd, resolved)
		return nil
	},
}

// configValidateCmd implements "pertpath config validate".
// It validates the resolved configuration and reports all errors and warnings.
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and report issues",
	Long:  "Check the configuration for errors and warnings.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, meta, err := loadConfig(nil)
		if err != nil {
			return err
		}
		result := config.Validate(resolved.Config, meta)
		printValidationResult(cmd, result)
		if result.HasErrors() {
			return fmt.Errorf("configuration has %d error(s)", len(result.Errors()))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDebugCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

// configField is one resolved key shown by config debug.
type configField struct {
	key   string
	value string
}

// configSections lists the resolved values grouped by TOML table, in file
// order.
func configSections(cfg *config.Config) [][]configField {
	return [][]configField{
		{
			{"project.name", fmtStr(cfg.Project.Name)},
			{"project.time_unit", fmtStr(cfg.Project.TimeUnit)},
			{"project.inputs", fmtSlice(cfg.Project.Inputs)},
		},
		{
			{"output.format", fmtStr(cfg.Output.Format)},
			{"output.critical_only", strconv.FormatBool(cfg.Output.CriticalOnly)},
		},
		{
			{"editor.default_duration", strconv.Itoa(cfg.Editor.DefaultDuration)},
			{"editor.id_prefix", fmtStr(cfg.Editor.IDPrefix)},
		},
	}
}

const fieldWidth = 18

// printResolvedConfig writes every resolved key with the layer it came
// from.
func printResolvedConfig(cmd *cobra.Command, rc *config.ResolvedConfig) {
	out := cmd.OutOrStdout()
	printHeading(out, "Configuration Debug")

	if rc.Path != "" {
		fmt.Fprintf(out, "Config file: %s\n\n", rc.Path)
	} else {
		fmt.Fprintf(out, "Config file: none found\n\n")
	}

	for _, section := range configSections(rc.Config) {
		table, _, _ := strings.Cut(section[0].key, ".")
		fmt.Fprintln(out, styleSection.Render("["+table+"]"))
		for _, f := range section {
			_, name, _ := strings.Cut(f.key, ".")
			printField(out, name, f.value, rc.Sources[f.key])
		}
		fmt.Fprintln(out)
	}
}

// printField writes one "name = value (source: ...)" line.
func printField(out io.Writer, name, value string, src config.ConfigSource) {
	srcLabel := sourceStyle(src).Render("(source: " + string(src) + ")")
	fmt.Fprintf(out, "  %-*s = %-32s %s\n", fieldWidth, name, value, srcLabel)
}

func fmtStr(s string) string {
	return strconv.Quote(s)
}

func fmtSlice(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// printValidationResult writes errors then warnings, followed by a count.
func printValidationResult(cmd *cobra.Command, result *config.ValidationResult) {
	out := cmd.OutOrStdout()
	printHeading(out, "Configuration Validation")

	errs := result.Errors()
	warns := result.Warnings()
	if len(errs) == 0 && len(warns) == 0 {
		fmt.Fprintln(out, styleSuccess.Render("No issues found."))
		return
	}

	groups := []struct {
		label  string
		style  lipgloss.Style
		issues []config.ValidationIssue
	}{
		{"Errors:", styleErrorLbl, errs},
		{"Warnings:", styleWarnLbl, warns},
	}
	for _, g := range groups {
		if len(g.issues) == 0 {
			continue
		}
		fmt.Fprintln(out, g.style.Render(g.label))
		for _, issue := range g.issues {
			fmt.Fprintf(out, "  [%s] %s\n", issue.Field, issue.Message)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%d error(s), %d warning(s)\n", len(errs), len(warns))
}
