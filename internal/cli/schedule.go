package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/config"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/logging"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/report"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/task"
)

// scheduleFlags holds parsed flag values for the schedule command.
type scheduleFlags struct {
	Format       string
	CriticalOnly bool
	JSON         bool
	Output       string
	TimeUnit     string
	Name         string
}

var scheduleOpts scheduleFlags

var scheduleCmd = &cobra.Command{
	Use:   "schedule [files...]",
	Short: "Compute the critical path schedule of a project",
	Long: `Compute early and late start and finish times, slack and the critical path
for the tasks in the given files, or in project.inputs from pertpath.toml
when no files are given. Files may be CSV, TOML or JSON and patterns may use
doublestar globs such as "plans/**/*.csv".`,
	Example: `  pertpath schedule tasks.csv
  pertpath schedule --critical-only
  pertpath schedule plans/*.toml --format mermaid -o pert.mmd
  pertpath schedule --json | jq .critical_path`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchedule(cmd, args, scheduleOpts)
	},
}

func init() {
	f := scheduleCmd.Flags()
	f.StringVarP(&scheduleOpts.Format, "format", "f", "", "Output format: table, json, csv, mermaid or dot (env: PERTPATH_OUTPUT_FORMAT)")
	f.BoolVar(&scheduleOpts.CriticalOnly, "critical-only", false, "Show only critical tasks (env: PERTPATH_CRITICAL_ONLY)")
	f.BoolVar(&scheduleOpts.JSON, "json", false, "Shorthand for --format json")
	f.StringVarP(&scheduleOpts.Output, "output", "o", "", "Write the report to a file instead of stdout")
	f.StringVar(&scheduleOpts.TimeUnit, "time-unit", "", "Unit label for durations (env: PERTPATH_TIME_UNIT)")
	f.StringVar(&scheduleOpts.Name, "name", "", "Project name shown in reports (env: PERTPATH_PROJECT_NAME)")
	scheduleCmd.MarkFlagsMutuallyExclusive("format", "json")
	_ = scheduleCmd.RegisterFlagCompletionFunc("format", completeReportFormats)
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string, opts scheduleFlags) error {
	logger := logging.New("schedule")

	rc, _, err := loadConfig(scheduleOverrides(cmd, args, opts))
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(rc.Config.Output.Format)
	if err != nil {
		return err
	}

	tasks, err := loadTasks(cmd.Context(), rc)
	if err != nil {
		return err
	}
	warnIssues(tasks)

	data, err := schedule.Compute(tasks)
	if err != nil {
		return describeComputeError(err)
	}
	logger.Debug("schedule computed",
		"tasks", len(data.Tasks),
		"duration", data.ProjectDuration,
		"critical", len(data.CriticalPath),
	)

	ropts := report.Options{
		ProjectName:  rc.Config.Project.Name,
		TimeUnit:     rc.Config.Project.TimeUnit,
		CriticalOnly: rc.Config.Output.CriticalOnly,
		Fingerprint:  task.Fingerprint(tasks),
	}

	if opts.Output == "" {
		return report.Render(cmd.OutOrStdout(), format, data, ropts)
	}
	if err := writeFileWith(opts.Output, func(w io.Writer) error {
		return report.Render(w, format, data, ropts)
	}); err != nil {
		return err
	}
	logger.Info("wrote report", "path", opts.Output, "format", format)
	return nil
}

// scheduleOverrides turns explicitly set flags into config overrides.
func scheduleOverrides(cmd *cobra.Command, args []string, opts scheduleFlags) *config.CLIOverrides {
	ov := inputOverrides(args)
	flags := cmd.Flags()
	if flags.Changed("format") {
		ov.OutputFormat = &opts.Format
	}
	if opts.JSON {
		jsonFormat := string(report.FormatJSON)
		ov.OutputFormat = &jsonFormat
	}
	if flags.Changed("critical-only") {
		ov.CriticalOnly = &opts.CriticalOnly
	}
	if flags.Changed("time-unit") {
		ov.TimeUnit = &opts.TimeUnit
	}
	if flags.Changed("name") {
		ov.ProjectName = &opts.Name
	}
	return ov
}

// writeFileWith creates path and streams write into it. The file is
// removed again when write fails.
func writeFileWith(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func completeReportFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	formats := report.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
