package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validate task files without scheduling them",
	Long: `Check the tasks in the given files, or in project.inputs, for problems.

Errors are problems that stop scheduling: empty or duplicate task IDs,
negative durations and dependency cycles. Warnings are references the
scheduler tolerates, such as a predecessor ID that names no task. The
command exits non-zero when any error is found.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	rc, _, err := loadConfig(inputOverrides(args))
	if err != nil {
		return err
	}
	tasks, err := loadTasks(cmd.Context(), rc)
	if err != nil {
		return err
	}

	issues := schedule.Validate(tasks)
	out := cmd.OutOrStdout()
	printIssues(out, issues)

	if schedule.HasErrors(issues) {
		return fmt.Errorf("found %d error(s) in %d task(s)", countSeverity(issues, schedule.SeverityError), len(tasks))
	}

	data, err := schedule.Compute(tasks)
	if err != nil {
		return describeComputeError(err)
	}
	fmt.Fprintln(out, styleSuccess.Render(fmt.Sprintf(
		"%d task(s) ok, project duration %d %s",
		len(tasks), data.ProjectDuration, rc.Config.Project.TimeUnit,
	)))
	return nil
}

// printIssues lists findings grouped as errors then warnings.
func printIssues(out io.Writer, issues []schedule.Issue) {
	for _, sev := range []schedule.Severity{schedule.SeverityError, schedule.SeverityWarning} {
		for _, is := range issues {
			if is.Severity != sev {
				continue
			}
			label := styleWarnLbl.Render("warning")
			if sev == schedule.SeverityError {
				label = styleErrorLbl.Render("error  ")
			}
			if is.TaskID == "" {
				fmt.Fprintf(out, "%s %s\n", label, is.Message)
			} else {
				fmt.Fprintf(out, "%s [%s] %s\n", label, is.TaskID, is.Message)
			}
		}
	}
}

func countSeverity(issues []schedule.Issue, sev schedule.Severity) int {
	n := 0
	for _, is := range issues {
		if is.Severity == sev {
			n++
		}
	}
	return n
}
