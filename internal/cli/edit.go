package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/config"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/editor"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/logging"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/task"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/tui"
)

// runEditor starts the terminal editor; tests replace it.
var runEditor = tui.RunEditor

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit a task graph in the terminal",
	Long: `Open the interactive editor on a task file. Tasks can be added, renamed,
resized, connected and disconnected while the schedule and critical path
are recomputed live. Saving writes the project as CSV to the same file.

Without an argument the first project.inputs entry is used when it names a
single file, and tasks.csv otherwise. A missing file starts an empty
project.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	logger := logging.New("edit")

	rc, _, err := loadConfig(nil)
	if err != nil {
		return err
	}

	path := editPath(args, rc.Config.Project.Inputs)
	if format, err := task.FormatForPath(path); err != nil || format != task.FormatCSV {
		return fmt.Errorf("the editor saves CSV; convert %s with: pertpath export %s -o tasks.csv", path, path)
	}
	tasks, err := readEditTasks(path)
	if err != nil {
		return err
	}
	logger.Debug("opening editor", "path", path, "tasks", len(tasks))

	return runEditor(tui.AppConfig{
		ProjectName: rc.Config.Project.Name,
		TimeUnit:    rc.Config.Project.TimeUnit,
		Path:        path,
		Tasks:       tasks,
		Editor: editor.Options{
			IDPrefix:        rc.Config.Editor.IDPrefix,
			DefaultDuration: rc.Config.Editor.DefaultDuration,
		},
	})
}

// editPath picks the file the editor saves to.
func editPath(args, inputs []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if len(inputs) > 0 && !strings.ContainsAny(inputs[0], "*?[{") {
		return inputs[0]
	}
	return config.DefaultInput
}

// readEditTasks loads path, returning no tasks when it does not exist.
func readEditTasks(path string) ([]schedule.Task, error) {
	tasks, err := task.ParseFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.New("edit").Info("starting a new project", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return tasks, nil
}
