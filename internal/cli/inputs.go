package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/config"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/logging"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/task"
)

// errNoInputs is returned when neither arguments nor project.inputs name a
// task file.
var errNoInputs = errors.New("no task files given and project.inputs is empty")

// loadConfig resolves pertpath.toml, the environment and overrides. When
// --config is set that file must exist; otherwise pertpath.toml is looked
// up from the working directory upwards and may be absent.
func loadConfig(overrides *config.CLIOverrides) (*config.ResolvedConfig, *toml.MetaData, error) {
	rc, meta, err := config.Load(flagConfig, ".", os.LookupEnv, overrides)
	if err != nil {
		return nil, nil, err
	}
	return rc, meta, nil
}

// inputOverrides returns CLI overrides carrying file arguments, if any.
func inputOverrides(args []string) *config.CLIOverrides {
	if len(args) == 0 {
		return &config.CLIOverrides{}
	}
	return &config.CLIOverrides{Inputs: args}
}

// loadTasks reads every task file named by the resolved project.inputs.
func loadTasks(ctx context.Context, rc *config.ResolvedConfig) ([]schedule.Task, error) {
	patterns := rc.Config.Project.Inputs
	if len(patterns) == 0 {
		return nil, errNoInputs
	}

	logger := logging.New("cli")
	logger.Debug("loading tasks", "inputs", patterns, "source", rc.Sources["project.inputs"])

	tasks, err := task.LoadFiles(ctx, patterns)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded tasks", "count", len(tasks))
	return tasks, nil
}

// warnIssues logs warning-severity validation findings. Errors are left
// to the caller, which gets them from schedule.Compute.
func warnIssues(tasks []schedule.Task) {
	logger := logging.New("cli")
	for _, is := range schedule.Validate(tasks) {
		if is.Severity == schedule.SeverityWarning {
			logger.Warn(is.Message, "task", is.TaskID)
		}
	}
}

// describeComputeError adds a hint to the errors users hit most.
func describeComputeError(err error) error {
	var cycle *schedule.CycleError
	switch {
	case errors.As(err, &cycle):
		return fmt.Errorf("scheduling: %w (run pertpath check for details)", err)
	case errors.Is(err, schedule.ErrEmptyProject):
		return fmt.Errorf("scheduling: %w (pertpath template writes a starter file)", err)
	default:
		return fmt.Errorf("scheduling: %w", err)
	}
}
