package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/config"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/logging"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/task"
)

// Flag values for the init subcommand.
var (
	initFlagName        string
	initFlagTimeUnit    string
	initFlagForce       bool
	initFlagInteractive bool
)

// errInitCancelled is returned when the interactive form is aborted.
var errInitCancelled = errors.New("init cancelled")

// initAnswers is what the interactive init form collects.
type initAnswers struct {
	Name     string
	TimeUnit string
}

// timeUnits are offered by the interactive form.
var timeUnits = []string{"days", "weeks", "hours", "sprints"}

// askInitAnswers runs the interactive form; tests replace it.
var askInitAnswers = func(a *initAnswers) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&a.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Time unit").
				Description("Label used for durations in reports").
				Options(huh.NewOptions(timeUnits...)...).
				Value(&a.TimeUnit),
		),
	)
	return form.Run()
}

// initCmd implements "pertpath init". It never reads pertpath.toml, so it
// is safe to run in a fresh directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create pertpath.toml and a starter task file",
	Long: `Initialize a pertpath project in the working directory: write pertpath.toml
and, unless one already exists, a tasks.csv holding the example project.
An existing pertpath.toml is kept unless --force is supplied.`,
	Example: `  pertpath init
  pertpath init --name launch --time-unit weeks
  pertpath init --interactive`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initFlagName, "name", "n", "", "Project name (defaults to current directory name)")
	initCmd.Flags().StringVar(&initFlagTimeUnit, "time-unit", config.DefaultTimeUnit, "Unit label for durations")
	initCmd.Flags().BoolVar(&initFlagForce, "force", false, "Overwrite existing files")
	initCmd.Flags().BoolVarP(&initFlagInteractive, "interactive", "i", false, "Ask for the project settings")
	rootCmd.AddCommand(initCmd)
}

// runInit is the RunE handler for the init command.
func runInit(cmd *cobra.Command, args []string) error {
	logger := logging.New("init")

	destDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	answers := initAnswers{Name: initFlagName, TimeUnit: initFlagTimeUnit}
	if answers.Name == "" {
		answers.Name = filepath.Base(destDir)
	}
	if initFlagInteractive {
		if err := askInitAnswers(&answers); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return errInitCancelled
			}
			return fmt.Errorf("reading answers: %w", err)
		}
	}

	cfgPath, err := config.WriteConfigFile(destDir, config.TemplateVars{
		ProjectName: strings.TrimSpace(answers.Name),
		TimeUnit:    answers.TimeUnit,
		Inputs:      []string{config.DefaultInput},
	}, initFlagForce)
	if err != nil {
		return err
	}
	created := []string{cfgPath}

	tasksPath := filepath.Join(destDir, config.DefaultInput)
	if _, statErr := os.Stat(tasksPath); statErr == nil && !initFlagForce {
		logger.Info("keeping existing task file", "path", tasksPath)
	} else {
		if err := writeFileWith(tasksPath, func(w io.Writer) error {
			return task.WriteTemplate(w, task.FormatCSV)
		}); err != nil {
			return err
		}
		created = append(created, tasksPath)
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "Initialized project %q\n\n", answers.Name)
	fmt.Fprintln(stderr, "Created files:")
	for _, f := range created {
		rel, relErr := filepath.Rel(destDir, f)
		if relErr != nil {
			rel = f
		}
		fmt.Fprintf(stderr, "  %s\n", rel)
	}
	fmt.Fprintln(stderr)
	fmt.Fprintln(stderr, "Next steps:")
	fmt.Fprintf(stderr, "  1. Edit %s or run: pertpath edit\n", config.DefaultInput)
	fmt.Fprintln(stderr, "  2. Run: pertpath schedule")

	return nil
}
