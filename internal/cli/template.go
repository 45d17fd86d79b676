package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/logging"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/task"
)

// templateFlags holds parsed flag values for the template command.
type templateFlags struct {
	Output string
	Format string
	Force  bool
}

var templateOpts templateFlags

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write a starter task file",
	Long: `Write the four-task example project (A, B and C after A, D after B and C)
as a CSV spreadsheet or a TOML document. Without -o the template is
printed to stdout.`,
	Example: `  pertpath template > tasks.csv
  pertpath template -o tasks.toml --format toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplate(cmd, templateOpts)
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateOpts.Output, "output", "o", "", "Write the template to this path")
	templateCmd.Flags().StringVar(&templateOpts.Format, "format", string(task.FormatCSV), "Template format: csv or toml")
	templateCmd.Flags().BoolVar(&templateOpts.Force, "force", false, "Overwrite an existing file")
	_ = templateCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{string(task.FormatCSV), string(task.FormatTOML)}, cobra.ShellCompDirectiveNoFileComp,
	))
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, opts templateFlags) error {
	format, err := task.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	raw, err := task.TemplateBytes(format)
	if err != nil {
		return err
	}

	if opts.Output == "" {
		_, err := cmd.OutOrStdout().Write(raw)
		return err
	}

	if _, err := os.Stat(opts.Output); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", opts.Output)
	}
	if err := os.WriteFile(opts.Output, raw, 0o644); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	logging.New("template").Info("wrote template", "path", opts.Output, "format", format)
	return nil
}
