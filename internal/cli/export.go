package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/logging"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/task"
)

// exportFlags holds parsed flag values for the export command.
type exportFlags struct {
	Output string
	Format string
}

var exportOpts exportFlags

var exportCmd = &cobra.Command{
	Use:   "export [files...]",
	Short: "Merge and convert task files",
	Long: `Read the tasks in the given files, or in project.inputs, and write them as a
single task list. The output format comes from --format, or from the
extension of -o, and defaults to CSV.`,
	Example: `  pertpath export plans/**/*.toml -o tasks.csv
  pertpath export tasks.csv --format json
  pertpath export tasks.csv -o projeto.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, args, exportOpts)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOpts.Output, "output", "o", "", "Write to this path instead of stdout")
	exportCmd.Flags().StringVar(&exportOpts.Format, "format", "", "Output format: csv, toml, json or xlsx")
	_ = exportCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{string(task.FormatCSV), string(task.FormatTOML), string(task.FormatJSON), string(task.FormatXLSX)}, cobra.ShellCompDirectiveNoFileComp,
	))
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string, opts exportFlags) error {
	format, err := exportFormat(opts)
	if err != nil {
		return err
	}

	rc, _, err := loadConfig(inputOverrides(args))
	if err != nil {
		return err
	}
	tasks, err := loadTasks(cmd.Context(), rc)
	if err != nil {
		return err
	}

	if opts.Output == "" {
		return task.Write(cmd.OutOrStdout(), format, tasks)
	}
	if err := writeFileWith(opts.Output, func(w io.Writer) error {
		return task.Write(w, format, tasks)
	}); err != nil {
		return err
	}
	logging.New("export").Info("exported tasks", "path", opts.Output, "format", format, "count", len(tasks))
	return nil
}

func exportFormat(opts exportFlags) (task.Format, error) {
	switch {
	case opts.Format != "":
		return task.ParseFormat(opts.Format)
	case opts.Output != "":
		return task.FormatForPath(opts.Output)
	default:
		return task.FormatCSV, nil
	}
}
