// Package cli implements the pertpath command tree with cobra. Commands
// register themselves on rootCmd from init functions.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
	flagDir     string
	flagNoColor bool
)

// rootCmd is the base command for pertpath.
var rootCmd = &cobra.Command{
	Use:   "pertpath",
	Short: "Critical path scheduling for task lists",
	Long: `pertpath computes critical path (CPM) schedules for projects described as
task lists. It reads CSV, TOML and JSON task files, reports early and late
start and finish times, slack and the critical path, draws the dependency
graph as Mermaid or Graphviz, and ships a terminal editor for building the
task graph interactively.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on command line.
		if !cmd.Flags().Changed("verbose") && os.Getenv("PERTPATH_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Flags().Changed("quiet") && os.Getenv("PERTPATH_QUIET") != "" {
			flagQuiet = true
		}
		if !cmd.Flags().Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("PERTPATH_NO_COLOR") != "") {
			flagNoColor = true
		}

		logging.Setup(flagVerbose, flagQuiet, logging.JSONFromEnv())

		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		if flagDir != "" {
			if err := os.Chdir(flagDir); err != nil {
				return fmt.Errorf("changing directory to %s: %w", flagDir, err)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, verboseUsage)
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, quietUsage)
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", configUsage)
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", dirUsage)
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, noColorUsage)
}

const (
	verboseUsage = "Enable verbose (debug) output (env: PERTPATH_VERBOSE)"
	quietUsage   = "Suppress all output except errors (env: PERTPATH_QUIET)"
	configUsage  = "Path to pertpath.toml config file"
	dirUsage     = "Override working directory"
	noColorUsage = "Disable colored output (env: PERTPATH_NO_COLOR, NO_COLOR)"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

// NewRootCmd returns the assembled command tree, for the completion and
// man page generators under scripts/.
func NewRootCmd() *cobra.Command {
	return rootCmd
}
