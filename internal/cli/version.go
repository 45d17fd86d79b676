package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/buildinfo"
)

// versionFlags holds parsed flag values for the version command.
type versionFlags struct {
	JSON  bool
	Short bool
}

var versionOpts versionFlags

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pertpath version and build information",
	Long: `Display the version, git commit and build date of this pertpath binary.
With --verbose the Go version and platform are listed too.`,
	Example: `  pertpath version
  pertpath version --short
  pertpath version --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion(cmd.OutOrStdout(), buildinfo.GetInfo(), versionOpts, flagVerbose)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionOpts.JSON, "json", false, "Output version info as JSON")
	versionCmd.Flags().BoolVar(&versionOpts.Short, "short", false, "Print only the version number")
	versionCmd.MarkFlagsMutuallyExclusive("json", "short")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(out io.Writer, info buildinfo.Info, opts versionFlags, verbose bool) error {
	switch {
	case opts.JSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case opts.Short:
		fmt.Fprintln(out, info.Version)
	case verbose:
		printHeading(out, "pertpath "+info.Version)
		for _, f := range []struct{ key, value string }{
			{"commit", info.Commit},
			{"built", info.Date},
			{"go", info.GoVersion},
			{"platform", info.Platform},
		} {
			fmt.Fprintf(out, "  %s %s\n", styleSection.Render(fmt.Sprintf("%-9s", f.key)), f.value)
		}
	default:
		fmt.Fprintln(out, info.String())
	}
	return nil
}
