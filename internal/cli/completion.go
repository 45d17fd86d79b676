package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// completionCmd generates shell completion scripts for pertpath.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for pertpath.

To install completions:

  Bash (Linux):
    pertpath completion bash | sudo tee /etc/bash_completion.d/pertpath > /dev/null

  Bash (macOS with Homebrew):
    pertpath completion bash > $(brew --prefix)/etc/bash_completion.d/pertpath

  Zsh:
    pertpath completion zsh > "${fpath[1]}/_pertpath"
    # or
    pertpath completion zsh > ~/.zsh/completions/_pertpath

  Fish:
    pertpath completion fish > ~/.config/fish/completions/pertpath.fish

  PowerShell:
    pertpath completion powershell > pertpath.ps1
    # Then add ". pertpath.ps1" to your PowerShell profile`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
	},
}

// writeCompletion generates the completion script of root for shell.
func writeCompletion(root *cobra.Command, shell string, out io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(out)
	default:
		return fmt.Errorf("unsupported shell: %s", shell)
	}
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
