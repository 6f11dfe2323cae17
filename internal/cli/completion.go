package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts. The scripts attach
// to the cargo-open binary itself; invocations through cargo (cargo open
// ...) are completed by cargo.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate a shell completion script",
		Long: `Generate a completion script for bash, zsh, fish, or powershell.

The script completes subcommands and flags of the cargo-open binary itself.
Invoked through cargo as 'cargo open', completion is cargo's business.

Load it for the current session:

  source <(cargo-open completion bash)
  cargo-open completion fish | source

or install it permanently:

  cargo-open completion bash > /etc/bash_completion.d/cargo-open
  cargo-open completion zsh > "${fpath[1]}/_cargo-open"
  cargo-open completion fish > ~/.config/fish/completions/cargo-open.fish

Zsh additionally needs compinit enabled in ~/.zshrc:

  autoload -U compinit; compinit`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}
