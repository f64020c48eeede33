package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for launchdeck.

To load completions:

Bash:
  $ source <(launchdeck completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ launchdeck completion bash > /etc/bash_completion.d/launchdeck
  # macOS:
  $ launchdeck completion bash > $(brew --prefix)/etc/bash_completion.d/launchdeck

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ launchdeck completion zsh > "${fpath[1]}/_launchdeck"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ launchdeck completion fish | source

  # To load completions for each session, execute once:
  $ launchdeck completion fish > ~/.config/fish/completions/launchdeck.fish

PowerShell:
  PS> launchdeck completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> launchdeck completion powershell > launchdeck.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), cmd.OutOrStdout(), args[0])
		},
	}

	return cmd
}

func writeCompletion(root *cobra.Command, w io.Writer, shell string) error {
	switch shell {
	case "bash":
		return root.GenBashCompletion(w)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return nil
}
