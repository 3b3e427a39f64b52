package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Generate a shell completion script",
		Long: `Generate a completion script for mmcf and write it to stdout.

  bash:        source <(mmcf completion bash)
  zsh:         mmcf completion zsh > "${fpath[1]}/_mmcf"
  fish:        mmcf completion fish > ~/.config/fish/completions/mmcf.fish
  powershell:  mmcf completion powershell | Out-String | Invoke-Expression

Completions cover subcommands, flags and the fixed values of --type,
--model, --policy and --writer.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, root := cmd.OutOrStdout(), cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// fixedValues registers shell completion for flags that take one of a fixed
// set of values.
func fixedValues(cmd *cobra.Command, values map[string][]string) {
	for flag, allowed := range values {
		_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(allowed, cobra.ShellCompDirectiveNoFileComp))
	}
}
