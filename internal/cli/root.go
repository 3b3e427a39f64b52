package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mmcf/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the root loads the config file, attaches the
// logger to the command context and registers the logging observability
// hooks.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "mmcf builds linear programs for multi-commodity flow instances",
		Long: `mmcf reads a multi-commodity flow instance in JSON, gives every commodity a
single source and target, and writes the resulting model as an LP or MPS file
for an external solver, or the normalized network as plain text.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mmcf/config.toml)")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) setup(cmd *cobra.Command) error {
	path, required := c.configPath, true
	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			c.Logger.Debug("no default config path", "err", err)
			p = ""
		}
		path, required = p, false
	}
	if path != "" {
		cfg, err := LoadConfig(path, required)
		if err != nil {
			return err
		}
		c.Config = cfg
	}

	registerLogHooks(c.Logger)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}
