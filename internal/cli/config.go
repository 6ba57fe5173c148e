package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskring/internal/app"
	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/infra/config"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage taskring configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration.
The data dir config.toml overrides the global one.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(w, "[Loaded from]")
			printConfigSource(w, c.ConfigManager.GlobalConfigInfo())
			printConfigSource(w, c.ConfigManager.LocalConfigInfo())
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			rendered, err := config.Render(c.AppConfig)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, _ = fmt.Fprint(w, rendered)
			return nil
		},
	}
}

func printConfigSource(w io.Writer, info domain.ConfigInfo) {
	if info.Path == "" {
		return
	}
	if info.Exists {
		_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
		return
	}
	_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the global config file",
		Long: `Create $XDG_CONFIG_HOME/taskring/config.toml with default values.

Fails if the file already exists.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := c.ConfigManager.InitGlobalConfig()
			if errors.Is(err, domain.ErrConfigExists) {
				return fmt.Errorf("config already exists: %s", path)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
}
