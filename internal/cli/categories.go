package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskring/internal/app"
	"github.com/runoshun/taskring/internal/infra/catalog"
)

// newCategoriesCommand creates the categories command.
func newCategoriesCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "List drag-and-drop categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := c.Categories.Categories()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tNAME\tDURATION\tCOLOR\tICON")
			for _, cat := range cats {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					cat.ID, cat.Name, formatDuration(cat.Duration()), cat.Color, cat.Icon)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(newCategoriesInitCommand(c))
	return cmd
}

// newCategoriesInitCommand creates the categories init subcommand.
func newCategoriesInitCommand(c *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default category file",
		Long: `Write the built-in categories to the category file so they can be edited.

The file lives at <data dir>/categories.yaml unless [categories] file
is set in config.toml.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := c.Config.CategoriesPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if err := catalog.Write(path, catalog.Defaults()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
