package cfg

import (
	"fmt"
	"text/tabwriter"

	"harvester/internal/domain/consts"
	"harvester/internal/domain/errs"
	"harvester/internal/file"
	"harvester/internal/parsing"
	"harvester/internal/utils/logging"

	"github.com/spf13/cobra"
)

// initListsCmd creates the list management commands.
func initListsCmd() *cobra.Command {
	listsCmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage URL lists.",
	}

	listsCmd.AddCommand(
		listsShowCmd(),
		listsCreateCmd(),
		listsAddCmd(),
		listsDeleteCmd(),
	)
	return listsCmd
}

func listsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show every list and how many URLs it holds.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := file.DescribeLists(listsDir())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No lists in %q\n", listsDir())
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LIST\tURLS\tPATH")
			for _, li := range infos {
				fmt.Fprintf(w, "%s\t%d\t%s\n", li.Name, li.Count, li.Path)
			}
			return w.Flush()
		},
	}
}

func listsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := file.CreateList(listsDir(), args[0])
			if err != nil {
				return err
			}
			logging.S("Created list %q at %q", parsing.SanitizeListName(args[0]), path)
			return nil
		},
	}
}

func listsAddCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <url>...",
		Short: "Add URLs to a list, creating it if needed.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, u := range args {
				if err := parsing.ValidateURL(u); err != nil {
					return err
				}
			}

			added, err := file.AddToList(listsDir(), name, args...)
			if err != nil {
				return err
			}
			if dup := len(args) - added; dup > 0 {
				logging.I("%d URL(s) already in list %q", dup, name)
			}
			logging.S("Added %d URL(s) to list %q", added, parsing.SanitizeListName(name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "list", "l", consts.DefaultListName, "List to add the URLs to")
	return cmd
}

func listsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a list file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if parsing.SanitizeListName(args[0]) != args[0] {
				return fmt.Errorf("%w: %q is not a valid list name", errs.ErrValidation, args[0])
			}
			if err := file.DeleteList(listsDir(), args[0]); err != nil {
				return err
			}
			logging.S("Deleted list %q", args[0])
			return nil
		},
	}
}
