package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"opennoution/internal/application"
	"opennoution/internal/application/commands"
	"opennoution/internal/domain"
)

var (
	pageParent int64
	pageToRoot bool
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Manage pages",
	Long: `List, create, rename, move and delete pages.

Examples:
  opennoution-cli page list
  opennoution-cli page create "Meeting notes" --parent 3
  opennoution-cli page move 7 --root`,
}

var pageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages, optionally only the children of --parent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			pages []domain.Page
			err   error
		)
		if cmd.Flags().Changed("parent") {
			pages, err = commands.NewListChildPagesCommand(GetStore(), &pageParent).Execute(cmd.Context())
		} else {
			pages, err = commands.NewListPagesCommand(GetStore()).Execute(cmd.Context())
		}
		if err != nil {
			return err
		}

		for _, p := range pages {
			fmt.Fprintf(cmd.OutOrStdout(), "%d  %s\n", p.ID, p.Title)
		}
		return nil
	},
}

var pageTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the page hierarchy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, err := commands.NewListPagesCommand(GetStore()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		expanded := make(map[int64]bool, len(pages))
		for _, p := range pages {
			expanded[p.ID] = true
		}
		root := domain.BuildTree(pages, expanded)

		for _, node := range root.Flatten()[1:] {
			fmt.Fprintf(cmd.OutOrStdout(), "%s%d %s\n",
				strings.Repeat("  ", node.Depth()), node.Page.ID, node.Page.Title)
		}
		return nil
	},
}

var pageCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a page",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var title string
		if len(args) > 0 {
			title = args[0]
		}
		var parentID *int64
		if cmd.Flags().Changed("parent") {
			parentID = &pageParent
		}

		result, err := commands.NewCreatePageCommand(GetStore(), title, parentID).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var pageRenameCmd = &cobra.Command{
	Use:   "rename <page-id> <title>",
	Short: "Rename a page",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "page")
		if err != nil {
			return err
		}
		title := args[1]
		return updatePage(cmd, id, domain.PagePatch{Title: &title})
	},
}

var pageMoveCmd = &cobra.Command{
	Use:   "move <page-id> (--parent <id> | --root)",
	Short: "Move a page under another page, or to the top level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "page")
		if err != nil {
			return err
		}

		var parent *int64
		switch {
		case pageToRoot:
		case cmd.Flags().Changed("parent"):
			p := pageParent
			parent = &p
		default:
			return fmt.Errorf("either --parent or --root is required")
		}
		return updatePage(cmd, id, domain.PagePatch{ParentID: &parent})
	},
}

var pageDeleteCmd = &cobra.Command{
	Use:   "delete <page-id>",
	Short: "Delete a page with all its subpages and blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "page")
		if err != nil {
			return err
		}

		result, err := commands.NewDeletePageCommand(GetStore(), id).Execute(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info().Ints64("pages", result.DeletedPages).Int("blocks", result.DeletedBlocks).Msg("pages deleted")
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func updatePage(cmd *cobra.Command, id int64, patch domain.PagePatch) error {
	result, err := commands.NewUpdatePageCommand(GetStore(), id, patch).Execute(cmd.Context())
	if err != nil {
		return err
	}
	if result.Page == nil {
		return &application.NotFoundError{Kind: "page", ID: id}
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}

func init() {
	rootCmd.AddCommand(pageCmd)
	pageCmd.AddCommand(pageListCmd, pageTreeCmd, pageCreateCmd, pageRenameCmd, pageMoveCmd, pageDeleteCmd)

	pageListCmd.Flags().Int64VarP(&pageParent, "parent", "p", 0, "only list children of this page")
	pageCreateCmd.Flags().Int64VarP(&pageParent, "parent", "p", 0, "create the page under this parent")
	pageMoveCmd.Flags().Int64VarP(&pageParent, "parent", "p", 0, "new parent page")
	pageMoveCmd.Flags().BoolVar(&pageToRoot, "root", false, "move the page to the top level")
	pageMoveCmd.MarkFlagsMutuallyExclusive("parent", "root")
}
