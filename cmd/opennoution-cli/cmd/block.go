package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"opennoution/internal/application"
	"opennoution/internal/application/commands"
	"opennoution/internal/domain"
)

var blockAfter int64

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage the blocks of a page",
	Long: `List, add, edit, retype, check, delete and reorder blocks.

Block types: text, h1, h2, h3, quote, code, list, checklist.

Examples:
  opennoution-cli block list 3
  opennoution-cli block add 3 checklist "Buy milk"
  opennoution-cli block add 3 text "Inserted" --after 12
  opennoution-cli block reorder 3 14 12 13`,
}

var blockListCmd = &cobra.Command{
	Use:   "list <page-id>",
	Short: "List the blocks of a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pageID, err := parseID(args[0], "page")
		if err != nil {
			return err
		}

		blocks, err := commands.NewListBlocksCommand(GetStore(), pageID).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, b := range blocks {
			fmt.Fprintln(cmd.OutOrStdout(), formatBlock(b))
		}
		return nil
	},
}

var blockAddCmd = &cobra.Command{
	Use:   "add <page-id> <type> [content]",
	Short: "Append a block, or insert it after --after",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pageID, err := parseID(args[0], "page")
		if err != nil {
			return err
		}
		blockType, err := application.ParseBlockType(args[1])
		if err != nil {
			return err
		}
		var content string
		if len(args) == 3 {
			content = args[2]
		}

		ctx := cmd.Context()
		if !cmd.Flags().Changed("after") {
			result, err := commands.NewCreateBlockCommand(GetStore(), pageID, blockType, content, nil).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		}

		result, err := commands.NewInsertBlockAfterCommand(GetStore(), pageID, blockAfter, blockType).Execute(ctx)
		if err != nil {
			return err
		}
		if content != "" {
			if _, err := commands.NewUpdateBlockCommand(GetStore(), result.Block.ID, domain.BlockPatch{Content: &content}).Execute(ctx); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var blockEditCmd = &cobra.Command{
	Use:   "edit <block-id> <content>",
	Short: "Replace the content of a block",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "block")
		if err != nil {
			return err
		}
		content := args[1]
		return updateBlock(cmd, id, domain.BlockPatch{Content: &content})
	},
}

var blockTypeCmd = &cobra.Command{
	Use:   "type <block-id> <type>",
	Short: "Change a block's type, clearing its content",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "block")
		if err != nil {
			return err
		}
		blockType, err := application.ParseBlockType(args[1])
		if err != nil {
			return err
		}

		result, err := commands.NewSetBlockTypeCommand(GetStore(), id, blockType).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if result.Block == nil {
			return &application.NotFoundError{Kind: "block", ID: id}
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var blockCheckCmd = &cobra.Command{
	Use:   "check <block-id>",
	Short: "Toggle a checklist block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "block")
		if err != nil {
			return err
		}

		result, err := commands.NewToggleCheckedCommand(GetStore(), id).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatBlock(*result.Block))
		return nil
	},
}

var blockDeleteCmd = &cobra.Command{
	Use:   "delete <block-id>",
	Short: "Delete a block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "block")
		if err != nil {
			return err
		}

		result, err := commands.NewDeleteBlockCommand(GetStore(), id).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var blockReorderCmd = &cobra.Command{
	Use:   "reorder <page-id> <block-id>...",
	Short: "Set the order of blocks on a page",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pageID, err := parseID(args[0], "page")
		if err != nil {
			return err
		}
		ids := make([]int64, 0, len(args)-1)
		for _, arg := range args[1:] {
			id, err := parseID(arg, "block")
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}

		result, err := commands.NewReorderBlocksCommand(GetStore(), pageID, ids).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func updateBlock(cmd *cobra.Command, id int64, patch domain.BlockPatch) error {
	result, err := commands.NewUpdateBlockCommand(GetStore(), id, patch).Execute(cmd.Context())
	if err != nil {
		return err
	}
	if result.Block == nil {
		return &application.NotFoundError{Kind: "block", ID: id}
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}

func formatBlock(b domain.Block) string {
	var marker string
	if b.Type == domain.BlockTypeChecklist {
		marker = "[ ] "
		if b.IsChecked() {
			marker = "[x] "
		}
	}
	content := strings.ReplaceAll(b.Content, "\n", `\n`)
	return fmt.Sprintf("%d  %-9s %s%s", b.ID, b.Type, marker, content)
}

func init() {
	rootCmd.AddCommand(blockCmd)
	blockCmd.AddCommand(blockListCmd, blockAddCmd, blockEditCmd, blockTypeCmd, blockCheckCmd, blockDeleteCmd, blockReorderCmd)

	blockAddCmd.Flags().Int64VarP(&blockAfter, "after", "a", 0, "insert after this block")
}
