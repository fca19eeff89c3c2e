package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"opennoution/internal/adapters/preview"
	"opennoution/internal/application"
	"opennoution/internal/application/commands"
	"opennoution/internal/domain"
)

var (
	renderHTML bool
	renderOpen bool
)

var renderCmd = &cobra.Command{
	Use:   "render <page-id>",
	Short: "Render a page as Markdown or HTML",
	Long: `Render a page and its blocks as a Markdown document, or as an HTML
fragment with --html. With --open the page is written as an HTML document
to the preview directory and opened in the default browser.

Examples:
  opennoution-cli render 3 > notes.md
  opennoution-cli render 3 --html
  opennoution-cli render 3 --open`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "page")
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		page, err := commands.NewGetPageCommand(GetStore(), id).Execute(ctx)
		if err != nil {
			return err
		}
		if page == nil {
			return &application.NotFoundError{Kind: "page", ID: id}
		}
		blocks, err := commands.NewListBlocksCommand(GetStore(), id).Execute(ctx)
		if err != nil {
			return err
		}

		if renderOpen {
			path, err := preview.NewOpener(cfg.PreviewDir).Open(page, blocks)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", path)
			return nil
		}

		if renderHTML {
			fmt.Fprint(cmd.OutOrStdout(), domain.RenderHTML(page, blocks))
		} else {
			fmt.Fprint(cmd.OutOrStdout(), domain.RenderMarkdown(page, blocks))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().BoolVar(&renderHTML, "html", false, "render HTML instead of Markdown")
	renderCmd.Flags().BoolVar(&renderOpen, "open", false, "open the rendered page in the default browser")
}
