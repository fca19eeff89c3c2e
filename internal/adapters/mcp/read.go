package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"opennoution/internal/application"
	"opennoution/internal/application/commands"
	"opennoution/internal/domain"
	"opennoution/internal/ports"
)

// RegisterReadTools adds all read-only notebook tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.Store) {
	s.AddTool(listPagesTool(), listPagesHandler(store))
	s.AddTool(treeTool(), treeHandler(store))
	s.AddTool(readPageTool(), readPageHandler(store))
	s.AddTool(exportTool(), exportHandler(store))
}

// --- list_pages ---

func listPagesTool() mcp.Tool {
	return mcp.NewTool("list_pages",
		mcp.WithDescription("List pages. Without arguments lists root pages. With a parent ID lists that page's children."),
		mcp.WithNumber("parent_id",
			mcp.Description("ID of the parent page. Omit to list root pages."),
		),
	)
}

func listPagesHandler(store ports.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var parentID *int64
		if id := req.GetInt("parent_id", 0); id > 0 {
			parentID = domain.Int64Ptr(int64(id))
		}

		pages, err := commands.NewListChildPagesCommand(store, parentID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(pages, formatPage)
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the page hierarchy as a tree."),
	)
}

func treeHandler(store ports.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root, err := commands.NewBuildTreeCommand(store, nil).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if !root.HasChildren() {
			return mcp.NewToolResultText("No pages."), nil
		}
		var sb strings.Builder
		renderTree(&sb, root, "")
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, node *domain.TreeNode, prefix string) {
	if !node.IsRoot() {
		fmt.Fprintf(sb, "%s%d %s\n", prefix, node.Page.ID, node.Page.Title)
		prefix += "  "
	}
	for _, child := range node.Children {
		renderTree(sb, child, prefix)
	}
}

// --- read_page ---

func readPageTool() mcp.Tool {
	return mcp.NewTool("read_page",
		mcp.WithDescription("Read a page as markdown, one line per block. Set with_ids to prefix each block with its ID for later edits."),
		mcp.WithNumber("id",
			mcp.Description("Page ID"),
			mcp.Required(),
		),
		mcp.WithBoolean("with_ids",
			mcp.Description("Prefix each block with [block ID]"),
		),
	)
}

func readPageHandler(store ports.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		if id <= 0 {
			return toolError(fmt.Errorf("id is required"))
		}

		page, err := commands.NewGetPageCommand(store, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if page == nil {
			return toolError(&application.NotFoundError{Kind: "page", ID: id})
		}

		blocks, err := commands.NewListBlocksCommand(store, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if !req.GetBool("with_ids", false) {
			return mcp.NewToolResultText(domain.RenderMarkdown(page, blocks)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s\n\n", page.Title)
		for _, b := range blocks {
			fmt.Fprintf(&sb, "[%d] %s", b.ID, domain.RenderMarkdown(nil, []domain.Block{b}))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- export ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export",
		mcp.WithDescription("Export the whole notebook as a JSON backup envelope."),
	)
}

func exportHandler(store ports.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		env, err := commands.NewExportCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatPage(p domain.Page) string {
	return fmt.Sprintf("%d  %s", p.ID, p.Title)
}
