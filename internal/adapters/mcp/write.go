package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"opennoution/internal/application/commands"
	"opennoution/internal/domain"
	"opennoution/internal/ports"
)

// RegisterWriteTools adds all notebook write tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, store ports.Store) {
	s.AddTool(createPageTool(), createPageHandler(store))
	s.AddTool(renamePageTool(), renamePageHandler(store))
	s.AddTool(deletePageTool(), deletePageHandler(store))
	s.AddTool(addBlockTool(), addBlockHandler(store))
	s.AddTool(updateBlockTool(), updateBlockHandler(store))
	s.AddTool(deleteBlockTool(), deleteBlockHandler(store))
	s.AddTool(setBlockTypeTool(), setBlockTypeHandler(store))
}

// --- create_page ---

func createPageTool() mcp.Tool {
	return mcp.NewTool("create_page",
		mcp.WithDescription("Create a page at the end of its sibling group. Omit parent_id to create a root page."),
		mcp.WithString("title",
			mcp.Description("Page title. Empty creates an \"Untitled\" page."),
		),
		mcp.WithNumber("parent_id",
			mcp.Description("ID of the parent page"),
		),
	)
}

func createPageHandler(store ports.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title := req.GetString("title", "")
		var parentID *int64
		if id := req.GetInt("parent_id", 0); id > 0 {
			parentID = domain.Int64Ptr(int64(id))
		}

		result, err := commands.NewCreatePageCommand(store, title, parentID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- rename_page ---

func renamePageTool() mcp.Tool {
	return mcp.NewTool("rename_page",
		mcp.WithDescription("Change a page title."),
		mcp.WithNumber("id",
			mcp.Description("Page ID"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
			mcp.Required(),
		),
	)
}

func renamePageHandler(store ports.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		title := req.GetString("title", "")

		result, err := commands.NewUpdatePageCommand(store, id, domain.PagePatch{Title: &title}).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_page ---

func deletePageTool() mcp.Tool {
	return mcp.NewTool("delete_page",
		mcp.WithDescription("Delete a page together with its blocks and every descendant page."),
		mcp.WithNumber("id",
			mcp.Description("Page ID"),
			mcp.Required(),
		),
	)
}

func deletePageHandler(store ports.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))

		result, err := commands.NewDeletePageCommand(store, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_block ---

func addBlockTool() mcp.Tool {
	return mcp.NewTool("add_block",
		mcp.WithDescription("Append a block to a page, or insert it right after another block."),
		mcp.WithNumber("page_id",
			mcp.Description("Page ID"),
			mcp.Required(),
		),
		mcp.WithString("type",
			mcp.Description("Block type"),
			mcp.Enum("text", "h1", "h2", "h3", "list", "checklist", "quote", "code"),
		),
		mcp.WithString("content",
			mcp.Description("Block content, inline markdown allowed"),
		),
		mcp.WithNumber("after_id",
			mcp.Description("Insert after this block instead of appending"),
		),
	)
}

func addBlockHandler(store ports.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pageID := int64(req.GetInt("page_id", 0))
		blockType, err := domain.ParseBlockType(req.GetString("type", "text"))
		if err != nil {
			return toolError(err)
		}
		content := req.GetString("content", "")

		afterID := int64(req.GetInt("after_id", 0))
		if afterID <= 0 {
			result, err := commands.NewCreateBlockCommand(store, pageID, blockType, content, nil).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(result.Message), nil
		}

		inserted, err := commands.NewInsertBlockAfterCommand(store, pageID, afterID, blockType).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if content != "" {
			if _, err := commands.NewUpdateBlockCommand(store, inserted.Block.ID, domain.BlockPatch{Content: &content}).Execute(ctx); err != nil {
				return toolError(err)
			}
		}
		return mcp.NewToolResultText(inserted.Message), nil
	}
}

// --- update_block ---

func updateBlockTool() mcp.Tool {
	return mcp.NewTool("update_block",
		mcp.WithDescription("Replace a block's content and optionally its checked state."),
		mcp.WithNumber("id",
			mcp.Description("Block ID"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("New content"),
			mcp.Required(),
		),
		mcp.WithBoolean("checked",
			mcp.Description("Checked state for checklist blocks"),
		),
	)
}

func updateBlockHandler(store ports.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		content := req.GetString("content", "")
		patch := domain.BlockPatch{Content: &content}
		if _, ok := req.GetArguments()["checked"]; ok {
			checked := req.GetBool("checked", false)
			patch.Checked = &checked
		}

		result, err := commands.NewUpdateBlockCommand(store, id, patch).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if result.Block == nil {
			return toolError(fmt.Errorf("block %d not found", id))
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_block ---

func deleteBlockTool() mcp.Tool {
	return mcp.NewTool("delete_block",
		mcp.WithDescription("Delete a single block."),
		mcp.WithNumber("id",
			mcp.Description("Block ID"),
			mcp.Required(),
		),
	)
}

func deleteBlockHandler(store ports.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))

		result, err := commands.NewDeleteBlockCommand(store, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_block_type ---

func setBlockTypeTool() mcp.Tool {
	return mcp.NewTool("set_block_type",
		mcp.WithDescription("Change a block's type. Like the slash menu, this clears the block content."),
		mcp.WithNumber("id",
			mcp.Description("Block ID"),
			mcp.Required(),
		),
		mcp.WithString("type",
			mcp.Description("New block type"),
			mcp.Required(),
			mcp.Enum("text", "h1", "h2", "h3", "list", "checklist", "quote", "code"),
		),
	)
}

func setBlockTypeHandler(store ports.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		blockType, err := domain.ParseBlockType(req.GetString("type", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewSetBlockTypeCommand(store, id, blockType).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if result.Block == nil {
			return toolError(fmt.Errorf("block %d not found", id))
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
