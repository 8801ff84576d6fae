package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPageTools() {
	// ── get_state ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Return the whole editor state: pages, current page and selection"),
	), s.handleGetState)

	// ── add_page ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_page",
		mcp.WithDescription("Create a page and make it current. The slug is derived from the name."),
		mcp.WithString("name",
			mcp.Description("Display name of the new page"),
			mcp.Required(),
		),
	), s.handleAddPage)

	// ── switch_page ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("switch_page",
		mcp.WithDescription("Make a page current. Clears the selection."),
		mcp.WithString("pageId",
			mcp.Description("ID of the page"),
			mcp.Required(),
		),
	), s.handleSwitchPage)

	// ── rename_page ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("rename_page",
		mcp.WithDescription("Change a page's display name. The slug is left unchanged."),
		mcp.WithString("pageId",
			mcp.Description("ID of the page"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("New display name"),
			mcp.Required(),
		),
	), s.handleRenamePage)

	// ── delete_page ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_page",
		mcp.WithDescription("Delete a page. The last remaining page cannot be deleted."),
		mcp.WithString("pageId",
			mcp.Description("ID of the page"),
			mcp.Required(),
		),
	), s.handleDeletePage)
}

func (s *Server) handleAddPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(req, "name")
	if err != nil {
		return nil, err
	}
	page := s.store.AddPage(name)
	if page == nil {
		return nil, fmt.Errorf("add page: editor closed")
	}
	return jsonResult(page)
}

func (s *Server) handleSwitchPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := requireString(req, "pageId")
	if err != nil {
		return nil, err
	}
	if !s.store.SwitchPage(pageID) {
		return textResult(fmt.Sprintf("Page %s not found; current page unchanged, selection cleared", pageID)), nil
	}
	return textResult(fmt.Sprintf("Switched to page %s", pageID)), nil
}

func (s *Server) handleRenamePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := requireString(req, "pageId")
	if err != nil {
		return nil, err
	}
	name, err := requireString(req, "name")
	if err != nil {
		return nil, err
	}
	if !s.store.RenamePage(pageID, name) {
		return textResult("Nothing renamed"), nil
	}
	return jsonResult(s.store.State().Page(pageID))
}

func (s *Server) handleDeletePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := requireString(req, "pageId")
	if err != nil {
		return nil, err
	}
	if !s.store.DeletePage(pageID) {
		return textResult(fmt.Sprintf("Page %s not deleted (unknown id or last page)", pageID)), nil
	}
	return textResult(fmt.Sprintf("Deleted page %s; current page is %s", pageID, s.store.State().CurrentPageID)), nil
}
