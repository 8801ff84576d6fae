package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPreviewTools() {
	// ── preview_click ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("preview_click",
		mcp.WithDescription("Click a button as in preview mode: follow its page link, then GET its API endpoint"),
		mcp.WithString("id",
			mcp.Description("Button element ID on the current page"),
			mcp.Required(),
		),
	), s.handlePreviewClick)

	// ── list_api_calls ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_api_calls",
		mcp.WithDescription("List recent preview API calls, newest first"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of calls (default 20)"),
		),
	), s.handleListAPICalls)
}

func (s *Server) handlePreviewClick(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "id")
	if err != nil {
		return nil, err
	}
	res, err := s.preview.Click(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonResult(res)
}

func (s *Server) handleListAPICalls(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(getFloat(req.GetArguments(), "limit", 20))
	calls, err := s.preview.RecentCalls(limit)
	if err != nil {
		return nil, err
	}
	return jsonResult(calls)
}
