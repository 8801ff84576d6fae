// Package mcpserver exposes the page builder's editor over the Model
// Context Protocol so agents can build pages without the GUI.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"webbuilder/internal/canvas"
	"webbuilder/internal/editor"
	applog "webbuilder/internal/log"
	"webbuilder/internal/service"
)

// Server is the MCP server for the page builder.
type Server struct {
	mcp     *server.MCPServer
	store   *editor.Store
	canvas  *canvas.Controller
	preview *service.PreviewService
	layout  *LayoutEngine
	log     *slog.Logger
}

// Deps holds what the app layer hands to the MCP server. Preview may be
// nil, which leaves out the preview_click tool.
type Deps struct {
	Store    *editor.Store
	Canvas   *canvas.Controller
	Preview  *service.PreviewService
	GridSize float64
}

func New(deps Deps) *Server {
	s := &Server{
		store:   deps.Store,
		canvas:  deps.Canvas,
		preview: deps.Preview,
		layout:  NewLayoutEngine(deps.GridSize),
		log:     applog.WithComponent("mcp"),
	}

	s.mcp = server.NewMCPServer(
		"webbuilder-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerPageTools()
	s.registerElementTools()
	s.registerGestureTools()
	if s.preview != nil {
		s.registerPreviewTools()
	}
	s.registerResources()
	s.registerPrompts()
	return s
}

// MCP returns the underlying server, mainly for in-process clients.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ServeStdio blocks serving on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func getFloat(args map[string]any, key string, fallback float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return fallback
}

func requireString(req mcp.CallToolRequest, key string) (string, error) {
	v := req.GetString(key, "")
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func (s *Server) handleGetState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.store.State())
}
