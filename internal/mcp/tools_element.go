package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"webbuilder/internal/domain"
	"webbuilder/internal/editor"
)

func (s *Server) registerElementTools() {
	// ── add_element ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_element",
		mcp.WithDescription("Add an element to the current page and select it. "+
			"Absolutely positioned elements without left/top are placed on a free grid cell."),
		mcp.WithString("element",
			mcp.Description(`Element JSON, e.g. {"type":"button","content":"Buy","style":{"position":"absolute","width":"120px","height":"40px"}}`),
			mcp.Required(),
		),
		mcp.WithString("parentId",
			mcp.Description("Optional container id to nest the element into"),
		),
	), s.handleAddElement)

	// ── update_element ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_element",
		mcp.WithDescription("Merge fields into an element on the current page. A style object replaces the whole style."),
		mcp.WithString("id",
			mcp.Description("Element ID"),
			mcp.Required(),
		),
		mcp.WithString("patch",
			mcp.Description(`Patch JSON with any of content, src, linkToPageId, apiEndpoint, style`),
			mcp.Required(),
		),
	), s.handleUpdateElement)

	// ── remove_element ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("remove_element",
		mcp.WithDescription("Remove an element (and its children) from the current page. Clears the selection."),
		mcp.WithString("id",
			mcp.Description("Element ID"),
			mcp.Required(),
		),
	), s.handleRemoveElement)

	// ── select_element ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("select_element",
		mcp.WithDescription("Select an element. Omit id to clear the selection."),
		mcp.WithString("id",
			mcp.Description("Element ID"),
		),
	), s.handleSelectElement)

	// ── reorder_elements ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("reorder_elements",
		mcp.WithDescription("Move a top-level element to the position of another top-level element"),
		mcp.WithString("activeId",
			mcp.Description("Element to move"),
			mcp.Required(),
		),
		mcp.WithString("overId",
			mcp.Description("Element whose position it takes"),
			mcp.Required(),
		),
	), s.handleReorderElements)

	// ── arrange_elements ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("arrange_elements",
		mcp.WithDescription("Lay out every absolutely positioned top-level element of the current page on a grid"),
		mcp.WithNumber("startX",
			mcp.Description("Left of the first cell (default 0)"),
		),
		mcp.WithNumber("startY",
			mcp.Description("Top of the first cell (default 0)"),
		),
	), s.handleArrangeElements)
}

func (s *Server) handleAddElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := requireString(req, "element")
	if err != nil {
		return nil, err
	}
	el, err := editor.DecodeElement([]byte(raw))
	if err != nil {
		return nil, err
	}

	parentID := req.GetString("parentId", "")
	if parentID != "" {
		stored := s.store.AddChildElement(parentID, el)
		if stored == nil {
			return nil, fmt.Errorf("container %s not found on current page", parentID)
		}
		return jsonResult(stored)
	}

	if el.Style.IsAbsolute() && el.Style.Left == "" && el.Style.Top == "" {
		page := s.store.CurrentPage()
		w, h := elementSize(el)
		x, y := s.layout.NextPosition(page.Elements, w, h)
		el.Style.Left = domain.FormatPx(x)
		el.Style.Top = domain.FormatPx(y)
	}
	stored := s.store.AddElement(el)
	if stored == nil {
		return nil, fmt.Errorf("add element: editor closed")
	}
	return jsonResult(stored)
}

func (s *Server) handleUpdateElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "id")
	if err != nil {
		return nil, err
	}
	raw, err := requireString(req, "patch")
	if err != nil {
		return nil, err
	}
	patch, err := editor.DecodePatch([]byte(raw))
	if err != nil {
		return nil, err
	}
	if !s.store.UpdateElement(id, patch) {
		return textResult(fmt.Sprintf("Element %s not found on current page; nothing changed", id)), nil
	}
	return jsonResult(s.store.FindElement(id))
}

func (s *Server) handleRemoveElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "id")
	if err != nil {
		return nil, err
	}
	if !s.store.RemoveElement(id) {
		return textResult(fmt.Sprintf("Element %s not found; selection cleared", id)), nil
	}
	return textResult(fmt.Sprintf("Removed element %s", id)), nil
}

func (s *Server) handleSelectElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	s.store.SelectElement(id)
	if id == "" {
		return textResult("Selection cleared"), nil
	}
	return textResult(fmt.Sprintf("Selected %s", id)), nil
}

func (s *Server) handleReorderElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activeID, err := requireString(req, "activeId")
	if err != nil {
		return nil, err
	}
	overID, err := requireString(req, "overId")
	if err != nil {
		return nil, err
	}
	if !s.store.ReorderElements(activeID, overID) {
		return textResult("Order unchanged"), nil
	}
	return jsonResult(summarizeElements(s.store.CurrentPage().Elements))
}

func (s *Server) handleArrangeElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	startX := getFloat(args, "startX", 0)
	startY := getFloat(args, "startY", 0)

	var absolute []*domain.Element
	for _, el := range s.store.CurrentPage().Elements {
		if el.Style.IsAbsolute() {
			absolute = append(absolute, el)
		}
	}
	if len(absolute) == 0 {
		return textResult("No absolutely positioned elements to arrange"), nil
	}
	for _, p := range s.layout.ArrangeGroup(absolute, startX, startY) {
		s.store.UpdateElement(p.ID, domain.StylePatch(p.Style))
	}
	return jsonResult(summarizeElements(s.store.CurrentPage().Elements))
}
