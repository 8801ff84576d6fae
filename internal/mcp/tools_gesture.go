package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"webbuilder/internal/canvas"
	"webbuilder/internal/domain"
)

// The gesture tools replay a whole pointer gesture in one call through the
// same controller the canvas uses.

func (s *Server) registerGestureTools() {
	// ── drop_palette_item ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("drop_palette_item",
		mcp.WithDescription("Drop a palette item on the canvas, creating an element with the default style for its type"),
		mcp.WithString("type",
			mcp.Description("Element type"),
			mcp.Required(),
			mcp.Enum("text", "image", "button", "container", "video"),
		),
	), s.handleDropPaletteItem)

	// ── move_element ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_element",
		mcp.WithDescription("Drag an element. Absolute elements are offset by (dx, dy); flow elements dropped over overId are reordered."),
		mcp.WithString("id",
			mcp.Description("Element ID"),
			mcp.Required(),
		),
		mcp.WithNumber("dx",
			mcp.Description("Horizontal displacement in px"),
		),
		mcp.WithNumber("dy",
			mcp.Description("Vertical displacement in px"),
		),
		mcp.WithString("overId",
			mcp.Description("Drop target id (defaults to the canvas)"),
		),
	), s.handleMoveElement)

	// ── resize_element ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("resize_element",
		mcp.WithDescription("Drag a corner handle of an element by (dx, dy). Selects the element first."),
		mcp.WithString("id",
			mcp.Description("Element ID"),
			mcp.Required(),
		),
		mcp.WithString("handle",
			mcp.Description("Corner handle"),
			mcp.Required(),
			mcp.Enum("nw", "ne", "sw", "se"),
		),
		mcp.WithNumber("dx",
			mcp.Description("Horizontal pointer displacement in px"),
		),
		mcp.WithNumber("dy",
			mcp.Description("Vertical pointer displacement in px"),
		),
		mcp.WithNumber("width",
			mcp.Description("Rendered width at start, when the style width is not in px"),
		),
		mcp.WithNumber("height",
			mcp.Description("Rendered height at start, when the style height is not in px"),
		),
	), s.handleResizeElement)
}

func (s *Server) handleDropPaletteItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := requireString(req, "type")
	if err != nil {
		return nil, err
	}
	if err := s.canvas.BeginDrag(canvas.DragPayload{IsPaletteItem: true, Type: domain.ElementType(t)}); err != nil {
		return nil, err
	}
	res, err := s.canvas.EndDrag(canvas.DropEvent{OverID: canvas.CanvasDropID})
	if err != nil {
		return nil, err
	}
	if res.Action != canvas.DropAdded {
		return jsonResult(res)
	}
	return jsonResult(s.store.FindElement(res.ElementID))
}

func (s *Server) handleMoveElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "id")
	if err != nil {
		return nil, err
	}
	args := req.GetArguments()
	drop := canvas.DropEvent{
		OverID: req.GetString("overId", canvas.CanvasDropID),
		Delta:  canvas.Point{X: getFloat(args, "dx", 0), Y: getFloat(args, "dy", 0)},
	}
	if err := s.canvas.BeginDrag(canvas.DragPayload{ElementID: id}); err != nil {
		return nil, err
	}
	res, err := s.canvas.EndDrag(drop)
	if err != nil {
		return nil, err
	}
	return jsonResult(res)
}

func (s *Server) handleResizeElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "id")
	if err != nil {
		return nil, err
	}
	handle, err := canvas.ParseHandle(req.GetString("handle", ""))
	if err != nil {
		return nil, err
	}
	el := s.store.FindElement(id)
	if el == nil {
		return nil, fmt.Errorf("element %s not found on current page", id)
	}

	args := req.GetArguments()
	rendered := canvas.Rect{
		Left:   domain.PxOr(el.Style.Left, 0),
		Top:    domain.PxOr(el.Style.Top, 0),
		Width:  getFloat(args, "width", domain.PxOr(el.Style.Width, -1)),
		Height: getFloat(args, "height", domain.PxOr(el.Style.Height, -1)),
	}
	if rendered.Width < 0 || rendered.Height < 0 {
		return nil, fmt.Errorf("element %s has no px size; pass width and height", id)
	}

	s.store.SelectElement(id)
	if err := s.canvas.BeginResize(id, handle, canvas.Point{}, rendered); err != nil {
		return nil, err
	}
	r, moveErr := s.canvas.MoveResize(canvas.Point{X: getFloat(args, "dx", 0), Y: getFloat(args, "dy", 0)})
	if err := s.canvas.EndResize(); err != nil {
		return nil, err
	}
	if moveErr != nil {
		return nil, moveErr
	}
	return jsonResult(r)
}
