package canvas

import (
	"fmt"

	"webbuilder/internal/domain"
)

// CanvasDropID is the drop target id of the canvas surface itself.
const CanvasDropID = "canvas-droppable"

// DragPayload describes what is being dragged: a palette template
// (IsPaletteItem with Type) or an existing element (ElementID).
type DragPayload struct {
	IsPaletteItem bool               `json:"isPaletteItem"`
	Type          domain.ElementType `json:"type"`
	ElementID     string             `json:"elementId"`
}

// DropEvent is the end of a drag. OverID is empty when the pointer was
// released over no drop target.
type DropEvent struct {
	OverID string `json:"overId"`
	Delta  Point  `json:"delta"`
}

type DropAction string

const (
	DropDiscarded DropAction = "discarded"
	DropAdded     DropAction = "added"
	DropMoved     DropAction = "moved"
	DropReordered DropAction = "reordered"
)

type DropResult struct {
	Action    DropAction `json:"action"`
	ElementID string     `json:"elementId,omitempty"`
}

func (c *Controller) BeginDrag(p DragPayload) error {
	if p.IsPaletteItem && !p.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, p.Type)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseIdle {
		return fmt.Errorf("begin drag: %w (%s)", ErrGestureActive, c.phase)
	}
	c.phase = PhaseDragging
	c.drag = p
	return nil
}

// EndDrag finishes the drag and applies at most one mutation.
func (c *Controller) EndDrag(drop DropEvent) (DropResult, error) {
	c.mu.Lock()
	if c.phase != PhaseDragging {
		c.mu.Unlock()
		return DropResult{}, fmt.Errorf("end drag: %w", ErrNoGesture)
	}
	payload := c.drag
	c.reset()
	c.mu.Unlock()

	res := c.drop(payload, drop)
	c.log.Debug("drag ended", "action", res.Action, "element", res.ElementID, "over", drop.OverID)
	return res, nil
}

func (c *Controller) drop(p DragPayload, drop DropEvent) DropResult {
	discarded := DropResult{Action: DropDiscarded, ElementID: p.ElementID}
	if drop.OverID == "" {
		return discarded
	}

	if p.IsPaletteItem {
		if drop.OverID != CanvasDropID {
			return discarded
		}
		el := c.store.AddElement(NewPaletteElement(p.Type))
		if el == nil {
			return discarded
		}
		return DropResult{Action: DropAdded, ElementID: el.ID}
	}

	el := c.store.FindElement(p.ElementID)
	if el != nil && el.Style.IsAbsolute() {
		style := el.Style
		style.Left = domain.FormatPx(domain.PxOr(style.Left, 0) + drop.Delta.X)
		style.Top = domain.FormatPx(domain.PxOr(style.Top, 0) + drop.Delta.Y)
		if !c.store.UpdateElement(el.ID, domain.StylePatch(style)) {
			return discarded
		}
		return DropResult{Action: DropMoved, ElementID: el.ID}
	}

	if drop.OverID != CanvasDropID && drop.OverID != p.ElementID {
		if c.store.ReorderElements(p.ElementID, drop.OverID) {
			return DropResult{Action: DropReordered, ElementID: p.ElementID}
		}
	}
	return discarded
}
