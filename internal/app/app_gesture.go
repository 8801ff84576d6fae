package app

import (
	"webbuilder/internal/canvas"
)

// ============================================================
// Canvas gestures
// ============================================================

func (a *App) BeginDrag(payload canvas.DragPayload) error {
	return a.canvas.BeginDrag(payload)
}

func (a *App) EndDrag(drop canvas.DropEvent) (canvas.DropResult, error) {
	return a.canvas.EndDrag(drop)
}

// BeginResize starts a resize from one of the nw/ne/sw/se handles of the
// selected element. rendered is the element's on-screen box, used where the
// style has no px value.
func (a *App) BeginResize(elementID, handle string, pointer canvas.Point, rendered canvas.Rect) error {
	h, err := canvas.ParseHandle(handle)
	if err != nil {
		return err
	}
	return a.canvas.BeginResize(elementID, h, pointer, rendered)
}

func (a *App) MoveResize(pointer canvas.Point) (canvas.Rect, error) {
	return a.canvas.MoveResize(pointer)
}

func (a *App) EndResize() error {
	return a.canvas.EndResize()
}

func (a *App) GesturePhase() canvas.Phase {
	return a.canvas.Phase()
}
