package canvas

import (
	"fmt"

	"webbuilder/internal/domain"
)

type resizeGesture struct {
	elementID  string
	handle     Handle
	pointer    Point
	start      Rect
	startStyle domain.Style
	absolute   bool
	clamp      bool
}

// BeginResize starts a corner resize on the selected element. rendered is
// the element's on-screen box; its Left/Top stand in for style left/top
// when those are unset or not px lengths.
func (c *Controller) BeginResize(elementID string, h Handle, pointer Point, rendered Rect) error {
	h, err := ParseHandle(string(h))
	if err != nil {
		return err
	}
	st := c.store.State()
	if elementID == "" || st.SelectedElementID != elementID {
		return fmt.Errorf("begin resize %s: %w", elementID, ErrNotSelected)
	}
	el := c.store.FindElement(elementID)
	if el == nil {
		return fmt.Errorf("begin resize %s: %w", elementID, ErrNotSelected)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseIdle {
		return fmt.Errorf("begin resize: %w (%s)", ErrGestureActive, c.phase)
	}
	c.phase = PhaseResizing
	c.resize = resizeGesture{
		elementID: elementID,
		handle:    h,
		pointer:   pointer,
		start: Rect{
			Left:   domain.PxOr(el.Style.Left, rendered.Left),
			Top:    domain.PxOr(el.Style.Top, rendered.Top),
			Width:  rendered.Width,
			Height: rendered.Height,
		},
		startStyle: el.Style,
		absolute:   el.Style.IsAbsolute(),
		clamp:      c.opts.ClampResizeDrift,
	}
	return nil
}

// MoveResize applies the geometry for the current pointer position and
// returns it.
func (c *Controller) MoveResize(pointer Point) (Rect, error) {
	c.mu.Lock()
	if c.phase != PhaseResizing {
		c.mu.Unlock()
		return Rect{}, fmt.Errorf("move resize: %w", ErrNoGesture)
	}
	g := c.resize
	c.mu.Unlock()

	r := ComputeResize(g.handle, g.start, pointer.X-g.pointer.X, pointer.Y-g.pointer.Y, g.absolute, g.clamp)
	style := g.startStyle
	style.Width = domain.FormatPx(r.Width)
	style.Height = domain.FormatPx(r.Height)
	if g.absolute {
		style.Left = domain.FormatPx(r.Left)
		style.Top = domain.FormatPx(r.Top)
	}
	c.store.UpdateElement(g.elementID, domain.StylePatch(style))
	return r, nil
}

// EndResize closes the gesture. The last move already holds the result.
func (c *Controller) EndResize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseResizing {
		return fmt.Errorf("end resize: %w", ErrNoGesture)
	}
	c.log.Debug("resize ended", "element", c.resize.elementID, "handle", c.resize.handle)
	c.reset()
	return nil
}
