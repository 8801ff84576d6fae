package canvas

import (
	"fmt"
	"strings"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Handle names a resize corner.
type Handle string

const (
	HandleNW Handle = "nw"
	HandleNE Handle = "ne"
	HandleSW Handle = "sw"
	HandleSE Handle = "se"
)

// MinSize is the floor for width and height during a resize.
const MinSize = 10.0

func ParseHandle(s string) (Handle, error) {
	switch h := Handle(strings.ToLower(strings.TrimSpace(s))); h {
	case HandleNW, HandleNE, HandleSW, HandleSE:
		return h, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownHandle, s)
}

func (h Handle) east() bool  { return strings.Contains(string(h), "e") }
func (h Handle) west() bool  { return strings.Contains(string(h), "w") }
func (h Handle) north() bool { return strings.Contains(string(h), "n") }
func (h Handle) south() bool { return strings.Contains(string(h), "s") }

// ComputeResize returns the geometry for a pointer displacement of (dx, dy)
// from the gesture start. Left/top only move for absolutely positioned
// elements. With clamp unset, west/north handles shift the edge by the raw
// displacement even after the size has hit MinSize.
func ComputeResize(h Handle, start Rect, dx, dy float64, absolute, clamp bool) Rect {
	out := start
	if h.east() {
		out.Width = max(MinSize, start.Width+dx)
	}
	if h.south() {
		out.Height = max(MinSize, start.Height+dy)
	}
	if h.west() {
		out.Width = max(MinSize, start.Width-dx)
		if absolute {
			if clamp {
				out.Left = start.Left + (start.Width - out.Width)
			} else {
				out.Left = start.Left + dx
			}
		}
	}
	if h.north() {
		out.Height = max(MinSize, start.Height-dy)
		if absolute {
			if clamp {
				out.Top = start.Top + (start.Height - out.Height)
			} else {
				out.Top = start.Top + dy
			}
		}
	}
	return out
}
