package mcpserver

import (
	"math"

	"webbuilder/internal/domain"
)

const (
	GridSize = 30.0 // default editor grid
	Padding  = 60.0 // 2 grid cells between elements
	MaxRowW  = 1800.0

	// size assumed for elements whose width/height is not in px
	DefaultElementW = 200.0
	DefaultElementH = 100.0
)

// LayoutEngine places absolutely positioned elements created by agents so
// they do not overlap what is already on the page.
type LayoutEngine struct {
	gridSize float64
	padding  float64
	maxRowW  float64
}

// NewLayoutEngine uses GridSize when gridSize is not positive.
func NewLayoutEngine(gridSize float64) *LayoutEngine {
	if gridSize <= 0 {
		gridSize = GridSize
	}
	return &LayoutEngine{
		gridSize: gridSize,
		padding:  Padding,
		maxRowW:  MaxRowW,
	}
}

// snap rounds v to the nearest grid point.
func (le *LayoutEngine) snap(v float64) float64 {
	return math.Round(v/le.gridSize) * le.gridSize
}

type rect struct {
	x, y, w, h float64
}

func (a rect) intersects(b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

func elementSize(el *domain.Element) (float64, float64) {
	return domain.PxOr(el.Style.Width, DefaultElementW), domain.PxOr(el.Style.Height, DefaultElementH)
}

// occupancy returns the boxes of the absolutely positioned elements.
// Flow elements do not take part in free-form placement.
func occupancy(elements []*domain.Element) []rect {
	var out []rect
	for _, el := range elements {
		if !el.Style.IsAbsolute() {
			continue
		}
		w, h := elementSize(el)
		out = append(out, rect{
			x: domain.PxOr(el.Style.Left, 0),
			y: domain.PxOr(el.Style.Top, 0),
			w: w,
			h: h,
		})
	}
	return out
}

// NextPosition finds the first grid cell, scanning rows top to bottom,
// where a (newW, newH) box keeps Padding away from every absolute element.
func (le *LayoutEngine) NextPosition(existing []*domain.Element, newW, newH float64) (float64, float64) {
	occupied := occupancy(existing)
	if len(occupied) == 0 {
		return 0, 0
	}

	candidate := rect{w: newW, h: newH}
	for y := 0.0; y < 100000; y += le.gridSize {
		for x := 0.0; x < le.maxRowW; x += le.gridSize {
			candidate.x = le.snap(x)
			candidate.y = le.snap(y)

			overlaps := false
			for _, occ := range occupied {
				padded := rect{
					x: occ.x - le.padding,
					y: occ.y - le.padding,
					w: occ.w + le.padding*2,
					h: occ.h + le.padding*2,
				}
				if candidate.intersects(padded) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				return candidate.x, candidate.y
			}
		}
	}

	// below everything
	maxY := 0.0
	for _, occ := range occupied {
		maxY = max(maxY, occ.y+occ.h)
	}
	return 0, le.snap(maxY + le.padding)
}

// ArrangeGroup lays elements out left to right from (startX, startY),
// wrapping at MaxRowW. It returns copies with updated left/top; the inputs
// are not modified.
func (le *LayoutEngine) ArrangeGroup(elements []*domain.Element, startX, startY float64) []*domain.Element {
	x := le.snap(startX)
	y := le.snap(startY)
	rowHeight := 0.0

	out := make([]*domain.Element, len(elements))
	for i, el := range elements {
		w, h := elementSize(el)
		c := *el
		c.Style.Left = domain.FormatPx(x)
		c.Style.Top = domain.FormatPx(y)
		out[i] = &c

		rowHeight = max(rowHeight, h)
		x += le.snap(w + le.padding)

		if x+w > le.maxRowW {
			x = le.snap(startX)
			y += le.snap(rowHeight + le.padding)
			rowHeight = 0
		}
	}
	return out
}
