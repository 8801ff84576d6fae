package mcpserver

import (
	"testing"

	"webbuilder/internal/domain"
)

func abs(id string, left, top, w, h float64) *domain.Element {
	return &domain.Element{ID: id, Type: domain.ElementTypeText, Style: domain.Style{
		Position: domain.PositionAbsolute,
		Left:     domain.FormatPx(left),
		Top:      domain.FormatPx(top),
		Width:    domain.FormatPx(w),
		Height:   domain.FormatPx(h),
	}}
}

func TestNextPosition_EmptyCanvas(t *testing.T) {
	le := NewLayoutEngine(0)
	x, y := le.NextPosition(nil, 480, 360)
	if x != 0 || y != 0 {
		t.Errorf("expected (0, 0) for empty canvas, got (%.0f, %.0f)", x, y)
	}
}

func TestNextPosition_IgnoresFlowElements(t *testing.T) {
	le := NewLayoutEngine(0)
	flow := &domain.Element{ID: "f", Type: domain.ElementTypeText, Style: domain.Style{Width: "500px", Height: "500px"}}
	x, y := le.NextPosition([]*domain.Element{flow}, 100, 100)
	if x != 0 || y != 0 {
		t.Errorf("flow elements should not block placement, got (%.0f, %.0f)", x, y)
	}
}

func TestNextPosition_MultipleElements(t *testing.T) {
	le := NewLayoutEngine(0)
	existing := []*domain.Element{
		abs("1", 0, 0, 480, 360),
		abs("2", 540, 0, 480, 360),
	}
	x, y := le.NextPosition(existing, 480, 360)

	for _, occ := range occupancy(existing) {
		r := rect{x, y, 480, 360}
		padded := rect{occ.x - Padding, occ.y - Padding, occ.w + Padding*2, occ.h + Padding*2}
		if r.intersects(padded) {
			t.Errorf("position (%.0f, %.0f) overlaps element at (%.0f, %.0f)", x, y, occ.x, occ.y)
		}
	}
}

func TestNextPosition_DefaultSizeForAuto(t *testing.T) {
	le := NewLayoutEngine(0)
	auto := &domain.Element{ID: "a", Type: domain.ElementTypeText, Style: domain.Style{
		Position: domain.PositionAbsolute, Left: "0px", Top: "0px", Width: "auto", Height: "auto",
	}}
	occ := occupancy([]*domain.Element{auto})
	if occ[0].w != DefaultElementW || occ[0].h != DefaultElementH {
		t.Errorf("expected default size, got %.0fx%.0f", occ[0].w, occ[0].h)
	}

	x, y := le.NextPosition([]*domain.Element{auto}, 100, 100)
	padded := rect{-Padding, -Padding, DefaultElementW + Padding*2, DefaultElementH + Padding*2}
	if (rect{x, y, 100, 100}).intersects(padded) {
		t.Errorf("position (%.0f, %.0f) overlaps the auto-sized element", x, y)
	}
}

func TestArrangeGroup(t *testing.T) {
	le := NewLayoutEngine(0)
	elements := []*domain.Element{
		abs("1", 999, 999, 300, 200),
		abs("2", 999, 999, 300, 200),
		abs("3", 999, 999, 300, 200),
	}

	arranged := le.ArrangeGroup(elements, 0, 0)

	if arranged[0].Style.Left != "0px" || arranged[0].Style.Top != "0px" {
		t.Errorf("first element should be at origin, got (%s, %s)", arranged[0].Style.Left, arranged[0].Style.Top)
	}
	if arranged[1].Style.Left != "360px" {
		t.Errorf("second element left = %s, want 360px", arranged[1].Style.Left)
	}
	if elements[0].Style.Left != "999px" {
		t.Error("inputs must not be modified")
	}
}

func TestArrangeGroup_Wraps(t *testing.T) {
	le := NewLayoutEngine(0)
	var elements []*domain.Element
	for i := 0; i < 6; i++ {
		elements = append(elements, abs("x", 0, 0, 400, 100))
	}
	arranged := le.ArrangeGroup(elements, 0, 0)
	last := arranged[len(arranged)-1]
	if last.Style.Top == "0px" {
		t.Error("expected wrap to a second row")
	}
}

func TestExtractPageIDFromURI(t *testing.T) {
	cases := map[string]string{
		"webbuilder://page/abc-123/elements": "abc-123",
		"webbuilder://page//elements":        "",
		"webbuilder://page/a/b/elements":     "",
		"webbuilder://state":                 "",
	}
	for uri, want := range cases {
		if got := extractPageIDFromURI(uri); got != want {
			t.Errorf("extractPageIDFromURI(%q) = %q, want %q", uri, got, want)
		}
	}
}
