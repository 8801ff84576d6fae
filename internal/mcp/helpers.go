package mcpserver

import "webbuilder/internal/domain"

// elementSummary is the compact listing shape used by tools and resources.
type elementSummary struct {
	ID       string             `json:"id"`
	Type     domain.ElementType `json:"type"`
	Content  string             `json:"content,omitempty"`
	Position domain.Position    `json:"position,omitempty"`
	Left     string             `json:"left,omitempty"`
	Top      string             `json:"top,omitempty"`
	Width    string             `json:"width,omitempty"`
	Height   string             `json:"height,omitempty"`
	Children []elementSummary   `json:"children,omitempty"`
}

func summarizeElements(elements []*domain.Element) []elementSummary {
	out := make([]elementSummary, len(elements))
	for i, el := range elements {
		out[i] = elementSummary{
			ID:       el.ID,
			Type:     el.Type,
			Content:  truncate(el.Content, 80),
			Position: el.Style.Position,
			Left:     el.Style.Left,
			Top:      el.Style.Top,
			Width:    el.Style.Width,
			Height:   el.Style.Height,
		}
		if len(el.Children) > 0 {
			out[i].Children = summarizeElements(el.Children)
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
