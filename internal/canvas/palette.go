package canvas

import "webbuilder/internal/domain"

const (
	defaultTextContent   = "Double click to edit"
	defaultButtonContent = "Click Me"
)

// NewPaletteElement builds the element a palette drop creates. The id is
// left empty for the store to assign.
func NewPaletteElement(t domain.ElementType) *domain.Element {
	el := &domain.Element{
		Type: t,
		Style: domain.Style{
			Padding:         "10px",
			BackgroundColor: "transparent",
			Color:           "#000000",
			BorderRadius:    "4px",
			Width:           "auto",
			Height:          "auto",
			Display:         "block",
			Position:        domain.PositionStatic,
		},
	}
	switch t {
	case domain.ElementTypeText:
		el.Content = defaultTextContent
	case domain.ElementTypeButton:
		el.Content = defaultButtonContent
		el.Style.BackgroundColor = "#3b82f6"
		el.Style.Color = "#ffffff"
	case domain.ElementTypeImage:
		el.Style.Width = "200px"
		el.Style.Height = "200px"
	}
	return el
}
