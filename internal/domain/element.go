package domain

type ElementType string

const (
	ElementTypeText      ElementType = "text"
	ElementTypeImage     ElementType = "image"
	ElementTypeButton    ElementType = "button"
	ElementTypeContainer ElementType = "container"
	ElementTypeVideo     ElementType = "video"
)

// ElementTypes lists every type the palette offers, in palette order.
var ElementTypes = []ElementType{
	ElementTypeText,
	ElementTypeImage,
	ElementTypeButton,
	ElementTypeContainer,
	ElementTypeVideo,
}

func (t ElementType) Valid() bool {
	for _, et := range ElementTypes {
		if et == t {
			return true
		}
	}
	return false
}

type Position string

const (
	PositionStatic   Position = "static"
	PositionRelative Position = "relative"
	PositionAbsolute Position = "absolute"
	PositionFixed    Position = "fixed"
)

// Style holds CSS values as strings. Empty means unset.
type Style struct {
	Position        Position `json:"position,omitempty"`
	Display         string   `json:"display,omitempty"`
	Width           string   `json:"width,omitempty"`
	Height          string   `json:"height,omitempty"`
	Top             string   `json:"top,omitempty"`
	Left            string   `json:"left,omitempty"`
	ZIndex          string   `json:"zIndex,omitempty"`
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	Color           string   `json:"color,omitempty"`
	Padding         string   `json:"padding,omitempty"`
	BorderRadius    string   `json:"borderRadius,omitempty"`
}

func (s Style) IsAbsolute() bool {
	return s.Position == PositionAbsolute
}

type Element struct {
	ID           string      `json:"id"`
	Type         ElementType `json:"type"`
	Content      string      `json:"content,omitempty"`      // text or button label
	Src          string      `json:"src,omitempty"`          // image/video URL or data URL
	LinkToPageID string      `json:"linkToPageId,omitempty"` // button only
	APIEndpoint  string      `json:"apiEndpoint,omitempty"`  // button only
	Style        Style       `json:"style"`
	Children     []*Element  `json:"children,omitempty"`
}

// Clone returns a deep copy of e, children included.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := *e
	if e.Children != nil {
		c.Children = make([]*Element, len(e.Children))
		for i, ch := range e.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return &c
}

// ElementPatch is a partial update. Nil fields are left untouched; a
// non-nil Style replaces the whole style.
type ElementPatch struct {
	Content      *string `json:"content,omitempty"`
	Src          *string `json:"src,omitempty"`
	LinkToPageID *string `json:"linkToPageId,omitempty"`
	APIEndpoint  *string `json:"apiEndpoint,omitempty"`
	Style        *Style  `json:"style,omitempty"`
}

func (p ElementPatch) Empty() bool {
	return p.Content == nil && p.Src == nil && p.LinkToPageID == nil &&
		p.APIEndpoint == nil && p.Style == nil
}

// Apply returns a shallow copy of e with the patch merged in. Children are
// shared with e.
func (p ElementPatch) Apply(e *Element) *Element {
	c := *e
	if p.Content != nil {
		c.Content = *p.Content
	}
	if p.Src != nil {
		c.Src = *p.Src
	}
	if p.LinkToPageID != nil {
		c.LinkToPageID = *p.LinkToPageID
	}
	if p.APIEndpoint != nil {
		c.APIEndpoint = *p.APIEndpoint
	}
	if p.Style != nil {
		c.Style = *p.Style
	}
	return &c
}

// StylePatch builds a patch that replaces only the style.
func StylePatch(s Style) ElementPatch {
	return ElementPatch{Style: &s}
}
