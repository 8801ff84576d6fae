package domain

// State is one immutable snapshot of the editor document.
// SelectedElementID is empty when nothing is selected.
type State struct {
	Pages             []*Page `json:"pages"`
	CurrentPageID     string  `json:"currentPageId"`
	SelectedElementID string  `json:"selectedElementId"`
}

func InitialState() *State {
	return &State{
		Pages:         []*Page{HomePage()},
		CurrentPageID: HomePageID,
	}
}

// PageIndex returns the index of the page with the given id, or -1.
func (s *State) PageIndex(id string) int {
	for i, p := range s.Pages {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *State) Page(id string) *Page {
	if i := s.PageIndex(id); i >= 0 {
		return s.Pages[i]
	}
	return nil
}

func (s *State) CurrentPage() *Page {
	return s.Page(s.CurrentPageID)
}

// FindElement searches an element tree depth-first.
func FindElement(elements []*Element, id string) *Element {
	for _, el := range elements {
		if el.ID == id {
			return el
		}
		if found := FindElement(el.Children, id); found != nil {
			return found
		}
	}
	return nil
}
