package domain

const (
	HomePageID   = "home"
	HomePageName = "Home"
	HomePageSlug = "/"
)

type Page struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	Elements []*Element `json:"elements"`
}

// HomePage is the page every new session starts with.
func HomePage() *Page {
	return &Page{
		ID:       HomePageID,
		Name:     HomePageName,
		Slug:     HomePageSlug,
		Elements: []*Element{},
	}
}
