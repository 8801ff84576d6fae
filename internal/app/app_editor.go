package app

import (
	"fmt"

	"webbuilder/internal/domain"
	"webbuilder/internal/editor"
)

// ============================================================
// Pages
// ============================================================

// GetState returns the current snapshot for the initial render. Later
// snapshots arrive through the editor:state-changed event.
func (a *App) GetState() *domain.State {
	return a.store.State()
}

func (a *App) AddPage(name string) (*domain.Page, error) {
	p := a.store.AddPage(name)
	if p == nil {
		return nil, fmt.Errorf("add page %q: editor closed", name)
	}
	return p, nil
}

// SwitchPage reports whether pageID exists. The selection is cleared either way.
func (a *App) SwitchPage(pageID string) bool {
	return a.store.SwitchPage(pageID)
}

// DeletePage refuses to delete the last remaining page.
func (a *App) DeletePage(pageID string) bool {
	return a.store.DeletePage(pageID)
}

func (a *App) RenamePage(pageID, name string) bool {
	return a.store.RenamePage(pageID, name)
}

// ============================================================
// Elements
// ============================================================

func (a *App) AddElement(el domain.Element) (*domain.Element, error) {
	if !el.Type.Valid() {
		return nil, fmt.Errorf("add element: %w: unknown type %q", editor.ErrInvalidElement, el.Type)
	}
	stored := a.store.AddElement(&el)
	if stored == nil {
		return nil, fmt.Errorf("add element: editor closed")
	}
	return stored, nil
}

// AddElementJSON validates raw against the element schema before adding it.
func (a *App) AddElementJSON(raw string) (*domain.Element, error) {
	el, err := editor.DecodeElement([]byte(raw))
	if err != nil {
		return nil, err
	}
	return a.AddElement(*el)
}

func (a *App) AddChildElement(parentID string, el domain.Element) (*domain.Element, error) {
	if !el.Type.Valid() {
		return nil, fmt.Errorf("add child: %w: unknown type %q", editor.ErrInvalidElement, el.Type)
	}
	stored := a.store.AddChildElement(parentID, &el)
	if stored == nil {
		return nil, fmt.Errorf("add child: container %s not found on current page", parentID)
	}
	return stored, nil
}

// UpdateElement reports whether id was found on the current page.
func (a *App) UpdateElement(id string, patch domain.ElementPatch) bool {
	return a.store.UpdateElement(id, patch)
}

func (a *App) UpdateElementJSON(id, raw string) (bool, error) {
	patch, err := editor.DecodePatch([]byte(raw))
	if err != nil {
		return false, err
	}
	return a.store.UpdateElement(id, patch), nil
}

func (a *App) RemoveElement(id string) bool {
	return a.store.RemoveElement(id)
}

// SelectElement with an empty id clears the selection.
func (a *App) SelectElement(id string) {
	a.store.SelectElement(id)
}

func (a *App) ReorderElements(activeID, overID string) bool {
	return a.store.ReorderElements(activeID, overID)
}
