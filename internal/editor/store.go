// Package editor holds the page builder's document state and the only
// operations allowed to change it.
package editor

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"webbuilder/internal/domain"
	applog "webbuilder/internal/log"
)

// EventStateChanged is emitted with the new *domain.State after every
// mutation that produced a new snapshot.
const EventStateChanged = "editor:state-changed"

// Emitter matches service.EventEmitter.
type Emitter interface {
	Emit(ctx context.Context, event string, data any)
}

// Store owns the current snapshot. Every mutation swaps in a new
// *domain.State; snapshots already handed out are never modified.
// Operations on unknown ids are silent no-ops.
type Store struct {
	emitMu  sync.Mutex
	mu      sync.RWMutex
	state   *domain.State
	closed  bool
	ctx     context.Context
	emitter Emitter
	newID   func() string
	log     *slog.Logger
}

type Option func(*Store)

// WithIDGenerator replaces uuid.NewString for new page and element ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore returns a store holding the initial single-page document.
// emitter may be nil.
func NewStore(ctx context.Context, emitter Emitter, opts ...Option) *Store {
	s := &Store{
		state:   domain.InitialState(),
		ctx:     ctx,
		emitter: emitter,
		newID:   uuid.NewString,
		log:     applog.WithComponent("editor"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the latest snapshot. Callers must treat it as read-only.
func (s *Store) State() *domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) CurrentPage() *domain.Page {
	return s.State().CurrentPage()
}

// FindElement searches the current page's tree.
func (s *Store) FindElement(id string) *domain.Element {
	if id == "" {
		return nil
	}
	p := s.CurrentPage()
	if p == nil {
		return nil
	}
	return domain.FindElement(p.Elements, id)
}

// SelectedElement resolves the selection against the current page. It is
// nil when nothing is selected or the selected id does not exist.
func (s *Store) SelectedElement() *domain.Element {
	st := s.State()
	if st.SelectedElementID == "" {
		return nil
	}
	p := st.CurrentPage()
	if p == nil {
		return nil
	}
	return domain.FindElement(p.Elements, st.SelectedElementID)
}

// Close ends the editing session. Later mutations are ignored.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// apply runs fn on the current snapshot. fn returns the next snapshot or
// nil for "no change". emitMu is held from the swap through Emit, so
// listeners see snapshots in the order they were applied. Emitters must not
// call back into mutating methods.
func (s *Store) apply(op string, fn func(cur *domain.State) *domain.State) bool {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	next := fn(s.state)
	if next == nil || next == s.state {
		s.mu.Unlock()
		return false
	}
	s.state = next
	s.mu.Unlock()

	applog.WithOperation(s.log, op).Debug("state changed",
		"pages", len(next.Pages), "current", next.CurrentPageID, "selected", next.SelectedElementID)
	if s.emitter != nil {
		s.emitter.Emit(s.ctx, EventStateChanged, next)
	}
	return true
}

// withCurrentElements returns a copy of cur whose current page carries the
// given top-level elements.
func withCurrentElements(cur *domain.State, elements []*domain.Element) *domain.State {
	idx := cur.PageIndex(cur.CurrentPageID)
	if idx < 0 {
		return nil
	}
	page := *cur.Pages[idx]
	page.Elements = elements
	return replacePage(cur, idx, &page)
}

func replacePage(cur *domain.State, idx int, page *domain.Page) *domain.State {
	next := *cur
	next.Pages = make([]*domain.Page, len(cur.Pages))
	copy(next.Pages, cur.Pages)
	next.Pages[idx] = page
	return &next
}

// ─────────────────────────────────────────────────────────────
// Pages
// ─────────────────────────────────────────────────────────────

// AddPage appends a page named name, makes it current and clears the
// selection.
func (s *Store) AddPage(name string) *domain.Page {
	page := &domain.Page{
		ID:       s.newID(),
		Name:     name,
		Slug:     domain.Slugify(name),
		Elements: []*domain.Element{},
	}
	ok := s.apply("add_page", func(cur *domain.State) *domain.State {
		next := *cur
		next.Pages = append(append(make([]*domain.Page, 0, len(cur.Pages)+1), cur.Pages...), page)
		next.CurrentPageID = page.ID
		next.SelectedElementID = ""
		return &next
	})
	if !ok {
		return nil
	}
	return page
}

// SwitchPage makes pageID current when it exists. The selection is cleared
// either way. Reports whether pageID resolved.
func (s *Store) SwitchPage(pageID string) bool {
	found := false
	s.apply("switch_page", func(cur *domain.State) *domain.State {
		next := *cur
		if cur.PageIndex(pageID) >= 0 {
			found = true
			next.CurrentPageID = pageID
		}
		next.SelectedElementID = ""
		if next.CurrentPageID == cur.CurrentPageID && cur.SelectedElementID == "" {
			return nil
		}
		return &next
	})
	return found
}

// DeletePage removes pageID unless it is the last page. When the current
// page goes away the first remaining page becomes current.
func (s *Store) DeletePage(pageID string) bool {
	return s.apply("delete_page", func(cur *domain.State) *domain.State {
		idx := cur.PageIndex(pageID)
		if idx < 0 || len(cur.Pages) <= 1 {
			return nil
		}
		next := *cur
		next.Pages = make([]*domain.Page, 0, len(cur.Pages)-1)
		next.Pages = append(next.Pages, cur.Pages[:idx]...)
		next.Pages = append(next.Pages, cur.Pages[idx+1:]...)
		if cur.CurrentPageID == pageID {
			next.CurrentPageID = next.Pages[0].ID
			next.SelectedElementID = ""
		}
		return &next
	})
}

// RenamePage changes the display name only; the slug keeps the value
// derived when the page was created.
func (s *Store) RenamePage(pageID, name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return s.apply("rename_page", func(cur *domain.State) *domain.State {
		idx := cur.PageIndex(pageID)
		if idx < 0 || cur.Pages[idx].Name == name {
			return nil
		}
		page := *cur.Pages[idx]
		page.Name = name
		return replacePage(cur, idx, &page)
	})
}

// ─────────────────────────────────────────────────────────────
// Elements
// ─────────────────────────────────────────────────────────────

// prepare deep-copies an incoming element so later changes by the caller
// cannot reach the snapshot, assigns ids where missing, and drops children
// of anything that is not a container.
func (s *Store) prepare(el *domain.Element) *domain.Element {
	c := el.Clone()
	var assign func(e *domain.Element)
	assign = func(e *domain.Element) {
		if e.ID == "" {
			e.ID = s.newID()
		}
		if e.Type != domain.ElementTypeContainer {
			e.Children = nil
		}
		for _, ch := range e.Children {
			assign(ch)
		}
	}
	assign(c)
	return c
}

// AddElement appends el to the current page's top level and selects it.
// The stored copy is returned.
func (s *Store) AddElement(el *domain.Element) *domain.Element {
	if el == nil {
		return nil
	}
	stored := s.prepare(el)
	ok := s.apply("add_element", func(cur *domain.State) *domain.State {
		page := cur.CurrentPage()
		if page == nil {
			return nil
		}
		elements := append(append(make([]*domain.Element, 0, len(page.Elements)+1), page.Elements...), stored)
		next := withCurrentElements(cur, elements)
		next.SelectedElementID = stored.ID
		return next
	})
	if !ok {
		return nil
	}
	return stored
}

// AddChildElement appends el to the children of the container parentID,
// searched anywhere in the current page, and selects it.
func (s *Store) AddChildElement(parentID string, el *domain.Element) *domain.Element {
	if el == nil {
		return nil
	}
	stored := s.prepare(el)
	ok := s.apply("add_child_element", func(cur *domain.State) *domain.State {
		page := cur.CurrentPage()
		if page == nil {
			return nil
		}
		elements, found := appendChild(page.Elements, parentID, stored)
		if !found {
			return nil
		}
		next := withCurrentElements(cur, elements)
		next.SelectedElementID = stored.ID
		return next
	})
	if !ok {
		return nil
	}
	return stored
}

// UpdateElement merges patch into every element with id in the current
// page's tree.
func (s *Store) UpdateElement(id string, patch domain.ElementPatch) bool {
	if patch.Style != nil {
		st := *patch.Style
		patch.Style = &st
	}
	return s.apply("update_element", func(cur *domain.State) *domain.State {
		page := cur.CurrentPage()
		if page == nil {
			return nil
		}
		elements, found := updateTree(page.Elements, id, patch)
		if !found {
			return nil
		}
		return withCurrentElements(cur, elements)
	})
}

// RemoveElement deletes id wherever it sits in the current page's tree,
// descendants included. The selection is always cleared.
func (s *Store) RemoveElement(id string) bool {
	removed := false
	s.apply("remove_element", func(cur *domain.State) *domain.State {
		var next *domain.State
		if page := cur.CurrentPage(); page != nil {
			if elements, ok := removeTree(page.Elements, id); ok {
				removed = true
				next = withCurrentElements(cur, elements)
			}
		}
		if next == nil {
			if cur.SelectedElementID == "" {
				return nil
			}
			c := *cur
			next = &c
		}
		next.SelectedElementID = ""
		return next
	})
	return removed
}

// SelectElement sets the selection without checking that id exists.
// An empty id clears it.
func (s *Store) SelectElement(id string) {
	s.apply("select_element", func(cur *domain.State) *domain.State {
		if cur.SelectedElementID == id {
			return nil
		}
		next := *cur
		next.SelectedElementID = id
		return &next
	})
}

// ReorderElements moves activeID to the index held by overID among the
// current page's top-level elements.
func (s *Store) ReorderElements(activeID, overID string) bool {
	if activeID == overID {
		return false
	}
	return s.apply("reorder_elements", func(cur *domain.State) *domain.State {
		page := cur.CurrentPage()
		if page == nil {
			return nil
		}
		from, to := indexOf(page.Elements, activeID), indexOf(page.Elements, overID)
		if from < 0 || to < 0 {
			return nil
		}
		return withCurrentElements(cur, arrayMove(page.Elements, from, to))
	})
}
