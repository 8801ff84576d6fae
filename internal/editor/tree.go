package editor

import "webbuilder/internal/domain"

// The helpers below rebuild only the path from the root to the touched
// node. Slices and elements off that path are returned as-is, so callers
// can compare snapshots by pointer identity.

// updateTree merges patch into every element with the given id. A matched
// element's own children are not searched.
func updateTree(elements []*domain.Element, id string, patch domain.ElementPatch) ([]*domain.Element, bool) {
	var out []*domain.Element
	for i, el := range elements {
		next := el
		if el.ID == id {
			next = patch.Apply(el)
		} else if len(el.Children) > 0 {
			if children, ok := updateTree(el.Children, id, patch); ok {
				c := *el
				c.Children = children
				next = &c
			}
		}
		if next != el && out == nil {
			out = make([]*domain.Element, len(elements))
			copy(out, elements[:i])
		}
		if out != nil {
			out[i] = next
		}
	}
	if out == nil {
		return elements, false
	}
	return out, true
}

// removeTree drops every element with the given id at any depth.
func removeTree(elements []*domain.Element, id string) ([]*domain.Element, bool) {
	changed := false
	out := make([]*domain.Element, 0, len(elements))
	for _, el := range elements {
		if el.ID == id {
			changed = true
			continue
		}
		if len(el.Children) > 0 {
			if children, ok := removeTree(el.Children, id); ok {
				c := *el
				c.Children = children
				el = &c
				changed = true
			}
		}
		out = append(out, el)
	}
	if !changed {
		return elements, false
	}
	return out, true
}

// appendChild appends child to the first container with id parentID.
func appendChild(elements []*domain.Element, parentID string, child *domain.Element) ([]*domain.Element, bool) {
	for i, el := range elements {
		var next *domain.Element
		if el.ID == parentID && el.Type == domain.ElementTypeContainer {
			c := *el
			c.Children = append(append(make([]*domain.Element, 0, len(el.Children)+1), el.Children...), child)
			next = &c
		} else if len(el.Children) > 0 {
			if children, ok := appendChild(el.Children, parentID, child); ok {
				c := *el
				c.Children = children
				next = &c
			}
		}
		if next != nil {
			out := make([]*domain.Element, len(elements))
			copy(out, elements)
			out[i] = next
			return out, true
		}
	}
	return elements, false
}

// arrayMove returns a new slice with the item at from moved to index to.
func arrayMove(elements []*domain.Element, from, to int) []*domain.Element {
	out := make([]*domain.Element, 0, len(elements))
	moved := elements[from]
	for i, el := range elements {
		if i != from {
			out = append(out, el)
		}
	}
	out = append(out[:to], append([]*domain.Element{moved}, out[to:]...)...)
	return out
}

func indexOf(elements []*domain.Element, id string) int {
	for i, el := range elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}
