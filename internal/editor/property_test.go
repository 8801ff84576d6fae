package editor_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"webbuilder/internal/domain"
	"webbuilder/internal/editor"
)

func storeWith(n int) *editor.Store {
	s := editor.NewStore(context.Background(), nil)
	for i := 0; i < n; i++ {
		s.AddElement(text(fmt.Sprintf("e%d", i)))
	}
	return s
}

// Property: N addElement calls yield N top-level elements in call order.
func TestAddElementPreservesOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("addElement appends in call order", prop.ForAll(
		func(types []int) bool {
			s := editor.NewStore(context.Background(), nil)
			for i, ty := range types {
				s.AddElement(&domain.Element{
					ID:   fmt.Sprintf("e%d", i),
					Type: domain.ElementTypes[ty],
				})
			}
			els := s.CurrentPage().Elements
			if len(els) != len(types) {
				return false
			}
			for i, el := range els {
				if el.ID != fmt.Sprintf("e%d", i) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(domain.ElementTypes)-1)),
	))

	properties.TestingRun(t)
}

// Property: updating an id absent from the tree returns the same snapshot.
func TestUpdateUnknownKeepsSnapshot(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("update of a missing id leaves state identical", prop.ForAll(
		func(n int, ghost string) bool {
			s := storeWith(n)
			s.AddElement(container("box", text("nested")))
			before := s.State()
			content := "changed"
			s.UpdateElement("ghost-"+ghost, domain.ElementPatch{Content: &content})
			return s.State() == before
		},
		gen.IntRange(0, 8),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// Property: removeElement always leaves no selection.
func TestRemoveClearsSelection(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("selection is empty after any remove", prop.ForAll(
		func(n, selected, removed int) bool {
			s := storeWith(n)
			s.SelectElement(fmt.Sprintf("e%d", selected))
			s.RemoveElement(fmt.Sprintf("e%d", removed))
			return s.State().SelectedElementID == ""
		},
		gen.IntRange(0, 6),
		gen.IntRange(0, 8),
		gen.IntRange(0, 8),
	))

	properties.TestingRun(t)
}

// Property: with a single page, deletePage never changes anything.
func TestDeleteSinglePageNoop(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("deletePage with one page is a no-op", prop.ForAll(
		func(id string) bool {
			s := editor.NewStore(context.Background(), nil)
			before := s.State()
			s.DeletePage(id)
			s.DeletePage(domain.HomePageID)
			return s.State() == before
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// Property: reorder is an array move; equal or absent ids change nothing.
func TestReorderIsArrayMove(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("reorder matches extraction then insertion", prop.ForAll(
		func(n, a, b int) bool {
			s := storeWith(n)
			before := topIDs(s)
			activeID, overID := fmt.Sprintf("e%d", a), fmt.Sprintf("e%d", b)
			s.ReorderElements(activeID, overID)
			after := topIDs(s)

			if a == b || a >= n || b >= n {
				return equalIDs(before, after)
			}
			want := make([]string, 0, n)
			for i, id := range before {
				if i != a {
					want = append(want, id)
				}
			}
			want = append(want[:b], append([]string{before[a]}, want[b:]...)...)
			return equalIDs(want, after)
		},
		gen.IntRange(0, 7),
		gen.IntRange(0, 9),
		gen.IntRange(0, 9),
	))

	properties.TestingRun(t)
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
