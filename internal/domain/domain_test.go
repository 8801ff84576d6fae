package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webbuilder/internal/domain"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"About Us":      "/about-us",
		"Contact":       "/contact",
		"My   Big Page": "/my-big-page",
		"Tabs\tand\nNL": "/tabs-and-nl",
		"a\vb":          "/a-b",
		"nb\u00a0sp":    "/nb-sp",
		" padded ":      "/-padded-",
		"":              "/",
		"ÉTÉ Sale":      "/été-sale",
	}
	for in, want := range cases {
		assert.Equal(t, want, domain.Slugify(in), "Slugify(%q)", in)
	}
}

func TestParsePx(t *testing.T) {
	v, ok := domain.ParsePx("10px")
	require.True(t, ok)
	assert.Equal(t, 10.0, v)

	v, ok = domain.ParsePx(" -3.5px ")
	require.True(t, ok)
	assert.Equal(t, -3.5, v)

	v, ok = domain.ParsePx("42")
	require.True(t, ok)
	assert.Equal(t, 42.0, v)

	for _, bad := range []string{"", "auto", "50%", "1em", "px", "NaN", "NaNpx", "Inf", "-Infinity", "+Infpx"} {
		_, ok := domain.ParsePx(bad)
		assert.False(t, ok, bad)
	}
	assert.Equal(t, 7.0, domain.PxOr("auto", 7))
}

func TestFormatPx(t *testing.T) {
	assert.Equal(t, "15px", domain.FormatPx(15))
	assert.Equal(t, "-2.5px", domain.FormatPx(-2.5))
	assert.Equal(t, "0px", domain.FormatPx(0))
}

func TestElementClone(t *testing.T) {
	orig := &domain.Element{
		ID:   "c",
		Type: domain.ElementTypeContainer,
		Children: []*domain.Element{
			{ID: "t", Type: domain.ElementTypeText, Content: "hi"},
		},
	}
	c := orig.Clone()
	c.Children[0].Content = "changed"
	assert.Equal(t, "hi", orig.Children[0].Content)
	assert.NotSame(t, orig.Children[0], c.Children[0])
}

func TestElementPatchApply(t *testing.T) {
	el := &domain.Element{
		ID:      "b",
		Type:    domain.ElementTypeButton,
		Content: "Click Me",
		Style:   domain.Style{Width: "10px", Color: "#fff"},
	}
	content := "Go"
	out := domain.ElementPatch{Content: &content}.Apply(el)
	assert.Equal(t, "Go", out.Content)
	assert.Equal(t, el.Style, out.Style)
	assert.Equal(t, "Click Me", el.Content)

	out = domain.StylePatch(domain.Style{Height: "5px"}).Apply(el)
	assert.Equal(t, domain.Style{Height: "5px"}, out.Style, "style is replaced whole")
	assert.Equal(t, "Click Me", out.Content)

	assert.True(t, domain.ElementPatch{}.Empty())
}

func TestInitialState(t *testing.T) {
	s := domain.InitialState()
	require.Len(t, s.Pages, 1)
	assert.Equal(t, "home", s.CurrentPageID)
	assert.Equal(t, "/", s.CurrentPage().Slug)
	assert.Equal(t, "Home", s.CurrentPage().Name)
	assert.Empty(t, s.SelectedElementID)
	assert.Nil(t, s.Page("missing"))
}

func TestFindElementRecursive(t *testing.T) {
	deep := &domain.Element{ID: "deep", Type: domain.ElementTypeText}
	tree := []*domain.Element{
		{ID: "a", Type: domain.ElementTypeText},
		{ID: "c", Type: domain.ElementTypeContainer, Children: []*domain.Element{
			{ID: "c2", Type: domain.ElementTypeContainer, Children: []*domain.Element{deep}},
		}},
	}
	assert.Same(t, deep, domain.FindElement(tree, "deep"))
	assert.Nil(t, domain.FindElement(tree, "nope"))
}

func TestElementTypeValid(t *testing.T) {
	assert.True(t, domain.ElementTypeVideo.Valid())
	assert.False(t, domain.ElementType("iframe").Valid())
}
