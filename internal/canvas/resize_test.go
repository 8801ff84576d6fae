package canvas_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webbuilder/internal/canvas"
	"webbuilder/internal/domain"
)

func TestResizeRequiresSelection(t *testing.T) {
	s, c := setup(t, canvas.Options{})
	s.AddElement(flow("a"))
	s.SelectElement("")

	err := c.BeginResize("a", canvas.HandleSE, canvas.Point{}, canvas.Rect{Width: 50, Height: 50})
	assert.ErrorIs(t, err, canvas.ErrNotSelected)
	assert.Equal(t, canvas.PhaseIdle, c.Phase())
}

func TestResizeUnknownHandle(t *testing.T) {
	s, c := setup(t, canvas.Options{})
	s.AddElement(flow("a"))
	err := c.BeginResize("a", "n", canvas.Point{}, canvas.Rect{})
	assert.ErrorIs(t, err, canvas.ErrUnknownHandle)
}

func TestResizeSEFlow(t *testing.T) {
	s, c := setup(t, canvas.Options{})
	s.AddElement(flow("a"))

	require.NoError(t, c.BeginResize("a", canvas.HandleSE, canvas.Point{X: 100, Y: 100}, canvas.Rect{Left: 3, Top: 4, Width: 50, Height: 40}))
	r, err := c.MoveResize(canvas.Point{X: 120, Y: 90})
	require.NoError(t, err)
	assert.Equal(t, 70.0, r.Width)
	assert.Equal(t, 30.0, r.Height)

	st := s.FindElement("a").Style
	assert.Equal(t, "70px", st.Width)
	assert.Equal(t, "30px", st.Height)
	assert.Empty(t, st.Left, "flow elements never get left/top")
	assert.Empty(t, st.Top)

	require.NoError(t, c.EndResize())
	assert.Equal(t, canvas.PhaseIdle, c.Phase())
}

func TestResizeHandleIsNormalized(t *testing.T) {
	s, c := setup(t, canvas.Options{})
	s.AddElement(flow("a"))

	require.NoError(t, c.BeginResize("a", canvas.Handle(" SE "), canvas.Point{}, canvas.Rect{Width: 100, Height: 100}))
	r, err := c.MoveResize(canvas.Point{X: 50, Y: 50})
	require.NoError(t, err)
	assert.Equal(t, 150.0, r.Width)
	assert.Equal(t, 150.0, r.Height)
	assert.Equal(t, "150px", s.FindElement("a").Style.Width)
	require.NoError(t, c.EndResize())
}

func TestResizeMovesAreRelativeToStart(t *testing.T) {
	s, c := setup(t, canvas.Options{})
	s.AddElement(flow("a"))

	require.NoError(t, c.BeginResize("a", canvas.HandleSE, canvas.Point{}, canvas.Rect{Width: 50, Height: 50}))
	_, err := c.MoveResize(canvas.Point{X: 10, Y: 10})
	require.NoError(t, err)
	_, err = c.MoveResize(canvas.Point{X: 20, Y: 20})
	require.NoError(t, err)
	assert.Equal(t, "70px", s.FindElement("a").Style.Width)
}

func TestResizeNWAbsoluteDrift(t *testing.T) {
	s, c := setup(t, canvas.Options{})
	s.AddElement(absolute("a", "100px", "100px"))

	require.NoError(t, c.BeginResize("a", canvas.HandleNW, canvas.Point{}, canvas.Rect{Width: 50, Height: 50}))
	_, err := c.MoveResize(canvas.Point{X: 60, Y: 60})
	require.NoError(t, err)

	st := s.FindElement("a").Style
	assert.Equal(t, "10px", st.Width)
	assert.Equal(t, "10px", st.Height)
	assert.Equal(t, "160px", st.Left, "edge keeps following the pointer past the floor")
	assert.Equal(t, "160px", st.Top)
	assert.Equal(t, "#123", st.Color)
}

func TestResizeNWAbsoluteClamped(t *testing.T) {
	s, c := setup(t, canvas.Options{ClampResizeDrift: true})
	s.AddElement(absolute("a", "100px", "100px"))

	require.NoError(t, c.BeginResize("a", canvas.HandleNW, canvas.Point{}, canvas.Rect{Width: 50, Height: 50}))
	_, err := c.MoveResize(canvas.Point{X: 60, Y: 60})
	require.NoError(t, err)

	st := s.FindElement("a").Style
	assert.Equal(t, "140px", st.Left)
	assert.Equal(t, "140px", st.Top)
}

func TestResizeStartFallsBackToRenderedOffset(t *testing.T) {
	s, c := setup(t, canvas.Options{})
	s.AddElement(absolute("a", "", "50%"))

	require.NoError(t, c.BeginResize("a", canvas.HandleSW, canvas.Point{}, canvas.Rect{Left: 30, Top: 40, Width: 50, Height: 50}))
	_, err := c.MoveResize(canvas.Point{X: -5, Y: 5})
	require.NoError(t, err)

	st := s.FindElement("a").Style
	assert.Equal(t, "25px", st.Left)
	assert.Equal(t, "40px", st.Top)
	assert.Equal(t, "55px", st.Width)
	assert.Equal(t, "55px", st.Height)
}

func TestComputeResizeHandles(t *testing.T) {
	start := canvas.Rect{Left: 10, Top: 10, Width: 100, Height: 100}

	ne := canvas.ComputeResize(canvas.HandleNE, start, 10, 10, true, false)
	assert.Equal(t, canvas.Rect{Left: 10, Top: 20, Width: 110, Height: 90}, ne)

	sw := canvas.ComputeResize(canvas.HandleSW, start, 10, 10, false, false)
	assert.Equal(t, canvas.Rect{Left: 10, Top: 10, Width: 90, Height: 110}, sw, "flow element keeps left")
}

func TestParseHandle(t *testing.T) {
	h, err := canvas.ParseHandle(" SE ")
	require.NoError(t, err)
	assert.Equal(t, canvas.HandleSE, h)
	_, err = canvas.ParseHandle("e")
	assert.ErrorIs(t, err, canvas.ErrUnknownHandle)
}

// Property: for any sequence of moves on the se handle the final size is
// max(10, start + total delta).
func TestResizeSEProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("se resize floors at MinSize", prop.ForAll(
		func(w, h int, dxs, dys []int) bool {
			s, c := setup(t, canvas.Options{})
			s.AddElement(flow("a"))
			if err := c.BeginResize("a", canvas.HandleSE, canvas.Point{}, canvas.Rect{Width: float64(w), Height: float64(h)}); err != nil {
				return false
			}
			var x, y float64
			for i := 0; i < len(dxs) && i < len(dys); i++ {
				x += float64(dxs[i])
				y += float64(dys[i])
				if _, err := c.MoveResize(canvas.Point{X: x, Y: y}); err != nil {
					return false
				}
			}
			if err := c.EndResize(); err != nil {
				return false
			}
			if len(dxs) == 0 || len(dys) == 0 {
				return true
			}
			st := s.FindElement("a").Style
			return st.Width == domain.FormatPx(max(canvas.MinSize, float64(w)+x)) &&
				st.Height == domain.FormatPx(max(canvas.MinSize, float64(h)+y))
		},
		gen.IntRange(0, 500),
		gen.IntRange(0, 500),
		gen.SliceOf(gen.IntRange(-200, 200)),
		gen.SliceOf(gen.IntRange(-200, 200)),
	))

	properties.TestingRun(t)
}
