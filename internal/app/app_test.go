package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webbuilder/internal/canvas"
	"webbuilder/internal/config"
	"webbuilder/internal/domain"
	"webbuilder/internal/editor"
	"webbuilder/internal/service"
)

func newTestApp(t *testing.T) (*App, *service.MockEmitter) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfigPath, filepath.Join(dir, "config.yaml"))
	t.Setenv(config.EnvDataDir, filepath.Join(dir, "data"))

	a := New()
	require.NotNil(t, a.db)
	emitter := &service.MockEmitter{}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.wire(a.ctx, emitter)
	t.Cleanup(func() { a.close(context.Background()) })
	return a, emitter
}

func TestWindowSizeDefaults(t *testing.T) {
	a, _ := newTestApp(t)
	ws := a.WindowSize()
	assert.Equal(t, 1280, ws.Width)
	assert.Equal(t, 800, ws.Height)

	require.NoError(t, a.window.SaveWindowSize(1500, 900))
	ws = a.WindowSize()
	assert.Equal(t, 1500, ws.Width)
	assert.Equal(t, 900, ws.Height)
}

func TestPageBindings(t *testing.T) {
	a, emitter := newTestApp(t)

	p, err := a.AddPage("Pricing")
	require.NoError(t, err)
	assert.Equal(t, "/pricing", p.Slug)
	assert.Equal(t, p.ID, a.GetState().CurrentPageID)
	assert.Equal(t, 1, emitter.Count(editor.EventStateChanged))

	assert.True(t, a.SwitchPage(domain.HomePageID))
	assert.True(t, a.DeletePage(p.ID))
	assert.False(t, a.DeletePage(domain.HomePageID))
	assert.Len(t, a.GetState().Pages, 1)
}

func TestElementBindings(t *testing.T) {
	a, _ := newTestApp(t)

	el, err := a.AddElementJSON(`{"type":"container"}`)
	require.NoError(t, err)
	assert.Equal(t, el.ID, a.GetState().SelectedElementID)

	_, err = a.AddElement(domain.Element{Type: "marquee"})
	assert.ErrorIs(t, err, editor.ErrInvalidElement)

	child, err := a.AddChildElement(el.ID, domain.Element{Type: domain.ElementTypeText, Content: "hi"})
	require.NoError(t, err)

	ok, err := a.UpdateElementJSON(child.ID, `{"content":"hello"}`)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", a.store.FindElement(child.ID).Content)

	_, err = a.UpdateElementJSON(child.ID, `{"bogus":1}`)
	assert.Error(t, err)

	assert.True(t, a.RemoveElement(el.ID))
	assert.Nil(t, a.store.FindElement(child.ID))
	assert.Empty(t, a.GetState().SelectedElementID)
}

func TestGestureBindings(t *testing.T) {
	a, _ := newTestApp(t)

	require.NoError(t, a.BeginDrag(canvas.DragPayload{IsPaletteItem: true, Type: domain.ElementTypeImage}))
	assert.Equal(t, canvas.PhaseDragging, a.GesturePhase())
	res, err := a.EndDrag(canvas.DropEvent{OverID: canvas.CanvasDropID})
	require.NoError(t, err)
	assert.Equal(t, canvas.DropAdded, res.Action)

	assert.Error(t, a.BeginResize(res.ElementID, "north", canvas.Point{}, canvas.Rect{}))

	a.SelectElement(res.ElementID)
	require.NoError(t, a.BeginResize(res.ElementID, "se", canvas.Point{X: 100, Y: 100}, canvas.Rect{Width: 200, Height: 200}))
	r, err := a.MoveResize(canvas.Point{X: 150, Y: 80})
	require.NoError(t, err)
	assert.Equal(t, 250.0, r.Width)
	assert.Equal(t, 180.0, r.Height)
	require.NoError(t, a.EndResize())
	assert.Equal(t, "250px", a.store.FindElement(res.ElementID).Style.Width)
}

func TestPreviewBindings(t *testing.T) {
	a, _ := newTestApp(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	calls, err := a.ListAPICalls(10)
	require.NoError(t, err)
	assert.NotNil(t, calls)
	assert.Empty(t, calls)

	btn, err := a.AddElement(domain.Element{Type: domain.ElementTypeButton, Content: "Go", APIEndpoint: srv.URL})
	require.NoError(t, err)

	res, err := a.PreviewClick(btn.ID)
	require.NoError(t, err)
	assert.True(t, res.Fetched)
	assert.Equal(t, "API Response:\n{\n  \"ok\": true\n}", res.Message)

	calls, err = a.ListAPICalls(10)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, srv.URL, calls[0].Endpoint)

	n, err := a.PruneAPICalls()
	require.NoError(t, err)
	assert.Zero(t, n)
}
