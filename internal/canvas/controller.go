// Package canvas turns pointer gestures on the editor canvas into store
// mutations: palette drops, free-form moves, reorders and corner resizes.
package canvas

import (
	"errors"
	"log/slog"
	"sync"

	"webbuilder/internal/domain"
	applog "webbuilder/internal/log"
)

var (
	ErrGestureActive = errors.New("another gesture is in progress")
	ErrNoGesture     = errors.New("no gesture in progress")
	ErrNotSelected   = errors.New("element is not selected")
	ErrUnknownHandle = errors.New("unknown resize handle")
	ErrUnknownType   = errors.New("unknown element type")
)

// Mutator is the part of the editor store the controller drives.
type Mutator interface {
	State() *domain.State
	FindElement(id string) *domain.Element
	AddElement(el *domain.Element) *domain.Element
	UpdateElement(id string, patch domain.ElementPatch) bool
	ReorderElements(activeID, overID string) bool
}

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseDragging Phase = "dragging"
	PhaseResizing Phase = "resizing"
)

type Options struct {
	// ClampResizeDrift stops west/north handles from moving the edge once
	// the size is floored at MinSize.
	ClampResizeDrift bool
}

// Controller runs at most one drag or resize gesture at a time.
type Controller struct {
	mu     sync.Mutex
	store  Mutator
	opts   Options
	phase  Phase
	drag   DragPayload
	resize resizeGesture
	log    *slog.Logger
}

func NewController(store Mutator, opts Options) *Controller {
	return &Controller{
		store: store,
		opts:  opts,
		phase: PhaseIdle,
		log:   applog.WithComponent("canvas"),
	}
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// SetOptions swaps the options used by gestures started afterwards.
func (c *Controller) SetOptions(opts Options) {
	c.mu.Lock()
	c.opts = opts
	c.mu.Unlock()
}

func (c *Controller) reset() {
	c.phase = PhaseIdle
	c.drag = DragPayload{}
	c.resize = resizeGesture{}
}
