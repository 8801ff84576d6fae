package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	mcpserver "webbuilder/internal/mcp"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails frontend).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the editor as a standalone MCP server on stdin/stdout with no
// GUI. Logs go to stderr since stdout carries the protocol.
func ServeMCP() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := New()
	a.ctx, a.cancel = context.WithCancel(ctx)
	a.wire(a.ctx, noopEmitter{})
	defer a.close(context.Background())

	srv := mcpserver.New(mcpserver.Deps{
		Store:    a.store,
		Canvas:   a.canvas,
		Preview:  a.preview,
		GridSize: float64(a.cfg.Editor.GridSize),
	})

	a.log.Info("starting standalone stdio MCP server")
	if err := srv.ServeStdio(); err != nil {
		a.log.Error("mcp server", "err", err)
		return 1
	}
	return 0
}
