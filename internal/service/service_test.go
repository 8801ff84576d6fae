package service_test

import (
	"context"
	"testing"
	"time"

	"webbuilder/internal/service"
)

// ─────────────────────────────────────────────────────────────
// inflightGuard tests
// ─────────────────────────────────────────────────────────────

func TestInflightGuard_TryLock(t *testing.T) {
	var g service.ExportedInflightGuard

	if !g.TryLock("btn-1") {
		t.Fatal("expected first TryLock to succeed")
	}
	if g.TryLock("btn-1") {
		t.Fatal("expected second TryLock for same key to fail")
	}
	if !g.TryLock("btn-2") {
		t.Fatal("expected TryLock for different key to succeed")
	}
	if g.Busy() != 2 {
		t.Fatalf("expected 2 busy keys, got %d", g.Busy())
	}
	g.Unlock("btn-1")
	g.Unlock("btn-2")

	if !g.TryLock("btn-1") {
		t.Fatal("expected TryLock to succeed after unlock")
	}
	g.Unlock("btn-1")
}

func TestInflightGuard_WaitAll(t *testing.T) {
	var g service.ExportedInflightGuard

	if !g.TryLock("btn-a") {
		t.Fatal("expected lock to succeed")
	}

	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		g.WaitAll(ctx)
		close(done)
	}()

	go func() {
		time.Sleep(20 * time.Millisecond)
		g.Unlock("btn-a")
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("WaitAll timed out")
	}
}

// ─────────────────────────────────────────────────────────────
// MockEmitter tests
// ─────────────────────────────────────────────────────────────

func TestMockEmitter_RecordsEvents(t *testing.T) {
	m := &service.MockEmitter{}
	ctx := context.Background()

	m.Emit(ctx, "test:event", map[string]string{"foo": "bar"})
	m.Emit(ctx, "test:event2", nil)
	m.Emit(ctx, "test:event", nil)

	if len(m.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(m.Events))
	}
	if m.Count("test:event") != 2 {
		t.Errorf("expected 2 'test:event', got %d", m.Count("test:event"))
	}
	last, ok := m.Last()
	if !ok || last.Event != "test:event" {
		t.Errorf("unexpected last event %+v", last)
	}
}

func TestMockEmitter_Empty(t *testing.T) {
	m := &service.MockEmitter{}
	if _, ok := m.Last(); ok {
		t.Fatal("expected no last event")
	}
}
