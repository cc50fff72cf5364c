package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManager_ShutdownLIFO(t *testing.T) {
	m := New(time.Second, nil)

	var order []string
	m.Register("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	m.Register("second", func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})

	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("shutdown order = %v, expected [second first]", order)
	}
}

func TestManager_ShutdownReportsFirstErrorAndRunsAll(t *testing.T) {
	m := New(time.Second, nil)
	boom := errors.New("boom")

	ran := 0
	m.Register("ok", func(ctx context.Context) error { ran++; return nil })
	m.Register("bad", func(ctx context.Context) error { ran++; return boom })

	err := m.Shutdown()
	if !errors.Is(err, boom) {
		t.Errorf("Shutdown() error = %v, expected to wrap %v", err, boom)
	}
	if ran != 2 {
		t.Errorf("ran %d shutdown funcs, expected 2", ran)
	}
}

func TestManager_ShutdownOnce(t *testing.T) {
	m := New(time.Second, nil)
	calls := 0
	m.Register("count", func(ctx context.Context) error { calls++; return nil })

	_ = m.Shutdown()
	_ = m.Shutdown()

	if calls != 1 {
		t.Errorf("shutdown func ran %d times, expected 1", calls)
	}
}

func TestManager_WaitWithContext(t *testing.T) {
	m := New(time.Second, nil)
	done := false
	m.Register("flag", func(ctx context.Context) error { done = true; return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sig, err := m.WaitWithContext(ctx)
	if err != nil {
		t.Fatalf("WaitWithContext() error = %v", err)
	}
	if sig != nil {
		t.Errorf("signal = %v, expected nil for context cancellation", sig)
	}
	if !done {
		t.Error("shutdown funcs did not run")
	}
}
