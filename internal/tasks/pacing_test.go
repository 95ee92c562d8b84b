package tasks

import (
	"context"
	"testing"
	"time"
)

func TestPacer(t *testing.T) {
	ctx := context.Background()

	t.Run("spaces calls by the minimum interval", func(t *testing.T) {
		p := NewPacer(PacingPolicy{MinInterval: 30 * time.Millisecond, Burst: 1})

		start := time.Now()
		for i := 0; i < 3; i++ {
			if err := p.Wait(ctx); err != nil {
				t.Fatalf("Wait() error = %v", err)
			}
		}

		if elapsed := time.Since(start); elapsed < 55*time.Millisecond {
			t.Errorf("expected at least ~60ms for 3 calls, took %v", elapsed)
		}
	})

	t.Run("zero interval does not wait", func(t *testing.T) {
		p := NewPacer(PacingPolicy{})

		start := time.Now()
		for i := 0; i < 100; i++ {
			p.Wait(ctx)
		}
		if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
			t.Errorf("unpaced calls took %v", elapsed)
		}
	})

	t.Run("burst allows back to back calls", func(t *testing.T) {
		p := NewPacer(PacingPolicy{MinInterval: time.Hour, Burst: 3})

		wctx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()
		for i := 0; i < 3; i++ {
			if err := p.Wait(wctx); err != nil {
				t.Fatalf("call %d should be within the burst: %v", i, err)
			}
		}
		if err := p.Wait(wctx); err == nil {
			t.Error("call beyond the burst should not be allowed within the deadline")
		}
	})

	t.Run("default policy", func(t *testing.T) {
		p := DefaultPacing()
		if p.MinInterval != 500*time.Millisecond || p.Burst != 1 {
			t.Errorf("unexpected default %+v", p)
		}
	})
}
