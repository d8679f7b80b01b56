package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowConsumesBucket(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0.0001) {
			t.Fatalf("expected token %d", i)
		}
	}
	if l.Allow("k", 3, 0.0001) {
		t.Fatalf("expected empty bucket")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	if !l.Allow("a", 1, 0.0001) {
		t.Fatalf("expected token for a")
	}
	if !l.Allow("b", 1, 0.0001) {
		t.Fatalf("expected token for b")
	}
	if l.Allow("a", 1, 0.0001) {
		t.Fatalf("expected a exhausted")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()

	if !l.Allow("k", 1, 100) {
		t.Fatalf("expected initial token")
	}
	if l.Allow("k", 1, 100) {
		t.Fatalf("expected empty bucket")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow("k", 1, 100) {
		t.Fatalf("expected refill after sleep")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := New()

	// Drain the bucket with a refill rate too slow to matter.
	if !l.Allow("k", 1, 0.0001) {
		t.Fatalf("expected initial token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "k", 1, 0.0001); err != context.DeadlineExceeded {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestWaitReturnsWhenTokenAvailable(t *testing.T) {
	l := New()

	if err := l.Wait(context.Background(), "k", 1, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
