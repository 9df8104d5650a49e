package controller

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSleepElapses(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), 5*time.Millisecond); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	if d := time.Since(start); d < 5*time.Millisecond {
		t.Errorf("Sleep returned after %v, want >= 5ms", d)
	}
}

func TestSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep: got %v, want context.Canceled", err)
	}
}

func TestPollUntil(t *testing.T) {
	n := 0
	err := pollUntil(context.Background(), func() bool {
		n++
		return n == 3
	})
	if err != nil {
		t.Fatalf("pollUntil: %v", err)
	}
	if n != 3 {
		t.Errorf("polls: got %d, want 3", n)
	}
}

func TestPollUntilDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := pollUntil(ctx, func() bool { return false })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("pollUntil: got %v, want context.DeadlineExceeded", err)
	}
}
