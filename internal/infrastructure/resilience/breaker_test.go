package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGuardTripsAfterRepeatedFailures(t *testing.T) {
	guard := NewGuard(Config{
		Enabled:      true,
		MinRequests:  3,
		FailureRatio: 0.5,
		OpenTimeout:  time.Minute,
	})

	upstreamDown := errors.New("upstream down")
	fail := func(context.Context) error { return upstreamDown }

	for i := 0; i < 3; i++ {
		if err := guard.Do(context.Background(), "llm.analyze", fail, nil); !errors.Is(err, upstreamDown) {
			t.Fatalf("call %d: error = %v, want upstream error", i, err)
		}
	}

	err := guard.Do(context.Background(), "llm.analyze", fail, nil)
	if !IsCircuitOpen(err) {
		t.Fatalf("breaker not open after repeated failures, got %v", err)
	}
}

func TestGuardBreakersAreIndependentPerOperation(t *testing.T) {
	guard := NewGuard(Config{
		Enabled:      true,
		MinRequests:  2,
		FailureRatio: 0.5,
		OpenTimeout:  time.Minute,
	})

	fail := func(context.Context) error { return errors.New("boom") }
	for i := 0; i < 2; i++ {
		_ = guard.Do(context.Background(), "llm.analyze", fail, nil)
	}
	if err := guard.Do(context.Background(), "llm.analyze", fail, nil); !IsCircuitOpen(err) {
		t.Fatalf("analyze breaker not open, got %v", err)
	}

	called := false
	err := guard.Do(context.Background(), "llm.homework", func(context.Context) error {
		called = true
		return nil
	}, nil)
	if err != nil || !called {
		t.Fatalf("homework breaker affected by analyze failures: err=%v called=%v", err, called)
	}
}

func TestGuardIgnoresCallerCancellation(t *testing.T) {
	guard := NewGuard(Config{
		Enabled:      true,
		MinRequests:  2,
		FailureRatio: 0.5,
		OpenTimeout:  time.Minute,
	})

	canceled := func(context.Context) error { return context.Canceled }
	for i := 0; i < 10; i++ {
		if err := guard.Do(context.Background(), "llm.analyze", canceled, nil); !errors.Is(err, context.Canceled) {
			t.Fatalf("call %d: error = %v", i, err)
		}
	}

	// Cancellations never count as failures, so the circuit stays closed.
	err := guard.Do(context.Background(), "llm.analyze", func(context.Context) error { return nil }, nil)
	if err != nil {
		t.Fatalf("breaker tripped on cancellations: %v", err)
	}
}

func TestGuardDisabledPassesThrough(t *testing.T) {
	guard := NewGuard(Config{Enabled: false})

	fail := func(context.Context) error { return errors.New("boom") }
	for i := 0; i < 50; i++ {
		_ = guard.Do(context.Background(), "llm.analyze", fail, nil)
	}

	called := false
	if err := guard.Do(context.Background(), "llm.analyze", func(context.Context) error {
		called = true
		return nil
	}, nil); err != nil || !called {
		t.Fatalf("disabled guard interfered: err=%v called=%v", err, called)
	}
}

func TestGuardNilCallback(t *testing.T) {
	guard := NewGuard(DefaultConfig())
	if err := guard.Do(context.Background(), "llm.analyze", nil, nil); err == nil {
		t.Fatal("nil callback accepted")
	}
}
