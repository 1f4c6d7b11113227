package state

import (
	"sync"
	"testing"
	"time"
)

func TestInterruptSetAndReset(t *testing.T) {
	t.Parallel()

	in := NewInterrupt()
	if in.IsSet() {
		t.Fatalf("new interrupt should be clear")
	}

	done := in.Done()
	in.Set()
	in.Set() // second set is a no-op

	if !in.IsSet() {
		t.Fatalf("expected interrupt to be set")
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Done channel not closed after Set")
	}

	in.Reset()
	if in.IsSet() {
		t.Fatalf("expected interrupt to be clear after Reset")
	}
	select {
	case <-in.Done():
		t.Fatalf("Done channel closed after Reset")
	default:
	}
}

func TestInterruptConcurrentSet(t *testing.T) {
	t.Parallel()

	in := NewInterrupt()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in.Set()
		}()
	}
	wg.Wait()

	if !in.IsSet() {
		t.Fatalf("expected interrupt to be set")
	}
}

func TestNilInterrupt(t *testing.T) {
	t.Parallel()

	var in *Interrupt
	if in.IsSet() {
		t.Fatalf("nil interrupt reported set")
	}
	if in.Done() != nil {
		t.Fatalf("nil interrupt should return a nil channel")
	}
}
