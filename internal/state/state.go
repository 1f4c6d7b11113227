// Package state holds process-wide run state such as the interrupt token.
package state

import (
	"sync"
	"sync/atomic"
)

// --- Interrupt ------------------------------------------------------------------------------

// Interrupt is a one-shot, resettable cancellation flag.
//
// It is created once in main and injected into every operation that may block.
// Setting it twice is harmless. It is only cleared by an explicit Reset.
type Interrupt struct {
	mu   sync.Mutex
	set  atomic.Bool
	done chan struct{}
}

// NewInterrupt returns a cleared interrupt token.
func NewInterrupt() *Interrupt {
	return &Interrupt{done: make(chan struct{})}
}

// Set raises the flag and wakes every waiter on Done.
func (i *Interrupt) Set() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.set.Load() {
		return
	}
	i.set.Store(true)
	close(i.done)
}

// IsSet reports whether the flag is raised. A nil Interrupt is never set.
func (i *Interrupt) IsSet() bool {
	if i == nil {
		return false
	}
	return i.set.Load()
}

// Done returns a channel closed once Set is called. A nil Interrupt never fires.
func (i *Interrupt) Done() <-chan struct{} {
	if i == nil {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.done
}

// Reset clears the flag so a new run may start.
func (i *Interrupt) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.set.Load() {
		return
	}
	i.set.Store(false)
	i.done = make(chan struct{})
}
