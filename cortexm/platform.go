package cortexm

import (
	"sync"
	"sync/atomic"
)

// Core holds the two global mask switches of the processor. The zero value
// has both interrupts and faults unmasked, as after reset.
type Core struct {
	primask   atomic.Bool
	faultmask atomic.Bool
}

// EnableInterrupts clears PRIMASK.
func (c *Core) EnableInterrupts() {
	c.primask.Store(false)
}

// DisableInterrupts sets PRIMASK, masking every exception with a
// configurable priority.
func (c *Core) DisableInterrupts() {
	c.primask.Store(true)
}

// EnableFaults clears FAULTMASK.
func (c *Core) EnableFaults() {
	c.faultmask.Store(false)
}

// DisableFaults sets FAULTMASK, masking everything except NMI and Reset.
func (c *Core) DisableFaults() {
	c.faultmask.Store(true)
}

func (c *Core) InterruptsEnabled() bool {
	return !c.primask.Load()
}

func (c *Core) FaultsEnabled() bool {
	return !c.faultmask.Load()
}

// Dispatcher routes raised exceptions and IRQs to their handlers.
type Dispatcher struct {
	core *Core

	mu         sync.RWMutex
	exceptions [numExceptions]func()
	irqs       [int(MaxInterrupt) + 1]func()
}

func NewDispatcher(core *Core) *Dispatcher {
	return &Dispatcher{core: core}
}

// Register binds fn as the handler of exception e. Reset has no handler
// here and is ignored.
func (d *Dispatcher) Register(e Exception, fn func()) {
	if e == ExceptionReset || e >= numExceptions {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.exceptions[e] = fn
}

func (d *Dispatcher) RegisterIRQ(i Interrupt, fn func()) {
	if i > MaxInterrupt {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.irqs[i] = fn
}

// Raise runs the handler of e if one is bound and the core masks allow it.
// It reports whether a handler ran.
func (d *Dispatcher) Raise(e Exception) bool {
	if e >= numExceptions || d.masked(e) {
		return false
	}
	d.mu.RLock()
	fn := d.exceptions[e]
	d.mu.RUnlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// RaiseIRQ runs the handler of IRQ i if one is bound and PRIMASK and
// FAULTMASK are both clear.
func (d *Dispatcher) RaiseIRQ(i Interrupt) bool {
	if i > MaxInterrupt || !d.core.InterruptsEnabled() || !d.core.FaultsEnabled() {
		return false
	}
	d.mu.RLock()
	fn := d.irqs[i]
	d.mu.RUnlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

func (d *Dispatcher) masked(e Exception) bool {
	switch e {
	case ExceptionReset, ExceptionNMI:
		return false
	case ExceptionHardFault:
		return !d.core.FaultsEnabled()
	}
	return !d.core.InterruptsEnabled() || !d.core.FaultsEnabled()
}
