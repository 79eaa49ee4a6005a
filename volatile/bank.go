package volatile

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Write is a single store recorded by a Bank.
type Write struct {
	Addr  uintptr
	Value uint32
}

// Bank is an in-memory register file. Addresses that were never written read
// as zero.
type Bank struct {
	mu     sync.Mutex
	regs   map[uintptr]uint32
	writes []Write
	loads  int
}

func NewBank() *Bank {
	return &Bank{regs: map[uintptr]uint32{}}
}

func (b *Bank) LoadUint32(addr uintptr) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loads++
	return b.regs[addr]
}

func (b *Bank) StoreUint32(addr uintptr, value uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.regs == nil {
		b.regs = map[uintptr]uint32{}
	}
	b.regs[addr] = value
	b.writes = append(b.writes, Write{Addr: addr, Value: value})
}

// Peek reads a register without counting it as an access.
func (b *Bank) Peek(addr uintptr) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regs[addr]
}

// Poke sets a register without recording a write.
func (b *Bank) Poke(addr uintptr, value uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.regs == nil {
		b.regs = map[uintptr]uint32{}
	}
	b.regs[addr] = value
}

// Writes returns the stores made since the last Reset, oldest first.
func (b *Bank) Writes() []Write {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.writes)
}

// Loads returns the number of loads made since the last Reset.
func (b *Bank) Loads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loads
}

// Snapshot returns a copy of every register held by the bank.
func (b *Bank) Snapshot() map[uintptr]uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.regs)
}

// Addresses returns the addresses held by the bank in ascending order.
func (b *Bank) Addresses() []uintptr {
	b.mu.Lock()
	defer b.mu.Unlock()
	addrs := maps.Keys(b.regs)
	slices.Sort(addrs)
	return addrs
}

// ClearLog forgets the recorded accesses but keeps register contents.
func (b *Bank) ClearLog() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes = nil
	b.loads = 0
}

func (b *Bank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	maps.Clear(b.regs)
	b.writes = nil
	b.loads = 0
}
