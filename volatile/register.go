package volatile

import (
	"sync/atomic"
	"unsafe"
)

// Accessor performs 32-bit register accesses at absolute addresses.
type Accessor interface {
	LoadUint32(addr uintptr) uint32
	StoreUint32(addr uintptr, value uint32)
}

// MMIO accesses memory-mapped registers directly. Only valid on the target.
type MMIO struct{}

func (MMIO) LoadUint32(addr uintptr) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func (MMIO) StoreUint32(addr uintptr, value uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), value)
}

// SetBits ORs mask into the register at addr.
func SetBits(regs Accessor, addr uintptr, mask uint32) {
	regs.StoreUint32(addr, regs.LoadUint32(addr)|mask)
}

// ClearBits clears mask in the register at addr.
func ClearBits(regs Accessor, addr uintptr, mask uint32) {
	regs.StoreUint32(addr, regs.LoadUint32(addr)&^mask)
}

// ReplaceBits clears mask and ORs in value shifted into position.
func ReplaceBits(regs Accessor, addr uintptr, mask uint32, value uint32, shift uint) {
	regs.StoreUint32(addr, (regs.LoadUint32(addr)&^mask)|((value<<shift)&mask))
}
