package cortexm

import (
	"omibyte.io/cmhal/volatile"
)

const (
	NVIC_EN_BASE  uintptr = 0xE000E100
	NVIC_DIS_BASE uintptr = 0xE000E180
	NVIC_PRI_BASE uintptr = 0xE000E400

	// MaxInterrupt is the highest IRQ number wired on the target.
	MaxInterrupt Interrupt = 138

	// NumBanks is the number of enable (and disable) registers.
	NumBanks = 5

	lastBankFirstIRQ = 128
	priorityWidth    = 3
	priorityLaneBits = 8
	priorityLaneSkip = 5
)

// Interrupt is an IRQ number from the target vector table.
type Interrupt uint8

// Locate returns the enable/disable bank and the bit within it that control
// the interrupt. ok is false for numbers past MaxInterrupt.
func (i Interrupt) Locate() (bank int, bit uint, ok bool) {
	switch {
	case i <= 31:
		return 0, uint(i), true
	case i <= 63:
		return 1, uint(i - 32), true
	case i <= 95:
		return 2, uint(i - 64), true
	case i <= 127:
		return 3, uint(i - 96), true
	case i <= MaxInterrupt:
		// Only IRQs 128..138 are populated in the last bank
		return 4, uint(i - lastBankFirstIRQ), true
	}
	return 0, 0, false
}

// PriorityField returns the address of the priority register holding the
// interrupt and the shift of its 3-bit field.
func (i Interrupt) PriorityField() (addr uintptr, shift uint, ok bool) {
	if i > MaxInterrupt {
		return 0, 0, false
	}
	addr = NVIC_PRI_BASE + uintptr(i/4)*4
	shift = uint(i%4)*priorityLaneBits + priorityLaneSkip
	return addr, shift, true
}

// NVIC programs the interrupt controller through a register accessor.
type NVIC struct {
	regs volatile.Accessor
}

func NewNVIC(regs volatile.Accessor) *NVIC {
	return &NVIC{regs: regs}
}

func (n *NVIC) EnableIRQ(i Interrupt) {
	if bank, bit, ok := i.Locate(); ok {
		volatile.SetBits(n.regs, NVIC_EN_BASE+uintptr(bank)*4, 1<<bit)
	}
}

// DisableIRQ writes the interrupt's bit into its disable register. The
// disable registers are write-one-to-clear on hardware.
func (n *NVIC) DisableIRQ(i Interrupt) {
	if bank, bit, ok := i.Locate(); ok {
		volatile.SetBits(n.regs, NVIC_DIS_BASE+uintptr(bank)*4, 1<<bit)
	}
}

// IRQEnabled reports whether the interrupt's bit is set in its enable register.
func (n *NVIC) IRQEnabled(i Interrupt) bool {
	bank, bit, ok := i.Locate()
	if !ok {
		return false
	}
	return n.regs.LoadUint32(NVIC_EN_BASE+uintptr(bank)*4)&(1<<bit) != 0
}

// SetPriority sets the 3-bit priority of the interrupt. The other three
// interrupts sharing the register keep their priority.
func (n *NVIC) SetPriority(i Interrupt, priority uint8) {
	addr, shift, ok := i.PriorityField()
	if !ok {
		return
	}
	volatile.ReplaceBits(n.regs, addr, priorityMask(shift), uint32(priority), shift)
}

func (n *NVIC) Priority(i Interrupt) uint8 {
	addr, shift, ok := i.PriorityField()
	if !ok {
		return 0
	}
	return uint8((n.regs.LoadUint32(addr) & priorityMask(shift)) >> shift)
}

func priorityMask(shift uint) uint32 {
	return (1<<priorityWidth - 1) << shift
}
