package cortexm

import (
	"strings"

	"omibyte.io/cmhal/volatile"
)

const (
	SCS_SYSPRI1    uintptr = 0xE000ED18
	SCS_SYSPRI2    uintptr = 0xE000ED1C
	SCS_SYSPRI3    uintptr = 0xE000ED20
	SCS_SYSHNDCTRL uintptr = 0xE000ED24

	SYSHNDCTRL_MEM   uint32 = 0x1 << 16
	SYSHNDCTRL_BUS   uint32 = 0x1 << 17
	SYSHNDCTRL_USAGE uint32 = 0x1 << 18
)

//go:generate stringer -type=Exception -trimprefix=Exception

// Exception is a core system exception.
type Exception uint8

const (
	ExceptionReset Exception = iota
	ExceptionNMI
	ExceptionHardFault
	ExceptionMemFault
	ExceptionBusFault
	ExceptionUsageFault
	ExceptionSVCall
	ExceptionDebugMonitor
	ExceptionPendSV
	ExceptionSysTick
	numExceptions
)

// ParseException returns the exception named s, ignoring case.
func ParseException(s string) (Exception, bool) {
	for e := ExceptionReset; e < numExceptions; e++ {
		if strings.EqualFold(e.String(), s) {
			return e, true
		}
	}
	return 0, false
}

// Exceptions returns every exception kind in vector order.
func Exceptions() []Exception {
	out := make([]Exception, 0, numExceptions)
	for e := ExceptionReset; e < numExceptions; e++ {
		out = append(out, e)
	}
	return out
}

type exceptionField struct {
	reg   uintptr
	shift uint
}

var exceptionPriorities = map[Exception]exceptionField{
	ExceptionMemFault:     {SCS_SYSPRI1, 5},
	ExceptionBusFault:     {SCS_SYSPRI1, 13},
	ExceptionUsageFault:   {SCS_SYSPRI1, 21},
	ExceptionSVCall:       {SCS_SYSPRI2, 29},
	ExceptionDebugMonitor: {SCS_SYSPRI3, 5},
	ExceptionPendSV:       {SCS_SYSPRI3, 21},
	ExceptionSysTick:      {SCS_SYSPRI3, 29},
}

var exceptionEnables = map[Exception]uint32{
	ExceptionMemFault:   SYSHNDCTRL_MEM,
	ExceptionBusFault:   SYSHNDCTRL_BUS,
	ExceptionUsageFault: SYSHNDCTRL_USAGE,
}

// CanEnable reports whether the exception has an enable bit.
func (e Exception) CanEnable() bool {
	_, ok := exceptionEnables[e]
	return ok
}

// HasPriority reports whether the exception's priority is configurable.
func (e Exception) HasPriority() bool {
	_, ok := exceptionPriorities[e]
	return ok
}

// PriorityField returns the system priority register and field shift of
// the exception.
func (e Exception) PriorityField() (addr uintptr, shift uint, ok bool) {
	f, ok := exceptionPriorities[e]
	return f.reg, f.shift, ok
}

// EnableException enables a fault exception. Exceptions without an enable
// bit are left alone.
func (n *NVIC) EnableException(e Exception) {
	if mask, ok := exceptionEnables[e]; ok {
		volatile.SetBits(n.regs, SCS_SYSHNDCTRL, mask)
	}
}

func (n *NVIC) DisableException(e Exception) {
	if mask, ok := exceptionEnables[e]; ok {
		volatile.ClearBits(n.regs, SCS_SYSHNDCTRL, mask)
	}
}

func (n *NVIC) ExceptionEnabled(e Exception) bool {
	mask, ok := exceptionEnables[e]
	return ok && n.regs.LoadUint32(SCS_SYSHNDCTRL)&mask != 0
}

// SetExceptionPriority sets the priority of a configurable exception. Reset,
// NMI and HardFault have fixed priorities and are ignored.
func (n *NVIC) SetExceptionPriority(e Exception, priority uint8) {
	f, ok := exceptionPriorities[e]
	if !ok {
		return
	}
	volatile.ReplaceBits(n.regs, f.reg, priorityMask(f.shift), uint32(priority), f.shift)
}

func (n *NVIC) ExceptionPriority(e Exception) uint8 {
	f, ok := exceptionPriorities[e]
	if !ok {
		return 0
	}
	return uint8((n.regs.LoadUint32(f.reg) & priorityMask(f.shift)) >> f.shift)
}
