package cortexm

import (
	"sync/atomic"

	"omibyte.io/cmhal/volatile"
)

const (
	SYST_CSR uintptr = 0xE000E010
	SYST_RVR uintptr = 0xE000E014
	SYST_CVR uintptr = 0xE000E018

	SYST_CSR_ENABLE    uint32 = 0x1 << 0
	SYST_CSR_TICKINT   uint32 = 0x1 << 1
	SYST_CSR_CLKSOURCE uint32 = 0x1 << 2
	SYST_CSR_COUNTFLAG uint32 = 0x1 << 16

	SYST_RVR_RELOAD uint32 = 0xFFFFFF
)

// TickHandler is called from the SysTick interrupt. It runs in interrupt
// context and must not block.
type TickHandler interface {
	HandleTick()
}

type TickHandlerFunc func()

func (f TickHandlerFunc) HandleTick() {
	f()
}

type tickSlot struct {
	handler TickHandler
}

// SysTick drives the core's 24-bit countdown timer.
type SysTick struct {
	regs    volatile.Accessor
	clockHz uint32
	slot    atomic.Pointer[tickSlot]
}

func NewSysTick(regs volatile.Accessor, coreClockHz uint32) *SysTick {
	return &SysTick{
		regs:    regs,
		clockHz: coreClockHz,
	}
}

// ReloadValue returns the reload count for a period at the given core clock.
// The result is not checked against the 24-bit reload field.
func ReloadValue(coreClockHz uint32, periodMs uint32) uint32 {
	return (coreClockHz/1000)*periodMs - 1
}

func (s *SysTick) ClockHz() uint32 {
	return s.clockHz
}

// Configure programs a periodic interrupt every periodMs milliseconds and
// starts the timer on the core clock.
func (s *SysTick) Configure(periodMs uint32) {
	s.load(periodMs)
	s.regs.StoreUint32(SYST_CSR, SYST_CSR_ENABLE|SYST_CSR_TICKINT|SYST_CSR_CLKSOURCE)
}

// BusyWait blocks for periodMs milliseconds by polling the count flag. The
// timer is left disabled on return. Never call it from a TickHandler.
func (s *SysTick) BusyWait(periodMs uint32) {
	s.load(periodMs)
	s.regs.StoreUint32(SYST_CSR, SYST_CSR_ENABLE|SYST_CSR_CLKSOURCE)

	// COUNTFLAG clears when CSR is read
	for s.regs.LoadUint32(SYST_CSR)&SYST_CSR_COUNTFLAG == 0 {
	}
	s.regs.StoreUint32(SYST_CSR, 0)
}

func (s *SysTick) load(periodMs uint32) {
	s.regs.StoreUint32(SYST_CSR, 0)
	s.regs.StoreUint32(SYST_RVR, ReloadValue(s.clockHz, periodMs)&SYST_RVR_RELOAD)

	// Any write clears the current value
	s.regs.StoreUint32(SYST_CVR, 0)
}

// SetCallback replaces the handler called on every tick. A nil handler
// clears the slot.
func (s *SysTick) SetCallback(h TickHandler) {
	if h == nil {
		s.slot.Store(nil)
		return
	}
	s.slot.Store(&tickSlot{handler: h})
}

// Handler is the SysTick exception entry.
func (s *SysTick) Handler() {
	if slot := s.slot.Load(); slot != nil {
		slot.handler.HandleTick()
	}
}

func (s *SysTick) Start() {
	volatile.SetBits(s.regs, SYST_CSR, SYST_CSR_ENABLE)
}

// Stop halts the countdown without touching the reload or current value.
func (s *SysTick) Stop() {
	volatile.ClearBits(s.regs, SYST_CSR, SYST_CSR_ENABLE)
}

func (s *SysTick) Running() bool {
	return s.regs.LoadUint32(SYST_CSR)&SYST_CSR_ENABLE != 0
}

// DeInit disables the timer and clears its reload and current values. The
// registered callback is kept.
func (s *SysTick) DeInit() {
	s.regs.StoreUint32(SYST_CSR, 0)
	s.regs.StoreUint32(SYST_RVR, 0)
	s.regs.StoreUint32(SYST_CVR, 0)
}

func (s *SysTick) Reload() uint32 {
	return s.regs.LoadUint32(SYST_RVR) & SYST_RVR_RELOAD
}

func (s *SysTick) Current() uint32 {
	return s.regs.LoadUint32(SYST_CVR) & SYST_RVR_RELOAD
}
