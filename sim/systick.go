// Package sim models the behaviour of the SysTick hardware on top of an
// in-memory register bank so timer code can run on a host.
package sim

import (
	"sync"

	"omibyte.io/cmhal/cortexm"
	"omibyte.io/cmhal/volatile"
)

// SysTick wraps a register bank and gives the SysTick registers their
// hardware side effects. All other addresses pass straight through.
type SysTick struct {
	bank *volatile.Bank

	// PollCycles is the number of clock cycles that elapse on every read of
	// the control register while the timer is enabled.
	PollCycles uint32

	// OnUnderflow is called when the counter reaches zero with the tick
	// interrupt enabled. It is called without any lock held.
	OnUnderflow func()

	mu         sync.Mutex
	decrements uint64
	toFirst    uint64
	reachedOne bool
}

func NewSysTick(bank *volatile.Bank) *SysTick {
	return &SysTick{
		bank:       bank,
		PollCycles: 1,
	}
}

func (s *SysTick) Bank() *volatile.Bank {
	return s.bank
}

func (s *SysTick) LoadUint32(addr uintptr) uint32 {
	if addr != cortexm.SYST_CSR {
		return s.bank.LoadUint32(addr)
	}

	s.mu.Lock()
	fired := s.advance(s.PollCycles)
	csr := s.bank.LoadUint32(cortexm.SYST_CSR)
	s.bank.Poke(cortexm.SYST_CSR, csr&^cortexm.SYST_CSR_COUNTFLAG)
	s.mu.Unlock()
	s.fire(fired)
	return csr
}

func (s *SysTick) StoreUint32(addr uintptr, value uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch addr {
	case cortexm.SYST_CVR:
		s.bank.StoreUint32(cortexm.SYST_CVR, 0)
		csr := s.bank.Peek(cortexm.SYST_CSR)
		s.bank.Poke(cortexm.SYST_CSR, csr&^cortexm.SYST_CSR_COUNTFLAG)
	case cortexm.SYST_RVR:
		s.bank.StoreUint32(addr, value&cortexm.SYST_RVR_RELOAD)
	case cortexm.SYST_CSR:
		// COUNTFLAG is read-only
		csr := s.bank.Peek(cortexm.SYST_CSR)
		s.bank.StoreUint32(addr, (value&^cortexm.SYST_CSR_COUNTFLAG)|(csr&cortexm.SYST_CSR_COUNTFLAG))
	default:
		s.bank.StoreUint32(addr, value)
	}
}

// Advance runs the timer for the given number of clock cycles and returns
// the number of tick interrupts raised. OnUnderflow is called once per
// interrupt.
func (s *SysTick) Advance(cycles uint32) int {
	s.mu.Lock()
	fired := s.advance(cycles)
	s.mu.Unlock()
	s.fire(fired)
	return fired
}

// advance must be called with s.mu held.
func (s *SysTick) advance(cycles uint32) int {
	fired := 0
	for ; cycles > 0; cycles-- {
		csr := s.bank.Peek(cortexm.SYST_CSR)
		if csr&cortexm.SYST_CSR_ENABLE == 0 {
			break
		}

		cvr := s.bank.Peek(cortexm.SYST_CVR)
		if cvr == 0 {
			s.bank.Poke(cortexm.SYST_CVR, s.bank.Peek(cortexm.SYST_RVR)&cortexm.SYST_RVR_RELOAD)
			continue
		}

		cvr--
		s.decrements++
		s.bank.Poke(cortexm.SYST_CVR, cvr)
		if cvr == 0 {
			if !s.reachedOne {
				s.reachedOne = true
				s.toFirst = s.decrements
			}
			s.bank.Poke(cortexm.SYST_CSR, csr|cortexm.SYST_CSR_COUNTFLAG)
			if csr&cortexm.SYST_CSR_TICKINT != 0 {
				fired++
			}
		}
	}
	return fired
}

func (s *SysTick) fire(n int) {
	if s.OnUnderflow == nil {
		return
	}
	for ; n > 0; n-- {
		s.OnUnderflow()
	}
}

// Decrements returns the number of counter decrements since the last
// ResetCount.
func (s *SysTick) Decrements() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decrements
}

// FirstUnderflow returns the number of decrements counted when the counter
// first reached zero since the last ResetCount. Decrements that happen
// later within the same poll are not included.
func (s *SysTick) FirstUnderflow() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toFirst, s.reachedOne
}

func (s *SysTick) ResetCount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decrements = 0
	s.toFirst = 0
	s.reachedOne = false
}
