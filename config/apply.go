package config

import (
	"errors"
	"fmt"

	"omibyte.io/cmhal/cortexm"
	"omibyte.io/cmhal/targets"
)

// Validate checks the config against the target. The controller itself
// silently ignores out of range requests, so this is where they surface.
func (c *Config) Validate(target targets.TargetInfo) error {
	var errs []error

	for _, irq := range c.Interrupts {
		if !target.HasInterrupt(irq.IRQ) {
			errs = append(errs, fmt.Errorf("irq %d: %w", irq.IRQ, ErrInterruptRange))
		}
		if irq.Priority != nil && *irq.Priority > target.MaxPriority() {
			errs = append(errs, fmt.Errorf("irq %d priority %d: %w", irq.IRQ, *irq.Priority, ErrPriorityRange))
		}
	}

	for _, exc := range c.Exceptions {
		kind := cortexm.Exception(exc.Kind)
		if exc.Enabled != nil && !kind.CanEnable() {
			errs = append(errs, fmt.Errorf("%v: %w", kind, ErrNotEnableable))
		}
		if exc.Priority != nil {
			if !kind.HasPriority() {
				errs = append(errs, fmt.Errorf("%v: %w", kind, ErrFixedPriority))
			} else if *exc.Priority > target.MaxPriority() {
				errs = append(errs, fmt.Errorf("%v priority %d: %w", kind, *exc.Priority, ErrPriorityRange))
			}
		}
	}

	if st := c.SysTick; st != nil {
		switch st.Mode {
		case "", ModeInterrupt, ModeBusyWait:
		default:
			errs = append(errs, fmt.Errorf("%q: %w", st.Mode, ErrUnknownMode))
		}
		if st.PeriodMs == 0 {
			errs = append(errs, ErrZeroPeriod)
		} else if uint64(target.CoreClock/1000)*uint64(st.PeriodMs) > 1<<24 {
			errs = append(errs, fmt.Errorf("%dms at %dHz: %w", st.PeriodMs, target.CoreClock, ErrReloadOverflow))
		}
	}

	return errors.Join(errs...)
}

// Apply validates the config and programs the controller and timer. A
// busy-wait SysTick entry blocks for its period before Apply returns.
func (c *Config) Apply(target targets.TargetInfo, nvic *cortexm.NVIC, timer *cortexm.SysTick) error {
	if err := c.Validate(target); err != nil {
		return err
	}

	for _, irq := range c.Interrupts {
		if irq.Priority != nil {
			nvic.SetPriority(irq.IRQ, *irq.Priority)
		}
		if irq.Enabled {
			nvic.EnableIRQ(irq.IRQ)
		} else {
			nvic.DisableIRQ(irq.IRQ)
		}
	}

	for _, exc := range c.Exceptions {
		kind := cortexm.Exception(exc.Kind)
		if exc.Priority != nil {
			nvic.SetExceptionPriority(kind, *exc.Priority)
		}
		if exc.Enabled != nil {
			if *exc.Enabled {
				nvic.EnableException(kind)
			} else {
				nvic.DisableException(kind)
			}
		}
	}

	if st := c.SysTick; st != nil && timer != nil {
		switch st.Mode {
		case ModeBusyWait:
			timer.BusyWait(st.PeriodMs)
		default:
			timer.Configure(st.PeriodMs)
			if st.Running != nil && !*st.Running {
				timer.Stop()
			}
		}
	}
	return nil
}
