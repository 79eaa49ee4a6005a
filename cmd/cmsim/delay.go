package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"omibyte.io/cmhal/config"
	"omibyte.io/cmhal/cortexm"
	"omibyte.io/cmhal/sim"
	"omibyte.io/cmhal/targets"
	"omibyte.io/cmhal/volatile"
)

var (
	delayOpts = struct {
		periodMs uint32
		poll     uint32
	}{}

	delayCmd = &cobra.Command{
		Use:   "delay",
		Short: "Run a busy-wait delay on the simulated SysTick",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := targets.All().Find(defaultTarget)
			if err != nil {
				return err
			}

			cfg := config.Config{
				SysTick: &config.SysTickConfig{PeriodMs: delayOpts.periodMs, Mode: config.ModeBusyWait},
			}
			if err = cfg.Validate(target); err != nil {
				return err
			}

			hw := sim.NewSysTick(volatile.NewBank())
			if delayOpts.poll > 0 {
				hw.PollCycles = delayOpts.poll
			}
			timer := cortexm.NewSysTick(hw, target.CoreClock)
			timer.BusyWait(delayOpts.periodMs)

			// Later decrements within the final poll are overshoot
			decrements, _ := hw.FirstUnderflow()
			fmt.Fprintf(cmd.OutOrStdout(), "%dms at %d Hz: reload %d, %d decrements\n",
				delayOpts.periodMs, target.CoreClock, timer.Reload(), decrements)
			return nil
		},
	}
)

func init() {
	delayCmd.Flags().Uint32VarP(&delayOpts.periodMs, "ms", "m", 10, "delay in milliseconds")
	delayCmd.Flags().Uint32Var(&delayOpts.poll, "poll-cycles", 1, "clock cycles that elapse per control register read")
}
