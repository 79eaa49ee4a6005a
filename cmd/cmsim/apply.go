package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"omibyte.io/cmhal/config"
	"omibyte.io/cmhal/cortexm"
	"omibyte.io/cmhal/sim"
	"omibyte.io/cmhal/volatile"
)

var (
	applyOpts = struct {
		writes      bool
		printConfig bool
	}{}

	applyCmd = &cobra.Command{
		Use:   "apply <config.yaml>",
		Short: "Apply a board configuration to simulated registers",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(args[0])
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}

			target, err := cfg.ResolveTarget(defaultTarget)
			if err != nil {
				log.Fatalf("Failed to resolve target: %v", err)
			}

			hw := sim.NewSysTick(volatile.NewBank())
			nvic := cortexm.NewNVIC(hw)
			timer := cortexm.NewSysTick(hw, target.CoreClock)

			if err = cfg.Apply(target, nvic, timer); err != nil {
				log.Fatalf("Invalid configuration for %s:\n%v", target.Series, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Target:\t%s (%s, %d Hz)\n", target.Series, target.Cpu, target.CoreClock)
			if applyOpts.printConfig {
				cfg.Target = target.Series
				data, err := yaml.Marshal(cfg)
				if err != nil {
					log.Fatalf("Failed to encode config: %v", err)
				}
				fmt.Fprintf(out, "---\n%s---\n", data)
			}
			if applyOpts.writes {
				for _, w := range hw.Bank().Writes() {
					fmt.Fprintf(out, "write %s = %#08x\n", registerName(w.Addr), w.Value)
				}
			}
			dumpRegisters(out, hw.Bank())
		},
	}
)

func init() {
	applyCmd.Flags().BoolVarP(&applyOpts.writes, "writes", "w", false, "print every register write in order")
	applyCmd.Flags().BoolVar(&applyOpts.printConfig, "print-config", false, "print the resolved configuration")
}

func dumpRegisters(out io.Writer, bank *volatile.Bank) {
	for _, addr := range bank.Addresses() {
		fmt.Fprintf(out, "%#08x %-10s %#08x\n", addr, registerName(addr), bank.Peek(addr))
	}
}

func registerName(addr uintptr) string {
	switch {
	case addr >= cortexm.NVIC_EN_BASE && addr < cortexm.NVIC_EN_BASE+cortexm.NumBanks*4:
		return fmt.Sprintf("EN%d", (addr-cortexm.NVIC_EN_BASE)/4)
	case addr >= cortexm.NVIC_DIS_BASE && addr < cortexm.NVIC_DIS_BASE+cortexm.NumBanks*4:
		return fmt.Sprintf("DIS%d", (addr-cortexm.NVIC_DIS_BASE)/4)
	case addr >= cortexm.NVIC_PRI_BASE && addr <= cortexm.NVIC_PRI_BASE+uintptr(cortexm.MaxInterrupt/4)*4:
		return fmt.Sprintf("PRI%d", (addr-cortexm.NVIC_PRI_BASE)/4)
	}

	switch addr {
	case cortexm.SCS_SYSPRI1:
		return "SYSPRI1"
	case cortexm.SCS_SYSPRI2:
		return "SYSPRI2"
	case cortexm.SCS_SYSPRI3:
		return "SYSPRI3"
	case cortexm.SCS_SYSHNDCTRL:
		return "SYSHNDCTRL"
	case cortexm.SYST_CSR:
		return "STCTRL"
	case cortexm.SYST_RVR:
		return "STRELOAD"
	case cortexm.SYST_CVR:
		return "STCURRENT"
	}
	return "?"
}
