package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"omibyte.io/cmhal/cortexm"
)

var locateCmd = &cobra.Command{
	Use:   "locate <irq|exception>...",
	Short: "Show which registers and bits control an IRQ or exception",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, arg := range args {
			if e, ok := cortexm.ParseException(arg); ok {
				fmt.Fprintln(out, describeException(e))
				continue
			}

			n, err := strconv.ParseUint(arg, 0, 64)
			if err != nil {
				log.Fatalf("%q is neither an IRQ number nor an exception name", arg)
			}
			fmt.Fprintln(out, describeInterrupt(n))
		}
	},
}

func describeInterrupt(n uint64) string {
	if n > uint64(cortexm.MaxInterrupt) {
		return fmt.Sprintf("IRQ %d: not routable (max %d)", n, cortexm.MaxInterrupt)
	}
	i := cortexm.Interrupt(n)
	bank, bit, _ := i.Locate()
	addr, shift, _ := i.PriorityField()
	return fmt.Sprintf("IRQ %d: EN%d/DIS%d bit %d, %s bits %d..%d",
		i, bank, bank, bit, registerName(addr), shift, shift+2)
}

func describeException(e cortexm.Exception) string {
	s := e.String() + ":"
	switch e {
	case cortexm.ExceptionMemFault:
		s += " SYSHNDCTRL bit 16,"
	case cortexm.ExceptionBusFault:
		s += " SYSHNDCTRL bit 17,"
	case cortexm.ExceptionUsageFault:
		s += " SYSHNDCTRL bit 18,"
	}
	if addr, shift, ok := e.PriorityField(); ok {
		return s + fmt.Sprintf(" %s bits %d..%d", registerName(addr), shift, shift+2)
	}
	return s + " fixed priority"
}
