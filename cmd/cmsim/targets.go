package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"omibyte.io/cmhal/targets"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the supported targets",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range targets.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-10s %10d Hz  IRQ 0..%d  %d priority bits  [%s]\n",
				t.Series, t.Cpu, t.CoreClock, t.MaxInterrupt, t.PriorityBits, strings.Join(t.Chips, ", "))
		}
	},
}
