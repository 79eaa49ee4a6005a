package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	defaultTarget = "tm4c123gh6pm"

	rootCmd = &cobra.Command{
		Use:   "cmsim",
		Short: "Host-side simulator for the Cortex-M NVIC and SysTick",
		Long: `cmsim programs an in-memory copy of the NVIC and SysTick registers the same
way the firmware does, so a board configuration can be checked before it is
flashed.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&defaultTarget, "target", "t", defaultTarget, "target chip or series used when the config does not name one")
	rootCmd.AddCommand(applyCmd, locateCmd, delayCmd, targetsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
