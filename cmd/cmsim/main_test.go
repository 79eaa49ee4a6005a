package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"omibyte.io/cmhal/config"
	"omibyte.io/cmhal/cortexm"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runErr(args...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func runErr(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func row(name string, value uint32) string {
	return fmt.Sprintf("%-10s %#08x", name, value)
}

func TestRegisterName(t *testing.T) {
	tests := []struct {
		addr uintptr
		name string
	}{
		{cortexm.NVIC_EN_BASE, "EN0"},
		{cortexm.NVIC_EN_BASE + 16, "EN4"},
		{cortexm.NVIC_DIS_BASE + 12, "DIS3"},
		{cortexm.NVIC_PRI_BASE + 34*4, "PRI34"},
		{cortexm.NVIC_PRI_BASE + 35*4, "?"},
		{cortexm.SCS_SYSHNDCTRL, "SYSHNDCTRL"},
		{cortexm.SYST_RVR, "STRELOAD"},
	}

	for _, tc := range tests {
		if got := registerName(tc.addr); got != tc.name {
			t.Errorf("%#x: expected %s, got %s", tc.addr, tc.name, got)
		}
	}
}

func TestLocate(t *testing.T) {
	out := run(t, "locate", "130", "SysTick", "HardFault", "200", "300", "0x1000")

	for _, expected := range []string{
		"IRQ 130: EN4/DIS4 bit 2, PRI32 bits 21..23",
		"SysTick: SYSPRI3 bits 29..31",
		"HardFault: fixed priority",
		"IRQ 200: not routable",
		"IRQ 300: not routable",
		"IRQ 4096: not routable",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected %q in output:\n%s", expected, out)
		}
	}
}

func TestApplyCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	src := `
interrupts:
  - irq: 5
    priority: 3
    enabled: true
systick:
  periodMs: 10
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	out := run(t, "apply", path)
	for _, expected := range []string{
		"Target:\ttm4c123",
		row("EN0", 1<<5),
		row("PRI1", 3<<13),
		row("STRELOAD", 159999),
		row("STCTRL", 0x7),
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected %q in output:\n%s", expected, out)
		}
	}
}

func TestDelayCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"2ms", []string{"--ms", "2", "--poll-cycles", "1"}, "reload 31999, 31999 decrements"},
		{"coarsePolling", []string{"--ms", "10", "--poll-cycles", "7"}, "reload 159999, 159999 decrements"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := run(t, append([]string{"delay"}, tc.args...)...)
			if !strings.Contains(out, tc.expected) {
				t.Errorf("expected %q, got %q", tc.expected, out)
			}
		})
	}
}

func TestDelayRejectsInvalidPeriod(t *testing.T) {
	tests := []struct {
		name     string
		ms       string
		expected error
	}{
		{"zero", "0", config.ErrZeroPeriod},
		{"overflow", "1049", config.ErrReloadOverflow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runErr("delay", "--ms", tc.ms, "--poll-cycles", "1")
			if !errors.Is(err, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, err)
			}
			if strings.Contains(out, "decrements") {
				t.Errorf("no delay should run, got %q", out)
			}
		})
	}
}

func TestApplyPrintConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	src := `
exceptions:
  - kind: busfault
    enabled: true
    priority: 2
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { applyOpts.printConfig = false })

	out := run(t, "apply", "--print-config", path)
	for _, expected := range []string{
		"target: tm4c123",
		"kind: BusFault",
		"priority: 2",
		row("SYSHNDCTRL", 1<<17),
		row("SYSPRI1", 2<<13),
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected %q in output:\n%s", expected, out)
		}
	}
}
