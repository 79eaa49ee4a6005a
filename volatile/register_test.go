package volatile

import (
	"testing"
)

func TestBitHelpers(t *testing.T) {
	tests := []struct {
		name     string
		initial  uint32
		apply    func(Accessor)
		expected uint32
	}{
		{"setBits", 0xF0, func(a Accessor) { SetBits(a, 0x10, 0x0F) }, 0xFF},
		{"setBitsIdempotent", 0xFF, func(a Accessor) { SetBits(a, 0x10, 0x0F) }, 0xFF},
		{"clearBits", 0xFF, func(a Accessor) { ClearBits(a, 0x10, 0x0F) }, 0xF0},
		{"replaceBits", 0xFFFFFFFF, func(a Accessor) { ReplaceBits(a, 0x10, 0x7<<5, 0x2, 5) }, 0xFFFFFF5F},
		{"replaceBitsTruncates", 0, func(a Accessor) { ReplaceBits(a, 0x10, 0x7<<5, 0xFF, 5) }, 0xE0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bank := NewBank()
			bank.Poke(0x10, tc.initial)
			tc.apply(bank)
			if got := bank.Peek(0x10); got != tc.expected {
				t.Errorf("expected %#08x, got %#08x", tc.expected, got)
			}
		})
	}
}
