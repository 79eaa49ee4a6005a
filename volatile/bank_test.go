package volatile

import (
	"reflect"
	"testing"
)

func TestBank(t *testing.T) {
	bank := NewBank()
	if got := bank.LoadUint32(0x100); got != 0 {
		t.Errorf("unwritten register should read 0, got %#x", got)
	}

	bank.StoreUint32(0x200, 2)
	bank.StoreUint32(0x100, 1)
	bank.Poke(0x300, 3)

	expected := []Write{{Addr: 0x200, Value: 2}, {Addr: 0x100, Value: 1}}
	if got := bank.Writes(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected writes %v, got %v", expected, got)
	}

	if got := bank.Addresses(); !reflect.DeepEqual(got, []uintptr{0x100, 0x200, 0x300}) {
		t.Errorf("unexpected addresses %v", got)
	}

	if got := bank.Loads(); got != 1 {
		t.Errorf("expected 1 load, got %d", got)
	}

	snap := bank.Snapshot()
	bank.StoreUint32(0x100, 10)
	if snap[0x100] != 1 {
		t.Errorf("snapshot should not alias the bank")
	}

	bank.ClearLog()
	if len(bank.Writes()) != 0 || bank.Loads() != 0 {
		t.Errorf("log should be empty after ClearLog")
	}
	if bank.Peek(0x100) != 10 {
		t.Errorf("ClearLog should keep register contents")
	}

	bank.Reset()
	if len(bank.Addresses()) != 0 {
		t.Errorf("expected empty bank after Reset")
	}
}

func TestBankZeroValue(t *testing.T) {
	var bank Bank
	bank.StoreUint32(0x4, 7)
	if got := bank.LoadUint32(0x4); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}
