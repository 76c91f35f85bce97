package apu

import "testing"

func TestStatusReflectsLengthCounters(t *testing.T) {
	a := New()

	// Enable pulse 1 and load its length counter
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x08) // length index 1 -> 254

	if got := a.ReadRegister(0x4015); got&0x01 == 0 {
		t.Errorf("Expected pulse 1 busy, status=$%02X", got)
	}
	if got := a.ReadRegister(0x4015); got&0x0E != 0 {
		t.Errorf("Expected other channels idle, status=$%02X", got)
	}
}

func TestDisableClearsLength(t *testing.T) {
	a := New()

	a.WriteRegister(0x4015, 0x0F)
	a.WriteRegister(0x4003, 0x08)
	a.WriteRegister(0x400B, 0x08)

	a.WriteRegister(0x4015, 0x00)
	if got := a.ReadRegister(0x4015); got&0x0F != 0 {
		t.Errorf("Expected all length counters cleared, status=$%02X", got)
	}
}

func TestLengthIgnoredWhileDisabled(t *testing.T) {
	a := New()

	a.WriteRegister(0x4003, 0x08) // pulse 1 disabled
	if got := a.ReadRegister(0x4015); got&0x01 != 0 {
		t.Errorf("Expected disabled channel to stay silent, status=$%02X", got)
	}
}

func TestRegisterDecode(t *testing.T) {
	a := New()

	a.WriteRegister(0x4000, 0xBF) // duty 2, halt, constant, volume 15
	if a.Pulse1.DutyCycle != 2 {
		t.Errorf("Expected duty 2, got %d", a.Pulse1.DutyCycle)
	}
	if !a.Pulse1.Halt || !a.Pulse1.Constant {
		t.Error("Expected halt and constant flags set")
	}
	if a.Pulse1.Volume != 15 {
		t.Errorf("Expected volume 15, got %d", a.Pulse1.Volume)
	}

	a.WriteRegister(0x4002, 0xCD)
	a.WriteRegister(0x4003, 0x02) // timer high bits 010
	if a.Pulse1.TimerValue != 0x2CD {
		t.Errorf("Expected timer $2CD, got $%03X", a.Pulse1.TimerValue)
	}

	a.WriteRegister(0x4012, 0x04)
	if a.DMC.SampleAddress != 0xC000+4*64 {
		t.Errorf("Expected DMC sample address $%04X, got $%04X", 0xC000+4*64, a.DMC.SampleAddress)
	}
}

func TestLengthCounterTicksDown(t *testing.T) {
	a := New()

	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x18) // length index 3 -> 2

	// Two half-frame periods drain a length of 2
	for i := 0; i < 14915*2; i++ {
		a.Step()
	}

	if got := a.ReadRegister(0x4015); got&0x01 != 0 {
		t.Errorf("Expected length counter drained, status=$%02X", got)
	}
}

func TestHaltStopsLengthCounter(t *testing.T) {
	a := New()

	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4000, 0x20) // halt
	a.WriteRegister(0x4003, 0x18)

	for i := 0; i < 14915*4; i++ {
		a.Step()
	}

	if got := a.ReadRegister(0x4015); got&0x01 == 0 {
		t.Errorf("Expected halted length counter to persist, status=$%02X", got)
	}
}

func TestNonStatusReadsReturnZero(t *testing.T) {
	a := New()
	a.WriteRegister(0x4000, 0xFF)

	for _, addr := range []uint16{0x4000, 0x4004, 0x4008, 0x400C, 0x4010, 0x4017} {
		if got := a.ReadRegister(addr); got != 0 {
			t.Errorf("Expected 0 from $%04X, got $%02X", addr, got)
		}
	}
}
