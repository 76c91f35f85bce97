package mapper

import "testing"

func TestMapper3CHRBankSwitch(t *testing.T) {
	data := &CartridgeData{
		PRGROM: makePatternROM(32 * 1024),
		CHRROM: makeBankedROM(32*1024, 0x2000),
	}
	m := NewMapper3(data)

	for bank := uint8(0); bank < 4; bank++ {
		m.WritePRG(0x8000, bank)
		if got := m.ReadCHR(0x0000); got != bank {
			t.Errorf("Expected CHR bank %d, got bank %d", bank, got)
		}
		if got := m.ReadCHR(0x1FFF); got != bank {
			t.Errorf("Expected CHR bank %d at end of window, got bank %d", bank, got)
		}
	}
}

func TestMapper3PRGFixed(t *testing.T) {
	data := &CartridgeData{
		PRGROM: makePatternROM(16 * 1024),
		CHRROM: makeBankedROM(32*1024, 0x2000),
	}
	m := NewMapper3(data)

	// 16KB PRG mirrors into $C000-$FFFF; bank writes must not disturb it
	m.WritePRG(0x8000, 2)
	if got := m.ReadPRG(0xC123); got != m.ReadPRG(0x8123) {
		t.Errorf("Expected 16KB PRG mirroring to hold after bank switch")
	}
}

func TestNewMapperUnsupported(t *testing.T) {
	data := &CartridgeData{PRGROM: makePatternROM(16 * 1024)}

	if _, err := NewMapper(4, data); err == nil {
		t.Errorf("Expected error for unsupported mapper 4")
	}
	if _, err := NewMapper(255, data); err == nil {
		t.Errorf("Expected error for unsupported mapper 255")
	}

	for _, n := range []uint8{0, 1, 2, 3} {
		if _, err := NewMapper(n, data); err != nil {
			t.Errorf("Expected mapper %d to be supported: %v", n, err)
		}
	}
}
