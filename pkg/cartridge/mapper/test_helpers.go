package mapper

// makeBankedROM builds a ROM where every byte holds the number of the
// bank it belongs to, making bank-switching observable in tests
func makeBankedROM(size, bankSize int) []uint8 {
	rom := make([]uint8, size)
	for i := range rom {
		rom[i] = uint8(i / bankSize)
	}
	return rom
}

// makePatternROM builds a ROM holding its own low address byte
func makePatternROM(size int) []uint8 {
	rom := make([]uint8, size)
	for i := range rom {
		rom[i] = uint8(i)
	}
	return rom
}

// writeSerial feeds a 5-bit value into an MMC1 register, LSB first
func writeSerial(m *Mapper1, addr uint16, value uint8) {
	for i := 0; i < 5; i++ {
		m.WritePRG(addr, value>>i&1)
	}
}
