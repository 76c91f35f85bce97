package cpu

import "testing"

// stepCycles loads a fresh CPU with the program and returns the cycles of
// the first instruction
func stepCycles(t *testing.T, setup func(*CPU), program ...uint8) int {
	t.Helper()
	c := createTestCPU()
	load(c, 0x0400, program...)
	if setup != nil {
		setup(c)
	}
	return c.Step()
}

func TestBaseCycleCounts(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		want    int
	}{
		{"LDA imm", []uint8{0xA9, 0x00}, 2},
		{"LDA zp", []uint8{0xA5, 0x10}, 3},
		{"LDA zp,X", []uint8{0xB5, 0x10}, 4},
		{"LDA abs", []uint8{0xAD, 0x00, 0x03}, 4},
		{"LDA (zp,X)", []uint8{0xA1, 0x10}, 6},
		{"STA abs,X", []uint8{0x9D, 0x00, 0x03}, 5},
		{"STA (zp),Y", []uint8{0x91, 0x10}, 6},
		{"ASL zp", []uint8{0x06, 0x10}, 5},
		{"ASL abs,X", []uint8{0x1E, 0x00, 0x03}, 7},
		{"INC abs", []uint8{0xEE, 0x00, 0x03}, 6},
		{"JMP abs", []uint8{0x4C, 0x00, 0x05}, 3},
		{"JMP ind", []uint8{0x6C, 0x00, 0x03}, 5},
		{"PHA", []uint8{0x48}, 3},
		{"PLA", []uint8{0x68}, 4},
		{"NOP", []uint8{0xEA}, 2},
	}

	for _, tt := range tests {
		if got := stepCycles(t, nil, tt.program...); got != tt.want {
			t.Errorf("%s: expected %d cycles, got %d", tt.name, tt.want, got)
		}
	}
}

func TestPageCrossPenaltyOnReads(t *testing.T) {
	// LDA $02FF,X with X=1 crosses into $0300: 4+1 cycles
	got := stepCycles(t, func(c *CPU) { c.X = 1 }, 0xBD, 0xFF, 0x02)
	if got != 5 {
		t.Errorf("Expected 5 cycles for page-crossing LDA abs,X, got %d", got)
	}

	// No cross: 4 cycles
	got = stepCycles(t, func(c *CPU) { c.X = 1 }, 0xBD, 0x00, 0x02)
	if got != 4 {
		t.Errorf("Expected 4 cycles without page cross, got %d", got)
	}

	// LDA (zp),Y crossing: 5+1
	got = stepCycles(t, func(c *CPU) {
		c.Memory.Write(0x0010, 0xFF)
		c.Memory.Write(0x0011, 0x02)
		c.Y = 1
	}, 0xB1, 0x10)
	if got != 6 {
		t.Errorf("Expected 6 cycles for page-crossing LDA (zp),Y, got %d", got)
	}
}

func TestNoPageCrossPenaltyOnWrites(t *testing.T) {
	// STA abs,X always takes 5 cycles, crossed or not
	got := stepCycles(t, func(c *CPU) { c.X = 1 }, 0x9D, 0xFF, 0x02)
	if got != 5 {
		t.Errorf("Expected 5 cycles for STA abs,X across a page, got %d", got)
	}
}

func TestNoPageCrossPenaltyOnRMW(t *testing.T) {
	// INC abs,X is 7 cycles regardless of crossing
	got := stepCycles(t, func(c *CPU) { c.X = 1 }, 0xFE, 0xFF, 0x02)
	if got != 7 {
		t.Errorf("Expected 7 cycles for INC abs,X across a page, got %d", got)
	}
}

func TestUnofficialNOPCycles(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		want    int
		size    uint16
	}{
		{"NOP implied", []uint8{0x1A}, 2, 1},
		{"NOP imm", []uint8{0x80, 0x00}, 2, 2},
		{"NOP zp", []uint8{0x04, 0x10}, 3, 2},
		{"NOP zp,X", []uint8{0x14, 0x10}, 4, 2},
		{"NOP abs", []uint8{0x0C, 0x00, 0x03}, 4, 3},
		{"NOP abs,X", []uint8{0x3C, 0x00, 0x03}, 4, 3},
	}

	for _, tt := range tests {
		c := createTestCPU()
		load(c, 0x0400, tt.program...)
		got := c.Step()
		if got != tt.want {
			t.Errorf("%s: expected %d cycles, got %d", tt.name, tt.want, got)
		}
		if c.PC != 0x0400+tt.size {
			t.Errorf("%s: expected %d-byte instruction, PC=%04X", tt.name, tt.size, c.PC)
		}
	}
}
