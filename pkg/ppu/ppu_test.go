package ppu

import (
	"testing"

	"github.com/mizuho-t/famicore/pkg/cartridge"
)

// testCart is a minimal cartridge with CHR RAM and fixed mirroring
type testCart struct {
	chr       [0x2000]uint8
	mirroring cartridge.MirroringMode
}

func (c *testCart) ReadCHR(addr uint16) uint8         { return c.chr[addr&0x1FFF] }
func (c *testCart) WriteCHR(addr uint16, value uint8) { c.chr[addr&0x1FFF] = value }
func (c *testCart) GetMirroring() cartridge.MirroringMode {
	return c.mirroring
}

func createTestPPU() (*PPU, *testCart) {
	p := New()
	cart := &testCart{mirroring: cartridge.MirroringHorizontal}
	p.SetCartridge(cart)
	p.Reset()
	return p, cart
}

// stepTo advances the PPU to the given scanline and dot
func stepTo(p *PPU, scanline, cycle int) {
	for p.Scanline != scanline || p.Cycle != cycle {
		p.Step()
	}
}

func TestStatusReadClearsVBlankAndToggle(t *testing.T) {
	p, _ := createTestPPU()

	p.PPUSTATUS |= PPUSTATUSVBlank
	p.WriteRegister(0x2005, 0x10) // w: 0 -> 1

	value := p.ReadRegister(0x2002)
	if value&PPUSTATUSVBlank == 0 {
		t.Error("Expected VBlank visible in the returned status")
	}
	if p.PPUSTATUS&PPUSTATUSVBlank != 0 {
		t.Error("Expected VBlank cleared by the read")
	}
	if p.w != 0 {
		t.Error("Expected write toggle cleared by the read")
	}
}

func TestAddressDataRoundTrip(t *testing.T) {
	// $2006 x2 then $2007 write: the byte lands at PPU $2108 and v
	// post-increments to $2109
	p, _ := createTestPPU()

	p.WriteRegister(0x2000, 0x00)
	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x08)
	p.WriteRegister(0x2007, 0xAA)

	if got := p.readVRAM(0x2108); got != 0xAA {
		t.Errorf("Expected $AA at PPU $2108, got $%02X", got)
	}
	if p.v != 0x2109 {
		t.Errorf("Expected v=$2109 after the write, got $%04X", p.v)
	}
}

func TestDataReadBuffered(t *testing.T) {
	p, _ := createTestPPU()

	p.writeVRAM(0x2100, 0x55)
	p.writeVRAM(0x2101, 0x66)

	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x00)

	// First read returns the stale buffer; the next returns the data
	p.ReadRegister(0x2007)
	if got := p.ReadRegister(0x2007); got != 0x55 {
		t.Errorf("Expected buffered $55, got $%02X", got)
	}
	if got := p.ReadRegister(0x2007); got != 0x66 {
		t.Errorf("Expected buffered $66, got $%02X", got)
	}
}

func TestPaletteReadUnbuffered(t *testing.T) {
	p, _ := createTestPPU()

	p.writeVRAM(0x3F01, 0x21)
	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x01)

	if got := p.ReadRegister(0x2007); got != 0x21 {
		t.Errorf("Expected immediate palette read $21, got $%02X", got)
	}
}

func TestAddressIncrement32(t *testing.T) {
	p, _ := createTestPPU()

	p.WriteRegister(0x2000, PPUCTRLIncrement)
	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2007, 0x01)

	if p.v != 0x2020 {
		t.Errorf("Expected v to step by 32, got $%04X", p.v)
	}
}

func TestCtrlWriteSetsNametableBits(t *testing.T) {
	p, _ := createTestPPU()

	p.WriteRegister(0x2000, 0x03)
	if p.t&0x0C00 != 0x0C00 {
		t.Errorf("Expected t bits 10-11 set, t=$%04X", p.t)
	}

	p.WriteRegister(0x2000, 0x00)
	if p.t&0x0C00 != 0 {
		t.Errorf("Expected t bits 10-11 cleared, t=$%04X", p.t)
	}
}

func TestScrollWriteProtocol(t *testing.T) {
	p, _ := createTestPPU()

	// First write: coarse X and fine X
	p.WriteRegister(0x2005, 0x7D) // coarse X=15, fine X=5
	if p.t&0x001F != 15 {
		t.Errorf("Expected coarse X=15, t=$%04X", p.t)
	}
	if p.x != 5 {
		t.Errorf("Expected fine X=5, got %d", p.x)
	}
	if p.w != 1 {
		t.Error("Expected toggle set after first write")
	}

	// Second write: coarse Y and fine Y
	p.WriteRegister(0x2005, 0x5E) // coarse Y=11, fine Y=6
	if p.t>>5&0x1F != 11 {
		t.Errorf("Expected coarse Y=11, t=$%04X", p.t)
	}
	if p.t>>12&0x07 != 6 {
		t.Errorf("Expected fine Y=6, t=$%04X", p.t)
	}
	if p.w != 0 {
		t.Error("Expected toggle cleared after second write")
	}
}

func TestAddrWriteCopiesTToV(t *testing.T) {
	p, _ := createTestPPU()

	p.WriteRegister(0x2006, 0x3F)
	if p.v == p.t {
		// v must only change on the second write
		if p.t != 0 {
			t.Error("Expected v untouched after the first write")
		}
	}
	p.WriteRegister(0x2006, 0x10)

	if p.v != 0x3F10 {
		t.Errorf("Expected v=$3F10, got $%04X", p.v)
	}
	if p.v != p.t {
		t.Error("Expected v copied from t on the second write")
	}
}

func TestOAMDataReadWrite(t *testing.T) {
	p, _ := createTestPPU()

	p.WriteRegister(0x2003, 0x10)
	p.WriteRegister(0x2004, 0xAB)

	if p.OAM[0x10] != 0xAB {
		t.Errorf("Expected OAM[$10]=$AB, got $%02X", p.OAM[0x10])
	}
	if p.OAMADDR != 0x11 {
		t.Errorf("Expected OAMADDR post-increment, got $%02X", p.OAMADDR)
	}

	p.WriteRegister(0x2003, 0x10)
	if got := p.ReadRegister(0x2004); got != 0xAB {
		t.Errorf("Expected OAMDATA read $AB, got $%02X", got)
	}
	if p.OAMADDR != 0x10 {
		t.Error("Expected OAMDATA read not to increment OAMADDR")
	}
}

func TestWriteOnlyRegistersReturnOpenBus(t *testing.T) {
	p, _ := createTestPPU()

	p.WriteRegister(0x2000, 0x55)
	for _, reg := range []uint16{0x2000, 0x2001, 0x2003, 0x2005, 0x2006} {
		if got := p.ReadRegister(reg); got != 0x55 {
			t.Errorf("Expected open bus $55 from $%04X, got $%02X", reg, got)
		}
	}
}

func TestVBlankTiming(t *testing.T) {
	p, _ := createTestPPU()

	stepTo(p, 241, 2) // just past the set point
	if p.PPUSTATUS&PPUSTATUSVBlank == 0 {
		t.Error("Expected VBlank set at scanline 241 dot 1")
	}

	stepTo(p, 261, 2)
	if p.PPUSTATUS&PPUSTATUSVBlank != 0 {
		t.Error("Expected VBlank cleared on the pre-render line")
	}
}

func TestNMILatchedOnlyWhenEnabled(t *testing.T) {
	p, _ := createTestPPU()

	stepTo(p, 241, 2)
	if p.NMIRequested {
		t.Error("Expected no NMI with VBlankEnable clear")
	}

	p.Reset()
	p.WriteRegister(0x2000, PPUCTRLNMIEnable)
	stepTo(p, 241, 2)
	if !p.NMIRequested {
		t.Error("Expected NMI latched at VBlank with enable set")
	}
}

func TestNMIOnEnableDuringVBlank(t *testing.T) {
	p, _ := createTestPPU()

	stepTo(p, 241, 2)
	p.NMIRequested = false

	p.WriteRegister(0x2000, PPUCTRLNMIEnable)
	if !p.NMIRequested {
		t.Error("Expected NMI when enabling during VBlank")
	}
}

func TestFrameCompleteLatch(t *testing.T) {
	p, _ := createTestPPU()

	for i := 0; i < 341*262; i++ {
		p.Step()
	}
	if !p.FrameComplete {
		t.Error("Expected FrameComplete after a full frame of dots")
	}
	if p.Frame != 1 {
		t.Errorf("Expected frame counter 1, got %d", p.Frame)
	}
}

func TestNametableMirroring(t *testing.T) {
	tests := []struct {
		mode    cartridge.MirroringMode
		a, b    uint16
		aliased bool
	}{
		{cartridge.MirroringHorizontal, 0x2000, 0x2400, true},
		{cartridge.MirroringHorizontal, 0x2800, 0x2C00, true},
		{cartridge.MirroringHorizontal, 0x2000, 0x2800, false},
		{cartridge.MirroringVertical, 0x2000, 0x2800, true},
		{cartridge.MirroringVertical, 0x2400, 0x2C00, true},
		{cartridge.MirroringVertical, 0x2000, 0x2400, false},
		{cartridge.MirroringFourScreen, 0x2000, 0x2400, false},
		{cartridge.MirroringFourScreen, 0x2000, 0x2800, false},
		{cartridge.MirroringSingleScreenA, 0x2000, 0x2C00, true},
	}

	for _, tt := range tests {
		p, cart := createTestPPU()
		cart.mirroring = tt.mode

		p.writeVRAM(tt.a, 0x42)
		got := p.readVRAM(tt.b)

		if tt.aliased && got != 0x42 {
			t.Errorf("mode=%d: expected $%04X aliased to $%04X", tt.mode, tt.a, tt.b)
		}
		if !tt.aliased && got == 0x42 {
			t.Errorf("mode=%d: expected $%04X distinct from $%04X", tt.mode, tt.a, tt.b)
		}
	}
}

func TestMirrorRange3000(t *testing.T) {
	p, _ := createTestPPU()

	// $3000-$3EFF mirrors $2000-$2EFF
	p.writeVRAM(0x2005, 0x77)
	if got := p.readVRAM(0x3005); got != 0x77 {
		t.Errorf("Expected $3005 to mirror $2005, got $%02X", got)
	}
}

func TestOddFrameSkipsDot(t *testing.T) {
	p, _ := createTestPPU()
	p.WriteRegister(0x2001, PPUMASKBGShow)

	// Frame 0 (even): full 341*262 dots
	dots := 0
	for !p.FrameComplete {
		p.Step()
		dots++
	}
	p.FrameComplete = false
	if dots != 341*262 {
		t.Errorf("Expected even frame of %d dots, got %d", 341*262, dots)
	}

	// Frame 1 (odd): one dot shorter with background enabled
	dots = 0
	for !p.FrameComplete {
		p.Step()
		dots++
	}
	if dots != 341*262-1 {
		t.Errorf("Expected odd frame of %d dots, got %d", 341*262-1, dots)
	}
}

func TestSpriteZeroHit(t *testing.T) {
	p, cart := createTestPPU()

	// Tile 1 fully opaque in the pattern table
	for row := 0; row < 8; row++ {
		cart.chr[16+row] = 0xFF
	}

	// Background: fill the first nametable with tile 1
	for i := uint16(0); i < 960; i++ {
		p.writeVRAM(0x2000+i, 0x01)
	}

	// Sprite 0 at (120, 100), tile 1, priority front
	p.OAM[0] = 99 // Y (displayed at Y+1)
	p.OAM[1] = 0x01
	p.OAM[2] = 0x00
	p.OAM[3] = 120

	// Opaque palette entries
	p.writeVRAM(0x3F00, 0x0F)
	p.writeVRAM(0x3F01, 0x20)
	p.writeVRAM(0x3F11, 0x15)

	p.WriteRegister(0x2001, PPUMASKBGShow|PPUMASKSpriteShow|PPUMASKBGLeft|PPUMASKSpriteLeft)

	// Run to the end of scanline 100; the hit must be latched by then
	stepTo(p, 101, 0)

	if p.PPUSTATUS&PPUSTATUSSprite0Hit == 0 {
		t.Error("Expected sprite 0 hit on scanline 100")
	}
}

func TestSpriteZeroHitClearedOnPreRender(t *testing.T) {
	p, _ := createTestPPU()

	p.PPUSTATUS |= PPUSTATUSSprite0Hit | PPUSTATUSOverflow
	stepTo(p, 261, 2)

	if p.PPUSTATUS&(PPUSTATUSSprite0Hit|PPUSTATUSOverflow) != 0 {
		t.Error("Expected sprite flags cleared at pre-render dot 1")
	}
}

func TestSpriteOverflow(t *testing.T) {
	p, _ := createTestPPU()

	// Nine sprites on scanline 50
	for i := 0; i < 9; i++ {
		p.OAM[i*4] = 49
		p.OAM[i*4+1] = 0x01
		p.OAM[i*4+3] = uint8(i * 8)
	}
	p.WriteRegister(0x2001, PPUMASKBGShow|PPUMASKSpriteShow)

	p.evaluateSprites(50)

	if p.spriteCount != 8 {
		t.Errorf("Expected 8 sprites selected, got %d", p.spriteCount)
	}
	if p.PPUSTATUS&PPUSTATUSOverflow == 0 {
		t.Error("Expected sprite overflow on the ninth sprite")
	}
}

func TestScreenDimensions(t *testing.T) {
	p, _ := createTestPPU()

	if len(p.Screen()) != 256*240 {
		t.Errorf("Expected 256x240 pixels, got %d", len(p.Screen()))
	}
	if len(p.GetFramebuffer()) != 256*240*4 {
		t.Errorf("Expected RGBA buffer of %d bytes, got %d", 256*240*4, len(p.GetFramebuffer()))
	}
}

func TestBackdropFillsDisabledFrame(t *testing.T) {
	p, _ := createTestPPU()

	p.writeVRAM(0x3F00, 0x20) // white backdrop

	for i := 0; i < 341*262; i++ {
		p.Step()
	}

	want := p.PaletteManager.GetBackdropColor()
	for _, i := range []int{0, 128, 256*120 + 100, 256*240 - 1} {
		if p.FrameBuffer[i] != want {
			t.Errorf("Expected backdrop color %08X at %d, got %08X", want, i, p.FrameBuffer[i])
			break
		}
	}
}
