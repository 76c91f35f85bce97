// Package nes wires the CPU, PPU, APU, memory, cartridge, and controllers
// into a console and drives the 3-dots-per-CPU-cycle clock ratio.
package nes

import (
	"io"

	"github.com/mizuho-t/famicore/pkg/apu"
	"github.com/mizuho-t/famicore/pkg/cartridge"
	"github.com/mizuho-t/famicore/pkg/cpu"
	"github.com/mizuho-t/famicore/pkg/input"
	"github.com/mizuho-t/famicore/pkg/memory"
	"github.com/mizuho-t/famicore/pkg/ppu"
)

// CPUFrequency is the NTSC 2A03 clock rate in Hz
const CPUFrequency = 1789773.0

// NES represents the console
type NES struct {
	CPU       *cpu.CPU
	PPU       *ppu.PPU
	APU       *apu.APU
	Memory    *memory.Memory
	Cartridge *cartridge.Cartridge
	Input     *input.Controller

	Cycles uint64
	Frame  uint64
}

// NewNES creates a console with all components wired together
func NewNES() *NES {
	n := &NES{}

	n.Memory = memory.New()
	n.CPU = cpu.New(n.Memory)
	n.PPU = ppu.New()
	n.APU = apu.New()
	n.Input = input.New()

	n.Memory.SetPPU(n.PPU)
	n.Memory.SetAPU(n.APU)
	n.Memory.SetInput(n.Input)

	return n
}

// Load loads an iNES file from disk and inserts it
func (n *NES) Load(path string) error {
	cart, err := cartridge.LoadFromFile(path)
	if err != nil {
		return err
	}
	n.InsertCartridge(cart)
	return nil
}

// InsertCartridge connects a cartridge to the CPU and PPU buses
func (n *NES) InsertCartridge(cart *cartridge.Cartridge) {
	n.Cartridge = cart
	n.Memory.SetCartridge(cart)
	n.PPU.SetCartridge(cart)
}

// Reset performs a hard reset of all components
func (n *NES) Reset() {
	n.Memory.Reset()
	n.CPU.Reset()
	n.PPU.Reset()
	n.APU.Reset()
	n.Cycles = 0
	n.Frame = 0
}

// Step runs the CPU for one instruction and advances the PPU by three
// dots per cycle and the APU by one tick per cycle. An OAM DMA triggered
// by the instruction stalls the CPU for 513 cycles, or 514 when it
// started on an odd cycle; the PPU keeps running through the stall.
// Returns the CPU cycles consumed.
func (n *NES) Step() int {
	cycles := n.CPU.Step()

	if stall := n.Memory.TakeDMAStall(); stall > 0 {
		if (n.Cycles+uint64(cycles))&1 == 1 {
			stall++
		}
		cycles += stall
	}

	for i := 0; i < cycles*3; i++ {
		n.PPU.Step()

		// Sample the NMI latch between dots so that an edge raised and
		// observed within the same instruction fires exactly once
		if n.PPU.NMIRequested {
			n.CPU.TriggerNMI()
			n.PPU.NMIRequested = false
		}
	}

	for i := 0; i < cycles; i++ {
		n.APU.Step()
	}

	n.Cycles += uint64(cycles)
	return cycles
}

// StepFrame runs the console until the PPU finishes the current frame
func (n *NES) StepFrame() {
	for !n.PPU.FrameComplete {
		n.Step()
	}
	n.PPU.FrameComplete = false
	n.Frame = n.PPU.Frame
}

// CompletedFrame reports whether the PPU finished a frame since the last
// call, clearing the latch
func (n *NES) CompletedFrame() bool {
	if n.PPU.FrameComplete {
		n.PPU.FrameComplete = false
		n.Frame = n.PPU.Frame
		return true
	}
	return false
}

// SetButton sets the state of a controller button
func (n *NES) SetButton(port int, button int, pressed bool) {
	n.Input.SetButton(port, button, pressed)
}

// Screen returns the current framebuffer as 256x240 ARGB pixels
func (n *NES) Screen() []uint32 {
	return n.PPU.Screen()
}

// GetFramebuffer returns the current framebuffer as RGBA bytes
func (n *NES) GetFramebuffer() []uint8 {
	return n.PPU.GetFramebuffer()
}

// LoadPalette replaces the master palette from a 192-byte file; the
// built-in palette stays in effect on error
func (n *NES) LoadPalette(path string) error {
	return n.PPU.PaletteManager.LoadPaletteFile(path)
}

// SetTrace directs a CPU execution trace to w
func (n *NES) SetTrace(w io.Writer) {
	n.CPU.SetTrace(w)
}
