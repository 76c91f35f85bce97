package main

import (
	"fmt"
	"os"

	"github.com/mizuho-t/famicore/pkg/cartridge"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("Usage: %s <rom_file>\n", os.Args[0])
		os.Exit(1)
	}

	cart, err := cartridge.LoadFromFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	h := cart.Header
	fmt.Printf("Mapper:    %d\n", h.MapperNumber())
	fmt.Printf("PRG ROM:   %d x 16KB\n", h.PRGROMSize)
	if h.CHRROMSize > 0 {
		fmt.Printf("CHR ROM:   %d x 8KB\n", h.CHRROMSize)
	} else {
		fmt.Printf("CHR:       RAM (%d bytes)\n", len(cart.CHRRAM))
	}
	fmt.Printf("PRG RAM:   %d bytes\n", len(cart.PRGRAM))

	switch cart.Mirroring {
	case cartridge.MirroringHorizontal:
		fmt.Println("Mirroring: horizontal")
	case cartridge.MirroringVertical:
		fmt.Println("Mirroring: vertical")
	case cartridge.MirroringFourScreen:
		fmt.Println("Mirroring: four-screen")
	}

	if h.Flags6&0x02 != 0 {
		fmt.Println("Battery:   yes")
	}
	if h.Flags6&0x04 != 0 {
		fmt.Println("Trainer:   yes")
	}
}
