package main

import (
	"flag"
	"fmt"
	"hash/crc32"
	"log"
	"os"
	"path/filepath"

	"github.com/mizuho-t/famicore/pkg/gui"
	"github.com/mizuho-t/famicore/pkg/logger"
	"github.com/mizuho-t/famicore/pkg/nes"
)

func main() {
	var (
		logLevel   = flag.String("log-level", "info", "Log level (off, error, warn, info, debug, trace)")
		logFile    = flag.String("log-file", "", "Log file path (empty for stdout)")
		cpuLog     = flag.Bool("cpu-log", false, "Enable CPU execution logging")
		ppuLog     = flag.Bool("ppu-log", false, "Enable PPU logging")
		apuLog     = flag.Bool("apu-log", false, "Enable APU logging")
		mapperLog  = flag.Bool("mapper-log", false, "Enable mapper logging")
		palette    = flag.String("palette", "", "Path to a 192-byte palette file (64 x RGB)")
		trace      = flag.String("trace", "", "Write a nestest-format CPU trace to this file")
		headless   = flag.Bool("headless", false, "Run without a window and print a framebuffer checksum")
		testFrames = flag.Int("test-frames", 600, "Number of frames to run in headless mode")
		scale      = flag.Int("scale", 3, "Window scale factor")
	)

	flag.Usage = func() {
		fmt.Printf("Usage: %s [options] <rom_file>\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println("\nControls:")
		fmt.Println("  Z - A button")
		fmt.Println("  X - B button")
		fmt.Println("  A - Select")
		fmt.Println("  S - Start")
		fmt.Println("  Arrow keys - D-pad")
		fmt.Println("  F12 - Screenshot")
		fmt.Println("  ESC - Quit")
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	romFile := flag.Arg(0)

	level := logger.GetLogLevelFromString(*logLevel)
	if err := logger.Initialize(level, *logFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.SetCPULogging(*cpuLog)
	logger.SetPPULogging(*ppuLog)
	logger.SetAPULogging(*apuLog)
	logger.SetMapperLogging(*mapperLog)

	console := nes.NewNES()

	if err := console.Load(romFile); err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}
	logger.LogInfo("Loaded ROM: %s", filepath.Base(romFile))

	if *palette != "" {
		if err := console.LoadPalette(*palette); err != nil {
			logger.LogError("palette load failed, using built-in palette: %v", err)
		}
	}

	if *trace != "" {
		traceFile, err := os.Create(*trace)
		if err != nil {
			log.Fatalf("Failed to create trace file: %v", err)
		}
		defer traceFile.Close()
		console.SetTrace(traceFile)
	}

	console.Reset()

	if *headless {
		runHeadless(console, *testFrames)
		return
	}

	window, err := gui.New(console, *scale)
	if err != nil {
		log.Fatalf("Failed to initialize GUI: %v", err)
	}
	defer window.Destroy()

	window.Run()
}

// runHeadless executes a fixed number of frames and prints a CRC of the
// final framebuffer, giving a deterministic hash for a given ROM and
// frame count
func runHeadless(console *nes.NES, frames int) {
	for i := 0; i < frames; i++ {
		console.StepFrame()
	}

	checksum := crc32.ChecksumIEEE(console.GetFramebuffer())
	fmt.Printf("frames=%d framebuffer_crc32=%08X cycles=%d\n", frames, checksum, console.Cycles)
}
