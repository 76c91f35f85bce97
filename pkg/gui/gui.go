// Package gui provides the SDL2 frontend: window, texture upload,
// keyboard polling, and frame pacing. The emulation core never imports
// SDL.
package gui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/mizuho-t/famicore/pkg/input"
	"github.com/mizuho-t/famicore/pkg/logger"
	"github.com/mizuho-t/famicore/pkg/nes"
)

const (
	ScreenWidth  = 256
	ScreenHeight = 240
	WindowTitle  = "famicore"

	// NTSC frame rate: 60.0988 FPS
	TargetFPS = 60.0988
)

// FrameTime is the wall-clock duration of one NTSC frame
var FrameTime = time.Duration(float64(time.Second) / TargetFPS)

// GUI drives the SDL window for a console
type GUI struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	nes      *nes.NES
	running  bool

	screenshotNum int

	fpsCounter int
	fpsTimer   time.Time
}

// New creates the window, renderer, and streaming texture
func New(console *nes.NES, scale int) (*GUI, error) {
	// SDL requires the main thread
	runtime.LockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %w", err)
	}

	if scale < 1 {
		scale = 3
	}

	window, err := sdl.CreateWindow(
		WindowTitle,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(ScreenWidth*scale),
		int32(ScreenHeight*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	renderer.SetDrawBlendMode(sdl.BLENDMODE_NONE)

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		ScreenWidth,
		ScreenHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}
	texture.SetBlendMode(sdl.BLENDMODE_NONE)

	return &GUI{
		window:   window,
		renderer: renderer,
		texture:  texture,
		nes:      console,
		running:  true,
		fpsTimer: time.Now(),
	}, nil
}

// Destroy cleans up SDL resources
func (g *GUI) Destroy() {
	if g.texture != nil {
		g.texture.Destroy()
	}
	if g.renderer != nil {
		g.renderer.Destroy()
	}
	if g.window != nil {
		g.window.Destroy()
	}
	sdl.Quit()
}

// Run executes the main loop: poll input, emulate one frame, present it,
// and sleep until the frame's wall-clock deadline
func (g *GUI) Run() {
	frameCount := 0
	startTime := time.Now()

	for g.running {
		g.handleEvents()
		g.nes.StepFrame()
		g.render()
		g.updateFPS()

		// Pace against total elapsed time to absorb Sleep jitter
		frameCount++
		deadline := startTime.Add(time.Duration(frameCount) * FrameTime)
		if now := time.Now(); now.Before(deadline) {
			time.Sleep(deadline.Sub(now))
		}
	}
}

// handleEvents processes SDL events
func (g *GUI) handleEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			g.running = false
		case *sdl.KeyboardEvent:
			g.handleKeyboard(e)
		}
	}
}

// handleKeyboard maps the keyboard onto controller 1
func (g *GUI) handleKeyboard(event *sdl.KeyboardEvent) {
	pressed := event.State == sdl.PRESSED

	switch event.Keysym.Sym {
	case sdl.K_z:
		g.nes.SetButton(0, input.ButtonA, pressed)
	case sdl.K_x:
		g.nes.SetButton(0, input.ButtonB, pressed)
	case sdl.K_a:
		g.nes.SetButton(0, input.ButtonSelect, pressed)
	case sdl.K_s:
		g.nes.SetButton(0, input.ButtonStart, pressed)
	case sdl.K_UP:
		g.nes.SetButton(0, input.ButtonUp, pressed)
	case sdl.K_DOWN:
		g.nes.SetButton(0, input.ButtonDown, pressed)
	case sdl.K_LEFT:
		g.nes.SetButton(0, input.ButtonLeft, pressed)
	case sdl.K_RIGHT:
		g.nes.SetButton(0, input.ButtonRight, pressed)
	case sdl.K_ESCAPE:
		g.running = false
	case sdl.K_F12:
		if pressed {
			g.saveScreenshot()
		}
	}
}

// render uploads the framebuffer and presents it
func (g *GUI) render() {
	framebuffer := g.nes.GetFramebuffer()

	if err := g.texture.Update(nil, unsafe.Pointer(&framebuffer[0]), ScreenWidth*4); err != nil {
		logger.LogError("texture update failed: %v", err)
		return
	}

	g.renderer.Clear()
	g.renderer.Copy(g.texture, nil, nil)
	g.renderer.Present()
}

// updateFPS tracks the achieved frame rate in the window title
func (g *GUI) updateFPS() {
	g.fpsCounter++
	if elapsed := time.Since(g.fpsTimer); elapsed >= time.Second {
		fps := float64(g.fpsCounter) / elapsed.Seconds()
		g.window.SetTitle(fmt.Sprintf("%s - %.1f FPS", WindowTitle, fps))
		g.fpsCounter = 0
		g.fpsTimer = time.Now()
	}
}

// saveScreenshot writes the current frame as a PNG in the working directory
func (g *GUI) saveScreenshot() {
	framebuffer := g.nes.GetFramebuffer()

	img := image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	copy(img.Pix, framebuffer)

	name := fmt.Sprintf("screenshot-%03d.png", g.screenshotNum)
	g.screenshotNum++

	file, err := os.Create(name)
	if err != nil {
		logger.LogError("failed to create screenshot: %v", err)
		return
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		logger.LogError("failed to encode screenshot: %v", err)
		return
	}
	logger.LogInfo("saved %s", name)
}
