// Command gbppu-view loads a Game Boy ROM's header, drives the PPU
// with synthetic full-frame tick counts, and streams the resulting
// framebuffer to an SDL2 window. There is no CPU in this repository,
// so nothing actually executes the ROM's code; this tool exists to
// watch the PPU's own behavior under direct register pokes driven
// from the keyboard (the SCX/SCY scroll registers).
package main

import (
	"fmt"
	"log"
	"os"
	"unsafe"

	"github.com/kestrelsys/gbppu/pkg/cartridge"
	"github.com/kestrelsys/gbppu/pkg/mmu"
	"github.com/kestrelsys/gbppu/pkg/ppu"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	windowScale    = 4
	cyclesPerFrame = 70224
)

// sdlDisplay adapts an SDL renderer/texture pair to ppu.Display.
type sdlDisplay struct {
	texture *sdl.Texture
}

func (d *sdlDisplay) Width() int  { return ppu.ScreenWidth }
func (d *sdlDisplay) Height() int { return ppu.ScreenHeight }

func (d *sdlDisplay) Present(pixels []uint32) {
	rgb := make([]byte, len(pixels)*3)
	for i, px := range pixels {
		rgb[i*3+0] = byte(px >> 16)
		rgb[i*3+1] = byte(px >> 8)
		rgb[i*3+2] = byte(px)
	}
	d.texture.Update(nil, unsafe.Pointer(&rgb[0]), ppu.ScreenWidth*3)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: gbppu-view <rom-file>")
		os.Exit(1)
	}

	cart, err := cartridge.LoadFromFile(os.Args[1])
	if err != nil {
		log.Fatalf("failed to load ROM: %v", err)
	}
	fmt.Printf("Cartridge mode: %s, checksum: $%02X\n", cart.Mode(), cart.Checksum())

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Fatalf("failed to initialize SDL: %v", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(
		"gbppu-view - "+os.Args[1],
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		ppu.ScreenWidth*windowScale, ppu.ScreenHeight*windowScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		log.Fatalf("failed to create window: %v", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		log.Fatalf("failed to create renderer: %v", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth, ppu.ScreenHeight,
	)
	if err != nil {
		log.Fatalf("failed to create texture: %v", err)
	}
	defer texture.Destroy()

	m := mmu.New(cart)
	p := ppu.New(m)
	m.SetPPU(p)
	m.SetDisplay(&sdlDisplay{texture: texture})
	m.WriteRegister(ppu.RegLCDC, 0x91)
	m.WriteRegister(0xFF47, 0xE4) // BGP: default DMG shade mapping

	fmt.Println("ESC=quit | UP/DOWN=SCY | LEFT/RIGHT=SCX | SPACE=pause")

	running := true
	paused := false

	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					continue
				}
				switch e.Keysym.Sym {
				case sdl.K_ESCAPE:
					running = false
				case sdl.K_SPACE:
					paused = !paused
				case sdl.K_UP:
					m.WriteRegister(ppu.RegSCY, m.ReadRegister(ppu.RegSCY)-1)
				case sdl.K_DOWN:
					m.WriteRegister(ppu.RegSCY, m.ReadRegister(ppu.RegSCY)+1)
				case sdl.K_LEFT:
					m.WriteRegister(ppu.RegSCX, m.ReadRegister(ppu.RegSCX)-1)
				case sdl.K_RIGHT:
					m.WriteRegister(ppu.RegSCX, m.ReadRegister(ppu.RegSCX)+1)
				}
			}
		}

		if !paused {
			p.Tick(cyclesPerFrame)
		}

		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()
		sdl.Delay(16)
	}
}
