// Command gbppu-dump runs a cartridge's PPU headlessly for a number
// of frames and prints an ASCII visualization of the resulting
// framebuffer, plus a palette usage summary. It drives the PPU
// directly with tick(70224) per frame (§8 P4) since this repo has no
// CPU to generate real cycle counts from.
package main

import (
	"fmt"
	"os"

	"github.com/kestrelsys/gbppu/pkg/cartridge"
	"github.com/kestrelsys/gbppu/pkg/mmu"
	"github.com/kestrelsys/gbppu/pkg/ppu"
)

const cyclesPerFrame = 70224

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: gbppu-dump <rom-file> [frames]")
		os.Exit(1)
	}

	romPath := os.Args[1]
	frames := 60
	if len(os.Args) > 2 {
		fmt.Sscanf(os.Args[2], "%d", &frames)
	}

	cart, err := cartridge.LoadFromFile(romPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loading %s (mode=%s)...\n", romPath, cart.Mode())

	m := mmu.New(cart)
	p := ppu.New(m)
	m.SetPPU(p)
	m.WriteRegister(ppu.RegLCDC, 0x91) // LCD+BG on, unsigned tile data, matching boot-ROM handoff state

	fmt.Printf("Running %d frames...\n", frames)
	for i := 0; i < frames; i++ {
		p.Tick(cyclesPerFrame)
	}

	fb := p.Framebuffer()

	fmt.Println("\nFrame buffer visualization (20x18 section, one char per 8x8 block):")
	chars := " .:-=+*#%@"
	for by := 0; by < 18; by++ {
		for bx := 0; bx < 20; bx++ {
			sum := 0
			for dy := 0; dy < 8; dy++ {
				for dx := 0; dx < 8; dx++ {
					c := fb.At(bx*8+dx, by*8+dy)
					sum += int(c.R()) + int(c.G()) + int(c.B())
				}
			}
			avg := sum / (64 * 3)
			charIndex := avg * len(chars) / 256
			if charIndex >= len(chars) {
				charIndex = len(chars) - 1
			}
			fmt.Printf("%c", chars[charIndex])
		}
		fmt.Println()
	}

	colorCounts := make(map[ppu.Color]int)
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			colorCounts[fb.At(x, y)]++
		}
	}
	fmt.Printf("\n%d unique colors across %d pixels\n", len(colorCounts), ppu.ScreenWidth*ppu.ScreenHeight)
	fmt.Printf("VBlank count: %d\n", p.VBlankCount())
}
