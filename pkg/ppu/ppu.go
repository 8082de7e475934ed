// Package ppu implements the Game Boy / Game Boy Color Pixel
// Processing Unit: the scanline-driven graphics engine that turns
// VRAM tile data, background/window maps, OAM, and palette RAM into
// a 160x144 framebuffer while driving the LCD status register and
// firing the VBlank and LCDC-STAT interrupts in lockstep with a host
// CPU.
//
// The CPU core, the MMU and cartridge, the boot sequence, the
// display surface, and the input/audio subsystems are all external
// collaborators reached through the Host capability interface below;
// none of them is implemented in this package.
//
// Timing:
//   - 456 CPU cycles per scanline
//   - 154 scanlines per frame (144 visible + 10 VBlank)
//   - Modes 2 (OAM scan) and 3 (pixel transfer) are not modeled: the
//     compositor samples registers once per scanline rather than
//     replicating sub-scanline, pixel-FIFO timing.
package ppu

import "github.com/kestrelsys/gbppu/pkg/cartridge"

// InterruptKind identifies which of the PPU's two interrupt lines to
// raise on the host (§6).
type InterruptKind int

const (
	InterruptVBlank InterruptKind = iota
	InterruptLCDC
)

// Display is the optional presentation surface a Host may expose
// (§6). Present receives the 160x144 array of 0x00RRGGBB pixels.
type Display interface {
	Width() int
	Height() int
	Present(pixels []uint32)
}

// Host is the capability interface the PPU borrows from its MMU
// (§5, §6, §9): a non-owning handle for register, VRAM, OAM, and
// cartridge access, interrupt delivery, and optional presentation.
// The PPU never owns or constructs its Host.
type Host interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)

	VRAM() []uint8
	OAM() []uint8

	CartridgeMode() cartridge.Mode
	CartridgeChecksum() uint8

	TickHDMA()
	RaiseInterrupt(kind InterruptKind)

	Display() Display
}

// PPU is the Game Boy graphics engine. It owns the Palette Store,
// the Framebuffer, and all timing state; everything else is reached
// through Host (§3 Ownership).
type PPU struct {
	host Host

	palettes *PaletteStore
	fb       Framebuffer

	lcdCycles    int
	spritesDrawn [ScreenHeight]uint8

	vblankCount uint64
}

// New constructs a PPU bound to host, seeding its Palette Store from
// the cartridge's reported hardware mode and header checksum.
func New(host Host) *PPU {
	return &PPU{
		host:     host,
		palettes: NewPaletteStore(host.CartridgeMode(), host.CartridgeChecksum()),
	}
}

// Framebuffer exposes the PPU's framebuffer for presentation or
// testing.
func (p *PPU) Framebuffer() *Framebuffer {
	return &p.fb
}

// Palettes exposes the Palette Store so a host's register dispatch
// can route BGP/OBP0/OBP1 and CGB palette-RAM writes directly to it
// (§4.1), the way a real MMU forwards those writes to the PPU
// instead of just latching a byte.
func (p *PPU) Palettes() *PaletteStore {
	return p.palettes
}

// VBlankCount reports how many times VBlank has been raised, for
// tests exercising §8 P4.
func (p *PPU) VBlankCount() uint64 {
	return p.vblankCount
}

// Tick consumes elapsed CPU cycles and advances the timing state
// machine (§4.5). Multiple 456-cycle scanline boundaries are
// processed in a single call when cpuCycles spans more than one.
func (p *PPU) Tick(cpuCycles int) {
	p.lcdCycles += cpuCycles

	for p.lcdCycles >= 456 {
		p.lcdCycles -= 456
		p.stepScanline()
	}
}

// stepScanline runs the work that happens at a single 456-cycle
// scanline boundary (§4.5 steps 2-9).
func (p *PPU) stepScanline() {
	lcdc := NewLCDC(p.host.ReadRegister(RegLCDC))
	ly := p.host.ReadRegister(RegLY)

	// Compositing runs whenever the LCD is on, even with no display
	// surface attached, so OAM/VRAM side effects like the
	// sprites-per-line counter stay consistent (§7). Only the final
	// present() is skipped without a display.
	if lcdc.Enabled() && ly < ScreenHeight {
		p.draw(int(ly))
	}

	// The line we just finished (the pre-increment LY) is what decides
	// whether this boundary is an HBlank: HDMA only advances after a
	// visible line, never after a VBlank line (§4.5 step 5/6).
	wasVBlank := ly >= ScreenHeight
	if !wasVBlank {
		p.host.TickHDMA()
	}

	ly = uint8((int(ly) + 1) % 154)
	p.host.WriteRegister(RegLY, ly)

	isVBlank := ly >= ScreenHeight

	if lcdc.Enabled() {
		stat := NewSTAT(p.host.ReadRegister(RegSTAT))
		if isVBlank {
			stat = stat.WithMode(ModeVBlank)
		} else {
			stat = stat.WithMode(ModeHBlank)
		}

		if !isVBlank {
			lyc := p.host.ReadRegister(RegLYC)
			if stat.LYCInterruptEnabled() {
				if ly == lyc {
					stat = stat.WithCoincidence(true)
					p.host.RaiseInterrupt(InterruptLCDC)
				} else {
					stat = stat.WithCoincidence(false)
				}
			}
			if stat.HBlankInterruptEnabled() {
				p.host.RaiseInterrupt(InterruptLCDC)
			}
		}

		p.host.WriteRegister(RegSTAT, stat.Get())
	}

	p.maybePresentAndRaiseVBlank(lcdc, ly)
}

// maybePresentAndRaiseVBlank implements §4.5 step 9: when the
// scanline that just finished was LY=143 (ly here already holds the
// post-increment value, 144), present the framebuffer and raise
// VBlank.
func (p *PPU) maybePresentAndRaiseVBlank(lcdc LCDC, ly uint8) {
	if ly != ScreenHeight {
		return
	}

	if d := p.host.Display(); d != nil {
		d.Present(p.fb.Pixels())
	}

	if !lcdc.Enabled() {
		return
	}

	p.vblankCount++
	p.host.RaiseInterrupt(InterruptVBlank)

	stat := NewSTAT(p.host.ReadRegister(RegSTAT))
	if stat.VBlankInterruptEnabled() {
		p.host.RaiseInterrupt(InterruptLCDC)
	}
}

// WriteBGP, WriteOBP0, and WriteOBP1 recompute the DMG background and
// sprite palettes; a host's register dispatch routes BGP/OBP0/OBP1
// writes here directly rather than storing the raw byte (§4.1).
func (p *PPU) WriteBGP(value uint8)  { p.palettes.SetDMGBG(value) }
func (p *PPU) WriteOBP0(value uint8) { p.palettes.SetDMGOBJ0(value) }
func (p *PPU) WriteOBP1(value uint8) { p.palettes.SetDMGOBJ1(value) }

// WriteCGBBGPalette and WriteCGBOBJPalette forward a CGB palette-RAM
// port write to the Palette Store.
func (p *PPU) WriteCGBBGPalette(offset, value uint8)  { p.palettes.WriteCGBBG(offset, value) }
func (p *PPU) WriteCGBOBJPalette(offset, value uint8) { p.palettes.WriteCGBOBJ(offset, value) }

// ReadCGBBGPalette and ReadCGBOBJPalette forward a BCPD/OCPD register
// read to the Palette Store's raw backing RAM.
func (p *PPU) ReadCGBBGPalette(offset uint8) uint8  { return p.palettes.ReadCGBBGByte(offset) }
func (p *PPU) ReadCGBOBJPalette(offset uint8) uint8 { return p.palettes.ReadCGBOBJByte(offset) }
