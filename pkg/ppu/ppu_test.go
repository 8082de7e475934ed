package ppu

import (
	"testing"

	"github.com/kestrelsys/gbppu/pkg/cartridge"
)

// fakeHost is a minimal, fully inspectable ppu.Host for unit tests:
// flat register map, owned VRAM/OAM, and recorded interrupts instead
// of a real MMU.
type fakeHost struct {
	regs map[uint16]uint8
	vram [2 * 0x2000]uint8
	oam  [160]uint8

	mode     cartridge.Mode
	checksum uint8

	hdmaTicks int
	vblanks   int
	lcdcIRQs  int

	display Display
}

func newFakeHost() *fakeHost {
	return &fakeHost{regs: make(map[uint16]uint8), mode: cartridge.ModeDMG}
}

func (h *fakeHost) ReadRegister(addr uint16) uint8     { return h.regs[addr] }
func (h *fakeHost) WriteRegister(addr uint16, v uint8)  { h.regs[addr] = v }
func (h *fakeHost) VRAM() []uint8                      { return h.vram[:] }
func (h *fakeHost) OAM() []uint8                       { return h.oam[:] }
func (h *fakeHost) CartridgeMode() cartridge.Mode      { return h.mode }
func (h *fakeHost) CartridgeChecksum() uint8           { return h.checksum }
func (h *fakeHost) TickHDMA()                          { h.hdmaTicks++ }
func (h *fakeHost) Display() Display                   { return h.display }

func (h *fakeHost) RaiseInterrupt(kind InterruptKind) {
	if kind == InterruptVBlank {
		h.vblanks++
	} else {
		h.lcdcIRQs++
	}
}

var _ Host = (*fakeHost)(nil)

type fakeDisplay struct {
	presented int
	last      []uint32
}

func (d *fakeDisplay) Width() int  { return ScreenWidth }
func (d *fakeDisplay) Height() int { return ScreenHeight }
func (d *fakeDisplay) Present(pixels []uint32) {
	d.presented++
	d.last = pixels
}

const cyclesPerFrame = 154 * 456

// Scenario 1: blank frame, display disabled.
func TestDrawDisabledNoInterrupts(t *testing.T) {
	h := newFakeHost()
	p := New(h)
	h.WriteRegister(RegLCDC, 0x00)

	p.Tick(cyclesPerFrame)

	if h.vblanks != 0 || h.lcdcIRQs != 0 {
		t.Fatalf("expected no interrupts with LCD disabled, got vblanks=%d lcdc=%d", h.vblanks, h.lcdcIRQs)
	}
	if got := h.ReadRegister(RegLY); got != 0 {
		t.Fatalf("LY after a full frame should wrap to 0, got %d", got)
	}
}

// Scenario 2: all-zero VRAM, BG on, DMG, default BGP=0xE4.
func TestAllZeroVRAMBackgroundIsColorZero(t *testing.T) {
	h := newFakeHost()
	p := New(h)
	p.WriteBGP(0xE4)
	h.WriteRegister(RegLCDC, 0x91) // LCD+BG on, unsigned tile addressing

	p.Tick(cyclesPerFrame)

	want := p.Palettes().BG(0)[0]
	fb := p.Framebuffer()
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if c := fb.At(x, y); c != want {
				t.Fatalf("pixel (%d,%d) = %#06x, want color-0 %#06x", x, y, c, want)
			}
			if pr := fb.Priority(x, y); pr != P1 {
				t.Fatalf("pixel (%d,%d) priority = %d, want P1", x, y, pr)
			}
		}
	}
}

// Scenario 3: single opaque sprite at (x=16, y=16), tile 1 all-color-3.
func TestSingleOpaqueSprite(t *testing.T) {
	h := newFakeHost()
	p := New(h)
	h.WriteRegister(RegLCDC, 0x93) // LCD+BG+sprites on, 8x8 mode

	tileBase := 1 * 16
	for row := 0; row < 8; row++ {
		h.vram[tileBase+row*2] = 0xFF
		h.vram[tileBase+row*2+1] = 0xFF
	}

	h.oam[0] = 16 // Y
	h.oam[1] = 16 // X
	h.oam[2] = 1  // tile
	h.oam[3] = 0  // attr

	p.Tick(cyclesPerFrame)

	fb := p.Framebuffer()
	objPalette := p.Palettes().OBJ(0)
	for y := 0; y < 8; y++ {
		for x := 8; x < 16; x++ {
			if fb.Priority(x, y) != P5 {
				t.Fatalf("sprite pixel (%d,%d) priority = %d, want P5", x, y, fb.Priority(x, y))
			}
			if c := fb.At(x, y); c != objPalette[3] {
				t.Fatalf("sprite pixel (%d,%d) = %#06x, want obj color 3 %#06x", x, y, c, objPalette[3])
			}
		}
	}
	if fb.Priority(0, 0) != P1 {
		t.Fatalf("pixel outside sprite should remain P1, got %d", fb.Priority(0, 0))
	}
}

// Scenario 4: LY=LYC coincidence.
func TestLYLYCCoincidence(t *testing.T) {
	h := newFakeHost()
	p := New(h)
	h.WriteRegister(RegLCDC, 0x80) // LCD on, nothing else
	h.WriteRegister(RegLYC, 80)
	h.WriteRegister(RegSTAT, 0x40) // LYC interrupt enable

	for i := 0; i < 80; i++ {
		p.Tick(456)
	}
	if got := h.ReadRegister(RegLY); got != 80 {
		t.Fatalf("LY = %d, want 80", got)
	}
	if h.lcdcIRQs == 0 {
		t.Fatal("expected LCDC-STAT interrupt when LY reaches LYC")
	}
	if NewSTAT(h.ReadRegister(RegSTAT)).Get()&0x04 == 0 {
		t.Fatal("expected STAT coincidence bit set")
	}

	before := h.lcdcIRQs
	p.Tick(456)
	if h.lcdcIRQs != before {
		t.Fatal("coincidence interrupt should not re-fire on the next scanline")
	}
	if NewSTAT(h.ReadRegister(RegSTAT)).Get()&0x04 != 0 {
		t.Fatal("expected STAT coincidence bit cleared once LY != LYC")
	}
}

// Scenario 5: tall sprite V-flip.
func TestTallSpriteVerticalFlip(t *testing.T) {
	h := newFakeHost()
	p := New(h)
	h.WriteRegister(RegLCDC, 0x97) // LCD+BG+sprites on, 8x16 mode

	// Fill each tile uniformly (same value on every row and column) so
	// a within-tile vertical or horizontal flip can't be mistaken for
	// a half-selection difference: only the half-selection swap that
	// flip_y triggers can change which value appears at a given
	// screen row.
	mark := func(tile uint8, lo, hi uint8) {
		base := int(tile) * 16
		for row := 0; row < 8; row++ {
			h.vram[base+row*2] = lo
			h.vram[base+row*2+1] = hi
		}
	}
	mark(0x30, 0xFF, 0xFF) // even (top-when-unflipped) tile: color index 3
	mark(0x31, 0xFF, 0x00) // odd (bottom-when-unflipped) tile: color index 1

	h.oam[0] = 16   // Y
	h.oam[1] = 16   // X
	h.oam[2] = 0x30 // tile
	h.oam[3] = 0x40 // attr: V-flip

	p.Tick(cyclesPerFrame)

	fb := p.Framebuffer()
	objPalette := p.Palettes().OBJ(0)
	if fb.At(8, 0) != objPalette[1] {
		t.Fatalf("flipped top half row 0 should render tile 0x31's pattern (index 1), got %#06x", fb.At(8, 0))
	}
	if fb.At(8, 8) != objPalette[3] {
		t.Fatalf("flipped bottom half row 8 should render tile 0x30's pattern (index 3), got %#06x", fb.At(8, 8))
	}
}

// Scenario 6: CGB palette expansion.
func TestCGBPaletteExpansion(t *testing.T) {
	ps := NewPaletteStore(cartridge.ModeCGB, 0)
	ps.WriteCGBBG(0, 0x1F)
	ps.WriteCGBBG(1, 0x00)

	if got := ps.BG(0)[0]; got != RGB(0xFF, 0x00, 0x00) {
		t.Fatalf("BG(0)[0] = %#06x, want %#06x", got, RGB(0xFF, 0x00, 0x00))
	}
}

// P2: sprites_drawn[LY] <= 10.
func TestSpriteOverflowCapsAtTen(t *testing.T) {
	h := newFakeHost()
	p := New(h)
	h.WriteRegister(RegLCDC, 0x93)

	for i := 0; i < 20; i++ {
		base := i * 4
		h.oam[base+0] = 16
		h.oam[base+1] = uint8(16 + i*4)
		h.oam[base+2] = 0
		h.oam[base+3] = 0
	}

	p.Tick(456)
	if p.spritesDrawn[0] > maxSpritesPerLine {
		t.Fatalf("sprites_drawn[0] = %d, want <= %d", p.spritesDrawn[0], maxSpritesPerLine)
	}
}

// P3: consecutive ticks summing under 456 leave LY/STAT unchanged.
func TestSubScanlineTicksDoNotAdvance(t *testing.T) {
	h := newFakeHost()
	p := New(h)
	h.WriteRegister(RegLCDC, 0x80)

	lyBefore := h.ReadRegister(RegLY)
	statBefore := h.ReadRegister(RegSTAT)

	p.Tick(200)
	p.Tick(100)

	if h.ReadRegister(RegLY) != lyBefore {
		t.Fatalf("LY changed after %d cycles (< 456)", 300)
	}
	if h.ReadRegister(RegSTAT) != statBefore {
		t.Fatalf("STAT changed after %d cycles (< 456)", 300)
	}
}

// P4: after 70224 cycles, LY wraps to 0 and VBlank fires exactly once.
func TestFullFrameVBlankOnce(t *testing.T) {
	h := newFakeHost()
	p := New(h)
	h.WriteRegister(RegLCDC, 0x80)

	p.Tick(cyclesPerFrame)

	if got := h.ReadRegister(RegLY); got != 0 {
		t.Fatalf("LY after a full frame = %d, want 0", got)
	}
	if h.vblanks != 1 {
		t.Fatalf("VBlank raised %d times, want 1", h.vblanks)
	}
}

// P5: LCD disabled raises no interrupts regardless of cycles ticked.
func TestLCDDisabledNeverInterrupts(t *testing.T) {
	h := newFakeHost()
	p := New(h)
	h.WriteRegister(RegLCDC, 0x00)
	h.WriteRegister(RegSTAT, 0x58) // all interrupt-enable bits set
	h.WriteRegister(RegLYC, 0)

	p.Tick(cyclesPerFrame * 2)

	if h.vblanks != 0 || h.lcdcIRQs != 0 {
		t.Fatalf("expected zero interrupts with LCD disabled, got vblanks=%d lcdc=%d", h.vblanks, h.lcdcIRQs)
	}
}

// HDMA only advances on the boundary that ends a visible line, never
// on the boundary that ends a VBlank line (§4.5 steps 5-6).
func TestHDMATicksOnVisibleLineEndNotOnVBlankLineEnd(t *testing.T) {
	h := newFakeHost()
	p := New(h)
	h.WriteRegister(RegLCDC, 0x80)

	// Advance to LY=143 (143 scanline boundaries from power-on).
	for i := 0; i < 143; i++ {
		p.Tick(456)
	}
	if got := h.ReadRegister(RegLY); got != 143 {
		t.Fatalf("LY = %d, want 143", got)
	}

	before := h.hdmaTicks
	p.Tick(456) // crosses the line-143->144 edge: end of a visible line
	if got := h.ReadRegister(RegLY); got != 144 {
		t.Fatalf("LY = %d, want 144", got)
	}
	if h.hdmaTicks != before+1 {
		t.Fatalf("hdmaTicks = %d, want %d after the line-143->144 edge", h.hdmaTicks, before+1)
	}

	// Advance to LY=153, the last VBlank line.
	for i := 0; i < 9; i++ {
		p.Tick(456)
	}
	if got := h.ReadRegister(RegLY); got != 153 {
		t.Fatalf("LY = %d, want 153", got)
	}

	before = h.hdmaTicks
	p.Tick(456) // crosses the line-153->0 edge: end of a VBlank line
	if got := h.ReadRegister(RegLY); got != 0 {
		t.Fatalf("LY = %d, want 0", got)
	}
	if h.hdmaTicks != before {
		t.Fatalf("hdmaTicks = %d, want %d: the line-153->0 edge must not tick HDMA", h.hdmaTicks, before)
	}
}

// Absent display: compositing still runs (§7).
func TestCompositingRunsWithoutDisplay(t *testing.T) {
	h := newFakeHost()
	p := New(h)
	h.WriteRegister(RegLCDC, 0x91)
	p.WriteBGP(0xE4)

	p.Tick(456)

	if p.Framebuffer().Priority(0, 0) != P1 {
		t.Fatal("background should still be composited with no display attached")
	}
}

// Display present is called exactly once per frame, at LY=143->144.
func TestPresentCalledOncePerFrame(t *testing.T) {
	h := newFakeHost()
	d := &fakeDisplay{}
	h.display = d
	p := New(h)
	h.WriteRegister(RegLCDC, 0x80)

	p.Tick(cyclesPerFrame)

	if d.presented != 1 {
		t.Fatalf("Present called %d times, want 1", d.presented)
	}
}
