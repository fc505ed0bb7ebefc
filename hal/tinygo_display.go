//go:build tinygo && (rp2040 || rp2350)

package hal

import (
	"machine"

	"tinygo.org/x/drivers/ili9341"
)

// ili9341Framebuffer keeps the whole frame in RAM and pushes only the rows
// marked dirty since the previous Present.
type ili9341Framebuffer struct {
	lcd    *ili9341.Device
	width  int
	height int
	stride int
	buf    []byte
	row    []byte

	dirtyLo int
	dirtyHi int
}

func newILI9341Framebuffer() (*ili9341Framebuffer, error) {
	if err := machine.SPI0.Configure(machine.SPIConfig{
		SCK:       lcdSCK,
		SDO:       lcdSDO,
		SDI:       lcdSDI,
		Frequency: 40_000_000,
	}); err != nil {
		return nil, err
	}

	lcd := ili9341.NewSPI(machine.SPI0, lcdDC, lcdCS, lcdRST)
	lcd.Configure(ili9341.Config{
		Rotation: ili9341.Rotation90,
	})

	stride := PanelWidth * 2
	return &ili9341Framebuffer{
		lcd:     lcd,
		width:   PanelWidth,
		height:  PanelHeight,
		stride:  stride,
		buf:     make([]byte, stride*PanelHeight),
		row:     make([]byte, stride),
		dirtyLo: 0,
		dirtyHi: PanelHeight - 1,
	}, nil
}

func (f *ili9341Framebuffer) Width() int          { return f.width }
func (f *ili9341Framebuffer) Height() int         { return f.height }
func (f *ili9341Framebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *ili9341Framebuffer) StrideBytes() int    { return f.stride }
func (f *ili9341Framebuffer) Buffer() []byte      { return f.buf }

func (f *ili9341Framebuffer) MarkDirty(y0, y1 int) {
	y0 = max(y0, 0)
	y1 = min(y1, f.height-1)
	if y0 > y1 {
		return
	}
	if f.dirtyLo > f.dirtyHi {
		f.dirtyLo, f.dirtyHi = y0, y1
		return
	}
	f.dirtyLo = min(f.dirtyLo, y0)
	f.dirtyHi = max(f.dirtyHi, y1)
}

func (f *ili9341Framebuffer) ClearRGB(r, g, b uint8) {
	pixel := RGB565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
	f.MarkDirty(0, f.height-1)
}

func (f *ili9341Framebuffer) Present() error {
	if f.dirtyLo > f.dirtyHi {
		return nil
	}
	for y := f.dirtyLo; y <= f.dirtyHi; y++ {
		off := y * f.stride
		swapRGB565(f.row, f.buf[off:off+f.stride])
		if err := f.lcd.DrawRGBBitmap8(0, int16(y), f.row, int16(f.width), 1); err != nil {
			return err
		}
	}
	f.dirtyLo, f.dirtyHi = 1, 0
	return nil
}
