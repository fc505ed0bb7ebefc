package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
//
// The HMI drives it as the transmit indicator.
type LED interface {
	High()
	Low()
}

// Panel geometry of the 2.8" ILI9341 used by the transceiver, landscape.
const (
	PanelWidth  = 320
	PanelHeight = 240
)

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp little-endian: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// DirtyTracker is implemented by framebuffers that can flush a partial
// region on Present. Writers report the rows they touched.
type DirtyTracker interface {
	MarkDirty(y0, y1 int)
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Touch is a resistive touch panel sampled on demand.
//
// ReadRaw returns one calibrated sample in panel coordinates. ok is false
// when the panel is not pressed or the conversion failed.
type Touch interface {
	ReadRaw() (x, y uint16, ok bool)
}

// Flash provides raw access to non-volatile memory.
//
// It is intentionally low-level: addresses and erase blocks only.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// Time provides a base tick stream.
//
// Ticks are 1ms apart; the sequence number is free-running.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the HMI and the outside world.
//
// Touch may return nil when no panel is fitted.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Display
	GPIO() GPIO
	Touch() Touch
	Flash() Flash
	Time() Time
}
