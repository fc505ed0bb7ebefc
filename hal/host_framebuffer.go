//go:build !tinygo

package hal

import "sync"

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte

	// dirty is set by MarkDirty/Present and cleared when the window
	// copies the buffer out.
	dirty    bool
	presents uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
		dirty:  true,
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) MarkDirty(y0, y1 int) {
	if y1 < 0 || y0 >= f.height {
		return
	}
	f.mu.Lock()
	f.dirty = true
	f.mu.Unlock()
}

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	f.presents++
	f.mu.Unlock()
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := RGB565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
	f.dirty = true
}

// snapshotRGB565 copies the buffer into dst if it changed since the last
// snapshot and reports whether it did.
func (f *hostFramebuffer) snapshotRGB565(dst []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.dirty {
		return false
	}
	copy(dst, f.buf)
	f.dirty = false
	return true
}
