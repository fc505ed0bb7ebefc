//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	hostFlashDefaultPath      = "usdr.flash"
	hostFlashDefaultSizeBytes = 256 * 1024
	hostFlashEraseBlockBytes  = 4096
)

// HostFlashSize is the size of the simulated flash image.
const HostFlashSize = hostFlashDefaultSizeBytes

var ErrFlashWriteRequiresErase = errors.New("flash write requires erase")

// hostFlash emulates NOR flash on top of a file: erase sets bytes to 0xFF
// and a write may only clear bits.
type hostFlash struct {
	mu    sync.Mutex
	f     *os.File
	size  uint32
	blank [hostFlashEraseBlockBytes]byte
}

// FlashFile is a file-backed Flash that must be closed.
type FlashFile interface {
	Flash
	Close() error
}

// OpenFlashFile opens (or creates) a file-backed flash image. A new file is
// sized to size bytes and left fully erased.
func OpenFlashFile(path string, size uint32) (FlashFile, error) {
	return openHostFlash(path, size)
}

func openHostFlash(path string, size uint32) (*hostFlash, error) {
	if size == 0 || size%hostFlashEraseBlockBytes != 0 {
		return nil, fmt.Errorf("flash: size %d not multiple of erase size %d", size, hostFlashEraseBlockBytes)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("flash: open %q: %w", path, err)
	}

	hf := &hostFlash{f: f, size: size}
	for i := range hf.blank {
		hf.blank[i] = 0xFF
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("flash: stat %q: %w", path, err)
	}
	if st.Size() > 0 {
		if st.Size() > int64(^uint32(0)) {
			_ = f.Close()
			return nil, fmt.Errorf("flash: %q too large", path)
		}
		hf.size = uint32(st.Size())
		return hf, nil
	}

	if err := f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("flash: truncate %q: %w", path, err)
	}
	if err := hf.Erase(0, size); err != nil {
		_ = f.Close()
		return nil, err
	}
	return hf, nil
}

// newHostFlash never fails: an unusable backing file yields a flash that
// reports ErrNotImplemented, and the HMI runs with built-in band defaults.
func newHostFlash(path string) *hostFlash {
	if path == "" {
		path = os.Getenv("USDR_FLASH_PATH")
	}
	if path == "" {
		path = hostFlashDefaultPath
	}
	hf, err := openHostFlash(path, hostFlashDefaultSizeBytes)
	if err != nil {
		return &hostFlash{}
	}
	return hf
}

func (f *hostFlash) SizeBytes() uint32       { return f.size }
func (f *hostFlash) EraseBlockBytes() uint32 { return hostFlashEraseBlockBytes }

func (f *hostFlash) ReadAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return 0, ErrNotImplemented
	}
	if off >= f.size {
		return 0, fmt.Errorf("flash read at %d: %w", off, os.ErrInvalid)
	}
	if maxN := int(f.size - off); len(p) > maxN {
		p = p[:maxN]
	}
	return f.f.ReadAt(p, int64(off))
}

func (f *hostFlash) WriteAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return 0, ErrNotImplemented
	}
	if off >= f.size {
		return 0, fmt.Errorf("flash write at %d: %w", off, os.ErrInvalid)
	}
	if maxN := int(f.size - off); len(p) > maxN {
		p = p[:maxN]
	}

	cur := make([]byte, len(p))
	if _, err := f.f.ReadAt(cur, int64(off)); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("flash read before write at %d: %w", off, err)
	}
	for i := range p {
		if cur[i]&p[i] != p[i] {
			return 0, ErrFlashWriteRequiresErase
		}
	}
	return f.f.WriteAt(p, int64(off))
}

func (f *hostFlash) Erase(off, size uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return ErrNotImplemented
	}
	if size == 0 {
		return nil
	}
	if off%hostFlashEraseBlockBytes != 0 || size%hostFlashEraseBlockBytes != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}
	if off >= f.size || off+size > f.size {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}

	for ; size > 0; off, size = off+hostFlashEraseBlockBytes, size-hostFlashEraseBlockBytes {
		if _, err := f.f.WriteAt(f.blank[:], int64(off)); err != nil {
			return fmt.Errorf("flash erase block at %d: %w", off, err)
		}
	}
	return nil
}

// Close releases the backing file.
func (f *hostFlash) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	return err
}
