//go:build !tinygo

package hal

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestHostFlashEraseWrite(t *testing.T) {
	f, err := OpenFlashFile(filepath.Join(t.TempDir(), "flash.bin"), 2*hostFlashEraseBlockBytes)
	if err != nil {
		t.Fatalf("OpenFlashFile: %v", err)
	}
	defer f.Close()

	buf := make([]byte, 4)
	if _, err := f.ReadAt(buf, 0); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	for i, b := range buf {
		if b != 0xFF {
			t.Fatalf("fresh byte %d = %#x, want 0xff", i, b)
		}
	}

	if _, err := f.WriteAt([]byte{0x0F, 0xF0}, 0); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	if _, err := f.WriteAt([]byte{0xFF}, 0); !errors.Is(err, ErrFlashWriteRequiresErase) {
		t.Fatalf("WriteAt over programmed bits err = %v, want ErrFlashWriteRequiresErase", err)
	}

	if err := f.Erase(0, hostFlashEraseBlockBytes); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if _, err := f.WriteAt([]byte{0xAA}, 0); err != nil {
		t.Fatalf("WriteAt after erase: %v", err)
	}
}

func TestHostFlashEraseAlignment(t *testing.T) {
	f, err := OpenFlashFile(filepath.Join(t.TempDir(), "flash.bin"), hostFlashEraseBlockBytes)
	if err != nil {
		t.Fatalf("OpenFlashFile: %v", err)
	}
	defer f.Close()

	if err := f.Erase(1, hostFlashEraseBlockBytes); err == nil {
		t.Fatalf("Erase(unaligned) err = nil, want error")
	}
}
