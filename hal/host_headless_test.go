//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var (
		steps  int
		flash  Flash
		exited bool
	)
	onExit := func() {
		exited = true
		buf := make([]byte, 4)
		if _, err := flash.ReadAt(buf, 0); err != nil {
			t.Errorf("ReadAt in OnExit = %v, want open flash", err)
		}
	}
	host := HostConfig{
		FlashPath: filepath.Join(t.TempDir(), "flash.bin"),
		NoTouch:   true,
		OnExit:    onExit,
	}
	cfg := HeadlessConfig{Host: host, Hz: 1000, Ticks: 3}
	err := RunHeadless(context.Background(), func(h HAL) (func() error, error) {
		flash = h.Flash()
		if h.Touch() != nil {
			t.Error("Touch() != nil with NoTouch")
		}
		return func() error { steps++; return nil }, nil
	}, cfg)
	if err != nil {
		t.Fatalf("RunHeadless() = %v", err)
	}
	if steps != 3 || !exited {
		t.Fatalf("steps = %d, exited = %v, want 3 and true", steps, exited)
	}
}

func TestRunHeadlessStepError(t *testing.T) {
	want := errors.New("boom")
	cfg := HeadlessConfig{Host: HostConfig{FlashPath: filepath.Join(t.TempDir(), "flash.bin")}, Hz: 1000}
	err := RunHeadless(context.Background(), func(HAL) (func() error, error) {
		return func() error { return want }, nil
	}, cfg)
	if !errors.Is(err, want) {
		t.Fatalf("RunHeadless() = %v, want %v", err, want)
	}
}
