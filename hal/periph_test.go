//go:build !tinygo

package hal

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestPeriphPinEdgeWatcher(t *testing.T) {
	raw := &gpiotest.Pin{N: "GPIO17", L: gpio.High, EdgesChan: make(chan gpio.Level, 4)}
	pin := newPeriphPin("GP6", raw)
	defer pin.Close()

	if err := pin.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	got := make(chan bool, 4)
	if err := pin.SetInterrupt(GPIOEdgeFalling, func(level bool) { got <- level }); err != nil {
		t.Fatalf("SetInterrupt: %v", err)
	}

	raw.EdgesChan <- gpio.Low

	select {
	case level := <-got:
		if level {
			t.Fatalf("edge level = true, want false")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no edge delivered")
	}
}

func TestPeriphPinReadWrite(t *testing.T) {
	raw := &gpiotest.Pin{N: "GPIO27"}
	pin := newPeriphPin("LED", raw)

	if err := pin.Configure(GPIOModeOutput, GPIOPullNone); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := pin.Write(true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	level, err := pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !level {
		t.Fatalf("Read() = false, want true")
	}
}

func TestPeriphPullMapping(t *testing.T) {
	cases := []struct {
		in   GPIOPull
		want gpio.Pull
	}{
		{GPIOPullUp, gpio.PullUp},
		{GPIOPullDown, gpio.PullDown},
		{GPIOPullNone, gpio.Float},
	}
	for _, tc := range cases {
		if got := periphPull(tc.in); got != tc.want {
			t.Fatalf("periphPull(%d) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
