//go:build !tinygo && cgo

package hal

import (
	"image"

	"usdr/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunWindow starts a desktop window that shows the panel and maps the
// keyboard and mouse onto the transceiver controls. It blocks until the
// window closes.
//
//	Up / Down, mouse wheel  encoder
//	Enter                   Enter button (GP6)
//	Escape                  Escape button (GP7)
//	Left / Right            Left / Right buttons (GP8 / GP9)
//	Space (hold)            PTT (GP15)
//	Left mouse button       touch panel
func RunWindow(newApp func(HAL) (func() error, error), cfg HostConfig) error {
	h := newHost(cfg)
	defer h.flash.Close()
	if cfg.OnExit != nil {
		defer cfg.OnExit()
	}

	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("uSDR (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(100)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

var hostButtonKeys = []struct {
	key ebiten.Key
	pin string
}{
	{ebiten.KeyEnter, "GP6"},
	{ebiten.KeyEscape, "GP7"},
	{ebiten.KeyArrowLeft, "GP8"},
	{ebiten.KeyArrowRight, "GP9"},
	{ebiten.KeySpace, "GP15"},
}

func (g *hostGame) Update() error {
	g.pollControls()
	g.pollTouch()
	g.h.t.step()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) pollControls() {
	for _, b := range hostButtonKeys {
		if inpututil.IsKeyJustPressed(b.key) {
			g.h.drive(b.pin, false)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			g.h.drive(b.pin, true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.encoderPulse(true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.encoderPulse(false)
	}
	if _, dy := ebiten.Wheel(); dy > 0 {
		g.encoderPulse(true)
	} else if dy < 0 {
		g.encoderPulse(false)
	}
}

// encoderPulse plays one detent of the quadrature encoder: B is set to the
// direction level, then A falls and rises.
func (g *hostGame) encoderPulse(cw bool) {
	g.h.drive("GP3", cw)
	g.h.drive("GP2", false)
	g.h.drive("GP2", true)
	g.h.drive("GP3", true)
}

func (g *hostGame) pollTouch() {
	if g.h.touch == nil {
		return
	}
	x, y := ebiten.CursorPosition()
	g.h.touch.set(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		fb.MarkDirty(0, fb.height-1)
	}

	if fb.snapshotRGB565(g.scratch) {
		src := g.scratch
		dst := g.img.Pix
		for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
			r, gg, b := RGB888(uint16(src[i]) | uint16(src[i+1])<<8)
			j := (i / 2) * 4
			dst[j+0] = r
			dst[j+1] = gg
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
