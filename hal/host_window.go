//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"rotozoom/internal/buildinfo"
	"rotozoom/internal/overlay"
)

// Window layout in logical pixels: the panel doubled, then a status bar.
const (
	panelZoom   = 2
	statusH     = 16
	windowW     = PageWidth * panelZoom
	windowH     = PageCount * 8 * panelZoom
	windowTotal = windowH + statusH
)

var (
	statusBG  = color.RGBA{0x10, 0x14, 0x10, 0xff}
	statusFG  = color.RGBA{0xa8, 0xc6, 0x8c, 0xff}
	heartbeat = color.RGBA{0xe0, 0x40, 0x30, 0xff}
)

// RunWindow opens a desktop window showing the panel with a status bar and
// plays the audio through the window's audio context. It blocks until the
// window closes, Escape is pressed, or cfg.Frames frames have been shown.
func RunWindow(newApp NewApp, cfg HostConfig) error {
	h := newHostHAL(os.Stdout)
	h.aud = newEbitenAudio()
	if cfg.Silent {
		h.aud = newTickAudio(h.clock)
	}
	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer h.aud.Stop()

	scale := cfg.Scale
	if scale <= 0 {
		scale = 2
	}
	g := &hostGame{h: h, app: app, limit: cfg.Frames}
	ebiten.SetWindowTitle("rotozoom (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(windowW*scale, windowTotal*scale)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

type hostGame struct {
	h     *hostHAL
	app   App
	limit uint64
	n     uint64

	frame    [PageCount][PageWidth]byte
	panel    *image.RGBA
	panelImg *ebiten.Image
	status   *image.RGBA
	statImg  *ebiten.Image
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if err := g.app.Frame(); err != nil {
		return err
	}
	g.n++
	if g.limit > 0 && g.n >= g.limit {
		return ebiten.Termination
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.panel == nil {
		g.panel = image.NewRGBA(image.Rect(0, 0, PageWidth, PageCount*8))
		g.panelImg = ebiten.NewImage(PageWidth, PageCount*8)
		g.status = image.NewRGBA(image.Rect(0, 0, windowW, statusH))
		g.statImg = ebiten.NewImage(windowW, statusH)
	}

	g.h.pages.snapshot(&g.frame)
	expandPages(&g.frame, g.panel.Pix)
	g.panelImg.WritePixels(g.panel.Pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(panelZoom, panelZoom)
	screen.DrawImage(g.panelImg, op)

	c := overlay.NewCanvas(g.status)
	c.Fill(statusBG)
	c.Text(3, 2, statusFG, g.app.Status())
	if g.h.led.isOn() {
		c.Dot(windowW-8, 5, 5, heartbeat)
	}
	g.statImg.WritePixels(g.status.Pix)
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, windowH)
	screen.DrawImage(g.statImg, op)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowW, windowTotal
}
