//go:build !tinygo && cgo

package sim

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"

	"splitkb/internal/buildinfo"
)

// RunWindow opens a desktop window showing both status panels and a console
// of emitted reports. Host keys drive the switches; F1 moves the USB cable.
// It blocks until the window closes or a half halts.
func RunWindow(b *Bench) error {
	fb := b.Framebuffer()
	if fb == nil {
		return fmt.Errorf("sim: window mode needs a bench with panels")
	}
	g := &game{b: b, kbd: newKeyboard(), pix: make([]byte, fb.Width()*fb.Height()*4)}
	if c := b.Console(); c != nil {
		g.term = tinyterm.NewTerminal(c)
		g.term.Configure(&tinyterm.Config{
			Font:              &proggy.TinySZ8pt7b,
			FontHeight:        10,
			FontOffset:        8,
			UseSoftwareScroll: true,
		})
		b.OnReport(func(r Report) {
			fmt.Fprintf(g.term, "%s\n", FormatReport(r))
		})
		fmt.Fprintf(g.term, "F1: move usb cable (%s)\n", b.Attached())
	}

	ebiten.SetWindowTitle("splitkb sim (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(fb.Width()*3, fb.Height()*3)
	ebiten.SetTPS(1000)
	return ebiten.RunGame(g)
}

type game struct {
	b    *Bench
	kbd  *keyboard
	term *tinyterm.Terminal
	img  *ebiten.Image
	pix  []byte
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		next := (g.b.Attached() + 1) % 3
		g.b.Attach(next)
		if g.term != nil {
			fmt.Fprintf(g.term, "usb: %s\n", next)
		}
	}
	g.kbd.poll(g.b)
	return g.b.Step()
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.b.Framebuffer()
	if g.img == nil {
		g.img = ebiten.NewImage(fb.Width(), fb.Height())
	}
	fb.RGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.Fill(color.Black)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.b.Framebuffer()
	return fb.Width(), fb.Height()
}
