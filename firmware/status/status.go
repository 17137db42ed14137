// Package status draws a small panel describing a half: role, layers, keys.
package status

import (
	"fmt"
	"image/color"
	"strings"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"splitkb/firmware/keycode"
	"splitkb/hal"
)

const (
	lineHeight = 10
	baseline   = 8
	marginX    = 1
)

var (
	fg = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	bg = color.RGBA{A: 0xFF}
)

// Snapshot is what the panel shows.
type Snapshot struct {
	Side   string
	Role   string
	USB    bool
	Layers []uint8
	Keys   []keycode.Code
	Frames uint32
	Halted bool
	Reason string
}

// Lines formats s as the panel's text lines.
func (s Snapshot) Lines() []string {
	usb := "-"
	if s.USB {
		usb = "usb"
	}
	head := fmt.Sprintf("%s %s %s f%d", s.Side, s.Role, usb, s.Frames)
	if s.Halted {
		return []string{head, "HALT", s.Reason}
	}

	var b strings.Builder
	b.WriteString("L0")
	for _, n := range s.Layers {
		fmt.Fprintf(&b, " L%d", n)
	}
	keys := make([]string, 0, len(s.Keys))
	for _, c := range s.Keys {
		keys = append(keys, c.String())
	}
	return []string{head, b.String(), strings.Join(keys, " ")}
}

// Panel renders snapshots onto a display.
type Panel struct {
	d    hal.Displayer
	font tinyfont.Fonter
	last []string
}

// NewPanel returns a panel drawing on d.
func NewPanel(d hal.Displayer) *Panel {
	return &Panel{d: d, font: &proggy.TinySZ8pt7b}
}

// Draw renders s. Nothing is drawn when the text did not change.
func (p *Panel) Draw(s Snapshot) error {
	lines := s.Lines()
	if equalLines(lines, p.last) {
		return nil
	}
	w, h := p.d.Size()
	if err := p.d.FillRectangle(0, 0, w, h, bg); err != nil {
		return fmt.Errorf("status: clear: %w", err)
	}
	for i, ln := range lines {
		y := int16(i*lineHeight + baseline)
		if y > h {
			break
		}
		tinyfont.WriteLine(p.d, p.font, marginX, y, fitText(p.font, ln, int(w)-marginX), fg)
	}
	if err := p.d.Display(); err != nil {
		return fmt.Errorf("status: display: %w", err)
	}
	p.last = lines
	return nil
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fitText(f tinyfont.Fonter, s string, maxW int) string {
	for s != "" {
		w, _ := tinyfont.LineWidth(f, s)
		if int(w) <= maxW {
			return s
		}
		s = s[:len(s)-1]
	}
	return s
}
