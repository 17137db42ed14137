//go:build !tinygo

package sim

import (
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
)

// Framebuffer is an RGB565 pixel buffer shared by the bench's panels.
type Framebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

// NewFramebuffer returns a black framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	stride := width * 2
	return &Framebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// Clear fills the whole buffer with c.
func (f *Framebuffer) Clear(c color.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pixel := rgb565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// At returns the pixel at (x, y) expanded to RGB888.
func (f *Framebuffer) At(x, y int) color.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return color.RGBA{}
	}
	off := y*f.stride + x*2
	r, g, b := rgb888From565(uint16(f.buf[off]) | uint16(f.buf[off+1])<<8)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// RGBA writes the buffer as RGBA8888 into dst, which must hold
// width*height*4 bytes.
func (f *Framebuffer) RGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	src := f.buf
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, g, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}

// Region returns a display that draws into the w×h rectangle at (x, y).
func (f *Framebuffer) Region(x, y, w, h int) *Region {
	x = clampInt(x, 0, f.width)
	y = clampInt(y, 0, f.height)
	w = clampInt(w, 0, f.width-x)
	h = clampInt(h, 0, f.height-y)
	return &Region{fb: f, x: x, y: y, w: w, h: h}
}

// Region is a clipped window onto a Framebuffer. It satisfies hal.Displayer
// and the tinyterm display interface.
type Region struct {
	fb         *Framebuffer
	x, y, w, h int
}

func (d *Region) Size() (x, y int16) { return int16(d.w), int16(d.h) }

func (d *Region) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.w || iy < 0 || iy >= d.h {
		return
	}
	pixel := rgb565(c.R, c.G, c.B)
	f := d.fb
	f.mu.Lock()
	off := (d.y+iy)*f.stride + (d.x+ix)*2
	f.buf[off] = byte(pixel)
	f.buf[off+1] = byte(pixel >> 8)
	f.mu.Unlock()
}

func (d *Region) Display() error { return nil }

func (d *Region) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, d.w)
	y0 := clampInt(int(y), 0, d.h)
	x1 := clampInt(int(x)+int(width), 0, d.w)
	y1 := clampInt(int(y)+int(height), 0, d.h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}
	pixel := rgb565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	f := d.fb
	f.mu.Lock()
	defer f.mu.Unlock()
	for py := y0; py < y1; py++ {
		row := (d.y + py) * f.stride
		for px := x0; px < x1; px++ {
			off := row + (d.x+px)*2
			f.buf[off] = lo
			f.buf[off+1] = hi
		}
	}
	return nil
}

// ScrollUp moves the region's content up by lines pixels and clears the
// exposed rows.
func (d *Region) ScrollUp(lines int16, bg color.RGBA) error {
	n := int(lines)
	if n <= 0 {
		return nil
	}
	if n >= d.h {
		return d.FillRectangle(0, 0, int16(d.w), int16(d.h), bg)
	}
	f := d.fb
	f.mu.Lock()
	rowBytes := d.w * 2
	for py := 0; py < d.h-n; py++ {
		dst := (d.y+py)*f.stride + d.x*2
		src := (d.y+py+n)*f.stride + d.x*2
		copy(f.buf[dst:dst+rowBytes], f.buf[src:src+rowBytes])
	}
	f.mu.Unlock()
	return d.FillRectangle(0, int16(d.h-n), int16(d.w), int16(n), bg)
}

func (d *Region) SetScroll(line int16) { _ = line }

func (d *Region) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}
