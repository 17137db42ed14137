//go:build tinygo && baremetal && oled

package hal

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
)

// oledDisplay adapts a 128x32 SSD1306 on I2C0 (GP20 SDA, GP21 SCL).
type oledDisplay struct {
	size     func() (int16, int16)
	setPixel func(x, y int16, c color.RGBA)
	display  func() error
}

func newStatusDisplay() Displayer {
	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GP20,
		SCL:       machine.GP21,
	}); err != nil {
		return nil
	}
	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{Width: 128, Height: 32, Address: 0x3C})
	dev.ClearDisplay()
	return &oledDisplay{
		size:     dev.Size,
		setPixel: dev.SetPixel,
		display:  dev.Display,
	}
}

func (d *oledDisplay) Size() (x, y int16)                { return d.size() }
func (d *oledDisplay) SetPixel(x, y int16, c color.RGBA) { d.setPixel(x, y, c) }
func (d *oledDisplay) Display() error                    { return d.display() }

func (d *oledDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	for py := y; py < y+height; py++ {
		for px := x; px < x+width; px++ {
			d.setPixel(px, py, c)
		}
	}
	return nil
}
