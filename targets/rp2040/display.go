//go:build rp2040

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"axisrig/core"
)

// 128x64 SSD1306 on I2C0
const (
	oledWidth   = 128
	oledHeight  = 64
	oledAddress = 0x3C
	oledRow     = 8 // px per text row
	oledRows    = oledHeight / oledRow
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// OLED renders core.Screen on an SSD1306
type OLED struct {
	dev *ssd1306.Device
}

// NewOLED configures I2C0 on the given pins and clears the panel
func NewOLED(sda, scl uint8) (*OLED, error) {
	bus := machine.I2C0
	err := bus.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.Pin(sda),
		SCL:       machine.Pin(scl),
	})
	if err != nil {
		return nil, err
	}

	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Width:   oledWidth,
		Height:  oledHeight,
		Address: oledAddress,
	})
	dev.ClearDisplay()
	return &OLED{dev: dev}, nil
}

// Show implements core.Display
func (o *OLED) Show(s core.Screen) error {
	o.dev.ClearBuffer()
	for i, line := range s.Window(oledRows) {
		// tinyfont y is the text baseline
		y := int16((i+1)*oledRow - 1)
		tinyfont.WriteLine(o.dev, &proggy.TinySZ8pt7b, 0, y, line, white)
	}
	return o.dev.Display()
}
