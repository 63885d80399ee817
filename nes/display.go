package nes

import (
	"bytes"
	"image"
	"image/color"
)

// The display is a 32x32 frame buffer mapped at $0200-$05FF, a byte per pixel.
const (
	width              = 32
	height             = 32
	frameBufferAddress = 0x0200
)

// Palette for the low nibble of a pixel byte, values from 16 repeat cyan.
var colors = [16]color.RGBA{
	{0x00, 0x00, 0x00, 255}, // black
	{0xFF, 0xFF, 0xFF, 255}, // white
	{0x80, 0x80, 0x80, 255}, // grey
	{0xFF, 0x00, 0x00, 255}, // red
	{0x00, 0xFF, 0x00, 255}, // green
	{0x00, 0x00, 0xFF, 255}, // blue
	{0xFF, 0x00, 0xFF, 255}, // magenta
	{0xFF, 0xFF, 0x00, 255}, // yellow
	{0x00, 0xFF, 0xFF, 255}, // cyan
	{0x80, 0x80, 0x80, 255},
	{0xFF, 0x00, 0x00, 255},
	{0x00, 0xFF, 0x00, 255},
	{0x00, 0x00, 0xFF, 255},
	{0xFF, 0x00, 0xFF, 255},
	{0xFF, 0xFF, 0x00, 255},
	{0x00, 0xFF, 0xFF, 255},
}

func pixelColor(v byte) color.RGBA {
	if int(v) < len(colors) {
		return colors[v]
	}
	return colors[8]
}

// Display samples the frame buffer region and renders it to an image when it changed.
type Display struct {
	bus        *CPUBus
	last       []byte
	background *image.RGBA
}

// NewDisplay creates a Display.
func NewDisplay(bus *CPUBus) *Display {
	return &Display{
		bus:        bus,
		background: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Reset forces the next refresh to render.
func (d *Display) Reset() {
	d.last = nil
}

// refresh reads the frame buffer, returns true with a new image if any pixel changed.
func (d *Display) refresh() (bool, *image.RGBA) {
	pixels := d.bus.readSlice(frameBufferAddress, width*height)
	if d.last != nil && bytes.Equal(pixels, d.last) {
		return false, nil
	}
	d.last = pixels
	for i, v := range pixels {
		d.background.SetRGBA(i%width, i/width, pixelColor(v))
	}
	return true, d.background
}
