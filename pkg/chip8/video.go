package chip8

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"gochip8/pkg/grid"
)

// FramebufferRGBA expands the 64×32 display into an RGBA8888 byte slice
// (length 64*32*4) using on for lit pixels and off for the rest.
func (m *Machine) FramebufferRGBA(on, off color.Color) []byte {
	pixels := make([]byte, Width*Height*4)
	onC := color.RGBAModel.Convert(on).(color.RGBA)
	offC := color.RGBAModel.Convert(off).(color.RGBA)

	for i := 0; i < Width*Height; i++ {
		x, y := grid.GetGridCoords(i, Width)
		c := offC
		if m.Display[y][x]&1 != 0 {
			c = onC
		}
		pixels[i*4+0] = c.R
		pixels[i*4+1] = c.G
		pixels[i*4+2] = c.B
		pixels[i*4+3] = c.A
	}
	return pixels
}

// FramebufferImage returns the display as an *image.RGBA at native resolution.
func (m *Machine) FramebufferImage(on, off color.Color) *image.RGBA {
	return &image.RGBA{
		Pix:    m.FramebufferRGBA(on, off),
		Stride: Width * 4,
		Rect:   image.Rect(0, 0, Width, Height),
	}
}

// EncodePNG writes the display as a PNG, each CHIP-8 pixel scaled to a
// scale×scale block.
func (m *Machine) EncodePNG(w io.Writer, on, off color.Color, scale int) error {
	if scale < 1 {
		scale = 1
	}
	src := m.FramebufferImage(on, off)
	if scale == 1 {
		return png.Encode(w, src)
	}

	dst := image.NewRGBA(image.Rect(0, 0, Width*scale, Height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return png.Encode(w, dst)
}

// SaveScreenshot encodes the display as a PNG and writes it to filename.
func (m *Machine) SaveScreenshot(filename string, on, off color.Color, scale int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := m.EncodePNG(f, on, off, scale); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
