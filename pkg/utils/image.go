package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/thelolagemann/shellboy/internal/ppu"
	"github.com/thelolagemann/shellboy/internal/ppu/palette"
	"golang.org/x/image/draw"
)

// FrameImage converts a row-major frame of shades into an image,
// colouring it with the given palette.
func FrameImage(frame []byte, p palette.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for i, shade := range frame {
		if i >= ppu.ScreenWidth*ppu.ScreenHeight {
			break
		}
		c := p.GetColour(shade)
		img.SetRGBA(i%ppu.ScreenWidth, i/ppu.ScreenWidth, color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF})
	}
	return img
}

// Scale scales img by factor using nearest neighbour sampling, so
// that pixels stay sharp.
func Scale(img image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SavePNG scales img by factor and writes it to filename as a PNG.
func SavePNG(filename string, img image.Image, factor int) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("utils: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, Scale(img, factor)); err != nil {
		return fmt.Errorf("utils: encoding %s: %w", filename, err)
	}
	return f.Close()
}
