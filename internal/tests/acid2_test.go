package tests

import (
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/thelolagemann/shellboy/internal/ppu/palette"
	"github.com/thelolagemann/shellboy/pkg/utils"
)

// imageTest passes when the frame drawn after the given number of
// seconds matches the expected image.
type imageTest struct {
	romPath       string
	expectedImage string
	name          string
	seconds       int
	passed        bool
}

func acid2Tests() []ROMTest {
	return []ROMTest{
		&imageTest{
			romPath:       "roms/dmg-acid2/dmg-acid2.gb",
			expectedImage: "roms/dmg-acid2/dmg-acid2-dmg.png",
			name:          "dmg-acid2",
			seconds:       1,
		},
	}
}

func (i *imageTest) Name() string {
	return i.name
}

func (i *imageTest) Passed() bool {
	return i.passed
}

func (i *imageTest) Run(t *testing.T) {
	gb := loadROM(t, i.romPath)
	expected, err := loadPNG(i.expectedImage)
	if err != nil {
		t.Skipf("expected image: %v", err)
	}

	runFrames(gb, seconds(i.seconds), nil)
	got := utils.FrameImage(flatten(gb.Frame()), palette.Get(palette.Greyscale))

	diff := 0
	b := expected.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r1, g1, b1, _ := expected.At(x, y).RGBA()
			r2, g2, b2, _ := got.At(x-b.Min.X, y-b.Min.Y).RGBA()
			if r1>>8 != r2>>8 || g1>>8 != g2>>8 || b1>>8 != b2>>8 {
				diff++
			}
		}
	}
	if diff > 0 {
		t.Errorf("expected frame to match %s, %d pixels differ", i.expectedImage, diff)
		return
	}
	i.passed = true
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
