package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/sortviz/internal/display"
)

var background = color.RGBA{0x0a, 0x0a, 0x0a, 0xff}

// colors builds a GIF palette: background first, then one entry per
// highlight in declaration order.
func (p Palette) colors() color.Palette {
	pal := color.Palette{background}
	for h := display.Neutral; h <= display.Sorted; h++ {
		pal = append(pal, hexToRGBA(p.fill(h)))
	}
	return pal
}

func hexToRGBA(hex string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	return color.RGBA{r, g, b, 0xff}
}

// FrameToImage rasterizes bars the same way FrameToSVG lays them out.
func FrameToImage(f display.Frame, width, height int, palette Palette) *image.Paletted {
	if palette == nil {
		palette = DefaultPalette
	}
	img := image.NewPaletted(image.Rect(0, 0, width, height), palette.colors())

	n := f.Len()
	if n == 0 {
		return img
	}
	maxV := 1
	for i := 0; i < n; i++ {
		if v := f.Value(i); v > maxV {
			maxV = v
		}
	}

	for i := 0; i < n; i++ {
		x0 := i * width / n
		x1 := (i + 1) * width / n
		if x1-x0 > 2 {
			x1--
		}
		v := f.Value(i)
		if v < 0 {
			v = 0
		}
		bh := v * height / maxV
		idx := uint8(1 + int(f.Highlight(i)))
		for y := height - bh; y < height; y++ {
			for x := x0; x < x1; x++ {
				img.SetColorIndex(x, y, idx)
			}
		}
	}
	return img
}

// GIFRecorder collects frames for an animated capture.
type GIFRecorder struct {
	Width, Height int
	Delay         int
	Palette       Palette
	frames        []*image.Paletted
}

func NewGIFRecorder(width, height int) *GIFRecorder {
	return &GIFRecorder{Width: width, Height: height, Delay: 2, Palette: DefaultPalette}
}

func (g *GIFRecorder) Add(f display.Frame) {
	g.frames = append(g.frames, FrameToImage(f, g.Width, g.Height, g.Palette))
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

func (g *GIFRecorder) Reset() { g.frames = nil }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return fmt.Errorf("export: no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (g *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
