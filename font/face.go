package font

import (
	"image"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/BeatGlow/monodisplay/pixel"
)

// ASCII holds the printable ASCII characters.
var ASCII = func() string {
	b := make([]byte, 0, 0x7f-0x20)
	for c := byte(0x20); c < 0x7f; c++ {
		b = append(b, c)
	}
	return string(b)
}()

// FromFace rasterizes the runes of face into a Package. Each glyph is as wide as its
// advance and as high as the face; the cell size is the widest advance by the face
// height. Pixels are thresholded to 1-bit. An empty runes string selects ASCII.
func FromFace(face xfont.Face, runes string) (*Package, error) {
	if runes == "" {
		runes = ASCII
	}

	var (
		metrics = face.Metrics()
		height  = metrics.Height.Ceil()
		dot     = fixed.P(0, metrics.Ascent.Ceil())
		p       = New(image.Pt(0, height))
	)
	for _, r := range runes {
		advance, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}

		bitmap := pixel.NewMonoImage(advance.Ceil(), height)
		if dr, mask, maskp, _, ok := face.Glyph(dot, r); ok {
			draw.DrawMask(bitmap, dr, image.NewUniform(pixel.On), image.Point{}, mask, maskp, draw.Over)
		}
		p.Add(r, bitmap)

		if w := bitmap.Bounds().Dx(); w > p.Size.X {
			p.Size.X = w
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Basic returns the 7x13 fixed font from [basicfont.Face7x13].
func Basic() *Package {
	p, err := FromFace(basicfont.Face7x13, ASCII)
	if err != nil {
		// Face7x13 covers ASCII.
		panic(err)
	}
	return p
}

// FromTrueType parses TrueType font data and rasterizes runes at size points (72 DPI).
func FromTrueType(data []byte, size float64, runes string) (*Package, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	defer face.Close()

	return FromFace(face, runes)
}
