// Package font holds bitmap fonts: a mapping from rune to 1-bit glyph with a nominal cell size.
package font

import (
	"errors"
	"fmt"
	"image"

	"github.com/BeatGlow/monodisplay/pixel"
)

// Fallback is the rune used for characters that are missing from a Package.
const Fallback = '?'

// ErrIncomplete is returned when a Package lacks the Fallback glyph.
var ErrIncomplete = errors.New("font: package incomplete")

// Glyph is the bitmap of a single character.
type Glyph struct {
	*pixel.MonoImage
}

// Width is the intrinsic width of the glyph in pixels, used by proportional layout.
func (g *Glyph) Width() int {
	return g.Bounds().Dx()
}

// Height of the glyph in pixels.
func (g *Glyph) Height() int {
	return g.Bounds().Dy()
}

// Package is a bitmap font.
type Package struct {
	// Size is the nominal glyph cell, used by fixed width layout.
	Size image.Point

	// Glyphs by character.
	Glyphs map[rune]*Glyph
}

// New returns an empty font package with the given cell size.
func New(size image.Point) *Package {
	return &Package{
		Size:   size,
		Glyphs: make(map[rune]*Glyph),
	}
}

// Add a glyph bitmap for r, replacing any existing glyph.
func (p *Package) Add(r rune, bitmap *pixel.MonoImage) {
	if p.Glyphs == nil {
		p.Glyphs = make(map[rune]*Glyph)
	}
	p.Glyphs[r] = &Glyph{MonoImage: bitmap}
}

// Glyph returns the glyph for r, or the Fallback glyph if r is not in the package.
func (p *Package) Glyph(r rune) (*Glyph, error) {
	if g, ok := p.Glyphs[r]; ok {
		return g, nil
	}
	if g, ok := p.Glyphs[Fallback]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w: no glyph for %q and no %q fallback", ErrIncomplete, r, Fallback)
}

// Validate checks that the package can render any character.
func (p *Package) Validate() error {
	if p.Size.X <= 0 || p.Size.Y <= 0 {
		return fmt.Errorf("font: invalid cell size %s", p.Size)
	}
	if _, ok := p.Glyphs[Fallback]; !ok {
		return fmt.Errorf("%w: missing %q", ErrIncomplete, Fallback)
	}
	return nil
}
