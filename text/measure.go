// Package text lays out and renders multi-line strings with bitmap fonts.
//
// Glyphs are separated by a one pixel gap. Line widths exclude the gap after the
// last glyph of a line.
package text

import (
	"image"

	"github.com/BeatGlow/monodisplay/font"
)

// Measure returns the pixel width of every line of msg.
//
// In fixed width mode every character takes the cell width of pkg; otherwise each
// glyph takes its own width, using the fallback glyph for missing characters. An
// empty line measures 0. The final line is always reported as its accumulated width
// minus the trailing gap, so an empty msg, or one ending in a newline, yields -1 for
// its last entry.
func Measure(msg string, pkg *font.Package, variable bool) ([]int, error) {
	var (
		widths []int
		line   int // pixels used on the current line
	)
	for _, c := range msg {
		if c == '\n' {
			if line == 0 {
				widths = append(widths, 0)
			} else {
				widths = append(widths, line-1)
			}
			line = 0
			continue
		}

		if !variable {
			line += pkg.Size.X + 1
			continue
		}
		g, err := pkg.Glyph(c)
		if err != nil {
			return nil, err
		}
		line += g.Width() + 1
	}
	return append(widths, line-1), nil
}

// Size returns the bounding box of msg rendered with pkg: the widest line by the
// number of lines times the cell height.
func Size(msg string, pkg *font.Package, variable bool) (image.Point, error) {
	widths, err := Measure(msg, pkg, variable)
	if err != nil {
		return image.Point{}, err
	}
	return extent(widths, pkg.Size.Y), nil
}

func extent(widths []int, lineHeight int) (size image.Point) {
	for _, w := range widths {
		size.X = max(size.X, w)
	}
	size.Y = len(widths) * lineHeight
	return
}
