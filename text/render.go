package text

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"

	"github.com/BeatGlow/monodisplay/bitmap"
	"github.com/BeatGlow/monodisplay/font"
)

// Justify is the horizontal alignment of lines.
type Justify uint8

// Horizontal alignments.
const (
	Left Justify = iota
	Right
	Center
)

func (j Justify) String() string {
	switch j {
	case Left:
		return "left"
	case Right:
		return "right"
	case Center:
		return "center"
	default:
		return fmt.Sprintf("Justify(%d)", uint8(j))
	}
}

// VJustify is the vertical alignment of a block of lines.
type VJustify uint8

// Vertical alignments.
const (
	Top VJustify = iota
	Bottom
	Middle
)

func (j VJustify) String() string {
	switch j {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Middle:
		return "center"
	default:
		return fmt.Sprintf("VJustify(%d)", uint8(j))
	}
}

// ParseJustify parses "left", "right" or "center".
func ParseJustify(s string) (Justify, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return Left, nil
	case "right":
		return Right, nil
	case "center", "centre":
		return Center, nil
	default:
		return 0, fmt.Errorf("text: invalid justification %q", s)
	}
}

// ParseVJustify parses "top", "bottom" or "center".
func ParseVJustify(s string) (VJustify, error) {
	switch strings.ToLower(s) {
	case "", "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	case "center", "centre", "middle":
		return Middle, nil
	default:
		return 0, fmt.Errorf("text: invalid vertical justification %q", s)
	}
}

// Options for Render.
type Options struct {
	// Variable selects proportional glyph widths instead of the fixed cell width.
	Variable bool

	// Justify aligns each line horizontally within Bounds.
	Justify Justify

	// VJustify aligns the block of lines vertically within Bounds.
	VJustify VJustify

	// Bounds is the size of the box the text is aligned in. Zero components
	// default to the size of the text.
	Bounds image.Point
}

// Render draws msg onto dst with its box at the absolute position at. Each
// character replaces the pixels of its cell; the gap column after every glyph is
// cleared.
func Render(dst draw.Image, msg string, at image.Point, pkg *font.Package, opt Options) error {
	widths, err := Measure(msg, pkg, opt.Variable)
	if err != nil {
		return err
	}

	var (
		size = extent(widths, pkg.Size.Y)
		box  = opt.Bounds
	)
	if box.X <= 0 {
		box.X = size.X
	}
	if box.Y <= 0 {
		box.Y = size.Y
	}

	y := at.Y
	switch opt.VJustify {
	case Bottom:
		y += box.Y - size.Y
	case Middle:
		y += (box.Y - size.Y) / 2
	}

	for n, line := range strings.Split(msg, "\n") {
		x := at.X
		switch w := max(widths[n], 0); opt.Justify {
		case Right:
			x += box.X - w
		case Center:
			x += (box.X - w) / 2
		}
		if err = renderLine(dst, line, image.Pt(x, y), pkg, opt.Variable); err != nil {
			return err
		}
		y += pkg.Size.Y
	}
	return nil
}

func renderLine(dst draw.Image, line string, at image.Point, pkg *font.Package, variable bool) error {
	var (
		fx, fy = pkg.Size.X, pkg.Size.Y
		cx     = at.X
	)
	for _, c := range line {
		g, err := pkg.Glyph(c)
		if err != nil {
			return err
		}

		width := g.Width()
		if variable {
			draw.Copy(dst, image.Pt(cx, at.Y), g, g.Bounds(), draw.Src, nil)
		} else {
			// Center the glyph in its cell, cropping glyphs wider than the cell.
			bitmap.Clear(dst, image.Rect(cx, at.Y, cx+fx, at.Y+fy))
			var (
				off = (fx - width) / 2
				sr  = image.Rect(-off, 0, fx-off, fy).Intersect(g.Bounds())
			)
			draw.Copy(dst, image.Pt(cx+off+sr.Min.X, at.Y), g, sr, draw.Src, nil)
			width = fx
		}

		bitmap.Clear(dst, image.Rect(cx+width, at.Y, cx+width+1, at.Y+fy))
		cx += width + 1
	}
	return nil
}
