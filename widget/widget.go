// Package widget defines the drawing capabilities of a display surface: text,
// images, progress bars, lines and rectangles.
//
// Every operation draws into a destination image and returns it. When no
// destination is passed, a new one just large enough to hold the result is created.
package widget

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/BeatGlow/monodisplay/font"
	"github.com/BeatGlow/monodisplay/text"
)

// Errors
var (
	ErrRange = errors.New("widget: value out of range")
	ErrStyle = errors.New("widget: unsupported style")
)

// Point is a pixel coordinate.
type Point struct {
	X, Y int
}

// Image returns p as an [image.Point].
func (p Point) Image() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

// Size is a width and height in pixels. Zero means unrestricted.
type Size struct {
	W, H int
}

// Image returns s as an [image.Point].
func (s Size) Image() image.Point {
	return image.Point{X: s.W, Y: s.H}
}

// Rect holds two corner points, both inclusive.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Image returns the smallest [image.Rectangle] containing both corners.
func (r Rect) Image() image.Rectangle {
	rect := image.Rect(r.X0, r.Y0, r.X1, r.Y1)
	rect.Max = rect.Max.Add(image.Pt(1, 1))
	return rect
}

// Range of values.
type Range struct {
	Min, Max float64
}

// Fraction returns the position of v within the range, clamped to [0, 1].
func (r Range) Fraction(v float64) (float64, error) {
	if !(r.Max > r.Min) {
		return 0, fmt.Errorf("%w: empty range %g..%g", ErrRange, r.Min, r.Max)
	}
	f := (v - r.Min) / (r.Max - r.Min)
	return min(max(f, 0), 1), nil
}

// BarStyle is the progress bar outline style.
type BarStyle uint8

// Supported progress bar styles.
const (
	Square BarStyle = iota
	Rounded
)

func (s BarStyle) String() string {
	switch s {
	case Square:
		return "square"
	case Rounded:
		return "rounded"
	default:
		return fmt.Sprintf("BarStyle(%d)", uint8(s))
	}
}

// TextOptions are the parameters of Widget.Text.
type TextOptions struct {
	// At is the position of the text box within Dst.
	At Point

	// Bounds of the text box; zero components use the size of the text.
	Bounds Size

	// Dst is the image to draw into, nil creates one.
	Dst draw.Image

	// Font to render with, nil uses the widget default.
	Font *font.Package

	// Variable selects proportional glyph widths.
	Variable bool

	// Justify and VJustify align the text within Bounds.
	Justify  text.Justify
	VJustify text.VJustify
}

// Widget is the set of drawing primitives of a display technology.
type Widget interface {
	// Text renders msg.
	Text(msg string, opt TextOptions) (draw.Image, error)

	// Image loads the named image and places it at the given position, clipped to bounds.
	Image(name string, at Point, bounds Size, dst draw.Image) (draw.Image, error)

	// ProgressBar draws a bar of the given size, filled to the position of value in span.
	ProgressBar(value float64, span Range, size Size, style BarStyle, at Point, dst draw.Image) (draw.Image, error)

	// Line draws a line width pixels wide between the corners of r, offset by at.
	Line(r Rect, at Point, width int, dst draw.Image) (draw.Image, error)

	// Rectangle draws the outline of r with lines width pixels wide.
	Rectangle(r Rect, width int, dst draw.Image) (draw.Image, error)
}
