// Package bitmap converts 1-bit rasters into the page-packed frames consumed by
// monochrome display controllers, and manipulates raster buffers in place.
//
// A frame is a sequence of byte-rows (pages). Byte i of page p holds the 8
// vertically stacked pixels of column i starting at row p*8, least significant
// bit on top.
package bitmap

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/BeatGlow/monodisplay/pixel"
)

// Errors
var (
	ErrRegion    = errors.New("bitmap: invalid region")
	ErrBounds    = errors.New("bitmap: region out of raster bounds")
	ErrDirection = errors.New("bitmap: unsupported direction")
	ErrDistance  = errors.New("bitmap: scroll distance out of range")
	ErrByteRange = errors.New("bitmap: value out of byte range")
)

// region returns the rectangle at (x, y) with the given size relative to the origin of b.
func region(b image.Rectangle, x, y, width, height int) (image.Rectangle, error) {
	if x < 0 || y < 0 || width <= 0 || height <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: (%d,%d) size %dx%d", ErrRegion, x, y, width, height)
	}
	r := image.Rect(x, y, x+width, y+height).Add(b.Min)
	if !r.In(b) {
		return image.Rectangle{}, fmt.Errorf("%w: %s not in %s", ErrBounds, r, b)
	}
	return r, nil
}

// Crop returns a copy of the pixels of src within r, anchored at the origin.
func Crop(src image.Image, r image.Rectangle) (*image.RGBA64, error) {
	if !r.In(src.Bounds()) {
		return nil, fmt.Errorf("%w: %s not in %s", ErrBounds, r, src.Bounds())
	}
	dst := image.NewRGBA64(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Copy(dst, image.Point{}, src, r, draw.Src, nil)
	return dst, nil
}

// Paste replaces the pixels of dst at offset p (relative to the dst origin) with src.
func Paste(dst draw.Image, src image.Image, p image.Point) {
	p = p.Add(dst.Bounds().Min)
	draw.Copy(dst, p, src, src.Bounds(), draw.Src, nil)
}

// Clear turns off all pixels of dst within r.
func Clear(dst draw.Image, r image.Rectangle) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(pixel.Off), image.Point{}, draw.Src)
}

