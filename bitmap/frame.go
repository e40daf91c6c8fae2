package bitmap

import (
	"image"
	"io"
	"strings"

	"github.com/BeatGlow/monodisplay/pixel"
)

// Row is one page of a Frame: one byte per pixel column, 8 pixel rows per byte.
type Row []byte

// Frame is a packed 1-bit raster, ordered top to bottom.
type Frame []Row

// Size returns the width and height of the frame in pixels. The height is
// always a multiple of 8.
func (f Frame) Size() image.Point {
	if len(f) == 0 {
		return image.Point{}
	}
	return image.Pt(len(f[0]), len(f)*8)
}

// Bytes returns all pages of the frame concatenated.
func (f Frame) Bytes() []byte {
	var out []byte
	for _, row := range f {
		out = append(out, row...)
	}
	return out
}

// String renders the frame as text, see Dump.
func (f Frame) String() string {
	var s strings.Builder
	_ = Dump(&s, f)
	return s.String()
}

// Pack converts the region of src at (x, y) with the given width and height,
// relative to the origin of src, into a Frame.
//
// Any non-zero pixel is packed as a set bit. The result has ceil(height/8) rows of
// width bytes; when height is not a multiple of 8 the excess bits of the last row
// are left unset.
func Pack(src image.Image, x, y, width, height int) (Frame, error) {
	r, err := region(src.Bounds(), x, y, width, height)
	if err != nil {
		return nil, err
	}

	var (
		frame = make(Frame, 0, (height+7)/8)
		line  = make(Row, width)
		bit   uint
	)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			if pixel.IsOn(src.At(px, py)) {
				line[px-r.Min.X] |= 1 << bit
			}
		}

		// Seal the page once a full byte has been written.
		if bit++; bit == 8 {
			bit = 0
			frame = append(frame, line)
			line = make(Row, width)
		}
	}
	if bit > 0 {
		frame = append(frame, line)
	}

	return frame, nil
}

// Unpack expands f into a width by height MonoImage. Pixels beyond the frame are off,
// frame data beyond width and height is ignored.
func Unpack(f Frame, width, height int) *pixel.MonoImage {
	i := pixel.NewMonoImage(width, height)
	for page, row := range f {
		for x, v := range row {
			if x >= width {
				break
			}
			for bit := 0; bit < 8; bit++ {
				if y := page*8 + bit; y < height && v&(1<<bit) != 0 {
					i.Set(x, y, pixel.On)
				}
			}
		}
	}
	return i
}

// Dump writes f to w as text, one line per pixel row with a '*' for every set
// pixel and a space otherwise. Each Row produces 8 lines.
func Dump(w io.Writer, f Frame) error {
	for _, row := range f {
		line := make([]byte, len(row)+1)
		line[len(row)] = '\n'
		for bit := 0; bit < 8; bit++ {
			mask := byte(1) << bit
			for x, v := range row {
				if v&mask != 0 {
					line[x] = '*'
				} else {
					line[x] = ' '
				}
			}
			if _, err := w.Write(line); err != nil {
				return err
			}
		}
	}
	return nil
}
