package bitmap

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Direction is a scroll direction.
type Direction uint8

// Supported directions.
const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// ParseDirection parses a direction name, ignoring case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrDirection, s)
	}
}

// Scroll rolls the contents of dst by distance pixels in the given direction.
// Pixels that leave one edge reappear at the opposite edge, so repeated calls
// produce a marquee.
//
// The distance must be positive and at most the extent of dst along the scroll
// axis, otherwise ErrDistance is returned and dst is left untouched.
func Scroll(dst draw.Image, dir Direction, distance int) error {
	var (
		b      = dst.Bounds()
		w, h   = b.Dx(), b.Dy()
		extent int
	)
	switch dir {
	case Left, Right:
		extent = w
	case Up, Down:
		extent = h
	default:
		return fmt.Errorf("%w %s", ErrDirection, dir)
	}
	if distance <= 0 || distance > extent {
		return fmt.Errorf("%w: %d not in 1..%d", ErrDistance, distance, extent)
	}

	// Save the strip about to be overwritten, move the body over it and put the strip
	// back in the vacated space. Rectangles are relative to the origin of dst.
	var (
		strip, body     image.Rectangle
		bodyAt, stripAt image.Point
	)
	switch dir {
	case Left:
		strip, body = image.Rect(0, 0, distance, h), image.Rect(distance, 0, w, h)
		bodyAt, stripAt = image.Pt(0, 0), image.Pt(w-distance, 0)
	case Right:
		strip, body = image.Rect(w-distance, 0, w, h), image.Rect(0, 0, w-distance, h)
		bodyAt, stripAt = image.Pt(distance, 0), image.Pt(0, 0)
	case Up:
		strip, body = image.Rect(0, 0, w, distance), image.Rect(0, distance, w, h)
		bodyAt, stripAt = image.Pt(0, 0), image.Pt(0, h-distance)
	case Down:
		strip, body = image.Rect(0, h-distance, w, h), image.Rect(0, 0, w, h-distance)
		bodyAt, stripAt = image.Pt(0, distance), image.Pt(0, 0)
	}

	saved, err := Crop(dst, strip.Add(b.Min))
	if err != nil {
		return err
	}
	if !body.Empty() {
		moved, err := Crop(dst, body.Add(b.Min))
		if err != nil {
			return err
		}
		Paste(dst, moved, bodyAt)
	}
	Paste(dst, saved, stripAt)
	return nil
}
