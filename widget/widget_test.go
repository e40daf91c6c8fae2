package widget

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/BeatGlow/monodisplay/pixel"
	"github.com/BeatGlow/monodisplay/text"
)

func testCountOn(i image.Image) (n int) {
	b := i.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if pixel.IsOn(i.At(x, y)) {
				n++
			}
		}
	}
	return
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	i := image.NewGray(image.Rect(0, 0, 4, 3))
	i.SetGray(0, 0, color.Gray{Y: 0xff})
	i.SetGray(3, 2, color.Gray{Y: 0xff})
	i.SetGray(1, 1, color.Gray{Y: 0xff})

	var b bytes.Buffer
	if err := png.Encode(&b, i); err != nil {
		t.Fatal(err)
	}
	return b.Bytes()
}

func testWidget(t *testing.T) *Mono {
	return NewMono(&Config{
		Images: fstest.MapFS{
			"logo.png":    {Data: testPNG(t)},
			"garbage.png": {Data: []byte("not an image")},
		},
	})
}

func TestRectImage(t *testing.T) {
	if v := (Rect{4, 3, 1, 1}).Image(); v != image.Rect(1, 1, 5, 4) {
		t.Errorf("expected %s, got %s", image.Rect(1, 1, 5, 4), v)
	}
	if v := (Point{2, 3}).Image(); v != image.Pt(2, 3) {
		t.Errorf("expected (2,3), got %s", v)
	}
	if v := (Size{4, 5}).Image(); v != image.Pt(4, 5) {
		t.Errorf("expected (4,5), got %s", v)
	}
}

func TestRangeFraction(t *testing.T) {
	r := Range{Min: 10, Max: 20}
	for v, want := range map[float64]float64{0: 0, 10: 0, 15: .5, 20: 1, 30: 1} {
		if f, err := r.Fraction(v); err != nil || f != want {
			t.Errorf("expected %g to be at %g, got %g (%v)", v, want, f, err)
		}
	}
	if _, err := (Range{Min: 1, Max: 1}).Fraction(1); !errors.Is(err, ErrRange) {
		t.Errorf("expected %v, got %v", ErrRange, err)
	}
}

func TestText(t *testing.T) {
	w := testWidget(t)

	t.Run("new", func(it *testing.T) {
		i, err := w.Text("Hi", TextOptions{})
		if err != nil {
			it.Fatal(err)
		}
		if v := i.Bounds().Size(); v != image.Pt(15, 13) {
			it.Errorf("expected size 15x13, got %s", v)
		}
		if testCountOn(i) == 0 {
			it.Error("expected text to be drawn")
		}
	})

	t.Run("dst", func(it *testing.T) {
		dst := pixel.NewMonoVerticalLSBImage(64, 32)
		i, err := w.Text("Hi", TextOptions{
			At:      Point{X: 10, Y: 16},
			Bounds:  Size{W: 40},
			Dst:     dst,
			Justify: text.Right,
		})
		if err != nil {
			it.Fatal(err)
		}
		if i != dst {
			it.Fatal("expected text to be drawn into dst")
		}
		var (
			left  = pixel.NewMonoImage(35, 32)
			right = pixel.NewMonoImage(64, 32)
		)
		for y := 0; y < 32; y++ {
			for x := 0; x < 64; x++ {
				if x < 35 {
					left.Set(x, y, dst.At(x, y))
				} else {
					right.Set(x, y, dst.At(x, y))
				}
			}
		}
		if testCountOn(left) != 0 {
			it.Error("expected no pixels left of the right justified text")
		}
		if testCountOn(right) == 0 {
			it.Error("expected right justified text")
		}
	})
}

func TestImage(t *testing.T) {
	w := testWidget(t)

	t.Run("new", func(it *testing.T) {
		i, err := w.Image("logo.png", Point{}, Size{}, nil)
		if err != nil {
			it.Fatal(err)
		}
		if v := i.Bounds().Size(); v != image.Pt(4, 3) {
			it.Fatalf("expected size 4x3, got %s", v)
		}
		if v := testCountOn(i); v != 3 {
			it.Errorf("expected 3 pixels on, got %d", v)
		}
		for _, p := range []image.Point{{0, 0}, {1, 1}, {3, 2}} {
			if !pixel.IsOn(i.At(p.X, p.Y)) {
				it.Errorf("expected pixel %s to be on", p)
			}
		}
	})

	t.Run("bounds", func(it *testing.T) {
		i, err := w.Image("logo.png", Point{X: 1, Y: 1}, Size{W: 2, H: 2}, nil)
		if err != nil {
			it.Fatal(err)
		}
		if v := i.Bounds().Size(); v != image.Pt(3, 3) {
			it.Fatalf("expected size 3x3, got %s", v)
		}
		if v := testCountOn(i); v != 2 {
			it.Errorf("expected 2 pixels on, got %d", v)
		}
	})

	t.Run("errors", func(it *testing.T) {
		for _, name := range []string{"../logo.png", "/logo.png", "missing.png", "garbage.png"} {
			if _, err := w.Image(name, Point{}, Size{}, nil); err == nil {
				it.Errorf("expected error loading %q", name)
			}
		}
	})
}

func TestProgressBar(t *testing.T) {
	w := testWidget(t)

	t.Run("square", func(it *testing.T) {
		i, err := w.ProgressBar(50, Range{Max: 100}, Size{W: 22, H: 5}, Square, Point{}, nil)
		if err != nil {
			it.Fatal(err)
		}
		if v := i.Bounds().Size(); v != image.Pt(22, 5) {
			it.Fatalf("expected size 22x5, got %s", v)
		}
		// outline 2*22 + 2*3, fill 10x3
		if v := testCountOn(i); v != 50+30 {
			it.Errorf("expected 80 pixels on, got %d", v)
		}
		if !pixel.IsOn(i.At(10, 2)) || pixel.IsOn(i.At(11, 2)) {
			it.Error("expected fill to end at x=10")
		}
	})

	t.Run("clamped", func(it *testing.T) {
		i, err := w.ProgressBar(200, Range{Max: 100}, Size{W: 22, H: 5}, Square, Point{}, nil)
		if err != nil {
			it.Fatal(err)
		}
		if v := testCountOn(i); v != 22*5 {
			it.Errorf("expected full bar, got %d pixels", v)
		}
	})

	t.Run("rounded", func(it *testing.T) {
		dst := pixel.NewMonoImage(40, 12)
		dst.Fill(pixel.On)
		i, err := w.ProgressBar(0, Range{Max: 1}, Size{W: 30, H: 10}, Rounded, Point{X: 2, Y: 1}, dst)
		if err != nil {
			it.Fatal(err)
		}
		if pixel.IsOn(i.At(10, 5)) {
			it.Error("expected empty bar to be cleared inside")
		}
		if !pixel.IsOn(i.At(10, 1)) || !pixel.IsOn(i.At(2, 6)) {
			it.Error("expected outline to be drawn")
		}
	})

	t.Run("errors", func(it *testing.T) {
		if _, err := w.ProgressBar(1, Range{}, Size{W: 10, H: 10}, Square, Point{}, nil); !errors.Is(err, ErrRange) {
			it.Errorf("expected %v, got %v", ErrRange, err)
		}
		if _, err := w.ProgressBar(1, Range{Max: 2}, Size{W: 2, H: 10}, Square, Point{}, nil); !errors.Is(err, ErrRange) {
			it.Errorf("expected %v, got %v", ErrRange, err)
		}
		if _, err := w.ProgressBar(1, Range{Max: 2}, Size{W: 10, H: 10}, BarStyle(9), Point{}, nil); !errors.Is(err, ErrStyle) {
			it.Errorf("expected %v, got %v", ErrStyle, err)
		}
	})
}

func TestLine(t *testing.T) {
	w := testWidget(t)

	i, err := w.Line(Rect{0, 0, 9, 0}, Point{X: 2, Y: 3}, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v := i.Bounds().Size(); v != image.Pt(12, 4) {
		t.Errorf("expected size 12x4, got %s", v)
	}
	if v := testCountOn(i); v != 10 {
		t.Errorf("expected 10 pixels on, got %d", v)
	}
	if !pixel.IsOn(i.At(2, 3)) || !pixel.IsOn(i.At(11, 3)) {
		t.Error("expected end points to be drawn")
	}

	if i, err = w.Line(Rect{0, 2, 9, 2}, Point{}, 3, nil); err != nil {
		t.Fatal(err)
	}
	if v := testCountOn(i); v != 30 {
		t.Errorf("expected 30 pixels on, got %d", v)
	}

	if _, err = w.Line(Rect{}, Point{}, 0, nil); !errors.Is(err, ErrRange) {
		t.Errorf("expected %v, got %v", ErrRange, err)
	}
}

func TestRectangle(t *testing.T) {
	w := NewMono(&Config{
		Images: fstest.MapFS{},
		NewImage: func(width, height int) pixel.Image {
			return pixel.NewMonoVerticalLSBImage(width, height)
		},
	})

	i, err := w.Rectangle(Rect{1, 1, 4, 3}, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := i.(*pixel.MonoVerticalLSBImage); !ok {
		t.Errorf("expected configured image type, got %T", i)
	}
	if v := i.Bounds().Size(); v != image.Pt(5, 4) {
		t.Errorf("expected size 5x4, got %s", v)
	}
	if v := testCountOn(i); v != 10 {
		t.Errorf("expected 10 pixels on, got %d", v)
	}

	if _, err = w.Rectangle(Rect{}, -1, nil); !errors.Is(err, ErrRange) {
		t.Errorf("expected %v, got %v", ErrRange, err)
	}
}
