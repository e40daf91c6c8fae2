package bitmap

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/BeatGlow/monodisplay/pixel"
)

func testRandomImage(w, h int) *pixel.MonoImage {
	i := pixel.NewMonoImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rand.Intn(2) == 1 {
				i.Set(x, y, pixel.On)
			}
		}
	}
	return i
}

func assertImagesIdentical(t *testing.T, a, b image.Image) {
	t.Helper()
	if a.Bounds().Size() != b.Bounds().Size() {
		t.Fatalf("images not of equal size: %s vs %s", a.Bounds(), b.Bounds())
	}
	var (
		ab = a.Bounds()
		bb = b.Bounds()
	)
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			va := pixel.IsOn(a.At(ab.Min.X+x, ab.Min.Y+y))
			vb := pixel.IsOn(b.At(bb.Min.X+x, bb.Min.Y+y))
			if va != vb {
				t.Fatalf("pixel (%d,%d) doesn't match: %t vs %t", x, y, va, vb)
			}
		}
	}
}

func TestPackFixed(t *testing.T) {
	i := pixel.NewMonoImage(2, 8)
	i.Fill(pixel.On)

	f, err := Pack(i, 0, 0, 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(f) != 1 {
		t.Fatalf("expected 1 row, got %d", len(f))
	}
	if !bytes.Equal(f[0], []byte{0xff, 0xff}) {
		t.Errorf("expected row [0xff 0xff], got %#v", f[0])
	}
}

func TestPackBitOrder(t *testing.T) {
	i := pixel.NewMonoImage(3, 10)
	i.Set(0, 0, pixel.On)
	i.Set(1, 3, pixel.On)
	i.Set(2, 7, pixel.On)
	i.Set(2, 9, pixel.On)

	f, err := Pack(i, 0, 0, 3, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := Frame{
		{0x01, 0x08, 0x80},
		{0x00, 0x00, 0x02},
	}
	if len(f) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(f))
	}
	for j := range want {
		if !bytes.Equal(f[j], want[j]) {
			t.Errorf("row %d: expected %#v, got %#v", j, want[j], f[j])
		}
	}
}

func TestPackRegion(t *testing.T) {
	i := pixel.NewMonoImage(16, 16)
	i.Set(5, 9, pixel.On)
	i.Set(4, 8, pixel.On) // outside the region

	f, err := Pack(i, 5, 8, 3, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(f[0], []byte{0x02, 0x00, 0x00}) {
		t.Errorf("expected row [0x02 0 0], got %#v", f[0])
	}
}

func TestPackOffsetBounds(t *testing.T) {
	i := image.NewGray(image.Rect(10, 20, 14, 28))
	i.SetGray(10, 20, color.Gray{Y: 1})
	i.SetGray(13, 27, color.Gray{Y: 0xff})

	f, err := Pack(i, 0, 0, 4, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(f[0], []byte{0x01, 0x00, 0x00, 0x80}) {
		t.Errorf("expected row [0x01 0 0 0x80], got %#v", f[0])
	}
}

func TestPackRowCount(t *testing.T) {
	for height := 1; height <= 33; height++ {
		t.Run(fmt.Sprintf("height %d", height), func(it *testing.T) {
			i := testRandomImage(5, height)
			f, err := Pack(i, 0, 0, 5, height)
			if err != nil {
				it.Fatal(err)
			}
			if want := (height + 7) / 8; len(f) != want {
				it.Errorf("expected %d rows, got %d", want, len(f))
			}
			for j, row := range f {
				if len(row) != 5 {
					it.Errorf("row %d: expected 5 bytes, got %d", j, len(row))
				}
			}
		})
	}
}

func TestPackPartialRow(t *testing.T) {
	i := pixel.NewMonoImage(2, 3)
	i.Fill(pixel.On)
	f, err := Pack(i, 0, 0, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(f) != 1 || !bytes.Equal(f[0], []byte{0x07, 0x07}) {
		t.Errorf("expected [[0x07 0x07]], got %#v", f)
	}
}

func TestPackRoundTrip(t *testing.T) {
	const testCaseCount = 30

	for n := 0; n < testCaseCount; n++ {
		var (
			w = 1 + rand.Intn(130)
			h = 8 * (1 + rand.Intn(8))
			i = testRandomImage(w, h)
		)
		t.Run(fmt.Sprintf("test %d: %dx%d", n, w, h), func(it *testing.T) {
			f, err := Pack(i, 0, 0, w, h)
			if err != nil {
				it.Fatal(err)
			}
			if v := f.Size(); v != image.Pt(w, h) {
				it.Errorf("expected frame size %dx%d, got %s", w, h, v)
			}
			assertImagesIdentical(it, i, Unpack(f, w, h))
		})
	}
}

func TestPackErrors(t *testing.T) {
	i := pixel.NewMonoImage(8, 8)
	tests := []struct {
		x, y, w, h int
		want       error
	}{
		{0, 0, 0, 8, ErrRegion},
		{0, 0, 8, 0, ErrRegion},
		{-1, 0, 4, 4, ErrRegion},
		{0, -1, 4, 4, ErrRegion},
		{0, 0, 9, 8, ErrBounds},
		{4, 4, 5, 4, ErrBounds},
		{0, 1, 8, 8, ErrBounds},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d,%d %dx%d", test.x, test.y, test.w, test.h), func(it *testing.T) {
			f, err := Pack(i, test.x, test.y, test.w, test.h)
			if !errors.Is(err, test.want) {
				it.Errorf("expected error %v, got %v", test.want, err)
			}
			if f != nil {
				it.Errorf("expected no frame, got %d rows", len(f))
			}
		})
	}
}

func TestFrameBytes(t *testing.T) {
	f := Frame{{1, 2}, {3, 4}}
	if v := f.Bytes(); !bytes.Equal(v, []byte{1, 2, 3, 4}) {
		t.Errorf("expected [1 2 3 4], got %v", v)
	}
	if v := (Frame{}).Size(); v != (image.Point{}) {
		t.Errorf("expected empty size, got %s", v)
	}
}

func TestDump(t *testing.T) {
	f := Frame{{0x01, 0x82}}
	want := "* \n" +
		" *\n" +
		"  \n" +
		"  \n" +
		"  \n" +
		"  \n" +
		"  \n" +
		" *\n"

	var b bytes.Buffer
	if err := Dump(&b, f); err != nil {
		t.Fatal(err)
	}
	if v := b.String(); v != want {
		t.Errorf("expected dump:\n%s\ngot:\n%s", want, v)
	}
	if v := f.String(); v != want {
		t.Errorf("expected String:\n%s\ngot:\n%s", want, v)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestDumpError(t *testing.T) {
	if err := Dump(failWriter{}, Frame{{0}}); err == nil {
		t.Error("expected write error")
	}
}
