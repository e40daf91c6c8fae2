package widget

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io/fs"
	"os"

	"github.com/makeworld-the-better-one/dither/v2"
	_ "golang.org/x/image/bmp" // register BMP decoding
	xdraw "golang.org/x/image/draw"

	mdraw "github.com/BeatGlow/monodisplay/draw"
	"github.com/BeatGlow/monodisplay/font"
	"github.com/BeatGlow/monodisplay/pixel"
	"github.com/BeatGlow/monodisplay/text"
)

// Config is the Mono widget configuration.
type Config struct {
	// Images is the file system images are loaded from. If nil, ImageDir is used.
	Images fs.FS

	// ImageDir is the directory images are loaded from.
	ImageDir string

	// Font is the default font, nil uses [font.Basic].
	Font *font.Package

	// NewImage creates destination images, nil creates [pixel.MonoImage]s.
	NewImage func(w, h int) pixel.Image
}

// Mono implements Widget for 1-bit displays.
type Mono struct {
	images   fs.FS
	font     *font.Package
	newImage func(w, h int) pixel.Image
}

// NewMono returns a Widget drawing 1-bit pixels.
func NewMono(config *Config) *Mono {
	if config == nil {
		config = new(Config)
	}

	w := &Mono{
		images:   config.Images,
		font:     config.Font,
		newImage: config.NewImage,
	}
	if w.images == nil {
		dir := config.ImageDir
		if dir == "" {
			dir = "."
		}
		w.images = os.DirFS(dir)
	}
	if w.font == nil {
		w.font = font.Basic()
	}
	if w.newImage == nil {
		w.newImage = func(width, height int) pixel.Image {
			return pixel.NewMonoImage(width, height)
		}
	}
	return w
}

func (w *Mono) dst(dst draw.Image, size image.Point) draw.Image {
	if dst != nil {
		return dst
	}
	return w.newImage(max(size.X, 0), max(size.Y, 0))
}

func (w *Mono) Text(msg string, opt TextOptions) (draw.Image, error) {
	pkg := opt.Font
	if pkg == nil {
		pkg = w.font
	}

	size, err := text.Size(msg, pkg, opt.Variable)
	if err != nil {
		return nil, err
	}
	if opt.Bounds.W > 0 {
		size.X = opt.Bounds.W
	}
	if opt.Bounds.H > 0 {
		size.Y = opt.Bounds.H
	}

	dst := w.dst(opt.Dst, opt.At.Image().Add(size))
	if err = text.Render(dst, msg, opt.At.Image(), pkg, text.Options{
		Variable: opt.Variable,
		Justify:  opt.Justify,
		VJustify: opt.VJustify,
		Bounds:   size,
	}); err != nil {
		return nil, err
	}
	return dst, nil
}

func (w *Mono) Image(name string, at Point, bounds Size, dst draw.Image) (draw.Image, error) {
	src, err := w.loadImage(name)
	if err != nil {
		return nil, err
	}

	r := src.Bounds()
	if bounds.W > 0 && bounds.W < r.Dx() {
		r.Max.X = r.Min.X + bounds.W
	}
	if bounds.H > 0 && bounds.H < r.Dy() {
		r.Max.Y = r.Min.Y + bounds.H
	}

	dst = w.dst(dst, at.Image().Add(r.Size()))
	xdraw.Copy(dst, at.Image(), src, r, xdraw.Src, nil)
	return dst, nil
}

// loadImage decodes the named image and dithers it to black and white.
func (w *Mono) loadImage(name string) (image.Image, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("widget: invalid image name %q", name)
	}

	f, err := w.images.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("widget: decode %s: %w", name, err)
	}

	d := dither.NewDitherer([]color.Color{color.Black, color.White})
	d.Matrix = dither.FloydSteinberg
	d.Serpentine = true
	return d.DitherPaletted(src), nil
}

func (w *Mono) ProgressBar(value float64, span Range, size Size, style BarStyle, at Point, dst draw.Image) (draw.Image, error) {
	fraction, err := span.Fraction(value)
	if err != nil {
		return nil, err
	}
	if size.W < 3 || size.H < 3 {
		return nil, fmt.Errorf("%w: progress bar size %dx%d", ErrRange, size.W, size.H)
	}

	var (
		outline = image.Rectangle{Min: at.Image(), Max: at.Image().Add(size.Image())}
		inner   = outline.Inset(1)
		fill    = inner
	)
	fill.Max.X = fill.Min.X + int(fraction*float64(inner.Dx())+0.5)

	dst = w.dst(dst, outline.Max)
	switch style {
	case Square:
		mdraw.Rectangle(dst, outline, pixel.On)
		mdraw.Box(dst, inner, pixel.Off)
		mdraw.Box(dst, fill, pixel.On)
	case Rounded:
		radius := min(size.W, size.H) / 4
		mdraw.Box(dst, inner, pixel.Off)
		mdraw.RoundedRectangle(dst, outline, radius, pixel.On)
		if r := max(radius-1, 0); fill.Dx() > 2*r && fill.Dy() > 2*r {
			mdraw.RoundedBox(dst, fill, r, pixel.On)
		} else {
			mdraw.Box(dst, fill, pixel.On)
		}
	default:
		return nil, fmt.Errorf("%w %s", ErrStyle, style)
	}
	return dst, nil
}

func (w *Mono) Line(r Rect, at Point, width int, dst draw.Image) (draw.Image, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: line width %d", ErrRange, width)
	}

	var (
		offset = at.Image()
		a      = image.Pt(r.X0, r.Y0).Add(offset)
		b      = image.Pt(r.X1, r.Y1).Add(offset)
	)
	// Leave room for strokes offset across the line.
	dst = w.dst(dst, r.Image().Add(offset).Max.Add(image.Pt(width/2, width/2)))
	mdraw.ThickLine(dst, a, b, width, pixel.On)
	return dst, nil
}

func (w *Mono) Rectangle(r Rect, width int, dst draw.Image) (draw.Image, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: line width %d", ErrRange, width)
	}

	rect := r.Image()
	dst = w.dst(dst, rect.Max)
	mdraw.ThickRectangle(dst, rect, width, pixel.On)
	return dst, nil
}

var _ Widget = (*Mono)(nil)
