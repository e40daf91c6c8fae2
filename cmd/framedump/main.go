// Command framedump packs an image or a line of text into a page frame and prints it.
//
// Usage:
//
//	framedump [flags] <image file>
//	framedump [flags] -text "Hello"
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/BeatGlow/monodisplay/bitmap"
	"github.com/BeatGlow/monodisplay/font"
	"github.com/BeatGlow/monodisplay/text"
	"github.com/BeatGlow/monodisplay/widget"
)

type options struct {
	text     string
	font     string
	variable bool
	justify  string
	x, y     int
	width    int
	height   int
	scroll   string
	invert   bool
	hex      bool
}

func main() {
	var opt options
	flag.StringVar(&opt.text, "text", "", "Text to render instead of an image")
	flag.StringVar(&opt.font, "font", "basic", "Font: basic or a point size for Go Mono")
	flag.BoolVar(&opt.variable, "variable", false, "Use variable glyph widths")
	flag.StringVar(&opt.justify, "justify", "left", "Text justification: left, right or center")
	flag.IntVar(&opt.x, "x", 0, "Region left")
	flag.IntVar(&opt.y, "y", 0, "Region top")
	flag.IntVar(&opt.width, "width", 0, "Region width (default: to the right edge)")
	flag.IntVar(&opt.height, "height", 0, "Region height (default: to the bottom edge)")
	flag.StringVar(&opt.scroll, "scroll", "", "Roll the image before packing, as direction:distance")
	flag.BoolVar(&opt.invert, "invert", false, "Reverse the bit order of every byte")
	flag.BoolVar(&opt.hex, "hex", false, "Print the packed bytes as hex, one row per line")
	flag.Parse()

	var name string
	if opt.text == "" {
		if flag.NArg() != 1 {
			fmt.Fprintf(os.Stderr, "Usage: %s [flags] <image file>\n", os.Args[0])
			flag.PrintDefaults()
			os.Exit(1)
		}
		name = flag.Arg(0)
	}

	if err := run(os.Stdout, name, opt); err != nil {
		fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
		os.Exit(1)
	}
}

func run(w io.Writer, name string, opt options) error {
	src, err := load(name, opt)
	if err != nil {
		return err
	}

	if opt.scroll != "" {
		if err = scroll(src, opt.scroll); err != nil {
			return err
		}
	}

	b := src.Bounds()
	if opt.width == 0 {
		opt.width = b.Dx() - opt.x
	}
	if opt.height == 0 {
		opt.height = b.Dy() - opt.y
	}

	frame, err := bitmap.Pack(src, opt.x, opt.y, opt.width, opt.height)
	if err != nil {
		return err
	}
	if opt.invert {
		for i, row := range frame {
			frame[i] = bitmap.InvertRow(row)
		}
	}

	if opt.hex {
		for _, row := range frame {
			if _, err = fmt.Fprintln(w, hex.EncodeToString(row)); err != nil {
				return err
			}
		}
		return nil
	}
	return bitmap.Dump(w, frame)
}

// load renders the text option, or loads the named image.
func load(name string, opt options) (draw.Image, error) {
	if opt.text != "" {
		pkg, err := loadFont(opt.font)
		if err != nil {
			return nil, err
		}
		justify, err := text.ParseJustify(opt.justify)
		if err != nil {
			return nil, err
		}
		return widget.NewMono(&widget.Config{Font: pkg}).Text(opt.text, widget.TextOptions{
			Variable: opt.variable,
			Justify:  justify,
		})
	}

	dir, base := filepath.Split(name)
	return widget.NewMono(&widget.Config{ImageDir: dir}).Image(base, widget.Point{}, widget.Size{}, nil)
}

func scroll(dst draw.Image, arg string) error {
	d, n, ok := strings.Cut(arg, ":")
	if !ok {
		n = "1"
	}
	dir, err := bitmap.ParseDirection(d)
	if err != nil {
		return err
	}
	distance, err := strconv.Atoi(n)
	if err != nil {
		return fmt.Errorf("invalid scroll distance %q", n)
	}
	return bitmap.Scroll(dst, dir, distance)
}

func loadFont(name string) (*font.Package, error) {
	if name == "" || name == "basic" {
		return font.Basic(), nil
	}

	size, err := strconv.ParseFloat(name, 64)
	if err != nil || size <= 0 {
		return nil, fmt.Errorf("invalid font %q", name)
	}
	return font.FromTrueType(gomono.TTF, size, "")
}
