package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/font/gofont/gomono"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3"

	display "github.com/BeatGlow/monodisplay"
	"github.com/BeatGlow/monodisplay/bitmap"
	"github.com/BeatGlow/monodisplay/draw"
	"github.com/BeatGlow/monodisplay/font"
	"github.com/BeatGlow/monodisplay/pixel"
	"github.com/BeatGlow/monodisplay/text"
	"github.com/BeatGlow/monodisplay/widget"
)

func main() {
	widthFlag := flag.Int("width", 0, "Display width")
	heightFlag := flag.Int("height", 0, "Display height")
	contrastFlag := flag.Uint("contrast", 0, "Display contrast (default: driver default)")
	resetFlag := flag.Bool("reset", false, "Pulse the reset pin before initialization")
	i2cDeviceFlag := flag.Int("i2c-dev", display.DefaultI2CConfig.Device, "I²C device number (default: use first available)")
	i2cAddrFlag := flag.Uint("i2c-addr", uint(display.DefaultI2CConfig.Addr), "I²C device address")
	spiBusFlag := flag.Int("spi-bus", 0, "SPI bus")
	spiDeviceFlag := flag.Int("spi-dev", 0, "SPI device")
	spiSpeedFlag := flag.Uint("spi-speed", uint(display.DefaultSPIConfig.SpeedHz), "SPI speed in Hz")
	resetPinFlag := flag.String("reset-pin", display.DefaultSPIResetPin, "Reset GPIO pin")
	dcPinFlag := flag.String("dc", display.DefaultSPIDCPin, "Data/Command GPIO pin (DC)")
	cePinFlag := flag.String("ce", "", "Chip enable GPIO pin")
	textFlag := flag.String("text", "Hello, World!", "Marquee text")
	fontFlag := flag.String("font", "basic", "Font: basic or a point size for Go Mono")
	variableFlag := flag.Bool("variable", false, "Use variable glyph widths")
	directionFlag := flag.String("direction", "left", "Scroll direction")
	intervalFlag := flag.Duration("interval", 50*time.Millisecond, "Scroll interval")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bus> <driver>\n", os.Args[0])
		os.Exit(1)
	}

	direction, err := bitmap.ParseDirection(*directionFlag)
	if err != nil {
		fatal(err)
	}

	pkg, err := loadFont(*fontFlag)
	if err != nil {
		fatal(err)
	}

	if _, err = host.Init(); err != nil {
		fatal(err)
	}

	var (
		config = &display.Config{
			Width:    *widthFlag,
			Height:   *heightFlag,
			Contrast: uint8(*contrastFlag),
			Reset:    *resetFlag,
		}
		conn   display.Conn
		output display.Display
	)
	switch busType := flag.Arg(0); busType {
	case "i2c":
		i2c := &display.I2CConfig{
			Device: *i2cDeviceFlag,
			Addr:   uint8(*i2cAddrFlag),
		}
		if *resetFlag {
			i2c.Reset = gpioreg.ByName(*resetPinFlag)
		}
		conn, err = display.OpenI2C(i2c)
	case "spi":
		spiConfig := &display.SPIConfig{
			Bus:     *spiBusFlag,
			Device:  *spiDeviceFlag,
			Mode:    spi.Mode0,
			SpeedHz: uint32(*spiSpeedFlag),
			Reset:   gpioreg.ByName(*resetPinFlag),
			DC:      gpioreg.ByName(*dcPinFlag),
		}
		if *cePinFlag != "" {
			spiConfig.CE = gpioreg.ByName(*cePinFlag)
		}
		conn, err = display.OpenSPI(spiConfig)
	default:
		err = fmt.Errorf("unsupported bus type %q", busType)
	}
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using connection: %s\n", conn)

	switch driver := strings.ToLower(flag.Arg(1)); driver {
	case "sh1106":
		output, err = display.SH1106(conn, config)
	case "ssd1305":
		output, err = display.SSD1305(conn, config)
	case "ssd1306":
		output, err = display.SSD1306(conn, config)
	default:
		err = fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		_ = conn.Close()
		fatal(err)
	}
	defer func() { _ = output.Close() }()
	fmt.Printf("using driver: %s\n", output)

	var (
		r      = output.Bounds()
		w      = widget.NewMono(&widget.Config{Font: pkg})
		lineH  = min(pkg.Size.Y, r.Dy()-2)
		banner = pixel.NewMonoImage(r.Dx()-2, lineH)
	)

	// The marquee strip is scrolled in place and copied inside the border on every tick.
	if _, err = w.Text(*textFlag, widget.TextOptions{
		Bounds:   widget.Size{W: banner.Bounds().Dx(), H: lineH},
		Dst:      banner,
		Variable: *variableFlag,
		Justify:  text.Center,
		VJustify: text.Middle,
	}); err != nil {
		fatal(err)
	}

	if _, err = w.Rectangle(widget.Rect{X1: r.Dx() - 1, Y1: r.Dy() - 1}, 1, output); err != nil {
		fatal(err)
	}

	var (
		ticker  = time.NewTicker(*intervalFlag)
		signals = make(chan os.Signal, 1)
		bar     = r.Dy() - 2 - lineH
		step    int
		steps   = banner.Bounds().Dx()
	)
	defer ticker.Stop()
	signal.Notify(signals, os.Interrupt)

	fmt.Println("hit control-c to stop...")
	for {
		draw.Draw(output, image.Rect(1, 1, r.Max.X-1, 1+lineH), banner, image.Point{}, draw.Src)
		if bar >= 3 {
			if _, err = w.ProgressBar(float64(step), widget.Range{Max: float64(steps)},
				widget.Size{W: r.Dx() - 2, H: bar}, widget.Rounded,
				widget.Point{X: 1, Y: 1 + lineH}, output); err != nil {
				fatal(err)
			}
		}
		if err = output.Refresh(); err != nil {
			fatal(err)
		}

		if err = bitmap.Scroll(banner, direction, 1); err != nil {
			fatal(err)
		}
		step = (step + 1) % (steps + 1)

		select {
		case <-ticker.C:
		case <-signals:
			output.Clear()
			if err = output.Refresh(); err != nil {
				fatal(err)
			}
			return
		}
	}
}

// loadFont returns the built-in bitmap font, or Go Mono rendered at the given point size.
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

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
