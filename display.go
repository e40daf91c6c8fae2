// Package display contains drivers for page addressed monochrome displays.
//
// The drivers keep a row-major 1-bit raster. On Refresh the raster is packed into
// a page frame with [bitmap.Pack] and sent to the controller one page at a time.
package display

import (
	"errors"
	"fmt"
	"image/draw"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/monodisplay/bitmap"
	"github.com/BeatGlow/monodisplay/pixel"
)

// Errors
var (
	ErrBounds = errors.New("display: out of display bounds")
)

// Display is an OLED display.
type Display interface {
	draw.Image

	// Close the display driver.
	Close() error

	// Clear the display buffer.
	Clear()

	// Show toggles the display on or off.
	Show(bool) error

	// SetContrast adjusts the contrast level.
	SetContrast(level uint8) error

	// Invert toggles inverted output on the panel, the buffer is left as is.
	Invert(bool) error

	// Refresh redraws the display.
	Refresh() error

	// Frame returns the packed page frame of the display buffer.
	Frame() (bitmap.Frame, error)
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels, zero uses the driver default.
	Width int

	// Height of the display in pixels, zero uses the driver default.
	Height int

	// Contrast level, zero uses the driver default.
	Contrast uint8

	// Reset pulses the reset line of the connection before initialization.
	Reset bool
}

// resetPulse is how long the reset line is held low.
const resetPulse = 10 * time.Millisecond

// monoDisplay is the shared part of the page addressed drivers.
type monoDisplay struct {
	*pixel.MonoImage
	c      Conn
	name   string
	halted bool

	// page selects the controller page the next data bytes are written to.
	page func(page int) error
}

func (d *monoDisplay) init(config *Config) error {
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("%w: %s size %dx%d", ErrBounds, d.name, config.Width, config.Height)
	}
	d.MonoImage = pixel.NewMonoImage(config.Width, config.Height)

	if config.Reset {
		if err := d.reset(); err != nil {
			return err
		}
	}

	Logger().Info("display: init", "driver", d.name, "width", config.Width, "height", config.Height, "conn", d.c.String())
	return nil
}

func (d *monoDisplay) reset() (err error) {
	if err = d.c.Reset(gpio.Low); err != nil {
		return
	}
	time.Sleep(resetPulse)
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	time.Sleep(resetPulse)
	return
}

func (d *monoDisplay) command(command byte, data ...byte) error {
	return d.c.Command(command, data...)
}

func (d *monoDisplay) data(data ...byte) error {
	return d.c.Data(data...)
}

func (d *monoDisplay) String() string {
	b := d.Bounds()
	return fmt.Sprintf("%s OLED %dx%d", d.name, b.Dx(), b.Dy())
}

func (d *monoDisplay) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	return d.c.Close()
}

func (d *monoDisplay) Show(show bool) error {
	if show {
		return d.command(ssd1xxxSetDisplayOn)
	}
	return d.command(ssd1xxxSetDisplayOff)
}

func (d *monoDisplay) SetContrast(level uint8) error {
	return d.command(ssd1xxxSetContrast, level)
}

func (d *monoDisplay) Invert(invert bool) error {
	if invert {
		return d.command(ssd1xxxSetInvertDisplay)
	}
	return d.command(ssd1xxxSetNormalDisplay)
}

func (d *monoDisplay) Frame() (bitmap.Frame, error) {
	b := d.Bounds()
	return bitmap.Pack(d.MonoImage, b.Min.X, b.Min.Y, b.Dx(), b.Dy())
}

func (d *monoDisplay) Refresh() error {
	frame, err := d.Frame()
	if err != nil {
		return err
	}
	for page, row := range frame {
		if err = d.page(page); err != nil {
			return err
		}
		if err = d.data(row...); err != nil {
			return err
		}
	}
	Logger().Debug("display: refresh", "driver", d.name, "pages", len(frame))
	return nil
}
