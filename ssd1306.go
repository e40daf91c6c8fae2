package display

import (
	"fmt"
)

const (
	ssd1306DefaultWidth    = 128
	ssd1306DefaultHeight   = 64
	ssd1306DefaultContrast = 0xCF
)

type ssd1306 struct {
	monoDisplay
	colStart byte
	colEnd   byte
}

// SSD1306 is a driver for the Solomon Systech SSD1306 OLED display.
func SSD1306(conn Conn, config *Config) (Display, error) {
	if config == nil {
		config = new(Config)
	}

	d := &ssd1306{
		monoDisplay: monoDisplay{
			c:    conn,
			name: "SSD1306",
		},
	}
	d.page = d.setPage

	if config.Width == 0 {
		config.Width = ssd1306DefaultWidth
	}
	if config.Height == 0 {
		config.Height = ssd1306DefaultHeight
	}

	if err := d.init(config); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *ssd1306) init(config *Config) (err error) {
	var (
		displayClockDiv byte
		comPins         byte
		colStart        byte
	)
	switch {
	case config.Width == 64 && config.Height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case config.Width == 64 && config.Height == 48:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case config.Width == 96 && config.Height == 16:
		displayClockDiv, comPins, colStart = 0x60, 0x02, 0
	case config.Width == 128 && config.Height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x02, 0
	case config.Width == 128 && config.Height == 64:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 0
	default:
		return fmt.Errorf("%w: SSD1306 unsupported size %dx%d", ErrBounds, config.Width, config.Height)
	}

	d.colStart = colStart
	d.colEnd = colStart + byte(config.Width)

	// init base
	if err = d.monoDisplay.init(config); err != nil {
		return
	}

	// init display
	if err = d.command(
		ssd1xxxSetDisplayOff,
		ssd1xxxSetDisplayClockDiv, displayClockDiv,
		ssd1xxxSetMultiplexRatio, byte(config.Height-1),
		ssd1xxxSetDisplayOffset, 0x00,
		ssd1xxxSetStartLine,
		ssd1xxxSetChargePump, 0x14,
		ssd1xxxSetMemoryMode, 0x00,
		ssd1xxxSetSegmentRemap|0x01,
		ssd1xxxSetComScanDec,
		ssd1xxxSetComPins, comPins,
		ssd1xxxSetPrecharge, 0xF1,
		ssd1xxxSetVCOMDeselect, 0x40,
		ssd1xxxSetDisplayAllOnResume,
		ssd1xxxSetNormalDisplay,
	); err != nil {
		return err
	}

	contrast := config.Contrast
	if contrast == 0 {
		contrast = ssd1306DefaultContrast
	}
	if err = d.SetContrast(contrast); err != nil {
		return
	}
	if err = d.Refresh(); err != nil {
		return
	}
	return d.Show(true)
}

func (d *ssd1306) setPage(page int) error {
	return d.command(
		ssd1xxxSetColumnAddr, d.colStart, d.colEnd-1,
		ssd1xxxSetPageAddr, byte(page), byte(page),
	)
}
