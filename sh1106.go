package display

import (
	"fmt"
)

const (
	sh1106DefaultWidth    = 128
	sh1106DefaultHeight   = 64
	sh1106DefaultContrast = 0x7F

	// sh1106ColumnOffset centers 128 columns in the 132 column controller RAM.
	sh1106ColumnOffset = 2
)

type sh1106 struct {
	monoDisplay
}

// SH1106 is a driver for the Sino Wealth SH1106 OLED display.
func SH1106(conn Conn, config *Config) (Display, error) {
	if config == nil {
		config = new(Config)
	}

	d := &sh1106{
		monoDisplay: monoDisplay{
			c:    conn,
			name: "SH1106",
		},
	}
	d.page = d.setPage

	if config.Width == 0 {
		config.Width = sh1106DefaultWidth
	}
	if config.Height == 0 {
		config.Height = sh1106DefaultHeight
	}

	if err := d.init(config); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *sh1106) init(config *Config) (err error) {
	var (
		multiplexRatio byte
		displayOffset  byte
	)
	switch {
	case config.Width == 128 && config.Height == 32:
		multiplexRatio, displayOffset = 0x20, 0x0f
	case config.Width == 128 && config.Height == 64:
		multiplexRatio, displayOffset = 0x3f, 0x00
	case config.Width == 128 && config.Height == 128:
		multiplexRatio, displayOffset = 0xff, 0x02
	default:
		return fmt.Errorf("%w: SH1106 unsupported size %dx%d", ErrBounds, config.Width, config.Height)
	}

	// init base
	if err = d.monoDisplay.init(config); err != nil {
		return
	}

	// init display
	if err = d.command(
		ssd1xxxSetDisplayOff,
		ssd1xxxSetMemoryMode,
		ssd1xxxSetHighColumn,
		ssd1xxxSetPageStart,
		ssd1xxxSetComScanDec,
		ssd1xxxSetLowColumn,
		ssd1xxxSetStartLine,
		ssd1xxxSetSegmentRemap|0x01,
		ssd1xxxSetNormalDisplay,
		ssd1xxxSetMultiplexRatio, multiplexRatio,
		ssd1xxxSetDisplayAllOnResume,
		ssd1xxxSetDisplayOffset, displayOffset,
		ssd1xxxSetDisplayClockDiv, 0xF0,
		ssd1xxxSetPrecharge, 0x22,
		ssd1xxxSetComPins, 0x12,
		ssd1xxxSetVCOMDeselect, 0x20,
		ssd1xxxSetChargePump, 0x14,
	); err != nil {
		return err
	}

	contrast := config.Contrast
	if contrast == 0 {
		contrast = sh1106DefaultContrast
	}
	if err = d.SetContrast(contrast); err != nil {
		return
	}
	if err = d.Refresh(); err != nil {
		return
	}
	return d.Show(true)
}

func (d *sh1106) setPage(page int) error {
	return d.command(
		ssd1xxxSetPageStart|byte(page&0xF),
		ssd1xxxSetLowColumn|sh1106ColumnOffset,
		ssd1xxxSetHighColumn,
	)
}
