package display

import (
	"fmt"
)

const (
	ssd1305DefaultWidth    = 128
	ssd1305DefaultHeight   = 32
	ssd1305DefaultContrast = 0x7F
	ssd1305SetLUT          = 0x91
	ssd1305SetMasterConfig = 0xAD
	ssd1305SetAreaColor    = 0xD8
)

type ssd1305 struct {
	monoDisplay
	colOffset byte
}

// SSD1305 is a driver for the Solomon Systech SSD1305 OLED display.
func SSD1305(conn Conn, config *Config) (Display, error) {
	if config == nil {
		config = new(Config)
	}

	d := &ssd1305{
		monoDisplay: monoDisplay{
			c:    conn,
			name: "SSD1305",
		},
	}
	d.page = d.setPage

	if config.Width == 0 {
		config.Width = ssd1305DefaultWidth
	}
	if config.Height == 0 {
		config.Height = ssd1305DefaultHeight
	}

	if err := d.init(config); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *ssd1305) init(config *Config) (err error) {
	switch {
	case config.Width == 128 && config.Height == 32:
		d.colOffset = 0
	case config.Width == 128 && config.Height == 64:
		d.colOffset = 4
	default:
		return fmt.Errorf("%w: SSD1305 unsupported size %dx%d", ErrBounds, config.Width, config.Height)
	}

	// init base
	if err = d.monoDisplay.init(config); err != nil {
		return
	}

	// init display
	if err = d.command(
		ssd1xxxSetDisplayOff,
		ssd1xxxSetLowColumn|(d.colOffset&0x0F),
		ssd1xxxSetHighColumn|(d.colOffset>>4),
		ssd1xxxSetStartLine,
		ssd1xxxSetSegmentRemap|0x01,
		ssd1xxxSetNormalDisplay,
		ssd1xxxSetMultiplexRatio, byte(config.Height-1),
		ssd1305SetMasterConfig, 0x8E,
		ssd1xxxSetComScanDec,
		ssd1xxxSetDisplayOffset, 0x00,
		ssd1xxxSetDisplayClockDiv, 0xF0,
		ssd1305SetAreaColor, 0x05,
		ssd1xxxSetPrecharge, 0xF1,
		ssd1xxxSetComPins, 0x12,
		ssd1305SetLUT, 0x3F, 0x3F, 0x3F, 0x3F,
	); err != nil {
		return err
	}

	contrast := config.Contrast
	if contrast == 0 {
		contrast = ssd1305DefaultContrast
	}
	if err = d.SetContrast(contrast); err != nil {
		return
	}
	if err = d.Refresh(); err != nil {
		return
	}
	return d.Show(true)
}

func (d *ssd1305) setPage(page int) error {
	return d.command(
		ssd1xxxSetPageStart|byte(page&0x7),
		ssd1xxxSetLowColumn|(d.colOffset&0x0F),
		ssd1xxxSetHighColumn|(d.colOffset>>4),
	)
}
