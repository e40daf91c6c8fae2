package display

import (
	"errors"
	"fmt"
	"io"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"

	"github.com/BeatGlow/monodisplay/conn"
)

// Conn errors.
var (
	ErrResetPin = errors.New("display: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("display: data/command (DC) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends data bytes.
	Data(...byte) error
}

// I2C control bytes.
const (
	i2cCommand = 0x00
	i2cData    = 0x40
)

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Device is the I²C device, use -1 to use the first available device.
	Device int

	// Addr is the I²C address.
	Addr uint8

	// Reset pin, optional.
	Reset gpio.PinOut
}

// DefaultI2CConfig are the default configuration values.
var DefaultI2CConfig = I2CConfig{
	Device: -1,
	Addr:   0x3c,
}

type i2cConn struct {
	bus   io.WriteCloser
	name  string
	reset gpio.PinOut
}

// OpenI2C opens an I²C connection.
func OpenI2C(config *I2CConfig) (Conn, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}
	if config.Addr == 0 {
		config.Addr = DefaultI2CConfig.Addr
	}

	c, err := conn.OpenI2C(config.Device, config.Addr)
	if err != nil {
		return nil, err
	}

	return newI2CConn(c, config.Reset), nil
}

type i2cBus interface {
	io.WriteCloser
	String() string
}

func newI2CConn(c i2cBus, reset gpio.PinOut) *i2cConn {
	return &i2cConn{
		bus:   c,
		name:  c.String(),
		reset: reset,
	}
}

func (c *i2cConn) String() string {
	return c.name
}

func (c *i2cConn) Close() error {
	return c.bus.Close()
}

func (c *i2cConn) Command(cmnd byte, args ...byte) (err error) {
	_, err = c.bus.Write(append([]byte{i2cCommand, cmnd}, args...))
	return
}

func (c *i2cConn) Data(data ...byte) (err error) {
	_, err = c.bus.Write(append([]byte{i2cData}, data...))
	return
}

func (c *i2cConn) Reset(level gpio.Level) error {
	if c.reset == nil || c.reset == gpio.INVALID {
		return ErrResetPin
	}
	return c.reset.Out(level)
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Bus and Device select the SPI port, use a negative Bus for the first available port.
	Bus    int
	Device int

	// Mode is the SPI clock mode.
	Mode spi.Mode

	// SpeedHz is the bus speed, it must be one of ValidSPISpeeds.
	SpeedHz uint32

	// DataLow inverts the level of the data/command pin.
	DataLow bool

	// BatchSize is the largest single bus write.
	BatchSize uint

	// Reset and DC pins, nil looks up the default pin names.
	Reset gpio.PinOut
	DC    gpio.PinOut

	// CE is an optional chip enable pin driven by software.
	CE gpio.PinOut
}

// Default SPI pin names.
const (
	DefaultSPIResetPin = "GPIO25"
	DefaultSPIDCPin    = "GPIO24"
)

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:       0,
	Device:    0,
	Mode:      spi.Mode0,
	SpeedHz:   8_000_000,
	BatchSize: 4096,
}

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
	16_000_000,
	20_000_000,
	24_000_000,
	28_000_000,
	32_000_000,
	36_000_000,
	40_000_000,
	48_000_000,
	50_000_000,
	52_000_000,
}

type spiBus interface {
	io.WriteCloser
	String() string
	MaxTxSize() int
}

type spiConn struct {
	bus       spiBus
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	dcSet     bool
	cs        gpio.PinOut
	dataLow   bool
	batchSize int
}

// OpenSPI opens a SPI connection.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	if config.Reset == nil {
		config.Reset = gpioreg.ByName(DefaultSPIResetPin)
	}
	if config.DC == nil {
		config.DC = gpioreg.ByName(DefaultSPIDCPin)
	}
	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}

	var valid bool
	for _, speed := range ValidSPISpeeds {
		if valid = speed == config.SpeedHz; valid {
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("display: invalid SPI speed %dHz", config.SpeedHz)
	}

	c, err := conn.OpenSPI(config.Bus, config.Device, int64(config.SpeedHz), config.Mode)
	if err != nil {
		return nil, err
	}

	s, err := newSPIConn(c, config)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return s, nil
}

func newSPIConn(bus spiBus, config *SPIConfig) (*spiConn, error) {
	if config.Reset == nil || config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}

	batchSize := int(config.BatchSize)
	if batchSize == 0 {
		batchSize = int(DefaultSPIConfig.BatchSize)
	}
	if limit := bus.MaxTxSize(); limit > 0 && limit < batchSize {
		batchSize = limit
	}

	return &spiConn{
		bus:       bus,
		batchSize: batchSize,
		dataLow:   config.DataLow,
		reset:     config.Reset,
		dc:        config.DC,
		cs:        config.CE,
	}, nil
}

func (c *spiConn) String() string {
	return c.bus.String()
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if !c.dcSet || c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel, c.dcSet = level, true
	}
	return nil
}

func (c *spiConn) updateCS(level gpio.Level) error {
	if c.cs == nil {
		return nil
	}
	return c.cs.Out(level)
}

// commandLevel is the DC level that marks command bytes.
func (c *spiConn) commandLevel() gpio.Level {
	return gpio.Level(c.dataLow)
}

func (c *spiConn) Command(cmnd byte, data ...byte) (err error) {
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.updateDC(c.commandLevel()); err != nil {
		return
	}
	if _, err = c.bus.Write([]byte{cmnd}); err != nil {
		return
	}
	// Arguments are sent in command mode as well.
	if len(data) > 0 {
		if err = c.writeChunked(data); err != nil {
			return
		}
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(!c.commandLevel()); err != nil {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.writeChunked(data); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	if len(data) <= c.batchSize {
		_, err = c.bus.Write(data)
		return
	}

	Logger().Debug("display: chunked SPI write",
		"bytes", len(data),
		"chunks", (len(data)+c.batchSize-1)/c.batchSize)
	for len(data) > 0 {
		n := min(len(data), c.batchSize)
		if _, err = c.bus.Write(data[:n]); err != nil {
			return
		}
		data = data[n:]
	}
	return
}
