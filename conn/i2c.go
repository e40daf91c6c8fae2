// Package conn contains the serial bus transports used by the display drivers.
package conn

import (
	"fmt"
	"io"
	"strconv"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// I2C is a connection to a single I²C device.
type I2C struct {
	bus  io.Closer
	name string
	conn conn.Conn
}

// OpenI2C opens the numbered I²C bus, use a negative device to open the first available bus.
func OpenI2C(device int, addr uint8) (*I2C, error) {
	var (
		bus i2c.BusCloser
		err error
	)
	if device < 0 {
		bus, err = i2creg.Open("")
	} else {
		bus, err = i2creg.Open(strconv.FormatInt(int64(device), 10))
	}
	if err != nil {
		return nil, err
	}

	return NewI2C(bus, bus, addr), nil
}

// NewI2C talks to addr on bus. The closer is closed by Close and may be nil.
func NewI2C(bus i2c.Bus, closer io.Closer, addr uint8) *I2C {
	return &I2C{
		bus:  closer,
		name: bus.String(),
		conn: &i2c.Dev{Bus: bus, Addr: uint16(addr)},
	}
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C bus %s device %s", c.name, c.conn)
}

func (c *I2C) Close() error {
	if c.bus == nil {
		return nil
	}
	return c.bus.Close()
}

func (c *I2C) Read(p []byte) (int, error) {
	return len(p), c.conn.Tx(nil, p)
}

func (c *I2C) Write(p []byte) (int, error) {
	return len(p), c.conn.Tx(p, nil)
}
