package conn

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// SPI is a write only SPI connection.
type SPI struct {
	port   io.Closer
	conn   spi.Conn
	speed  physic.Frequency
	mode   spi.Mode
	maxLen int
}

// OpenSPI opens the numbered SPI bus with the numbered device, the device often
// corresponds to the CS pin for that bus. Use a negative bus to open the first
// available port.
func OpenSPI(bus, device int, speedHz int64, mode spi.Mode) (*SPI, error) {
	var name string
	if bus >= 0 {
		name = fmt.Sprintf("SPI%d.%d", bus, device)
	}

	port, err := spireg.Open(name)
	if err != nil {
		return nil, err
	}

	c, err := NewSPI(port, port, speedHz, mode)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	return c, nil
}

// NewSPI connects to port with 8 bits per word. The closer is closed by Close and
// may be nil.
func NewSPI(port spi.Port, closer io.Closer, speedHz int64, mode spi.Mode) (*SPI, error) {
	speed := physic.Frequency(speedHz) * physic.Hertz

	c, err := port.Connect(speed, mode, 8)
	if err != nil {
		return nil, fmt.Errorf("conn: SPI connect at %s: %w", speed, err)
	}

	s := &SPI{
		port:  closer,
		conn:  c,
		speed: speed,
		mode:  mode,
	}
	if l, ok := c.(conn.Limits); ok {
		s.maxLen = l.MaxTxSize()
	}
	return s, nil
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI %s %s %s", c.conn, c.mode, c.speed)
}

func (c *SPI) Close() error {
	if c.port == nil {
		return nil
	}
	return c.port.Close()
}

// MaxTxSize is the largest transfer the port accepts, zero if unknown.
func (c *SPI) MaxTxSize() int {
	return c.maxLen
}

func (c *SPI) Write(p []byte) (int, error) {
	if err := c.conn.Tx(p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}
