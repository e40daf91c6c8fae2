package conn

import (
	"bytes"
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

func TestI2C(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x3c, W: []byte{0x00, 0xaf}},
			{Addr: 0x3c, W: []byte{0x40, 0x01, 0x02}},
		},
	}
	c := NewI2C(bus, bus, 0x3c)

	if n, err := c.Write([]byte{0x00, 0xaf}); err != nil || n != 2 {
		t.Fatalf("expected 2 bytes written, got %d (%v)", n, err)
	}
	if _, err := c.Write([]byte{0x40, 0x01, 0x02}); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("expected all operations to be played back: %v", err)
	}
}

type testSPIConn struct {
	writes [][]byte
}

func (c *testSPIConn) String() string               { return "test" }
func (c *testSPIConn) Duplex() conn.Duplex          { return conn.Half }
func (c *testSPIConn) MaxTxSize() int               { return 32 }
func (c *testSPIConn) TxPackets([]spi.Packet) error { return nil }

func (c *testSPIConn) Tx(w, r []byte) error {
	c.writes = append(c.writes, append([]byte(nil), w...))
	return nil
}

type testSPIPort struct {
	conn  *testSPIConn
	speed physic.Frequency
	mode  spi.Mode
	bits  int
}

func (p *testSPIPort) String() string { return "test port" }

func (p *testSPIPort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.speed, p.mode, p.bits = f, mode, bits
	return p.conn, nil
}

func TestSPI(t *testing.T) {
	port := &testSPIPort{conn: new(testSPIConn)}
	c, err := NewSPI(port, nil, 8_000_000, spi.Mode3)
	if err != nil {
		t.Fatal(err)
	}
	if port.speed != 8*physic.MegaHertz || port.mode != spi.Mode3 || port.bits != 8 {
		t.Errorf("unexpected connection parameters %s %s %d bits", port.speed, port.mode, port.bits)
	}
	if v := c.MaxTxSize(); v != 32 {
		t.Errorf("expected max transfer size 32, got %d", v)
	}

	if n, err := c.Write([]byte{1, 2, 3}); err != nil || n != 3 {
		t.Fatalf("expected 3 bytes written, got %d (%v)", n, err)
	}
	if len(port.conn.writes) != 1 || !bytes.Equal(port.conn.writes[0], []byte{1, 2, 3}) {
		t.Errorf("unexpected transfers %x", port.conn.writes)
	}
	if err = c.Close(); err != nil {
		t.Error(err)
	}
}
