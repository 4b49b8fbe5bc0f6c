package serial

import (
	"bytes"
	"errors"
	"testing"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

type bus map[uint16]uint8

func (b bus) Get(address uint16) uint8        { return b[address] }
func (b bus) Set(address uint16, value uint8) { b[address] = value }

func tick(c *Controller, cycles int) {
	for ; cycles > 0; cycles -= 4 {
		c.Tick(4)
	}
}

func TestController_Transfer(t *testing.T) {
	b := bus{}
	irq := interrupts.NewService(b)
	c := NewController(b, irq)
	var out bytes.Buffer
	c.Attach(NewWriter(&out))

	for _, ch := range []byte("Passed") {
		b[types.SB] = ch
		b[types.SC] = 0x81
		tick(c, ticksPerBit*8-4)
		if b[types.SC]&types.Bit7 == 0 {
			t.Fatalf("expected transfer to still be in progress")
		}
		tick(c, 4)
		if b[types.SC] != 0x01 {
			t.Fatalf("expected transfer to complete, SC=0x%02X", b[types.SC])
		}
		if b[types.SB] != 0xFF {
			t.Errorf("expected 0xFF shifted in, got 0x%02X", b[types.SB])
		}
	}

	if out.String() != "Passed" {
		t.Errorf("expected %q, got %q", "Passed", out.String())
	}
	if irq.Flag()&interrupts.SerialFlag == 0 {
		t.Errorf("expected serial interrupt")
	}
}

func TestController_ExternalClock(t *testing.T) {
	b := bus{types.SB: 0x42, types.SC: 0x80}
	c := NewController(b, interrupts.NewService(b))
	tick(c, ticksPerBit*16)
	if b[types.SC] != 0x80 || b[types.SB] != 0x42 {
		t.Errorf("expected externally clocked transfer to wait")
	}
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("broken pipe")
}

func TestWriter_Err(t *testing.T) {
	w := &failingWriter{}
	d := NewWriter(w)
	for i := 0; i < 16; i++ {
		d.Receive(true)
	}
	if d.Err() == nil || d.Err().Error() != "broken pipe" {
		t.Errorf("expected write error, got %v", d.Err())
	}
	if w.writes != 1 {
		t.Errorf("expected writes to stop after the error, got %d", w.writes)
	}
}
