package interrupts

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/types"
)

type registers map[uint16]uint8

func (r registers) Get(address uint16) uint8        { return r[address] }
func (r registers) Set(address uint16, value uint8) { r[address] = value }

func TestService_Vector(t *testing.T) {
	t.Run("priority", func(t *testing.T) {
		r := registers{}
		s := NewService(r)
		s.Request(TimerFlag)
		s.Request(VBlankFlag)
		r[types.IE] = VBlankFlag | TimerFlag

		vector, ok := s.Vector()
		if !ok || vector != 0x0040 {
			t.Fatalf("expected vblank vector 0x0040, got 0x%04X (%v)", vector, ok)
		}
		if s.Flag() != TimerFlag {
			t.Errorf("expected only timer to remain requested, got %05b", s.Flag())
		}

		vector, ok = s.Vector()
		if !ok || vector != 0x0050 {
			t.Fatalf("expected timer vector 0x0050, got 0x%04X (%v)", vector, ok)
		}
		if _, ok := s.Vector(); ok {
			t.Errorf("expected no pending interrupts")
		}
	})
	t.Run("disabled", func(t *testing.T) {
		r := registers{}
		s := NewService(r)
		s.Request(JoypadFlag)
		if s.HasInterrupts() {
			t.Errorf("expected disabled request to not be pending")
		}
		if _, ok := s.Vector(); ok {
			t.Errorf("expected no vector for disabled request")
		}
		if s.Flag() != JoypadFlag {
			t.Errorf("expected request to remain set")
		}
	})
	t.Run("vectors", func(t *testing.T) {
		for i, flag := range []uint8{VBlankFlag, LCDFlag, TimerFlag, SerialFlag, JoypadFlag} {
			r := registers{types.IE: 0xFF}
			s := NewService(r)
			s.Request(flag)
			if v, _ := s.Vector(); v != 0x0040+uint16(i)*8 {
				t.Errorf("flag %05b: expected 0x%04X, got 0x%04X", flag, 0x0040+i*8, v)
			}
		}
	})
}
