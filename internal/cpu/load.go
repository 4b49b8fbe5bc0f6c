package cpu

// pushStack pushes a 16 bit value onto the stack, high byte first.
func (c *CPU) pushStack(value uint16) {
	c.SP--
	c.mmu.Write(c.SP, uint8(value>>8))
	c.SP--
	c.mmu.Write(c.SP, uint8(value))
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	lower := uint16(c.mmu.Read(c.SP))
	c.SP++
	upper := uint16(c.mmu.Read(c.SP)) << 8
	c.SP++
	return lower | upper
}

// loadHighRAM returns the address of the I/O page at offset n.
//
//	LDH (a8), A
//	LDH A, (a8)
//	LD (C), A
//	LD A, (C)
func loadHighRAM(n uint8) uint16 {
	return 0xFF00 | uint16(n)
}

func init() {
	// 0x40 - 0x7F - LD r, r (0x76 is HALT)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == hlIndex && src == hlIndex {
				continue
			}
			dst, src := dst, src
			cycles := uint8(4)
			if dst == hlIndex || src == hlIndex {
				cycles = 8
			}
			DefineInstruction(0x40+dst<<3+src, "LD "+registerNames[dst]+", "+registerNames[src], func(c *CPU) {
				c.writeIndex(dst, c.readIndex(src))
			}, Cycles(cycles))
		}

		// LD r, d8
		dst := dst
		cycles := uint8(8)
		if dst == hlIndex {
			cycles = 12
		}
		DefineInstruction(0x06+dst<<3, "LD "+registerNames[dst]+", d8", func(c *CPU) {
			c.writeIndex(dst, c.readOperand())
		}, Cycles(cycles))
	}

	// LD rr, d16
	DefineInstruction(0x01, "LD BC, d16", func(c *CPU) { c.BC.SetUint16(c.readOperand16()) }, Cycles(12))
	DefineInstruction(0x11, "LD DE, d16", func(c *CPU) { c.DE.SetUint16(c.readOperand16()) }, Cycles(12))
	DefineInstruction(0x21, "LD HL, d16", func(c *CPU) { c.HL.SetUint16(c.readOperand16()) }, Cycles(12))
	DefineInstruction(0x31, "LD SP, d16", func(c *CPU) { c.SP = c.readOperand16() }, Cycles(12))

	// indirect loads through BC, DE, HL+ and HL-
	DefineInstruction(0x02, "LD (BC), A", func(c *CPU) { c.mmu.Write(c.BC.Uint16(), c.A) }, Cycles(8))
	DefineInstruction(0x12, "LD (DE), A", func(c *CPU) { c.mmu.Write(c.DE.Uint16(), c.A) }, Cycles(8))
	DefineInstruction(0x22, "LD (HL+), A", func(c *CPU) {
		c.mmu.Write(c.HL.Uint16(), c.A)
		c.HL.Inc()
	}, Cycles(8))
	DefineInstruction(0x32, "LD (HL-), A", func(c *CPU) {
		c.mmu.Write(c.HL.Uint16(), c.A)
		c.HL.Dec()
	}, Cycles(8))
	DefineInstruction(0x0A, "LD A, (BC)", func(c *CPU) { c.A = c.mmu.Read(c.BC.Uint16()) }, Cycles(8))
	DefineInstruction(0x1A, "LD A, (DE)", func(c *CPU) { c.A = c.mmu.Read(c.DE.Uint16()) }, Cycles(8))
	DefineInstruction(0x2A, "LD A, (HL+)", func(c *CPU) {
		c.A = c.mmu.Read(c.HL.Uint16())
		c.HL.Inc()
	}, Cycles(8))
	DefineInstruction(0x3A, "LD A, (HL-)", func(c *CPU) {
		c.A = c.mmu.Read(c.HL.Uint16())
		c.HL.Dec()
	}, Cycles(8))

	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) {
		c.mmu.Write16(c.readOperand16(), c.SP)
	}, Cycles(20))
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) { c.mmu.Write(c.readOperand16(), c.A) }, Cycles(16))
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) { c.A = c.mmu.Read(c.readOperand16()) }, Cycles(16))

	// high RAM
	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) { c.mmu.Write(loadHighRAM(c.readOperand()), c.A) }, Cycles(12))
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) { c.A = c.mmu.Read(loadHighRAM(c.readOperand())) }, Cycles(12))
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) { c.mmu.Write(loadHighRAM(c.C), c.A) }, Cycles(8))
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) { c.A = c.mmu.Read(loadHighRAM(c.C)) }, Cycles(8))

	// stack pointer
	DefineInstruction(0xF8, "LD HL, SP+e8", func(c *CPU) { c.HL.SetUint16(c.addSPSigned()) }, Cycles(12))
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) { c.SP = c.HL.Uint16() }, Cycles(8))

	// PUSH rr, POP rr
	stack := [4]struct {
		name string
		pair func(c *CPU) *RegisterPair
	}{
		{"BC", func(c *CPU) *RegisterPair { return c.BC }},
		{"DE", func(c *CPU) *RegisterPair { return c.DE }},
		{"HL", func(c *CPU) *RegisterPair { return c.HL }},
		{"AF", func(c *CPU) *RegisterPair { return c.AF }},
	}
	for i, s := range stack {
		s := s
		opcode := uint8(i) << 4
		DefineInstruction(0xC5+opcode, "PUSH "+s.name, func(c *CPU) { c.pushStack(s.pair(c).Uint16()) }, Cycles(16))
		DefineInstruction(0xC1+opcode, "POP "+s.name, func(c *CPU) { s.pair(c).SetUint16(c.popStack()) }, Cycles(12))
	}
}
