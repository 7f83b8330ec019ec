package chip8

// exec runs one decoded instruction. Operands are validated before any
// state changes, so a returned error leaves the machine as it was.
func (c *Chip8) exec(in Instruction, keys *[NumKeys]bool) error {
	pc := c.pc
	next := pc + 2
	x, y := in.X, in.Y

	switch in.Op {
	case OpClear: // 00E0 clear display
		for i := range c.disp {
			c.disp[i] = 0
		}
		c.draw = true

	case OpReturn: // 00EE return from subroutine
		r, err := c.stack.Pop()
		if err != nil {
			return err
		}
		next = r

	case OpJump: // 1NNN goto NNN
		next = in.NNN

	case OpCall: // 2NNN call NNN
		if err := c.stack.Push(next); err != nil {
			return err
		}
		next = in.NNN

	case OpSkipEqImm: // 3XNN if(Vx==NN)
		if c.v[x] == in.NN {
			next += 2
		}

	case OpSkipNeqImm: // 4XNN if(Vx!=NN)
		if c.v[x] != in.NN {
			next += 2
		}

	case OpSkipEqReg: // 5XY0 if(Vx==Vy)
		if c.v[x] == c.v[y] {
			next += 2
		}

	case OpSetImm: // 6XNN Vx = NN
		c.v[x] = in.NN

	case OpAddImm: // 7XNN Vx += NN (carry flag is not changed)
		c.v[x] += in.NN

	case OpSetReg: // 8XY0 Vx=Vy
		c.v[x] = c.v[y]

	case OpOr: // 8XY1 Vx=Vx|Vy
		c.v[x] |= c.v[y]

	case OpAnd: // 8XY2 Vx=Vx&Vy
		c.v[x] &= c.v[y]

	case OpXor: // 8XY3 Vx=Vx^Vy
		c.v[x] ^= c.v[y]

	case OpAddReg: // 8XY4 Vx += Vy
		sum := uint16(c.v[x]) + uint16(c.v[y])
		c.v[x] = uint8(sum)
		c.updateCarryFlag(sum > 0xff)

	case OpSubReg: // 8XY5 Vx -= Vy, VF is set first
		c.updateCarryFlag(c.v[x] > c.v[y])
		c.v[x] -= c.v[y]

	case OpShiftRight: // 8XY6 Vx>>=1, VF is set first
		c.v[0xf] = c.v[x] & 0x01
		c.v[x] >>= 1

	case OpSubRev: // 8XY7 Vx=Vy-Vx, VF is set first
		c.updateCarryFlag(c.v[x] <= c.v[y])
		c.v[x] = c.v[y] - c.v[x]

	case OpShiftLeft: // 8XYE Vx<<=1, VF is set first
		c.v[0xf] = c.v[x] >> 7
		c.v[x] <<= 1

	case OpSkipNeqReg: // 9XY0 if(Vx!=Vy)
		if c.v[x] != c.v[y] {
			next += 2
		}

	case OpSetIndex: // ANNN I = NNN
		c.i = in.NNN

	case OpJumpOffset: // BNNN PC=V0+NNN, checked by the next fetch
		next = in.NNN + uint16(c.v[0])

	case OpRandom: // CXNN Vx=rand()&NN
		c.v[x] = uint8(c.rnd.Intn(0x100)) & in.NN

	case OpDraw: // DXYN draw(Vx,Vy,N)
		if err := checkRange(c.i, int(in.N)); err != nil {
			return err
		}
		c.updateCarryFlag(c.drawSprite(c.v[x], c.v[y], in.N))
		c.draw = true

	case OpSkipKey: // EX9E if(key(Vx) down)
		k := c.v[x]
		if k >= NumKeys {
			return ErrKeyInvalid
		}
		if keys[k] {
			next += 2
		}

	case OpSkipNotKey: // EXA1 if(key(Vx) up)
		k := c.v[x]
		if k >= NumKeys {
			return ErrKeyInvalid
		}
		if !keys[k] {
			next += 2
		}

	case OpGetDelay: // FX07 Vx = get_delay()
		c.v[x] = c.dt

	case OpWaitKey: // FX0A Vx = get_key(), resolved by later cycles
		c.state = AwaitingKey
		c.waitReg = x

	case OpSetDelay: // FX15 delay_timer(Vx)
		c.dt = c.v[x]

	case OpSetSound: // FX18 sound_timer(Vx)
		c.st = c.v[x]

	case OpAddIndex: // FX1E I += Vx
		c.i += uint16(c.v[x])
		c.updateCarryFlag(c.i > 0xfff)

	case OpFontChar: // FX29 I=sprite_addr[Vx]
		c.i = FontOffset + uint16(c.v[x])*FontGlyphBytes

	case OpStoreBCD: // FX33 set_BCD(Vx)
		if err := checkRange(c.i, 3); err != nil {
			return err
		}
		c.mem[c.i+0] = c.v[x] / 100
		c.mem[c.i+1] = (c.v[x] % 100) / 10
		c.mem[c.i+2] = c.v[x] % 10

	case OpRegDump: // FX55 reg_dump(Vx,&I)
		if err := checkRange(c.i, int(x)+1); err != nil {
			return err
		}
		copy(c.mem[c.i:], c.v[:x+1])

	case OpRegLoad: // FX65 reg_load(Vx,&I)
		if err := checkRange(c.i, int(x)+1); err != nil {
			return err
		}
		copy(c.v[:x+1], c.mem[c.i:])

	default: // OpInvalid
		return ErrOpcode(in.Word)
	}

	c.pc = next
	c.record(pc, in.Word, in.Op)
	return nil
}

// drawSprite XORs an n-row sprite from memory at I onto the display at
// (x, y), wrapping on both axes. It reports whether any set pixel was
// cleared.
func (c *Chip8) drawSprite(x, y, n uint8) bool {
	flipped := false
	sm := c.mem[c.i : int(c.i)+int(n)]
	for iy := 0; iy < int(n); iy++ {
		ty := (int(y) + iy) % DisplayH
		for ix := 0; ix < 8; ix++ {
			tx := (int(x) + ix) % DisplayW
			d := (sm[iy] >> (7 - ix)) & 0x01
			p := &c.disp[ty*DisplayW+tx]
			if *p == 1 && d == 1 {
				flipped = true
			}
			*p ^= d
		}
	}
	return flipped
}
