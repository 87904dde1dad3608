package asm

// inst.go implements the static, 16-entry instruction table and the
// addressing-mode and word-count computations that both passes share.

import "fmt"

// InstructionSpec describes one opcode: how many operands it takes, and
// which addressing modes are legal in each slot. Operand slot 0 is the
// source (two-operand opcodes only); slot 1 (or slot 0, for one-operand
// opcodes) is the destination.
type InstructionSpec struct {
	Name     string
	Opcode   uint8
	Operands int
	SrcMask  uint8
	DstMask  uint8
}

// instructionTable is the static table of the sixteen opcodes, in the order
// the specification lists them. It is never mutated after init.
var instructionTable = []InstructionSpec{
	{"mov", 0, 2, MaskImmediate | MaskDirect | MaskMatrix | MaskRegister, MaskDirect | MaskMatrix | MaskRegister},
	{"cmp", 1, 2, MaskImmediate | MaskDirect | MaskMatrix | MaskRegister, MaskImmediate | MaskDirect | MaskMatrix | MaskRegister},
	{"add", 2, 2, MaskImmediate | MaskDirect | MaskMatrix | MaskRegister, MaskDirect | MaskMatrix | MaskRegister},
	{"sub", 3, 2, MaskImmediate | MaskDirect | MaskMatrix | MaskRegister, MaskDirect | MaskMatrix | MaskRegister},
	{"lea", 4, 2, MaskDirect | MaskMatrix, MaskRegister},
	{"clr", 5, 1, 0, MaskDirect | MaskMatrix | MaskRegister},
	{"not", 6, 1, 0, MaskDirect | MaskMatrix | MaskRegister},
	{"inc", 7, 1, 0, MaskDirect | MaskMatrix | MaskRegister},
	{"dec", 8, 1, 0, MaskDirect | MaskMatrix | MaskRegister},
	{"jmp", 9, 1, 0, MaskDirect | MaskMatrix},
	{"bne", 10, 1, 0, MaskDirect | MaskMatrix},
	{"jsr", 11, 1, 0, MaskDirect | MaskMatrix},
	{"red", 12, 1, 0, MaskDirect | MaskMatrix | MaskRegister},
	{"prn", 13, 1, 0, MaskImmediate | MaskDirect | MaskMatrix | MaskRegister},
	{"rts", 14, 0, 0, 0},
	{"stop", 15, 0, 0, 0},
}

var instructionByName map[string]InstructionSpec

func init() {
	instructionByName = make(map[string]InstructionSpec, len(instructionTable))
	for _, spec := range instructionTable {
		instructionByName[spec.Name] = spec
	}
}

// lookupInstruction returns the InstructionSpec for name (case sensitive;
// mnemonics are canonically lower-case), or false if name is not an opcode.
func lookupInstruction(name string) (InstructionSpec, bool) {
	spec, ok := instructionByName[name]
	return spec, ok
}

// validateModes checks that modes are legal for spec's operand slots,
// returning a *SemanticError naming the offending slot if not.
func validateModes(spec InstructionSpec, modes []Mode) error {
	if len(modes) != spec.Operands {
		return &SemanticError{Reason: "wrong operand count", Opcode: spec.Name}
	}

	switch spec.Operands {
	case 0:
		return nil
	case 1:
		if modes[0].bit()&spec.DstMask == 0 {
			return &SemanticError{Reason: "illegal addressing mode", Opcode: spec.Name, Slot: 0}
		}

		return nil
	case 2:
		if modes[0].bit()&spec.SrcMask == 0 {
			return &SemanticError{Reason: "illegal addressing mode", Opcode: spec.Name, Slot: 0}
		}

		if modes[1].bit()&spec.DstMask == 0 {
			return &SemanticError{Reason: "illegal addressing mode", Opcode: spec.Name, Slot: 1}
		}

		return nil
	default:
		return fmt.Errorf("asm: instruction table corrupt: %s has %d operands", spec.Name, spec.Operands)
	}
}

// operandCost is the number of words a single operand of mode m contributes,
// outside of the register-register packing special case.
func operandCost(m Mode) int {
	if m == ModeMatrix {
		return 2
	}

	return 1
}

// WordsPerInstruction computes how many words an instruction occupies,
// including its opcode word, per the specification's packing rule: two
// register operands share a single packed word; every other combination
// costs one word per operand, two for a matrix operand.
func WordsPerInstruction(spec InstructionSpec, modes []Mode) (int, error) {
	if err := validateModes(spec, modes); err != nil {
		return 0, err
	}

	switch len(modes) {
	case 0:
		return 1, nil
	case 1:
		return 1 + operandCost(modes[0]), nil
	case 2:
		if modes[0] == ModeRegister && modes[1] == ModeRegister {
			return 1 + 1, nil
		}

		return 1 + operandCost(modes[0]) + operandCost(modes[1]), nil
	default:
		return 0, fmt.Errorf("asm: instruction table corrupt: %s has %d operands", spec.Name, len(modes))
	}
}

// encodeInstructionWord packs the opcode word: bits 9..6 opcode, 5..4 source
// mode ordinal, 3..2 destination mode ordinal, 1..0 ARE.
func encodeInstructionWord(opcode uint8, src, dst Mode, are ARE) uint16 {
	return uint16(opcode&0xf)<<6 | uint16(src&0x3)<<4 | uint16(dst&0x3)<<2 | uint16(are&0x3)
}

// encodeImmediateWord packs an immediate operand word: the low 8 bits of
// value (two's-complement truncated), tagged Absolute.
func encodeImmediateWord(value int) uint16 {
	return uint16(value&0xff)<<2 | uint16(AreAbsolute)
}

// encodeDirectWord packs a direct-mode operand word for a locally-defined
// symbol at addr.
func encodeDirectWord(addr uint16) uint16 {
	return addr<<2 | uint16(AreRelocatable)
}

// encodeExternalWord packs a direct-mode operand word for an external
// symbol: the address bits are always zero, tagged External.
func encodeExternalWord() uint16 {
	return uint16(AreExternal)
}

// encodeRegisterWord packs a single register operand (the sole operand of a
// one-operand instruction).
func encodeRegisterWord(reg int) uint16 {
	return uint16(reg&0x7)<<2 | uint16(AreAbsolute)
}

// encodePackedRegisterWord packs two register operands sharing one word: the
// source register in bits 9..6, the destination register in bits 5..2.
func encodePackedRegisterWord(src, dst int) uint16 {
	return uint16(src&0x7)<<6 | uint16(dst&0x7)<<2 | uint16(AreAbsolute)
}

// encodeMatrixRegisterWord packs a matrix operand's second word: the
// row-index register in bits 9..6, the column-index register in bits 5..2.
func encodeMatrixRegisterWord(r1, r2 int) uint16 {
	return uint16(r1&0x7)<<6 | uint16(r2&0x7)<<2 | uint16(AreAbsolute)
}
