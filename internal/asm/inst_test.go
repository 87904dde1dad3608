package asm

import "testing"

func TestLookupInstruction(t *testing.T) {
	spec, ok := lookupInstruction("add")
	if !ok {
		t.Fatal("add not found")
	}

	if spec.Opcode != 2 || spec.Operands != 2 {
		t.Errorf("add spec = %+v", spec)
	}

	if _, ok := lookupInstruction("frobnicate"); ok {
		t.Error("frobnicate found, want not found")
	}
}

func TestValidateModes(t *testing.T) {
	lea, _ := lookupInstruction("lea")

	if err := validateModes(lea, []Mode{ModeDirect, ModeRegister}); err != nil {
		t.Errorf("lea LABEL, r1: unexpected error: %v", err)
	}

	if err := validateModes(lea, []Mode{ModeDirect, ModeImmediate}); err == nil {
		t.Error("lea LABEL, #3: expected error, got nil")
	}

	if err := validateModes(lea, []Mode{ModeDirect}); err == nil {
		t.Error("lea LABEL: expected operand-count error, got nil")
	}
}

func TestWordsPerInstruction(t *testing.T) {
	add, _ := lookupInstruction("add")

	cases := []struct {
		modes []Mode
		want  int
	}{
		{[]Mode{ModeRegister, ModeRegister}, 2},
		{[]Mode{ModeImmediate, ModeRegister}, 3},
		{[]Mode{ModeDirect, ModeMatrix}, 4},
	}

	for _, c := range cases {
		got, err := WordsPerInstruction(add, c.modes)
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", c.modes, err)
		}

		if got != c.want {
			t.Errorf("WordsPerInstruction(add, %v) = %d, want %d", c.modes, got, c.want)
		}
	}

	rts, _ := lookupInstruction("rts")

	got, err := WordsPerInstruction(rts, nil)
	if err != nil || got != 1 {
		t.Errorf("WordsPerInstruction(rts) = %d, %v, want 1, nil", got, err)
	}
}

func TestEncodeInstructionWord(t *testing.T) {
	word := encodeInstructionWord(2, ModeImmediate, ModeRegister, AreAbsolute)

	const wantOpcode = 2
	if got := (word >> 6) & 0xf; got != wantOpcode {
		t.Errorf("opcode field = %d, want %d", got, wantOpcode)
	}

	if got := (word >> 4) & 0x3; got != uint16(ModeImmediate) {
		t.Errorf("src field = %d, want %d", got, ModeImmediate)
	}

	if got := (word >> 2) & 0x3; got != uint16(ModeRegister) {
		t.Errorf("dst field = %d, want %d", got, ModeRegister)
	}
}

func TestEncodePackedRegisterWord(t *testing.T) {
	word := encodePackedRegisterWord(5, 3)

	if got := (word >> 6) & 0x7; got != 5 {
		t.Errorf("src register = %d, want 5", got)
	}

	if got := (word >> 2) & 0x7; got != 3 {
		t.Errorf("dst register = %d, want 3", got)
	}
}
